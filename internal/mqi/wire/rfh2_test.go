package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/danmuck/mqlink/internal/mqi/cmqc"
)

func TestRFH2EmptyHeader(t *testing.T) {
	h := NewRFH2()
	if got, _ := h.GetInt32("StrucLength"); got != FixedPortionLength {
		t.Fatalf("StrucLength = %d, want %d", got, FixedPortionLength)
	}
	buf, err := h.Pack(cmqc.MQENC_NATIVE)
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	if len(buf) != FixedPortionLength {
		t.Fatalf("packed length = %d, want %d", len(buf), FixedPortionLength)
	}
	if got := string(buf[:4]); got != cmqc.MQRFH_STRUC_ID {
		t.Fatalf("StrucId on wire = %q, want %q", got, cmqc.MQRFH_STRUC_ID)
	}

	out := NewRFH2()
	n, err := out.Unpack(buf, cmqc.MQENC_NATIVE)
	if err != nil {
		t.Fatalf("unpack: %v", err)
	}
	if n != FixedPortionLength {
		t.Fatalf("consumed = %d, want %d", n, FixedPortionLength)
	}
	if folders := out.Folders(); len(folders) != 0 {
		t.Fatalf("folders = %v, want none", folders)
	}
}

func TestRFH2FolderPaddingAndLength(t *testing.T) {
	h := NewRFH2()
	folder := []byte("<mcd><Msd>jms_text</Msd></mcd>")
	if err := h.AddFolder(folder); err != nil {
		t.Fatalf("add folder: %v", err)
	}

	padded, ok := h.Folder("mcd")
	if !ok {
		t.Fatal("folder mcd not found")
	}
	if len(padded)%4 != 0 {
		t.Fatalf("folder length %d not a 4-byte multiple", len(padded))
	}
	if !bytes.HasPrefix(padded, folder) {
		t.Fatalf("folder content %q lost its prefix", padded)
	}
	for _, b := range padded[len(folder):] {
		if b != ' ' {
			t.Fatalf("pad byte = %#x, want space", b)
		}
	}

	want := int32(FixedPortionLength + 4 + len(padded))
	if got, _ := h.GetInt32("StrucLength"); got != want {
		t.Fatalf("StrucLength = %d, want %d", got, want)
	}
}

func TestRFH2MalformedFolder(t *testing.T) {
	h := NewRFH2()
	if err := h.AddFolder([]byte("<mcd><Msd>oops</mcd>")); !errors.Is(err, ErrRFH2Folder) {
		t.Fatalf("mismatched tags: err = %v, want ErrRFH2Folder", err)
	}
	if err := h.AddFolder([]byte("   ")); !errors.Is(err, ErrRFH2Folder) {
		t.Fatalf("no root element: err = %v, want ErrRFH2Folder", err)
	}
}

func TestRFH2RoundTripBothOrders(t *testing.T) {
	for _, tc := range []struct {
		name     string
		encoding int32
	}{
		{"reversed", cmqc.MQENC_NATIVE},
		{"normal", cmqc.MQENC_NORMAL},
	} {
		h := NewRFH2()
		if err := h.AddFolder([]byte("<usr><a>1</a></usr>")); err != nil {
			t.Fatalf("%s: add folder: %v", tc.name, err)
		}
		buf, err := h.Pack(tc.encoding)
		if err != nil {
			t.Fatalf("%s: pack: %v", tc.name, err)
		}

		out := NewRFH2()
		n, err := out.Unpack(buf, tc.encoding)
		if err != nil {
			t.Fatalf("%s: unpack: %v", tc.name, err)
		}
		if n != len(buf) {
			t.Fatalf("%s: consumed %d of %d bytes", tc.name, n, len(buf))
		}
		got, ok := out.Folder("usr")
		if !ok {
			t.Fatalf("%s: usr folder missing after unpack", tc.name)
		}
		if !bytes.HasPrefix(got, []byte("<usr><a>1</a></usr>")) {
			t.Fatalf("%s: folder = %q", tc.name, got)
		}
	}
}

func TestRFH2UnpackDetectsOrder(t *testing.T) {
	h := NewRFH2()
	if err := h.AddFolder([]byte("<usr><k>v</k></usr>")); err != nil {
		t.Fatalf("add folder: %v", err)
	}
	buf, err := h.Pack(cmqc.MQENC_NORMAL)
	if err != nil {
		t.Fatalf("pack: %v", err)
	}

	out := NewRFH2()
	if _, err := out.Unpack(buf, EncodingUnspecified); err != nil {
		t.Fatalf("unpack with detection: %v", err)
	}
	if got, _ := out.GetInt32("Version"); got != cmqc.MQRFH_VERSION_2 {
		t.Fatalf("Version = %d, want %d", got, cmqc.MQRFH_VERSION_2)
	}
}

func TestRFH2UnpackShortStrucLength(t *testing.T) {
	h := NewRFH2()
	buf, err := h.Pack(cmqc.MQENC_NATIVE)
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	// A folderless producer may declare less than the fixed portion.
	binary.LittleEndian.PutUint32(buf[8:], 0)

	out := NewRFH2()
	n, err := out.Unpack(buf, cmqc.MQENC_NATIVE)
	if err != nil {
		t.Fatalf("unpack: %v", err)
	}
	if n != FixedPortionLength {
		t.Fatalf("consumed = %d, want %d", n, FixedPortionLength)
	}
	if folders := out.Folders(); len(folders) != 0 {
		t.Fatalf("folders = %v, want none", folders)
	}
}

func TestRFH2UnpackFailures(t *testing.T) {
	h := NewRFH2()
	good, _ := h.Pack(cmqc.MQENC_NATIVE)

	out := NewRFH2()
	if _, err := out.Unpack(good[:10], cmqc.MQENC_NATIVE); !errors.Is(err, ErrRFH2Short) {
		t.Fatalf("short buffer: err = %v, want ErrRFH2Short", err)
	}

	bad := append([]byte{}, good...)
	copy(bad, "XXXX")
	if _, err := out.Unpack(bad, cmqc.MQENC_NATIVE); !errors.Is(err, ErrRFH2StrucID) {
		t.Fatalf("bad magic: err = %v, want ErrRFH2StrucID", err)
	}

	oversize := append([]byte{}, good...)
	binary.LittleEndian.PutUint32(oversize[8:], uint32(len(oversize)+100))
	if _, err := out.Unpack(oversize, cmqc.MQENC_NATIVE); !errors.Is(err, ErrRFH2StrucLength) {
		t.Fatalf("oversized StrucLength: err = %v, want ErrRFH2StrucLength", err)
	}

	negative := append([]byte{}, good...)
	binary.LittleEndian.PutUint32(negative[8:], uint32(0xFFFFFFF0))
	if _, err := out.Unpack(negative, cmqc.MQENC_NATIVE); !errors.Is(err, ErrRFH2StrucLength) {
		t.Fatalf("negative StrucLength: err = %v, want ErrRFH2StrucLength", err)
	}
}
