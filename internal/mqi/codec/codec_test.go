package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func sampleFields() []Field {
	return []Field{
		{Name: "StrucId", Default: "MD  ", Kind: Char, Len: 4},
		{Name: "Version", Default: int32(1), Kind: Long},
		{Name: "Priority", Default: int32(-1), Kind: Long},
		{Name: "MsgId", Default: []byte{}, Kind: Bytes, Len: 24},
		{Name: "Counters", Default: []int32{0, 0, 0}, Kind: Long, Count: 3},
		{Name: "Token", Default: int64(0), Kind: Int64},
	}
}

func TestPackUnpackRoundTrip(t *testing.T) {
	s := MustNew("MD", sampleFields())
	if err := s.Apply(map[string]any{
		"Version":  2,
		"Priority": 5,
		"MsgId":    []byte("abc"),
		"Counters": []int32{7, 8, 9},
		"Token":    int64(1 << 40),
	}); err != nil {
		t.Fatalf("apply: %v", err)
	}

	buf, err := s.Pack()
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	if got, want := len(buf), s.Length(); got != want {
		t.Fatalf("packed length = %d, want %d", got, want)
	}

	out := MustNew("MD", sampleFields())
	if err := out.Unpack(buf); err != nil {
		t.Fatalf("unpack: %v", err)
	}

	if got, _ := out.GetString("StrucId"); got != "MD" {
		t.Fatalf("StrucId = %q, want %q", got, "MD")
	}
	if got, _ := out.GetInt32("Priority"); got != 5 {
		t.Fatalf("Priority = %d, want 5", got)
	}
	wantID := append([]byte("abc"), make([]byte, 21)...)
	if got, _ := out.GetBytes("MsgId"); !bytes.Equal(got, wantID) {
		t.Fatalf("MsgId = %q, want %q", got, wantID)
	}
	arr, _ := out.Get("Counters")
	if got := arr.([]int32); got[0] != 7 || got[2] != 9 {
		t.Fatalf("Counters = %v, want [7 8 9]", got)
	}
	if got, _ := out.GetInt64("Token"); got != 1<<40 {
		t.Fatalf("Token = %d, want %d", got, int64(1<<40))
	}
}

func TestBytesRoundTripKeepsTrailingNuls(t *testing.T) {
	fields := []Field{{Name: "CorrelId", Default: []byte{}, Kind: Bytes, Len: 24}}

	s := MustNew("MD", fields)
	id := make([]byte, 24)
	id[0] = 0xab
	if err := s.Set("CorrelId", id); err != nil {
		t.Fatalf("set: %v", err)
	}
	buf, err := s.Pack()
	if err != nil {
		t.Fatalf("pack: %v", err)
	}

	out := MustNew("MD", fields)
	if err := out.Unpack(buf); err != nil {
		t.Fatalf("unpack: %v", err)
	}
	got, _ := out.GetBytes("CorrelId")
	if !bytes.Equal(got, id) {
		t.Fatalf("CorrelId = %x (%d bytes), want %x (%d bytes)", got, len(got), id, len(id))
	}
}

func TestUnpackLengthMismatch(t *testing.T) {
	s := MustNew("MD", sampleFields())
	err := s.Unpack(make([]byte, s.Length()-1))
	if !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("unpack short buffer: err = %v, want ErrLengthMismatch", err)
	}
	err = s.Unpack(make([]byte, s.Length()+4))
	if !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("unpack long buffer: err = %v, want ErrLengthMismatch", err)
	}
}

func TestSetUnknownField(t *testing.T) {
	s := MustNew("MD", sampleFields())
	err := s.Set("NoSuchField", 1)
	var fe *FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("set unknown field: err = %v, want *FieldError", err)
	}
	if fe.Field != "NoSuchField" {
		t.Fatalf("FieldError.Field = %q, want %q", fe.Field, "NoSuchField")
	}
}

func TestSetWrongType(t *testing.T) {
	s := MustNew("MD", sampleFields())
	if err := s.Set("Version", "nope"); err == nil {
		t.Fatal("set string into Long field: want error, got nil")
	}
	if err := s.Set("StrucId", 42); err == nil {
		t.Fatal("set int into Char field: want error, got nil")
	}
	if err := s.Set("StrucId", "TOOLONGID"); err == nil {
		t.Fatal("set oversized string: want error, got nil")
	}
	if err := s.Set("Counters", []int32{1}); err == nil {
		t.Fatal("set short array: want error, got nil")
	}
}

func TestDuplicateFieldName(t *testing.T) {
	_, err := New("X", []Field{
		{Name: "A", Default: int32(0), Kind: Long},
		{Name: "A", Default: int32(0), Kind: Long},
	})
	if !errors.Is(err, ErrDuplicateField) {
		t.Fatalf("duplicate field: err = %v, want ErrDuplicateField", err)
	}
}

func TestCharPaddingOnWire(t *testing.T) {
	s := MustNew("X", []Field{{Name: "Format", Default: "MQSTR", Kind: Char, Len: 8}})
	buf, err := s.Pack()
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	if got, want := string(buf), "MQSTR   "; got != want {
		t.Fatalf("packed = %q, want %q", got, want)
	}
}

func TestByteOrderSwitch(t *testing.T) {
	fields := []Field{{Name: "N", Default: int32(0x01020304), Kind: Long}}

	le := MustNew("X", fields)
	leBuf, _ := le.Pack()
	if got, want := leBuf[0], byte(0x04); got != want {
		t.Fatalf("little-endian first byte = %#x, want %#x", got, want)
	}

	be := MustNew("X", fields)
	be.SetOrder(binary.BigEndian)
	beBuf, _ := be.Pack()
	if got, want := beBuf[0], byte(0x01); got != want {
		t.Fatalf("big-endian first byte = %#x, want %#x", got, want)
	}
}

func vsFields(base string) []Field {
	return []Field{
		{Name: base + "VSPtr", Default: uint64(0), Kind: Ptr},
		{Name: base + "VSOffset", Default: int32(0), Kind: Long},
		{Name: base + "VSBufSize", Default: int32(0), Kind: Long},
		{Name: base + "VSLength", Default: int32(0), Kind: Long},
		{Name: base + "VSCCSID", Default: int32(-3), Kind: Long},
	}
}

func TestVSAttachment(t *testing.T) {
	s := MustNew("SD", vsFields("ObjectString"))

	if v, err := s.GetVS("ObjectString"); err != nil || v != nil {
		t.Fatalf("unset attachment = %v, %v, want nil, nil", v, err)
	}

	if err := s.SetVS("ObjectString", []byte("dev/topic/a")); err != nil {
		t.Fatalf("set vs: %v", err)
	}
	if got, _ := s.GetInt32("ObjectStringVSLength"); got != 11 {
		t.Fatalf("Length = %d, want 11", got)
	}

	v, err := s.GetVS("ObjectString")
	if err != nil {
		t.Fatalf("get vs: %v", err)
	}
	if got, want := string(v), "dev/topic/a"; got != want {
		t.Fatalf("attachment = %q, want %q", got, want)
	}
}

func TestVSSurvivesRoundTrip(t *testing.T) {
	s := MustNew("SD", vsFields("ObjectString"))
	if err := s.SetVS("ObjectString", []byte("dev/topic/b")); err != nil {
		t.Fatalf("set vs: %v", err)
	}
	buf, err := s.Pack()
	if err != nil {
		t.Fatalf("pack: %v", err)
	}

	out := MustNew("SD", vsFields("ObjectString"))
	if err := out.Unpack(buf); err != nil {
		t.Fatalf("unpack: %v", err)
	}
	v, err := out.GetVS("ObjectString")
	if err != nil {
		t.Fatalf("get vs after unpack: %v", err)
	}
	if got, want := string(v), "dev/topic/b"; got != want {
		t.Fatalf("attachment after unpack = %q, want %q", got, want)
	}
}

func TestResolveVSUnknown(t *testing.T) {
	if v := ResolveVS(0); v != nil {
		t.Fatalf("ResolveVS(0) = %v, want nil", v)
	}
	if v := ResolveVS(1 << 60); v != nil {
		t.Fatalf("ResolveVS(unknown) = %v, want nil", v)
	}
}
