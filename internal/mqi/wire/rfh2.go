package wire

import (
	"bytes"
	"encoding/binary"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"github.com/danmuck/mqlink/internal/mqi/cmqc"
	"github.com/danmuck/mqlink/internal/mqi/codec"
)

// EncodingUnspecified tells Unpack to detect byte order from the buffer.
const EncodingUnspecified int32 = -1

// FixedPortionLength is the packed size of the eight preamble fields.
const FixedPortionLength = 36

var (
	ErrRFH2StrucID     = errors.New("wire: rfh2: bad structure id")
	ErrRFH2Short       = errors.New("wire: rfh2: buffer shorter than fixed portion")
	ErrRFH2StrucLength = errors.New("wire: rfh2: structure length out of bounds")
	ErrRFH2Folder      = errors.New("wire: rfh2: bad folder")
)

// normalMask covers the big-endian integer/decimal/float encoding bits.
const normalMask = cmqc.MQENC_INTEGER_NORMAL | cmqc.MQENC_DECIMAL_NORMAL | cmqc.MQENC_FLOAT_IEEE_NORMAL

func bigEndianEncoding(encoding int32) bool {
	return encoding&normalMask != 0
}

// RFH2 is the rules-and-formatting extensible header: a fixed 36-byte
// preamble followed by length-prefixed XML folders. Folders grow the
// schema in place, so StrucLength always equals Length().
type RFH2 struct {
	*codec.Structure
	folders []string
}

func preambleFields() []codec.Field {
	return []codec.Field{
		{Name: "StrucId", Default: cmqc.MQRFH_STRUC_ID, Kind: codec.Char, Len: 4},
		{Name: "Version", Default: cmqc.MQRFH_VERSION_2, Kind: codec.Long},
		{Name: "StrucLength", Default: int32(FixedPortionLength), Kind: codec.Long},
		{Name: "Encoding", Default: cmqc.MQENC_NATIVE, Kind: codec.Long},
		{Name: "CodedCharSetId", Default: cmqc.MQCCSI_Q_MGR, Kind: codec.Long},
		{Name: "Format", Default: cmqc.MQFMT_NONE, Kind: codec.Char, Len: 8},
		{Name: "Flags", Default: int32(0), Kind: codec.Long},
		{Name: "NameValueCCSID", Default: cmqc.MQCCSI_UTF8, Kind: codec.Long},
	}
}

// NewRFH2 returns a header with only the fixed portion populated.
func NewRFH2() *RFH2 {
	return &RFH2{Structure: codec.MustNew("MQRFH2", preambleFields())}
}

// folderRoot checks the folder is a whole well-formed XML document and
// returns its root element name.
func folderRoot(folder []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(folder))
	root := ""
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrRFH2Folder, err)
		}
		if se, ok := tok.(xml.StartElement); ok && root == "" {
			root = se.Name.Local
		}
	}
	if root == "" {
		return "", fmt.Errorf("%w: no root element", ErrRFH2Folder)
	}
	return root, nil
}

// AddFolder validates and appends one XML folder, space-padding it to a
// 4-byte multiple and recomputing StrucLength.
func (h *RFH2) AddFolder(folder []byte) error {
	root, err := folderRoot(folder)
	if err != nil {
		return err
	}
	padded := folder
	if rem := len(folder) % 4; rem != 0 {
		padded = append(append([]byte{}, folder...), bytes.Repeat([]byte(" "), 4-rem)...)
	}
	err = h.Append(
		codec.Field{Name: root + "Length", Default: int32(len(padded)), Kind: codec.Long},
		codec.Field{Name: root, Default: padded, Kind: codec.Bytes, Len: len(padded)},
	)
	if err != nil {
		return err
	}
	h.folders = append(h.folders, root)
	return h.Set("StrucLength", int32(h.Length()))
}

// Folders returns the root names of the attached folders in order.
func (h *RFH2) Folders() []string {
	out := make([]string, len(h.folders))
	copy(out, h.folders)
	return out
}

// Folder returns one folder's padded content by root name.
func (h *RFH2) Folder(root string) ([]byte, bool) {
	for _, name := range h.folders {
		if name == root {
			v, err := h.GetBytes(root)
			if err != nil {
				return nil, false
			}
			return v, true
		}
	}
	return nil, false
}

// Pack serializes the whole header. The message encoding decides byte
// order: any normal-family encoding packs big-endian, everything else
// little-endian.
func (h *RFH2) Pack(encoding int32) ([]byte, error) {
	if bigEndianEncoding(encoding) {
		h.SetOrder(binary.BigEndian)
	} else {
		h.SetOrder(binary.LittleEndian)
	}
	return h.Structure.Pack()
}

// Unpack parses one header out of the front of buf and returns the number
// of bytes it consumed. Pass EncodingUnspecified to detect byte order from
// the version field.
func (h *RFH2) Unpack(buf []byte, encoding int32) (int, error) {
	if len(buf) < FixedPortionLength {
		return 0, fmt.Errorf("%w: %d bytes", ErrRFH2Short, len(buf))
	}
	if string(buf[:4]) != cmqc.MQRFH_STRUC_ID {
		return 0, fmt.Errorf("%w: %q", ErrRFH2StrucID, buf[:4])
	}

	var order binary.ByteOrder = binary.LittleEndian
	switch {
	case encoding == EncodingUnspecified:
		// Version 2 is tiny, so a zero lead byte means big-endian.
		if buf[4] == 0 {
			order = binary.BigEndian
		}
	case bigEndianEncoding(encoding):
		order = binary.BigEndian
	}

	h.Structure = codec.MustNew("MQRFH2", preambleFields())
	h.Structure.SetOrder(order)
	h.folders = nil
	if err := h.Structure.Unpack(buf[:FixedPortionLength]); err != nil {
		return 0, err
	}

	strucLength, err := h.GetInt32("StrucLength")
	if err != nil {
		return 0, err
	}
	if strucLength < 0 || int(strucLength) > len(buf) {
		return 0, fmt.Errorf("%w: %d in %d-byte buffer", ErrRFH2StrucLength, strucLength, len(buf))
	}

	// A StrucLength below the fixed portion is a folderless header.
	off := FixedPortionLength
	for off < int(strucLength) {
		if int(strucLength)-off < 4 {
			return 0, fmt.Errorf("%w: dangling %d bytes", ErrRFH2Folder, int(strucLength)-off)
		}
		n := int(int32(order.Uint32(buf[off:])))
		off += 4
		if n <= 0 || off+n > int(strucLength) {
			return 0, fmt.Errorf("%w: folder length %d", ErrRFH2Folder, n)
		}
		folder := buf[off : off+n]
		root, err := folderRoot(folder)
		if err != nil {
			return 0, err
		}
		err = h.Append(
			codec.Field{Name: root + "Length", Default: int32(n), Kind: codec.Long},
			codec.Field{Name: root, Default: append([]byte{}, folder...), Kind: codec.Bytes, Len: n},
		)
		if err != nil {
			return 0, err
		}
		h.folders = append(h.folders, root)
		off += n
	}
	return off, nil
}
