// Package codec owns the schema-driven pack/unpack engine for fixed-layout
// MQI parameter blocks.
//
// Ownership boundary:
// - ordered field schemas and their canonical value store
// - byte-exact pack/unpack with a switchable byte order
// - variable-length string attachments (MQCHARV-style quintuples)
package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
)

// Kind identifies a field's wire representation.
type Kind int

const (
	// Long is a 32-bit signed integer (MQLONG). Count > 1 makes it an array.
	Long Kind = iota
	// Int64 is a 64-bit signed integer.
	Int64
	// Char is a fixed-length character field, space padded on the wire.
	Char
	// Bytes is a fixed-length byte field, NUL padded on the wire.
	Bytes
	// Ptr is an 8-byte opaque pointer surrogate. The peer never follows it
	// directly; attachments resolve through the surrogate registry.
	Ptr
)

var (
	ErrLengthMismatch = errors.New("codec: buffer length mismatch")
	ErrDuplicateField = errors.New("codec: duplicate field name")
)

// FieldError reports a per-field contract violation.
type FieldError struct {
	Struc  string
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("codec: %s.%s: %s", e.Struc, e.Field, e.Reason)
}

// Field is one schema entry: name, default value and wire format.
type Field struct {
	Name    string
	Default any
	Kind    Kind
	Len     int // byte length for Char/Bytes
	Count   int // element count for Long/Int64 arrays; 0 or 1 means scalar
}

func (f Field) count() int {
	if f.Count > 1 {
		return f.Count
	}
	return 1
}

// Width returns the packed byte width of the field.
func (f Field) Width() int {
	switch f.Kind {
	case Long:
		return 4 * f.count()
	case Int64:
		return 8 * f.count()
	case Char, Bytes:
		return f.Len
	case Ptr:
		return 8
	default:
		return 0
	}
}

// Structure is a live instance of a field schema: the schema defines wire
// order and defaults, the value store holds exactly one value per field.
type Structure struct {
	name   string
	fields []Field
	index  map[string]int
	values []any
	vs     map[string][]byte
	order  binary.ByteOrder
}

// New builds a Structure over the given schema, copying the field list and
// seeding every value from its default.
func New(name string, fields []Field) (*Structure, error) {
	s := &Structure{
		name:   name,
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
		values: make([]any, 0, len(fields)),
		vs:     make(map[string][]byte),
		order:  binary.LittleEndian,
	}
	if err := s.Append(fields...); err != nil {
		return nil, err
	}
	return s, nil
}

// MustNew is New for schemas known correct at build time.
func MustNew(name string, fields []Field) *Structure {
	s, err := New(name, fields)
	if err != nil {
		panic(err)
	}
	return s
}

// Append grows the schema in place, seeding each new field from its
// default. Used by the extensible header codec to attach folders.
func (s *Structure) Append(fields ...Field) error {
	for _, f := range fields {
		if _, dup := s.index[f.Name]; dup {
			return fmt.Errorf("%w: %s.%s", ErrDuplicateField, s.name, f.Name)
		}
		v, err := s.normalize(f, f.Default)
		if err != nil {
			return err
		}
		s.index[f.Name] = len(s.fields)
		s.fields = append(s.fields, f)
		s.values = append(s.values, v)
	}
	return nil
}

// SetOrder switches the byte order for every multi-byte scalar in the
// structure. The extensible header codec uses this for encoding-negotiated
// big-endian packing.
func (s *Structure) SetOrder(order binary.ByteOrder) {
	s.order = order
}

// Name returns the schema name, e.g. "MQMD".
func (s *Structure) Name() string { return s.name }

// Fields returns a copy of the schema in wire order.
func (s *Structure) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Length returns the exact packed byte length without packing.
func (s *Structure) Length() int {
	total := 0
	for _, f := range s.fields {
		total += f.Width()
	}
	return total
}

// Get returns the current value of a field.
func (s *Structure) Get(name string) (any, error) {
	i, ok := s.index[name]
	if !ok {
		return nil, &FieldError{Struc: s.name, Field: name, Reason: "unknown field"}
	}
	return s.values[i], nil
}

// Set assigns a field value. Assigning a name absent from the schema, or a
// value the field's wire format cannot hold, is an error.
func (s *Structure) Set(name string, value any) error {
	i, ok := s.index[name]
	if !ok {
		return &FieldError{Struc: s.name, Field: name, Reason: "unknown field"}
	}
	v, err := s.normalize(s.fields[i], value)
	if err != nil {
		return err
	}
	s.values[i] = v
	return nil
}

// Apply batch-sets fields from a map. The first invalid name or value
// aborts the batch.
func (s *Structure) Apply(values map[string]any) error {
	for name, v := range values {
		if err := s.Set(name, v); err != nil {
			return err
		}
	}
	return nil
}

// Values returns the current field values keyed by name.
func (s *Structure) Values() map[string]any {
	out := make(map[string]any, len(s.fields))
	for i, f := range s.fields {
		out[f.Name] = s.values[i]
	}
	return out
}

// GetInt32 returns a Long field's scalar value.
func (s *Structure) GetInt32(name string) (int32, error) {
	v, err := s.Get(name)
	if err != nil {
		return 0, err
	}
	n, ok := v.(int32)
	if !ok {
		return 0, &FieldError{Struc: s.name, Field: name, Reason: "not an int32 field"}
	}
	return n, nil
}

// GetInt64 returns an Int64 field's scalar value.
func (s *Structure) GetInt64(name string) (int64, error) {
	v, err := s.Get(name)
	if err != nil {
		return 0, err
	}
	n, ok := v.(int64)
	if !ok {
		return 0, &FieldError{Struc: s.name, Field: name, Reason: "not an int64 field"}
	}
	return n, nil
}

// GetString returns a Char field's logical (unpadded) value.
func (s *Structure) GetString(name string) (string, error) {
	v, err := s.Get(name)
	if err != nil {
		return "", err
	}
	str, ok := v.(string)
	if !ok {
		return "", &FieldError{Struc: s.name, Field: name, Reason: "not a char field"}
	}
	return str, nil
}

// GetBytes returns a Bytes field's value.
func (s *Structure) GetBytes(name string) ([]byte, error) {
	v, err := s.Get(name)
	if err != nil {
		return nil, err
	}
	b, ok := v.([]byte)
	if !ok {
		return nil, &FieldError{Struc: s.name, Field: name, Reason: "not a bytes field"}
	}
	return b, nil
}

// GetPtr returns a Ptr field's surrogate value.
func (s *Structure) GetPtr(name string) (uint64, error) {
	v, err := s.Get(name)
	if err != nil {
		return 0, err
	}
	p, ok := v.(uint64)
	if !ok {
		return 0, &FieldError{Struc: s.name, Field: name, Reason: "not a pointer field"}
	}
	return p, nil
}

// Pack serializes every field in schema order into a flat buffer.
func (s *Structure) Pack() ([]byte, error) {
	buf := make([]byte, s.Length())
	off := 0
	for i, f := range s.fields {
		if err := s.packField(buf[off:off+f.Width()], f, s.values[i]); err != nil {
			return nil, err
		}
		off += f.Width()
	}
	return buf, nil
}

// Unpack overwrites every field value from the buffer in schema order. The
// buffer must be exactly the schema's packed length.
func (s *Structure) Unpack(buf []byte) error {
	if len(buf) != s.Length() {
		return fmt.Errorf("%w: %s wants %d bytes, got %d", ErrLengthMismatch, s.name, s.Length(), len(buf))
	}
	off := 0
	for i, f := range s.fields {
		s.values[i] = s.unpackField(buf[off:off+f.Width()], f)
		off += f.Width()
	}
	// Attachments now resolve through the unpacked surrogates.
	s.vs = make(map[string][]byte)
	return nil
}

func (s *Structure) packField(dst []byte, f Field, v any) error {
	switch f.Kind {
	case Long:
		if f.count() == 1 {
			s.order.PutUint32(dst, uint32(v.(int32)))
			return nil
		}
		arr := v.([]int32)
		for i, n := range arr {
			s.order.PutUint32(dst[i*4:], uint32(n))
		}
	case Int64:
		s.order.PutUint64(dst, uint64(v.(int64)))
	case Char:
		str := v.(string)
		copy(dst, str)
		for i := len(str); i < f.Len; i++ {
			dst[i] = ' '
		}
	case Bytes:
		copy(dst, v.([]byte))
	case Ptr:
		s.order.PutUint64(dst, v.(uint64))
	}
	return nil
}

func (s *Structure) unpackField(src []byte, f Field) any {
	switch f.Kind {
	case Long:
		if f.count() == 1 {
			return int32(s.order.Uint32(src))
		}
		arr := make([]int32, f.count())
		for i := range arr {
			arr[i] = int32(s.order.Uint32(src[i*4:]))
		}
		return arr
	case Int64:
		return int64(s.order.Uint64(src))
	case Char:
		return strings.TrimRight(string(src), " \x00")
	case Bytes:
		// Full field width; trailing NULs are significant in binary ids.
		out := make([]byte, len(src))
		copy(out, src)
		return out
	case Ptr:
		return s.order.Uint64(src)
	}
	return nil
}

// normalize coerces a caller value into the field's canonical stored form.
func (s *Structure) normalize(f Field, v any) (any, error) {
	bad := func(reason string) (any, error) {
		return nil, &FieldError{Struc: s.name, Field: f.Name, Reason: reason}
	}
	switch f.Kind {
	case Long:
		if f.count() > 1 {
			arr, ok := v.([]int32)
			if !ok {
				return bad("array field wants []int32")
			}
			if len(arr) != f.count() {
				return bad(fmt.Sprintf("array field wants %d elements, got %d", f.count(), len(arr)))
			}
			out := make([]int32, len(arr))
			copy(out, arr)
			return out, nil
		}
		switch n := v.(type) {
		case int32:
			return n, nil
		case int:
			return int32(n), nil
		case int64:
			return int32(n), nil
		default:
			return bad("wants an int32")
		}
	case Int64:
		switch n := v.(type) {
		case int64:
			return n, nil
		case int:
			return int64(n), nil
		case int32:
			return int64(n), nil
		default:
			return bad("wants an int64")
		}
	case Char:
		str, ok := v.(string)
		if !ok {
			return bad("wants a string")
		}
		if len(str) > f.Len {
			return bad(fmt.Sprintf("string longer than field width %d", f.Len))
		}
		return str, nil
	case Bytes:
		var b []byte
		switch raw := v.(type) {
		case []byte:
			b = raw
		case string:
			b = []byte(raw)
		default:
			return bad("wants bytes")
		}
		if len(b) > f.Len {
			return bad(fmt.Sprintf("value longer than field width %d", f.Len))
		}
		out := make([]byte, len(b))
		copy(out, b)
		return out, nil
	case Ptr:
		switch n := v.(type) {
		case uint64:
			return n, nil
		case int:
			return uint64(n), nil
		case int32:
			return uint64(n), nil
		case int64:
			return uint64(n), nil
		default:
			return bad("wants a pointer surrogate")
		}
	}
	return bad("unknown field kind")
}

// String pretty-prints the structure, one "Name: value" line per field.
func (s *Structure) String() string {
	var b strings.Builder
	for i, f := range s.fields {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s: %v", f.Name, s.values[i])
	}
	return b.String()
}
