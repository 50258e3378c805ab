package mqi

import (
	"encoding/binary"

	"github.com/danmuck/mqlink/internal/mqi/cmqc"
	"github.com/danmuck/mqlink/internal/mqi/codec"
)

// DefaultPropertyBufferLength is the first-attempt value buffer for
// property inquiries. A value that does not fit comes back as
// MQRC_PROPERTY_VALUE_TOO_BIG with the needed length, and the caller
// re-issues with a bigger maximum.
const DefaultPropertyBufferLength = 64

// MessageHandle carries message properties across puts and gets.
type MessageHandle struct {
	qm   *QueueManager
	hmsg Hmsg
}

// NewMessageHandle creates a handle via MQCRTMH. A nil cmho uses default
// validation.
func NewMessageHandle(qm *QueueManager, cmho *codec.Structure) (*MessageHandle, error) {
	hconn, err := qm.Handle()
	if err != nil {
		return nil, err
	}
	if cmho == nil {
		cmho = qm.env.NewCMHO()
	}
	cmhoBytes, err := cmho.Pack()
	if err != nil {
		return nil, err
	}
	hmsg, cc, rc := qm.drv.CrtMh(hconn, cmhoBytes)
	if err := check("MQCRTMH", cc, rc); err != nil {
		return nil, err
	}
	return &MessageHandle{qm: qm, hmsg: hmsg}, nil
}

// Handle returns the message handle for get/put options that carry one.
func (h *MessageHandle) Handle() Hmsg { return h.hmsg }

// Delete releases the handle.
func (h *MessageHandle) Delete() error {
	hconn, err := h.qm.Handle()
	if err != nil {
		return err
	}
	cc, rc := h.qm.drv.DltMh(hconn, h.hmsg)
	return check("MQDLTMH", cc, rc)
}

// PropertyOptions tunes a property inquiry.
type PropertyOptions struct {
	Impo           *codec.Structure
	Pd             *codec.Structure
	Type           int32 // MQTYPE_AS_SET accepts whatever is stored
	MaxValueLength int32 // 0 means DefaultPropertyBufferLength
}

// Property reads one property via MQINQMP, decoding the returned bytes by
// the reported type.
func (h *MessageHandle) Property(name string, opts *PropertyOptions) (any, error) {
	hconn, err := h.qm.Handle()
	if err != nil {
		return nil, err
	}
	if opts == nil {
		opts = &PropertyOptions{}
	}
	impo := opts.Impo
	if impo == nil {
		impo = h.qm.env.NewIMPO()
	}
	pd := opts.Pd
	if pd == nil {
		pd = h.qm.env.NewPD()
	}
	maxLength := opts.MaxValueLength
	if maxLength <= 0 {
		maxLength = DefaultPropertyBufferLength
	}
	impoBytes, err := impo.Pack()
	if err != nil {
		return nil, err
	}
	pdBytes, err := pd.Pack()
	if err != nil {
		return nil, err
	}
	value, retType, valueLength, cc, rc := h.qm.drv.InqMp(hconn, h.hmsg, impoBytes, name, pdBytes, opts.Type, maxLength)
	if err := check("MQINQMP", cc, rc); err != nil {
		return nil, err
	}
	if int(valueLength) < len(value) {
		value = value[:valueLength]
	}
	return decodeProperty(value, retType)
}

func decodeProperty(value []byte, propType int32) (any, error) {
	switch propType {
	case cmqc.MQTYPE_STRING:
		return string(value), nil
	case cmqc.MQTYPE_BYTE_STRING:
		return value, nil
	case cmqc.MQTYPE_INT32:
		if len(value) != 4 {
			return nil, usagef("int32 property value has %d bytes", len(value))
		}
		return int32(binary.LittleEndian.Uint32(value)), nil
	case cmqc.MQTYPE_INT64:
		if len(value) != 8 {
			return nil, usagef("int64 property value has %d bytes", len(value))
		}
		return int64(binary.LittleEndian.Uint64(value)), nil
	case cmqc.MQTYPE_BOOLEAN:
		if len(value) != 1 {
			return nil, usagef("boolean property value has %d bytes", len(value))
		}
		return value[0] != 0, nil
	}
	return value, nil
}

// SetPropertyOptions tunes a property set.
type SetPropertyOptions struct {
	Smpo *codec.Structure
	Pd   *codec.Structure
	Type int32
}

// SetProperty writes one property via MQSETMP. Strings, byte slices,
// integers and booleans encode themselves; anything else needs an
// explicit type with pre-encoded bytes.
func (h *MessageHandle) SetProperty(name string, value any, opts *SetPropertyOptions) error {
	hconn, err := h.qm.Handle()
	if err != nil {
		return err
	}
	if opts == nil {
		opts = &SetPropertyOptions{}
	}
	smpo := opts.Smpo
	if smpo == nil {
		smpo = h.qm.env.NewSMPO()
	}
	pd := opts.Pd
	if pd == nil {
		pd = h.qm.env.NewPD()
	}

	encoded, propType, err := encodeProperty(value, opts.Type)
	if err != nil {
		return err
	}
	smpoBytes, err := smpo.Pack()
	if err != nil {
		return err
	}
	pdBytes, err := pd.Pack()
	if err != nil {
		return err
	}
	cc, rc := h.qm.drv.SetMp(hconn, h.hmsg, smpoBytes, name, pdBytes, propType, encoded)
	return check("MQSETMP", cc, rc)
}

func encodeProperty(value any, explicitType int32) ([]byte, int32, error) {
	switch v := value.(type) {
	case string:
		return []byte(v), cmqc.MQTYPE_STRING, nil
	case []byte:
		if explicitType != cmqc.MQTYPE_AS_SET {
			return v, explicitType, nil
		}
		return v, cmqc.MQTYPE_BYTE_STRING, nil
	case int32:
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, uint32(v))
		return buf, cmqc.MQTYPE_INT32, nil
	case int:
		buf := make([]byte, 8)
		binary.LittleEndian.PutUint64(buf, uint64(int64(v)))
		return buf, cmqc.MQTYPE_INT64, nil
	case int64:
		buf := make([]byte, 8)
		binary.LittleEndian.PutUint64(buf, uint64(v))
		return buf, cmqc.MQTYPE_INT64, nil
	case bool:
		b := byte(0)
		if v {
			b = 1
		}
		return []byte{b}, cmqc.MQTYPE_BOOLEAN, nil
	}
	return nil, 0, usagef("property value type %T needs explicit type and encoded bytes", value)
}
