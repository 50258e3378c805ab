package codec

import (
	"sync"
	"sync/atomic"
)

// Variable-length string attachments. An MQCHARV block on the wire is five
// scalar fields (pointer, offset, buffer size, length, CCSID); the pointer
// is an opaque surrogate resolved through a process-wide registry, never
// followed by the peer. Surrogate 0 means no attachment.

var (
	vsMu      sync.Mutex
	vsCounter uint64
	vsTable   = map[uint64][]byte{}
)

func registerVS(value []byte) uint64 {
	id := atomic.AddUint64(&vsCounter, 1)
	vsMu.Lock()
	vsTable[id] = value
	vsMu.Unlock()
	return id
}

// ResolveVS returns the bytes behind a pointer surrogate, or nil for an
// unknown or zero surrogate. Drivers use this to read variable-length
// string fields out of packed structures.
func ResolveVS(surrogate uint64) []byte {
	if surrogate == 0 {
		return nil
	}
	vsMu.Lock()
	defer vsMu.Unlock()
	v, ok := vsTable[surrogate]
	if !ok {
		return nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out
}

// SetVS attaches a variable-length string value to the quintuple of fields
// named <base>VSPtr, <base>VSOffset, <base>VSBufSize, <base>VSLength,
// <base>VSCCSID. Length is taken from the value; the remaining scalars keep
// their schema defaults unless the caller sets them.
func (s *Structure) SetVS(base string, value []byte) error {
	v := make([]byte, len(value))
	copy(v, value)
	id := registerVS(v)
	if err := s.Set(base+"VSPtr", id); err != nil {
		return err
	}
	if err := s.Set(base+"VSLength", int32(len(v))); err != nil {
		return err
	}
	s.vs[base] = v
	return nil
}

// GetVS returns the attachment stored under base, resolving through the
// pointer surrogate when the structure was unpacked rather than locally
// populated. Returns nil when nothing is attached.
func (s *Structure) GetVS(base string) ([]byte, error) {
	if v, ok := s.vs[base]; ok {
		out := make([]byte, len(v))
		copy(out, v)
		return out, nil
	}
	ptr, err := s.GetPtr(base + "VSPtr")
	if err != nil {
		return nil, err
	}
	if ptr == 0 {
		return nil, nil
	}
	n, err := s.GetInt32(base + "VSLength")
	if err != nil {
		return nil, err
	}
	v := ResolveVS(ptr)
	if v == nil {
		return nil, nil
	}
	if int(n) >= 0 && int(n) < len(v) {
		v = v[:n]
	}
	return v, nil
}
