package mqi

import (
	"github.com/rs/zerolog"

	"github.com/danmuck/mqlink/internal/logging"
	"github.com/danmuck/mqlink/internal/mqi/cmqc"
	"github.com/danmuck/mqlink/internal/mqi/codec"
	"github.com/danmuck/mqlink/internal/mqi/wire"
)

// DefaultGetBufferLength is the first-attempt buffer size for gets with no
// explicit maximum.
const DefaultGetBufferLength = 4096

// Queue is one queue object on a connection. Open is deferred: holding a
// descriptor without options postpones MQOPEN until the first verb, which
// supplies the access mode it needs.
type Queue struct {
	qm  *QueueManager
	log zerolog.Logger

	od       *codec.Structure
	openOpts int32
	hasOpts  bool

	hobj Hobj
	open bool
}

// NewQueue returns a closed queue with no descriptor; Open must run before
// any verb.
func NewQueue(qm *QueueManager) *Queue {
	return &Queue{qm: qm, log: logging.New("mqi.queue")}
}

// NewDeferredQueue holds a descriptor and defers the open to the first
// verb. desc is a queue name or a prebuilt object descriptor.
func NewDeferredQueue(qm *QueueManager, desc any) (*Queue, error) {
	q := NewQueue(qm)
	od, err := q.descriptor(desc)
	if err != nil {
		return nil, err
	}
	q.od = od
	return q, nil
}

// OpenQueue opens immediately with explicit options.
func OpenQueue(qm *QueueManager, desc any, openOpts int32) (*Queue, error) {
	q := NewQueue(qm)
	if err := q.Open(desc, openOpts); err != nil {
		return nil, err
	}
	return q, nil
}

func (q *Queue) descriptor(desc any) (*codec.Structure, error) {
	switch d := desc.(type) {
	case string:
		od := q.qm.env.NewOD()
		if err := od.Set("ObjectName", d); err != nil {
			return nil, err
		}
		return od, nil
	case *codec.Structure:
		return d, nil
	}
	return nil, usagef("queue descriptor must be a name or an object descriptor")
}

// Open issues MQOPEN. Omitting openOpts stores the descriptor and defers
// to the first verb; at most one options value is accepted.
func (q *Queue) Open(desc any, openOpts ...int32) error {
	if len(openOpts) > 1 {
		return usagef("open takes at most one options value")
	}
	od, err := q.descriptor(desc)
	if err != nil {
		return err
	}
	q.od = od
	if len(openOpts) == 0 {
		return nil
	}
	return q.realOpen(openOpts[0])
}

func (q *Queue) realOpen(openOpts int32) error {
	if q.od == nil {
		return usagef("open with no descriptor")
	}
	hconn, err := q.qm.Handle()
	if err != nil {
		return err
	}
	odBytes, err := q.od.Pack()
	if err != nil {
		return err
	}
	hobj, odOut, cc, rc := q.qm.drv.Open(hconn, odBytes, openOpts)
	if err := check("MQOPEN", cc, rc); err != nil {
		return err
	}
	if odOut != nil {
		if err := q.od.Unpack(odOut); err != nil {
			return err
		}
	}
	q.hobj = hobj
	q.open = true
	q.openOpts = openOpts
	q.hasOpts = true
	name, _ := q.od.GetString("ObjectName")
	q.log.Debug().Str("queue", name).Int32("options", openOpts).Msg("opened")
	return nil
}

// ensureOpen lazily opens with the verb's required access mode.
func (q *Queue) ensureOpen(verbOpts int32) error {
	if q.open {
		return nil
	}
	if q.od == nil {
		return usagef("queue not open and no descriptor to open with")
	}
	return q.realOpen(verbOpts | cmqc.MQOO_FAIL_IF_QUIESCING)
}

// IsOpen reports whether the object handle is live.
func (q *Queue) IsOpen() bool { return q.open }

// Handle returns the object handle of an open queue.
func (q *Queue) Handle() (Hobj, error) {
	if !q.open {
		return 0, usagef("queue not open")
	}
	return q.hobj, nil
}

// SetHandle adopts an already-open object handle, as with the queue a
// managed subscription returns.
func (q *Queue) SetHandle(hobj Hobj) {
	q.hobj = hobj
	q.open = true
	q.hasOpts = false
}

// Put sends one message. Updated descriptor and options unpack back into
// the caller's structures.
func (q *Queue) Put(msg []byte, md, pmo *codec.Structure) error {
	if err := q.ensureOpen(cmqc.MQOO_OUTPUT); err != nil {
		return err
	}
	hconn, err := q.qm.Handle()
	if err != nil {
		return err
	}
	if md == nil {
		md = q.qm.env.NewMD()
	}
	if pmo == nil {
		pmo = q.qm.env.NewPMO()
	}
	mdBytes, err := md.Pack()
	if err != nil {
		return err
	}
	pmoBytes, err := pmo.Pack()
	if err != nil {
		return err
	}
	mdOut, pmoOut, cc, rc := q.qm.drv.Put(hconn, q.hobj, mdBytes, pmoBytes, msg)
	if err := check("MQPUT", cc, rc); err != nil {
		return err
	}
	if err := md.Unpack(mdOut); err != nil {
		return err
	}
	return pmo.Unpack(pmoOut)
}

// Get retrieves one message. maxLength < 0 means no caller limit: the get
// runs with a default buffer and retries exactly once at the reported
// length when the message did not fit. An explicit maxLength surfaces the
// truncation failure instead.
func (q *Queue) Get(maxLength int, md, gmo *codec.Structure) ([]byte, error) {
	if err := q.ensureOpen(cmqc.MQOO_INPUT_AS_Q_DEF); err != nil {
		return nil, err
	}
	hconn, err := q.qm.Handle()
	if err != nil {
		return nil, err
	}
	if md == nil {
		md = q.qm.env.NewMD()
	}
	if gmo == nil {
		gmo = q.qm.env.NewGMO()
	}

	length := int32(maxLength)
	unlimited := maxLength < 0
	if unlimited {
		length = DefaultGetBufferLength
	}

	body, dataLength, err := q.getOnce(hconn, md, gmo, length)
	if err == nil {
		return body, nil
	}
	var mqe *MQIError
	if !unlimited || !asMQIError(err, &mqe) || mqe.Reason != cmqc.MQRC_TRUNCATED_MSG_FAILED {
		return nil, err
	}
	// One retry at the reported length. The failed attempt already updated
	// the descriptor, so its identity fields ride into the retry.
	q.log.Debug().Int32("length", dataLength).Msg("get retry after truncation")
	body, _, err = q.getOnce(hconn, md, gmo, dataLength)
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (q *Queue) getOnce(hconn Hconn, md, gmo *codec.Structure, maxLength int32) ([]byte, int32, error) {
	mdBytes, err := md.Pack()
	if err != nil {
		return nil, 0, err
	}
	gmoBytes, err := gmo.Pack()
	if err != nil {
		return nil, 0, err
	}
	body, mdOut, gmoOut, dataLength, cc, rc := q.qm.drv.Get(hconn, q.hobj, mdBytes, gmoBytes, maxLength)
	if mdOut != nil {
		if uerr := md.Unpack(mdOut); uerr != nil {
			return nil, 0, uerr
		}
	}
	if gmoOut != nil {
		if uerr := gmo.Unpack(gmoOut); uerr != nil {
			return nil, 0, uerr
		}
	}
	if err := check("MQGET", cc, rc); err != nil {
		return nil, dataLength, err
	}
	return body, dataLength, nil
}

// Inquire reads one queue attribute.
func (q *Queue) Inquire(selector int32) (any, error) {
	if err := q.ensureOpen(cmqc.MQOO_INQUIRE); err != nil {
		return nil, err
	}
	hconn, err := q.qm.Handle()
	if err != nil {
		return nil, err
	}
	attrs, cc, rc := q.qm.drv.Inq(hconn, q.hobj, []int32{selector})
	if err := check("MQINQ", cc, rc); err != nil {
		return nil, err
	}
	v, ok := attrs[selector]
	if !ok {
		return nil, &MQIError{Verb: "MQINQ", Comp: cmqc.MQCC_FAILED, Reason: cmqc.MQRC_SELECTOR_ERROR}
	}
	return v, nil
}

// Set writes queue attributes.
func (q *Queue) Set(attrs map[int32]any) error {
	if err := q.ensureOpen(cmqc.MQOO_SET); err != nil {
		return err
	}
	hconn, err := q.qm.Handle()
	if err != nil {
		return err
	}
	cc, rc := q.qm.drv.Set(hconn, q.hobj, attrs)
	return check("MQSET", cc, rc)
}

// Close releases the object handle and forgets the stored descriptor and
// options, so a reused Queue starts the truth table over.
func (q *Queue) Close(options int32) error {
	if !q.open {
		return usagef("close on unopened queue")
	}
	hconn, err := q.qm.Handle()
	if err != nil {
		return err
	}
	cc, rc := q.qm.drv.Close(hconn, q.hobj, options)
	q.open = false
	q.od = nil
	q.hasOpts = false
	if err := check("MQCLOSE", cc, rc); err != nil {
		return err
	}
	return nil
}

// asMQIError is errors.As for the one type the verb paths branch on.
func asMQIError(err error, target **MQIError) bool {
	e, ok := err.(*MQIError)
	if ok {
		*target = e
	}
	return ok
}

// PutRFH2 packs the extensible headers ahead of the body and sends the
// result. The descriptor format flips to the header format; each header's
// byte order chains from the encoding in front of it.
func (q *Queue) PutRFH2(msg []byte, md, pmo *codec.Structure, headers []*wire.RFH2) error {
	if md == nil {
		md = q.qm.env.NewMD()
	}
	if len(headers) == 0 {
		return q.Put(msg, md, pmo)
	}
	encoding, err := md.GetInt32("Encoding")
	if err != nil {
		return err
	}
	if err := md.Set("Format", cmqc.MQFMT_RF_HEADER_2); err != nil {
		return err
	}
	var buf []byte
	for _, h := range headers {
		packed, err := h.Pack(encoding)
		if err != nil {
			return err
		}
		buf = append(buf, packed...)
		if encoding, err = h.GetInt32("Encoding"); err != nil {
			return err
		}
	}
	buf = append(buf, msg...)
	return q.Put(buf, md, pmo)
}

// GetRFH2 retrieves one message and strips its chain of extensible
// headers, returning the remaining body and the headers in order.
func (q *Queue) GetRFH2(maxLength int, md, gmo *codec.Structure) ([]byte, []*wire.RFH2, error) {
	if md == nil {
		md = q.qm.env.NewMD()
	}
	body, err := q.Get(maxLength, md, gmo)
	if err != nil {
		return nil, nil, err
	}
	format, err := md.GetString("Format")
	if err != nil {
		return nil, nil, err
	}
	encoding, err := md.GetInt32("Encoding")
	if err != nil {
		return nil, nil, err
	}
	var headers []*wire.RFH2
	for format == trimmedRFH2Format {
		h := wire.NewRFH2()
		n, err := h.Unpack(body, encoding)
		if err != nil {
			return nil, nil, err
		}
		headers = append(headers, h)
		body = body[n:]
		if format, err = h.GetString("Format"); err != nil {
			return nil, nil, err
		}
		if encoding, err = h.GetInt32("Encoding"); err != nil {
			return nil, nil, err
		}
	}
	return body, headers, nil
}

// Char fields come back space-trimmed.
const trimmedRFH2Format = "MQHRF2"
