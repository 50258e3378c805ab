// Package memdriver is an in-memory transport driver: every verb runs
// against process-local state, which keeps the verb layer testable without
// a broker and lets the demo tools run end to end.
package memdriver

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/danmuck/mqlink/internal/logging"
	"github.com/danmuck/mqlink/internal/mqi"
	"github.com/danmuck/mqlink/internal/mqi/cmqc"
	"github.com/danmuck/mqlink/internal/mqi/codec"
	"github.com/danmuck/mqlink/internal/mqi/wire"
)

type message struct {
	md   *codec.Structure
	body []byte
}

type queueState struct {
	name     string
	attrs    map[int32]any
	messages []*message
	dynamic  bool
}

type objectKind int

const (
	objQueue objectKind = iota
	objQueueManager
	objTopic
	objSubscription
)

type object struct {
	kind     objectKind
	queue    *queueState
	topic    string
	openOpts int32
}

type property struct {
	propType int32
	value    []byte
}

type subscription struct {
	topic string
	queue *queueState
}

type conn struct {
	qmgr    string
	objects map[mqi.Hobj]*object
	subs    map[mqi.Hobj]*subscription
	handles map[mqi.Hmsg]map[string]property
	// Uncommitted unit of work: puts waiting to land, gets waiting to be
	// forgotten.
	pendingPuts []pendingPut
	pendingGets []pendingGet
}

type pendingPut struct {
	queue *queueState
	msg   *message
}

type pendingGet struct {
	queue *queueState
	msg   *message
}

// Driver is the in-memory implementation of mqi.Driver.
type Driver struct {
	mu  sync.Mutex
	env *wire.Env
	log zerolog.Logger

	qmgrName string
	queues   map[string]*queueState
	subs     []*subscription

	nextHconn mqi.Hconn
	nextHobj  mqi.Hobj
	nextHmsg  mqi.Hmsg
	conns     map[mqi.Hconn]*conn
}

// New builds a driver hosting one queue manager.
func New(qmgrName string) *Driver {
	return NewAt(qmgrName, wire.Default())
}

// NewAt pins the driver to a structure environment; it must match the one
// the client packs with.
func NewAt(qmgrName string, env *wire.Env) *Driver {
	return &Driver{
		env:      env,
		log:      logging.New("memdriver"),
		qmgrName: qmgrName,
		queues:   make(map[string]*queueState),
		conns:    make(map[mqi.Hconn]*conn),
	}
}

// DefineQueue creates a local queue.
func (d *Driver) DefineQueue(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.defineQueue(name, false)
}

func (d *Driver) defineQueue(name string, dynamic bool) *queueState {
	now := time.Now()
	q := &queueState{
		name:    name,
		dynamic: dynamic,
		attrs: map[int32]any{
			cmqc.MQCA_Q_NAME:            name,
			cmqc.MQCA_CREATION_DATE:     now.Format("2006-01-02"),
			cmqc.MQCA_CREATION_TIME:     now.Format("15.04.05"),
			cmqc.MQIA_CURRENT_Q_DEPTH:   int32(0),
			cmqc.MQIA_MAX_Q_DEPTH:       int32(5000),
			cmqc.MQIA_MAX_MSG_LENGTH:    int32(4 * 1024 * 1024),
			cmqc.MQIA_INHIBIT_GET:       int32(0),
			cmqc.MQIA_INHIBIT_PUT:       int32(0),
			cmqc.MQIA_Q_TYPE:            int32(1),
			cmqc.MQIA_OPEN_INPUT_COUNT:  int32(0),
			cmqc.MQIA_OPEN_OUTPUT_COUNT: int32(0),
		},
	}
	d.queues[name] = q
	return q
}

// Depth reports a queue's current depth, for tests.
func (d *Driver) Depth(name string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	q, ok := d.queues[name]
	if !ok {
		return -1
	}
	return len(q.messages)
}

func (d *Driver) Conn(name string) (mqi.Hconn, int32, int32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if name != d.qmgrName {
		return 0, cmqc.MQCC_FAILED, cmqc.MQRC_Q_MGR_NAME_ERROR
	}
	d.nextHconn++
	h := d.nextHconn
	d.conns[h] = &conn{
		qmgr:    name,
		objects: make(map[mqi.Hobj]*object),
		subs:    make(map[mqi.Hobj]*subscription),
		handles: make(map[mqi.Hmsg]map[string]property),
	}
	d.log.Debug().Str("qmgr", name).Int32("hconn", int32(h)).Msg("connection accepted")
	return h, cmqc.MQCC_OK, cmqc.MQRC_NONE
}

func (d *Driver) Connx(name string, options int32, cd, sco []byte) (mqi.Hconn, int32, int32) {
	if cd != nil {
		probe := d.env.NewCD()
		if err := probe.Unpack(cd); err != nil {
			return 0, cmqc.MQCC_FAILED, cmqc.MQRC_OPTIONS_ERROR
		}
		channelType, _ := probe.GetInt32("ChannelType")
		connName, _ := probe.GetString("ConnectionName")
		if channelType == cmqc.MQCHT_CLNTCONN && connName == "" {
			return 0, cmqc.MQCC_FAILED, cmqc.MQRC_Q_MGR_NOT_AVAILABLE
		}
	}
	return d.Conn(name)
}

func (d *Driver) Disc(hconn mqi.Hconn) (int32, int32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	c, ok := d.conns[hconn]
	if !ok {
		return cmqc.MQCC_FAILED, cmqc.MQRC_HCONN_ERROR
	}
	// Dropping the connection backs out its open unit of work.
	d.rollback(c)
	delete(d.conns, hconn)
	return cmqc.MQCC_OK, cmqc.MQRC_NONE
}

func (d *Driver) connFor(hconn mqi.Hconn) (*conn, bool) {
	c, ok := d.conns[hconn]
	return c, ok
}

func (d *Driver) Open(hconn mqi.Hconn, odBytes []byte, options int32) (mqi.Hobj, []byte, int32, int32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	c, ok := d.connFor(hconn)
	if !ok {
		return 0, nil, cmqc.MQCC_FAILED, cmqc.MQRC_HCONN_ERROR
	}
	od := d.env.NewOD()
	if err := od.Unpack(odBytes); err != nil {
		return 0, nil, cmqc.MQCC_FAILED, cmqc.MQRC_OPTIONS_ERROR
	}
	objType, _ := od.GetInt32("ObjectType")

	obj := &object{openOpts: options}
	switch objType {
	case cmqc.MQOT_Q:
		name, _ := od.GetString("ObjectName")
		q, ok := d.queues[name]
		if !ok {
			return 0, nil, cmqc.MQCC_FAILED, cmqc.MQRC_UNKNOWN_OBJECT_NAME
		}
		obj.kind = objQueue
		obj.queue = q
		_ = od.Set("ResolvedQName", name)
	case cmqc.MQOT_Q_MGR:
		obj.kind = objQueueManager
	case cmqc.MQOT_TOPIC:
		obj.kind = objTopic
		obj.topic = topicOf(od)
	default:
		return 0, nil, cmqc.MQCC_FAILED, cmqc.MQRC_OPTIONS_ERROR
	}

	d.nextHobj++
	h := d.nextHobj
	c.objects[h] = obj
	odOut, err := od.Pack()
	if err != nil {
		return 0, nil, cmqc.MQCC_FAILED, cmqc.MQRC_OPTIONS_ERROR
	}
	return h, odOut, cmqc.MQCC_OK, cmqc.MQRC_NONE
}

// topicOf resolves the effective topic string: the variable-length object
// string when attached, the object name otherwise.
func topicOf(od *codec.Structure) string {
	if ptr, err := od.GetPtr("ObjectStringVSPtr"); err == nil && ptr != 0 {
		if v := codec.ResolveVS(ptr); v != nil {
			n, _ := od.GetInt32("ObjectStringVSLength")
			if int(n) > 0 && int(n) <= len(v) {
				v = v[:n]
			}
			return string(v)
		}
	}
	name, _ := od.GetString("ObjectName")
	return name
}

func (d *Driver) Close(hconn mqi.Hconn, hobj mqi.Hobj, options int32) (int32, int32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	c, ok := d.connFor(hconn)
	if !ok {
		return cmqc.MQCC_FAILED, cmqc.MQRC_HCONN_ERROR
	}
	if obj, ok := c.objects[hobj]; ok {
		if obj.kind == objQueue && obj.queue.dynamic && options&cmqc.MQCO_DELETE_PURGE != 0 {
			delete(d.queues, obj.queue.name)
		}
		delete(c.objects, hobj)
		return cmqc.MQCC_OK, cmqc.MQRC_NONE
	}
	if sub, ok := c.subs[hobj]; ok {
		d.removeSub(sub)
		delete(c.subs, hobj)
		return cmqc.MQCC_OK, cmqc.MQRC_NONE
	}
	return cmqc.MQCC_FAILED, cmqc.MQRC_HOBJ_ERROR
}

func (d *Driver) removeSub(target *subscription) {
	for i, s := range d.subs {
		if s == target {
			d.subs = append(d.subs[:i], d.subs[i+1:]...)
			return
		}
	}
}

func (d *Driver) Put(hconn mqi.Hconn, hobj mqi.Hobj, mdBytes, pmoBytes, body []byte) ([]byte, []byte, int32, int32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	c, ok := d.connFor(hconn)
	if !ok {
		return nil, nil, cmqc.MQCC_FAILED, cmqc.MQRC_HCONN_ERROR
	}
	obj, ok := c.objects[hobj]
	if !ok {
		return nil, nil, cmqc.MQCC_FAILED, cmqc.MQRC_HOBJ_ERROR
	}
	if obj.openOpts&cmqc.MQOO_OUTPUT == 0 {
		return nil, nil, cmqc.MQCC_FAILED, cmqc.MQRC_NOT_OPEN_FOR_OUTPUT
	}
	return d.deliver(c, obj, mdBytes, pmoBytes, body)
}

func (d *Driver) Put1(hconn mqi.Hconn, odBytes, mdBytes, pmoBytes, body []byte) ([]byte, []byte, int32, int32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	c, ok := d.connFor(hconn)
	if !ok {
		return nil, nil, cmqc.MQCC_FAILED, cmqc.MQRC_HCONN_ERROR
	}
	od := d.env.NewOD()
	if err := od.Unpack(odBytes); err != nil {
		return nil, nil, cmqc.MQCC_FAILED, cmqc.MQRC_OPTIONS_ERROR
	}
	objType, _ := od.GetInt32("ObjectType")
	obj := &object{openOpts: cmqc.MQOO_OUTPUT}
	switch objType {
	case cmqc.MQOT_Q:
		name, _ := od.GetString("ObjectName")
		q, ok := d.queues[name]
		if !ok {
			return nil, nil, cmqc.MQCC_FAILED, cmqc.MQRC_UNKNOWN_OBJECT_NAME
		}
		obj.kind = objQueue
		obj.queue = q
	case cmqc.MQOT_TOPIC:
		obj.kind = objTopic
		obj.topic = topicOf(od)
	default:
		return nil, nil, cmqc.MQCC_FAILED, cmqc.MQRC_OPTIONS_ERROR
	}
	return d.deliver(c, obj, mdBytes, pmoBytes, body)
}

func (d *Driver) deliver(c *conn, obj *object, mdBytes, pmoBytes, body []byte) ([]byte, []byte, int32, int32) {
	md := d.env.NewMD()
	if err := md.Unpack(mdBytes); err != nil {
		return nil, nil, cmqc.MQCC_FAILED, cmqc.MQRC_OPTIONS_ERROR
	}
	pmo := d.env.NewPMO()
	if err := pmo.Unpack(pmoBytes); err != nil {
		return nil, nil, cmqc.MQCC_FAILED, cmqc.MQRC_OPTIONS_ERROR
	}
	pmoOpts, _ := pmo.GetInt32("Options")

	msgID, _ := md.GetBytes("MsgId")
	if !idSet(msgID) || pmoOpts&cmqc.MQPMO_NEW_MSG_ID != 0 {
		u := uuid.New()
		_ = md.Set("MsgId", u[:])
	}
	if pmoOpts&cmqc.MQPMO_NEW_CORREL_ID != 0 {
		u := uuid.New()
		_ = md.Set("CorrelId", u[:])
	}
	now := time.Now().UTC()
	_ = md.Set("PutDate", now.Format("20060102"))
	_ = md.Set("PutTime", now.Format("15040500"))

	stored := d.env.NewMD()
	packed, err := md.Pack()
	if err != nil {
		return nil, nil, cmqc.MQCC_FAILED, cmqc.MQRC_OPTIONS_ERROR
	}
	_ = stored.Unpack(packed)
	msg := &message{md: stored, body: append([]byte{}, body...)}

	var targets []*queueState
	switch obj.kind {
	case objQueue:
		inhibit, _ := obj.queue.attrs[cmqc.MQIA_INHIBIT_PUT].(int32)
		if inhibit != 0 {
			return nil, nil, cmqc.MQCC_FAILED, cmqc.MQRC_PUT_INHIBITED
		}
		targets = []*queueState{obj.queue}
	case objTopic:
		for _, s := range d.subs {
			if s.topic == obj.topic {
				targets = append(targets, s.queue)
			}
		}
	default:
		return nil, nil, cmqc.MQCC_FAILED, cmqc.MQRC_HOBJ_ERROR
	}

	for _, q := range targets {
		if maxDepth, ok := q.attrs[cmqc.MQIA_MAX_Q_DEPTH].(int32); ok && int32(len(q.messages)) >= maxDepth {
			return nil, nil, cmqc.MQCC_FAILED, cmqc.MQRC_Q_FULL
		}
		if pmoOpts&cmqc.MQPMO_SYNCPOINT != 0 {
			c.pendingPuts = append(c.pendingPuts, pendingPut{queue: q, msg: msg})
		} else {
			q.messages = append(q.messages, msg)
			q.attrs[cmqc.MQIA_CURRENT_Q_DEPTH] = int32(len(q.messages))
		}
	}

	mdOut, err := md.Pack()
	if err != nil {
		return nil, nil, cmqc.MQCC_FAILED, cmqc.MQRC_OPTIONS_ERROR
	}
	pmoOut, err := pmo.Pack()
	if err != nil {
		return nil, nil, cmqc.MQCC_FAILED, cmqc.MQRC_OPTIONS_ERROR
	}
	return mdOut, pmoOut, cmqc.MQCC_OK, cmqc.MQRC_NONE
}

func (d *Driver) Get(hconn mqi.Hconn, hobj mqi.Hobj, mdBytes, gmoBytes []byte, maxLength int32) ([]byte, []byte, []byte, int32, int32, int32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	c, ok := d.connFor(hconn)
	if !ok {
		return nil, nil, nil, 0, cmqc.MQCC_FAILED, cmqc.MQRC_HCONN_ERROR
	}
	obj, ok := c.objects[hobj]
	if !ok || obj.kind != objQueue {
		return nil, nil, nil, 0, cmqc.MQCC_FAILED, cmqc.MQRC_HOBJ_ERROR
	}
	inputMask := cmqc.MQOO_INPUT_AS_Q_DEF | cmqc.MQOO_INPUT_SHARED | cmqc.MQOO_INPUT_EXCLUSIVE | cmqc.MQOO_BROWSE
	if obj.openOpts&inputMask == 0 {
		return nil, nil, nil, 0, cmqc.MQCC_FAILED, cmqc.MQRC_NOT_OPEN_FOR_INPUT
	}
	if inhibit, _ := obj.queue.attrs[cmqc.MQIA_INHIBIT_GET].(int32); inhibit != 0 {
		return nil, nil, nil, 0, cmqc.MQCC_FAILED, cmqc.MQRC_GET_INHIBITED
	}

	md := d.env.NewMD()
	if err := md.Unpack(mdBytes); err != nil {
		return nil, nil, nil, 0, cmqc.MQCC_FAILED, cmqc.MQRC_OPTIONS_ERROR
	}
	gmo := d.env.NewGMO()
	if err := gmo.Unpack(gmoBytes); err != nil {
		return nil, nil, nil, 0, cmqc.MQCC_FAILED, cmqc.MQRC_OPTIONS_ERROR
	}

	idx := d.match(obj.queue, md, gmo)
	if idx < 0 {
		return nil, nil, nil, 0, cmqc.MQCC_FAILED, cmqc.MQRC_NO_MSG_AVAILABLE
	}
	msg := obj.queue.messages[idx]
	dataLength := int32(len(msg.body))
	gmoOpts, _ := gmo.GetInt32("Options")

	if dataLength > maxLength && gmoOpts&cmqc.MQGMO_ACCEPT_TRUNCATED_MSG == 0 {
		// Message stays queued; the descriptor still comes back filled so
		// the caller can reissue against the same message.
		mdOut, _ := msg.md.Pack()
		gmoOut, _ := gmo.Pack()
		return nil, mdOut, gmoOut, dataLength, cmqc.MQCC_FAILED, cmqc.MQRC_TRUNCATED_MSG_FAILED
	}

	obj.queue.messages = append(obj.queue.messages[:idx], obj.queue.messages[idx+1:]...)
	obj.queue.attrs[cmqc.MQIA_CURRENT_Q_DEPTH] = int32(len(obj.queue.messages))
	if gmoOpts&cmqc.MQGMO_SYNCPOINT != 0 {
		c.pendingGets = append(c.pendingGets, pendingGet{queue: obj.queue, msg: msg})
	}

	body := msg.body
	cc, rc := cmqc.MQCC_OK, cmqc.MQRC_NONE
	if dataLength > maxLength {
		body = body[:maxLength]
		cc, rc = cmqc.MQCC_WARNING, cmqc.MQRC_TRUNCATED_MSG_ACCEPTED
	}
	_ = gmo.Set("ReturnedLength", dataLength)
	mdOut, _ := msg.md.Pack()
	gmoOut, _ := gmo.Pack()
	return append([]byte{}, body...), mdOut, gmoOut, dataLength, cc, rc
}

// idSet reports whether an id carries any nonzero byte. All-NUL ids are
// the "none" value.
func idSet(id []byte) bool {
	for _, b := range id {
		if b != 0 {
			return true
		}
	}
	return false
}

// match picks the first message honoring the descriptor's id match
// options. Unset ids match anything.
func (d *Driver) match(q *queueState, md *codec.Structure, gmo *codec.Structure) int {
	matchOpts, _ := gmo.GetInt32("MatchOptions")
	wantMsgID, _ := md.GetBytes("MsgId")
	wantCorrelID, _ := md.GetBytes("CorrelId")
	for i, msg := range q.messages {
		if matchOpts&cmqc.MQMO_MATCH_MSG_ID != 0 && idSet(wantMsgID) {
			got, _ := msg.md.GetBytes("MsgId")
			if string(got) != string(wantMsgID) {
				continue
			}
		}
		if matchOpts&cmqc.MQMO_MATCH_CORREL_ID != 0 && idSet(wantCorrelID) {
			got, _ := msg.md.GetBytes("CorrelId")
			if string(got) != string(wantCorrelID) {
				continue
			}
		}
		return i
	}
	return -1
}

func (d *Driver) Begin(hconn mqi.Hconn) (int32, int32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.connFor(hconn); !ok {
		return cmqc.MQCC_FAILED, cmqc.MQRC_HCONN_ERROR
	}
	return cmqc.MQCC_OK, cmqc.MQRC_NONE
}

func (d *Driver) Cmit(hconn mqi.Hconn) (int32, int32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	c, ok := d.connFor(hconn)
	if !ok {
		return cmqc.MQCC_FAILED, cmqc.MQRC_HCONN_ERROR
	}
	for _, p := range c.pendingPuts {
		p.queue.messages = append(p.queue.messages, p.msg)
		p.queue.attrs[cmqc.MQIA_CURRENT_Q_DEPTH] = int32(len(p.queue.messages))
	}
	c.pendingPuts = nil
	c.pendingGets = nil
	return cmqc.MQCC_OK, cmqc.MQRC_NONE
}

func (d *Driver) Back(hconn mqi.Hconn) (int32, int32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	c, ok := d.connFor(hconn)
	if !ok {
		return cmqc.MQCC_FAILED, cmqc.MQRC_HCONN_ERROR
	}
	d.rollback(c)
	return cmqc.MQCC_OK, cmqc.MQRC_NONE
}

func (d *Driver) rollback(c *conn) {
	c.pendingPuts = nil
	for _, g := range c.pendingGets {
		g.queue.messages = append([]*message{g.msg}, g.queue.messages...)
		g.queue.attrs[cmqc.MQIA_CURRENT_Q_DEPTH] = int32(len(g.queue.messages))
	}
	c.pendingGets = nil
}

func (d *Driver) Inq(hconn mqi.Hconn, hobj mqi.Hobj, selectors []int32) (map[int32]any, int32, int32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	c, ok := d.connFor(hconn)
	if !ok {
		return nil, cmqc.MQCC_FAILED, cmqc.MQRC_HCONN_ERROR
	}
	obj, ok := c.objects[hobj]
	if !ok {
		return nil, cmqc.MQCC_FAILED, cmqc.MQRC_HOBJ_ERROR
	}
	if obj.openOpts&cmqc.MQOO_INQUIRE == 0 {
		return nil, cmqc.MQCC_FAILED, cmqc.MQRC_NOT_OPEN_FOR_INQUIRE
	}

	var source map[int32]any
	switch obj.kind {
	case objQueue:
		source = obj.queue.attrs
	case objQueueManager:
		source = map[int32]any{
			cmqc.MQCA_Q_MGR_NAME:    d.qmgrName,
			cmqc.MQIA_COMMAND_LEVEL: int32(750),
			cmqc.MQIA_PLATFORM:      int32(3),
		}
	default:
		return nil, cmqc.MQCC_FAILED, cmqc.MQRC_HOBJ_ERROR
	}

	out := make(map[int32]any, len(selectors))
	for _, sel := range selectors {
		v, ok := source[sel]
		if !ok {
			return nil, cmqc.MQCC_FAILED, cmqc.MQRC_SELECTOR_ERROR
		}
		out[sel] = v
	}
	return out, cmqc.MQCC_OK, cmqc.MQRC_NONE
}

func (d *Driver) Set(hconn mqi.Hconn, hobj mqi.Hobj, attrs map[int32]any) (int32, int32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	c, ok := d.connFor(hconn)
	if !ok {
		return cmqc.MQCC_FAILED, cmqc.MQRC_HCONN_ERROR
	}
	obj, ok := c.objects[hobj]
	if !ok || obj.kind != objQueue {
		return cmqc.MQCC_FAILED, cmqc.MQRC_HOBJ_ERROR
	}
	if obj.openOpts&cmqc.MQOO_SET == 0 {
		return cmqc.MQCC_FAILED, cmqc.MQRC_NOT_OPEN_FOR_SET
	}
	for sel, v := range attrs {
		if _, known := obj.queue.attrs[sel]; !known {
			return cmqc.MQCC_FAILED, cmqc.MQRC_SELECTOR_ERROR
		}
		obj.queue.attrs[sel] = v
	}
	return cmqc.MQCC_OK, cmqc.MQRC_NONE
}

func (d *Driver) Sub(hconn mqi.Hconn, sdBytes []byte) ([]byte, mqi.Hobj, mqi.Hobj, int32, int32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	c, ok := d.connFor(hconn)
	if !ok {
		return nil, 0, 0, cmqc.MQCC_FAILED, cmqc.MQRC_HCONN_ERROR
	}
	sd := d.env.NewSD()
	if err := sd.Unpack(sdBytes); err != nil {
		return nil, 0, 0, cmqc.MQCC_FAILED, cmqc.MQRC_OPTIONS_ERROR
	}
	options, _ := sd.GetInt32("Options")
	if options&cmqc.MQSO_MANAGED == 0 {
		// Only broker-managed delivery queues exist here.
		return nil, 0, 0, cmqc.MQCC_FAILED, cmqc.MQRC_OPTIONS_ERROR
	}
	topic := subTopicOf(sd)
	if topic == "" {
		return nil, 0, 0, cmqc.MQCC_FAILED, cmqc.MQRC_UNKNOWN_OBJECT_NAME
	}

	q := d.defineQueue("SYSTEM.MANAGED.NDURABLE."+uuid.NewString(), true)
	sub := &subscription{topic: topic, queue: q}
	d.subs = append(d.subs, sub)
	d.log.Debug().Str("topic", topic).Str("queue", q.name).Msg("managed subscription created")

	d.nextHobj++
	subHobj := d.nextHobj
	c.subs[subHobj] = sub

	d.nextHobj++
	queueHobj := d.nextHobj
	c.objects[queueHobj] = &object{
		kind:     objQueue,
		queue:    q,
		openOpts: cmqc.MQOO_INPUT_AS_Q_DEF | cmqc.MQOO_INQUIRE,
	}

	sdOut, err := sd.Pack()
	if err != nil {
		return nil, 0, 0, cmqc.MQCC_FAILED, cmqc.MQRC_OPTIONS_ERROR
	}
	return sdOut, subHobj, queueHobj, cmqc.MQCC_OK, cmqc.MQRC_NONE
}

func subTopicOf(sd *codec.Structure) string {
	if ptr, err := sd.GetPtr("ObjectStringVSPtr"); err == nil && ptr != 0 {
		if v := codec.ResolveVS(ptr); v != nil {
			n, _ := sd.GetInt32("ObjectStringVSLength")
			if int(n) > 0 && int(n) <= len(v) {
				v = v[:n]
			}
			return string(v)
		}
	}
	name, _ := sd.GetString("ObjectName")
	return name
}

func (d *Driver) CrtMh(hconn mqi.Hconn, cmhoBytes []byte) (mqi.Hmsg, int32, int32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	c, ok := d.connFor(hconn)
	if !ok {
		return 0, cmqc.MQCC_FAILED, cmqc.MQRC_HCONN_ERROR
	}
	cmho := d.env.NewCMHO()
	if err := cmho.Unpack(cmhoBytes); err != nil {
		return 0, cmqc.MQCC_FAILED, cmqc.MQRC_OPTIONS_ERROR
	}
	d.nextHmsg++
	h := d.nextHmsg
	c.handles[h] = make(map[string]property)
	return h, cmqc.MQCC_OK, cmqc.MQRC_NONE
}

func (d *Driver) DltMh(hconn mqi.Hconn, hmsg mqi.Hmsg) (int32, int32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	c, ok := d.connFor(hconn)
	if !ok {
		return cmqc.MQCC_FAILED, cmqc.MQRC_HCONN_ERROR
	}
	if _, ok := c.handles[hmsg]; !ok {
		return cmqc.MQCC_FAILED, cmqc.MQRC_HMSG_ERROR
	}
	delete(c.handles, hmsg)
	return cmqc.MQCC_OK, cmqc.MQRC_NONE
}

func (d *Driver) InqMp(hconn mqi.Hconn, hmsg mqi.Hmsg, impo []byte, name string, pd []byte, propType, maxValueLength int32) ([]byte, int32, int32, int32, int32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	c, ok := d.connFor(hconn)
	if !ok {
		return nil, 0, 0, cmqc.MQCC_FAILED, cmqc.MQRC_HCONN_ERROR
	}
	props, ok := c.handles[hmsg]
	if !ok {
		return nil, 0, 0, cmqc.MQCC_FAILED, cmqc.MQRC_HMSG_ERROR
	}
	p, ok := props[name]
	if !ok {
		return nil, 0, 0, cmqc.MQCC_FAILED, cmqc.MQRC_PROPERTY_NOT_AVAILABLE
	}
	if propType != cmqc.MQTYPE_AS_SET && propType != p.propType {
		return nil, 0, 0, cmqc.MQCC_FAILED, cmqc.MQRC_PROPERTY_NOT_AVAILABLE
	}
	needed := int32(len(p.value))
	if needed > maxValueLength {
		return nil, p.propType, needed, cmqc.MQCC_FAILED, cmqc.MQRC_PROPERTY_VALUE_TOO_BIG
	}
	return append([]byte{}, p.value...), p.propType, needed, cmqc.MQCC_OK, cmqc.MQRC_NONE
}

func (d *Driver) SetMp(hconn mqi.Hconn, hmsg mqi.Hmsg, smpo []byte, name string, pd []byte, propType int32, value []byte) (int32, int32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	c, ok := d.connFor(hconn)
	if !ok {
		return cmqc.MQCC_FAILED, cmqc.MQRC_HCONN_ERROR
	}
	props, ok := c.handles[hmsg]
	if !ok {
		return cmqc.MQCC_FAILED, cmqc.MQRC_HMSG_ERROR
	}
	props[name] = property{propType: propType, value: append([]byte{}, value...)}
	return cmqc.MQCC_OK, cmqc.MQRC_NONE
}

func (d *Driver) Execute(hconn mqi.Hconn, command int32, attrs map[int32]any, filters []mqi.Filter) ([]map[int32]any, int32, int32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.connFor(hconn); !ok {
		return nil, cmqc.MQCC_FAILED, cmqc.MQRC_HCONN_ERROR
	}
	switch command {
	case cmqc.MQCMD_PING_Q_MGR:
		return []map[int32]any{}, cmqc.MQCC_OK, cmqc.MQRC_NONE
	case cmqc.MQCMD_INQUIRE_Q_MGR:
		return []map[int32]any{{
			cmqc.MQCA_Q_MGR_NAME:    d.qmgrName,
			cmqc.MQIA_COMMAND_LEVEL: int32(750),
			cmqc.MQIA_PLATFORM:      int32(3),
		}}, cmqc.MQCC_OK, cmqc.MQRC_NONE
	case cmqc.MQCMD_INQUIRE_Q, cmqc.MQCMD_INQUIRE_Q_NAMES:
		rows := d.inquireQueues(attrs, filters)
		if command == cmqc.MQCMD_INQUIRE_Q_NAMES {
			names := make([]map[int32]any, 0, len(rows))
			for _, row := range rows {
				names = append(names, map[int32]any{cmqc.MQCA_Q_NAME: row[cmqc.MQCA_Q_NAME]})
			}
			return names, cmqc.MQCC_OK, cmqc.MQRC_NONE
		}
		return rows, cmqc.MQCC_OK, cmqc.MQRC_NONE
	}
	return nil, cmqc.MQCC_FAILED, cmqc.MQRCCF_COMMAND_FAILED
}

func (d *Driver) inquireQueues(attrs map[int32]any, filters []mqi.Filter) []map[int32]any {
	pattern := "*"
	if attrs != nil {
		if p, ok := attrs[cmqc.MQCA_Q_NAME].(string); ok && p != "" {
			pattern = p
		}
	}
	rows := []map[int32]any{}
	for name, q := range d.queues {
		if !matchPattern(name, pattern) {
			continue
		}
		if !passFilters(q.attrs, filters) {
			continue
		}
		row := make(map[int32]any, len(q.attrs))
		for k, v := range q.attrs {
			row[k] = v
		}
		rows = append(rows, row)
	}
	return rows
}

// matchPattern implements MQ generic names: a trailing '*' matches any
// suffix, '*' alone matches everything.
func matchPattern(name, pattern string) bool {
	if pattern == "*" {
		return true
	}
	if strings.HasSuffix(pattern, "*") {
		return strings.HasPrefix(name, strings.TrimSuffix(pattern, "*"))
	}
	return name == pattern
}

func passFilters(attrs map[int32]any, filters []mqi.Filter) bool {
	for _, f := range filters {
		v, ok := attrs[f.Selector]
		if !ok {
			return false
		}
		if !applyFilter(v, f) {
			return false
		}
	}
	return true
}

func applyFilter(attr any, f mqi.Filter) bool {
	switch want := f.Value.(type) {
	case int32:
		got, ok := attr.(int32)
		if !ok {
			return false
		}
		switch f.Operator {
		case cmqc.MQCFOP_EQUAL:
			return got == want
		case cmqc.MQCFOP_NOT_EQUAL:
			return got != want
		case cmqc.MQCFOP_LESS:
			return got < want
		case cmqc.MQCFOP_GREATER:
			return got > want
		case cmqc.MQCFOP_NOT_LESS:
			return got >= want
		case cmqc.MQCFOP_NOT_GREATER:
			return got <= want
		}
	case string:
		got, ok := attr.(string)
		if !ok {
			return false
		}
		switch f.Operator {
		case cmqc.MQCFOP_EQUAL:
			return got == want
		case cmqc.MQCFOP_NOT_EQUAL:
			return got != want
		case cmqc.MQCFOP_LIKE:
			return matchPattern(got, want)
		case cmqc.MQCFOP_NOT_LIKE:
			return !matchPattern(got, want)
		}
	}
	return false
}
