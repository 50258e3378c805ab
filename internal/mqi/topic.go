package mqi

import (
	"github.com/danmuck/mqlink/internal/mqi/cmqc"
	"github.com/danmuck/mqlink/internal/mqi/codec"
)

// Topic is a publish target: a named topic object, a free-form topic
// string, or both combined by the broker. Open defers the same way Queue
// does.
type Topic struct {
	qm *QueueManager

	od          *codec.Structure
	topicString string

	hobj Hobj
	open bool
}

// NewTopic builds a topic from the (name, string) pair. Either part may be
// empty; the broker combines whichever are present.
func NewTopic(qm *QueueManager, topicName, topicString string) (*Topic, error) {
	od := qm.env.NewOD()
	if err := od.Apply(map[string]any{
		"ObjectType": cmqc.MQOT_TOPIC,
		"Version":    cmqc.MQOD_VERSION_4,
		"ObjectName": topicName,
	}); err != nil {
		return nil, err
	}
	if topicString != "" {
		if err := od.SetVS("ObjectString", []byte(topicString)); err != nil {
			return nil, err
		}
	}
	return &Topic{qm: qm, od: od, topicString: topicString}, nil
}

// OpenTopic builds a topic from the (name, string) pair and opens it
// immediately with explicit options.
func OpenTopic(qm *QueueManager, topicName, topicString string, openOpts int32) (*Topic, error) {
	t, err := NewTopic(qm, topicName, topicString)
	if err != nil {
		return nil, err
	}
	if err := t.Open(openOpts); err != nil {
		return nil, err
	}
	return t, nil
}

// NewTopicWithDescriptor adopts a prebuilt descriptor, which must already
// be a version 4 topic descriptor.
func NewTopicWithDescriptor(qm *QueueManager, od *codec.Structure) (*Topic, error) {
	objType, err := od.GetInt32("ObjectType")
	if err != nil {
		return nil, err
	}
	if objType != cmqc.MQOT_TOPIC {
		return nil, usagef("topic descriptor has object type %d", objType)
	}
	version, err := od.GetInt32("Version")
	if err != nil {
		return nil, err
	}
	if version != cmqc.MQOD_VERSION_4 {
		return nil, usagef("topic descriptor has version %d, need %d", version, cmqc.MQOD_VERSION_4)
	}
	return &Topic{qm: qm, od: od}, nil
}

// Open issues MQOPEN with explicit options.
func (t *Topic) Open(openOpts int32) error {
	hconn, err := t.qm.Handle()
	if err != nil {
		return err
	}
	odBytes, err := t.od.Pack()
	if err != nil {
		return err
	}
	hobj, odOut, cc, rc := t.qm.drv.Open(hconn, odBytes, openOpts)
	if err := check("MQOPEN", cc, rc); err != nil {
		return err
	}
	if odOut != nil {
		if err := t.od.Unpack(odOut); err != nil {
			return err
		}
	}
	t.hobj = hobj
	t.open = true
	return nil
}

// IsOpen reports whether the topic holds a live object handle.
func (t *Topic) IsOpen() bool { return t.open }

// Pub publishes one message, opening for output on first use.
func (t *Topic) Pub(msg []byte, md, pmo *codec.Structure) error {
	if !t.open {
		if err := t.Open(cmqc.MQOO_OUTPUT | cmqc.MQOO_FAIL_IF_QUIESCING); err != nil {
			return err
		}
	}
	hconn, err := t.qm.Handle()
	if err != nil {
		return err
	}
	if md == nil {
		md = t.qm.env.NewMD()
	}
	if pmo == nil {
		pmo = t.qm.env.NewPMO()
	}
	mdBytes, err := md.Pack()
	if err != nil {
		return err
	}
	pmoBytes, err := pmo.Pack()
	if err != nil {
		return err
	}
	mdOut, pmoOut, cc, rc := t.qm.drv.Put(hconn, t.hobj, mdBytes, pmoBytes, msg)
	if err := check("MQPUT", cc, rc); err != nil {
		return err
	}
	if err := md.Unpack(mdOut); err != nil {
		return err
	}
	return pmo.Unpack(pmoOut)
}

// Sub subscribes to this topic with managed defaults.
func (t *Topic) Sub(subName string) (*Subscription, error) {
	name, err := t.od.GetString("ObjectName")
	if err != nil {
		return nil, err
	}
	return t.qm.Subscribe(SubscribeConfig{
		TopicName:   name,
		TopicString: t.topicString,
		SubName:     subName,
	})
}

// Close releases the topic object.
func (t *Topic) Close() error {
	if !t.open {
		return usagef("close on unopened topic")
	}
	hconn, err := t.qm.Handle()
	if err != nil {
		return err
	}
	cc, rc := t.qm.drv.Close(hconn, t.hobj, cmqc.MQCO_NONE)
	t.open = false
	return check("MQCLOSE", cc, rc)
}

// SubscribeConfig shapes one MQSUB call. A nil Descriptor with zero
// Options gets the managed non-durable defaults.
type SubscribeConfig struct {
	Descriptor  *codec.Structure
	Options     int32
	TopicName   string
	TopicString string
	SubName     string
}

// Subscription is a live subscription plus the queue its publications
// arrive on. For managed subscriptions the broker owns the queue and the
// Subscription adopts its handle.
type Subscription struct {
	qm      *QueueManager
	sd      *codec.Structure
	subHobj Hobj
	queue   *Queue
}

// Subscribe issues MQSUB and wraps the returned handles.
func (qm *QueueManager) Subscribe(cfg SubscribeConfig) (*Subscription, error) {
	hconn, err := qm.Handle()
	if err != nil {
		return nil, err
	}
	sd := cfg.Descriptor
	if sd == nil {
		sd = qm.env.NewSD()
		options := cfg.Options
		if options == 0 {
			options = cmqc.MQSO_CREATE | cmqc.MQSO_NON_DURABLE | cmqc.MQSO_MANAGED
		}
		if err := sd.Set("Options", options); err != nil {
			return nil, err
		}
		if cfg.TopicName != "" {
			if err := sd.Set("ObjectName", cfg.TopicName); err != nil {
				return nil, err
			}
		}
		if cfg.TopicString != "" {
			if err := sd.SetVS("ObjectString", []byte(cfg.TopicString)); err != nil {
				return nil, err
			}
		}
		if cfg.SubName != "" {
			if err := sd.SetVS("SubName", []byte(cfg.SubName)); err != nil {
				return nil, err
			}
		}
	}
	sdBytes, err := sd.Pack()
	if err != nil {
		return nil, err
	}
	sdOut, subHobj, queueHobj, cc, rc := qm.drv.Sub(hconn, sdBytes)
	if err := check("MQSUB", cc, rc); err != nil {
		return nil, err
	}
	if sdOut != nil {
		if err := sd.Unpack(sdOut); err != nil {
			return nil, err
		}
	}
	queue := NewQueue(qm)
	queue.SetHandle(queueHobj)
	return &Subscription{qm: qm, sd: sd, subHobj: subHobj, queue: queue}, nil
}

// Queue returns the queue publications arrive on.
func (s *Subscription) Queue() *Queue { return s.queue }

// Get reads the next publication off the subscription queue.
func (s *Subscription) Get(maxLength int, md, gmo *codec.Structure) ([]byte, error) {
	return s.queue.Get(maxLength, md, gmo)
}

// Close ends the subscription, optionally closing the delivery queue too.
func (s *Subscription) Close(subCloseOpts int32, closeQueue bool) error {
	hconn, err := s.qm.Handle()
	if err != nil {
		return err
	}
	if closeQueue && s.queue.IsOpen() {
		if err := s.queue.Close(cmqc.MQCO_NONE); err != nil {
			return err
		}
	}
	cc, rc := s.qm.drv.Close(hconn, s.subHobj, subCloseOpts)
	return check("MQCLOSE", cc, rc)
}
