package mqi

import (
	"github.com/rs/zerolog"

	"github.com/danmuck/mqlink/internal/logging"
	"github.com/danmuck/mqlink/internal/mqi/cmqc"
	"github.com/danmuck/mqlink/internal/mqi/codec"
	"github.com/danmuck/mqlink/internal/mqi/wire"
)

// QueueManager owns one connection to a queue manager and the verbs scoped
// to it. The zero value is unconnected; Connect moves it to connected and
// Disconnect back. Unit-of-work and inquiry verbs require connected.
type QueueManager struct {
	drv  Driver
	env  *wire.Env
	log  zerolog.Logger
	name string

	hconn     Hconn
	connected bool

	// Lazily opened queue manager object for Inquire.
	qmObj    Hobj
	hasQmObj bool
}

// NewQueueManager returns an unconnected queue manager bound to a driver
// at the default command level.
func NewQueueManager(drv Driver) *QueueManager {
	return NewQueueManagerAt(drv, wire.Default())
}

// NewQueueManagerAt pins the queue manager to a specific structure
// environment.
func NewQueueManagerAt(drv Driver, env *wire.Env) *QueueManager {
	return &QueueManager{
		drv: drv,
		env: env,
		log: logging.New("mqi.qmgr"),
	}
}

// Connect establishes a bindings-mode connection by name.
func (qm *QueueManager) Connect(name string) error {
	if qm.connected {
		return &MQIError{Verb: "MQCONN", Comp: cmqc.MQCC_FAILED, Reason: cmqc.MQRC_ALREADY_CONNECTED}
	}
	hconn, cc, rc := qm.drv.Conn(name)
	if err := check("MQCONN", cc, rc); err != nil {
		return err
	}
	qm.hconn = hconn
	qm.connected = true
	qm.name = name
	qm.log.Debug().Str("qmgr", name).Msg("connected")
	return nil
}

// ConnectWithOptions connects with explicit connect options, a channel
// descriptor and optionally TLS configuration.
func (qm *QueueManager) ConnectWithOptions(name string, options int32, cd, sco *codec.Structure) error {
	if qm.connected {
		return &MQIError{Verb: "MQCONNX", Comp: cmqc.MQCC_FAILED, Reason: cmqc.MQRC_ALREADY_CONNECTED}
	}
	var cdBytes, scoBytes []byte
	var err error
	if cd != nil {
		if cdBytes, err = cd.Pack(); err != nil {
			return err
		}
	}
	if sco != nil {
		if scoBytes, err = sco.Pack(); err != nil {
			return err
		}
	}
	hconn, cc, rc := qm.drv.Connx(name, options, cdBytes, scoBytes)
	if err := check("MQCONNX", cc, rc); err != nil {
		return err
	}
	qm.hconn = hconn
	qm.connected = true
	qm.name = name
	qm.log.Debug().Str("qmgr", name).Msg("connected with options")
	return nil
}

// ConnectTCPClient fills the client-connection fields of the channel
// descriptor and connects. connString is "host(port)".
func (qm *QueueManager) ConnectTCPClient(name string, cd *codec.Structure, channel, connString string) error {
	if cd == nil {
		cd = qm.env.NewCD()
	}
	if err := cd.Apply(map[string]any{
		"ChannelName":    channel,
		"ConnectionName": connString,
		"ChannelType":    cmqc.MQCHT_CLNTCONN,
		"TransportType":  cmqc.MQXPT_TCP,
	}); err != nil {
		return err
	}
	return qm.ConnectWithOptions(name, cmqc.MQCNO_NONE, cd, nil)
}

// Connect picks bindings or client mode from the channel argument: an
// empty channel means a local bindings connection.
func Connect(drv Driver, name, channel, connInfo string) (*QueueManager, error) {
	qm := NewQueueManager(drv)
	var err error
	if channel == "" {
		err = qm.Connect(name)
	} else {
		err = qm.ConnectTCPClient(name, nil, channel, connInfo)
	}
	if err != nil {
		return nil, err
	}
	return qm, nil
}

// Disconnect releases the connection. The queue manager returns to
// unconnected even when the driver reports a failure.
func (qm *QueueManager) Disconnect() error {
	if !qm.connected {
		return usagef("disconnect on unconnected queue manager")
	}
	cc, rc := qm.drv.Disc(qm.hconn)
	qm.connected = false
	qm.hasQmObj = false
	qm.log.Debug().Str("qmgr", qm.name).Msg("disconnected")
	return check("MQDISC", cc, rc)
}

// Handle returns the connection handle for verbs issued by owned objects.
func (qm *QueueManager) Handle() (Hconn, error) {
	if !qm.connected {
		return 0, usagef("queue manager not connected")
	}
	return qm.hconn, nil
}

// Driver exposes the transport for owned objects.
func (qm *QueueManager) Driver() Driver { return qm.drv }

// Env exposes the structure factory the connection is pinned to.
func (qm *QueueManager) Env() *wire.Env { return qm.env }

// IsConnected reports whether the connection is alive, probing with a PCF
// ping rather than trusting local state.
func (qm *QueueManager) IsConnected() bool {
	if !qm.connected {
		return false
	}
	_, cc, _ := qm.drv.Execute(qm.hconn, cmqc.MQCMD_PING_Q_MGR, nil, nil)
	return cc == cmqc.MQCC_OK
}

// Begin starts a unit of work.
func (qm *QueueManager) Begin() error {
	if !qm.connected {
		return usagef("begin on unconnected queue manager")
	}
	cc, rc := qm.drv.Begin(qm.hconn)
	return check("MQBEGIN", cc, rc)
}

// Commit ends the unit of work, making its puts and gets visible.
func (qm *QueueManager) Commit() error {
	if !qm.connected {
		return usagef("commit on unconnected queue manager")
	}
	cc, rc := qm.drv.Cmit(qm.hconn)
	return check("MQCMIT", cc, rc)
}

// Backout discards the unit of work.
func (qm *QueueManager) Backout() error {
	if !qm.connected {
		return usagef("backout on unconnected queue manager")
	}
	cc, rc := qm.drv.Back(qm.hconn)
	return check("MQBACK", cc, rc)
}

// Put1 opens a queue, puts one message and closes it in a single verb.
// Updated descriptor and options unpack back into the caller's structures.
func (qm *QueueManager) Put1(queueName string, msg []byte, md, pmo *codec.Structure) error {
	if !qm.connected {
		return usagef("put1 on unconnected queue manager")
	}
	od := qm.env.NewOD()
	if err := od.Set("ObjectName", queueName); err != nil {
		return err
	}
	if md == nil {
		md = qm.env.NewMD()
	}
	if pmo == nil {
		pmo = qm.env.NewPMO()
	}
	odBytes, err := od.Pack()
	if err != nil {
		return err
	}
	mdBytes, err := md.Pack()
	if err != nil {
		return err
	}
	pmoBytes, err := pmo.Pack()
	if err != nil {
		return err
	}
	mdOut, pmoOut, cc, rc := qm.drv.Put1(qm.hconn, odBytes, mdBytes, pmoBytes, msg)
	if err := check("MQPUT1", cc, rc); err != nil {
		return err
	}
	if err := md.Unpack(mdOut); err != nil {
		return err
	}
	return pmo.Unpack(pmoOut)
}

// Inquire reads one queue manager attribute, opening and caching the
// queue manager object on first use.
func (qm *QueueManager) Inquire(selector int32) (any, error) {
	if !qm.connected {
		return nil, usagef("inquire on unconnected queue manager")
	}
	if !qm.hasQmObj {
		od := qm.env.NewOD()
		if err := od.Set("ObjectType", cmqc.MQOT_Q_MGR); err != nil {
			return nil, err
		}
		odBytes, err := od.Pack()
		if err != nil {
			return nil, err
		}
		hobj, _, cc, rc := qm.drv.Open(qm.hconn, odBytes, cmqc.MQOO_INQUIRE|cmqc.MQOO_FAIL_IF_QUIESCING)
		if err := check("MQOPEN", cc, rc); err != nil {
			return nil, err
		}
		qm.qmObj = hobj
		qm.hasQmObj = true
	}
	attrs, cc, rc := qm.drv.Inq(qm.hconn, qm.qmObj, []int32{selector})
	if err := check("MQINQ", cc, rc); err != nil {
		return nil, err
	}
	v, ok := attrs[selector]
	if !ok {
		return nil, &MQIError{Verb: "MQINQ", Comp: cmqc.MQCC_FAILED, Reason: cmqc.MQRC_SELECTOR_ERROR}
	}
	return v, nil
}

// Close tears the connection down best-effort: the cached object handle
// and the connection are released, secondary failures are logged and
// swallowed.
func (qm *QueueManager) Close() {
	if !qm.connected {
		return
	}
	if qm.hasQmObj {
		if cc, rc := qm.drv.Close(qm.hconn, qm.qmObj, cmqc.MQCO_NONE); cc != cmqc.MQCC_OK {
			qm.log.Debug().Int32("reason", rc).Msg("teardown close failed")
		}
		qm.hasQmObj = false
	}
	if err := qm.Disconnect(); err != nil {
		qm.log.Debug().Err(err).Msg("teardown disconnect failed")
	}
}
