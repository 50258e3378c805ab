package mqi_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/danmuck/mqlink/internal/mqi"
	"github.com/danmuck/mqlink/internal/mqi/cmqc"
	"github.com/danmuck/mqlink/internal/mqi/memdriver"
	"github.com/danmuck/mqlink/internal/testutil/testlog"
)

func TestConnectDisconnect(t *testing.T) {
	testlog.Start(t)
	drv := memdriver.New("QM1")
	qm := mqi.NewQueueManager(drv)

	if err := qm.Connect("QM1"); err != nil {
		t.Fatalf("connect: %v", err)
	}
	if _, err := qm.Handle(); err != nil {
		t.Fatalf("handle after connect: %v", err)
	}
	if !qm.IsConnected() {
		t.Fatal("IsConnected() = false after connect")
	}
	if err := qm.Disconnect(); err != nil {
		t.Fatalf("disconnect: %v", err)
	}
	if qm.IsConnected() {
		t.Fatal("IsConnected() = true after disconnect")
	}
	if _, err := qm.Handle(); err == nil {
		t.Fatal("handle after disconnect: want error, got nil")
	}
}

func TestConnectUnknownName(t *testing.T) {
	testlog.Start(t)
	qm := mqi.NewQueueManager(memdriver.New("QM1"))
	err := qm.Connect("NOPE")
	var mqe *mqi.MQIError
	if !errors.As(err, &mqe) {
		t.Fatalf("connect bad name: err = %v, want *MQIError", err)
	}
	if mqe.Reason != cmqc.MQRC_Q_MGR_NAME_ERROR {
		t.Fatalf("reason = %d, want %d", mqe.Reason, cmqc.MQRC_Q_MGR_NAME_ERROR)
	}
}

func TestConnectTwice(t *testing.T) {
	testlog.Start(t)
	qm := mqi.NewQueueManager(memdriver.New("QM1"))
	if err := qm.Connect("QM1"); err != nil {
		t.Fatalf("connect: %v", err)
	}
	err := qm.Connect("QM1")
	var mqe *mqi.MQIError
	if !errors.As(err, &mqe) || mqe.Reason != cmqc.MQRC_ALREADY_CONNECTED {
		t.Fatalf("second connect: err = %v, want MQRC_ALREADY_CONNECTED", err)
	}
}

func TestConnectTCPClient(t *testing.T) {
	testlog.Start(t)
	drv := memdriver.New("QM1")
	qm, err := mqi.Connect(drv, "QM1", "DEV.APP.SVRCONN", "localhost(1414)")
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	if !qm.IsConnected() {
		t.Fatal("IsConnected() = false after client connect")
	}
	qm.Close()
}

func TestVerbsRequireConnection(t *testing.T) {
	testlog.Start(t)
	qm := mqi.NewQueueManager(memdriver.New("QM1"))

	var ue *mqi.UsageError
	if err := qm.Begin(); !errors.As(err, &ue) {
		t.Fatalf("begin unconnected: err = %v, want *UsageError", err)
	}
	if err := qm.Commit(); !errors.As(err, &ue) {
		t.Fatalf("commit unconnected: err = %v, want *UsageError", err)
	}
	if err := qm.Backout(); !errors.As(err, &ue) {
		t.Fatalf("backout unconnected: err = %v, want *UsageError", err)
	}
	if _, err := qm.Inquire(cmqc.MQCA_Q_MGR_NAME); !errors.As(err, &ue) {
		t.Fatalf("inquire unconnected: err = %v, want *UsageError", err)
	}
}

func TestUnitOfWork(t *testing.T) {
	testlog.Start(t)
	drv := memdriver.New("QM1")
	drv.DefineQueue("DEV.UOW")
	qm := mqi.NewQueueManager(drv)
	if err := qm.Connect("QM1"); err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer qm.Close()

	q, err := mqi.NewDeferredQueue(qm, "DEV.UOW")
	if err != nil {
		t.Fatalf("queue: %v", err)
	}
	pmo := qm.Env().NewPMO()
	if err := pmo.Set("Options", cmqc.MQPMO_SYNCPOINT); err != nil {
		t.Fatalf("pmo: %v", err)
	}
	if err := qm.Begin(); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := q.Put([]byte("staged"), nil, pmo); err != nil {
		t.Fatalf("put: %v", err)
	}
	if got := drv.Depth("DEV.UOW"); got != 0 {
		t.Fatalf("depth before commit = %d, want 0", got)
	}
	if err := qm.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if got := drv.Depth("DEV.UOW"); got != 1 {
		t.Fatalf("depth after commit = %d, want 1", got)
	}
}

func TestBackoutDiscardsPut(t *testing.T) {
	testlog.Start(t)
	drv := memdriver.New("QM1")
	drv.DefineQueue("DEV.UOW")
	qm := mqi.NewQueueManager(drv)
	if err := qm.Connect("QM1"); err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer qm.Close()

	q, _ := mqi.NewDeferredQueue(qm, "DEV.UOW")
	pmo := qm.Env().NewPMO()
	_ = pmo.Set("Options", cmqc.MQPMO_SYNCPOINT)
	if err := q.Put([]byte("doomed"), nil, pmo); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := qm.Backout(); err != nil {
		t.Fatalf("backout: %v", err)
	}
	if got := drv.Depth("DEV.UOW"); got != 0 {
		t.Fatalf("depth after backout = %d, want 0", got)
	}
}

func TestPut1(t *testing.T) {
	testlog.Start(t)
	drv := memdriver.New("QM1")
	drv.DefineQueue("DEV.ONE")
	qm := mqi.NewQueueManager(drv)
	if err := qm.Connect("QM1"); err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer qm.Close()

	md := qm.Env().NewMD()
	if err := qm.Put1("DEV.ONE", []byte("fire and forget"), md, nil); err != nil {
		t.Fatalf("put1: %v", err)
	}
	if got := drv.Depth("DEV.ONE"); got != 1 {
		t.Fatalf("depth = %d, want 1", got)
	}
	msgID, _ := md.GetBytes("MsgId")
	if len(bytes.Trim(msgID, "\x00")) == 0 {
		t.Fatal("put1 left MsgId unset")
	}
}

func TestQueueManagerInquire(t *testing.T) {
	testlog.Start(t)
	qm := mqi.NewQueueManager(memdriver.New("QM1"))
	if err := qm.Connect("QM1"); err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer qm.Close()

	name, err := qm.Inquire(cmqc.MQCA_Q_MGR_NAME)
	if err != nil {
		t.Fatalf("inquire name: %v", err)
	}
	if name != "QM1" {
		t.Fatalf("qmgr name = %v, want QM1", name)
	}
	// Second inquiry rides the cached object handle.
	level, err := qm.Inquire(cmqc.MQIA_COMMAND_LEVEL)
	if err != nil {
		t.Fatalf("inquire level: %v", err)
	}
	if level != int32(750) {
		t.Fatalf("command level = %v, want 750", level)
	}
}

// brokenDisc fails every disconnect, for teardown behavior.
type brokenDisc struct {
	mqi.Driver
}

func (b brokenDisc) Disc(hconn mqi.Hconn) (int32, int32) {
	return cmqc.MQCC_FAILED, cmqc.MQRC_CONNECTION_BROKEN
}

func TestCloseSwallowsTeardownFailures(t *testing.T) {
	testlog.Start(t)
	drv := brokenDisc{Driver: memdriver.New("QM1")}
	qm := mqi.NewQueueManager(drv)
	if err := qm.Connect("QM1"); err != nil {
		t.Fatalf("connect: %v", err)
	}
	if _, err := qm.Inquire(cmqc.MQCA_Q_MGR_NAME); err != nil {
		t.Fatalf("inquire: %v", err)
	}
	// Must not panic or surface the disconnect failure.
	qm.Close()
	if _, err := qm.Handle(); err == nil {
		t.Fatal("handle after close: want error, got nil")
	}
}
