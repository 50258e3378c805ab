package memdriver

import (
	"testing"

	"github.com/danmuck/mqlink/internal/mqi"
	"github.com/danmuck/mqlink/internal/mqi/cmqc"
	"github.com/danmuck/mqlink/internal/testutil/testlog"
)

func TestMatchPattern(t *testing.T) {
	for _, tc := range []struct {
		name, pattern string
		want          bool
	}{
		{"DEV.QUEUE.1", "*", true},
		{"DEV.QUEUE.1", "DEV.*", true},
		{"DEV.QUEUE.1", "DEV.QUEUE.1", true},
		{"DEV.QUEUE.1", "APP.*", false},
		{"DEV.QUEUE.1", "DEV.QUEUE.2", false},
	} {
		if got := matchPattern(tc.name, tc.pattern); got != tc.want {
			t.Fatalf("matchPattern(%q, %q) = %v, want %v", tc.name, tc.pattern, got, tc.want)
		}
	}
}

func TestTruncationLeavesMessageQueued(t *testing.T) {
	testlog.Start(t)
	d := New("QM1")
	d.DefineQueue("Q")
	hconn, cc, rc := d.Conn("QM1")
	if cc != cmqc.MQCC_OK {
		t.Fatalf("conn: %d/%d", cc, rc)
	}

	env := d.env
	od := env.NewOD()
	_ = od.Set("ObjectName", "Q")
	odBytes, _ := od.Pack()
	hobj, _, cc, rc := d.Open(hconn, odBytes, cmqc.MQOO_OUTPUT|cmqc.MQOO_INPUT_AS_Q_DEF)
	if cc != cmqc.MQCC_OK {
		t.Fatalf("open: %d/%d", cc, rc)
	}

	md := env.NewMD()
	pmo := env.NewPMO()
	mdBytes, _ := md.Pack()
	pmoBytes, _ := pmo.Pack()
	if _, _, cc, rc = d.Put(hconn, hobj, mdBytes, pmoBytes, make([]byte, 100)); cc != cmqc.MQCC_OK {
		t.Fatalf("put: %d/%d", cc, rc)
	}

	getMD := env.NewMD()
	gmo := env.NewGMO()
	gmdBytes, _ := getMD.Pack()
	gmoBytes, _ := gmo.Pack()
	_, mdOut, _, dataLength, cc, rc := d.Get(hconn, hobj, gmdBytes, gmoBytes, 10)
	if cc != cmqc.MQCC_FAILED || rc != cmqc.MQRC_TRUNCATED_MSG_FAILED {
		t.Fatalf("short get: %d/%d, want FAILED/MQRC_TRUNCATED_MSG_FAILED", cc, rc)
	}
	if dataLength != 100 {
		t.Fatalf("data length = %d, want 100", dataLength)
	}
	if mdOut == nil {
		t.Fatal("descriptor missing on truncation failure")
	}
	if got := d.Depth("Q"); got != 1 {
		t.Fatalf("depth after failed get = %d, want 1", got)
	}

	body, _, _, _, cc, rc := d.Get(hconn, hobj, gmdBytes, gmoBytes, 100)
	if cc != cmqc.MQCC_OK {
		t.Fatalf("full get: %d/%d", cc, rc)
	}
	if len(body) != 100 {
		t.Fatalf("body length = %d, want 100", len(body))
	}
	if got := d.Depth("Q"); got != 0 {
		t.Fatalf("depth after full get = %d, want 0", got)
	}
}

func TestAcceptTruncated(t *testing.T) {
	testlog.Start(t)
	d := New("QM1")
	d.DefineQueue("Q")
	hconn, _, _ := d.Conn("QM1")

	env := d.env
	od := env.NewOD()
	_ = od.Set("ObjectName", "Q")
	odBytes, _ := od.Pack()
	hobj, _, _, _ := d.Open(hconn, odBytes, cmqc.MQOO_OUTPUT|cmqc.MQOO_INPUT_AS_Q_DEF)

	md := env.NewMD()
	pmo := env.NewPMO()
	mdBytes, _ := md.Pack()
	pmoBytes, _ := pmo.Pack()
	d.Put(hconn, hobj, mdBytes, pmoBytes, make([]byte, 100))

	gmo := env.NewGMO()
	_ = gmo.Set("Options", cmqc.MQGMO_ACCEPT_TRUNCATED_MSG)
	gmoBytes, _ := gmo.Pack()
	getMD := env.NewMD()
	gmdBytes, _ := getMD.Pack()
	body, _, _, dataLength, cc, rc := d.Get(hconn, hobj, gmdBytes, gmoBytes, 10)
	if cc != cmqc.MQCC_WARNING || rc != cmqc.MQRC_TRUNCATED_MSG_ACCEPTED {
		t.Fatalf("accepting get: %d/%d, want WARNING/MQRC_TRUNCATED_MSG_ACCEPTED", cc, rc)
	}
	if len(body) != 10 || dataLength != 100 {
		t.Fatalf("body = %d bytes, data length = %d", len(body), dataLength)
	}
	if got := d.Depth("Q"); got != 0 {
		t.Fatalf("depth = %d, want 0 after accepted truncation", got)
	}
}

func TestExecuteUnknownCommand(t *testing.T) {
	testlog.Start(t)
	d := New("QM1")
	hconn, _, _ := d.Conn("QM1")
	_, cc, rc := d.Execute(hconn, int32(9999), nil, nil)
	if cc != cmqc.MQCC_FAILED || rc != cmqc.MQRCCF_COMMAND_FAILED {
		t.Fatalf("unknown command: %d/%d, want FAILED/MQRCCF_COMMAND_FAILED", cc, rc)
	}
}

func TestHandleIsolationAcrossConnections(t *testing.T) {
	testlog.Start(t)
	d := New("QM1")
	d.DefineQueue("Q")
	h1, _, _ := d.Conn("QM1")
	h2, _, _ := d.Conn("QM1")

	od := d.env.NewOD()
	_ = od.Set("ObjectName", "Q")
	odBytes, _ := od.Pack()
	hobj, _, _, _ := d.Open(h1, odBytes, cmqc.MQOO_OUTPUT)

	md := d.env.NewMD()
	pmo := d.env.NewPMO()
	mdBytes, _ := md.Pack()
	pmoBytes, _ := pmo.Pack()
	_, _, cc, rc := d.Put(h2, hobj, mdBytes, pmoBytes, []byte("x"))
	if cc != cmqc.MQCC_FAILED || rc != cmqc.MQRC_HOBJ_ERROR {
		t.Fatalf("cross-connection handle: %d/%d, want FAILED/MQRC_HOBJ_ERROR", cc, rc)
	}
}

var _ mqi.Driver = (*Driver)(nil)
