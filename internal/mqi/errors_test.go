package mqi

import (
	"strings"
	"testing"

	"github.com/danmuck/mqlink/internal/mqi/cmqc"
)

func TestReasonStringKnownCodes(t *testing.T) {
	e := &MQIError{Verb: "MQGET", Comp: cmqc.MQCC_FAILED, Reason: cmqc.MQRC_NO_MSG_AVAILABLE}
	if got, want := e.ReasonString(), "FAILED: MQRC_NO_MSG_AVAILABLE"; got != want {
		t.Fatalf("ReasonString() = %q, want %q", got, want)
	}

	w := &MQIError{Verb: "MQGET", Comp: cmqc.MQCC_WARNING, Reason: cmqc.MQRC_TRUNCATED_MSG_ACCEPTED}
	if got, want := w.ReasonString(), "WARNING: MQRC_TRUNCATED_MSG_ACCEPTED"; got != want {
		t.Fatalf("ReasonString() = %q, want %q", got, want)
	}
}

func TestReasonStringPCFCode(t *testing.T) {
	e := &MQIError{Verb: "MQCMD_INQUIRE_Q", Comp: cmqc.MQCC_FAILED, Reason: cmqc.MQRCCF_COMMAND_FAILED}
	if got, want := e.ReasonString(), "FAILED: MQRCCF_COMMAND_FAILED"; got != want {
		t.Fatalf("ReasonString() = %q, want %q", got, want)
	}
}

func TestReasonStringUnknownCode(t *testing.T) {
	e := &MQIError{Verb: "MQOPEN", Comp: cmqc.MQCC_FAILED, Reason: 9999}
	got := e.ReasonString()
	if !strings.Contains(got, "9999") || !strings.HasPrefix(got, "FAILED:") {
		t.Fatalf("ReasonString() = %q, want failed prefix with raw code", got)
	}
}

func TestCheck(t *testing.T) {
	if err := check("MQPUT", cmqc.MQCC_OK, cmqc.MQRC_NONE); err != nil {
		t.Fatalf("check(OK) = %v, want nil", err)
	}
	err := check("MQPUT", cmqc.MQCC_FAILED, cmqc.MQRC_Q_FULL)
	e, ok := err.(*MQIError)
	if !ok {
		t.Fatalf("check(FAILED) = %T, want *MQIError", err)
	}
	if e.Verb != "MQPUT" || e.Reason != cmqc.MQRC_Q_FULL {
		t.Fatalf("check(FAILED) = %+v", e)
	}
}

func TestUsageError(t *testing.T) {
	err := usagef("bad %s", "thing")
	if got, want := err.Error(), "mqi: bad thing"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}
