// Package mqi implements the client-side MQI verb layer: queue manager
// connection lifecycle, queue and topic objects with deferred open, message
// property handles, the PCF admin dispatcher and the filter builder, all
// against a pluggable transport Driver.
package mqi

import (
	"fmt"

	"github.com/danmuck/mqlink/internal/mqi/cmqc"
)

// MQIError is a non-OK verb completion: a completion code plus reason code,
// rendered symbolically when the registry knows the reason.
type MQIError struct {
	Verb   string
	Comp   int32
	Reason int32
}

func (e *MQIError) Error() string {
	return fmt.Sprintf("mqi: %s: %s", e.Verb, e.ReasonString())
}

// ReasonString renders the completion symbolically, consulting the MQRC_
// registry first and the PCF MQRCCF_ registry second.
func (e *MQIError) ReasonString() string {
	prefix := ""
	switch e.Comp {
	case cmqc.MQCC_OK:
		return "OK"
	case cmqc.MQCC_WARNING:
		prefix = "WARNING: "
	case cmqc.MQCC_FAILED:
		prefix = "FAILED: "
	}
	if name, ok := cmqc.DefaultSymbols().ReasonName(e.Reason); ok {
		return prefix + name
	}
	return fmt.Sprintf("%sunrecognized reason %d", prefix, e.Reason)
}

// check converts a driver completion into an error, nil on MQCC_OK.
func check(verb string, cc, rc int32) error {
	if cc == cmqc.MQCC_OK {
		return nil
	}
	return &MQIError{Verb: verb, Comp: cc, Reason: rc}
}

// UsageError is a local contract violation: the verb never reached the
// driver.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string {
	return "mqi: " + e.Msg
}

func usagef(format string, args ...any) *UsageError {
	return &UsageError{Msg: fmt.Sprintf(format, args...)}
}
