// Package testlog wires test output into the logging layer so failures
// carry the surrounding log context.
package testlog

import (
	"testing"

	"github.com/danmuck/mqlink/internal/logging"
)

type writer struct{ t *testing.T }

func (w writer) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}

// Start routes log output through t.Log for the duration of the test.
func Start(t *testing.T) {
	t.Helper()
	logging.Configure(logging.Test, writer{t: t})
}
