package mqi

import (
	"strconv"
	"strings"

	"github.com/danmuck/mqlink/internal/mqi/cmqc"
)

// PCF issues programmable command format admin commands over a queue
// manager connection. It can ride an existing connection or own one.
type PCF struct {
	qm    *QueueManager
	owned bool
}

// NewPCF rides an existing connection; Disconnect becomes a no-op.
func NewPCF(qm *QueueManager) *PCF {
	return &PCF{qm: qm}
}

// ConnectPCF opens its own connection for admin work.
func ConnectPCF(drv Driver, name string) (*PCF, error) {
	qm := NewQueueManager(drv)
	if err := qm.Connect(name); err != nil {
		return nil, err
	}
	return &PCF{qm: qm, owned: true}, nil
}

// Execute resolves an MQCMD_* command name at call time and issues it.
// Responses come back one attribute map per object, empty when the
// command matched nothing.
func (p *PCF) Execute(command string, attrs map[int32]any, filters ...*Filter) ([]map[int32]any, error) {
	if !strings.HasPrefix(command, "MQCMD_") {
		return nil, usagef("pcf command %q does not name an MQCMD_ constant", command)
	}
	code, ok := cmqc.DefaultSymbols().Command(command)
	if !ok {
		return nil, usagef("unknown pcf command %q", command)
	}
	hconn, err := p.qm.Handle()
	if err != nil {
		return nil, err
	}
	fs := make([]Filter, 0, len(filters))
	for _, f := range filters {
		fs = append(fs, *f)
	}
	rows, cc, rc := p.qm.drv.Execute(hconn, code, attrs, fs)
	if err := check(command, cc, rc); err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []map[int32]any{}
	}
	return rows, nil
}

// QueueManager returns the connection the dispatcher runs over.
func (p *PCF) QueueManager() *QueueManager { return p.qm }

// Disconnect drops the connection when this dispatcher owns it.
func (p *PCF) Disconnect() error {
	if !p.owned {
		return nil
	}
	return p.qm.Disconnect()
}

// StringifyKeys renames numeric attribute keys to their mnemonics: string
// values look up the character table, everything else the integer table,
// and unresolved keys pass through as decimal strings.
func StringifyKeys(rows []map[int32]any) []map[string]any {
	symbols := cmqc.DefaultSymbols()
	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		named := make(map[string]any, len(row))
		for key, value := range row {
			var name string
			var ok bool
			if _, isString := value.(string); isString {
				name, ok = symbols.CharAttrName(key)
			} else {
				name, ok = symbols.IntegerAttrName(key)
			}
			if !ok {
				name = strconv.FormatInt(int64(key), 10)
			}
			named[name] = value
		}
		out = append(out, named)
	}
	return out
}
