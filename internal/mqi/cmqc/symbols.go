package cmqc

import "sync"

// entry pairs a mnemonic with its numeric code for registry construction.
type entry struct {
	name string
	code int32
}

var reasonEntries = []entry{
	{"MQRC_NONE", MQRC_NONE},
	{"MQRC_ALREADY_CONNECTED", MQRC_ALREADY_CONNECTED},
	{"MQRC_BUFFER_LENGTH_ERROR", MQRC_BUFFER_LENGTH_ERROR},
	{"MQRC_CONNECTION_BROKEN", MQRC_CONNECTION_BROKEN},
	{"MQRC_DATA_LENGTH_ERROR", MQRC_DATA_LENGTH_ERROR},
	{"MQRC_GET_INHIBITED", MQRC_GET_INHIBITED},
	{"MQRC_HCONN_ERROR", MQRC_HCONN_ERROR},
	{"MQRC_HOBJ_ERROR", MQRC_HOBJ_ERROR},
	{"MQRC_MSG_TOO_BIG_FOR_Q", MQRC_MSG_TOO_BIG_FOR_Q},
	{"MQRC_NO_MSG_AVAILABLE", MQRC_NO_MSG_AVAILABLE},
	{"MQRC_NOT_AUTHORIZED", MQRC_NOT_AUTHORIZED},
	{"MQRC_NOT_OPEN_FOR_INPUT", MQRC_NOT_OPEN_FOR_INPUT},
	{"MQRC_NOT_OPEN_FOR_INQUIRE", MQRC_NOT_OPEN_FOR_INQUIRE},
	{"MQRC_NOT_OPEN_FOR_OUTPUT", MQRC_NOT_OPEN_FOR_OUTPUT},
	{"MQRC_NOT_OPEN_FOR_SET", MQRC_NOT_OPEN_FOR_SET},
	{"MQRC_OBJECT_IN_USE", MQRC_OBJECT_IN_USE},
	{"MQRC_OPTIONS_ERROR", MQRC_OPTIONS_ERROR},
	{"MQRC_PUT_INHIBITED", MQRC_PUT_INHIBITED},
	{"MQRC_Q_FULL", MQRC_Q_FULL},
	{"MQRC_Q_MGR_NAME_ERROR", MQRC_Q_MGR_NAME_ERROR},
	{"MQRC_Q_MGR_NOT_AVAILABLE", MQRC_Q_MGR_NOT_AVAILABLE},
	{"MQRC_SELECTOR_ERROR", MQRC_SELECTOR_ERROR},
	{"MQRC_TRUNCATED_MSG_ACCEPTED", MQRC_TRUNCATED_MSG_ACCEPTED},
	{"MQRC_TRUNCATED_MSG_FAILED", MQRC_TRUNCATED_MSG_FAILED},
	{"MQRC_UNKNOWN_OBJECT_NAME", MQRC_UNKNOWN_OBJECT_NAME},
	{"MQRC_HMSG_ERROR", MQRC_HMSG_ERROR},
	{"MQRC_PROPERTY_VALUE_TOO_BIG", MQRC_PROPERTY_VALUE_TOO_BIG},
	{"MQRC_PROPERTY_NOT_AVAILABLE", MQRC_PROPERTY_NOT_AVAILABLE},
	{"MQRC_SUB_ALREADY_EXISTS", MQRC_SUB_ALREADY_EXISTS},
	{"MQRC_NO_SUBSCRIPTION", MQRC_NO_SUBSCRIPTION},
}

var pcfReasonEntries = []entry{
	{"MQRCCF_CFH_TYPE_ERROR", MQRCCF_CFH_TYPE_ERROR},
	{"MQRCCF_CFH_LENGTH_ERROR", MQRCCF_CFH_LENGTH_ERROR},
	{"MQRCCF_CFH_VERSION_ERROR", MQRCCF_CFH_VERSION_ERROR},
	{"MQRCCF_CFH_COMMAND_ERROR", MQRCCF_CFH_COMMAND_ERROR},
	{"MQRCCF_COMMAND_FAILED", MQRCCF_COMMAND_FAILED},
	{"MQRCCF_CFIN_LENGTH_ERROR", MQRCCF_CFIN_LENGTH_ERROR},
	{"MQRCCF_CFST_LENGTH_ERROR", MQRCCF_CFST_LENGTH_ERROR},
	{"MQRCCF_Q_NAME_ERROR", MQRCCF_Q_NAME_ERROR},
	{"MQRCCF_OBJECT_OPEN", MQRCCF_OBJECT_OPEN},
}

var integerAttrEntries = []entry{
	{"MQIA_CURRENT_Q_DEPTH", MQIA_CURRENT_Q_DEPTH},
	{"MQIA_DEF_PERSISTENCE", MQIA_DEF_PERSISTENCE},
	{"MQIA_DEF_PRIORITY", MQIA_DEF_PRIORITY},
	{"MQIA_INHIBIT_GET", MQIA_INHIBIT_GET},
	{"MQIA_INHIBIT_PUT", MQIA_INHIBIT_PUT},
	{"MQIA_MAX_MSG_LENGTH", MQIA_MAX_MSG_LENGTH},
	{"MQIA_MAX_Q_DEPTH", MQIA_MAX_Q_DEPTH},
	{"MQIA_OPEN_INPUT_COUNT", MQIA_OPEN_INPUT_COUNT},
	{"MQIA_OPEN_OUTPUT_COUNT", MQIA_OPEN_OUTPUT_COUNT},
	{"MQIA_Q_TYPE", MQIA_Q_TYPE},
	{"MQIA_COMMAND_LEVEL", MQIA_COMMAND_LEVEL},
	{"MQIA_PLATFORM", MQIA_PLATFORM},
}

var charAttrEntries = []entry{
	{"MQCA_CREATION_DATE", MQCA_CREATION_DATE},
	{"MQCA_CREATION_TIME", MQCA_CREATION_TIME},
	{"MQCA_DEAD_LETTER_Q_NAME", MQCA_DEAD_LETTER_Q_NAME},
	{"MQCA_Q_DESC", MQCA_Q_DESC},
	{"MQCA_Q_MGR_DESC", MQCA_Q_MGR_DESC},
	{"MQCA_Q_MGR_NAME", MQCA_Q_MGR_NAME},
	{"MQCA_Q_NAME", MQCA_Q_NAME},
}

var commandEntries = []entry{
	{"MQCMD_CHANGE_Q_MGR", MQCMD_CHANGE_Q_MGR},
	{"MQCMD_INQUIRE_Q_MGR", MQCMD_INQUIRE_Q_MGR},
	{"MQCMD_CHANGE_Q", MQCMD_CHANGE_Q},
	{"MQCMD_CLEAR_Q", MQCMD_CLEAR_Q},
	{"MQCMD_CREATE_Q", MQCMD_CREATE_Q},
	{"MQCMD_INQUIRE_Q", MQCMD_INQUIRE_Q},
	{"MQCMD_DELETE_Q", MQCMD_DELETE_Q},
	{"MQCMD_RESET_Q_STATS", MQCMD_RESET_Q_STATS},
	{"MQCMD_INQUIRE_Q_NAMES", MQCMD_INQUIRE_Q_NAMES},
	{"MQCMD_INQUIRE_CHANNEL_NAMES", MQCMD_INQUIRE_CHANNEL_NAMES},
	{"MQCMD_INQUIRE_CHANNEL", MQCMD_INQUIRE_CHANNEL},
	{"MQCMD_PING_CHANNEL", MQCMD_PING_CHANNEL},
	{"MQCMD_PING_Q_MGR", MQCMD_PING_Q_MGR},
	{"MQCMD_INQUIRE_Q_STATUS", MQCMD_INQUIRE_Q_STATUS},
	{"MQCMD_INQUIRE_CHANNEL_STATUS", MQCMD_INQUIRE_CHANNEL_STATUS},
}

// Symbols resolves numeric codes to mnemonics and command names to opcodes.
// The tables are built at most once, behind the mutex in buildOnce; reads
// after that are lock-free.
type Symbols struct {
	reasons      map[int32]string
	pcfReasons   map[int32]string
	integerAttrs map[int32]string
	charAttrs    map[int32]string
	commands     map[string]int32
}

var (
	buildOnce      sync.Once
	defaultSymbols *Symbols
)

// DefaultSymbols returns the shared registry, building it on first use.
func DefaultSymbols() *Symbols {
	buildOnce.Do(func() {
		defaultSymbols = newSymbols()
	})
	return defaultSymbols
}

func newSymbols() *Symbols {
	s := &Symbols{
		reasons:      make(map[int32]string, len(reasonEntries)),
		pcfReasons:   make(map[int32]string, len(pcfReasonEntries)),
		integerAttrs: make(map[int32]string, len(integerAttrEntries)),
		charAttrs:    make(map[int32]string, len(charAttrEntries)),
		commands:     make(map[string]int32, len(commandEntries)),
	}
	for _, e := range reasonEntries {
		s.reasons[e.code] = e.name
	}
	for _, e := range pcfReasonEntries {
		s.pcfReasons[e.code] = e.name
	}
	for _, e := range integerAttrEntries {
		s.integerAttrs[e.code] = e.name
	}
	for _, e := range charAttrEntries {
		s.charAttrs[e.code] = e.name
	}
	for _, e := range commandEntries {
		s.commands[e.name] = e.code
	}
	return s
}

// ReasonName resolves a reason code, consulting the MQRC_ table first and
// the MQRCCF_ table second.
func (s *Symbols) ReasonName(code int32) (string, bool) {
	if name, ok := s.reasons[code]; ok {
		return name, true
	}
	name, ok := s.pcfReasons[code]
	return name, ok
}

// IntegerAttrName resolves an MQIA_ selector to its mnemonic.
func (s *Symbols) IntegerAttrName(code int32) (string, bool) {
	name, ok := s.integerAttrs[code]
	return name, ok
}

// CharAttrName resolves an MQCA_ selector to its mnemonic.
func (s *Symbols) CharAttrName(code int32) (string, bool) {
	name, ok := s.charAttrs[code]
	return name, ok
}

// Command resolves an MQCMD_ name to its opcode.
func (s *Symbols) Command(name string) (int32, bool) {
	code, ok := s.commands[name]
	return code, ok
}
