// Package wire defines the concrete MQI structure schemas (MQMD, MQOD,
// MQGMO, ...) with command-level feature gating, plus the RFH2 extensible
// header codec.
//
// Ownership boundary:
// - per-level field lists for every parameter block the verbs exchange
// - structure defaults matching the MQI contract
// - RFH2 preamble/folder framing and its endianness negotiation
package wire

import (
	"fmt"

	"github.com/danmuck/mqlink/internal/mqi/codec"
)

// Level is a queue manager command level. Levels form a total order: every
// capability present at one level is present at all higher levels.
type Level int

const (
	Level53 Level = 53
	Level60 Level = 60
	Level70 Level = 70
	Level71 Level = 71
	Level75 Level = 75
)

func (l Level) String() string {
	return fmt.Sprintf("%d.%d", int(l)/10, int(l)%10)
}

// ParseLevel maps a dotted level string to its Level.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "5.3":
		return Level53, nil
	case "6.0":
		return Level60, nil
	case "7.0":
		return Level70, nil
	case "7.1":
		return Level71, nil
	case "7.5":
		return Level75, nil
	}
	return 0, fmt.Errorf("wire: unknown command level %q", s)
}

// Env is a structure factory pinned to one command level. All schemas are
// computed once at construction; factories afterwards are read-only and
// safe for concurrent use.
type Env struct {
	level   Level
	schemas map[string][]codec.Field
}

// NewEnv builds the schema set for a level.
func NewEnv(level Level) *Env {
	e := &Env{level: level, schemas: make(map[string][]codec.Field, 16)}
	e.schemas["MQMD"] = mdFields(level)
	e.schemas["MQOD"] = odFields(level)
	e.schemas["MQGMO"] = gmoFields(level)
	e.schemas["MQPMO"] = pmoFields(level)
	e.schemas["MQCD"] = cdFields(level)
	e.schemas["MQSCO"] = scoFields(level)
	e.schemas["MQSD"] = sdFields(level)
	e.schemas["MQSRO"] = sroFields(level)
	e.schemas["MQCMHO"] = cmhoFields(level)
	e.schemas["MQPD"] = pdFields(level)
	e.schemas["MQSMPO"] = smpoFields(level)
	e.schemas["MQIMPO"] = impoFields(level)
	e.schemas["MQTM"] = tmFields(level)
	e.schemas["MQTMC2"] = tmc2Fields(level)
	return e
}

var defaultEnv = NewEnv(Level75)

// Default returns the shared factory at the highest supported level.
func Default() *Env { return defaultEnv }

// Level returns the command level the factory is pinned to.
func (e *Env) Level() Level { return e.level }

func (e *Env) build(name string) *codec.Structure {
	return codec.MustNew(name, e.schemas[name])
}

func (e *Env) NewMD() *codec.Structure   { return e.build("MQMD") }
func (e *Env) NewOD() *codec.Structure   { return e.build("MQOD") }
func (e *Env) NewGMO() *codec.Structure  { return e.build("MQGMO") }
func (e *Env) NewPMO() *codec.Structure  { return e.build("MQPMO") }
func (e *Env) NewSCO() *codec.Structure  { return e.build("MQSCO") }
func (e *Env) NewSD() *codec.Structure   { return e.build("MQSD") }
func (e *Env) NewSRO() *codec.Structure  { return e.build("MQSRO") }
func (e *Env) NewCMHO() *codec.Structure { return e.build("MQCMHO") }
func (e *Env) NewPD() *codec.Structure   { return e.build("MQPD") }
func (e *Env) NewSMPO() *codec.Structure { return e.build("MQSMPO") }
func (e *Env) NewIMPO() *codec.Structure { return e.build("MQIMPO") }
func (e *Env) NewTM() *codec.Structure   { return e.build("MQTM") }
func (e *Env) NewTMC2() *codec.Structure { return e.build("MQTMC2") }

// NewCD builds a channel descriptor with Version and StrucLength already
// consistent with the level's schema.
func (e *Env) NewCD() *codec.Structure {
	cd := e.build("MQCD")
	// StrucLength must describe the exact packed size of this schema.
	_ = cd.Set("StrucLength", int32(cd.Length()))
	return cd
}
