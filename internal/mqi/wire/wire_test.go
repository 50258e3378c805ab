package wire

import (
	"testing"

	"github.com/danmuck/mqlink/internal/mqi/cmqc"
	"github.com/danmuck/mqlink/internal/mqi/codec"
)

func hasField(s *codec.Structure, want string) bool {
	for _, f := range s.Fields() {
		if f.Name == want {
			return true
		}
	}
	return false
}

func TestMDDefaults(t *testing.T) {
	md := Default().NewMD()
	if got, _ := md.GetString("StrucId"); got != "MD" {
		t.Fatalf("StrucId = %q, want %q", got, "MD")
	}
	if got, _ := md.GetInt32("MsgType"); got != cmqc.MQMT_DATAGRAM {
		t.Fatalf("MsgType = %d, want %d", got, cmqc.MQMT_DATAGRAM)
	}
	if got, _ := md.GetInt32("Expiry"); got != cmqc.MQEI_UNLIMITED {
		t.Fatalf("Expiry = %d, want %d", got, cmqc.MQEI_UNLIMITED)
	}
	if got, _ := md.GetInt32("Encoding"); got != cmqc.MQENC_NATIVE {
		t.Fatalf("Encoding = %d, want %d", got, cmqc.MQENC_NATIVE)
	}
	if got, _ := md.GetInt32("Persistence"); got != cmqc.MQPER_PERSISTENCE_AS_Q_DEF {
		t.Fatalf("Persistence = %d, want %d", got, cmqc.MQPER_PERSISTENCE_AS_Q_DEF)
	}
	if got, _ := md.GetInt32("MsgSeqNumber"); got != 1 {
		t.Fatalf("MsgSeqNumber = %d, want 1", got)
	}
}

func TestLevelGating(t *testing.T) {
	old := NewEnv(Level60)
	cur := NewEnv(Level75)

	if hasField(old.NewOD(), "ObjectStringVSPtr") {
		t.Fatal("6.0 MQOD carries 7.0 selector fields")
	}
	if !hasField(cur.NewOD(), "ObjectStringVSPtr") {
		t.Fatal("7.5 MQOD missing selector fields")
	}

	if hasField(old.NewGMO(), "MsgHandle") {
		t.Fatal("6.0 MQGMO carries MsgHandle")
	}
	if !hasField(cur.NewGMO(), "MsgHandle") {
		t.Fatal("7.5 MQGMO missing MsgHandle")
	}

	if hasField(old.NewPMO(), "PubLevel") {
		t.Fatal("6.0 MQPMO carries PubLevel")
	}
	if !hasField(cur.NewPMO(), "PubLevel") {
		t.Fatal("7.5 MQPMO missing PubLevel")
	}

	if hasField(NewEnv(Level53).NewSCO(), "KeyResetCount") {
		t.Fatal("5.3 MQSCO carries KeyResetCount")
	}
	if !hasField(cur.NewSCO(), "KeyResetCount") {
		t.Fatal("7.5 MQSCO missing KeyResetCount")
	}
}

func TestCDVersionAndLength(t *testing.T) {
	for _, tc := range []struct {
		level Level
		want  int32
	}{
		{Level53, cmqc.MQCD_VERSION_7},
		{Level60, cmqc.MQCD_VERSION_8},
		{Level70, cmqc.MQCD_VERSION_9},
		{Level71, cmqc.MQCD_VERSION_10},
		{Level75, cmqc.MQCD_VERSION_10},
	} {
		cd := NewEnv(tc.level).NewCD()
		if got, _ := cd.GetInt32("Version"); got != tc.want {
			t.Fatalf("level %s: CD version = %d, want %d", tc.level, got, tc.want)
		}
		if got, _ := cd.GetInt32("StrucLength"); got != int32(cd.Length()) {
			t.Fatalf("level %s: StrucLength = %d, want %d", tc.level, got, cd.Length())
		}
	}

	if !hasField(NewEnv(Level70).NewCD(), "pad") {
		t.Fatal("7.0 MQCD missing alignment pad")
	}
	if hasField(NewEnv(Level71).NewCD(), "pad") {
		t.Fatal("7.1 MQCD carries alignment pad")
	}
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("7.1")
	if err != nil || l != Level71 {
		t.Fatalf("ParseLevel(7.1) = %v, %v", l, err)
	}
	if _, err := ParseLevel("9.9"); err == nil {
		t.Fatal("ParseLevel(9.9): want error, got nil")
	}
	if got, want := Level75.String(), "7.5"; got != want {
		t.Fatalf("Level75.String() = %q, want %q", got, want)
	}
}
