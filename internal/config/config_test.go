package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/danmuck/mqlink/internal/mqi/wire"
)

const sample = `
default = "dev"

[profiles.dev]
queue_manager = "QM1"
channel = "DEV.APP.SVRCONN"
conn_name = "localhost(1414)"
user_id = "app"
level = "7.5"

[profiles.dev.tls]
key_repository = "/var/mqm/ssl/key"
cipher_spec = "TLS_RSA_WITH_AES_128_CBC_SHA256"
fips_required = true

[profiles.local]
queue_manager = "QM.LOCAL"
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mqlink.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAndResolve(t *testing.T) {
	f, err := Load(writeConfig(t, sample))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	p, err := f.Profile("")
	if err != nil {
		t.Fatalf("default profile: %v", err)
	}
	if p.QueueManager != "QM1" {
		t.Fatalf("queue manager = %q, want QM1", p.QueueManager)
	}

	env := p.Env()
	if env.Level() != wire.Level75 {
		t.Fatalf("level = %v, want 7.5", env.Level())
	}

	cd, err := p.ChannelDescriptor(env)
	if err != nil {
		t.Fatalf("channel descriptor: %v", err)
	}
	if got, _ := cd.GetString("ChannelName"); got != "DEV.APP.SVRCONN" {
		t.Fatalf("channel = %q", got)
	}
	if got, _ := cd.GetString("SSLCipherSpec"); got != "TLS_RSA_WITH_AES_128_CBC_SHA256" {
		t.Fatalf("cipher = %q", got)
	}

	sco, err := p.TLSConfig(env)
	if err != nil {
		t.Fatalf("tls config: %v", err)
	}
	if got, _ := sco.GetString("KeyRepository"); got != "/var/mqm/ssl/key" {
		t.Fatalf("key repository = %q", got)
	}
	if got, _ := sco.GetInt32("FipsRequired"); got != 1 {
		t.Fatalf("fips = %d, want 1", got)
	}
}

func TestBindingsProfileHasNoChannel(t *testing.T) {
	f, err := Load(writeConfig(t, sample))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	p, err := f.Profile("local")
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	cd, err := p.ChannelDescriptor(p.Env())
	if err != nil {
		t.Fatalf("channel descriptor: %v", err)
	}
	if cd != nil {
		t.Fatal("bindings profile produced a channel descriptor")
	}
	if sco, _ := p.TLSConfig(p.Env()); sco != nil {
		t.Fatal("bindings profile produced a TLS block")
	}
}

func TestUnknownProfile(t *testing.T) {
	f, err := Load(writeConfig(t, sample))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := f.Profile("nope"); !errors.Is(err, ErrNoProfile) {
		t.Fatalf("unknown profile: err = %v, want ErrNoProfile", err)
	}
}

func TestValidation(t *testing.T) {
	for name, body := range map[string]string{
		"no profiles":     ``,
		"bad default":     "default = \"x\"\n[profiles.a]\nqueue_manager = \"QM\"\n",
		"missing qmgr":    "[profiles.a]\nchannel = \"C\"\nconn_name = \"h(1)\"\n",
		"channel no conn": "[profiles.a]\nqueue_manager = \"QM\"\nchannel = \"C\"\n",
		"bad level":       "[profiles.a]\nqueue_manager = \"QM\"\nlevel = \"9.9\"\n",
	} {
		if _, err := Load(writeConfig(t, body)); err == nil {
			t.Fatalf("%s: want error, got nil", name)
		}
	}
}
