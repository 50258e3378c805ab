// Package config loads client connection profiles from TOML and turns
// them into the channel and TLS structures the connect verbs take.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/danmuck/mqlink/internal/mqi/codec"
	"github.com/danmuck/mqlink/internal/mqi/wire"
)

var ErrNoProfile = errors.New("config: profile not found")

// TLS is the optional transport security block of a profile.
type TLS struct {
	KeyRepository string `toml:"key_repository"`
	CipherSpec    string `toml:"cipher_spec"`
	FipsRequired  bool   `toml:"fips_required"`
}

// Profile is one named connection target.
type Profile struct {
	QueueManager string `toml:"queue_manager"`
	Channel      string `toml:"channel"`
	ConnName     string `toml:"conn_name"`
	UserId       string `toml:"user_id"`
	Level        string `toml:"level"`
	TLS          *TLS   `toml:"tls"`
}

// File is the on-disk shape: a default profile name plus a profile table.
type File struct {
	Default  string             `toml:"default"`
	Profiles map[string]Profile `toml:"profiles"`
}

// Load reads and validates a profile file.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var f File
	if err := toml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) validate() error {
	if len(f.Profiles) == 0 {
		return errors.New("config: no profiles defined")
	}
	if f.Default != "" {
		if _, ok := f.Profiles[f.Default]; !ok {
			return fmt.Errorf("config: default profile %q not defined", f.Default)
		}
	}
	for name, p := range f.Profiles {
		if p.QueueManager == "" {
			return fmt.Errorf("config: profile %q has no queue manager", name)
		}
		if p.Channel != "" && p.ConnName == "" {
			return fmt.Errorf("config: profile %q has a channel but no conn name", name)
		}
		if p.Level != "" {
			if _, err := wire.ParseLevel(p.Level); err != nil {
				return fmt.Errorf("config: profile %q: %w", name, err)
			}
		}
	}
	return nil
}

// Profile resolves a profile by name, falling back to the file default.
func (f *File) Profile(name string) (Profile, error) {
	if name == "" {
		name = f.Default
	}
	p, ok := f.Profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrNoProfile, name)
	}
	return p, nil
}

// Env returns the structure factory for the profile's level, or the
// default level when unset.
func (p Profile) Env() *wire.Env {
	if p.Level == "" {
		return wire.Default()
	}
	level, err := wire.ParseLevel(p.Level)
	if err != nil {
		return wire.Default()
	}
	return wire.NewEnv(level)
}

// ChannelDescriptor builds the client channel descriptor for the profile,
// nil for bindings-mode profiles.
func (p Profile) ChannelDescriptor(env *wire.Env) (*codec.Structure, error) {
	if p.Channel == "" {
		return nil, nil
	}
	cd := env.NewCD()
	values := map[string]any{
		"ChannelName":    p.Channel,
		"ConnectionName": p.ConnName,
	}
	if p.UserId != "" {
		values["UserIdentifier"] = p.UserId
	}
	if p.TLS != nil && p.TLS.CipherSpec != "" {
		values["SSLCipherSpec"] = p.TLS.CipherSpec
	}
	if err := cd.Apply(values); err != nil {
		return nil, err
	}
	return cd, nil
}

// TLSConfig builds the TLS structure, nil when the profile carries none.
func (p Profile) TLSConfig(env *wire.Env) (*codec.Structure, error) {
	if p.TLS == nil {
		return nil, nil
	}
	sco := env.NewSCO()
	values := map[string]any{
		"KeyRepository": p.TLS.KeyRepository,
	}
	if p.TLS.FipsRequired {
		values["FipsRequired"] = int32(1)
	}
	if err := sco.Apply(values); err != nil {
		return nil, err
	}
	return sco, nil
}
