// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultBackend      = "auto"
	DefaultPactlPath    = "pactl"
	DefaultAmixerPath   = "amixer"
	DefaultALSAControl  = "Master"
	DefaultPulseSink    = "@DEFAULT_SINK@"
	DefaultTimeout      = 2 * time.Second
	DefaultChannelName  = "volume_channel"
	DefaultPollInterval = time.Second
	DefaultFormat       = "plain"
)

// Backend names accepted in [backend].name.
const (
	BackendAuto   = "auto"
	BackendPulse  = "pulse"
	BackendALSA   = "alsa"
	BackendStatic = "static"
)

// Duration is a time.Duration that can be unmarshaled from human-readable strings.
// Supports formats like "500ms", "2s", "1m", or integer milliseconds.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)

	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: must be like '500ms', '2s', '1m' or milliseconds: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

// MarshalText implements encoding.TextMarshaler for TOML output.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Config represents the volctl configuration.
type Config struct {
	Backend BackendConfig `toml:"backend"`
	Channel ChannelConfig `toml:"channel"`
	Daemon  DaemonConfig  `toml:"daemon"`
	Output  OutputConfig  `toml:"output"`
}

// BackendConfig selects and configures the platform audio oracle.
type BackendConfig struct {
	Name        string       `toml:"name"`         // auto, pulse, alsa, static
	PactlPath   string       `toml:"pactl_path"`   // pactl binary
	AmixerPath  string       `toml:"amixer_path"`  // amixer binary
	ALSAControl string       `toml:"alsa_control"` // mixer control for the music stream
	PulseSink   string       `toml:"pulse_sink"`   // sink for the music stream
	Timeout     Duration     `toml:"timeout"`      // per-query command timeout
	Static      StaticConfig `toml:"static"`
}

// StaticConfig holds fixed levels for the static backend.
type StaticConfig struct {
	Current int `toml:"current"`
	Max     int `toml:"max"`
}

// ChannelConfig names the method channel.
type ChannelConfig struct {
	Name string `toml:"name"`
}

// DaemonConfig holds volctld settings.
type DaemonConfig struct {
	PollInterval Duration `toml:"poll_interval"`
	EmitChanges  bool     `toml:"emit_changes"` // Emit VolumeChanged signals
}

// OutputConfig holds CLI output defaults.
type OutputConfig struct {
	Format string `toml:"format"` // plain, json, yaml, percent
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			Name:        DefaultBackend,
			PactlPath:   DefaultPactlPath,
			AmixerPath:  DefaultAmixerPath,
			ALSAControl: DefaultALSAControl,
			PulseSink:   DefaultPulseSink,
			Timeout:     Duration(DefaultTimeout),
			Static: StaticConfig{
				Current: 0,
				Max:     100,
			},
		},
		Channel: ChannelConfig{
			Name: DefaultChannelName,
		},
		Daemon: DaemonConfig{
			PollInterval: Duration(DefaultPollInterval),
			EmitChanges:  true,
		},
		Output: OutputConfig{
			Format: DefaultFormat,
		},
	}
}

// ConfigDir returns the volctl config directory.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "volctl")
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// EnvPath returns the path to the optional env override file.
func EnvPath() string {
	return filepath.Join(ConfigDir(), "volctl.env")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values that would otherwise fail later at query time.
func (c *Config) Validate() error {
	switch c.Backend.Name {
	case BackendAuto, BackendPulse, BackendALSA, BackendStatic:
	default:
		return fmt.Errorf("unknown backend %q", c.Backend.Name)
	}

	switch c.Output.Format {
	case "plain", "json", "yaml", "percent":
	default:
		return fmt.Errorf("unknown output format %q", c.Output.Format)
	}

	if c.Channel.Name == "" {
		return errors.New("channel name is empty")
	}
	return nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
