// Package backend provides audio.Oracle implementations for Linux audio
// systems. Command-line tools are used rather than native bindings, so each
// query shells out once per level read.
package backend

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/jmylchreest/volctl/internal/audio"
	"github.com/jmylchreest/volctl/internal/config"
)

// Named is an oracle that reports its backend name.
type Named interface {
	audio.Oracle
	Name() string
}

// lookPath is replaced in tests.
var lookPath = exec.LookPath

// Detect returns the name of the first available audio backend.
// Returns empty string if none found.
func Detect(cfg config.BackendConfig) string {
	if _, err := lookPath(orDefault(cfg.PactlPath, config.DefaultPactlPath)); err == nil {
		return config.BackendPulse
	}
	if _, err := lookPath(orDefault(cfg.AmixerPath, config.DefaultAmixerPath)); err == nil {
		return config.BackendALSA
	}
	return ""
}

// New creates the oracle selected by cfg. "auto" runs Detect.
func New(cfg config.BackendConfig) (Named, error) {
	name := cfg.Name
	if name == "" || name == config.BackendAuto {
		name = Detect(cfg)
	}

	timeout := cfg.Timeout.Duration()
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}

	switch name {
	case config.BackendPulse:
		return NewPulseOracle(orDefault(cfg.PactlPath, config.DefaultPactlPath),
			orDefault(cfg.PulseSink, config.DefaultPulseSink), timeout), nil
	case config.BackendALSA:
		return NewALSAOracle(orDefault(cfg.AmixerPath, config.DefaultAmixerPath),
			orDefault(cfg.ALSAControl, config.DefaultALSAControl), timeout), nil
	case config.BackendStatic:
		return NewStaticOracle(cfg.Static.Current, cfg.Static.Max), nil
	case "":
		return nil, &audio.UnavailableError{Message: "no audio backend found (install pactl or amixer)"}
	default:
		return nil, fmt.Errorf("unknown backend %q", name)
	}
}

// runner executes a command and returns its stdout.
type runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// run executes a command under timeout, mapping failures to UnavailableError.
func run(ctx context.Context, r runner, timeout time.Duration, source, name string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := r(ctx, name, args...)
	if err != nil {
		return nil, &audio.UnavailableError{
			Source:  source,
			Message: "failed to execute " + name,
			Err:     err,
		}
	}
	return out, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// failedOracle reports the same error for every read.
type failedOracle struct {
	err error
}

// Unavailable returns an oracle whose reads all fail with err. It lets the
// channel answer requests (including not-implemented ones) when no backend
// could be built.
func Unavailable(err error) Named {
	return failedOracle{err: err}
}

func (o failedOracle) Name() string {
	return "unavailable"
}

func (o failedOracle) StreamVolume(context.Context, audio.StreamID) (int, error) {
	return 0, o.err
}

func (o failedOracle) StreamMaxVolume(context.Context, audio.StreamID) (int, error) {
	return 0, o.err
}
