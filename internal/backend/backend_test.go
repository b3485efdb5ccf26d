package backend

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/volctl/internal/audio"
	"github.com/jmylchreest/volctl/internal/config"
)

// fakeRunner returns canned output and records the invoked command line.
type fakeRunner struct {
	out  string
	err  error
	args [][]string
}

func (f *fakeRunner) run(_ context.Context, name string, args ...string) ([]byte, error) {
	f.args = append(f.args, append([]string{name}, args...))
	return []byte(f.out), f.err
}

func withLookPath(t *testing.T, available ...string) {
	t.Helper()
	orig := lookPath
	lookPath = func(file string) (string, error) {
		for _, a := range available {
			if a == file {
				return "/usr/bin/" + file, nil
			}
		}
		return "", exec.ErrNotFound
	}
	t.Cleanup(func() { lookPath = orig })
}

func TestDetect(t *testing.T) {
	cfg := config.DefaultConfig().Backend

	withLookPath(t, "pactl", "amixer")
	assert.Equal(t, "pulse", Detect(cfg))

	withLookPath(t, "amixer")
	assert.Equal(t, "alsa", Detect(cfg))

	withLookPath(t)
	assert.Equal(t, "", Detect(cfg))
}

func TestNew(t *testing.T) {
	withLookPath(t, "amixer")

	tests := []struct {
		backend  string
		expected string
	}{
		{"pulse", "pulse"},
		{"alsa", "alsa"},
		{"static", "static"},
		{"auto", "alsa"},
		{"", "alsa"},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			cfg := config.DefaultConfig().Backend
			cfg.Name = tt.backend
			o, err := New(cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, o.Name())
		})
	}
}

func TestNew_Errors(t *testing.T) {
	withLookPath(t)

	cfg := config.DefaultConfig().Backend
	_, err := New(cfg)
	var ue *audio.UnavailableError
	assert.ErrorAs(t, err, &ue, "auto with nothing installed")

	cfg.Name = "oss"
	_, err = New(cfg)
	assert.Error(t, err)
}

func TestStaticOracle(t *testing.T) {
	o := NewStaticOracle(5, 10)
	r := audio.NewReader(o, nil)

	v, err := r.NormalizedVolume(context.Background(), audio.StreamMusic)
	require.NoError(t, err)
	assert.Equal(t, 0.5, v)

	o.Set(3, 0)
	_, err = r.NormalizedVolume(context.Background(), audio.StreamMusic)
	var ise *audio.InvalidStateError
	assert.ErrorAs(t, err, &ise)
}

func TestRun_MapsErrorsToUnavailable(t *testing.T) {
	f := &fakeRunner{err: errors.New("exit status 1")}
	_, err := run(context.Background(), f.run, time.Second, "pulse", "pactl", "info")

	var ue *audio.UnavailableError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "pulse", ue.Source)
	assert.Equal(t, [][]string{{"pactl", "info"}}, f.args)
}

func TestUnavailable(t *testing.T) {
	cause := &audio.UnavailableError{Message: "no audio backend found"}
	o := Unavailable(cause)
	assert.Equal(t, "unavailable", o.Name())

	_, err := audio.NewReader(o, nil).NormalizedVolume(context.Background(), audio.StreamMusic)
	assert.Same(t, cause, err)
}
