package backend

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jmylchreest/volctl/internal/audio"
)

// PulseVolumeNorm is PA_VOLUME_NORM, the raw value of 100% volume.
const PulseVolumeNorm = 65536

// PulseOracle reads sink volume via pactl. Works with PulseAudio and
// PipeWire's pulse server.
type PulseOracle struct {
	pactl   string
	sink    string
	timeout time.Duration
	run     runner
}

// NewPulseOracle creates a PulseOracle.
func NewPulseOracle(pactl, sink string, timeout time.Duration) *PulseOracle {
	return &PulseOracle{
		pactl:   pactl,
		sink:    sink,
		timeout: timeout,
		run:     execRunner,
	}
}

// Name returns the backend identifier.
func (o *PulseOracle) Name() string {
	return "pulse"
}

// StreamVolume returns the raw volume of the sink's first channel.
// Over-amplified volumes are clamped to PulseVolumeNorm.
func (o *PulseOracle) StreamVolume(ctx context.Context, stream audio.StreamID) (int, error) {
	out, err := run(ctx, o.run, o.timeout, o.Name(), o.pactl, "get-sink-volume", o.sinkFor(stream))
	if err != nil {
		return 0, err
	}

	v, err := ParsePactlVolume(out)
	if err != nil {
		return 0, &audio.UnavailableError{Source: o.Name(), Message: "unexpected pactl output", Err: err}
	}
	return min(v, PulseVolumeNorm), nil
}

// StreamMaxVolume returns PulseVolumeNorm.
func (o *PulseOracle) StreamMaxVolume(ctx context.Context, stream audio.StreamID) (int, error) {
	return PulseVolumeNorm, nil
}

// sinkFor maps a stream to a sink. Only the music stream is defined and it
// plays through the configured sink.
func (o *PulseOracle) sinkFor(audio.StreamID) string {
	return o.sink
}

// ParsePactlVolume extracts the first raw channel volume from
// `pactl get-sink-volume` output, e.g.
//
//	Volume: front-left: 26214 /  40% / -23.88 dB,   front-right: 26214 /  40% / -23.88 dB
func ParsePactlVolume(out []byte) (int, error) {
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "Volume:") {
			continue
		}

		// First channel: "<name>: <raw> / <pct> / <db>"
		rest := strings.TrimSpace(strings.TrimPrefix(line, "Volume:"))
		_, after, ok := strings.Cut(rest, ":")
		if !ok {
			return 0, fmt.Errorf("no channel in %q", line)
		}
		raw, _, _ := strings.Cut(strings.TrimSpace(after), "/")
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return 0, fmt.Errorf("invalid raw volume in %q: %w", line, err)
		}
		return v, nil
	}
	return 0, fmt.Errorf("no Volume line in pactl output")
}
