package backend

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/jmylchreest/volctl/internal/audio"
)

var (
	alsaLimitsRe = regexp.MustCompile(`Limits:\s*(?:Playback\s+)?(-?\d+)\s*-\s*(-?\d+)`)
	alsaLevelRe  = regexp.MustCompile(`:\s*Playback\s+(-?\d+)\s+\[\d+%\]`)
)

// ALSALevel is a mixer control's raw value and limits.
type ALSALevel struct {
	Min   int
	Max   int
	Value int
}

// ALSAOracle reads a mixer control via amixer.
type ALSAOracle struct {
	amixer  string
	control string
	timeout time.Duration
	run     runner
}

// NewALSAOracle creates an ALSAOracle.
func NewALSAOracle(amixer, control string, timeout time.Duration) *ALSAOracle {
	return &ALSAOracle{
		amixer:  amixer,
		control: control,
		timeout: timeout,
		run:     execRunner,
	}
}

// Name returns the backend identifier.
func (o *ALSAOracle) Name() string {
	return "alsa"
}

// StreamVolume returns the control value relative to its minimum.
func (o *ALSAOracle) StreamVolume(ctx context.Context, stream audio.StreamID) (int, error) {
	level, err := o.level(ctx)
	if err != nil {
		return 0, err
	}
	return level.Value - level.Min, nil
}

// StreamMaxVolume returns the control range.
func (o *ALSAOracle) StreamMaxVolume(ctx context.Context, stream audio.StreamID) (int, error) {
	level, err := o.level(ctx)
	if err != nil {
		return 0, err
	}
	return level.Max - level.Min, nil
}

func (o *ALSAOracle) level(ctx context.Context) (ALSALevel, error) {
	out, err := run(ctx, o.run, o.timeout, o.Name(), o.amixer, "get", o.control)
	if err != nil {
		return ALSALevel{}, err
	}

	level, err := ParseAmixer(out)
	if err != nil {
		return ALSALevel{}, &audio.UnavailableError{Source: o.Name(), Message: "unexpected amixer output", Err: err}
	}
	return level, nil
}

// ParseAmixer extracts limits and the first channel value from
// `amixer get <control>` output, e.g.
//
//	Limits: Playback 0 - 87
//	Mono: Playback 52 [60%] [-26.25dB] [on]
func ParseAmixer(out []byte) (ALSALevel, error) {
	limits := alsaLimitsRe.FindSubmatch(out)
	if limits == nil {
		return ALSALevel{}, fmt.Errorf("no Limits line in amixer output")
	}
	value := alsaLevelRe.FindSubmatch(out)
	if value == nil {
		return ALSALevel{}, fmt.Errorf("no playback level in amixer output")
	}

	var level ALSALevel
	var err error
	if level.Min, err = strconv.Atoi(string(limits[1])); err != nil {
		return ALSALevel{}, err
	}
	if level.Max, err = strconv.Atoi(string(limits[2])); err != nil {
		return ALSALevel{}, err
	}
	if level.Value, err = strconv.Atoi(string(value[1])); err != nil {
		return ALSALevel{}, err
	}
	return level, nil
}
