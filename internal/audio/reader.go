package audio

import (
	"context"
	"errors"
	"log/slog"
)

// Oracle is the platform audio service. Levels are read fresh on every call.
type Oracle interface {
	// StreamVolume returns the current level of the stream.
	StreamVolume(ctx context.Context, stream StreamID) (int, error)

	// StreamMaxVolume returns the maximum level of the stream.
	StreamMaxVolume(ctx context.Context, stream StreamID) (int, error)
}

// Level is a current/max volume pair for one stream.
type Level struct {
	Current int `json:"current" yaml:"current"`
	Max     int `json:"max" yaml:"max"`
}

// Normalized returns Current/Max using floating point division.
func (l Level) Normalized() float64 {
	return float64(l.Current) / float64(l.Max)
}

// Reader translates a stream selector into a normalized volume.
type Reader struct {
	oracle Oracle
	logger *slog.Logger
}

// NewReader creates a Reader backed by the given oracle.
func NewReader(oracle Oracle, logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{
		oracle: oracle,
		logger: logger,
	}
}

// Level queries the current and maximum level of a stream.
// Returns *UnavailableError if the oracle fails and *InvalidStateError
// if the maximum is not positive or the current level is out of range.
func (r *Reader) Level(ctx context.Context, stream StreamID) (Level, error) {
	if r.oracle == nil {
		return Level{}, &UnavailableError{Message: "no audio backend configured"}
	}

	current, err := r.oracle.StreamVolume(ctx, stream)
	if err != nil {
		return Level{}, unavailable(stream, "failed to read stream volume", err)
	}

	maxVolume, err := r.oracle.StreamMaxVolume(ctx, stream)
	if err != nil {
		return Level{}, unavailable(stream, "failed to read stream max volume", err)
	}

	level := Level{Current: current, Max: maxVolume}
	if level.Max <= 0 || level.Current < 0 || level.Current > level.Max {
		return Level{}, &InvalidStateError{Stream: stream, Level: level}
	}

	return level, nil
}

// NormalizedVolume returns the stream's current volume as a fraction of its
// maximum, in [0.0, 1.0].
func (r *Reader) NormalizedVolume(ctx context.Context, stream StreamID) (float64, error) {
	level, err := r.Level(ctx, stream)
	if err != nil {
		return 0, err
	}

	volume := level.Normalized()
	r.logger.Debug("read stream volume",
		"stream", stream,
		"current", level.Current,
		"max", level.Max,
		"volume", volume,
	)
	return volume, nil
}

// unavailable wraps an oracle error, keeping an existing UnavailableError intact.
func unavailable(stream StreamID, msg string, err error) error {
	var ue *UnavailableError
	if errors.As(err, &ue) {
		return ue
	}
	return &UnavailableError{
		Source:  stream.String(),
		Message: msg,
		Err:     err,
	}
}
