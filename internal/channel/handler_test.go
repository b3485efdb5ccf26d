package channel

import (
	"context"
	"errors"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/volctl/internal/audio"
)

type levelOracle struct {
	current int
	max     int
	err     error
}

func (o levelOracle) StreamVolume(context.Context, audio.StreamID) (int, error) {
	return o.current, o.err
}

func (o levelOracle) StreamMaxVolume(context.Context, audio.StreamID) (int, error) {
	return o.max, o.err
}

// recordingReader records which stream was requested.
type recordingReader struct {
	streams []audio.StreamID
	value   float64
}

func (r *recordingReader) NormalizedVolume(_ context.Context, stream audio.StreamID) (float64, error) {
	r.streams = append(r.streams, stream)
	return r.value, nil
}

func handlerFor(current, max int, err error) *VolumeHandler {
	return NewVolumeHandler(audio.NewReader(levelOracle{current: current, max: max, err: err}, nil), nil)
}

func TestVolumeHandler_Scenarios(t *testing.T) {
	tests := []struct {
		name     string
		current  int
		max      int
		expected float64
	}{
		{"half", 5, 10, 0.5},
		{"silent", 0, 10, 0.0},
		{"full", 10, 10, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handlerFor(tt.current, tt.max, nil)
			result := h.Handle(context.Background(), NewRequest(DefaultChannelName, "getMediaVolume"))

			require.True(t, result.IsSuccess())
			v, ok := result.Volume()
			require.True(t, ok)
			assert.Equal(t, tt.expected, v)
			assert.NoError(t, result.Err())
		})
	}
}

func TestVolumeHandler_ZeroMaxIsInvalidState(t *testing.T) {
	h := handlerFor(3, 0, nil)
	result := h.Handle(context.Background(), NewRequest(DefaultChannelName, "getMediaVolume"))

	assert.Equal(t, StatusError, result.Status)
	assert.Equal(t, ErrorInvalidState, result.ErrorKind)
	assert.Nil(t, result.Value)
	assert.NotEmpty(t, result.Message)

	var re *ResultError
	require.ErrorAs(t, result.Err(), &re)
	assert.Equal(t, ErrorInvalidState, re.Kind)
}

func TestVolumeHandler_UnreachableIsUnavailable(t *testing.T) {
	h := handlerFor(0, 0, errors.New("no route to audio service"))
	result := h.Handle(context.Background(), NewRequest(DefaultChannelName, "getMediaVolume"))

	assert.Equal(t, StatusError, result.Status)
	assert.Equal(t, ErrorUnavailable, result.ErrorKind)
	assert.Contains(t, result.Message, "no route to audio service")
}

func TestVolumeHandler_UnknownMethodNotImplemented(t *testing.T) {
	// Failing oracle proves unknown methods never touch the reader.
	h := handlerFor(0, 0, errors.New("should not be called"))

	for _, method := range []string{"setMediaVolume", "", "getmediavolume", "getMediaVolume "} {
		t.Run(method, func(t *testing.T) {
			result := h.Handle(context.Background(), NewRequest(DefaultChannelName, method))
			assert.True(t, result.IsNotImplemented())
			assert.Nil(t, result.Value)
			assert.Empty(t, result.ErrorKind)
			assert.NoError(t, result.Err())
			_, ok := result.Volume()
			assert.False(t, ok)
		})
	}
}

func TestVolumeHandler_RoutesToMusicStream(t *testing.T) {
	reader := &recordingReader{value: 0.25}
	h := NewVolumeHandler(reader, nil)

	result := h.Handle(context.Background(), NewRequest(DefaultChannelName, "getMediaVolume"))
	require.True(t, result.IsSuccess())
	assert.Equal(t, []audio.StreamID{audio.StreamMusic}, reader.streams)
}

func TestNewRequest(t *testing.T) {
	req := NewRequest("volume_channel", "getMediaVolume")
	assert.Equal(t, "volume_channel", req.Channel)
	assert.Equal(t, "getMediaVolume", req.Method)

	_, err := ulid.Parse(req.ID)
	assert.NoError(t, err)

	other := NewRequest("volume_channel", "getMediaVolume")
	assert.NotEqual(t, req.ID, other.ID)
}

type failingEntropy struct{}

func (failingEntropy) Read([]byte) (int, error) {
	return 0, errors.New("entropy exhausted")
}

func TestNewRequest_EntropyFailureStillHasID(t *testing.T) {
	saved := entropy
	entropy = failingEntropy{}
	t.Cleanup(func() { entropy = saved })

	req := NewRequest("volume_channel", "getMediaVolume")
	require.NotEmpty(t, req.ID)
	_, err := ulid.Parse(req.ID)
	assert.NoError(t, err)
}

func TestParseMethod(t *testing.T) {
	m, ok := ParseMethod("getMediaVolume")
	require.True(t, ok)
	assert.Equal(t, MethodGetMediaVolume, m)
	assert.Equal(t, "getMediaVolume", m.String())

	_, ok = ParseMethod("setMediaVolume")
	assert.False(t, ok)
	assert.Equal(t, "unknown", Method(0).String())
	assert.Equal(t, []string{"getMediaVolume"}, Methods())
}
