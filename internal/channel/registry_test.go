package channel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry(nil)
	h := handlerFor(5, 10, nil)

	require.NoError(t, r.Register(DefaultChannelName, h))
	assert.Error(t, r.Register(DefaultChannelName, h), "duplicate name")
	assert.Error(t, r.Register("", h), "empty name")
	assert.Error(t, r.Register("other", nil), "nil handler")
	assert.Equal(t, []string{DefaultChannelName}, r.Channels())
}

func TestRegistry_Invoke(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.Register(DefaultChannelName, handlerFor(5, 10, nil)))

	result, err := r.Invoke(context.Background(), DefaultChannelName, "getMediaVolume")
	require.NoError(t, err)
	v, ok := result.Volume()
	require.True(t, ok)
	assert.Equal(t, 0.5, v)
	assert.Equal(t, "getMediaVolume", result.Method)
	assert.NotEmpty(t, result.RequestID)

	result, err = r.Invoke(context.Background(), DefaultChannelName, "setMediaVolume")
	require.NoError(t, err)
	assert.True(t, result.IsNotImplemented())
}

func TestRegistry_InvokeUnknownChannel(t *testing.T) {
	r := NewRegistry(nil)

	_, err := r.Invoke(context.Background(), "nope", "getMediaVolume")
	assert.ErrorIs(t, err, ErrUnknownChannel)
}

func TestRegistry_ReplaceAndHandlerFunc(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.Register(DefaultChannelName, handlerFor(5, 10, nil)))

	require.NoError(t, r.Replace(DefaultChannelName, HandlerFunc(func(_ context.Context, req Request) Result {
		return Success(req, 0.75)
	})))

	result, err := r.Invoke(context.Background(), DefaultChannelName, "anything")
	require.NoError(t, err)
	v, _ := result.Volume()
	assert.Equal(t, 0.75, v)
}

func TestRegistry_ReplaceRejectsInvalidBinding(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.Register(DefaultChannelName, handlerFor(5, 10, nil)))

	assert.Error(t, r.Replace("", handlerFor(1, 2, nil)))
	assert.Error(t, r.Replace(DefaultChannelName, nil))
	assert.Equal(t, []string{DefaultChannelName}, r.Channels())

	// The previous handler stays bound and dispatch does not panic.
	result, err := r.Invoke(context.Background(), DefaultChannelName, "getMediaVolume")
	require.NoError(t, err)
	v, ok := result.Volume()
	require.True(t, ok)
	assert.Equal(t, 0.5, v)
}
