package audio

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPollerCheck_BaselineThenChange(t *testing.T) {
	oracle := &fakeOracle{current: 5, max: 10}
	p := NewPoller(NewReader(oracle, nil), nil)

	var changes []float64
	p.SetChangeHandler(func(stream StreamID, volume float64) {
		assert.Equal(t, StreamMusic, stream)
		changes = append(changes, volume)
	})

	ctx := context.Background()
	p.Check(ctx)
	assert.Empty(t, changes, "first read only records a baseline")

	p.Check(ctx)
	assert.Empty(t, changes, "unchanged volume does not fire")

	oracle.current = 7
	p.Check(ctx)
	assert.Equal(t, []float64{0.7}, changes)
}

func TestPollerCheck_SkipsFailedReads(t *testing.T) {
	oracle := &fakeOracle{current: 5, max: 10}
	p := NewPoller(NewReader(oracle, nil), nil)

	fired := 0
	p.SetChangeHandler(func(StreamID, float64) { fired++ })

	ctx := context.Background()
	p.Check(ctx)

	oracle.currentErr = errors.New("gone")
	p.Check(ctx)
	assert.Zero(t, fired)

	oracle.currentErr = nil
	p.Check(ctx)
	assert.Zero(t, fired, "volume is the same as before the failure")
}

func TestPollerSetReader(t *testing.T) {
	p := NewPoller(NewReader(&fakeOracle{current: 1, max: 10}, nil), nil)

	var got float64
	p.SetChangeHandler(func(_ StreamID, v float64) { got = v })

	ctx := context.Background()
	p.Check(ctx)
	p.SetReader(NewReader(&fakeOracle{current: 9, max: 10}, nil))
	p.Check(ctx)
	assert.Equal(t, 0.9, got)
}

func TestPollerStartStop(t *testing.T) {
	oracle := &fakeOracle{current: 5, max: 10}
	p := NewPoller(NewReader(oracle, nil), nil)
	p.SetPollInterval(10 * time.Millisecond)

	require.NoError(t, p.Start(context.Background()))
	assert.True(t, p.IsRunning())
	require.NoError(t, p.Start(context.Background()), "second start is a no-op")

	p.Stop()
	assert.False(t, p.IsRunning())
	p.Stop()
}
