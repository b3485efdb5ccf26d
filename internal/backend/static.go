package backend

import (
	"context"
	"sync"

	"github.com/jmylchreest/volctl/internal/audio"
)

// StaticOracle reports fixed levels. Useful on hosts without an audio stack.
type StaticOracle struct {
	mu      sync.RWMutex
	current int
	max     int
}

// NewStaticOracle creates a StaticOracle.
func NewStaticOracle(current, max int) *StaticOracle {
	return &StaticOracle{current: current, max: max}
}

// Name returns the backend identifier.
func (o *StaticOracle) Name() string {
	return "static"
}

// Set changes the reported levels.
func (o *StaticOracle) Set(current, max int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.current = current
	o.max = max
}

func (o *StaticOracle) StreamVolume(context.Context, audio.StreamID) (int, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.current, nil
}

func (o *StaticOracle) StreamMaxVolume(context.Context, audio.StreamID) (int, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.max, nil
}
