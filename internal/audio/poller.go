package audio

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// ChangeHandler is called when a stream's normalized volume changes.
type ChangeHandler func(stream StreamID, volume float64)

// Poller periodically reads stream volumes and reports changes.
type Poller struct {
	mu     sync.RWMutex
	logger *slog.Logger
	reader *Reader

	// Last known normalized volume per stream
	last map[StreamID]float64

	// Polling interval
	pollInterval time.Duration

	// Callback for changes
	onChange ChangeHandler

	// Control channels
	stopCh chan struct{}
	doneCh chan struct{}

	running bool
}

// NewPoller creates a poller that reads volumes through reader.
func NewPoller(reader *Reader, logger *slog.Logger) *Poller {
	if logger == nil {
		logger = slog.Default()
	}

	return &Poller{
		logger:       logger,
		reader:       reader,
		last:         make(map[StreamID]float64),
		pollInterval: time.Second,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}
}

// SetPollInterval sets the polling interval. Non-positive values are ignored.
func (p *Poller) SetPollInterval(interval time.Duration) {
	if interval <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pollInterval = interval
}

// SetChangeHandler sets the callback invoked when a volume changes.
func (p *Poller) SetChangeHandler(handler ChangeHandler) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onChange = handler
}

// SetReader swaps the reader, e.g. after the backend is reconfigured.
func (p *Poller) SetReader(reader *Reader) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reader = reader
}

// Start begins polling in the background.
func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return nil
	}
	p.running = true
	p.stopCh = make(chan struct{})
	p.doneCh = make(chan struct{})
	interval := p.pollInterval
	p.mu.Unlock()

	go p.pollLoop(ctx, interval)

	p.logger.Debug("volume poller started", "interval", interval)
	return nil
}

// Stop stops polling and waits for the loop to exit.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	close(p.stopCh)
	p.mu.Unlock()

	<-p.doneCh
	p.logger.Debug("volume poller stopped")
}

// pollLoop is the main polling loop.
func (p *Poller) pollLoop(ctx context.Context, interval time.Duration) {
	defer close(p.doneCh)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stopCh:
			return
		case <-ticker.C:
			p.Check(ctx)
		}
	}
}

// Check reads every stream once and fires the change handler for streams
// whose volume differs from the last successful read. The first successful
// read of a stream only records a baseline.
func (p *Poller) Check(ctx context.Context) {
	p.mu.RLock()
	reader := p.reader
	handler := p.onChange
	p.mu.RUnlock()

	if reader == nil {
		return
	}

	for _, stream := range Streams() {
		volume, err := reader.NormalizedVolume(ctx, stream)
		if err != nil {
			p.logger.Debug("volume poll failed", "stream", stream, "error", err)
			continue
		}

		p.mu.Lock()
		previous, seen := p.last[stream]
		p.last[stream] = volume
		p.mu.Unlock()

		if seen && previous != volume {
			p.logger.Debug("stream volume changed", "stream", stream, "from", previous, "to", volume)
			if handler != nil {
				handler(stream, volume)
			}
		}
	}
}

// IsRunning returns whether the poller is currently running.
func (p *Poller) IsRunning() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.running
}
