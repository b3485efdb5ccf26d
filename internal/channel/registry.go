package channel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// ErrUnknownChannel is returned when invoking a channel that was never registered.
var ErrUnknownChannel = errors.New("unknown channel")

// Registry binds channel names to handlers.
type Registry struct {
	mu       sync.RWMutex
	logger   *slog.Logger
	handlers map[string]Handler
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		logger:   logger,
		handlers: make(map[string]Handler),
	}
}

// Register binds name to handler. Empty names, nil handlers and
// duplicate names are rejected.
func (r *Registry) Register(name string, handler Handler) error {
	if err := checkBinding(name, handler); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[name]; exists {
		return fmt.Errorf("channel %s already registered", name)
	}
	r.handlers[name] = handler
	r.logger.Debug("channel registered", "channel", name)
	return nil
}

// Replace binds name to handler, overwriting any existing binding.
// Empty names and nil handlers are rejected.
func (r *Registry) Replace(name string, handler Handler) error {
	if err := checkBinding(name, handler); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = handler
	r.logger.Debug("channel replaced", "channel", name)
	return nil
}

func checkBinding(name string, handler Handler) error {
	if name == "" {
		return errors.New("channel name is empty")
	}
	if handler == nil {
		return fmt.Errorf("channel %s: handler is nil", name)
	}
	return nil
}

// Invoke sends a request for method on the named channel.
// The returned error is non-nil only when the channel is not registered;
// request failures are reported in the Result.
func (r *Registry) Invoke(ctx context.Context, channelName, method string) (Result, error) {
	return r.Dispatch(ctx, NewRequest(channelName, method))
}

// Dispatch routes an already-built request to its channel's handler.
func (r *Registry) Dispatch(ctx context.Context, req Request) (Result, error) {
	r.mu.RLock()
	handler, ok := r.handlers[req.Channel]
	r.mu.RUnlock()

	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownChannel, req.Channel)
	}

	result := handler.Handle(ctx, req)
	r.logger.Debug("request handled",
		"channel", req.Channel,
		"method", req.Method,
		"request_id", req.ID,
		"status", result.Status,
	)
	return result, nil
}

// Channels returns the registered channel names in sorted order.
func (r *Registry) Channels() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
