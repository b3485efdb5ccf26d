package channel

import (
	"context"
	"crypto/rand"
	"io"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/volctl/internal/audio"
)

// Request is a single method call on a channel. Requests carry no arguments.
type Request struct {
	ID      string
	Channel string
	Method  string
}

// entropy feeds request IDs.
var entropy io.Reader = rand.Reader

// NewRequest creates a request with a fresh ULID for log correlation.
// If the entropy source fails, the process-wide monotonic source is used.
func NewRequest(channelName, method string) Request {
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		slog.Debug("request id entropy failed, using monotonic source", "error", err)
		id = ulid.Make()
	}
	return Request{ID: id.String(), Channel: channelName, Method: method}
}

// Handler answers requests on a channel.
type Handler interface {
	Handle(ctx context.Context, req Request) Result
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, req Request) Result

// Handle calls f(ctx, req).
func (f HandlerFunc) Handle(ctx context.Context, req Request) Result {
	return f(ctx, req)
}

// VolumeReader is the part of audio.Reader the volume handler needs.
type VolumeReader interface {
	NormalizedVolume(ctx context.Context, stream audio.StreamID) (float64, error)
}

// VolumeHandler serves the volume channel.
type VolumeHandler struct {
	reader VolumeReader
	logger *slog.Logger
}

// NewVolumeHandler creates a handler that answers from reader.
func NewVolumeHandler(reader VolumeReader, logger *slog.Logger) *VolumeHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &VolumeHandler{
		reader: reader,
		logger: logger,
	}
}

// Handle dispatches the request by method name.
func (h *VolumeHandler) Handle(ctx context.Context, req Request) Result {
	method, ok := ParseMethod(req.Method)
	if !ok {
		h.logger.Debug("method not implemented", "method", req.Method, "request_id", req.ID)
		return NotImplemented(req)
	}

	switch method {
	case MethodGetMediaVolume:
		volume, err := h.reader.NormalizedVolume(ctx, audio.StreamMusic)
		if err != nil {
			h.logger.Warn("volume query failed", "method", req.Method, "request_id", req.ID, "error", err)
			return Failure(req, err)
		}
		return Success(req, volume)
	default:
		return NotImplemented(req)
	}
}
