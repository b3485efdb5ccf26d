package dbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/godbus/dbus/v5"

	"github.com/jmylchreest/volctl/internal/audio"
	"github.com/jmylchreest/volctl/internal/channel"
)

// VolumeChange is a decoded VolumeChanged signal.
type VolumeChange struct {
	Stream string
	Volume float64
}

// Client calls a running volctld over the session bus.
type Client struct {
	conn   *dbus.Conn
	obj    dbus.BusObject
	logger *slog.Logger
}

// NewClient opens a private session bus connection.
func NewClient(logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, &audio.UnavailableError{Source: "dbus", Message: "failed to connect to session bus", Err: err}
	}

	return &Client{
		conn:   conn,
		obj:    conn.Object(DBusBusName, DBusPath),
		logger: logger,
	}, nil
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Invoke sends a request name on a channel and returns the daemon's result.
// Transport failures are returned as *audio.UnavailableError; an unknown
// channel wraps channel.ErrUnknownChannel.
func (c *Client) Invoke(ctx context.Context, channelName, method string) (channel.Result, error) {
	var w WireResult
	call := c.obj.CallWithContext(ctx, DBusInterface+".Invoke", 0, channelName, method)
	if err := call.Store(&w.Status, &w.Value, &w.ErrorKind, &w.Message); err != nil {
		if errorName(err) == ErrorNameUnknownChannel {
			return channel.Result{}, fmt.Errorf("%w: %s", channel.ErrUnknownChannel, channelName)
		}
		return channel.Result{}, &audio.UnavailableError{Source: "dbus", Message: "volctld call failed", Err: err}
	}

	c.logger.Debug("remote invoke", "channel", channelName, "method", method, "status", w.Status)
	return FromWire(method, w), nil
}

// Subscribe delivers VolumeChanged signals until ctx is done.
// The returned channel is closed when the subscription ends.
func (c *Client) Subscribe(ctx context.Context) (<-chan VolumeChange, error) {
	if err := c.conn.AddMatchSignal(
		dbus.WithMatchObjectPath(DBusPath),
		dbus.WithMatchInterface(DBusInterface),
		dbus.WithMatchMember(SignalVolumeChanged),
	); err != nil {
		return nil, fmt.Errorf("failed to add signal match: %w", err)
	}

	signals := make(chan *dbus.Signal, 16)
	c.conn.Signal(signals)

	out := make(chan VolumeChange, 16)
	go func() {
		defer close(out)
		defer c.conn.RemoveSignal(signals)
		forwardVolumeChanges(ctx, signals, out)
	}()

	return out, nil
}

// forwardVolumeChanges decodes signals onto out until ctx is done or
// signals is closed. Signals that are not VolumeChanged are skipped.
func forwardVolumeChanges(ctx context.Context, signals <-chan *dbus.Signal, out chan<- VolumeChange) {
	for {
		select {
		case <-ctx.Done():
			return
		case sig, ok := <-signals:
			if !ok {
				return
			}
			change, ok := ParseVolumeChanged(sig)
			if !ok {
				continue
			}
			select {
			case out <- change:
			case <-ctx.Done():
				return
			}
		}
	}
}

// ParseVolumeChanged decodes a VolumeChanged signal.
func ParseVolumeChanged(sig *dbus.Signal) (VolumeChange, bool) {
	if sig == nil || sig.Name != DBusInterface+"."+SignalVolumeChanged || len(sig.Body) != 2 {
		return VolumeChange{}, false
	}
	stream, ok := sig.Body[0].(string)
	if !ok {
		return VolumeChange{}, false
	}
	volume, ok := sig.Body[1].(float64)
	if !ok {
		return VolumeChange{}, false
	}
	return VolumeChange{Stream: stream, Volume: volume}, true
}

// errorName returns the D-Bus error name carried by err, if any.
func errorName(err error) string {
	var byValue dbus.Error
	if errors.As(err, &byValue) {
		return byValue.Name
	}
	var byPointer *dbus.Error
	if errors.As(err, &byPointer) && byPointer != nil {
		return byPointer.Name
	}
	return ""
}
