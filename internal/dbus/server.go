package dbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"

	"github.com/jmylchreest/volctl/internal/channel"
)

// DefaultCallTimeout bounds a single D-Bus call.
const DefaultCallTimeout = 5 * time.Second

// ChannelServer exports a channel.Registry on the session bus.
type ChannelServer struct {
	conn   *dbus.Conn
	logger *slog.Logger

	registry    *channel.Registry
	channelName string
	callTimeout time.Duration

	mu      sync.RWMutex
	running bool
}

// NewChannelServer creates a server for registry. channelName is the
// channel GetMediaVolume is routed to.
func NewChannelServer(registry *channel.Registry, channelName string, logger *slog.Logger) *ChannelServer {
	if logger == nil {
		logger = slog.Default()
	}
	if channelName == "" {
		channelName = channel.DefaultChannelName
	}
	return &ChannelServer{
		logger:      logger,
		registry:    registry,
		channelName: channelName,
		callTimeout: DefaultCallTimeout,
	}
}

// Start connects to the session bus and exports the channel service.
func (s *ChannelServer) Start() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("server already running")
	}
	s.mu.Unlock()

	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}
	s.conn = conn

	if err := conn.Export(s, DBusPath, DBusInterface); err != nil {
		return fmt.Errorf("failed to export object: %w", err)
	}

	node := &introspect.Node{
		Name: DBusPath,
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			{
				Name:    DBusInterface,
				Methods: channelMethods(),
				Signals: channelSignals(),
			},
		},
	}
	if err := conn.Export(introspect.NewIntrospectable(node), DBusPath,
		"org.freedesktop.DBus.Introspectable"); err != nil {
		return fmt.Errorf("failed to export introspectable: %w", err)
	}

	reply, err := conn.RequestName(DBusBusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return fmt.Errorf("failed to request bus name: %w", err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return fmt.Errorf("bus name %s already taken", DBusBusName)
	}

	s.mu.Lock()
	s.running = true
	s.mu.Unlock()

	s.logger.Info("D-Bus channel server started", "interface", DBusInterface, "path", DBusPath)
	return nil
}

// Stop releases the bus name.
func (s *ChannelServer) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	s.running = false

	if s.conn != nil {
		if _, err := s.conn.ReleaseName(DBusBusName); err != nil {
			s.logger.Warn("failed to release bus name", "error", err)
		}
		// Don't close the connection as it's shared (SessionBus)
	}

	s.logger.Info("D-Bus channel server stopped")
	return nil
}

// Invoke dispatches a request name on a channel.
// D-Bus method: Invoke(ss) -> (sdss)
func (s *ChannelServer) Invoke(channelName, method string) (string, float64, string, string, *dbus.Error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.callTimeout)
	defer cancel()

	result, err := s.registry.Invoke(ctx, channelName, method)
	if err != nil {
		if errors.Is(err, channel.ErrUnknownChannel) {
			return "", 0, "", "", dbus.NewError(ErrorNameUnknownChannel, []any{err.Error()})
		}
		return "", 0, "", "", dbus.MakeFailedError(err)
	}

	s.logger.Debug("Invoke called", "channel", channelName, "method", method, "status", result.Status)

	w := ToWire(result)
	return w.Status, w.Value, w.ErrorKind, w.Message, nil
}

// GetMediaVolume returns the music stream volume.
// D-Bus method: GetMediaVolume() -> d
func (s *ChannelServer) GetMediaVolume() (float64, *dbus.Error) {
	method := channel.MethodGetMediaVolume.String()
	status, value, kind, message, dbusErr := s.Invoke(s.channelName, method)
	if dbusErr != nil {
		return 0, dbusErr
	}

	result := FromWire(method, WireResult{Status: status, Value: value, ErrorKind: kind, Message: message})
	if e := resultError(result); e != nil {
		return 0, e
	}
	return value, nil
}

// ListChannels returns the registered channel names.
// D-Bus method: ListChannels() -> as
func (s *ChannelServer) ListChannels() ([]string, *dbus.Error) {
	return s.registry.Channels(), nil
}

// IsRunning reports whether the server owns the bus name.
func (s *ChannelServer) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}
