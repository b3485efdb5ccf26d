package dbus

import (
	"fmt"


	"github.com/jmylchreest/volctl/internal/audio"
)

// EmitVolumeChanged emits the VolumeChanged signal.
func (s *ChannelServer) EmitVolumeChanged(stream audio.StreamID, volume float64) error {
	if s.conn == nil {
		return fmt.Errorf("not connected to D-Bus")
	}

	err := s.conn.Emit(DBusPath, DBusInterface+"."+SignalVolumeChanged, stream.String(), volume)
	if err != nil {
		return fmt.Errorf("failed to emit VolumeChanged signal: %w", err)
	}

	s.logger.Debug("emitted VolumeChanged signal", "stream", stream, "volume", volume)
	return nil
}
