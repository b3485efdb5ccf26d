package dbus

import (
	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"

	"github.com/jmylchreest/volctl/internal/channel"
)

const (
	// DBusInterface is the channel interface name.
	DBusInterface = "io.github.jmylchreest.volctl.Channel"
	// DBusPath is the channel object path.
	DBusPath = "/io/github/jmylchreest/volctl"
	// DBusBusName is the bus name to claim.
	DBusBusName = "io.github.jmylchreest.volctl"

	// SignalVolumeChanged is emitted when a stream volume changes.
	SignalVolumeChanged = "VolumeChanged"
)

// D-Bus error names returned by GetMediaVolume.
const (
	ErrorNameUnavailable    = "io.github.jmylchreest.volctl.Error.Unavailable"
	ErrorNameInvalidState   = "io.github.jmylchreest.volctl.Error.InvalidState"
	ErrorNameNotImplemented = "io.github.jmylchreest.volctl.Error.NotImplemented"
	ErrorNameUnknownChannel = "io.github.jmylchreest.volctl.Error.UnknownChannel"
)

// WireResult is the Invoke reply: (status s, value d, error_kind s, message s).
type WireResult struct {
	Status    string
	Value     float64
	ErrorKind string
	Message   string
}

// ToWire flattens a channel.Result for transport.
func ToWire(r channel.Result) WireResult {
	w := WireResult{
		Status:    string(r.Status),
		ErrorKind: string(r.ErrorKind),
		Message:   r.Message,
	}
	if v, ok := r.Volume(); ok {
		w.Value = v
	}
	return w
}

// FromWire rebuilds a channel.Result from an Invoke reply.
func FromWire(method string, w WireResult) channel.Result {
	r := channel.Result{
		Method:    method,
		Status:    channel.Status(w.Status),
		ErrorKind: channel.ErrorKind(w.ErrorKind),
		Message:   w.Message,
	}
	if r.Status == channel.StatusSuccess {
		v := w.Value
		r.Value = &v
	}
	return r
}

// resultError converts a failed or not-implemented result into a D-Bus error.
func resultError(r channel.Result) *dbus.Error {
	switch r.Status {
	case channel.StatusNotImplemented:
		return dbus.NewError(ErrorNameNotImplemented, []any{"method not implemented: " + r.Method})
	case channel.StatusError:
		name := ErrorNameUnavailable
		if r.ErrorKind == channel.ErrorInvalidState {
			name = ErrorNameInvalidState
		}
		return dbus.NewError(name, []any{r.Message})
	default:
		return nil
	}
}

// channelMethods returns the D-Bus method introspection data.
func channelMethods() []introspect.Method {
	return []introspect.Method{
		{
			Name: "Invoke",
			Args: []introspect.Arg{
				{Name: "channel", Type: "s", Direction: "in"},
				{Name: "method", Type: "s", Direction: "in"},
				{Name: "status", Type: "s", Direction: "out"},
				{Name: "value", Type: "d", Direction: "out"},
				{Name: "error_kind", Type: "s", Direction: "out"},
				{Name: "message", Type: "s", Direction: "out"},
			},
		},
		{
			Name: "GetMediaVolume",
			Args: []introspect.Arg{
				{Name: "volume", Type: "d", Direction: "out"},
			},
		},
		{
			Name: "ListChannels",
			Args: []introspect.Arg{
				{Name: "channels", Type: "as", Direction: "out"},
			},
		},
	}
}

// channelSignals returns the D-Bus signal introspection data.
func channelSignals() []introspect.Signal {
	return []introspect.Signal{
		{
			Name: SignalVolumeChanged,
			Args: []introspect.Arg{
				{Name: "stream", Type: "s"},
				{Name: "volume", Type: "d"},
			},
		},
	}
}
