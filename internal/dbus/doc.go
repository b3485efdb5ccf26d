// Package dbus exports the volume method channel on the D-Bus session bus.
// The server answers Invoke and GetMediaVolume calls and emits
// VolumeChanged signals; the client calls a running volctld.
package dbus
