package audio

import (
	"fmt"
	"strings"
)

// StreamID identifies a logical audio stream on the host.
type StreamID int

const (
	// StreamMusic is the music/media playback stream.
	StreamMusic StreamID = iota
)

// String returns the stream name.
func (s StreamID) String() string {
	switch s {
	case StreamMusic:
		return "music"
	default:
		return "unknown"
	}
}

// ParseStream converts a stream name into a StreamID.
// "media" is accepted as an alias for "music".
func ParseStream(name string) (StreamID, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "music", "media":
		return StreamMusic, nil
	default:
		return 0, fmt.Errorf("unknown stream %q", name)
	}
}

// Streams returns every defined stream.
func Streams() []StreamID {
	return []StreamID{StreamMusic}
}
