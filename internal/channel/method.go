// Package channel implements the named request/response method channel.
// A Registry binds channel names to Handlers; a Handler answers a Request
// with exactly one Result: success, a typed error, or not-implemented.
package channel

// Method is a recognized request name.
type Method int

const (
	// MethodGetMediaVolume reads the music stream volume as a fraction.
	MethodGetMediaVolume Method = iota + 1
)

// DefaultChannelName is the channel the volume handler is registered under.
const DefaultChannelName = "volume_channel"

// methodNames maps each Method to its wire name.
var methodNames = map[Method]string{
	MethodGetMediaVolume: "getMediaVolume",
}

// String returns the wire name of the method.
func (m Method) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return "unknown"
}

// ParseMethod maps a request name to a Method.
// Names are case-sensitive; an unrecognized name returns false.
func ParseMethod(name string) (Method, bool) {
	for m, n := range methodNames {
		if n == name {
			return m, true
		}
	}
	return 0, false
}

// Methods returns the wire names of all recognized methods.
func Methods() []string {
	return []string{MethodGetMediaVolume.String()}
}
