// Package output provides output formatters for volume readings and
// channel results.
package output

import (
	"fmt"
	"io"

	"github.com/jmylchreest/volctl/internal/audio"
	"github.com/jmylchreest/volctl/internal/channel"
)

// Reading is a single normalized volume reading.
type Reading struct {
	Stream string       `json:"stream" yaml:"stream"`
	Volume float64      `json:"volume" yaml:"volume"`
	Level  *audio.Level `json:"level,omitempty" yaml:"level,omitempty"`
}

// Formatter writes readings and results.
type Formatter interface {
	// FormatReading writes a volume reading.
	FormatReading(w io.Writer, r Reading) error

	// FormatResult writes a channel result.
	FormatResult(w io.Writer, r channel.Result) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatPlain   FormatType = "plain"
	FormatJSON    FormatType = "json"
	FormatYAML    FormatType = "yaml"
	FormatPercent FormatType = "percent"
)

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType) (Formatter, error) {
	switch format {
	case FormatPlain, "":
		return &PlainFormatter{}, nil
	case FormatJSON:
		return &JSONFormatter{}, nil
	case FormatYAML:
		return &YAMLFormatter{}, nil
	case FormatPercent:
		return &PercentFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}
