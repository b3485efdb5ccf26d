package output

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/volctl/internal/channel"
)

// JSONFormatter formats output as JSON.
type JSONFormatter struct{}

// FormatReading writes the reading as a JSON object.
func (f *JSONFormatter) FormatReading(w io.Writer, r Reading) error {
	return writeJSON(w, r)
}

// FormatResult writes the result as a JSON object.
func (f *JSONFormatter) FormatResult(w io.Writer, r channel.Result) error {
	return writeJSON(w, r)
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// YAMLFormatter formats output as YAML.
type YAMLFormatter struct{}

// FormatReading writes the reading as a YAML document.
func (f *YAMLFormatter) FormatReading(w io.Writer, r Reading) error {
	return writeYAML(w, r)
}

// FormatResult writes the result as a YAML document.
func (f *YAMLFormatter) FormatResult(w io.Writer, r channel.Result) error {
	return writeYAML(w, r)
}

func writeYAML(w io.Writer, v any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}
