package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/volctl/internal/channel"
)

// PlainFormatter writes one human-readable line.
type PlainFormatter struct{}

// FormatReading writes "music 0.5" or, with a level, "music 0.5 (5/10)".
func (f *PlainFormatter) FormatReading(w io.Writer, r Reading) error {
	line := r.Stream + " " + formatVolume(r.Volume)
	if r.Level != nil {
		line += fmt.Sprintf(" (%d/%d)", r.Level.Current, r.Level.Max)
	}
	_, err := fmt.Fprintln(w, line)
	return err
}

// FormatResult writes the value, "not implemented", or the error.
func (f *PlainFormatter) FormatResult(w io.Writer, r channel.Result) error {
	var line string
	switch r.Status {
	case channel.StatusSuccess:
		v, _ := r.Volume()
		line = formatVolume(v)
	case channel.StatusNotImplemented:
		line = r.Method + ": not implemented"
	default:
		line = fmt.Sprintf("%s: %s: %s", r.Method, r.ErrorKind, r.Message)
	}
	_, err := fmt.Fprintln(w, line)
	return err
}

// PercentFormatter writes volumes as percentages, e.g. "40%".
type PercentFormatter struct{}

// FormatReading writes the reading as a percentage.
func (f *PercentFormatter) FormatReading(w io.Writer, r Reading) error {
	_, err := fmt.Fprintln(w, Percent(r.Volume))
	return err
}

// FormatResult writes a successful value as a percentage and anything else
// like PlainFormatter.
func (f *PercentFormatter) FormatResult(w io.Writer, r channel.Result) error {
	if v, ok := r.Volume(); ok {
		_, err := fmt.Fprintln(w, Percent(v))
		return err
	}
	return (&PlainFormatter{}).FormatResult(w, r)
}

// Percent renders a normalized volume as a percentage with at most one
// decimal place.
func Percent(volume float64) string {
	return humanize.FtoaWithDigits(volume*100, 1) + "%"
}

// formatVolume renders a normalized volume without trailing zeros.
func formatVolume(volume float64) string {
	return strconv.FormatFloat(volume, 'f', -1, 64)
}
