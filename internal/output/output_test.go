package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/volctl/internal/audio"
	"github.com/jmylchreest/volctl/internal/channel"
)

func testResults() (channel.Result, channel.Result, channel.Result) {
	req := channel.Request{ID: "01ARZ3NDEKTSV4RRFFQ69G5FAV", Channel: "volume_channel", Method: "getMediaVolume"}
	success := channel.Success(req, 0.5)
	notImpl := channel.NotImplemented(channel.Request{Method: "setMediaVolume"})
	failed := channel.Failure(req, &audio.UnavailableError{Message: "pactl missing"})
	return success, notImpl, failed
}

func TestNewFormatter(t *testing.T) {
	for _, format := range []FormatType{FormatPlain, FormatJSON, FormatYAML, FormatPercent, ""} {
		f, err := NewFormatter(format)
		require.NoError(t, err)
		assert.NotNil(t, f)
	}

	_, err := NewFormatter("xml")
	assert.Error(t, err)
}

func TestPlainFormatter_Reading(t *testing.T) {
	var buf bytes.Buffer
	f := &PlainFormatter{}

	require.NoError(t, f.FormatReading(&buf, Reading{Stream: "music", Volume: 0.5}))
	assert.Equal(t, "music 0.5\n", buf.String())

	buf.Reset()
	require.NoError(t, f.FormatReading(&buf, Reading{Stream: "music", Volume: 1, Level: &audio.Level{Current: 10, Max: 10}}))
	assert.Equal(t, "music 1 (10/10)\n", buf.String())
}

func TestPlainFormatter_Result(t *testing.T) {
	success, notImpl, failed := testResults()
	f := &PlainFormatter{}

	tests := []struct {
		name     string
		result   channel.Result
		expected string
	}{
		{"success", success, "0.5\n"},
		{"not implemented", notImpl, "setMediaVolume: not implemented\n"},
		{"error", failed, "getMediaVolume: Unavailable: pactl missing\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, f.FormatResult(&buf, tt.result))
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "50%", Percent(0.5))
	assert.Equal(t, "0%", Percent(0))
	assert.Equal(t, "100%", Percent(1))
	assert.Equal(t, "33.3%", Percent(1.0/3.0))
}

func TestPercentFormatter(t *testing.T) {
	success, notImpl, _ := testResults()
	f := &PercentFormatter{}

	var buf bytes.Buffer
	require.NoError(t, f.FormatResult(&buf, success))
	assert.Equal(t, "50%\n", buf.String())

	buf.Reset()
	require.NoError(t, f.FormatResult(&buf, notImpl))
	assert.Equal(t, "setMediaVolume: not implemented\n", buf.String())

	buf.Reset()
	require.NoError(t, f.FormatReading(&buf, Reading{Stream: "music", Volume: 0.4}))
	assert.Equal(t, "40%\n", buf.String())
}

func TestJSONFormatter(t *testing.T) {
	success, notImpl, failed := testResults()
	f := &JSONFormatter{}

	var buf bytes.Buffer
	require.NoError(t, f.FormatResult(&buf, success))
	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "success", got["status"])
	assert.Equal(t, 0.5, got["value"])
	assert.Equal(t, "01ARZ3NDEKTSV4RRFFQ69G5FAV", got["request_id"])

	buf.Reset()
	require.NoError(t, f.FormatResult(&buf, notImpl))
	got = nil
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "not_implemented", got["status"])
	assert.NotContains(t, got, "value")

	buf.Reset()
	require.NoError(t, f.FormatResult(&buf, failed))
	got = nil
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "Unavailable", got["error_kind"])
}

func TestJSONFormatter_ZeroVolumeKeepsValue(t *testing.T) {
	var buf bytes.Buffer
	result := channel.Success(channel.Request{Method: "getMediaVolume"}, 0)
	require.NoError(t, (&JSONFormatter{}).FormatResult(&buf, result))
	assert.Contains(t, buf.String(), `"value": 0`)
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := &YAMLFormatter{}

	reading := Reading{Stream: "music", Volume: 0.5, Level: &audio.Level{Current: 5, Max: 10}}
	require.NoError(t, f.FormatReading(&buf, reading))

	var got Reading
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, reading, got)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestFormatters_PropagateWriteErrors(t *testing.T) {
	success, _, _ := testResults()
	for _, format := range []FormatType{FormatPlain, FormatJSON, FormatPercent} {
		f, err := NewFormatter(format)
		require.NoError(t, err)
		assert.Error(t, f.FormatResult(failingWriter{}, success), string(format))
	}
}
