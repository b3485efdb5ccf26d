package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamIDString(t *testing.T) {
	assert.Equal(t, "music", StreamMusic.String())
	assert.Equal(t, "unknown", StreamID(42).String())
}

func TestParseStream(t *testing.T) {
	for _, name := range []string{"music", "media", " Music ", "MEDIA"} {
		t.Run(name, func(t *testing.T) {
			s, err := ParseStream(name)
			require.NoError(t, err)
			assert.Equal(t, StreamMusic, s)
		})
	}

	for _, name := range []string{"", "ring", "alarm", "notification"} {
		t.Run("reject "+name, func(t *testing.T) {
			_, err := ParseStream(name)
			assert.Error(t, err)
		})
	}
}
