package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/volctl/internal/audio"
	"github.com/jmylchreest/volctl/internal/channel"
)

func TestVolumeClass(t *testing.T) {
	tests := []struct {
		volume   float64
		expected string
	}{
		{0, "muted"},
		{0.1, "low"},
		{0.5, "medium"},
		{0.7, "high"},
		{1, "high"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, volumeClass(tt.volume))
		})
	}
}

func TestGenerateStatus(t *testing.T) {
	req := channel.Request{Method: "getMediaVolume"}

	status := generateStatus(channel.Success(req, 0.4))
	assert.Equal(t, "40%", status.Text)
	assert.Equal(t, 40, status.Percentage)
	assert.Equal(t, "medium", status.Class)
	assert.Equal(t, "music volume: 40%", status.Tooltip)

	status = generateStatus(channel.Failure(req, &audio.InvalidStateError{Level: audio.Level{Current: 3}}))
	assert.Equal(t, "error", status.Class)
	assert.Empty(t, status.Text)
	assert.Contains(t, status.Tooltip, "invalid maximum volume")

	status = generateStatus(channel.NotImplemented(req))
	assert.Equal(t, "error", status.Class)
	assert.Equal(t, "volume unavailable", status.Tooltip)
}
