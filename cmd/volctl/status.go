package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/volctl/internal/audio"
	"github.com/jmylchreest/volctl/internal/channel"
	"github.com/jmylchreest/volctl/internal/dbus"
	"github.com/jmylchreest/volctl/internal/output"
)

var statusOpts struct {
	remote bool
}

// WaybarStatus represents the Waybar custom module JSON format.
type WaybarStatus struct {
	Text       string `json:"text"`
	Alt        string `json:"alt,omitempty"`
	Tooltip    string `json:"tooltip,omitempty"`
	Class      string `json:"class,omitempty"`
	Percentage int    `json:"percentage"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Output Waybar-compatible JSON status",
	Long: `Output the music volume in Waybar's custom module JSON format.

  "custom/volume": {
    "exec": "volctl status",
    "interval": 2,
    "return-type": "json"
  }

The class is one of: muted, low, medium, high, error.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().BoolVar(&statusOpts.remote, "remote", false,
		"Ask volctld over D-Bus instead of reading locally")
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), dbus.DefaultCallTimeout)
	defer cancel()

	method := channel.MethodGetMediaVolume.String()

	var result channel.Result
	var err error
	if statusOpts.remote {
		result, err = callRemote(ctx, cfg.Channel.Name, method)
	} else {
		result, err = callLocal(ctx, cfg.Channel.Name, method)
	}
	if err != nil {
		result = channel.Failure(channel.Request{Method: method}, err)
	}

	return outputStatus(generateStatus(result))
}

// generateStatus creates a WaybarStatus from a channel result.
func generateStatus(result channel.Result) WaybarStatus {
	volume, ok := result.Volume()
	if !ok {
		tooltip := "volume unavailable"
		if result.Message != "" {
			tooltip = result.Message
		}
		return WaybarStatus{Text: "", Alt: "error", Class: "error", Tooltip: tooltip}
	}

	class := volumeClass(volume)
	return WaybarStatus{
		Text:       output.Percent(volume),
		Alt:        class,
		Tooltip:    fmt.Sprintf("%s volume: %s", audio.StreamMusic, output.Percent(volume)),
		Class:      class,
		Percentage: int(math.Round(volume * 100)),
	}
}

// volumeClass buckets a normalized volume into a CSS class.
func volumeClass(volume float64) string {
	switch {
	case volume <= 0:
		return "muted"
	case volume < 1.0/3.0:
		return "low"
	case volume < 2.0/3.0:
		return "medium"
	default:
		return "high"
	}
}

// outputStatus writes the status as JSON.
func outputStatus(status WaybarStatus) error {
	encoder := json.NewEncoder(os.Stdout)
	return encoder.Encode(status)
}
