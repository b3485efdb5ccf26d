package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/volctl/internal/audio"
	"github.com/jmylchreest/volctl/internal/channel"
	"github.com/jmylchreest/volctl/internal/dbus"
	"github.com/jmylchreest/volctl/internal/tui"
)

var watchOpts struct {
	interval time.Duration
	remote   bool
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Show a live volume meter",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationVar(&watchOpts.interval, "interval", time.Second,
		"Poll interval")
	watchCmd.Flags().BoolVar(&watchOpts.remote, "remote", false,
		"Follow volctld over D-Bus instead of reading locally")
}

func runWatch(cmd *cobra.Command, args []string) error {
	opts := tui.Options{
		Interval: watchOpts.interval,
		Timeout:  cfg.Backend.Timeout.Duration() * 2,
	}

	if watchOpts.remote {
		client, err := dbus.NewClient(logger)
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		changes, err := client.Subscribe(ctx)
		if err != nil {
			logger.Warn("VolumeChanged signals unavailable, polling only", "error", err)
		} else {
			opts.Changes = streamChanges(changes, audio.StreamMusic)
		}

		opts.Title = fmt.Sprintf("%s via volctld", audio.StreamMusic)
		return tui.Run(remoteSource(client, cfg.Channel.Name), opts)
	}

	reader, name, err := newReader()
	if err != nil {
		return err
	}
	opts.Title = fmt.Sprintf("%s via %s", audio.StreamMusic, name)
	return tui.Run(func(ctx context.Context) (float64, error) {
		return reader.NormalizedVolume(ctx, audio.StreamMusic)
	}, opts)
}

// remoteSource polls getMediaVolume through the daemon.
func remoteSource(client *dbus.Client, channelName string) tui.Source {
	return func(ctx context.Context) (float64, error) {
		result, err := client.Invoke(ctx, channelName, channel.MethodGetMediaVolume.String())
		if err != nil {
			return 0, err
		}
		if v, ok := result.Volume(); ok {
			return v, nil
		}
		if err := result.Err(); err != nil {
			return 0, err
		}
		return 0, fmt.Errorf("%s: not implemented by volctld", result.Method)
	}
}

// streamChanges forwards the values of one stream's VolumeChanged signals.
// The result is closed when changes is.
func streamChanges(changes <-chan dbus.VolumeChange, stream audio.StreamID) <-chan float64 {
	out := make(chan float64)
	go func() {
		defer close(out)
		for change := range changes {
			if change.Stream == stream.String() {
				out <- change.Volume
			}
		}
	}()
	return out
}
