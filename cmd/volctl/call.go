package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/volctl/internal/channel"
	"github.com/jmylchreest/volctl/internal/dbus"
)

var callOpts struct {
	channel string
	remote  bool
}

var callCmd = &cobra.Command{
	Use:   "call <method>",
	Short: "Send a request on the method channel",
	Long: `Send a request name on the method channel and print the result.

Recognized methods: getMediaVolume. Any other name answers
"not implemented", which is not treated as a failure.

By default the request is answered in-process. With --remote it is sent
to a running volctld over D-Bus.

Examples:
  volctl call getMediaVolume
  volctl call getMediaVolume --remote --format json
  volctl call setMediaVolume`,
	Args: cobra.ExactArgs(1),
	RunE: runCall,
}

func init() {
	rootCmd.AddCommand(callCmd)

	callCmd.Flags().StringVar(&callOpts.channel, "channel", "",
		"Channel name (default from config: volume_channel)")
	callCmd.Flags().BoolVar(&callOpts.remote, "remote", false,
		"Send the request to volctld over D-Bus")
}

func runCall(cmd *cobra.Command, args []string) error {
	method := args[0]
	channelName := orDefault(callOpts.channel, cfg.Channel.Name)

	formatter, err := newFormatter()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbus.DefaultCallTimeout)
	defer cancel()

	var result channel.Result
	if callOpts.remote {
		result, err = callRemote(ctx, channelName, method)
	} else {
		result, err = callLocal(ctx, channelName, method)
	}
	if err != nil {
		return err
	}

	if err := formatter.FormatResult(os.Stdout, result); err != nil {
		return err
	}

	if result.Status == channel.StatusError {
		return fmt.Errorf("request failed: %w", result.Err())
	}
	return nil
}

func callLocal(ctx context.Context, channelName, method string) (channel.Result, error) {
	registry, err := newRegistry(newChannelReader())
	if err != nil {
		return channel.Result{}, err
	}
	return registry.Invoke(ctx, channelName, method)
}

func callRemote(ctx context.Context, channelName, method string) (channel.Result, error) {
	client, err := dbus.NewClient(logger)
	if err != nil {
		return channel.Result{}, err
	}
	defer client.Close()

	return client.Invoke(ctx, channelName, method)
}
