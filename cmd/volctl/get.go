package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/volctl/internal/audio"
	"github.com/jmylchreest/volctl/internal/output"
)

var getOpts struct {
	stream string
	raw    bool
}

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the normalized stream volume",
	Long: `Print the current volume of a stream as a fraction of its maximum.

Examples:
  volctl get
  volctl get --raw
  volctl get --format percent`,
	Args: cobra.NoArgs,
	RunE: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)

	getCmd.Flags().StringVar(&getOpts.stream, "stream", "music",
		"Audio stream (music)")
	getCmd.Flags().BoolVar(&getOpts.raw, "raw", false,
		"Include the raw current/max levels")
}

func runGet(cmd *cobra.Command, args []string) error {
	stream, err := audio.ParseStream(orDefault(getOpts.stream, "music"))
	if err != nil {
		return err
	}

	formatter, err := newFormatter()
	if err != nil {
		return err
	}

	reader, _, err := newReader()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Backend.Timeout.Duration()*2)
	defer cancel()

	level, err := reader.Level(ctx, stream)
	if err != nil {
		return err
	}

	reading := output.Reading{
		Stream: stream.String(),
		Volume: level.Normalized(),
	}
	if getOpts.raw {
		reading.Level = &level
	}

	return formatter.FormatReading(os.Stdout, reading)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
