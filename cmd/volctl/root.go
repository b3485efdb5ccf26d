// Package main provides the CLI entrypoint for volctl.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/volctl/internal/audio"
	"github.com/jmylchreest/volctl/internal/backend"
	"github.com/jmylchreest/volctl/internal/channel"
	"github.com/jmylchreest/volctl/internal/config"
	"github.com/jmylchreest/volctl/internal/output"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		configPath string
		format     string
	}
	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "volctl",
	Short: "Query the normalized music volume",
	Long: `volctl reads the current music-stream volume from the host audio
system (PulseAudio/PipeWire via pactl, or ALSA via amixer) and reports it
as a fraction between 0 and 1.

Requests can be answered locally or sent over D-Bus to a running volctld
through the volume_channel method channel.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.ApplyEnvFile(""); err != nil {
			return fmt.Errorf("failed to apply env overrides: %w", err)
		}
		if globalOpts.format != "" {
			cfg.Output.Format = globalOpts.format
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGet(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "volctl:", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/volctl/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&globalOpts.format, "format", "f", "",
		"Output format: plain, json, yaml, percent")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// newReader builds a Reader over the configured backend.
func newReader() (*audio.Reader, string, error) {
	oracle, err := backend.New(cfg.Backend)
	if err != nil {
		return nil, "", err
	}
	logger.Debug("using audio backend", "backend", oracle.Name())
	return audio.NewReader(oracle, logger), oracle.Name(), nil
}

// newChannelReader is newReader for channel requests: a missing backend is
// reported per request instead of failing before dispatch.
func newChannelReader() *audio.Reader {
	reader, _, err := newReader()
	if err != nil {
		logger.Debug("no usable audio backend", "error", err)
		return audio.NewReader(backend.Unavailable(err), logger)
	}
	return reader
}

// newRegistry registers the volume handler under the configured channel name.
func newRegistry(reader *audio.Reader) (*channel.Registry, error) {
	registry := channel.NewRegistry(logger)
	if err := registry.Register(cfg.Channel.Name, channel.NewVolumeHandler(reader, logger)); err != nil {
		return nil, err
	}
	return registry, nil
}

// newFormatter returns the formatter for the configured output format.
func newFormatter() (output.Formatter, error) {
	return output.NewFormatter(output.FormatType(cfg.Output.Format))
}
