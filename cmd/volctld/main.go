// Package main is the entry point for the volctld D-Bus daemon.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmylchreest/volctl/internal/audio"
	"github.com/jmylchreest/volctl/internal/backend"
	"github.com/jmylchreest/volctl/internal/channel"
	"github.com/jmylchreest/volctl/internal/config"
	"github.com/jmylchreest/volctl/internal/dbus"
)

var (
	// Build-time variables
	version = "dev"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (default: ~/.config/volctl/config.toml)")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("volctld version", version)
		os.Exit(0)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := run(*configPath, logger); err != nil {
		logger.Error("volctld failed", "error", err)
		os.Exit(1)
	}
}

// daemon holds the running components so config reloads can swap the backend.
type daemon struct {
	logger   *slog.Logger
	registry *channel.Registry
	server   *dbus.ChannelServer
	poller   *audio.Poller
	channel  string
}

// buildReader creates a reader for cfg, falling back to an oracle that
// reports the construction error on every request.
func buildReader(cfg *config.Config, logger *slog.Logger) *audio.Reader {
	oracle, err := backend.New(cfg.Backend)
	if err != nil {
		logger.Warn("audio backend unavailable", "backend", cfg.Backend.Name, "error", err)
		oracle = backend.Unavailable(err)
	} else {
		logger.Info("audio backend ready", "backend", oracle.Name())
	}
	return audio.NewReader(oracle, logger)
}

func run(configPath string, logger *slog.Logger) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.ApplyEnvFile(""); err != nil {
		return fmt.Errorf("failed to apply env overrides: %w", err)
	}

	logger.Info("starting volctld", "version", version, "channel", cfg.Channel.Name)

	reader := buildReader(cfg, logger)

	registry := channel.NewRegistry(logger)
	if err := registry.Register(cfg.Channel.Name, channel.NewVolumeHandler(reader, logger)); err != nil {
		return err
	}

	d := &daemon{
		logger:   logger,
		registry: registry,
		server:   dbus.NewChannelServer(registry, cfg.Channel.Name, logger),
		poller:   audio.NewPoller(reader, logger),
		channel:  cfg.Channel.Name,
	}

	if err := d.server.Start(); err != nil {
		return err
	}
	defer d.server.Stop()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	d.poller.SetPollInterval(cfg.Daemon.PollInterval.Duration())
	d.poller.SetChangeHandler(func(stream audio.StreamID, volume float64) {
		if err := d.server.EmitVolumeChanged(stream, volume); err != nil {
			logger.Warn("failed to emit volume change", "error", err)
		}
	})
	if cfg.Daemon.EmitChanges {
		if err := d.poller.Start(ctx); err != nil {
			return err
		}
		defer d.poller.Stop()
	}

	watcher, err := config.NewWatcher(configPath, d.reload, logger)
	if err != nil {
		logger.Warn("config hot reload disabled", "error", err)
	} else if err := watcher.Start(); err != nil {
		logger.Warn("config hot reload disabled", "error", err)
	} else {
		defer watcher.Stop()
	}

	<-ctx.Done()
	logger.Info("shutting down")
	return nil
}

// reload swaps in a reader for the new backend config. Channel name and
// D-Bus registration are fixed for the daemon's lifetime.
func (d *daemon) reload(cfg *config.Config) {
	if cfg.Channel.Name != d.channel {
		d.logger.Warn("channel name change requires a restart",
			"current", d.channel, "configured", cfg.Channel.Name)
	}

	reader := buildReader(cfg, d.logger)
	if err := d.registry.Replace(d.channel, channel.NewVolumeHandler(reader, d.logger)); err != nil {
		d.logger.Warn("backend reload failed", "error", err)
		return
	}
	d.poller.SetReader(reader)
	d.logger.Info("backend reloaded", "backend", cfg.Backend.Name)
}
