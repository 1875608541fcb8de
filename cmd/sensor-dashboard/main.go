package main

import (
	"context"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"

	"github.com/thatsimonsguy/sensor-dashboard/internal/alerting"
	"github.com/thatsimonsguy/sensor-dashboard/internal/api"
	"github.com/thatsimonsguy/sensor-dashboard/internal/config"
	"github.com/thatsimonsguy/sensor-dashboard/internal/datadog"
	"github.com/thatsimonsguy/sensor-dashboard/internal/logging"
	"github.com/thatsimonsguy/sensor-dashboard/internal/notifications"
	"github.com/thatsimonsguy/sensor-dashboard/internal/sensor"
	"github.com/thatsimonsguy/sensor-dashboard/internal/simulator"
	"github.com/thatsimonsguy/sensor-dashboard/system/shutdown"
)

type Options struct {
	Config   string `short:"c" long:"config" description:"Path to a JSON config file (default: environment only)"`
	LogLevel string `short:"l" long:"log-level" description:"Override the configured log level"`
}

func main() {
	var opts Options
	if _, err := flags.Parse(&opts); err != nil {
		if flags.WroteHelp(err) {
			os.Exit(0)
		}
		os.Exit(1)
	}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid log level")
	}
	logging.Init(level, cfg.LogFile)

	log.Info().
		Str("addr", cfg.Addr()).
		Dur("tick_interval", cfg.TickInterval()).
		Bool("simulator_paused", cfg.SimulatorPaused).
		Msg("Starting sensor dashboard")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sensors := sensor.NewService()

	gen := simulator.New(sensors, cfg.TickInterval())
	if cfg.SimulatorPaused {
		gen.Pause()
	}

	datadog.InitMetrics(cfg)
	metricsUpdates, unsubscribeMetrics := sensors.Subscribe()
	go datadog.Run(ctx, metricsUpdates, sensors.HistoryLen)

	if cfg.NtfyTopic != "" {
		watcher := alerting.NewWatcher(notifications.New(cfg.NtfyURL, cfg.NtfyTopic), sensors.Current().Status)
		alertUpdates, unsubscribeAlerts := sensors.Subscribe()
		defer unsubscribeAlerts()
		go watcher.Run(ctx, alertUpdates)
		log.Info().Str("topic", cfg.NtfyTopic).Msg("Status change notifications enabled")
	}

	if err := gen.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to start reading generator")
	}

	server := api.NewServer(sensors, gen)
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start(cfg.Addr())
	}()

	waitCtx, stopWaiting := context.WithCancel(ctx)
	go func() {
		if err := <-serverErr; err != nil {
			log.Error().Err(err).Msg("API server stopped")
		}
		stopWaiting()
	}()
	shutdown.WaitForSignal(waitCtx)

	failed := shutdown.Run(10*time.Second,
		shutdown.Step{Name: "cancel workers", Fn: func(context.Context) error {
			cancel()
			unsubscribeMetrics()
			return nil
		}},
		shutdown.Step{Name: "api server", Fn: server.Shutdown},
		shutdown.Step{Name: "datadog", Fn: func(context.Context) error {
			datadog.Close()
			return nil
		}},
	)
	if failed > 0 {
		os.Exit(1)
	}
}
