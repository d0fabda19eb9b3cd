package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/HerbHall/dockpulse/internal/config"
	"github.com/HerbHall/dockpulse/internal/history"
	"github.com/HerbHall/dockpulse/internal/monitor"
	"github.com/HerbHall/dockpulse/internal/notify"
	"github.com/HerbHall/dockpulse/internal/probe"
	"github.com/HerbHall/dockpulse/internal/server"
	"github.com/HerbHall/dockpulse/internal/state"
	"github.com/HerbHall/dockpulse/internal/version"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file")
	once := flag.Bool("once", false, "run a single monitoring cycle and exit")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	// Load configuration (before logger, so log level/format can be configured).
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("dockpulse starting",
		zap.String("version", version.Short()),
		zap.String("server", cfg.Server),
		zap.Int("containers", len(cfg.Containers)),
		zap.Duration("poll_interval", cfg.PollInterval),
	)

	prober, err := probe.NewDockerProber()
	if err != nil {
		logger.Fatal("failed to create docker prober", zap.Error(err))
	}
	defer prober.Close()

	snapshots := state.NewFileStore(cfg.StateFile)

	var recorder monitor.Recorder
	var histStore *history.Store
	if cfg.History.Path != "" {
		histStore, err = history.Open(cfg.History.Path)
		if err != nil {
			logger.Fatal("failed to open history database", zap.Error(err))
		}
		defer histStore.Close()
		recorder = histStore
		logger.Info("history database initialized", zap.String("path", cfg.History.Path))
	}

	var notifiers []notify.Notifier
	if cfg.Email.Configured() {
		notifiers = append(notifiers, notify.NewSMTPNotifier(cfg.Email))
	}
	if cfg.Webhook.URL != "" {
		notifiers = append(notifiers, notify.NewWebhookNotifier(cfg.Webhook, cfg.Server))
	}
	if len(notifiers) == 0 {
		logger.Warn("no notification channels configured; transitions will only be logged")
	}

	registry := prometheus.NewRegistry()
	metrics := monitor.NewMetrics(registry)

	engine := monitor.NewEngine(monitor.EngineParams{
		Containers:   cfg.Containers,
		Prober:       prober,
		ProbeTimeout: cfg.ProbeTimeout,
		Snapshots:    snapshots,
		Composer:     monitor.Composer{Server: cfg.Server},
		Notifiers:    notifiers,
		Recorder:     recorder,
		Metrics:      metrics,
		Logger:       logger.Named("monitor"),
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *once {
		if err := engine.RunOnce(ctx); err != nil {
			logger.Fatal("monitoring cycle failed", zap.Error(err))
		}
		return
	}

	scheduler := monitor.NewScheduler(engine, cfg.PollInterval, logger.Named("scheduler"))
	scheduler.Start(ctx)

	var maintainer *history.Maintainer
	if histStore != nil && cfg.History.RetentionPeriod > 0 {
		maintainer = history.NewMaintainer(histStore, cfg.History.RetentionPeriod,
			cfg.History.MaintenanceInterval, logger.Named("history"))
		maintainer.Start(ctx)
	}

	var srv *server.Server
	if cfg.Listen != "" {
		srv = server.New(cfg.Listen, engine, registry, logger.Named("server"))
		go func() {
			if err := srv.Start(); err != nil {
				logger.Fatal("ops server error", zap.Error(err))
			}
		}()
	}

	logger.Info("dockpulse ready")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	scheduler.Stop()
	if maintainer != nil {
		maintainer.Stop()
	}
	if srv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("ops server shutdown error", zap.Error(err))
		}
	}

	logger.Info("dockpulse stopped")
}
