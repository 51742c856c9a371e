package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bursar/internal/interfaces/scheduler"
	"bursar/internal/shared/config"
	"bursar/internal/shared/telemetry"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var telemetryShutdown func(context.Context) error
	if cfg.Telemetry.Enabled {
		telemetryShutdown, err = telemetry.Init(context.Background(), telemetry.Config{
			ServiceName:  cfg.Telemetry.ServiceName,
			OTLPEndpoint: cfg.Telemetry.OTLPEndpoint,
			MetricsPort:  cfg.Telemetry.MetricsPort,
		})
		if err != nil {
			return err
		}
		log.Println("Telemetry initialized")
	}

	deps, err := NewDependencies(cfg)
	if err != nil {
		return err
	}
	defer deps.Close()

	var notifier *scheduler.Notifier
	if cfg.Notifier.Enabled {
		notifier = scheduler.NewNotifier(deps.ReminderRepo, scheduler.NotifierConfig{
			PollInterval: cfg.Notifier.PollInterval,
			WorkerCount:  cfg.Notifier.WorkerCount,
			QueueSize:    cfg.Notifier.QueueSize,
		})
		notifier.Start()
	} else {
		log.Println("Reminder notifier is disabled")
	}

	handler := SetupRoutes(deps, cfg)
	srv := StartServer(cfg.Server.Host+":"+cfg.Server.Port, handler)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	GracefulShutdown(srv, notifier, telemetryShutdown, 30*time.Second)
	return nil
}
