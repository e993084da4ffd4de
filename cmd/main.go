package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"secure-bridge/console"
	"secure-bridge/contract"
	"secure-bridge/domain/event"
	"secure-bridge/internal"
	"secure-bridge/repositories"
	"secure-bridge/repositories/storage"
	"secure-bridge/runtime"
	"secure-bridge/runtime/workers"
	"secure-bridge/sink"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2

	queueSaturation = 0.8
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Bridge terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run wires every component and owns the shutdown order so that deferred
// cleanups (journal close) execute before the process exits.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	config, err := internal.LoadConfig()
	if err != nil {
		return exitConfig, err
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Journal (in-memory BadgerDB, nothing survives a restart)
	db, err := repositories.OpenInMemory()
	if err != nil {
		return exitRuntime, fmt.Errorf("journal opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing journal...")
		_ = db.Close()
	}()
	journal := repositories.NewNotificationRepository(db, log, config.JournalTTL, config.JournalLimit)

	// 3. Hub
	hub, err := runtime.NewHub(log, config.Bridge(), runtime.WithRestartInterval(config.RestartInterval))
	if err != nil {
		return exitConfig, err
	}

	// 4. Notification pipeline, drained until the subscriptions are closed
	departures := event.NewCounter()
	securityStatuses := event.NewCounter()
	fanoutSub := hub.Subscribe(config.SubscriberBuffer)
	telemetrySub := hub.Subscribe(config.SubscriberBuffer)

	sup := workers.NewSupervisor(log, config.RestartInterval)
	sup.Add(
		workers.NewEventFanout(log, fanoutSub.C, []contract.EventSink{
			sink.NewLogSink(log),
			storage.NewJournalSink(journal, log),
		}, config.SinkTimeout),
		workers.NewTelemetryWorker(log, telemetrySub.C, []event.Handler{
			event.NewDepartureHandler(log, departures),
			event.NewSecurityStatusHandler(log, securityStatuses),
		}),
	)
	pipelineDone := make(chan struct{})
	go func() {
		defer close(pipelineDone)
		sup.Run(context.Background())
	}()

	// 5. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	monitor := workers.NewSupervisor(log, config.RestartInterval)
	monitor.Add(workers.NewQueueDepthWorker(log, []workers.NamedQueue{
		{Name: "fanout", Queue: fanoutSub.C},
		{Name: "telemetry", Queue: telemetrySub.C},
	}, config.MetricInterval, queueSaturation))
	monitorDone := make(chan struct{})
	go func() {
		defer close(monitorDone)
		monitor.Run(ctx)
	}()

	// 6. Start the hub and serve the console until quit, EOF or a signal
	hub.Start()
	c := console.New(log, hub, journal, os.Stdout, config.Colours)
	consoleErr := c.Run(ctx, os.Stdin)

	// 7. Final cleanup
	log.Info("Shutting down gracefully...")
	monitor.Stop()
	<-monitorDone
	hub.Stop()
	hub.Unsubscribe(fanoutSub)
	hub.Unsubscribe(telemetrySub)
	<-pipelineDone

	log.Info("Bridge stopped cleanly",
		"departures", departures.Snapshot(),
		"heartbeats", securityStatuses.Snapshot(),
		"dropped_notifications", hub.Dropped())
	if consoleErr != nil {
		return exitRuntime, fmt.Errorf("console: %w", consoleErr)
	}
	return exitOK, nil
}
