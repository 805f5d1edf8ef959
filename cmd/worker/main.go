package main

import (
	"context"
	"log"
	"log/slog"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	natsadapter "github.com/samirrijal/placescout/internal/adapters/nats"
	"github.com/samirrijal/placescout/internal/adapters/postgres"
	"github.com/samirrijal/placescout/internal/app"
	"github.com/samirrijal/placescout/internal/core/ports"
	"github.com/samirrijal/placescout/internal/pkg/clock"
	"github.com/samirrijal/placescout/internal/pkg/config"
	"github.com/samirrijal/placescout/internal/pkg/logging"
	"github.com/samirrijal/placescout/internal/workflows"
)

func main() {
	cfg, err := config.Load("placescout-worker")
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.ValidateSearch(); err != nil {
		log.Fatal(err)
	}

	logging.Setup(cfg.Log.Level, cfg.Log.Format)
	ctx := context.Background()

	var db *postgres.DB
	if cfg.Database.Enabled {
		db, err = postgres.New(ctx, cfg.Database.DSN())
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		defer db.Close()
	}

	var events ports.EventPublisher
	pub, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable, search events disabled", "error", err)
	} else {
		defer pub.Close()
		events = pub
	}

	// Events are published by the PublishResult activity, not the service.
	pipeline, err := app.NewPipeline(ctx, cfg, db, nil)
	if err != nil {
		log.Fatalf("search pipeline: %v", err)
	}

	// Connect to Temporal
	c, err := client.Dial(client.Options{
		HostPort:  cfg.Temporal.HostPort,
		Namespace: cfg.Temporal.Namespace,
		Logger:    slog.Default(),
	})
	if err != nil {
		log.Fatalf("temporal client: %v", err)
	}
	defer c.Close()

	w := worker.New(c, cfg.Temporal.TaskQueue, worker.Options{})

	// Register workflow & activities
	w.RegisterWorkflow(workflows.SearchWorkflow)
	sinks := make(map[string]ports.RowAppender, len(pipeline.Sinks))
	for _, t := range pipeline.Sinks {
		sinks[t.Name] = t.Appender
	}
	w.RegisterActivity(&workflows.SearchActivities{
		Search:      pipeline.Search,
		Sinks:       sinks,
		TargetRange: cfg.Sheets.Range,
		Events:      events,
		Clock:       clock.System{},
	})

	slog.Info("search worker started", "task_queue", cfg.Temporal.TaskQueue)
	if err := w.Run(worker.InterruptCh()); err != nil {
		log.Fatalf("worker: %v", err)
	}
}
