package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	natsadapter "github.com/samirrijal/placescout/internal/adapters/nats"
	"github.com/samirrijal/placescout/internal/adapters/postgres"
	"github.com/samirrijal/placescout/internal/core/usecases"
	"github.com/samirrijal/placescout/internal/pkg/config"
	"github.com/samirrijal/placescout/internal/pkg/logging"
)

// recorder stores every search-completed event as a search_runs row.
func main() {
	cfg, err := config.Load("placescout-recorder")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	history := usecases.NewHistoryService(postgres.NewSearchRunRepo(db))

	// NATS
	sub, err := natsadapter.NewSubscriber(cfg.NATS.URL)
	if err != nil {
		log.Fatalf("nats: %v", err)
	}
	defer sub.Close()

	if err := sub.SubscribeSearchCompleted(ctx, history.Record); err != nil {
		log.Fatalf("subscribe: %v", err)
	}
	slog.Info("search recorder started", "subject", natsadapter.SubjectSearchCompleted)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutting down search recorder", "signal", sig.String())
}
