package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.temporal.io/sdk/client"

	"github.com/samirrijal/placescout/internal/adapters/http"
	natsadapter "github.com/samirrijal/placescout/internal/adapters/nats"
	"github.com/samirrijal/placescout/internal/adapters/postgres"
	"github.com/samirrijal/placescout/internal/adapters/valkey"
	"github.com/samirrijal/placescout/internal/app"
	"github.com/samirrijal/placescout/internal/core/ports"
	"github.com/samirrijal/placescout/internal/core/usecases"
	"github.com/samirrijal/placescout/internal/pkg/config"
	"github.com/samirrijal/placescout/internal/pkg/logging"
	"github.com/samirrijal/placescout/internal/pkg/metrics"
	"github.com/samirrijal/placescout/internal/pkg/telemetry"
	"github.com/samirrijal/placescout/internal/workflows"
)

func main() {
	cfg, err := config.Load("placescout-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.ValidateSearch(); err != nil {
		log.Fatal(err)
	}

	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.TempoAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	deps := &http.Dependencies{
		SearchTimeout: time.Duration(cfg.Server.SearchTimeout) * time.Second,
		RateLimit:     cfg.Server.RateLimit,
		AllowOrigins:  cfg.Server.AllowOrigins,
	}

	// Database (optional unless the sink needs it)
	var db *postgres.DB
	if cfg.Database.Enabled {
		db, err = postgres.New(ctx, cfg.Database.DSN())
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		defer db.Close()
		deps.DB = db
		deps.History = usecases.NewHistoryService(postgres.NewSearchRunRepo(db))
		go reportPoolStats(ctx, db)
	}

	// Cache
	cache, err := valkey.New(cfg.Valkey.Addr, "placescout:limiter:")
	if err != nil {
		slog.Warn("valkey unavailable, rate limits kept in memory", "error", err)
	} else {
		defer cache.Close()
		deps.Cache = cache
		deps.LimiterStorage = cache
	}

	// NATS
	var events ports.EventPublisher
	pub, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable", "error", err)
	} else {
		defer pub.Close()
		events = pub
		deps.NATS = pub.Conn()
	}

	// Search pipeline
	pipeline, err := app.NewPipeline(ctx, cfg, db, events)
	if err != nil {
		log.Fatalf("search pipeline: %v", err)
	}
	deps.Search = pipeline.Search
	if pipeline.Sheets != nil {
		deps.Sheets = pipeline.Sheets
	}

	// Temporal
	if cfg.Temporal.Enabled {
		tc, err := client.Dial(client.Options{
			HostPort:  cfg.Temporal.HostPort,
			Namespace: cfg.Temporal.Namespace,
			Logger:    slog.Default(),
		})
		if err != nil {
			slog.Warn("temporal unavailable, async jobs disabled", "error", err)
		} else {
			defer tc.Close()
			deps.Jobs = workflows.NewJobRunner(tc, cfg.Temporal.TaskQueue, cfg.Sinks(), cfg.Pipeline.FailOnPersistError)
		}
	}

	// Fiber
	server := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024, // 1 MB max request body
		AppName:      "placescout API",
		ErrorHandler: http.ErrorHandler,
	})
	server.Use(recover.New())
	server.Use(logger.New())

	http.SetupRoutes(server, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr, "sink", cfg.Sink)
		if err := server.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	// Searches can take a while; give them the full search timeout.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), deps.SearchTimeout+5*time.Second)
	defer shutdownCancel()

	if err := server.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}

func reportPoolStats(ctx context.Context, db *postgres.DB) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			metrics.UpdateDBPoolMetrics(db.Stat())
		}
	}
}
