package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"

	"github.com/samirrijal/placescout/internal/core/ports"
	"github.com/samirrijal/placescout/internal/core/usecases"
)

// Pinger is a dependency the readiness check can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies holds all services needed by HTTP handlers. Everything except
// Search is optional.
type Dependencies struct {
	Search  *usecases.SearchService
	History *usecases.HistoryService
	Jobs    ports.SearchJobRunner
	NATS    *nats.Conn

	DB     Pinger
	Cache  Pinger
	Sheets Pinger

	// LimiterStorage shares rate-limit counters between replicas; nil keeps
	// them in memory.
	LimiterStorage fiber.Storage

	SearchTimeout time.Duration
	RateLimit     int
	AllowOrigins  []string
}

func (d *Dependencies) searchTimeout() time.Duration {
	if d.SearchTimeout <= 0 {
		return 90 * time.Second
	}
	return d.SearchTimeout
}
