package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"
	"github.com/gofiber/websocket/v2"

	"github.com/samirrijal/placescout/internal/pkg/metrics"
)

// legacySunset is when the original /api/search route goes away.
var legacySunset = time.Date(2027, 6, 30, 0, 0, 0, 0, time.UTC)

// SetupRoutes registers all REST, GraphQL, and WebSocket routes.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	// Prometheus metrics
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(deps.AllowOrigins, ", "),
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
		MaxAge:       3600,
	}))

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	app.Use(requestid.New())

	// Propagate request ID into slog context
	app.Use(RequestIDLogMiddleware())

	app.Use(AccessLogMiddleware())

	// Security headers + API version
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("X-API-Version", "1.0.0")
		return c.Next()
	})

	app.Use(ETagMiddleware())
	app.Use(CachingMiddleware())

	app.Use(DeprecationMiddleware([]DeprecatedRoute{
		{Path: "/api/search", SunsetDate: legacySunset, Alternative: "/v1/search"},
	}))

	// Health & readiness (no timeout, fast internal checks)
	app.Get("/", RootHandler())
	app.Get("/v1/health", HealthHandler(deps))
	app.Get("/v1/ready", ReadyHandler(deps))

	// Every search costs Maps quota, so searches are rate limited per IP.
	searchLimit := searchLimiter(deps)
	searchTimeout := deps.searchTimeout()

	search := timeout.NewWithContext(SearchHandler(deps), searchTimeout)
	app.Post("/api/search", searchLimit, search)

	v1 := app.Group("/v1")
	v1.Post("/search", searchLimit, search)
	v1.Post("/search/jobs", searchLimit, timeout.NewWithContext(StartSearchJobHandler(deps), 15*time.Second))
	v1.Get("/search/jobs/:id", timeout.NewWithContext(GetSearchJobHandler(deps), 15*time.Second))
	v1.Get("/searches", timeout.NewWithContext(ListSearchesHandler(deps), 15*time.Second))

	// GraphQL
	app.Post("/graphql", searchLimit, timeout.NewWithContext(GraphQLHandler(deps), searchTimeout))

	// API documentation (Swagger UI)
	SetupDocs(app)

	// WebSocket
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(WebSocketHandler(deps.NATS)))
}

func searchLimiter(deps *Dependencies) fiber.Handler {
	max := deps.RateLimit
	if max <= 0 {
		max = 30
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return newError(c, fiber.StatusTooManyRequests, "rate_limited", "too many requests, please try again later")
		},
		Storage: deps.LimiterStorage,
	})
}
