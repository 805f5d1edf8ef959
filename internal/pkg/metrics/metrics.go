package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "placescout",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "placescout",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"method", "path"})

	httpResponseSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "placescout",
		Subsystem: "http",
		Name:      "response_size_bytes",
		Help:      "HTTP response size in bytes",
		Buckets:   prometheus.ExponentialBuckets(100, 10, 6),
	}, []string{"method", "path"})

	// Pipeline metrics
	SearchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "placescout",
		Subsystem: "pipeline",
		Name:      "searches_total",
		Help:      "Total searches by outcome (ok, invalid_city, error)",
	}, []string{"outcome"})

	SearchRounds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "placescout",
		Subsystem: "pipeline",
		Name:      "search_rounds",
		Help:      "Text-search rounds performed per search",
		Buckets:   []float64{1, 2, 3},
	})

	DegradedRounds = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "placescout",
		Subsystem: "pipeline",
		Name:      "degraded_rounds_total",
		Help:      "Text-search rounds that failed and were treated as empty",
	})

	PacingWaits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "placescout",
		Subsystem: "pipeline",
		Name:      "pacing_waits_total",
		Help:      "Pacing delays taken before a continuation round",
	})

	DetailLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "placescout",
		Subsystem: "pipeline",
		Name:      "detail_lookups_total",
		Help:      "Place detail lookups by result (ok, failed)",
	}, []string{"result"})

	RowsAppended = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "placescout",
		Subsystem: "store",
		Name:      "rows_appended_total",
		Help:      "Rows appended to the row store",
	}, []string{"sink"})

	PersistFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "placescout",
		Subsystem: "store",
		Name:      "persist_failures_total",
		Help:      "Failed append calls",
	}, []string{"sink"})

	ExternalCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "placescout",
		Subsystem: "upstream",
		Name:      "call_duration_seconds",
		Help:      "Latency of calls to the Google Maps APIs",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"api"})

	ActiveWebSockets = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "placescout",
		Subsystem: "ws",
		Name:      "active_connections",
		Help:      "Current number of active WebSocket connections",
	})

	// Database pool metrics
	DBPoolConnsOpen = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "placescout",
		Subsystem: "db",
		Name:      "pool_conns_open",
		Help:      "Total connections open in the database pool",
	})

	DBPoolConnsAcquired = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "placescout",
		Subsystem: "db",
		Name:      "pool_conns_acquired",
		Help:      "Connections currently acquired from the database pool",
	})

	DBPoolConnsIdle = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "placescout",
		Subsystem: "db",
		Name:      "pool_conns_idle",
		Help:      "Idle connections in the database pool",
	})
)

// Middleware records request metrics.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		method := c.Method()

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(duration)
		httpResponseSize.WithLabelValues(method, path).Observe(float64(len(c.Response().Body())))

		return err
	}
}

// Handler returns a Fiber handler serving Prometheus /metrics endpoint.
func Handler() fiber.Handler {
	handler := promhttp.Handler()
	return func(c *fiber.Ctx) error {
		fasthttpadaptor.NewFastHTTPHandler(handler)(c.Context())
		return nil
	}
}

// UpdateDBPoolMetrics updates database pool gauges from pgxpool stats.
// The stat is taken as an interface so this package stays free of pgx.
func UpdateDBPoolMetrics(stat interface{}) {
	type poolStat interface {
		AcquiredConns() int32
		IdleConns() int32
		TotalConns() int32
	}

	if s, ok := stat.(poolStat); ok {
		DBPoolConnsAcquired.Set(float64(s.AcquiredConns()))
		DBPoolConnsIdle.Set(float64(s.IdleConns()))
		DBPoolConnsOpen.Set(float64(s.TotalConns()))
	}
}
