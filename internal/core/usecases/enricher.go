package usecases

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/samirrijal/placescout/internal/core/domain"
	"github.com/samirrijal/placescout/internal/core/ports"
	"github.com/samirrijal/placescout/internal/pkg/logging"
	"github.com/samirrijal/placescout/internal/pkg/metrics"
)

// DetailEnricher turns search hits into full rows via the details API.
type DetailEnricher struct {
	details     ports.PlaceDetailer
	concurrency int
	callTimeout time.Duration
}

// NewDetailEnricher creates a new DetailEnricher.
func NewDetailEnricher(details ports.PlaceDetailer, opts PipelineOptions) *DetailEnricher {
	opts = opts.withDefaults()
	return &DetailEnricher{
		details:     details,
		concurrency: opts.DetailConcurrency,
		callTimeout: opts.CallTimeout,
	}
}

// Enrich returns one row per hit, in hit order. It never fails: a lookup
// that errors or comes back empty yields an all-N/A row for that hit only.
func (e *DetailEnricher) Enrich(ctx context.Context, hits []domain.PlaceSummary) []domain.PlaceDetail {
	rows := make([]domain.PlaceDetail, len(hits))

	if e.concurrency <= 1 {
		for i, hit := range hits {
			rows[i] = e.lookup(ctx, hit)
		}
		return rows
	}

	// Each goroutine owns one slot, so rows stay in discovery order.
	var g errgroup.Group
	g.SetLimit(e.concurrency)
	for i, hit := range hits {
		i, hit := i, hit
		g.Go(func() error {
			rows[i] = e.lookup(ctx, hit)
			return nil
		})
	}
	_ = g.Wait()
	return rows
}

func (e *DetailEnricher) lookup(ctx context.Context, hit domain.PlaceSummary) domain.PlaceDetail {
	if e.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.callTimeout)
		defer cancel()
	}
	fields, err := e.details.PlaceDetails(ctx, hit.PlaceID)
	return toDetailOrDefault(ctx, hit, fields, err)
}

// toDetailOrDefault never fails; see DetailFields.ToDetail for the rules.
func toDetailOrDefault(ctx context.Context, hit domain.PlaceSummary, fields *domain.DetailFields, err error) domain.PlaceDetail {
	if err != nil {
		metrics.DetailLookups.WithLabelValues("failed").Inc()
		logging.FromContext(ctx).Warn("place details failed", "place_id", hit.PlaceID, "error", err)
		return domain.UnavailableDetail()
	}
	metrics.DetailLookups.WithLabelValues("ok").Inc()
	return fields.ToDetail()
}
