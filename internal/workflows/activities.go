package workflows

import (
	"context"
	"errors"
	"fmt"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/samirrijal/placescout/internal/core/domain"
	"github.com/samirrijal/placescout/internal/core/ports"
	"github.com/samirrijal/placescout/internal/core/usecases"
	"github.com/samirrijal/placescout/internal/pkg/telemetry"
)

// SearchSummary is what PublishResult turns into a search-completed event.
type SearchSummary struct {
	Request   domain.SearchRequest
	Rounds    int
	RowCount  int
	Persisted bool
}

// SearchActivities holds the activity implementations for the search workflow.
type SearchActivities struct {
	Search *usecases.SearchService
	// Sinks maps row store names to their appenders.
	Sinks       map[string]ports.RowAppender
	TargetRange string
	Events      ports.EventPublisher
	Clock       ports.Clock
}

// CollectSearch runs the pipeline up to, but not including, persistence.
// Validation failures are not retryable.
func (a *SearchActivities) CollectSearch(ctx context.Context, req domain.SearchRequest) (*domain.SearchResult, error) {
	ctx, span := telemetry.Tracer().Start(ctx, telemetry.SpanWorkflow)
	defer span.End()

	res, err := a.Search.Collect(ctx, req)
	if errors.Is(err, domain.ErrValidation) {
		return nil, temporal.NewNonRetryableApplicationError(err.Error(), "validation", err)
	}
	if err != nil {
		return nil, fmt.Errorf("collect search: %w", err)
	}
	return res, nil
}

// AppendRows appends the rows to one sink, stamped with the workflow's
// ingest time. An unknown sink is not retryable.
func (a *SearchActivities) AppendRows(ctx context.Context, in AppendInput) error {
	appender, ok := a.Sinks[in.Sink]
	if !ok {
		return temporal.NewNonRetryableApplicationError("unknown sink "+in.Sink, "config", nil)
	}

	targetRange := a.TargetRange
	if targetRange == "" {
		targetRange = usecases.DefaultPipelineOptions().TargetRange
	}

	activity.GetLogger(ctx).Info("appending rows",
		"sink", in.Sink, "count", len(in.Rows), "attempt", activity.GetInfo(ctx).Attempt)
	if err := appender.Append(ctx, targetRange, domain.StampRecords(in.Rows, in.IngestedAt)); err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrPersist, in.Sink, err)
	}
	return nil
}

// PublishResult announces the finished search. It is a no-op without a
// publisher.
func (a *SearchActivities) PublishResult(ctx context.Context, s SearchSummary) error {
	if a.Events == nil {
		return nil
	}
	return a.Events.PublishSearchCompleted(ctx, &domain.SearchCompletedEvent{
		Business:    s.Request.Business,
		City:        s.Request.City,
		Page:        s.Request.Page,
		Rounds:      s.Rounds,
		RowCount:    s.RowCount,
		Persisted:   s.Persisted,
		CompletedAt: a.Clock.Now().UTC(),
	})
}
