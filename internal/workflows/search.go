package workflows

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/samirrijal/placescout/internal/core/domain"
	"github.com/samirrijal/placescout/internal/core/usecases"
)

// Activity names registered by the worker.
const (
	ActivityCollectSearch = "CollectSearch"
	ActivityAppendRows    = "AppendRows"
	ActivityPublishResult = "PublishResult"
)

// SearchInput is the input for the search workflow.
type SearchInput struct {
	Request domain.SearchRequest
	// Sinks names the row stores to append to. Each is appended and retried
	// on its own, so a store that took the batch never sees it again.
	Sinks              []string
	FailOnPersistError bool
}

// AppendInput is one sink's share of the append step. IngestedAt is fixed by
// the workflow so every sink and every retry stamps the same time.
type AppendInput struct {
	Sink       string
	Rows       []domain.AggregatedRow
	IngestedAt time.Time
}

// SearchWorkflow collects the rows of one search, then appends them to each
// sink. The collect step never retries, so quota is spent once; only a
// sink's own append is retried with backoff. When appends keep failing the
// rows are still returned with a warning, unless FailOnPersistError is set.
func SearchWorkflow(ctx workflow.Context, input SearchInput) (*domain.SearchResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting search workflow", "business", input.Request.Business, "city", input.Request.City)

	if len(input.Sinks) == 0 {
		return nil, temporal.NewNonRetryableApplicationError("no row store configured", "config", nil)
	}

	collectCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 5 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	})

	var result domain.SearchResult
	if err := workflow.ExecuteActivity(collectCtx, ActivityCollectSearch, input.Request).Get(ctx, &result); err != nil {
		return nil, err
	}
	if result.Rows == nil {
		result.Rows = []domain.AggregatedRow{}
	}

	if len(result.Rows) > 0 {
		stored, failed := appendToSinks(ctx, input.Sinks, result.Rows)
		switch {
		case len(failed) == 0:
			result.Persisted = true
		case input.FailOnPersistError:
			return nil, fmt.Errorf("append rows to %s: %w", strings.Join(failed, ", "), domain.ErrPersist)
		case len(stored) == 0:
			result.Message = usecases.PersistWarningMessage
		default:
			result.Persisted = true
			result.Message = usecases.PersistWarning(failed)
		}
	}

	if result.Message != domain.InvalidCityMessage {
		publishCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
			StartToCloseTimeout: 10 * time.Second,
			RetryPolicy: &temporal.RetryPolicy{
				MaximumAttempts: 3,
			},
		})
		summary := SearchSummary{Request: input.Request.Normalize(), Rounds: result.Rounds, RowCount: len(result.Rows), Persisted: result.Persisted}
		if err := workflow.ExecuteActivity(publishCtx, ActivityPublishResult, summary).Get(ctx, nil); err != nil {
			logger.Warn("publish search result failed", "error", err)
		}
	}

	logger.Info("Search workflow finished", "rows", len(result.Rows), "persisted", result.Persisted)
	return &result, nil
}

// appendToSinks runs one append activity per sink in parallel and reports
// which sinks took the rows.
func appendToSinks(ctx workflow.Context, sinks []string, rows []domain.AggregatedRow) (stored, failed []string) {
	appendCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2,
			MaximumInterval:    30 * time.Second,
			MaximumAttempts:    5,
		},
	})

	ingestedAt := workflow.Now(ctx).UTC()
	futures := make([]workflow.Future, len(sinks))
	for i, sink := range sinks {
		futures[i] = workflow.ExecuteActivity(appendCtx, ActivityAppendRows, AppendInput{
			Sink:       sink,
			Rows:       rows,
			IngestedAt: ingestedAt,
		})
	}

	for i, f := range futures {
		if err := f.Get(ctx, nil); err != nil {
			var appErr *temporal.ApplicationError
			if errors.As(err, &appErr) && appErr.Type() == "config" {
				workflow.GetLogger(ctx).Error("sink not available on worker", "sink", sinks[i], "error", err)
			} else {
				workflow.GetLogger(ctx).Warn("append failed after retries", "sink", sinks[i], "error", err)
			}
			failed = append(failed, sinks[i])
			continue
		}
		stored = append(stored, sinks[i])
	}
	return stored, failed
}
