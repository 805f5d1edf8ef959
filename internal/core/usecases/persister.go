package usecases

import (
	"context"
	"fmt"

	"github.com/samirrijal/placescout/internal/core/domain"
	"github.com/samirrijal/placescout/internal/core/ports"
)

// Persister appends aggregated rows to the row store.
type Persister struct {
	appender    ports.RowAppender
	clock       ports.Clock
	targetRange string
}

// NewPersister creates a new Persister.
func NewPersister(appender ports.RowAppender, clock ports.Clock, targetRange string) *Persister {
	if targetRange == "" {
		targetRange = DefaultPipelineOptions().TargetRange
	}
	return &Persister{appender: appender, clock: clock, targetRange: targetRange}
}

// Persist stamps every row with one shared ingest time and appends them in a
// single call. An empty batch is a no-op so a page without results leaves no
// trace in the sheet. Failures wrap domain.ErrPersist.
func (p *Persister) Persist(ctx context.Context, rows []domain.AggregatedRow) error {
	if len(rows) == 0 {
		return nil
	}

	records := domain.StampRecords(rows, p.clock.Now())
	if err := p.appender.Append(ctx, p.targetRange, records); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrPersist, err)
	}
	return nil
}
