package ports

import (
	"context"

	"github.com/samirrijal/placescout/internal/core/domain"
)

// RowAppender is an append-only row store (a spreadsheet, a table).
type RowAppender interface {
	// Append writes all records in one call targeting the given logical range.
	// Either the whole batch lands or an error is returned.
	Append(ctx context.Context, targetRange string, records []domain.PersistedRecord) error
}

// SearchRunRepository keeps the history of completed searches.
type SearchRunRepository interface {
	Insert(ctx context.Context, run *domain.SearchRun) error
	ListRecent(ctx context.Context, offset, limit int) ([]domain.SearchRun, int, error)
}
