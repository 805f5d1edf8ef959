package usecases

import (
	"context"
	"fmt"

	"github.com/samirrijal/placescout/internal/core/domain"
	"github.com/samirrijal/placescout/internal/core/ports"
)

// HistoryService records completed searches and lists them back.
type HistoryService struct {
	runs ports.SearchRunRepository
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(runs ports.SearchRunRepository) *HistoryService {
	return &HistoryService{runs: runs}
}

// Record stores a search-completed event as a search run.
func (s *HistoryService) Record(ctx context.Context, event *domain.SearchCompletedEvent) error {
	if event == nil {
		return fmt.Errorf("nil search event")
	}
	run := &domain.SearchRun{
		Business:    event.Business,
		City:        event.City,
		Page:        event.Page,
		Rounds:      event.Rounds,
		RowCount:    event.RowCount,
		Persisted:   event.Persisted,
		CompletedAt: event.CompletedAt,
	}
	if err := s.runs.Insert(ctx, run); err != nil {
		return fmt.Errorf("insert search run: %w", err)
	}
	return nil
}

// ListRecent returns the newest runs first along with the total count.
func (s *HistoryService) ListRecent(ctx context.Context, offset, limit int) ([]domain.SearchRun, int, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.runs.ListRecent(ctx, offset, limit)
}
