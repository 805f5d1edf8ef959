package postgres

import (
	"context"
	"fmt"

	"github.com/samirrijal/placescout/internal/core/domain"
)

// SearchRunRepo implements ports.SearchRunRepository.
type SearchRunRepo struct {
	db *DB
}

func NewSearchRunRepo(db *DB) *SearchRunRepo {
	return &SearchRunRepo{db: db}
}

func (r *SearchRunRepo) Insert(ctx context.Context, run *domain.SearchRun) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO search_runs (business, city, page, rounds, row_count, persisted, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, run.Business, run.City, run.Page, run.Rounds, run.RowCount, run.Persisted, run.CompletedAt.UTC()).Scan(&run.ID)
}

// ListRecent returns runs newest first plus the total number of runs.
func (r *SearchRunRepo) ListRecent(ctx context.Context, offset, limit int) ([]domain.SearchRun, int, error) {
	var total int
	if err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM search_runs`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count search runs: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, `
		SELECT id::text, business, city, page, rounds, row_count, persisted, completed_at
		FROM search_runs
		ORDER BY completed_at DESC, id DESC
		OFFSET $1 LIMIT $2
	`, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	runs := []domain.SearchRun{}
	for rows.Next() {
		var run domain.SearchRun
		if err := rows.Scan(
			&run.ID, &run.Business, &run.City, &run.Page,
			&run.Rounds, &run.RowCount, &run.Persisted, &run.CompletedAt,
		); err != nil {
			return nil, 0, err
		}
		runs = append(runs, run)
	}
	return runs, total, rows.Err()
}
