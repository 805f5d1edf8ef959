package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/samirrijal/placescout/internal/core/domain"
	"github.com/samirrijal/placescout/internal/pkg/metrics"
)

// RowRepo implements ports.RowAppender on the place_rows table.
type RowRepo struct {
	db *DB
}

func NewRowRepo(db *DB) *RowRepo {
	return &RowRepo{db: db}
}

// Append inserts all records in one transaction so a batch lands whole or
// not at all. targetRange is recorded as the sheet the rows mirror.
func (r *RowRepo) Append(ctx context.Context, targetRange string, records []domain.PersistedRecord) error {
	if len(records) == 0 {
		return nil
	}

	err := pgx.BeginFunc(ctx, r.db.Pool, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, rec := range records {
			batch.Queue(`
				INSERT INTO place_rows (name, address, phone, website, rating, total_ratings, ingested_at, target_range)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			`, rec.Row.Name, rec.Row.Address, rec.Row.Phone, rec.Row.Website,
				rec.Row.Rating, rec.Row.TotalRatings, rec.IngestedAt.UTC(), targetRange)
		}
		br := tx.SendBatch(ctx, batch)
		for range records {
			if _, err := br.Exec(); err != nil {
				_ = br.Close()
				return fmt.Errorf("batch exec: %w", err)
			}
		}
		return br.Close()
	})
	if err != nil {
		metrics.PersistFailures.WithLabelValues("postgres").Inc()
		return fmt.Errorf("append place rows: %w", err)
	}

	metrics.RowsAppended.WithLabelValues("postgres").Add(float64(len(records)))
	return nil
}
