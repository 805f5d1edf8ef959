package usecases

import "github.com/samirrijal/placescout/internal/core/domain"

// Aggregate flattens per-round rows in discovery order. No sorting,
// de-duplication, or filtering; the result is never nil.
func Aggregate(rounds [][]domain.PlaceDetail) []domain.AggregatedRow {
	n := 0
	for _, r := range rounds {
		n += len(r)
	}
	rows := make([]domain.AggregatedRow, 0, n)
	for _, r := range rounds {
		rows = append(rows, r...)
	}
	return rows
}
