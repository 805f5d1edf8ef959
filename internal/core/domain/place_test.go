package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/samirrijal/placescout/internal/core/domain"
)

func TestSearchRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     domain.SearchRequest
		wantErr bool
	}{
		{"valid", domain.SearchRequest{Business: "cafe", City: "Springfield"}, false},
		{"missing business", domain.SearchRequest{City: "Springfield"}, true},
		{"missing city", domain.SearchRequest{Business: "cafe"}, true},
		{"blank city", domain.SearchRequest{Business: "cafe", City: "   "}, true},
		{"negative page", domain.SearchRequest{Business: "cafe", City: "Springfield", Page: -2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Normalize().Validate()
			if tt.wantErr && !errors.Is(err, domain.ErrValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestSearchRequest_Normalize_DefaultsPage(t *testing.T) {
	req := domain.SearchRequest{Business: " cafe ", City: "Springfield"}.Normalize()
	if req.Page != 1 {
		t.Errorf("expected page 1, got %d", req.Page)
	}
	if req.Business != "cafe" {
		t.Errorf("expected trimmed business, got %q", req.Business)
	}
}

func TestPersistedRecord_Values(t *testing.T) {
	rec := domain.PersistedRecord{
		Row: domain.PlaceDetail{
			Name: "Blue Bottle", Address: "1 Main St", Phone: "N/A",
			Website: "N/A", Rating: "4.5", TotalRatings: "120",
		},
		IngestedAt: time.Date(2026, 3, 1, 9, 30, 0, 250_000_000, time.UTC),
	}

	got := rec.Values()
	if len(got) != 7 {
		t.Fatalf("expected 7 columns, got %d", len(got))
	}
	if got[0] != "Blue Bottle" || got[5] != "120" {
		t.Errorf("unexpected column order: %v", got)
	}
	if got[6] != "2026-03-01T09:30:00.250Z" {
		t.Errorf("expected ISO timestamp, got %v", got[6])
	}
}
