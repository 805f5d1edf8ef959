package domain_test

import (
	"testing"

	"github.com/samirrijal/placescout/internal/core/domain"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func TestDetailFields_ToDetail_AllPresent(t *testing.T) {
	f := &domain.DetailFields{
		Name:             strPtr("Blue Bottle"),
		FormattedAddress: strPtr("1 Main St"),
		Phone:            strPtr("(555) 010-2000"),
		Website:          strPtr("https://example.com"),
		Rating:           floatPtr(4.5),
		UserRatingsTotal: intPtr(120),
	}

	got := f.ToDetail()
	want := domain.PlaceDetail{
		Name:         "Blue Bottle",
		Address:      "1 Main St",
		Phone:        "(555) 010-2000",
		Website:      "https://example.com",
		Rating:       "4.5",
		TotalRatings: "120",
	}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestDetailFields_ToDetail_MissingFieldsBecomeSentinel(t *testing.T) {
	f := &domain.DetailFields{
		Name:    strPtr("Corner Cafe"),
		Website: strPtr(""),
		Rating:  floatPtr(0),
	}

	got := f.ToDetail()
	if got.Name != "Corner Cafe" {
		t.Errorf("expected name kept, got %q", got.Name)
	}
	for field, v := range map[string]string{
		"address":       got.Address,
		"phone":         got.Phone,
		"website":       got.Website,
		"rating":        got.Rating,
		"total_ratings": got.TotalRatings,
	} {
		if v != domain.NotAvailable {
			t.Errorf("%s: expected %q, got %q", field, domain.NotAvailable, v)
		}
	}
}

func TestDetailFields_ToDetail_Nil(t *testing.T) {
	var f *domain.DetailFields
	if got := f.ToDetail(); got != domain.UnavailableDetail() {
		t.Errorf("expected all N/A row, got %+v", got)
	}
}
