package domain_test

import (
	"math"
	"testing"

	"github.com/samirrijal/placescout/internal/core/domain"
)

func TestGeoLocation_Shift(t *testing.T) {
	base := domain.GeoLocation{Lat: 39.7817, Lng: -89.6501}

	tests := []struct {
		page    int
		wantLat float64
		wantLng float64
	}{
		{page: 1, wantLat: 39.7817, wantLng: -89.6501},
		{page: 2, wantLat: 39.8317, wantLng: -89.6001},
		{page: 5, wantLat: 39.9817, wantLng: -89.4501},
	}

	for _, tt := range tests {
		got := base.Shift(tt.page)
		if math.Abs(got.Lat-tt.wantLat) > 1e-9 || math.Abs(got.Lng-tt.wantLng) > 1e-9 {
			t.Errorf("page %d: expected (%f, %f), got (%f, %f)", tt.page, tt.wantLat, tt.wantLng, got.Lat, got.Lng)
		}
	}
}

func TestGeoLocation_Shift_FirstPageIsIdentity(t *testing.T) {
	base := domain.GeoLocation{Lat: -33.8688, Lng: 151.2093}
	if got := base.Shift(1); got != base {
		t.Errorf("expected identity for page 1, got %+v", got)
	}
}
