package usecases

import (
	"context"
	"fmt"

	"github.com/samirrijal/placescout/internal/core/domain"
	"github.com/samirrijal/placescout/internal/core/ports"
)

// CityResolver turns a city name into the base search coordinate.
type CityResolver struct {
	geocoder ports.Geocoder
}

// NewCityResolver creates a new CityResolver.
func NewCityResolver(geocoder ports.Geocoder) *CityResolver {
	return &CityResolver{geocoder: geocoder}
}

// Resolve returns the first geocoding candidate. found is false when the
// geocoder knows no such place; that is not an error.
func (r *CityResolver) Resolve(ctx context.Context, city string) (loc domain.GeoLocation, found bool, err error) {
	candidates, err := r.geocoder.Geocode(ctx, city)
	if err != nil {
		return domain.GeoLocation{}, false, fmt.Errorf("geocode %q: %w", city, err)
	}
	if len(candidates) == 0 {
		return domain.GeoLocation{}, false, nil
	}
	return candidates[0], true, nil
}
