package googlemaps

import (
	"context"
	"fmt"
	"strconv"

	"github.com/samirrijal/placescout/internal/core/domain"
	"github.com/samirrijal/placescout/internal/pkg/geospatial"
	"github.com/samirrijal/placescout/internal/pkg/logging"
)

// Geocode returns the candidate coordinates for address. A response with an
// empty result list (ZERO_RESULTS, or a rejected key) yields no candidates
// and no error; a response without a results key is malformed.
func (c *Client) Geocode(ctx context.Context, address string) ([]domain.GeoLocation, error) {
	var resp geocodeResponse
	if err := c.getJSON(ctx, "geocode", geocodePath, map[string]string{"address": address}, &resp); err != nil {
		return nil, err
	}
	if resp.Results == nil {
		return nil, fmt.Errorf("geocode: %w", domain.ErrMalformedResponse)
	}
	if len(*resp.Results) == 0 && resp.Status != "ZERO_RESULTS" {
		logging.FromContext(ctx).Warn("geocode returned no results",
			"status", resp.Status, "error_message", resp.ErrorMessage)
	}

	out := make([]domain.GeoLocation, 0, len(*resp.Results))
	for _, r := range *resp.Results {
		out = append(out, domain.GeoLocation{Lat: r.Geometry.Location.Lat, Lng: r.Geometry.Location.Lng})
	}
	return out, nil
}

// TextSearch runs one round of a Places text search.
func (c *Client) TextSearch(ctx context.Context, q domain.PlaceQuery) (*domain.SearchPage, error) {
	params := map[string]string{
		"query":    q.Text,
		"location": geospatial.FormatLatLng(q.Origin.Lat, q.Origin.Lng),
		"radius":   strconv.Itoa(q.RadiusMeters),
	}
	if q.PageToken != "" {
		params["pagetoken"] = q.PageToken
	}

	var resp textSearchResponse
	if err := c.getJSON(ctx, "textsearch", textSearchPath, params, &resp); err != nil {
		return nil, err
	}
	if resp.Results == nil {
		return nil, fmt.Errorf("textsearch status %q: %w", resp.Status, domain.ErrMalformedResponse)
	}

	page := &domain.SearchPage{
		Results:       make([]domain.PlaceSummary, 0, len(*resp.Results)),
		NextPageToken: resp.NextPageToken,
	}
	for _, r := range *resp.Results {
		page.Results = append(page.Results, domain.PlaceSummary{PlaceID: r.PlaceID, Name: r.Name})
	}
	return page, nil
}

// PlaceDetails fetches the fixed contact and rating field set for a place.
// A response without a result object returns nil fields and no error.
func (c *Client) PlaceDetails(ctx context.Context, placeID string) (*domain.DetailFields, error) {
	var resp detailsResponse
	params := map[string]string{
		"place_id": placeID,
		"fields":   domain.DetailFieldMask,
	}
	if err := c.getJSON(ctx, "details", detailsPath, params, &resp); err != nil {
		return nil, err
	}
	if resp.Result == nil {
		logging.FromContext(ctx).Warn("place details missing result",
			"place_id", placeID, "status", resp.Status, "error_message", resp.ErrorMessage)
	}
	return resp.Result, nil
}
