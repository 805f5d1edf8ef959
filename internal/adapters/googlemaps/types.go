package googlemaps

import "github.com/samirrijal/placescout/internal/core/domain"

// Results fields are pointers to slices so an absent key can be told apart
// from an empty list.

type geocodeResponse struct {
	Status       string           `json:"status"`
	ErrorMessage string           `json:"error_message,omitempty"`
	Results      *[]geocodeResult `json:"results"`
}

type geocodeResult struct {
	FormattedAddress string   `json:"formatted_address"`
	Geometry         geometry `json:"geometry"`
}

type geometry struct {
	Location location `json:"location"`
}

type location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type textSearchResponse struct {
	Status        string              `json:"status"`
	ErrorMessage  string              `json:"error_message,omitempty"`
	NextPageToken string              `json:"next_page_token,omitempty"`
	Results       *[]textSearchResult `json:"results"`
}

type textSearchResult struct {
	PlaceID string `json:"place_id"`
	Name    string `json:"name"`
}

type detailsResponse struct {
	Status       string               `json:"status"`
	ErrorMessage string               `json:"error_message,omitempty"`
	Result       *domain.DetailFields `json:"result"`
}
