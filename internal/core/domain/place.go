package domain

import (
	"strings"
	"time"
)

// NotAvailable replaces any detail field the places API did not return.
const NotAvailable = "N/A"

// SearchRequest is a validated request to find businesses in a city.
type SearchRequest struct {
	Business string `json:"business"`
	City     string `json:"city"`
	Page     int    `json:"page"`
}

// Normalize trims the text fields and defaults a missing page to 1.
func (r SearchRequest) Normalize() SearchRequest {
	r.Business = strings.TrimSpace(r.Business)
	r.City = strings.TrimSpace(r.City)
	if r.Page == 0 {
		r.Page = 1
	}
	return r
}

// Validate reports missing fields as ErrValidation.
func (r SearchRequest) Validate() error {
	if r.Business == "" || r.City == "" {
		return &ValidationError{Message: "Missing fields"}
	}
	if r.Page < 1 {
		return &ValidationError{Message: "page must be 1 or greater"}
	}
	return nil
}

// PlaceSummary is a single text-search hit. Only the ID drives enrichment.
type PlaceSummary struct {
	PlaceID string `json:"place_id"`
	Name    string `json:"name,omitempty"`
}

// SearchPage is one round of text-search results.
type SearchPage struct {
	Results       []PlaceSummary
	NextPageToken string
}

// PlaceQuery describes one text-search round.
type PlaceQuery struct {
	Text         string
	Origin       GeoLocation
	RadiusMeters int
	PageToken    string
}

// PlaceDetail is the enriched, externally visible row for one place.
// Every field holds either the API value or NotAvailable.
type PlaceDetail struct {
	Name         string `json:"name"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Website      string `json:"website"`
	Rating       string `json:"rating"`
	TotalRatings string `json:"total_ratings"`
}

// AggregatedRow is the unit returned to callers and written to the sheet.
type AggregatedRow = PlaceDetail

// UnavailableDetail is the row used when a detail lookup fails outright.
func UnavailableDetail() PlaceDetail {
	return PlaceDetail{
		Name:         NotAvailable,
		Address:      NotAvailable,
		Phone:        NotAvailable,
		Website:      NotAvailable,
		Rating:       NotAvailable,
		TotalRatings: NotAvailable,
	}
}

// PersistedRecord is an aggregated row plus the time it was ingested.
type PersistedRecord struct {
	Row        AggregatedRow
	IngestedAt time.Time
}

// StampRecords pairs every row with the same ingest time.
func StampRecords(rows []AggregatedRow, at time.Time) []PersistedRecord {
	records := make([]PersistedRecord, len(rows))
	for i, row := range rows {
		records[i] = PersistedRecord{Row: row, IngestedAt: at}
	}
	return records
}

// IngestTimestampLayout matches JavaScript's Date.toISOString output.
const IngestTimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Values flattens the record into the sheet column order A..G.
func (p PersistedRecord) Values() []interface{} {
	return []interface{}{
		p.Row.Name,
		p.Row.Address,
		p.Row.Phone,
		p.Row.Website,
		p.Row.Rating,
		p.Row.TotalRatings,
		p.IngestedAt.UTC().Format(IngestTimestampLayout),
	}
}

// SearchResult is what a search hands back to the caller.
type SearchResult struct {
	Rows      []AggregatedRow `json:"data"`
	Message   string          `json:"message,omitempty"`
	Persisted bool            `json:"persisted"`
	Rounds    int             `json:"rounds"`
}

// SearchCompletedEvent is published after every finished search.
type SearchCompletedEvent struct {
	Business    string    `json:"business"`
	City        string    `json:"city"`
	Page        int       `json:"page"`
	Rounds      int       `json:"rounds"`
	RowCount    int       `json:"row_count"`
	Persisted   bool      `json:"persisted"`
	CompletedAt time.Time `json:"completed_at"`
}

// SearchRun is a recorded search kept for the history endpoint.
type SearchRun struct {
	ID          string    `json:"id"`
	Business    string    `json:"business"`
	City        string    `json:"city"`
	Page        int       `json:"page"`
	Rounds      int       `json:"rounds"`
	RowCount    int       `json:"row_count"`
	Persisted   bool      `json:"persisted"`
	CompletedAt time.Time `json:"completed_at"`
}
