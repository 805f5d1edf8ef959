package usecases_test

import (
	"context"
	"sync"
	"time"

	"github.com/samirrijal/placescout/internal/core/domain"
)

// --- Mock Geocoder ---

type mockGeocoder struct {
	geocodeFn func(ctx context.Context, address string) ([]domain.GeoLocation, error)
	calls     int
}

func (m *mockGeocoder) Geocode(ctx context.Context, address string) ([]domain.GeoLocation, error) {
	m.calls++
	if m.geocodeFn != nil {
		return m.geocodeFn(ctx, address)
	}
	return []domain.GeoLocation{{Lat: 39.7817, Lng: -89.6501}}, nil
}

// --- Mock PlaceSearcher ---

// mockSearcher replays pages in order; a nil page with a non-nil error
// simulates a failed round.
type mockSearcher struct {
	pages   []*domain.SearchPage
	errs    []error
	queries []domain.PlaceQuery
}

func (m *mockSearcher) TextSearch(ctx context.Context, q domain.PlaceQuery) (*domain.SearchPage, error) {
	i := len(m.queries)
	m.queries = append(m.queries, q)
	if i < len(m.errs) && m.errs[i] != nil {
		return nil, m.errs[i]
	}
	if i < len(m.pages) {
		return m.pages[i], nil
	}
	return &domain.SearchPage{}, nil
}

// --- Mock PlaceDetailer ---

type mockDetailer struct {
	mu        sync.Mutex
	detailsFn func(ctx context.Context, placeID string) (*domain.DetailFields, error)
	calls     []string
}

func (m *mockDetailer) PlaceDetails(ctx context.Context, placeID string) (*domain.DetailFields, error) {
	m.mu.Lock()
	m.calls = append(m.calls, placeID)
	m.mu.Unlock()
	if m.detailsFn != nil {
		return m.detailsFn(ctx, placeID)
	}
	return namedDetail(placeID), nil
}

func namedDetail(placeID string) *domain.DetailFields {
	name := "Place " + placeID
	addr := placeID + " Main St"
	rating := 4.2
	total := 87
	return &domain.DetailFields{Name: &name, FormattedAddress: &addr, Rating: &rating, UserRatingsTotal: &total}
}

// --- Mock RowAppender ---

type appendCall struct {
	targetRange string
	records     []domain.PersistedRecord
}

type mockAppender struct {
	err   error
	calls []appendCall
}

func (m *mockAppender) Append(ctx context.Context, targetRange string, records []domain.PersistedRecord) error {
	m.calls = append(m.calls, appendCall{targetRange: targetRange, records: records})
	return m.err
}

// --- Mock EventPublisher ---

type mockPublisher struct {
	events []*domain.SearchCompletedEvent
}

func (m *mockPublisher) PublishSearchCompleted(ctx context.Context, event *domain.SearchCompletedEvent) error {
	m.events = append(m.events, event)
	return nil
}

// --- Fake Clock ---

type fakeClock struct {
	now      time.Time
	sleeps   []time.Duration
	sleepErr error
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	c.sleeps = append(c.sleeps, d)
	if c.sleepErr != nil {
		return c.sleepErr
	}
	c.now = c.now.Add(d)
	return nil
}

// --- helpers ---

func hits(ids ...string) []domain.PlaceSummary {
	out := make([]domain.PlaceSummary, len(ids))
	for i, id := range ids {
		out[i] = domain.PlaceSummary{PlaceID: id}
	}
	return out
}
