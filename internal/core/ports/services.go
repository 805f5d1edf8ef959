package ports

import (
	"context"
	"time"

	"github.com/samirrijal/placescout/internal/core/domain"
)

// Geocoder resolves a free-text address to candidate coordinates.
// An unknown address yields an empty slice and no error.
type Geocoder interface {
	Geocode(ctx context.Context, address string) ([]domain.GeoLocation, error)
}

// PlaceSearcher runs one text-search round.
type PlaceSearcher interface {
	TextSearch(ctx context.Context, q domain.PlaceQuery) (*domain.SearchPage, error)
}

// PlaceDetailer looks up contact and rating fields for one place.
// Nil fields with a nil error means the API returned no result.
type PlaceDetailer interface {
	PlaceDetails(ctx context.Context, placeID string) (*domain.DetailFields, error)
}

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	PublishSearchCompleted(ctx context.Context, event *domain.SearchCompletedEvent) error
}

// EventSubscriber subscribes to domain events from a message broker.
type EventSubscriber interface {
	SubscribeSearchCompleted(ctx context.Context, handler func(ctx context.Context, event *domain.SearchCompletedEvent) error) error
}

// Clock abstracts wall-clock time so pacing can be tested without waiting.
type Clock interface {
	Now() time.Time
	// Sleep blocks for d or until ctx is done, returning ctx.Err() in the latter case.
	Sleep(ctx context.Context, d time.Duration) error
}

// SearchJobRunner runs searches asynchronously.
type SearchJobRunner interface {
	StartSearch(ctx context.Context, req domain.SearchRequest) (jobID string, err error)
	// SearchJob returns domain.ErrJobNotFound for unknown IDs.
	SearchJob(ctx context.Context, jobID string) (*domain.SearchJob, error)
}
