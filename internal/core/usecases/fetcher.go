package usecases

import (
	"context"
	"time"

	"github.com/samirrijal/placescout/internal/core/domain"
	"github.com/samirrijal/placescout/internal/core/ports"
	"github.com/samirrijal/placescout/internal/pkg/logging"
	"github.com/samirrijal/placescout/internal/pkg/metrics"
)

// RoundHandler receives the hits of each search round as soon as the round
// completes, before any pacing wait.
type RoundHandler func(ctx context.Context, round int, hits []domain.PlaceSummary)

// PagedSearchFetcher follows next-page tokens across a bounded number of
// text-search rounds.
type PagedSearchFetcher struct {
	searcher     ports.PlaceSearcher
	clock        ports.Clock
	maxRounds    int
	radiusMeters int
	pacingDelay  time.Duration
	callTimeout  time.Duration
}

// NewPagedSearchFetcher creates a new PagedSearchFetcher.
func NewPagedSearchFetcher(searcher ports.PlaceSearcher, clock ports.Clock, opts PipelineOptions) *PagedSearchFetcher {
	opts = opts.withDefaults()
	return &PagedSearchFetcher{
		searcher:     searcher,
		clock:        clock,
		maxRounds:    opts.MaxRounds,
		radiusMeters: opts.RadiusMeters,
		pacingDelay:  opts.PacingDelay,
		callTimeout:  opts.CallTimeout,
	}
}

// Fetch runs up to maxRounds text searches around origin and hands each
// round's hits to onRound in order. It returns the number of rounds issued.
//
// A failed round counts as an empty last round: the loop stops and whatever
// was collected earlier stands. The wait between rounds only happens when a
// token came back and another round will actually be issued.
func (f *PagedSearchFetcher) Fetch(ctx context.Context, query string, origin domain.GeoLocation, onRound RoundHandler) int {
	log := logging.FromContext(ctx)

	var token string
	rounds := 0
	for rounds < f.maxRounds {
		rounds++

		page, err := f.search(ctx, domain.PlaceQuery{
			Text:         query,
			Origin:       origin,
			RadiusMeters: f.radiusMeters,
			PageToken:    token,
		})
		if err != nil {
			metrics.DegradedRounds.Inc()
			log.Warn("search round failed, keeping earlier rounds", "round", rounds, "error", err)
			onRound(ctx, rounds, nil)
			break
		}

		onRound(ctx, rounds, page.Results)

		token = page.NextPageToken
		if token == "" || rounds >= f.maxRounds {
			break
		}

		metrics.PacingWaits.Inc()
		if err := f.clock.Sleep(ctx, f.pacingDelay); err != nil {
			log.Warn("pacing wait interrupted", "round", rounds, "error", err)
			break
		}
	}

	return rounds
}

func (f *PagedSearchFetcher) search(ctx context.Context, q domain.PlaceQuery) (*domain.SearchPage, error) {
	if f.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.callTimeout)
		defer cancel()
	}
	page, err := f.searcher.TextSearch(ctx, q)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, domain.ErrMalformedResponse
	}
	return page, nil
}
