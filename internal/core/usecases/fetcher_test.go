package usecases_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/samirrijal/placescout/internal/core/domain"
	"github.com/samirrijal/placescout/internal/core/usecases"
)

func collectRounds(t *testing.T, f *usecases.PagedSearchFetcher) (int, [][]domain.PlaceSummary) {
	t.Helper()
	var got [][]domain.PlaceSummary
	rounds := f.Fetch(context.Background(), "cafe", domain.GeoLocation{Lat: 1, Lng: 2}, func(ctx context.Context, round int, h []domain.PlaceSummary) {
		if round != len(got)+1 {
			t.Errorf("expected round %d, got %d", len(got)+1, round)
		}
		got = append(got, h)
	})
	return rounds, got
}

func TestPagedSearchFetcher_FollowsTokenUntilExhausted(t *testing.T) {
	searcher := &mockSearcher{pages: []*domain.SearchPage{
		{Results: hits("a", "b"), NextPageToken: "tok-1"},
		{Results: hits("c")},
	}}
	clock := newFakeClock()
	f := usecases.NewPagedSearchFetcher(searcher, clock, usecases.DefaultPipelineOptions())

	rounds, got := collectRounds(t, f)
	if rounds != 2 {
		t.Fatalf("expected 2 rounds, got %d", rounds)
	}
	if len(got[0]) != 2 || len(got[1]) != 1 {
		t.Errorf("unexpected round sizes: %v", got)
	}
	if len(clock.sleeps) != 1 || clock.sleeps[0] != 2*time.Second {
		t.Errorf("expected one 2s pacing wait, got %v", clock.sleeps)
	}
	if searcher.queries[0].PageToken != "" {
		t.Errorf("first round must not carry a token, got %q", searcher.queries[0].PageToken)
	}
	if searcher.queries[1].PageToken != "tok-1" {
		t.Errorf("expected second round token tok-1, got %q", searcher.queries[1].PageToken)
	}
	for i, q := range searcher.queries {
		if q.RadiusMeters != 5000 || q.Text != "cafe" {
			t.Errorf("round %d: unexpected query %+v", i+1, q)
		}
	}
}

func TestPagedSearchFetcher_StopsAtMaxRounds(t *testing.T) {
	searcher := &mockSearcher{pages: []*domain.SearchPage{
		{Results: hits("a"), NextPageToken: "t1"},
		{Results: hits("b"), NextPageToken: "t2"},
		{Results: hits("c"), NextPageToken: "t3"},
		{Results: hits("d")},
	}}
	clock := newFakeClock()
	f := usecases.NewPagedSearchFetcher(searcher, clock, usecases.DefaultPipelineOptions())

	rounds, _ := collectRounds(t, f)
	if rounds != 3 {
		t.Fatalf("expected 3 rounds, got %d", rounds)
	}
	if len(searcher.queries) != 3 {
		t.Errorf("expected 3 search calls, got %d", len(searcher.queries))
	}
	if len(clock.sleeps) != 2 {
		t.Errorf("expected 2 pacing waits, got %d", len(clock.sleeps))
	}
}

func TestPagedSearchFetcher_NoTokenNoWait(t *testing.T) {
	searcher := &mockSearcher{pages: []*domain.SearchPage{{Results: hits("a", "b")}}}
	clock := newFakeClock()
	f := usecases.NewPagedSearchFetcher(searcher, clock, usecases.DefaultPipelineOptions())

	rounds, _ := collectRounds(t, f)
	if rounds != 1 {
		t.Fatalf("expected 1 round, got %d", rounds)
	}
	if len(clock.sleeps) != 0 {
		t.Errorf("expected no pacing wait, got %v", clock.sleeps)
	}
}

func TestPagedSearchFetcher_FailedRoundKeepsEarlierHits(t *testing.T) {
	searcher := &mockSearcher{
		pages: []*domain.SearchPage{{Results: hits("a", "b"), NextPageToken: "t1"}},
		errs:  []error{nil, errors.New("connection reset")},
	}
	clock := newFakeClock()
	f := usecases.NewPagedSearchFetcher(searcher, clock, usecases.DefaultPipelineOptions())

	rounds, got := collectRounds(t, f)
	if rounds != 2 {
		t.Fatalf("expected 2 rounds, got %d", rounds)
	}
	if len(got[0]) != 2 || len(got[1]) != 0 {
		t.Errorf("expected failed round to be empty, got %v", got)
	}
	if len(clock.sleeps) != 1 {
		t.Errorf("expected a single wait before the failed round, got %d", len(clock.sleeps))
	}
}

func TestPagedSearchFetcher_MalformedFirstRound(t *testing.T) {
	searcher := &mockSearcher{errs: []error{domain.ErrMalformedResponse}}
	f := usecases.NewPagedSearchFetcher(searcher, newFakeClock(), usecases.DefaultPipelineOptions())

	rounds, got := collectRounds(t, f)
	if rounds != 1 || len(got) != 1 || len(got[0]) != 0 {
		t.Errorf("expected one empty round, got rounds=%d %v", rounds, got)
	}
}

func TestPagedSearchFetcher_InterruptedWaitStops(t *testing.T) {
	searcher := &mockSearcher{pages: []*domain.SearchPage{
		{Results: hits("a"), NextPageToken: "t1"},
		{Results: hits("b")},
	}}
	clock := newFakeClock()
	clock.sleepErr = context.Canceled
	f := usecases.NewPagedSearchFetcher(searcher, clock, usecases.DefaultPipelineOptions())

	rounds, _ := collectRounds(t, f)
	if rounds != 1 {
		t.Errorf("expected loop to stop after interrupted wait, got %d rounds", rounds)
	}
	if len(searcher.queries) != 1 {
		t.Errorf("expected no second search call, got %d", len(searcher.queries))
	}
}
