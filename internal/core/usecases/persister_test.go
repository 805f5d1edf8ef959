package usecases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/samirrijal/placescout/internal/core/domain"
	"github.com/samirrijal/placescout/internal/core/usecases"
)

func TestPersister_SharedTimestamp(t *testing.T) {
	appender := &mockAppender{}
	clock := newFakeClock()
	p := usecases.NewPersister(appender, clock, "Sheet1!A:G")

	if err := p.Persist(context.Background(), []domain.AggregatedRow{row("a"), row("b")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(appender.calls) != 1 {
		t.Fatalf("expected one append call, got %d", len(appender.calls))
	}
	call := appender.calls[0]
	if call.targetRange != "Sheet1!A:G" {
		t.Errorf("expected range Sheet1!A:G, got %s", call.targetRange)
	}
	if len(call.records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(call.records))
	}
	for _, rec := range call.records {
		if !rec.IngestedAt.Equal(clock.now) {
			t.Errorf("expected shared timestamp %s, got %s", clock.now, rec.IngestedAt)
		}
	}
	if call.records[0].Row.Name != "a" || call.records[1].Row.Name != "b" {
		t.Errorf("records out of order: %+v", call.records)
	}
}

func TestPersister_EmptySkipsAppend(t *testing.T) {
	appender := &mockAppender{}
	p := usecases.NewPersister(appender, newFakeClock(), "")

	if err := p.Persist(context.Background(), []domain.AggregatedRow{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(appender.calls) != 0 {
		t.Errorf("expected no append call, got %d", len(appender.calls))
	}
}

func TestPersister_FailureWrapsErrPersist(t *testing.T) {
	appender := &mockAppender{err: errors.New("quota exceeded")}
	p := usecases.NewPersister(appender, newFakeClock(), "")

	err := p.Persist(context.Background(), []domain.AggregatedRow{row("a")})
	if !errors.Is(err, domain.ErrPersist) {
		t.Errorf("expected ErrPersist, got %v", err)
	}
}
