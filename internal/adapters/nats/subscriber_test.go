package natsadapter

import (
	"errors"
	"testing"

	"github.com/samirrijal/placescout/internal/core/domain"
)

func TestDecodeSearchCompleted(t *testing.T) {
	data := []byte(`{"business":"cafe","city":"Springfield","page":1,"rounds":2,"row_count":3,"persisted":true,"completed_at":"2026-10-19T12:00:00Z"}`)

	event, err := DecodeSearchCompleted(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.Business != "cafe" || event.RowCount != 3 || event.Rounds != 2 || !event.Persisted {
		t.Errorf("unexpected event: %+v", event)
	}
}

func TestDecodeSearchCompleted_Invalid(t *testing.T) {
	if _, err := DecodeSearchCompleted([]byte(`not json`)); err == nil {
		t.Error("expected decode error")
	}
	_, err := DecodeSearchCompleted([]byte(`{"city":"Springfield"}`))
	if !errors.Is(err, domain.ErrMalformedResponse) {
		t.Errorf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestSubjects(t *testing.T) {
	if SubjectSearchCompleted != "places.search.completed" {
		t.Errorf("unexpected subject %q", SubjectSearchCompleted)
	}
	if SubjectSearchWildcard != "places.search.>" {
		t.Errorf("unexpected wildcard %q", SubjectSearchWildcard)
	}
}
