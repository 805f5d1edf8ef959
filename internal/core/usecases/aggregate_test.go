package usecases_test

import (
	"reflect"
	"testing"

	"github.com/samirrijal/placescout/internal/core/domain"
	"github.com/samirrijal/placescout/internal/core/usecases"
)

func row(name string) domain.PlaceDetail {
	d := domain.UnavailableDetail()
	d.Name = name
	return d
}

func TestAggregate_DiscoveryOrder(t *testing.T) {
	rounds := [][]domain.PlaceDetail{
		{row("a"), row("b")},
		nil,
		{row("a"), row("c")},
	}

	got := usecases.Aggregate(rounds)
	want := []domain.PlaceDetail{row("a"), row("b"), row("a"), row("c")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	// Same input, same order.
	if again := usecases.Aggregate(rounds); !reflect.DeepEqual(again, got) {
		t.Errorf("aggregation is not stable: %v vs %v", again, got)
	}
}

func TestAggregate_Empty(t *testing.T) {
	got := usecases.Aggregate(nil)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}
