package valkey

import (
	"testing"

	"github.com/gofiber/fiber/v2"
)

var _ fiber.Storage = (*Store)(nil)

func TestStore_KeyPrefix(t *testing.T) {
	s := &Store{prefix: "placescout:limiter:"}
	if got := s.key("10.0.0.1"); got != "placescout:limiter:10.0.0.1" {
		t.Errorf("unexpected key %q", got)
	}
}

func TestStore_EmptyKeyIsNoop(t *testing.T) {
	s := &Store{prefix: "p:"}
	if b, err := s.Get(""); b != nil || err != nil {
		t.Errorf("expected nil, nil for empty key, got %v, %v", b, err)
	}
	if err := s.Set("", []byte("1"), 0); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := s.Delete(""); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
