// Package fanout combines several row stores behind one ports.RowAppender.
package fanout

import (
	"context"
	"errors"
	"fmt"

	"github.com/samirrijal/placescout/internal/core/domain"
	"github.com/samirrijal/placescout/internal/core/ports"
)

// Target is a named row store.
type Target struct {
	Name     string
	Appender ports.RowAppender
}

// Appender writes every batch to all targets in order. Every target is
// attempted. When only some targets fail the error is a
// *domain.PartialPersistError so callers know the rows already landed.
type Appender struct {
	targets []Target
}

// New creates an Appender over targets.
func New(targets ...Target) *Appender {
	return &Appender{targets: targets}
}

func (a *Appender) Append(ctx context.Context, targetRange string, records []domain.PersistedRecord) error {
	var stored, failed []string
	var errs []error
	for _, t := range a.targets {
		if err := t.Appender.Append(ctx, targetRange, records); err != nil {
			failed = append(failed, t.Name)
			errs = append(errs, fmt.Errorf("%s: %w", t.Name, err))
			continue
		}
		stored = append(stored, t.Name)
	}

	err := errors.Join(errs...)
	if err == nil || len(stored) == 0 {
		return err
	}
	return &domain.PartialPersistError{Stored: stored, Failed: failed, Err: err}
}
