package clock

import (
	"context"
	"time"
)

// System is the wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Sleep waits for d, returning early with ctx.Err() if ctx is done first.
func (System) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
