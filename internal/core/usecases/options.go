package usecases

import "time"

// PipelineOptions tunes the search pipeline.
type PipelineOptions struct {
	MaxRounds        int
	RadiusMeters     int
	PageShiftDegrees float64
	PacingDelay      time.Duration
	// DetailConcurrency above 1 runs detail lookups in parallel; output order
	// is still discovery order.
	DetailConcurrency  int
	CallTimeout        time.Duration
	TargetRange        string
	FailOnPersistError bool
}

// DefaultPipelineOptions mirrors the Places API limits: three pages of
// results per origin and a two-second wait before a page token is usable.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{
		MaxRounds:         3,
		RadiusMeters:      5000,
		PageShiftDegrees:  0.05,
		PacingDelay:       2 * time.Second,
		DetailConcurrency: 1,
		CallTimeout:       10 * time.Second,
		TargetRange:       "Sheet1!A:G",
	}
}

func (o PipelineOptions) withDefaults() PipelineOptions {
	d := DefaultPipelineOptions()
	if o.MaxRounds <= 0 {
		o.MaxRounds = d.MaxRounds
	}
	if o.RadiusMeters <= 0 {
		o.RadiusMeters = d.RadiusMeters
	}
	if o.PageShiftDegrees == 0 {
		o.PageShiftDegrees = d.PageShiftDegrees
	}
	if o.PacingDelay < 0 {
		o.PacingDelay = 0
	}
	if o.DetailConcurrency < 1 {
		o.DetailConcurrency = 1
	}
	if o.TargetRange == "" {
		o.TargetRange = d.TargetRange
	}
	return o
}
