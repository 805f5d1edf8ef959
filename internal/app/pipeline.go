// Package app wires the search pipeline from configuration. It is shared by
// the API server and the workflow worker.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/samirrijal/placescout/internal/adapters/fanout"
	"github.com/samirrijal/placescout/internal/adapters/googlemaps"
	"github.com/samirrijal/placescout/internal/adapters/postgres"
	"github.com/samirrijal/placescout/internal/adapters/sheets"
	"github.com/samirrijal/placescout/internal/core/ports"
	"github.com/samirrijal/placescout/internal/core/usecases"
	"github.com/samirrijal/placescout/internal/pkg/clock"
	"github.com/samirrijal/placescout/internal/pkg/config"
)

// Pipeline is a wired search service and the row stores behind it.
type Pipeline struct {
	Search *usecases.SearchService
	// Sheets is nil unless the sink writes to a spreadsheet.
	Sheets *sheets.Appender
	// Sinks are the individual row stores behind Search, in write order.
	Sinks []fanout.Target
}

// PipelineOptions maps configuration onto the pipeline tuning knobs.
func PipelineOptions(cfg *config.Config) usecases.PipelineOptions {
	return usecases.PipelineOptions{
		MaxRounds:          cfg.Pipeline.MaxRounds,
		RadiusMeters:       cfg.Pipeline.RadiusMeters,
		PageShiftDegrees:   cfg.Pipeline.PageShiftDegrees,
		PacingDelay:        cfg.Pipeline.PacingDelay,
		DetailConcurrency:  cfg.Pipeline.DetailConcurrency,
		CallTimeout:        cfg.Google.RequestTimeout,
		TargetRange:        cfg.Sheets.Range,
		FailOnPersistError: cfg.Pipeline.FailOnPersistError,
	}
}

// NewPipeline builds the search service for cfg. db is required when the sink
// includes postgres; events may be nil.
func NewPipeline(ctx context.Context, cfg *config.Config, db *postgres.DB, events ports.EventPublisher) (*Pipeline, error) {
	p := &Pipeline{}

	var targets []fanout.Target
	if cfg.Sink == config.SinkSheets || cfg.Sink == config.SinkBoth {
		sa, err := sheets.New(ctx, sheets.Options{
			SpreadsheetID: cfg.Sheets.SpreadsheetID,
			Credentials: sheets.Credentials{
				JSON:        cfg.Sheets.CredentialsJSON,
				File:        cfg.Sheets.CredentialsFile,
				ClientEmail: cfg.Sheets.ClientEmail,
				PrivateKey:  cfg.Sheets.PrivateKey,
			},
			Endpoint: cfg.Sheets.Endpoint,
		})
		if err != nil {
			return nil, err
		}
		p.Sheets = sa
		targets = append(targets, fanout.Target{Name: config.SinkSheets, Appender: sa})
	}
	if cfg.Sink == config.SinkPostgres || cfg.Sink == config.SinkBoth {
		if db == nil {
			return nil, errors.New("sink " + cfg.Sink + " needs a database connection")
		}
		targets = append(targets, fanout.Target{Name: config.SinkPostgres, Appender: postgres.NewRowRepo(db)})
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("unknown sink %q", cfg.Sink)
	}

	p.Sinks = targets

	var appender ports.RowAppender = targets[0].Appender
	if len(targets) > 1 {
		appender = fanout.New(targets...)
	}

	maps := googlemaps.New(cfg.Google.APIKey, cfg.Google.BaseURL, cfg.Google.RequestTimeout)
	p.Search = usecases.NewSearchService(maps, maps, maps, appender, events, clock.System{}, PipelineOptions(cfg))
	return p, nil
}
