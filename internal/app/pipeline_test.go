package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/samirrijal/placescout/internal/app"
	"github.com/samirrijal/placescout/internal/pkg/config"
)

func testConfig(sink string) *config.Config {
	return &config.Config{
		Google: config.GoogleConfig{APIKey: "k", BaseURL: "http://127.0.0.1:1", RequestTimeout: time.Second},
		Sheets: config.SheetsConfig{SpreadsheetID: "sheet-123", Range: "Sheet1!A:G", Endpoint: "http://127.0.0.1:1/"},
		Pipeline: config.PipelineConfig{
			MaxRounds: 3, RadiusMeters: 5000, PageShiftDegrees: 0.05,
			PacingDelay: 2 * time.Second, DetailConcurrency: 1,
		},
		Sink: sink,
	}
}

func TestPipelineOptions(t *testing.T) {
	cfg := testConfig(config.SinkSheets)
	cfg.Pipeline.FailOnPersistError = true

	opts := app.PipelineOptions(cfg)
	if opts.MaxRounds != 3 || opts.RadiusMeters != 5000 || opts.PacingDelay != 2*time.Second {
		t.Errorf("unexpected options: %+v", opts)
	}
	if opts.CallTimeout != time.Second || opts.TargetRange != "Sheet1!A:G" || !opts.FailOnPersistError {
		t.Errorf("unexpected options: %+v", opts)
	}
}

func TestNewPipeline_Sheets(t *testing.T) {
	p, err := app.NewPipeline(context.Background(), testConfig(config.SinkSheets), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Search == nil || p.Sheets == nil {
		t.Errorf("expected search service and sheets appender, got %+v", p)
	}
	if len(p.Sinks) != 1 || p.Sinks[0].Name != config.SinkSheets {
		t.Errorf("unexpected sinks: %+v", p.Sinks)
	}
}

func TestNewPipeline_PostgresNeedsDB(t *testing.T) {
	for _, sink := range []string{config.SinkPostgres, config.SinkBoth} {
		if _, err := app.NewPipeline(context.Background(), testConfig(sink), nil, nil); err == nil {
			t.Errorf("sink %s: expected error without database", sink)
		}
	}
}

func TestNewPipeline_UnknownSink(t *testing.T) {
	if _, err := app.NewPipeline(context.Background(), testConfig("s3"), nil, nil); err == nil {
		t.Error("expected error for unknown sink")
	}
}
