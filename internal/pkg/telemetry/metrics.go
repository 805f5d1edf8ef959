package telemetry

// Tracer and span names used for instrumentation.
const (
	TracerName = "github.com/samirrijal/placescout"

	SpanSearch   = "pipeline.search"
	SpanGeocode  = "pipeline.geocode"
	SpanFetch    = "pipeline.fetch"
	SpanEnrich   = "pipeline.enrich"
	SpanPersist  = "pipeline.persist"
	SpanWorkflow = "workflow.search"
)

// Span attribute keys.
const (
	AttrBusiness = "search.business"
	AttrCity     = "search.city"
	AttrPage     = "search.page"
	AttrRounds   = "search.rounds"
	AttrRows     = "search.rows"
)
