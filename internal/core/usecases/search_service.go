package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samirrijal/placescout/internal/core/domain"
	"github.com/samirrijal/placescout/internal/core/ports"
	"github.com/samirrijal/placescout/internal/pkg/geospatial"
	"github.com/samirrijal/placescout/internal/pkg/logging"
	"github.com/samirrijal/placescout/internal/pkg/metrics"
	"github.com/samirrijal/placescout/internal/pkg/telemetry"
)

// PersistWarningMessage is returned with the rows when the append failed and
// the service is configured to keep the results anyway.
const PersistWarningMessage = "Results could not be saved"

// SearchService runs the place-search pipeline:
// geocode → shift origin → paged search → detail lookup → aggregate → persist.
type SearchService struct {
	resolver  *CityResolver
	fetcher   *PagedSearchFetcher
	enricher  *DetailEnricher
	persister *Persister
	events    ports.EventPublisher
	clock     ports.Clock
	opts      PipelineOptions
}

// NewSearchService wires the pipeline stages. events may be nil.
func NewSearchService(
	geocoder ports.Geocoder,
	searcher ports.PlaceSearcher,
	details ports.PlaceDetailer,
	appender ports.RowAppender,
	events ports.EventPublisher,
	clock ports.Clock,
	opts PipelineOptions,
) *SearchService {
	opts = opts.withDefaults()
	return &SearchService{
		resolver:  NewCityResolver(geocoder),
		fetcher:   NewPagedSearchFetcher(searcher, clock, opts),
		enricher:  NewDetailEnricher(details, opts),
		persister: NewPersister(appender, clock, opts.TargetRange),
		events:    events,
		clock:     clock,
		opts:      opts,
	}
}

// Search runs the whole pipeline and persists the rows it returns.
func (s *SearchService) Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResult, error) {
	result, err := s.Collect(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.persist(ctx, result); err != nil {
		return nil, err
	}
	s.publish(ctx, req.Normalize(), result)
	return result, nil
}

// Collect runs every stage except persistence. An unknown city yields an
// empty result with InvalidCityMessage, not an error.
func (s *SearchService) Collect(ctx context.Context, req domain.SearchRequest) (*domain.SearchResult, error) {
	req = req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx, span := telemetry.Tracer().Start(ctx, telemetry.SpanSearch)
	defer span.End()
	span.SetAttributes(
		attribute.String(telemetry.AttrBusiness, req.Business),
		attribute.String(telemetry.AttrCity, req.City),
		attribute.Int(telemetry.AttrPage, req.Page),
	)

	log := logging.FromContext(ctx).With("business", req.Business, "city", req.City, "page", req.Page)
	ctx = logging.WithLogger(ctx, log)
	log.Info("searching places")

	base, found, err := s.resolve(ctx, req.City)
	if err != nil {
		metrics.SearchesTotal.WithLabelValues("error").Inc()
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if !found {
		metrics.SearchesTotal.WithLabelValues("invalid_city").Inc()
		log.Info("city not found")
		return &domain.SearchResult{Rows: []domain.AggregatedRow{}, Message: domain.InvalidCityMessage}, nil
	}

	origin := base.ShiftBy(req.Page, s.opts.PageShiftDegrees)
	log.Debug("search origin",
		"lat", origin.Lat, "lng", origin.Lng,
		"offset_m", geospatial.Haversine(base.Lat, base.Lng, origin.Lat, origin.Lng),
	)

	var enriched [][]domain.PlaceDetail
	fetchCtx, fetchSpan := telemetry.Tracer().Start(ctx, telemetry.SpanFetch)
	rounds := s.fetcher.Fetch(fetchCtx, req.Business, origin, func(ctx context.Context, round int, hits []domain.PlaceSummary) {
		enrichCtx, enrichSpan := telemetry.Tracer().Start(ctx, telemetry.SpanEnrich)
		enrichSpan.SetAttributes(attribute.Int(telemetry.AttrRounds, round), attribute.Int(telemetry.AttrRows, len(hits)))
		enriched = append(enriched, s.enricher.Enrich(enrichCtx, hits))
		enrichSpan.End()
	})
	fetchSpan.End()

	if err := ctx.Err(); err != nil {
		metrics.SearchesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("search aborted: %w", err)
	}

	rows := Aggregate(enriched)
	metrics.SearchRounds.Observe(float64(rounds))
	metrics.SearchesTotal.WithLabelValues("ok").Inc()
	span.SetAttributes(attribute.Int(telemetry.AttrRounds, rounds), attribute.Int(telemetry.AttrRows, len(rows)))
	log.Info("found places", "count", len(rows), "rounds", rounds)

	return &domain.SearchResult{Rows: rows, Rounds: rounds}, nil
}

// Persist appends the rows of a collected result. It is exposed so callers
// that collect and persist in separate steps (the async workflow) share the
// same rules.
func (s *SearchService) Persist(ctx context.Context, rows []domain.AggregatedRow) error {
	ctx, span := telemetry.Tracer().Start(ctx, telemetry.SpanPersist)
	defer span.End()

	if err := s.persister.Persist(ctx, rows); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

func (s *SearchService) resolve(ctx context.Context, city string) (domain.GeoLocation, bool, error) {
	ctx, span := telemetry.Tracer().Start(ctx, telemetry.SpanGeocode)
	defer span.End()

	if s.opts.CallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.CallTimeout)
		defer cancel()
	}
	return s.resolver.Resolve(ctx, city)
}

func (s *SearchService) persist(ctx context.Context, result *domain.SearchResult) error {
	if len(result.Rows) == 0 {
		return nil
	}

	log := logging.FromContext(ctx)
	err := s.Persist(ctx, result.Rows)
	if err == nil {
		result.Persisted = true
		log.Info("appended rows", "count", len(result.Rows))
		return nil
	}

	log.Error("append rows failed", "count", len(result.Rows), "error", err)
	if s.opts.FailOnPersistError {
		return err
	}

	// Rows that reached at least one store are not re-sent; the message names
	// the stores that missed them.
	var partial *domain.PartialPersistError
	if errors.As(err, &partial) {
		result.Persisted = true
		result.Message = PersistWarning(partial.Failed)
		return nil
	}
	result.Message = PersistWarningMessage
	return nil
}

// PersistWarning is the result message when the rows reached some stores but
// not the ones in failed. An empty failed list gives PersistWarningMessage.
func PersistWarning(failed []string) string {
	if len(failed) == 0 {
		return PersistWarningMessage
	}
	return PersistWarningMessage + " to " + strings.Join(failed, ", ")
}

func (s *SearchService) publish(ctx context.Context, req domain.SearchRequest, result *domain.SearchResult) {
	if s.events == nil || result.Message == domain.InvalidCityMessage {
		return
	}
	event := &domain.SearchCompletedEvent{
		Business:    req.Business,
		City:        req.City,
		Page:        req.Page,
		Rounds:      result.Rounds,
		RowCount:    len(result.Rows),
		Persisted:   result.Persisted,
		CompletedAt: s.clock.Now().UTC(),
	}
	if err := s.events.PublishSearchCompleted(ctx, event); err != nil {
		logging.FromContext(ctx).Warn("publish search completed failed", "error", err)
	}
}
