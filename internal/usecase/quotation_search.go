package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/luckytour/fare-quotation-service/internal/domain"
	"github.com/luckytour/fare-quotation-service/internal/infrastructure/logger"
)

// QuotationSearchUseCase defines the fare search operation.
type QuotationSearchUseCase interface {
	// Search validates the criteria, serves cached upstream results when
	// available, then filters and sorts them.
	Search(ctx context.Context, criteria domain.SearchCriteria, opts SearchOptions) (*domain.SearchResponse, error)
}

type quotationSearchUseCase struct {
	provider domain.QuotationProvider
	cache    domain.SearchCache
	cfg      Config
	tracer   trace.Tracer
}

// NewQuotationSearchUseCase creates a QuotationSearchUseCase. cache may be nil.
// If config is nil, default values are used.
func NewQuotationSearchUseCase(provider domain.QuotationProvider, cache domain.SearchCache, config *Config) QuotationSearchUseCase {
	return &quotationSearchUseCase{
		provider: provider,
		cache:    cache,
		cfg:      mergeConfig(config),
		tracer:   otel.Tracer("fare-quotation/usecase"),
	}
}

// Search implements QuotationSearchUseCase.Search.
// The cache holds the unfiltered, price-sorted upstream result so that every
// filter combination of the same criteria is served from one entry.
func (uc *quotationSearchUseCase) Search(ctx context.Context, criteria domain.SearchCriteria, opts SearchOptions) (*domain.SearchResponse, error) {
	startTime := time.Now()

	criteria.SetDefaults()
	if err := criteria.Validate(); err != nil {
		return nil, err
	}
	if err := validateFilters(opts.Filters); err != nil {
		return nil, err
	}

	ctx, span := uc.tracer.Start(ctx, "usecase.Search")
	defer span.End()
	span.SetAttributes(
		attribute.String("route", criteria.Origin+"-"+criteria.Destination),
		attribute.String("departure_date", criteria.DepartureDate),
		attribute.Int("passengers", criteria.TotalPassengers()),
	)

	ctx, cancel := context.WithTimeout(ctx, uc.cfg.SearchTimeout)
	defer cancel()

	log := logger.FromContext(ctx)
	key := criteria.CacheKey()

	if base, ok := uc.fromCache(ctx, key); ok {
		span.AddEvent("search.cache.hit")
		return finishResponse(base, opts, startTime, true), nil
	}
	span.AddEvent("search.cache.miss")

	result, err := uc.provider.Search(ctx, criteria)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !domain.IsUpstreamTimeout(err) {
			err = fmt.Errorf("%w: %v", domain.ErrUpstreamTimeout, err)
		}
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "upstream search failed")
		return nil, err
	}

	base := domain.NewSearchResponse(criteria, SortQuotations(result.Quotations, domain.SortByPrice), domain.SearchMetadata{
		SearchID:        result.SearchID,
		UpstreamResults: result.UpstreamCount,
	})

	if uc.cache != nil && uc.cfg.CacheTTL > 0 {
		if err := uc.cache.Set(ctx, key, &base, uc.cfg.CacheTTL); err != nil {
			span.RecordError(err)
			log.Warn().Err(err).Str("cache_key", key).Msg("failed to cache search result")
		}
	}

	resp := finishResponse(&base, opts, startTime, false)
	log.WithSearchID(resp.Metadata.SearchID).Info().
		Int("upstream_results", resp.Metadata.UpstreamResults).
		Int("results", resp.Metadata.TotalResults).
		Int64("duration_ms", resp.Metadata.SearchTimeMs).
		Msg("search completed")

	return resp, nil
}

func (uc *quotationSearchUseCase) fromCache(ctx context.Context, key string) (*domain.SearchResponse, bool) {
	if uc.cache == nil || uc.cfg.CacheTTL <= 0 {
		return nil, false
	}

	cached, err := uc.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.FromContext(ctx).Warn().Err(err).Str("cache_key", key).Msg("search cache lookup failed")
		}
		return nil, false
	}
	return cached, cached != nil
}

// finishResponse applies the caller's filters and sort to an unfiltered base.
func finishResponse(base *domain.SearchResponse, opts SearchOptions, startTime time.Time, cacheHit bool) *domain.SearchResponse {
	sortBy := opts.SortBy
	if !sortBy.IsValid() {
		sortBy = domain.SortByPrice
	}

	quotations := SortQuotations(ApplyFilters(base.Quotations, opts.Filters), sortBy)
	metadata := base.Metadata
	metadata.SearchTimeMs = time.Since(startTime).Milliseconds()
	metadata.CacheHit = cacheHit

	resp := domain.NewSearchResponse(base.SearchCriteria, quotations, metadata)
	return &resp
}

// Ensure quotationSearchUseCase implements QuotationSearchUseCase at compile time.
var _ QuotationSearchUseCase = (*quotationSearchUseCase)(nil)
