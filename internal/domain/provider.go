package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=provider.go -destination=mock_provider.go -package=domain

// QuoteRef identifies one quotation of a previous upstream search.
type QuoteRef struct {
	SearchID    string `json:"searchId"`
	QuotationID string `json:"quotationId"`
}

// QuotationProvider is the port to the upstream GDS.
// Implementations normalize upstream payloads into domain quotations.
type QuotationProvider interface {
	// Name returns the unique identifier for this provider (e.g., "glas").
	Name() string

	// Search runs a fare search. A response without a quotation list yields an
	// empty result, not an error. Records flagged as errors upstream are skipped.
	Search(ctx context.Context, criteria SearchCriteria) (SearchResult, error)

	// QuotationDetail retrieves one quotation with its priced passenger fares and
	// penalties. Returns ErrQuotationNotFound when the upstream does not know it.
	QuotationDetail(ctx context.Context, ref QuoteRef) (Quotation, error)
}

// SearchCache stores search responses keyed by SearchCriteria.CacheKey.
type SearchCache interface {
	// Get returns ErrCacheMiss when nothing is stored under key.
	Get(ctx context.Context, key string) (*SearchResponse, error)

	// Set stores resp under key. A non-positive ttl disables caching.
	Set(ctx context.Context, key string, resp *SearchResponse, ttl time.Duration) error
}

// BookingRepository persists bookings together with their quotation snapshot.
type BookingRepository interface {
	Save(ctx context.Context, b *Booking) error

	// Get returns ErrBookingNotFound when no booking has the given id.
	Get(ctx context.Context, id string) (*Booking, error)
}
