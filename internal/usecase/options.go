// Package usecase orchestrates the GDS port: fare searches with caching,
// filtering and sorting, multi-option quotes and booking records.
package usecase

import (
	"time"

	"github.com/luckytour/fare-quotation-service/internal/domain"
)

// Default timeout values.
const (
	DefaultSearchTimeout = 30 * time.Second
	DefaultQuoteTimeout  = 45 * time.Second
	DefaultCacheTTL      = 5 * time.Minute
)

// MaxQuoteOptions is the largest number of options one quote may carry.
const MaxQuoteOptions = 5

// Config contains configuration options for the use cases.
type Config struct {
	// SearchTimeout bounds one search, cache lookups included
	SearchTimeout time.Duration

	// QuoteTimeout bounds the concurrent detail fetch of a quote or booking
	QuoteTimeout time.Duration

	// CacheTTL is how long search results are cached; 0 disables caching
	CacheTTL time.Duration
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		SearchTimeout: DefaultSearchTimeout,
		QuoteTimeout:  DefaultQuoteTimeout,
		CacheTTL:      DefaultCacheTTL,
	}
}

func mergeConfig(config *Config) Config {
	cfg := DefaultConfig()
	if config == nil {
		return cfg
	}
	if config.SearchTimeout > 0 {
		cfg.SearchTimeout = config.SearchTimeout
	}
	if config.QuoteTimeout > 0 {
		cfg.QuoteTimeout = config.QuoteTimeout
	}
	if config.CacheTTL >= 0 {
		cfg.CacheTTL = config.CacheTTL
	}
	return cfg
}

// SearchOptions contains optional parameters for a fare search.
type SearchOptions struct {
	// Filters contains optional filtering criteria to apply to results
	Filters *domain.FilterOptions

	// SortBy specifies how to sort the results (default: price)
	SortBy domain.SortOption
}

// DefaultSearchOptions returns SearchOptions with sensible defaults.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		Filters: nil,
		SortBy:  domain.SortByPrice,
	}
}
