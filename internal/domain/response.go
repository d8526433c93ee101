package domain

// SearchResponse represents the normalized response of a fare search.
type SearchResponse struct {
	// SearchCriteria contains the original search parameters
	SearchCriteria SearchCriteria `json:"search_criteria"`

	// Metadata contains information about the search execution
	Metadata SearchMetadata `json:"metadata"`

	// Quotations contains the quotations after filtering and sorting
	Quotations []Quotation `json:"quotations"`
}

// SearchMetadata contains metadata about the search execution.
type SearchMetadata struct {
	// SearchID is the upstream search identifier (empty when the GDS did not return one)
	SearchID string `json:"search_id,omitempty"`

	// TotalResults is the number of quotations returned
	TotalResults int `json:"total_results"`

	// UpstreamResults is the number of quotation records the GDS returned, before filtering
	UpstreamResults int `json:"upstream_results"`

	// SearchTimeMs is the total search duration in milliseconds
	SearchTimeMs int64 `json:"search_time_ms"`

	// CacheHit indicates whether the results came from cache
	CacheHit bool `json:"cache_hit"`
}

// NewSearchResponse creates a SearchResponse, normalizing a nil quotation list to empty.
func NewSearchResponse(criteria SearchCriteria, quotations []Quotation, metadata SearchMetadata) SearchResponse {
	if quotations == nil {
		quotations = []Quotation{}
	}
	metadata.TotalResults = len(quotations)

	return SearchResponse{
		SearchCriteria: criteria,
		Metadata:       metadata,
		Quotations:     quotations,
	}
}

// SearchResult is what a QuotationProvider returns for one search.
type SearchResult struct {
	// SearchID is the upstream search identifier
	SearchID string

	// Quotations are the normalized, non-error quotation records
	Quotations []Quotation

	// UpstreamCount is the number of raw quotation records received
	UpstreamCount int
}
