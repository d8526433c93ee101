package usecase

import (
	"github.com/luckytour/fare-quotation-service/internal/domain"
)

// ApplyFilters returns the quotations that match every filter criterion.
//
// Behavior:
//   - Returns the original slice if opts is nil (no filtering)
//   - Nil/empty filter values are skipped
//   - Does NOT mutate the original slice
func ApplyFilters(quotations []domain.Quotation, opts *domain.FilterOptions) []domain.Quotation {
	if opts == nil {
		return quotations
	}

	result := make([]domain.Quotation, 0, len(quotations))
	for _, q := range quotations {
		if opts.MatchesQuotation(q) {
			result = append(result, q)
		}
	}
	return result
}

// validateFilters rejects filter values that can never match.
func validateFilters(opts *domain.FilterOptions) error {
	if opts == nil {
		return nil
	}
	if opts.MaxStops != nil && *opts.MaxStops < 0 {
		return domain.NewValidationError("maxStops", "cannot be negative")
	}
	if opts.MaxPrice != nil && *opts.MaxPrice < 0 {
		return domain.NewValidationError("maxPrice", "cannot be negative")
	}
	if !opts.DurationRange.IsValid() {
		return domain.NewValidationError("durationRange", "min must not exceed max and values must not be negative")
	}
	return nil
}
