package domain

import (
	"strings"
	"time"
)

// SortOption defines the available sorting options for quotation results.
type SortOption string

// Available sort options.
const (
	// SortByPrice sorts by sell price ascending (default)
	SortByPrice SortOption = "price"

	// SortByDuration sorts by total itinerary duration ascending
	SortByDuration SortOption = "duration"

	// SortByDeparture sorts by outbound departure ascending
	SortByDeparture SortOption = "departure"
)

// IsValid checks if the sort option is a valid value.
func (s SortOption) IsValid() bool {
	switch s {
	case SortByPrice, SortByDuration, SortByDeparture:
		return true
	default:
		return false
	}
}

// ParseSortOption converts a string to a SortOption.
// Returns SortByPrice if the string is empty or invalid.
func ParseSortOption(s string) SortOption {
	option := SortOption(strings.ToLower(strings.TrimSpace(s)))
	if option.IsValid() {
		return option
	}
	return SortByPrice
}

// FilterOptions defines optional filters to apply to quotation results.
type FilterOptions struct {
	// MaxStops filters out quotations whose stop count exceeds this value
	// 0 = direct only, 1 = max 1 stop, etc.
	MaxStops *int `json:"maxStops,omitempty"`

	// MaxPrice filters out quotations with a sell price above this amount
	MaxPrice *float64 `json:"maxPrice,omitempty"`

	// Carriers restricts results to these validating carrier codes
	// Empty slice means no filtering by carrier
	Carriers []string `json:"carriers,omitempty"`

	// DepartureTimeRange filters quotations whose outbound departs within this time-of-day window
	DepartureTimeRange *TimeRange `json:"departureTimeRange,omitempty"`

	// DurationRange filters quotations by total duration in minutes
	DurationRange *DurationRange `json:"durationRange,omitempty"`
}

// TimeRange represents a time-of-day window for filtering.
type TimeRange struct {
	// Start is the beginning of the window (inclusive, only hour and minute matter)
	Start time.Time `json:"start"`

	// End is the end of the window (inclusive, only hour and minute matter)
	End time.Time `json:"end"`
}

// Contains checks if the time of day of t falls within the window.
func (tr *TimeRange) Contains(t time.Time) bool {
	if tr == nil {
		return true
	}
	minutes := t.Hour()*60 + t.Minute()
	start := tr.Start.Hour()*60 + tr.Start.Minute()
	end := tr.End.Hour()*60 + tr.End.Minute()

	return minutes >= start && minutes <= end
}

// DurationRange represents a duration range filter.
type DurationRange struct {
	// MinMinutes is the minimum acceptable duration in minutes (inclusive)
	MinMinutes *int `json:"minMinutes,omitempty"`

	// MaxMinutes is the maximum acceptable duration in minutes (inclusive)
	MaxMinutes *int `json:"maxMinutes,omitempty"`
}

// IsValid checks if the duration range is valid.
// Returns false if min > max, or if any values are negative.
func (dr *DurationRange) IsValid() bool {
	if dr == nil {
		return true
	}
	if dr.MinMinutes != nil && *dr.MinMinutes < 0 {
		return false
	}
	if dr.MaxMinutes != nil && *dr.MaxMinutes < 0 {
		return false
	}
	if dr.MinMinutes != nil && dr.MaxMinutes != nil && *dr.MinMinutes > *dr.MaxMinutes {
		return false
	}
	return true
}

// Contains checks if a given duration (in minutes) falls within the range.
func (dr *DurationRange) Contains(durationMinutes int) bool {
	if dr == nil {
		return true
	}
	if dr.MinMinutes != nil && durationMinutes < *dr.MinMinutes {
		return false
	}
	if dr.MaxMinutes != nil && durationMinutes > *dr.MaxMinutes {
		return false
	}
	return true
}

// MatchesQuotation checks if a quotation matches all the filter criteria.
func (f *FilterOptions) MatchesQuotation(q Quotation) bool {
	if f == nil {
		return true
	}

	if f.MaxStops != nil && q.StopCount > *f.MaxStops {
		return false
	}

	if f.MaxPrice != nil && q.SellPriceAmount > *f.MaxPrice {
		return false
	}

	if len(f.Carriers) > 0 {
		found := false
		for _, code := range f.Carriers {
			if strings.EqualFold(code, q.ValidatingCarrier) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if f.DepartureTimeRange != nil && !f.DepartureTimeRange.Contains(q.Departure()) {
		return false
	}

	if f.DurationRange != nil && !f.DurationRange.Contains(q.TotalDurationMinutes()) {
		return false
	}

	return true
}
