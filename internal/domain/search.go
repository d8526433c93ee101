package domain

import (
	"fmt"
	"regexp"
	"time"
)

// TripType distinguishes one-way from round-trip searches.
type TripType string

// Trip types.
const (
	TripOneWay    TripType = "ONE_WAY"
	TripRoundTrip TripType = "ROUND_TRIP"
)

// SearchCriteria defines the parameters for a fare search.
type SearchCriteria struct {
	// Origin is the IATA airport or city code of departure (e.g., "BUE")
	Origin string `json:"origin"`

	// Destination is the IATA airport or city code of arrival (e.g., "MIA")
	Destination string `json:"destination"`

	// DepartureDate is the outbound date in YYYY-MM-DD format
	DepartureDate string `json:"departureDate"`

	// ReturnDate is the inbound date in YYYY-MM-DD format; empty means one-way
	ReturnDate string `json:"returnDate,omitempty"`

	// Adults is the number of adult passengers (default: 1)
	Adults int `json:"adults"`

	// Children is the number of child passengers
	Children int `json:"children"`

	// Infants is the number of infant passengers (lap infants, one per adult)
	Infants int `json:"infants"`
}

// maxPassengers is the largest party the GDS accepts in one search.
const maxPassengers = 9

// dateLayout is the calendar date format used in search criteria.
const dateLayout = "2006-01-02"

// locationCodeRegex matches IATA airport or city codes (3 uppercase letters).
var locationCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// Validate checks if the search criteria is valid.
// Returns a wrapped ErrInvalidRequest error if validation fails.
func (s *SearchCriteria) Validate() error {
	if s.Origin == "" {
		return fmt.Errorf("%w: origin is required", ErrInvalidRequest)
	}
	if !locationCodeRegex.MatchString(s.Origin) {
		return fmt.Errorf("%w: origin must be a valid 3-letter IATA code, got %q", ErrInvalidRequest, s.Origin)
	}

	if s.Destination == "" {
		return fmt.Errorf("%w: destination is required", ErrInvalidRequest)
	}
	if !locationCodeRegex.MatchString(s.Destination) {
		return fmt.Errorf("%w: destination must be a valid 3-letter IATA code, got %q", ErrInvalidRequest, s.Destination)
	}

	if s.Origin == s.Destination {
		return fmt.Errorf("%w: origin and destination must be different", ErrInvalidRequest)
	}

	if s.DepartureDate == "" {
		return fmt.Errorf("%w: departureDate is required", ErrInvalidRequest)
	}
	departure, err := time.Parse(dateLayout, s.DepartureDate)
	if err != nil {
		return fmt.Errorf("%w: departureDate must be a valid YYYY-MM-DD date, got %q", ErrInvalidRequest, s.DepartureDate)
	}

	if s.ReturnDate != "" {
		ret, err := time.Parse(dateLayout, s.ReturnDate)
		if err != nil {
			return fmt.Errorf("%w: returnDate must be a valid YYYY-MM-DD date, got %q", ErrInvalidRequest, s.ReturnDate)
		}
		if ret.Before(departure) {
			return fmt.Errorf("%w: returnDate must not be before departureDate", ErrInvalidRequest)
		}
	}

	if s.Adults < 1 {
		return fmt.Errorf("%w: adults must be at least 1", ErrInvalidRequest)
	}
	if s.Children < 0 || s.Infants < 0 {
		return fmt.Errorf("%w: children and infants cannot be negative", ErrInvalidRequest)
	}
	if s.Infants > s.Adults {
		return fmt.Errorf("%w: infants cannot exceed adults", ErrInvalidRequest)
	}
	if s.TotalPassengers() > maxPassengers {
		return fmt.Errorf("%w: passengers cannot exceed %d", ErrInvalidRequest, maxPassengers)
	}

	return nil
}

// SetDefaults applies default values to empty optional fields.
func (s *SearchCriteria) SetDefaults() {
	if s.Adults == 0 {
		s.Adults = 1
	}
}

// TotalPassengers returns adults + children + infants.
func (s *SearchCriteria) TotalPassengers() int {
	return s.Adults + s.Children + s.Infants
}

// TripType reports whether the search is one-way or round-trip.
func (s *SearchCriteria) TripType() TripType {
	if s.ReturnDate == "" {
		return TripOneWay
	}
	return TripRoundTrip
}

// CacheKey returns a stable key identifying this search.
func (s *SearchCriteria) CacheKey() string {
	return fmt.Sprintf("%s-%s:%s:%s:%d-%d-%d",
		s.Origin, s.Destination, s.DepartureDate, s.ReturnDate, s.Adults, s.Children, s.Infants)
}
