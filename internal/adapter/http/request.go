// Package http provides the HTTP handler layer for the fare quotation API.
// It handles request parsing, validation, and response formatting.
package http

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/luckytour/fare-quotation-service/internal/usecase"
)

// SearchQuotationsRequest represents the request body for a fare search.
type SearchQuotationsRequest struct {
	// Origin is the IATA airport or city code of departure (e.g., "BUE")
	Origin string `json:"origin"`

	// Destination is the IATA airport or city code of arrival (e.g., "MIA")
	Destination string `json:"destination"`

	// DepartureDate is the outbound date in YYYY-MM-DD format
	DepartureDate string `json:"departureDate"`

	// ReturnDate is the inbound date in YYYY-MM-DD format; omit for one-way
	ReturnDate string `json:"returnDate,omitempty"`

	// Adults is the number of adult passengers (default 1)
	Adults int `json:"adults"`

	Children int `json:"children"`
	Infants  int `json:"infants"`

	// Filters contains optional filtering criteria
	Filters *FilterDTO `json:"filters,omitempty"`

	// SortBy specifies how to sort results: price, duration, departure
	SortBy string `json:"sortBy,omitempty"`
}

// FilterDTO represents optional filters for a fare search.
// Example: {"maxPrice": 1500, "maxStops": 1, "carriers": ["AR","LA"], "departureTimeRange": {"start": "06:00", "end": "12:00"}}
type FilterDTO struct {
	// MaxPrice filters quotations with a sell price above this amount
	MaxPrice *float64 `json:"maxPrice,omitempty" example:"1500"`

	// MaxStops filters quotations with more stops than this value (0 = direct only)
	MaxStops *int `json:"maxStops,omitempty" example:"1"`

	// Carriers restricts results to these validating carrier codes
	Carriers []string `json:"carriers,omitempty" example:"AR,LA"`

	// DepartureTimeRange filters quotations whose outbound departs within a time window
	DepartureTimeRange *TimeRangeDTO `json:"departureTimeRange,omitempty"`

	// DurationRange filters quotations by total duration in minutes
	DurationRange *DurationRangeDTO `json:"durationRange,omitempty"`
}

// TimeRangeDTO represents a time window for filtering.
type TimeRangeDTO struct {
	// Start is the beginning of the time range (HH:MM format, e.g., "06:00")
	Start string `json:"start"`

	// End is the end of the time range (HH:MM format, e.g., "12:00")
	End string `json:"end"`
}

// DurationRangeDTO represents a duration range filter in minutes.
type DurationRangeDTO struct {
	MinMinutes *int `json:"minMinutes,omitempty" example:"300"`
	MaxMinutes *int `json:"maxMinutes,omitempty" example:"900"`
}

// QuoteOptionDTO references one quotation of a previous search.
type QuoteOptionDTO struct {
	SearchID    string `json:"searchId" example:"5f1c0a"`
	QuotationID string `json:"quotationId" example:"Q-1"`
}

// QuoteRequest is the body of the quote endpoints.
type QuoteRequest struct {
	// Options are the quotations to include, 1 to 5
	Options []QuoteOptionDTO `json:"options"`

	// Seller is the key of the agent printed in the document footer
	Seller string `json:"seller,omitempty" example:"ventas"`
}

// PricingLineDTO is one net passenger-fare line to price.
type PricingLineDTO struct {
	PassengerType      string  `json:"passengerType" example:"ADT"`
	Quantity           int     `json:"quantity" example:"2"`
	NetAmount          float64 `json:"netAmount" example:"1000"`
	FareType           string  `json:"fareType" example:"PUB"`
	OverrideCommission float64 `json:"overrideCommission" example:"200"`
}

// PricingRequest is the body of POST /api/v1/pricing.
type PricingRequest struct {
	// Currency labels the price lines (default USD)
	Currency string           `json:"currency,omitempty" example:"USD"`
	Lines    []PricingLineDTO `json:"lines"`
}

// PassengerDTO is one traveller of a booking request.
type PassengerDTO struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Type           string `json:"type" example:"ADT"`
	DocumentNumber string `json:"documentNumber,omitempty"`
	BirthDate      string `json:"birthDate,omitempty"`
}

// ContactDTO is the client contact of a booking request.
type ContactDTO struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// CreateBookingRequest is the body of POST /api/v1/bookings.
type CreateBookingRequest struct {
	PNR         string         `json:"pnr" example:"ABC123"`
	OrderID     string         `json:"orderId,omitempty"`
	SearchID    string         `json:"searchId"`
	QuotationID string         `json:"quotationId"`
	Passengers  []PassengerDTO `json:"passengers"`
	Contact     ContactDTO     `json:"contact"`
	Seller      string         `json:"seller,omitempty"`
}

// Validation regex patterns.
var (
	locationCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)
	datePattern         = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern         = regexp.MustCompile(`^\d{2}:\d{2}$`)
	pnrPattern          = regexp.MustCompile(`^[A-Z0-9]{5,8}$`)
)

// Valid sort options.
var validSortOptions = map[string]bool{
	"price":     true,
	"duration":  true,
	"departure": true,
	"":          true, // defaults to price
}

var validPassengerTypes = map[string]bool{
	"ADT": true,
	"CHD": true,
	"CNN": true,
	"INF": true,
	"":    true, // defaults to ADT
}

// ValidationError represents a field-level validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors holds multiple validation errors.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}
	return v.Errors[0].Message
}

// Add adds a validation error.
func (v *ValidationErrors) Add(field, message string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// ToMap converts validation errors to a map for API response.
func (v *ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v.Errors))
	for _, e := range v.Errors {
		result[e.Field] = e.Message
	}
	return result
}

func (v *ValidationErrors) orNil() error {
	if v.HasErrors() {
		return v
	}
	return nil
}

// Validate validates the search request and normalizes codes to uppercase.
func (r *SearchQuotationsRequest) Validate() error {
	errs := &ValidationErrors{}

	r.Origin = validateLocation(errs, "origin", r.Origin)
	r.Destination = validateLocation(errs, "destination", r.Destination)
	if r.Origin != "" && r.Origin == r.Destination {
		errs.Add("destination", "origin and destination must be different")
	}

	departure, depOK := validateDate(errs, "departureDate", r.DepartureDate, true)
	if ret, ok := validateDate(errs, "returnDate", r.ReturnDate, false); ok && depOK && ret.Before(departure) {
		errs.Add("returnDate", "returnDate must not be before departureDate")
	}

	r.validatePassengers(errs)

	if !validSortOptions[strings.ToLower(r.SortBy)] {
		errs.Add("sortBy", "sortBy must be one of: price, duration, departure")
	}

	r.validateFilters(errs)

	return errs.orNil()
}

func validateLocation(errs *ValidationErrors, field, value string) string {
	if value == "" {
		errs.Add(field, field+" is required")
		return value
	}
	code := strings.ToUpper(strings.TrimSpace(value))
	if !locationCodePattern.MatchString(code) {
		errs.Add(field, field+" must be a valid 3-letter IATA code")
		return value
	}
	return code
}

func validateDate(errs *ValidationErrors, field, value string, required bool) (time.Time, bool) {
	if value == "" {
		if required {
			errs.Add(field, field+" is required")
		}
		return time.Time{}, false
	}
	if !datePattern.MatchString(value) {
		errs.Add(field, field+" must be in YYYY-MM-DD format")
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		errs.Add(field, field+" is not a valid date")
		return time.Time{}, false
	}
	return t, true
}

func (r *SearchQuotationsRequest) validatePassengers(errs *ValidationErrors) {
	adults := r.Adults
	if adults == 0 {
		adults = 1
	}
	switch {
	case adults < 0:
		errs.Add("adults", "adults must be at least 1")
	case r.Children < 0:
		errs.Add("children", "children cannot be negative")
	case r.Infants < 0:
		errs.Add("infants", "infants cannot be negative")
	case r.Infants > adults:
		errs.Add("infants", "infants cannot exceed adults")
	case adults+r.Children+r.Infants > 9:
		errs.Add("adults", "passengers cannot exceed 9")
	}
}

func (r *SearchQuotationsRequest) validateFilters(errs *ValidationErrors) {
	if r.Filters == nil {
		return
	}

	if r.Filters.MaxPrice != nil && *r.Filters.MaxPrice < 0 {
		errs.Add("filters.maxPrice", "maxPrice must be a positive number")
	}

	if r.Filters.MaxStops != nil && *r.Filters.MaxStops < 0 {
		errs.Add("filters.maxStops", "maxStops must be a non-negative number")
	}

	for i, carrier := range r.Filters.Carriers {
		normalized := strings.ToUpper(strings.TrimSpace(carrier))
		if len(normalized) != 2 {
			errs.Add(fmt.Sprintf("filters.carriers[%d]", i), "carrier code must be 2 characters")
		}
		r.Filters.Carriers[i] = normalized
	}

	if tr := r.Filters.DepartureTimeRange; tr != nil {
		validateTimeRange(errs, "filters.departureTimeRange", tr)
	}

	if dr := r.Filters.DurationRange; dr != nil {
		if dr.MinMinutes != nil && *dr.MinMinutes < 0 {
			errs.Add("filters.durationRange.minMinutes", "minMinutes must be a non-negative number")
		}
		if dr.MaxMinutes != nil && *dr.MaxMinutes < 0 {
			errs.Add("filters.durationRange.maxMinutes", "maxMinutes must be a non-negative number")
		}
		if dr.MinMinutes != nil && dr.MaxMinutes != nil && *dr.MinMinutes > *dr.MaxMinutes {
			errs.Add("filters.durationRange", "minMinutes must be less than or equal to maxMinutes")
		}
	}
}

func validateTimeRange(errs *ValidationErrors, field string, tr *TimeRangeDTO) {
	if tr.Start == "" {
		errs.Add(field+".start", "start time is required when a time range is specified")
	} else if !isValidTimeFormat(tr.Start) {
		errs.Add(field+".start", "start must be in HH:MM format with valid hours (00-23) and minutes (00-59)")
	}

	if tr.End == "" {
		errs.Add(field+".end", "end time is required when a time range is specified")
	} else if !isValidTimeFormat(tr.End) {
		errs.Add(field+".end", "end must be in HH:MM format with valid hours (00-23) and minutes (00-59)")
	}
}

// isValidTimeFormat validates that a time string is in HH:MM format with valid values.
func isValidTimeFormat(timeStr string) bool {
	if !timePattern.MatchString(timeStr) {
		return false
	}
	_, err := time.Parse("15:04", timeStr)
	return err == nil
}

// Validate checks the option count and references.
func (r *QuoteRequest) Validate() error {
	errs := &ValidationErrors{}

	switch {
	case len(r.Options) == 0:
		errs.Add("options", "at least one option is required")
	case len(r.Options) > usecase.MaxQuoteOptions:
		errs.Add("options", fmt.Sprintf("at most %d options are allowed", usecase.MaxQuoteOptions))
	}

	for i := range r.Options {
		r.Options[i].QuotationID = strings.TrimSpace(r.Options[i].QuotationID)
		if r.Options[i].QuotationID == "" {
			errs.Add(fmt.Sprintf("options[%d].quotationId", i), "quotationId is required")
		}
	}

	return errs.orNil()
}

// Validate checks every pricing line.
func (r *PricingRequest) Validate() error {
	errs := &ValidationErrors{}

	if len(r.Lines) == 0 {
		errs.Add("lines", "at least one line is required")
	}
	for i, l := range r.Lines {
		field := fmt.Sprintf("lines[%d]", i)
		if math.IsNaN(l.NetAmount) || math.IsInf(l.NetAmount, 0) || l.NetAmount < 0 {
			errs.Add(field+".netAmount", "netAmount must be a non-negative number")
		}
		if l.Quantity < 0 {
			errs.Add(field+".quantity", "quantity cannot be negative")
		}
		if !validPassengerTypes[strings.ToUpper(l.PassengerType)] {
			errs.Add(field+".passengerType", "passengerType must be one of: ADT, CHD, CNN, INF")
		}
	}

	return errs.orNil()
}

// Validate checks the booking request and normalizes the PNR.
func (r *CreateBookingRequest) Validate() error {
	errs := &ValidationErrors{}

	r.PNR = strings.ToUpper(strings.TrimSpace(r.PNR))
	switch {
	case r.PNR == "":
		errs.Add("pnr", "pnr is required")
	case !pnrPattern.MatchString(r.PNR):
		errs.Add("pnr", "pnr must be 5 to 8 letters or digits")
	}

	if strings.TrimSpace(r.QuotationID) == "" {
		errs.Add("quotationId", "quotationId is required")
	}

	if len(r.Passengers) == 0 {
		errs.Add("passengers", "at least one passenger is required")
	}
	for i, p := range r.Passengers {
		field := fmt.Sprintf("passengers[%d]", i)
		if strings.TrimSpace(p.FirstName) == "" {
			errs.Add(field+".firstName", "firstName is required")
		}
		if strings.TrimSpace(p.LastName) == "" {
			errs.Add(field+".lastName", "lastName is required")
		}
		if !validPassengerTypes[strings.ToUpper(p.Type)] {
			errs.Add(field+".type", "type must be one of: ADT, CHD, CNN, INF")
		}
	}

	if r.Contact.Email != "" && !strings.Contains(r.Contact.Email, "@") {
		errs.Add("contact.email", "email is not valid")
	}

	return errs.orNil()
}
