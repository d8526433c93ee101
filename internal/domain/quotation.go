// Package domain contains the core business entities and rules of the fare quotation service.
// These entities are supplier-agnostic: upstream payloads are normalized into them
// before any filtering, pricing, rendering or persistence happens.
package domain

import "time"

// Quotation is one bookable fare offer with its normalized itinerary.
type Quotation struct {
	// ID is the upstream quotation identifier
	ID string `json:"id"`

	// SearchID is the upstream search the quotation belongs to (when known)
	SearchID string `json:"searchId,omitempty"`

	// ValidatingCarrier is the IATA code of the airline whose rules govern the ticket
	ValidatingCarrier string `json:"validatingCarrier"`

	// CarrierDescription is the upstream human-readable supplier/carrier description
	CarrierDescription string `json:"carrierDescription"`

	// SellPriceAmount is the grand total client price
	SellPriceAmount float64 `json:"sellPriceAmount"`

	// Currency is the ISO 4217 currency of SellPriceAmount
	Currency string `json:"currency"`

	// OfferExpiry is when the upstream offer expires (zero when not informed)
	OfferExpiry time.Time `json:"offerExpiry"`

	// Legs are the directional portions of the trip, in upstream order
	Legs []ItineraryLeg `json:"legs"`

	// StopCount is the maximum stop count over all legs
	StopCount int `json:"stopCount"`

	// Baggage is the canonical baggage allowance summary
	Baggage BaggageAllowance `json:"baggage"`

	// Penalties is nil when the upstream response carried no penalty data
	Penalties *PenaltySet `json:"penalties"`

	// PassengerFares are the priced passenger lines (detail path only)
	PassengerFares []PassengerFare `json:"passengerFares,omitempty"`

	// Source is the upstream source code (GDS or content provider)
	Source string `json:"source"`
}

// TotalDurationMinutes sums the duration of every leg.
func (q Quotation) TotalDurationMinutes() int {
	total := 0
	for _, l := range q.Legs {
		total += l.DurationMinutes
	}
	return total
}

// Departure returns the departure of the first leg, or the zero time.
func (q Quotation) Departure() time.Time {
	if len(q.Legs) == 0 {
		return time.Time{}
	}
	return q.Legs[0].Departure
}

// ItineraryLeg is one directional portion of a trip.
type ItineraryLeg struct {
	// Origin is the IATA code of the first departure airport
	Origin string `json:"origin"`

	// OriginCity is the city name of Origin when the upstream informs it
	OriginCity string `json:"originCity,omitempty"`

	// Destination is the IATA code of the final arrival airport
	Destination string `json:"destination"`

	// DestinationCity is the city name of Destination when the upstream informs it
	DestinationCity string `json:"destinationCity,omitempty"`

	// Departure is the scheduled departure of the leg
	Departure time.Time `json:"departure"`

	// Arrival is the scheduled arrival of the leg
	Arrival time.Time `json:"arrival"`

	// DurationMinutes is the total leg duration including connections
	DurationMinutes int `json:"durationMinutes"`

	// StopCount equals len(ConnectingCities)
	StopCount int `json:"stopCount"`

	// ConnectingCities are the intermediate airport/city codes, in order
	ConnectingCities []string `json:"connectingCities"`

	// Segments are the flights of the leg, in chronological order
	Segments []FlightSegment `json:"segments"`
}

// FlightSegment is a single flight within a leg.
type FlightSegment struct {
	AirlineCode        string    `json:"airlineCode"`
	FlightNumber       string    `json:"flightNumber"`
	OriginAirport      string    `json:"originAirport"`
	DestinationAirport string    `json:"destinationAirport"`
	Departure          time.Time `json:"departure"`
	Arrival            time.Time `json:"arrival"`
}

// Designator returns the marketing flight designator, e.g. "AR1302".
func (s FlightSegment) Designator() string {
	return s.AirlineCode + s.FlightNumber
}

// BaggageAllowance summarizes what the fare includes per baggage category.
type BaggageAllowance struct {
	CabinBag   BaggageItem `json:"cabinBag"`
	CarryOn    BaggageItem `json:"carryOn"`
	CheckedBag BaggageItem `json:"checkedBag"`
}

// BaggageItem is the decision for one baggage category.
type BaggageItem struct {
	Included bool   `json:"included"`
	Label    string `json:"label"`
}

// Baggage labels used when no free allowance entry decides the category.
const (
	BaggageLabelNotInformed   = "not informed"
	BaggageLabelNotIncluded   = "not included"
	BaggageLabelWithSurcharge = "with surcharge"
)

// PenaltyRule is a change or refund condition. A nil *PenaltyRule means unknown.
type PenaltyRule struct {
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Permitted bool    `json:"permitted"`
}

// PenaltySet holds the four canonical penalty slots.
type PenaltySet struct {
	ChangeBeforeTravel *PenaltyRule `json:"changeBeforeTravel"`
	ChangeDuringTravel *PenaltyRule `json:"changeDuringTravel"`
	RefundBeforeTravel *PenaltyRule `json:"refundBeforeTravel"`
	RefundDuringTravel *PenaltyRule `json:"refundDuringTravel"`
}
