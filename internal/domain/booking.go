package domain

import (
	"strings"
	"time"
)

// BookingStatus is the lifecycle state this service records for a booking.
// The GDS owns the real reservation state machine; we only track what we created.
type BookingStatus string

// Booking statuses.
const (
	BookingStatusCreated BookingStatus = "CREATED"
)

// Booking is a reservation recorded against a chosen quotation.
type Booking struct {
	// ID is the internal booking identifier (UUID)
	ID string `json:"id"`

	// PNR is the passenger name record locator issued by the GDS
	PNR string `json:"pnr"`

	// OrderID is the GDS order identifier, when informed
	OrderID string `json:"orderId,omitempty"`

	SearchID    string `json:"searchId"`
	QuotationID string `json:"quotationId"`

	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departureDate"`
	ReturnDate    string `json:"returnDate,omitempty"`

	// Carrier is the validating carrier of the chosen quotation
	Carrier string `json:"carrier"`

	SellPriceAmount float64 `json:"sellPriceAmount"`
	Currency        string  `json:"currency"`

	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`

	Status BookingStatus `json:"status"`

	Passengers []BookingPassenger `json:"passengers"`
	Contact    BookingContact     `json:"contact"`

	// Seller is the key of the agent handling the booking
	Seller string `json:"seller,omitempty"`

	// Quotation is the itinerary, baggage and penalty snapshot at booking time.
	// Stores persist it as an opaque JSON blob.
	Quotation Quotation `json:"quotation"`

	CreatedAt time.Time `json:"createdAt"`
}

// BookingPassenger is one traveller of a booking.
type BookingPassenger struct {
	FirstName      string        `json:"firstName"`
	LastName       string        `json:"lastName"`
	Type           PassengerType `json:"type"`
	DocumentNumber string        `json:"documentNumber,omitempty"`
	BirthDate      string        `json:"birthDate,omitempty"`
}

// FullName returns "LAST/FIRST" the way GDS documents print travellers.
func (p BookingPassenger) FullName() string {
	return strings.ToUpper(p.LastName) + "/" + strings.ToUpper(p.FirstName)
}

// BookingContact is the client contact attached to a booking.
type BookingContact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// CountPassengers returns how many passengers of each type the booking carries.
func CountPassengers(passengers []BookingPassenger) (adults, children, infants int) {
	for _, p := range passengers {
		switch PassengerType(strings.ToUpper(string(p.Type))) {
		case PassengerChild, PassengerMinor:
			children++
		case PassengerInfant:
			infants++
		default:
			adults++
		}
	}
	return adults, children, infants
}

// Validate checks the fields a booking needs before it is recorded.
func (b *Booking) Validate() error {
	if strings.TrimSpace(b.PNR) == "" {
		return NewValidationError("pnr", "is required")
	}
	if strings.TrimSpace(b.QuotationID) == "" {
		return NewValidationError("quotationId", "is required")
	}
	if len(b.Passengers) == 0 {
		return NewValidationError("passengers", "at least one passenger is required")
	}
	for _, p := range b.Passengers {
		if strings.TrimSpace(p.FirstName) == "" || strings.TrimSpace(p.LastName) == "" {
			return NewValidationError("passengers", "firstName and lastName are required")
		}
	}
	adults, _, infants := CountPassengers(b.Passengers)
	if adults == 0 {
		return NewValidationError("passengers", "at least one adult is required")
	}
	if infants > adults {
		return NewValidationError("passengers", "infants cannot exceed adults")
	}
	return nil
}
