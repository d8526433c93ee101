// Package pdf builds the client-facing quote and booking confirmation
// documents and renders them with fpdf.
//
// Building and rendering are separate steps: the document model holds every
// printed string, so its layout rules are testable without parsing PDF output.
package pdf

import (
	"fmt"
	"strings"
	"time"

	"github.com/luckytour/fare-quotation-service/internal/domain"
	"github.com/luckytour/fare-quotation-service/internal/infrastructure/timeutil"
)

// Document titles.
const (
	QuoteTitle   = "COTIZACION"
	BookingTitle = "CONFIRMACION DE RESERVA"
)

// ItineraryLine is one printed leg.
type ItineraryLine struct {
	// Date is the departure day, e.g. "28/mar"
	Date string

	// Route is "Buenos Aires (EZE) → Miami (MIA)"
	Route string

	// Times is "22.40 → 06.15"
	Times string

	// Flights are the segment designators joined by " / "
	Flights string

	// Stops is "directo" or "1 escala (PTY)"
	Stops string
}

// OptionBlock is everything printed for one quotation.
type OptionBlock struct {
	// Title is "OPCION n" when the document carries more than one option
	Title string

	Carrier    string
	Itinerary  []ItineraryLine
	Baggage    []string
	PriceLines []string
	Penalties  []string
	Total      string
}

// QuoteDocument is a multi-option quote.
type QuoteDocument struct {
	Title    string
	IssuedOn string
	Options  []OptionBlock
	Seller   domain.Seller
}

// BookingDocument is the confirmation of a recorded booking.
type BookingDocument struct {
	Title      string
	IssuedOn   string
	PNR        string
	OrderID    string
	Passengers []string
	Contact    string
	Option     OptionBlock
	Seller     domain.Seller
}

// NewQuoteDocument lays out quotations in the given order.
func NewQuoteDocument(quotations []domain.Quotation, seller domain.Seller, issuedAt time.Time) QuoteDocument {
	doc := QuoteDocument{
		Title:    QuoteTitle,
		IssuedOn: timeutil.FormatDocumentDate(issuedAt),
		Options:  make([]OptionBlock, len(quotations)),
		Seller:   seller,
	}
	for i, q := range quotations {
		doc.Options[i] = newOptionBlock(q)
		if len(quotations) > 1 {
			doc.Options[i].Title = fmt.Sprintf("OPCION %d", i+1)
		}
	}
	return doc
}

// NewBookingDocument lays out a booking and its quotation snapshot.
func NewBookingDocument(b *domain.Booking, seller domain.Seller) BookingDocument {
	doc := BookingDocument{
		Title:      BookingTitle,
		IssuedOn:   timeutil.FormatDocumentDate(b.CreatedAt),
		PNR:        b.PNR,
		OrderID:    b.OrderID,
		Passengers: make([]string, len(b.Passengers)),
		Contact:    contactLine(b.Contact),
		Option:     newOptionBlock(b.Quotation),
		Seller:     seller,
	}
	for i, p := range b.Passengers {
		doc.Passengers[i] = fmt.Sprintf("%s (%s)", p.FullName(), p.Type.Label())
	}
	return doc
}

func newOptionBlock(q domain.Quotation) OptionBlock {
	block := OptionBlock{
		Carrier:    carrierLine(q),
		Itinerary:  make([]ItineraryLine, 0, len(q.Legs)),
		Baggage:    baggageLines(q.Baggage),
		PriceLines: priceLines(q),
		Penalties:  penaltyLines(q.Penalties),
		Total:      "TOTAL " + q.Currency + " " + domain.FormatAmount(q.SellPriceAmount),
	}
	for _, leg := range q.Legs {
		block.Itinerary = append(block.Itinerary, itineraryLine(leg))
	}
	return block
}

func itineraryLine(leg domain.ItineraryLeg) ItineraryLine {
	flights := make([]string, 0, len(leg.Segments))
	for _, s := range leg.Segments {
		if d := s.Designator(); d != "" {
			flights = append(flights, d)
		}
	}

	return ItineraryLine{
		Date:    timeutil.FormatFlightDate(leg.Departure),
		Route:   place(leg.OriginCity, leg.Origin) + " → " + place(leg.DestinationCity, leg.Destination),
		Times:   timeutil.FormatFlightHour(leg.Departure) + " → " + timeutil.FormatFlightHour(leg.Arrival),
		Flights: strings.Join(flights, " / "),
		Stops:   stopsLabel(leg),
	}
}

// place renders "City (CODE)", or the bare code when the city is unknown.
func place(city, code string) string {
	if city == "" {
		return code
	}
	return city + " (" + code + ")"
}

func stopsLabel(leg domain.ItineraryLeg) string {
	switch leg.StopCount {
	case 0:
		return "directo"
	case 1:
		return "1 escala" + viaSuffix(leg.ConnectingCities)
	default:
		return fmt.Sprintf("%d escalas", leg.StopCount) + viaSuffix(leg.ConnectingCities)
	}
}

func viaSuffix(cities []string) string {
	if len(cities) == 0 {
		return ""
	}
	return " (" + strings.Join(cities, ", ") + ")"
}

func carrierLine(q domain.Quotation) string {
	if q.CarrierDescription == "" || strings.EqualFold(q.CarrierDescription, q.ValidatingCarrier) {
		return q.ValidatingCarrier
	}
	return q.ValidatingCarrier + " - " + q.CarrierDescription
}

var baggageLabels = map[string]string{
	domain.BaggageLabelNotInformed:   "no informado",
	domain.BaggageLabelNotIncluded:   "no incluido",
	domain.BaggageLabelWithSurcharge: "con cargo",
}

func baggageLines(b domain.BaggageAllowance) []string {
	return []string{
		"Articulo personal: " + baggageLabel(b.CabinBag),
		"Equipaje de mano: " + baggageLabel(b.CarryOn),
		"Equipaje en bodega: " + baggageLabel(b.CheckedBag),
	}
}

func baggageLabel(item domain.BaggageItem) string {
	if item.Included {
		return "incluido " + item.Label
	}
	if label, ok := baggageLabels[item.Label]; ok {
		return label
	}
	return item.Label
}

// priceLines prints the priced passenger lines, or the grand total as a single
// line when the quotation carries no passenger breakdown.
func priceLines(q domain.Quotation) []string {
	if len(q.PassengerFares) == 0 {
		return []string{domain.FormatPriceLine(q.Currency, q.SellPriceAmount, domain.PassengerAdult.Label(), 1, 1)}
	}

	lines := make([]string, 0, len(q.PassengerFares))
	for _, f := range q.PassengerFares {
		label := f.Label
		if label == "" {
			label = domain.FormatPriceLine(q.Currency, f.SellPrice.Amount, f.PassengerType.Label(), f.Quantity, 1)
		}
		lines = append(lines, label)
	}
	return lines
}

func penaltyLines(p *domain.PenaltySet) []string {
	if p == nil {
		return []string{"Penalidades: consultar"}
	}
	return []string{
		"Cambio antes del viaje: " + penaltyLabel(p.ChangeBeforeTravel),
		"Cambio durante el viaje: " + penaltyLabel(p.ChangeDuringTravel),
		"Reembolso antes del viaje: " + penaltyLabel(p.RefundBeforeTravel),
		"Reembolso durante el viaje: " + penaltyLabel(p.RefundDuringTravel),
	}
}

func penaltyLabel(r *domain.PenaltyRule) string {
	switch {
	case r == nil:
		return "consultar"
	case !r.Permitted:
		return "no permitido"
	case r.Amount == 0:
		return "sin cargo"
	default:
		return r.Currency + " " + domain.FormatAmount(r.Amount)
	}
}

func contactLine(c domain.BookingContact) string {
	parts := make([]string, 0, 3)
	for _, v := range []string{c.Name, c.Email, c.Phone} {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " - ")
}
