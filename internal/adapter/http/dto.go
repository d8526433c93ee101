package http

import (
	"fmt"
	"time"

	"github.com/luckytour/fare-quotation-service/internal/domain"
)

// SearchResponseDTO is the data transfer object for search responses.
// It matches the expected API output format with snake_case fields.
type SearchResponseDTO struct {
	SearchCriteria SearchCriteriaDTO `json:"search_criteria"`
	Metadata       MetadataDTO       `json:"metadata"`
	Quotations     []QuotationDTO    `json:"quotations"`
}

// SearchCriteriaDTO represents the search criteria in the response.
type SearchCriteriaDTO struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departure_date"`
	ReturnDate    string `json:"return_date,omitempty"`
	TripType      string `json:"trip_type"`
	Adults        int    `json:"adults"`
	Children      int    `json:"children"`
	Infants       int    `json:"infants"`
}

// MetadataDTO contains metadata about the search execution.
type MetadataDTO struct {
	SearchID        string `json:"search_id,omitempty"`
	TotalResults    int    `json:"total_results"`
	UpstreamResults int    `json:"upstream_results"`
	SearchTimeMs    int64  `json:"search_time_ms"`
	CacheHit        bool   `json:"cache_hit"`
}

// QuotationDTO is the data transfer object for one quotation.
type QuotationDTO struct {
	ID             string             `json:"id"`
	SearchID       string             `json:"search_id,omitempty"`
	Carrier        CarrierDTO         `json:"carrier"`
	Price          PriceDTO           `json:"price"`
	Stops          int                `json:"stops"`
	Duration       DurationDTO        `json:"duration"`
	OfferExpiry    *time.Time         `json:"offer_expiry,omitempty"`
	Legs           []LegDTO           `json:"legs"`
	Baggage        BaggageDTO         `json:"baggage"`
	Penalties      *PenaltiesDTO      `json:"penalties"`
	PassengerFares []PassengerFareDTO `json:"passenger_fares,omitempty"`
	Source         string             `json:"source,omitempty"`
}

// CarrierDTO represents the validating carrier.
type CarrierDTO struct {
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
}

// PriceDTO represents price information.
type PriceDTO struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Display  string  `json:"display"`
}

// DurationDTO represents a duration.
type DurationDTO struct {
	TotalMinutes int    `json:"total_minutes"`
	Formatted    string `json:"formatted"`
}

// LegDTO is one directional portion of the trip.
type LegDTO struct {
	Departure        FlightPointDTO `json:"departure"`
	Arrival          FlightPointDTO `json:"arrival"`
	Duration         DurationDTO    `json:"duration"`
	Stops            int            `json:"stops"`
	ConnectingCities []string       `json:"connecting_cities"`
	Segments         []SegmentDTO   `json:"segments"`
}

// FlightPointDTO represents a departure or arrival point.
type FlightPointDTO struct {
	Airport   string `json:"airport"`
	City      string `json:"city,omitempty"`
	DateTime  string `json:"datetime,omitempty"`
	Timestamp int64  `json:"timestamp,omitempty"`
}

// SegmentDTO is one flight of a leg.
type SegmentDTO struct {
	Flight      string `json:"flight"`
	Airline     string `json:"airline"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Departure   string `json:"departure,omitempty"`
	Arrival     string `json:"arrival,omitempty"`
}

// BaggageDTO represents baggage information.
type BaggageDTO struct {
	CabinBag   BaggageItemDTO `json:"cabin_bag"`
	CarryOn    BaggageItemDTO `json:"carry_on"`
	CheckedBag BaggageItemDTO `json:"checked_bag"`
}

// BaggageItemDTO is the decision for one baggage category.
type BaggageItemDTO struct {
	Included bool   `json:"included"`
	Label    string `json:"label"`
}

// PenaltiesDTO holds the four penalty slots; a nil slot means unknown.
type PenaltiesDTO struct {
	ChangeBeforeTravel *PenaltyDTO `json:"change_before_travel"`
	ChangeDuringTravel *PenaltyDTO `json:"change_during_travel"`
	RefundBeforeTravel *PenaltyDTO `json:"refund_before_travel"`
	RefundDuringTravel *PenaltyDTO `json:"refund_during_travel"`
}

// PenaltyDTO is a change or refund condition.
type PenaltyDTO struct {
	Permitted bool    `json:"permitted"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency,omitempty"`
}

// PassengerFareDTO is a priced passenger line.
type PassengerFareDTO struct {
	PassengerType      string  `json:"passenger_type"`
	Quantity           int     `json:"quantity"`
	NetAmount          float64 `json:"net_amount"`
	FareType           string  `json:"fare_type"`
	OverrideCommission float64 `json:"override_commission"`
	SellPrice          float64 `json:"sell_price"`
	Label              string  `json:"label"`
}

// QuoteResponseDTO is the JSON form of a multi-option quote.
type QuoteResponseDTO struct {
	Options []QuotationDTO `json:"options"`
	Seller  SellerDTO      `json:"seller"`
}

// SellerDTO is the agent handling the client.
type SellerDTO struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// PricingResponseDTO is the result of pricing net fare lines.
type PricingResponseDTO struct {
	Currency string             `json:"currency"`
	Lines    []PassengerFareDTO `json:"lines"`
}

// BookingDTO is the JSON form of a recorded booking.
type BookingDTO struct {
	ID            string         `json:"id"`
	PNR           string         `json:"pnr"`
	OrderID       string         `json:"order_id,omitempty"`
	Status        string         `json:"status"`
	SearchID      string         `json:"search_id,omitempty"`
	QuotationID   string         `json:"quotation_id"`
	Origin        string         `json:"origin"`
	Destination   string         `json:"destination"`
	DepartureDate string         `json:"departure_date"`
	ReturnDate    string         `json:"return_date,omitempty"`
	Carrier       string         `json:"carrier"`
	Price         PriceDTO       `json:"price"`
	Adults        int            `json:"adults"`
	Children      int            `json:"children"`
	Infants       int            `json:"infants"`
	Passengers    []PassengerDTO `json:"passengers"`
	Contact       ContactDTO     `json:"contact"`
	Seller        string         `json:"seller,omitempty"`
	Quotation     QuotationDTO   `json:"quotation"`
	CreatedAt     time.Time      `json:"created_at"`
}

const dateTimeLayout = "2006-01-02T15:04:05"

// ToSearchResponseDTO converts a domain SearchResponse to a SearchResponseDTO.
func ToSearchResponseDTO(resp *domain.SearchResponse) *SearchResponseDTO {
	if resp == nil {
		return nil
	}

	criteria := resp.SearchCriteria
	return &SearchResponseDTO{
		SearchCriteria: SearchCriteriaDTO{
			Origin:        criteria.Origin,
			Destination:   criteria.Destination,
			DepartureDate: criteria.DepartureDate,
			ReturnDate:    criteria.ReturnDate,
			TripType:      string(criteria.TripType()),
			Adults:        criteria.Adults,
			Children:      criteria.Children,
			Infants:       criteria.Infants,
		},
		Metadata: MetadataDTO{
			SearchID:        resp.Metadata.SearchID,
			TotalResults:    resp.Metadata.TotalResults,
			UpstreamResults: resp.Metadata.UpstreamResults,
			SearchTimeMs:    resp.Metadata.SearchTimeMs,
			CacheHit:        resp.Metadata.CacheHit,
		},
		Quotations: ToQuotationDTOs(resp.Quotations),
	}
}

// ToQuotationDTOs converts quotations, never returning nil.
func ToQuotationDTOs(quotations []domain.Quotation) []QuotationDTO {
	dtos := make([]QuotationDTO, len(quotations))
	for i := range quotations {
		dtos[i] = ToQuotationDTO(&quotations[i])
	}
	return dtos
}

// ToQuotationDTO converts a domain Quotation to a QuotationDTO.
func ToQuotationDTO(q *domain.Quotation) QuotationDTO {
	dto := QuotationDTO{
		ID:       q.ID,
		SearchID: q.SearchID,
		Carrier: CarrierDTO{
			Code:        q.ValidatingCarrier,
			Description: q.CarrierDescription,
		},
		Price:    toPriceDTO(q.SellPriceAmount, q.Currency),
		Stops:    q.StopCount,
		Duration: toDurationDTO(q.TotalDurationMinutes()),
		Legs:     make([]LegDTO, len(q.Legs)),
		Baggage: BaggageDTO{
			CabinBag:   BaggageItemDTO(q.Baggage.CabinBag),
			CarryOn:    BaggageItemDTO(q.Baggage.CarryOn),
			CheckedBag: BaggageItemDTO(q.Baggage.CheckedBag),
		},
		Penalties: toPenaltiesDTO(q.Penalties),
		Source:    q.Source,
	}

	if !q.OfferExpiry.IsZero() {
		expiry := q.OfferExpiry
		dto.OfferExpiry = &expiry
	}

	for i, leg := range q.Legs {
		dto.Legs[i] = toLegDTO(leg)
	}

	if len(q.PassengerFares) > 0 {
		dto.PassengerFares = toPassengerFareDTOs(q.PassengerFares)
	}

	return dto
}

func toLegDTO(leg domain.ItineraryLeg) LegDTO {
	dto := LegDTO{
		Departure:        toFlightPoint(leg.Origin, leg.OriginCity, leg.Departure),
		Arrival:          toFlightPoint(leg.Destination, leg.DestinationCity, leg.Arrival),
		Duration:         toDurationDTO(leg.DurationMinutes),
		Stops:            leg.StopCount,
		ConnectingCities: leg.ConnectingCities,
		Segments:         make([]SegmentDTO, len(leg.Segments)),
	}
	if dto.ConnectingCities == nil {
		dto.ConnectingCities = []string{}
	}
	for i, s := range leg.Segments {
		dto.Segments[i] = SegmentDTO{
			Flight:      s.Designator(),
			Airline:     s.AirlineCode,
			Origin:      s.OriginAirport,
			Destination: s.DestinationAirport,
			Departure:   formatDateTime(s.Departure),
			Arrival:     formatDateTime(s.Arrival),
		}
	}
	return dto
}

func toFlightPoint(airport, city string, t time.Time) FlightPointDTO {
	point := FlightPointDTO{Airport: airport, City: city}
	if !t.IsZero() {
		point.DateTime = t.Format(dateTimeLayout)
		point.Timestamp = t.Unix()
	}
	return point
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateTimeLayout)
}

func toPriceDTO(amount float64, currency string) PriceDTO {
	return PriceDTO{
		Amount:   amount,
		Currency: currency,
		Display:  currency + " " + domain.FormatAmount(amount),
	}
}

// toDurationDTO formats minutes as "13h 5m".
func toDurationDTO(minutes int) DurationDTO {
	return DurationDTO{
		TotalMinutes: minutes,
		Formatted:    fmt.Sprintf("%dh %dm", minutes/60, minutes%60),
	}
}

func toPenaltiesDTO(p *domain.PenaltySet) *PenaltiesDTO {
	if p == nil {
		return nil
	}
	return &PenaltiesDTO{
		ChangeBeforeTravel: toPenaltyDTO(p.ChangeBeforeTravel),
		ChangeDuringTravel: toPenaltyDTO(p.ChangeDuringTravel),
		RefundBeforeTravel: toPenaltyDTO(p.RefundBeforeTravel),
		RefundDuringTravel: toPenaltyDTO(p.RefundDuringTravel),
	}
}

func toPenaltyDTO(r *domain.PenaltyRule) *PenaltyDTO {
	if r == nil {
		return nil
	}
	return &PenaltyDTO{Permitted: r.Permitted, Amount: r.Amount, Currency: r.Currency}
}

func toPassengerFareDTOs(fares []domain.PassengerFare) []PassengerFareDTO {
	dtos := make([]PassengerFareDTO, len(fares))
	for i, f := range fares {
		dtos[i] = PassengerFareDTO{
			PassengerType:      string(f.PassengerType),
			Quantity:           f.Quantity,
			NetAmount:          f.Net.NetAmount,
			FareType:           string(f.Net.FareType),
			OverrideCommission: f.Net.OverrideCommission,
			SellPrice:          f.SellPrice.Amount,
			Label:              f.Label,
		}
	}
	return dtos
}

// ToQuoteResponseDTO converts quote options and the resolved seller.
func ToQuoteResponseDTO(quotations []domain.Quotation, seller domain.Seller) *QuoteResponseDTO {
	return &QuoteResponseDTO{
		Options: ToQuotationDTOs(quotations),
		Seller:  SellerDTO(seller),
	}
}

// ToPricingResponseDTO converts priced lines.
func ToPricingResponseDTO(currency string, fares []domain.PassengerFare) *PricingResponseDTO {
	return &PricingResponseDTO{
		Currency: currency,
		Lines:    toPassengerFareDTOs(fares),
	}
}

// ToBookingDTO converts a domain Booking to a BookingDTO.
func ToBookingDTO(b *domain.Booking) *BookingDTO {
	passengers := make([]PassengerDTO, len(b.Passengers))
	for i, p := range b.Passengers {
		passengers[i] = PassengerDTO{
			FirstName:      p.FirstName,
			LastName:       p.LastName,
			Type:           string(p.Type),
			DocumentNumber: p.DocumentNumber,
			BirthDate:      p.BirthDate,
		}
	}

	return &BookingDTO{
		ID:            b.ID,
		PNR:           b.PNR,
		OrderID:       b.OrderID,
		Status:        string(b.Status),
		SearchID:      b.SearchID,
		QuotationID:   b.QuotationID,
		Origin:        b.Origin,
		Destination:   b.Destination,
		DepartureDate: b.DepartureDate,
		ReturnDate:    b.ReturnDate,
		Carrier:       b.Carrier,
		Price:         toPriceDTO(b.SellPriceAmount, b.Currency),
		Adults:        b.Adults,
		Children:      b.Children,
		Infants:       b.Infants,
		Passengers:    passengers,
		Contact:       ContactDTO(b.Contact),
		Seller:        b.Seller,
		Quotation:     ToQuotationDTO(&b.Quotation),
		CreatedAt:     b.CreatedAt,
	}
}
