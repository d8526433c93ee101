package domain

import (
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FareType classifies how a fare was filed by the wholesaler.
type FareType string

// Known fare types. Any other upstream code is carried through as-is.
const (
	// FareTypePublished is a public tariff on which the agency may receive over-commission.
	FareTypePublished FareType = "PUB"

	// FareTypeNegotiated is a private net tariff that is always marked up.
	FareTypeNegotiated FareType = "PNEG"
)

// ParseFareType normalizes an upstream fare-type code.
// Empty input defaults to FareTypePublished.
func ParseFareType(s string) FareType {
	code := strings.ToUpper(strings.TrimSpace(s))
	switch code {
	case "", "PUB", "PUBLISHED", "PUBLIC":
		return FareTypePublished
	case "PNEG", "NEG", "NEGOTIATED", "PRIVATE":
		return FareTypeNegotiated
	default:
		return FareType(code)
	}
}

// markupCommissionCeiling is the highest over-commission still priced on the markup branch.
const markupCommissionCeiling = 50

// roundingStep is the multiple every sell price is rounded to.
const roundingStep = 5

// NetFareInput is one priced passenger-fare line as received from the wholesaler.
type NetFareInput struct {
	NetAmount          float64  `json:"netAmount"`
	FareType           FareType `json:"fareType"`
	OverrideCommission float64  `json:"overrideCommission"`
}

// SellPrice is the client-facing amount derived from a NetFareInput.
type SellPrice struct {
	Amount float64 `json:"amount"`
}

// CalculatePrice derives the sell price for a net fare.
//
// Negotiated fares and fares with an over-commission up to 50 are marked up:
// net plus the FeeTable fee, rounded up to a multiple of 5. Any other fare is
// discounted: net minus the DiscountTable discount, rounded down to a multiple
// of 5. The result never goes below zero.
func CalculatePrice(in NetFareInput) (SellPrice, error) {
	if math.IsNaN(in.NetAmount) || math.IsInf(in.NetAmount, 0) {
		return SellPrice{}, NewValidationError("netAmount", "must be a finite number")
	}
	if in.NetAmount < 0 {
		return SellPrice{}, NewValidationError("netAmount", "must not be negative")
	}

	var amount float64
	if in.FareType == FareTypeNegotiated || in.OverrideCommission <= markupCommissionCeiling {
		amount = RoundUpToMultipleOf5(in.NetAmount + Fee(in.NetAmount))
	} else {
		amount = RoundDownToMultipleOf5(in.NetAmount - Discount(in.OverrideCommission))
	}

	if amount < 0 {
		amount = 0
	}
	return SellPrice{Amount: amount}, nil
}

// RoundUpToMultipleOf5 returns ceil(x/5)*5.
func RoundUpToMultipleOf5(x float64) float64 {
	return math.Ceil(x/roundingStep) * roundingStep
}

// RoundDownToMultipleOf5 returns floor(x/5)*5.
func RoundDownToMultipleOf5(x float64) float64 {
	return math.Floor(x/roundingStep) * roundingStep
}

// PassengerType is an upstream passenger type code (ADT, CHD, CNN, INF).
type PassengerType string

// Passenger type codes used by the GDS.
const (
	PassengerAdult  PassengerType = "ADT"
	PassengerChild  PassengerType = "CHD"
	PassengerMinor  PassengerType = "CNN"
	PassengerInfant PassengerType = "INF"
)

// Label returns the client-facing label used in price lines and documents.
func (p PassengerType) Label() string {
	switch PassengerType(strings.ToUpper(string(p))) {
	case PassengerAdult, "":
		return "adulto"
	case PassengerChild, PassengerMinor:
		return "menor"
	case PassengerInfant:
		return "infante"
	default:
		return strings.ToLower(string(p))
	}
}

// FormatAmount renders a whole amount with thousands separators ("1,035").
func FormatAmount(amount float64) string {
	return message.NewPrinter(language.English).Sprintf("%d", int64(math.Round(amount)))
}

// FormatPriceLine renders a price for display.
//
//   - one passenger in total:          "USD 1,035"
//   - the current type counts several: "USD 525 cada adulto"
//   - otherwise:                       "USD 300 menor"
func FormatPriceLine(currency string, amount float64, typeLabel string, count, totalPassengers int) string {
	base := currency + " " + FormatAmount(amount)
	switch {
	case totalPassengers == 1:
		return base
	case count > 1:
		return base + " cada " + typeLabel
	default:
		return base + " " + typeLabel
	}
}

// PassengerFare is a priced passenger-fare line of a quotation.
type PassengerFare struct {
	// PassengerType is the upstream passenger code (ADT, CHD, INF)
	PassengerType PassengerType `json:"passengerType"`

	// Quantity is how many passengers of this type travel
	Quantity int `json:"quantity"`

	// Net is the wholesaler fare line fed to the price calculator
	Net NetFareInput `json:"net"`

	// SellPrice is the per-passenger client price
	SellPrice SellPrice `json:"sellPrice"`

	// Label is the formatted price line (e.g. "USD 525 cada adulto")
	Label string `json:"label"`
}

// PriceFareLines prices every net line and labels it. Lines with a
// non-positive quantity count as one passenger.
func PriceFareLines(currency string, lines []PassengerFare) ([]PassengerFare, error) {
	total := 0
	for _, l := range lines {
		total += quantityOrOne(l.Quantity)
	}

	result := make([]PassengerFare, len(lines))
	for i, l := range lines {
		price, err := CalculatePrice(l.Net)
		if err != nil {
			return nil, err
		}
		l.Quantity = quantityOrOne(l.Quantity)
		l.SellPrice = price
		l.Label = FormatPriceLine(currency, price.Amount, l.PassengerType.Label(), l.Quantity, total)
		result[i] = l
	}
	return result, nil
}

func quantityOrOne(q int) int {
	if q < 1 {
		return 1
	}
	return q
}
