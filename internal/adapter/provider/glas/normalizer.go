package glas

import (
	"fmt"
	"sort"
	"strings"

	"github.com/luckytour/fare-quotation-service/internal/domain"
	"github.com/luckytour/fare-quotation-service/internal/infrastructure/timeutil"
)

// ProviderName identifies the GDS in logs, errors and quotations.
const ProviderName = "glas"

// DefaultCurrency applies when a quotation does not state its currency.
const DefaultCurrency = "USD"

// DefaultMaxResults is how many non-error records a search keeps.
const DefaultMaxResults = 30

// AssembleOptions tunes NormalizeSearch.
type AssembleOptions struct {
	// MaxResults caps the non-error records assembled; 0 means no cap
	MaxResults int

	// MaxStops drops quotations with more stops; nil means no limit
	MaxStops *int
}

// NormalizeSearch turns a raw search response into price-sorted quotations.
// Error-flagged records are skipped before the MaxResults cap applies; a
// response without a quotation list yields an empty result. Records that
// failed to decode count towards UpstreamCount only.
func NormalizeSearch(resp *SearchResponse, opts AssembleOptions) domain.SearchResult {
	result := domain.SearchResult{Quotations: []domain.Quotation{}}
	if resp == nil {
		return result
	}

	records := resp.Records()
	result.SearchID = resp.SearchID.String()
	result.UpstreamCount = len(records) + resp.Skipped()

	t := tables{legs: resp.Legs, flights: resp.Flights, airports: resp.Airports}
	quotations := make([]domain.Quotation, 0, len(records))
	for _, rec := range records {
		if rec.Error {
			continue
		}
		if opts.MaxResults > 0 && len(quotations) >= opts.MaxResults {
			break
		}
		q := assembleQuotation(rec, t)
		q.SearchID = result.SearchID
		quotations = append(quotations, q)
	}

	result.Quotations = SortByPrice(FilterByMaxStops(quotations, opts.MaxStops))
	return result
}

// NormalizeDetail turns a quotation detail response into one quotation with
// penalties and priced passenger fares.
func NormalizeDetail(resp *DetailResponse, ref domain.QuoteRef) (domain.Quotation, error) {
	if resp == nil {
		return domain.Quotation{}, fmt.Errorf("%w: %s", domain.ErrQuotationNotFound, ref.QuotationID)
	}

	if resp.QuotationMalformed {
		return domain.Quotation{}, fmt.Errorf("%w: %s could not be decoded", domain.ErrQuotationNotFound, ref.QuotationID)
	}

	rec := resp.Quotation
	if rec.Error {
		return domain.Quotation{}, fmt.Errorf("%w: %s is flagged with an upstream error", domain.ErrQuotationNotFound, ref.QuotationID)
	}
	if rec.QuotationID == "" && len(rec.Legs) == 0 {
		return domain.Quotation{}, fmt.Errorf("%w: %s", domain.ErrQuotationNotFound, ref.QuotationID)
	}
	if rec.QuotationID == "" {
		rec.QuotationID = FlexString(ref.QuotationID)
	}

	q := assembleQuotation(rec, tables{legs: resp.Legs, flights: resp.Flights, airports: resp.Airports})
	q.SearchID = firstNonEmpty(resp.SearchID.String(), ref.SearchID)
	q.Penalties = normalizePenalties(selectPenaltyRules(resp.PenaltySource, rec.PenaltySource))

	fareRecords := resp.PassengerFares
	if len(fareRecords) == 0 {
		fareRecords = rec.PassengerFares
	}
	fares, err := domain.PriceFareLines(q.Currency, passengerFares(fareRecords))
	if err != nil {
		return domain.Quotation{}, fmt.Errorf("pricing quotation %s: %w", q.ID, err)
	}
	q.PassengerFares = fares

	return q, nil
}

// assembleQuotation builds one quotation from a non-error record.
func assembleQuotation(rec QuotationRecord, t tables) domain.Quotation {
	carrier := strings.TrimSpace(rec.ValidatingCarrier)
	legs := normalizeLegs(rec.Legs, carrier, t)

	stops := 0
	for _, l := range legs {
		if l.StopCount > stops {
			stops = l.StopCount
		}
	}

	expiry, _ := timeutil.ParseUpstream(rec.OfferExpirationTimeCTZ)

	return domain.Quotation{
		ID:                 rec.QuotationID.String(),
		ValidatingCarrier:  carrier,
		CarrierDescription: firstNonEmpty(rec.SourceDescription, rec.Source),
		SellPriceAmount:    float64(rec.GrandTotalSellingPriceAmount),
		Currency:           firstNonEmpty(strings.TrimSpace(rec.GrandTotalSellingPriceCurrency), DefaultCurrency),
		OfferExpiry:        expiry,
		Legs:               legs,
		StopCount:          stops,
		Baggage:            normalizeBaggage(rec.Baggage()),
		Penalties:          normalizePenalties(selectPenaltyRules(rec.PenaltySource)),
		Source:             rec.Source,
	}
}

func passengerFares(records []PassengerFareRecord) []domain.PassengerFare {
	fares := make([]domain.PassengerFare, 0, len(records))
	for _, r := range records {
		fares = append(fares, domain.PassengerFare{
			PassengerType: domain.PassengerType(strings.ToUpper(firstNonEmpty(strings.TrimSpace(r.PassengerType), string(domain.PassengerAdult)))),
			Quantity:      int(r.Quantity),
			Net: domain.NetFareInput{
				NetAmount:          r.Net(),
				FareType:           domain.ParseFareType(r.FareType),
				OverrideCommission: float64(r.OverCommission),
			},
		})
	}
	return fares
}

// FilterByMaxStops drops quotations with more stops than maxStops.
// A nil maxStops returns the input unchanged.
func FilterByMaxStops(quotations []domain.Quotation, maxStops *int) []domain.Quotation {
	if maxStops == nil {
		return quotations
	}
	filtered := make([]domain.Quotation, 0, len(quotations))
	for _, q := range quotations {
		if q.StopCount <= *maxStops {
			filtered = append(filtered, q)
		}
	}
	return filtered
}

// SortByPrice returns a copy sorted by ascending sell price. Ties keep
// their input order.
func SortByPrice(quotations []domain.Quotation) []domain.Quotation {
	sorted := make([]domain.Quotation, len(quotations))
	copy(sorted, quotations)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SellPriceAmount < sorted[j].SellPriceAmount
	})
	return sorted
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
