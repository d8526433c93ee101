// Package mock provides test doubles for the fare quotation service.
// These mocks are designed for integration testing where we need
// configurable behavior (delays, errors, specific responses).
package mock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/luckytour/fare-quotation-service/internal/domain"
)

// Provider is a configurable mock implementation of domain.QuotationProvider.
// It supports configurable delays, errors, and responses for testing
// timeouts and upstream failures.
type Provider struct {
	name       string
	searchID   string
	quotations []domain.Quotation
	details    map[string]domain.Quotation
	err        error
	detailErr  map[string]error
	delay      time.Duration

	mu          sync.Mutex
	searchCalls int
	detailCalls int
}

// NewProvider creates a new mock provider with the given name.
// The provider is configured using the builder pattern methods.
func NewProvider(name string) *Provider {
	return &Provider{
		name:      name,
		searchID:  "S-" + name,
		details:   map[string]domain.Quotation{},
		detailErr: map[string]error{},
	}
}

// WithQuotations configures the search result. Every quotation is also
// served by QuotationDetail unless WithDetail overrides it.
func (p *Provider) WithQuotations(quotations []domain.Quotation) *Provider {
	p.quotations = quotations
	for _, q := range quotations {
		if _, ok := p.details[q.ID]; !ok {
			p.details[q.ID] = q
		}
	}
	return p
}

// WithDetail configures the detail returned for one quotation id.
func (p *Provider) WithDetail(q domain.Quotation) *Provider {
	p.details[q.ID] = q
	return p
}

// WithError configures every call to fail with err.
func (p *Provider) WithError(err error) *Provider {
	p.err = err
	return p
}

// WithDetailError configures QuotationDetail to fail for one quotation id.
func (p *Provider) WithDetailError(quotationID string, err error) *Provider {
	p.detailErr[quotationID] = err
	return p
}

// WithDelay configures the provider to wait the given duration before responding.
func (p *Provider) WithDelay(d time.Duration) *Provider {
	p.delay = d
	return p
}

// Name returns the provider's unique identifier.
func (p *Provider) Name() string {
	return p.name
}

// Search implements domain.QuotationProvider.Search.
func (p *Provider) Search(ctx context.Context, criteria domain.SearchCriteria) (domain.SearchResult, error) {
	p.mu.Lock()
	p.searchCalls++
	p.mu.Unlock()

	if err := p.wait(ctx); err != nil {
		return domain.SearchResult{}, err
	}
	if p.err != nil {
		return domain.SearchResult{}, p.err
	}

	quotations := make([]domain.Quotation, len(p.quotations))
	for i, q := range p.quotations {
		q.SearchID = p.searchID
		quotations[i] = q
	}
	return domain.SearchResult{
		SearchID:      p.searchID,
		Quotations:    quotations,
		UpstreamCount: len(quotations),
	}, nil
}

// QuotationDetail implements domain.QuotationProvider.QuotationDetail.
func (p *Provider) QuotationDetail(ctx context.Context, ref domain.QuoteRef) (domain.Quotation, error) {
	p.mu.Lock()
	p.detailCalls++
	p.mu.Unlock()

	if err := p.wait(ctx); err != nil {
		return domain.Quotation{}, err
	}
	if p.err != nil {
		return domain.Quotation{}, p.err
	}
	if err, ok := p.detailErr[ref.QuotationID]; ok {
		return domain.Quotation{}, err
	}

	q, ok := p.details[ref.QuotationID]
	if !ok {
		return domain.Quotation{}, fmt.Errorf("%w: %s", domain.ErrQuotationNotFound, ref.QuotationID)
	}
	q.SearchID = ref.SearchID
	return q, nil
}

func (p *Provider) wait(ctx context.Context) error {
	if p.delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.delay):
		}
	}
	return ctx.Err()
}

// SearchCalls returns the number of times Search was called.
func (p *Provider) SearchCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.searchCalls
}

// DetailCalls returns the number of times QuotationDetail was called.
func (p *Provider) DetailCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.detailCalls
}

// Reset resets the call counts to zero.
func (p *Provider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.searchCalls = 0
	p.detailCalls = 0
}

// Ensure Provider implements domain.QuotationProvider at compile time.
var _ domain.QuotationProvider = (*Provider)(nil)

// carriers maps the carrier codes used by SampleQuotations to their names.
var carriers = map[string]string{
	"AR": "Aerolineas Argentinas",
	"CM": "Copa Airlines",
	"LA": "LATAM Airlines",
	"AA": "American Airlines",
}

// SampleQuotations returns count EZE-MIA round-trip quotations of carrier.
// Prices start at 900 and grow by 100, departures start at 06:00 and move
// two hours later each, and quotation i has i%2 stops per leg.
func SampleQuotations(carrier string, count int) []domain.Quotation {
	quotations := make([]domain.Quotation, count)
	base := time.Date(2026, 3, 28, 6, 0, 0, 0, time.UTC)

	for i := 0; i < count; i++ {
		stops := i % 2
		outbound := sampleLeg(carrier, "EZE", "MIA", base.Add(time.Duration(i*2)*time.Hour), 540+stops*120, stops)
		inbound := sampleLeg(carrier, "MIA", "EZE", base.AddDate(0, 0, 7).Add(time.Duration(i*2)*time.Hour), 540+stops*120, stops)

		quotations[i] = domain.Quotation{
			ID:                 fmt.Sprintf("%s-%d", carrier, i+1),
			ValidatingCarrier:  carrier,
			CarrierDescription: carrierName(carrier),
			SellPriceAmount:    900 + float64(i*100),
			Currency:           "USD",
			Legs:               []domain.ItineraryLeg{outbound, inbound},
			StopCount:          stops,
			Baggage: domain.BaggageAllowance{
				CabinBag:   domain.BaggageItem{Included: true, Label: "1x 10kg"},
				CarryOn:    domain.BaggageItem{Label: domain.BaggageLabelNotIncluded},
				CheckedBag: domain.BaggageItem{Included: true, Label: "1x 23kg"},
			},
			Source: "mock",
		}
	}

	return quotations
}

func sampleLeg(carrier, from, to string, departure time.Time, minutes, stops int) domain.ItineraryLeg {
	leg := domain.ItineraryLeg{
		Origin:           from,
		Destination:      to,
		Departure:        departure,
		Arrival:          departure.Add(time.Duration(minutes) * time.Minute),
		DurationMinutes:  minutes,
		StopCount:        stops,
		ConnectingCities: []string{},
	}
	if stops > 0 {
		leg.ConnectingCities = []string{"PTY"}
		leg.Segments = []domain.FlightSegment{
			{AirlineCode: carrier, FlightNumber: "100", OriginAirport: from, DestinationAirport: "PTY", Departure: departure, Arrival: departure.Add(5 * time.Hour)},
			{AirlineCode: carrier, FlightNumber: "200", OriginAirport: "PTY", DestinationAirport: to, Departure: departure.Add(6 * time.Hour), Arrival: leg.Arrival},
		}
		return leg
	}
	leg.Segments = []domain.FlightSegment{
		{AirlineCode: carrier, FlightNumber: "100", OriginAirport: from, DestinationAirport: to, Departure: departure, Arrival: leg.Arrival},
	}
	return leg
}

func carrierName(code string) string {
	if name, ok := carriers[code]; ok {
		return name
	}
	return code
}
