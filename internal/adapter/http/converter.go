package http

import (
	"strings"
	"time"

	"github.com/luckytour/fare-quotation-service/internal/domain"
	"github.com/luckytour/fare-quotation-service/internal/usecase"
)

// ToDomainCriteria converts a SearchQuotationsRequest to domain.SearchCriteria.
func ToDomainCriteria(req *SearchQuotationsRequest) domain.SearchCriteria {
	adults := req.Adults
	if adults < 1 {
		adults = 1
	}

	return domain.SearchCriteria{
		Origin:        strings.ToUpper(req.Origin),
		Destination:   strings.ToUpper(req.Destination),
		DepartureDate: req.DepartureDate,
		ReturnDate:    req.ReturnDate,
		Adults:        adults,
		Children:      req.Children,
		Infants:       req.Infants,
	}
}

// ToDomainFilters converts a FilterDTO to domain.FilterOptions.
func ToDomainFilters(dto *FilterDTO) *domain.FilterOptions {
	if dto == nil {
		return nil
	}

	opts := &domain.FilterOptions{
		MaxPrice: dto.MaxPrice,
		MaxStops: dto.MaxStops,
		Carriers: dto.Carriers,
	}

	if dto.DepartureTimeRange != nil {
		opts.DepartureTimeRange = toDomainTimeRange(dto.DepartureTimeRange)
	}

	if dto.DurationRange != nil && (dto.DurationRange.MinMinutes != nil || dto.DurationRange.MaxMinutes != nil) {
		opts.DurationRange = &domain.DurationRange{
			MinMinutes: dto.DurationRange.MinMinutes,
			MaxMinutes: dto.DurationRange.MaxMinutes,
		}
	}

	return opts
}

func toDomainTimeRange(dto *TimeRangeDTO) *domain.TimeRange {
	if dto == nil || dto.Start == "" || dto.End == "" {
		return nil
	}

	startTime, err := time.Parse("15:04", dto.Start)
	if err != nil {
		return nil
	}
	endTime, err := time.Parse("15:04", dto.End)
	if err != nil {
		return nil
	}

	return &domain.TimeRange{
		Start: startTime,
		End:   endTime,
	}
}

// ToSearchOptions converts request fields to usecase.SearchOptions.
func ToSearchOptions(req *SearchQuotationsRequest) usecase.SearchOptions {
	return usecase.SearchOptions{
		Filters: ToDomainFilters(req.Filters),
		SortBy:  domain.ParseSortOption(req.SortBy),
	}
}

// ToQuoteRefs converts quote options to domain references.
func ToQuoteRefs(options []QuoteOptionDTO) []domain.QuoteRef {
	refs := make([]domain.QuoteRef, len(options))
	for i, o := range options {
		refs[i] = domain.QuoteRef{
			SearchID:    strings.TrimSpace(o.SearchID),
			QuotationID: strings.TrimSpace(o.QuotationID),
		}
	}
	return refs
}

// ToFareLines converts pricing lines to unpriced passenger fares.
func ToFareLines(lines []PricingLineDTO) []domain.PassengerFare {
	fares := make([]domain.PassengerFare, len(lines))
	for i, l := range lines {
		fares[i] = domain.PassengerFare{
			PassengerType: toPassengerType(l.PassengerType),
			Quantity:      l.Quantity,
			Net: domain.NetFareInput{
				NetAmount:          l.NetAmount,
				FareType:           domain.ParseFareType(l.FareType),
				OverrideCommission: l.OverrideCommission,
			},
		}
	}
	return fares
}

// ToBookingInput converts a booking request to the usecase input.
func ToBookingInput(req *CreateBookingRequest) usecase.BookingInput {
	passengers := make([]domain.BookingPassenger, len(req.Passengers))
	for i, p := range req.Passengers {
		passengers[i] = domain.BookingPassenger{
			FirstName:      strings.TrimSpace(p.FirstName),
			LastName:       strings.TrimSpace(p.LastName),
			Type:           toPassengerType(p.Type),
			DocumentNumber: strings.TrimSpace(p.DocumentNumber),
			BirthDate:      p.BirthDate,
		}
	}

	return usecase.BookingInput{
		PNR:     req.PNR,
		OrderID: req.OrderID,
		Ref: domain.QuoteRef{
			SearchID:    strings.TrimSpace(req.SearchID),
			QuotationID: strings.TrimSpace(req.QuotationID),
		},
		Passengers: passengers,
		Contact: domain.BookingContact{
			Name:  strings.TrimSpace(req.Contact.Name),
			Email: strings.TrimSpace(req.Contact.Email),
			Phone: strings.TrimSpace(req.Contact.Phone),
		},
		Seller: req.Seller,
	}
}

func toPassengerType(s string) domain.PassengerType {
	t := strings.ToUpper(strings.TrimSpace(s))
	if t == "" {
		return domain.PassengerAdult
	}
	return domain.PassengerType(t)
}
