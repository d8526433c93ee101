package glas

import (
	"github.com/luckytour/fare-quotation-service/internal/domain"
	"github.com/luckytour/fare-quotation-service/internal/infrastructure/timeutil"
)

// Search travel types of the history wrapper.
const (
	travelTypeRoundTrip = 1
	travelTypeOneWay    = 2
)

// itineraryAllowAll accepts direct and connecting itineraries.
const itineraryAllowAll = 3

// searchModel is the body of the search call. Unset optional filters are
// sent as explicit nulls, as the API expects.
type searchModel struct {
	DepartCode                     string   `json:"DepartCode"`
	ArrivalCode                    string   `json:"ArrivalCode"`
	DepartDate                     string   `json:"DepartDate"`
	ArrivalDate                    *string  `json:"ArrivalDate"`
	ArrivalTime                    *string  `json:"ArrivalTime"`
	DepartTime                     *string  `json:"DepartTime"`
	Adults                         int      `json:"Adults"`
	Childs                         int      `json:"Childs"`
	Infants                        int      `json:"Infants"`
	CabinType                      *string  `json:"CabinType"`
	Stops                          *int     `json:"Stops"`
	Airlines                       []string `json:"Airlines"`
	TypeOfFlightAllowedInItinerary int      `json:"TypeOfFlightAllowedInItinerary"`
	SortByGLASAlgorithm            *bool    `json:"SortByGLASAlgorithm"`
	AlternateCurrencyCode          string   `json:"AlternateCurrencyCode"`
	CorporationCodeGlas            *string  `json:"CorporationCodeGlas"`
	IncludeFiltersOptions          bool     `json:"IncludeFiltersOptions"`
}

// searchHistoryRequest registers a search before it is run.
type searchHistoryRequest struct {
	SearchTravelType  int          `json:"SearchTravelType"`
	OneWayModel       *searchModel `json:"OneWayModel"`
	MultipleLegsModel *searchModel `json:"MultipleLegsModel"`
	RoundTripModel    *searchModel `json:"RoundTripModel"`
}

// detailRequest asks for the priced detail of one quotation.
type detailRequest struct {
	SearchID    string `json:"searchId"`
	QuotationID string `json:"quotationId"`
}

func newSearchModel(c domain.SearchCriteria, currency string) searchModel {
	m := searchModel{
		DepartCode:                     c.Origin,
		ArrivalCode:                    c.Destination,
		DepartDate:                     timeutil.FormatUpstreamDate(c.DepartureDate),
		Adults:                         c.Adults,
		Childs:                         c.Children,
		Infants:                        c.Infants,
		Airlines:                       []string{},
		TypeOfFlightAllowedInItinerary: itineraryAllowAll,
		AlternateCurrencyCode:          currency,
		IncludeFiltersOptions:          true,
	}
	if c.ReturnDate != "" {
		ret := timeutil.FormatUpstreamDate(c.ReturnDate)
		m.ArrivalDate = &ret
	}
	return m
}

func newSearchHistoryRequest(m searchModel) searchHistoryRequest {
	if m.ArrivalDate == nil {
		return searchHistoryRequest{SearchTravelType: travelTypeOneWay, OneWayModel: &m}
	}
	return searchHistoryRequest{SearchTravelType: travelTypeRoundTrip, RoundTripModel: &m}
}
