package glas

import (
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/luckytour/fare-quotation-service/internal/domain"
	"github.com/luckytour/fare-quotation-service/internal/infrastructure/timeutil"
)

// tables is the shared lookup context of one upstream response.
type tables struct {
	legs     LegSource
	flights  FlightSource
	airports map[string]AirportInfo
}

// normalizeLegs resolves the leg ids of a quotation. Ids missing from the
// leg table, and legs that cannot be resolved, are left out.
func normalizeLegs(legIDs []FlexString, carrier string, t tables) []domain.ItineraryLeg {
	legs := make([]domain.ItineraryLeg, 0, len(legIDs))
	for _, id := range legIDs {
		raw, ok := t.legs.Lookup(id.String())
		if !ok {
			continue
		}
		leg, ok := normalizeLeg(raw, carrier, t)
		if !ok {
			continue
		}
		legs = append(legs, leg)
	}
	return legs
}

// normalizeLeg builds a canonical leg. Explicit flight ids win over
// connecting-city synthesis. A leg with neither resolvable segments nor both
// endpoints is unresolvable.
func normalizeLeg(raw LegRecord, carrier string, t tables) (domain.ItineraryLeg, bool) {
	segments := resolveSegments(raw.FlightIDs, t.flights)

	leg := domain.ItineraryLeg{
		Origin:      strings.TrimSpace(raw.DepartureAirportCode),
		Destination: strings.TrimSpace(raw.ArrivalAirportCode),
	}
	leg.Departure, _ = timeutil.ParseUpstream(raw.DepartureDate)
	leg.Arrival, _ = timeutil.ParseUpstream(raw.ArrivalDate)

	if n := len(segments); n > 0 {
		if leg.Origin == "" {
			leg.Origin = segments[0].OriginAirport
		}
		if leg.Destination == "" {
			leg.Destination = segments[n-1].DestinationAirport
		}
		if leg.Departure.IsZero() {
			leg.Departure = segments[0].Departure
		}
		if leg.Arrival.IsZero() {
			leg.Arrival = segments[n-1].Arrival
		}
	}

	if raw.ConnectingCities != nil {
		leg.ConnectingCities = append([]string{}, raw.ConnectingCities...)
	} else {
		leg.ConnectingCities = intermediateAirports(segments)
	}

	if len(segments) == 0 {
		if leg.Origin == "" || leg.Destination == "" {
			return domain.ItineraryLeg{}, false
		}
		segments = synthesizeSegments(leg, raw, carrier)
	}

	leg.Segments = segments
	leg.StopCount = len(leg.ConnectingCities)
	leg.DurationMinutes = legDuration(raw.TotalDuration, leg)
	leg.OriginCity = cityName(leg.Origin, t.airports)
	leg.DestinationCity = cityName(leg.Destination, t.airports)

	return leg, true
}

// resolveSegments maps flight ids to segments, dropping unknown ids.
func resolveSegments(ids []FlexString, flights FlightSource) []domain.FlightSegment {
	if len(ids) == 0 {
		return nil
	}

	segments := make([]domain.FlightSegment, 0, len(ids))
	for _, id := range ids {
		f, ok := flights.Lookup(id.String())
		if !ok {
			continue
		}
		seg := domain.FlightSegment{
			AirlineCode:        strings.TrimSpace(f.MarketingCarrier),
			FlightNumber:       strings.TrimSpace(f.FlightNumber.String()),
			OriginAirport:      strings.TrimSpace(f.DepartureAirportCode),
			DestinationAirport: strings.TrimSpace(f.ArrivalAirportCode),
		}
		seg.Departure, _ = timeutil.ParseUpstream(f.DepartureDate)
		seg.Arrival, _ = timeutil.ParseUpstream(f.ArrivalDate)
		segments = append(segments, seg)
	}
	return segments
}

// synthesizeSegments pairs consecutive airports of the chain
// [origin, connecting cities..., destination]. Flight numbers are taken by
// index when the leg lists them. Only the outer times are known.
func synthesizeSegments(leg domain.ItineraryLeg, raw LegRecord, carrier string) []domain.FlightSegment {
	chain := make([]string, 0, len(leg.ConnectingCities)+2)
	chain = append(chain, leg.Origin)
	chain = append(chain, leg.ConnectingCities...)
	chain = append(chain, leg.Destination)

	airline := strings.TrimSpace(raw.MarketingCarrier)
	if airline == "" {
		airline = carrier
	}

	segments := make([]domain.FlightSegment, 0, len(chain)-1)
	for i := 0; i+1 < len(chain); i++ {
		seg := domain.FlightSegment{
			AirlineCode:        airline,
			OriginAirport:      chain[i],
			DestinationAirport: chain[i+1],
		}
		if i < len(raw.FlightNumbers) {
			seg.FlightNumber = strings.TrimSpace(raw.FlightNumbers[i].String())
		}
		segments = append(segments, seg)
	}

	segments[0].Departure = leg.Departure
	segments[len(segments)-1].Arrival = leg.Arrival
	return segments
}

// intermediateAirports returns the connection points of a segment list.
func intermediateAirports(segments []domain.FlightSegment) []string {
	cities := []string{}
	for i := 0; i+1 < len(segments); i++ {
		cities = append(cities, segments[i].DestinationAirport)
	}
	return cities
}

func legDuration(total FlexFloat, leg domain.ItineraryLeg) int {
	if total > 0 {
		return int(math.Round(float64(total)))
	}
	if !leg.Departure.IsZero() && leg.Arrival.After(leg.Departure) {
		return int(leg.Arrival.Sub(leg.Departure).Minutes())
	}
	return 0
}

// cityName returns the title-cased city of an airport code, or "".
func cityName(code string, airports map[string]AirportInfo) string {
	info, ok := airports[code]
	if !ok || strings.TrimSpace(info.CityName) == "" {
		return ""
	}
	return cases.Title(language.Spanish).String(strings.TrimSpace(info.CityName))
}
