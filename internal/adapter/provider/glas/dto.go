package glas

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// SearchResponse is the upstream search payload. Leg and flight tables come
// either as arrays or as objects keyed by id depending on the API revision.
//
// Quotation records are decoded one by one: a record that does not decode is
// left out and counted, the rest of the batch is kept.
type SearchResponse struct {
	SearchID           FlexString        `json:"searchId"`
	MinifiedQuotations []QuotationRecord `json:"minifiedQuotations"`
	Quotations         []QuotationRecord `json:"quotations"`
	Legs               LegSource         `json:"legs"`
	Flights            FlightSource      `json:"flights"`
	Airports           AirportTable      `json:"airports"`

	skippedMinified int
	skippedLegacy   int
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *SearchResponse) UnmarshalJSON(data []byte) error {
	type plain SearchResponse
	var env struct {
		plain
		MinifiedQuotations json.RawMessage `json:"minifiedQuotations"`
		Quotations         json.RawMessage `json:"quotations"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	*r = SearchResponse(env.plain)
	r.MinifiedQuotations, r.skippedMinified = decodeEach[QuotationRecord](env.MinifiedQuotations)
	r.Quotations, r.skippedLegacy = decodeEach[QuotationRecord](env.Quotations)
	return nil
}

// Records returns the quotation list of whichever revision populated it.
// A payload without any list yields nil.
func (r *SearchResponse) Records() []QuotationRecord {
	if r.MinifiedQuotations != nil {
		return r.MinifiedQuotations
	}
	return r.Quotations
}

// Skipped returns how many records of the Records list failed to decode.
func (r *SearchResponse) Skipped() int {
	if r.MinifiedQuotations != nil {
		return r.skippedMinified
	}
	return r.skippedLegacy
}

// DetailResponse is the upstream quotation detail (pricing) payload.
// Penalties may be found at the root, under fareRules or under a stored fare.
type DetailResponse struct {
	SearchID  FlexString      `json:"searchId"`
	Quotation QuotationRecord `json:"quotation"`
	PenaltySource
	PassengerFares RecordList[PassengerFareRecord] `json:"passengerFares"`
	Legs           LegSource                       `json:"legs"`
	Flights        FlightSource                    `json:"flights"`
	Airports       AirportTable                    `json:"airports"`

	// QuotationMalformed is set when the quotation object did not decode
	QuotationMalformed bool `json:"-"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *DetailResponse) UnmarshalJSON(data []byte) error {
	type plain DetailResponse
	var env struct {
		plain
		Quotation json.RawMessage `json:"quotation"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	*r = DetailResponse(env.plain)
	if isNull(env.Quotation) {
		return nil
	}
	if err := json.Unmarshal(env.Quotation, &r.Quotation); err != nil {
		r.Quotation = QuotationRecord{}
		r.QuotationMalformed = true
	}
	return nil
}

// PenaltySource groups the three places penalty rules are published in.
type PenaltySource struct {
	Penalties   RecordList[PenaltyRecord]    `json:"penalties"`
	FareRules   *FareRulesRecord             `json:"fareRules"`
	StoredFares RecordList[StoredFareRecord] `json:"storedFares"`
}

// FareRulesRecord is the nested fare-rules block. A block that is not an
// object decodes as empty.
type FareRulesRecord struct {
	Penalties RecordList[PenaltyRecord] `json:"penalties"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *FareRulesRecord) UnmarshalJSON(data []byte) error {
	type plain FareRulesRecord
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		*f = FareRulesRecord{}
		return nil
	}
	*f = FareRulesRecord(p)
	return nil
}

// StoredFareRecord is a stored fare carrying its own penalties.
type StoredFareRecord struct {
	Penalties RecordList[PenaltyRecord] `json:"penalties"`
}

// AirportInfo decorates an airport code with its city.
type AirportInfo struct {
	CityName    string `json:"cityName"`
	AirportName string `json:"airportName"`
}

// AirportTable maps airport codes to their info. Entries that do not decode
// are dropped, as is a table that is not an object.
type AirportTable map[string]AirportInfo

// UnmarshalJSON implements json.Unmarshaler.
func (a *AirportTable) UnmarshalJSON(data []byte) error {
	*a = decodeKeyed[AirportInfo](data)
	return nil
}

// QuotationRecord is one raw quotation.
type QuotationRecord struct {
	QuotationID                    FlexString                      `json:"quotationId"`
	ValidatingCarrier              string                          `json:"validatingCarrier"`
	Source                         string                          `json:"source"`
	SourceDescription              string                          `json:"sourceDescription"`
	GrandTotalSellingPriceAmount   FlexFloat                       `json:"grandTotalSellingPriceAmount"`
	GrandTotalSellingPriceCurrency string                          `json:"grandTotalSellingPriceCurrency"`
	OfferExpirationTimeCTZ         string                          `json:"offerExpirationTimeCTZ"`
	Legs                           []FlexString                    `json:"legs"`
	Error                          ErrorMarker                     `json:"error"`
	LegsWithBaggageAllowance       RecordList[LegBaggageRecord]    `json:"legsWithBaggageAllowance"`
	BaggageAllowance               *BaggageRecord                  `json:"baggageAllowance"`
	PassengerFares                 RecordList[PassengerFareRecord] `json:"passengerFares"`
	PenaltySource
}

// LegBaggageRecord attaches a baggage allowance to a leg.
type LegBaggageRecord struct {
	LegID            FlexString     `json:"legId"`
	BaggageAllowance *BaggageRecord `json:"baggageAllowance"`
}

// Baggage returns the allowance that applies to the whole quotation: the
// first leg's allowance, or the quotation-level one.
func (q *QuotationRecord) Baggage() *BaggageRecord {
	if len(q.LegsWithBaggageAllowance) > 0 && q.LegsWithBaggageAllowance[0].BaggageAllowance != nil {
		return q.LegsWithBaggageAllowance[0].BaggageAllowance
	}
	return q.BaggageAllowance
}

// LegRecord is one raw leg. Older revisions only carry connecting city codes
// and flight numbers instead of flight ids.
type LegRecord struct {
	LegID                FlexString   `json:"legId"`
	DepartureAirportCode string       `json:"departureAirportCode"`
	ArrivalAirportCode   string       `json:"arrivalAirportCode"`
	DepartureDate        string       `json:"departureDate"`
	ArrivalDate          string       `json:"arrivalDate"`
	TotalDuration        FlexFloat    `json:"totalDuration"`
	FlightIDs            []FlexString `json:"flightIds"`
	ConnectingCities     CityList     `json:"connectingCities"`
	FlightNumbers        []FlexString `json:"flightNumbers"`
	MarketingCarrier     string       `json:"marketingCarrier"`
}

// FlightRecord is one raw flight segment.
type FlightRecord struct {
	FlightID             FlexString `json:"flightId"`
	MarketingCarrier     string     `json:"marketingCarrier"`
	FlightNumber         FlexString `json:"flightNumber"`
	DepartureAirportCode string     `json:"departureAirportCode"`
	ArrivalAirportCode   string     `json:"arrivalAirportCode"`
	DepartureDate        string     `json:"departureDate"`
	ArrivalDate          string     `json:"arrivalDate"`
}

// BaggageRecord holds the raw allowance arrays per category.
type BaggageRecord struct {
	Hand    RecordList[AllowanceRecord] `json:"hand"`
	Cabin   RecordList[AllowanceRecord] `json:"cabin"`
	CarryOn RecordList[AllowanceRecord] `json:"carryOn"`
	Checked RecordList[AllowanceRecord] `json:"checked"`
}

// CabinEntries returns the hand-bag entries, under either field name.
func (b *BaggageRecord) CabinEntries() []AllowanceRecord {
	if len(b.Hand) > 0 {
		return b.Hand
	}
	return b.Cabin
}

// AllowanceRecord is one raw allowance entry.
type AllowanceRecord struct {
	PassengerType string    `json:"passengerType"`
	ChargeType    string    `json:"chargeType"`
	Pieces        FlexFloat `json:"pieces"`
	Weight        FlexFloat `json:"weight"`
	Unit          string    `json:"unit"`
}

// PenaltyRecord is one raw change/refund rule. Type is 0 for change and 1 for
// refund; Applicability is 0 before travel and 1 during travel.
type PenaltyRecord struct {
	Type          FlexCode  `json:"type"`
	Applicability FlexCode  `json:"applicability"`
	Amount        FlexFloat `json:"amount"`
	Currency      string    `json:"currency"`
	Enabled       bool      `json:"enabled"`
	PenaltyType   string    `json:"penaltyType"`
}

// PassengerFareRecord is one priced passenger line of a detail response.
type PassengerFareRecord struct {
	PassengerType  string    `json:"passengerType"`
	Quantity       FlexFloat `json:"quantity"`
	NetAmount      FlexFloat `json:"netAmount"`
	NetFare        FlexFloat `json:"netFare"`
	FareType       string    `json:"fareType"`
	OverCommission FlexFloat `json:"overCommission"`
}

// Net returns netAmount, falling back to netFare.
func (p PassengerFareRecord) Net() float64 {
	if p.NetAmount != 0 {
		return float64(p.NetAmount)
	}
	return float64(p.NetFare)
}

// LegSourceKind tells which shape a leg table arrived in.
type LegSourceKind int

// Leg table shapes.
const (
	LegSourceAbsent LegSourceKind = iota
	LegSourceArray
	LegSourceMap
)

// LegSource is a leg table received either as an array or as an object
// keyed by leg id. Both shapes are indexed by id after decoding.
type LegSource struct {
	Kind LegSourceKind
	byID map[string]LegRecord
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *LegSource) UnmarshalJSON(data []byte) error {
	kind, byID := decodeTable(data, func(l LegRecord) FlexString { return l.LegID })
	for id, l := range byID {
		if l.LegID == "" {
			l.LegID = FlexString(id)
			byID[id] = l
		}
	}
	s.Kind = kind
	s.byID = byID
	return nil
}

// NewLegSource builds an indexed leg table, mainly for tests and tools.
func NewLegSource(legs ...LegRecord) LegSource {
	s := LegSource{Kind: LegSourceArray, byID: make(map[string]LegRecord, len(legs))}
	for _, l := range legs {
		s.byID[l.LegID.String()] = l
	}
	return s
}

// Lookup returns the leg with the given id.
func (s LegSource) Lookup(id string) (LegRecord, bool) {
	l, ok := s.byID[id]
	return l, ok
}

// Len returns the number of legs.
func (s LegSource) Len() int {
	return len(s.byID)
}

// FlightSource is a flight table received as an array or a keyed object.
type FlightSource struct {
	byID map[string]FlightRecord
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *FlightSource) UnmarshalJSON(data []byte) error {
	_, byID := decodeTable(data, func(f FlightRecord) FlexString { return f.FlightID })
	for id, f := range byID {
		if f.FlightID == "" {
			f.FlightID = FlexString(id)
			byID[id] = f
		}
	}
	s.byID = byID
	return nil
}

// NewFlightSource builds an indexed flight table.
func NewFlightSource(flights ...FlightRecord) FlightSource {
	s := FlightSource{byID: make(map[string]FlightRecord, len(flights))}
	for _, f := range flights {
		s.byID[f.FlightID.String()] = f
	}
	return s
}

// Lookup returns the flight with the given id.
func (s FlightSource) Lookup(id string) (FlightRecord, bool) {
	f, ok := s.byID[id]
	return f, ok
}

// decodeTable indexes a table received as an array (keyed by idOf) or as an
// object keyed by id. Entries that do not decode are dropped; a value of any
// other shape is treated as absent.
func decodeTable[T any](data []byte, idOf func(T) FlexString) (LegSourceKind, map[string]T) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return LegSourceAbsent, map[string]T{}
	}

	switch trimmed[0] {
	case '[':
		list, _ := decodeEach[T](trimmed)
		byID := make(map[string]T, len(list))
		for _, v := range list {
			byID[idOf(v).String()] = v
		}
		return LegSourceArray, byID
	case '{':
		return LegSourceMap, decodeKeyed[T](trimmed)
	default:
		return LegSourceAbsent, map[string]T{}
	}
}

// RecordList is a JSON array decoded element by element. Elements that do
// not decode are dropped, and a value that is not an array decodes as nil.
type RecordList[T any] []T

// UnmarshalJSON implements json.Unmarshaler.
func (l *RecordList[T]) UnmarshalJSON(data []byte) error {
	*l, _ = decodeEach[T](data)
	return nil
}

// decodeEach decodes a JSON array one element at a time and reports how many
// elements were dropped. Null or absent data yields nil; a non-array value
// yields nil and counts as one dropped element.
func decodeEach[T any](data []byte) ([]T, int) {
	if isNull(data) {
		return nil, 0
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, 1
	}

	out := make([]T, 0, len(raws))
	skipped := 0
	for _, raw := range raws {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			skipped++
			continue
		}
		out = append(out, v)
	}
	return out, skipped
}

// decodeKeyed decodes a JSON object one entry at a time, dropping entries
// that do not decode. Anything but an object yields an empty map.
func decodeKeyed[T any](data []byte) map[string]T {
	var raws map[string]json.RawMessage
	if isNull(data) || json.Unmarshal(data, &raws) != nil {
		return map[string]T{}
	}

	out := make(map[string]T, len(raws))
	for key, raw := range raws {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			continue
		}
		out[key] = v
	}
	return out
}

func isNull(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// CityList holds connecting city codes received either as a delimited string
// ("MIA,PTY") or as a list. A nil CityList means the field was absent.
type CityList []string

// UnmarshalJSON implements json.Unmarshaler.
func (c *CityList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*c = nil
		return nil
	}

	if len(trimmed) > 0 && trimmed[0] == '"' {
		var raw string
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return err
		}
		*c = SplitCities(raw)
		return nil
	}

	var list []string
	if err := json.Unmarshal(trimmed, &list); err != nil {
		return fmt.Errorf("connectingCities: %w", err)
	}
	cities := make(CityList, 0, len(list))
	for _, code := range list {
		if code = strings.TrimSpace(code); code != "" {
			cities = append(cities, code)
		}
	}
	*c = cities
	return nil
}

// SplitCities splits a comma-delimited city string, dropping empty tokens.
// The result is never nil.
func SplitCities(raw string) CityList {
	cities := CityList{}
	for _, token := range strings.Split(raw, ",") {
		if token = strings.TrimSpace(token); token != "" {
			cities = append(cities, token)
		}
	}
	return cities
}

// ErrorMarker is the per-quotation error flag. Any value other than null,
// false, 0, "" or an empty object/array marks the record as failed.
type ErrorMarker bool

// UnmarshalJSON implements json.Unmarshaler.
func (e *ErrorMarker) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "null", "false", "0", `""`, "{}", "[]":
		*e = false
	default:
		*e = true
	}
	return nil
}

// FlexFloat accepts a JSON number, a numeric string or null.
// Non-numeric strings and values of any other type decode as 0.
type FlexFloat float64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	v, ok := parseNumber(data)
	if !ok {
		*f = 0
		return nil
	}
	*f = FlexFloat(v)
	return nil
}

// FlexCode is a nullable integer code sent as a number (0 or 0.0) or as a
// numeric string. Null, non-integral and non-numeric values leave it unset.
type FlexCode struct {
	Value int
	Valid bool
}

// Code returns a set FlexCode.
func Code(v int) FlexCode {
	return FlexCode{Value: v, Valid: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *FlexCode) UnmarshalJSON(data []byte) error {
	*c = FlexCode{}
	v, ok := parseNumber(data)
	if !ok || v != math.Trunc(v) {
		return nil
	}
	*c = Code(int(v))
	return nil
}

// Is reports whether the code is set to v.
func (c FlexCode) Is(v int) bool {
	return c.Valid && c.Value == v
}

// parseNumber reads a JSON number or a numeric string.
func parseNumber(data []byte) (float64, bool) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return 0, false
	}

	if trimmed[0] == '"' {
		var raw string
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return 0, false
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return v, true
	}

	var v float64
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return 0, false
	}
	return v, true
}

// FlexString accepts a JSON string or number (ids and flight numbers come both ways).
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (s *FlexString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*s = ""
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var raw string
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return err
		}
		*s = FlexString(raw)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("expected string or number: %w", err)
	}
	*s = FlexString(n.String())
	return nil
}

// String returns the underlying value.
func (s FlexString) String() string {
	return string(s)
}
