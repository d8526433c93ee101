package domain

import "math"

// FareBand maps an inclusive [Low, High] range to a flat Value.
// High may be math.Inf(1) for the catch-all band.
type FareBand struct {
	Low   float64
	High  float64
	Value float64
}

// FareTable is an ordered list of bands. The last band is the catch-all.
type FareTable []FareBand

// FeeTable maps a net fare to the flat agency fee added on the markup branch.
var FeeTable = FareTable{
	{Low: 0, High: 599, Value: 25},
	{Low: 600, High: 999, Value: 30},
	{Low: 1000, High: 1499, Value: 35},
	{Low: 1500, High: 1999, Value: 40},
	{Low: 2000, High: 2999, Value: 50},
	{Low: 3000, High: 3999, Value: 55},
	{Low: 4000, High: 5499, Value: 60},
	{Low: 5500, High: math.Inf(1), Value: 80},
}

// DiscountTable maps an over-commission to the flat discount given back to
// the client on the discount branch.
var DiscountTable = FareTable{
	{Low: 0, High: 50, Value: 0},
	{Low: 51, High: 80, Value: 10},
	{Low: 81, High: 100, Value: 20},
	{Low: 101, High: 140, Value: 30},
	{Low: 141, High: 180, Value: 40},
	{Low: 181, High: 220, Value: 50},
	{Low: 221, High: 260, Value: 60},
	{Low: 261, High: math.Inf(1), Value: 70},
}

// Lookup returns the value of the first band containing x.
//
// Bands are checked in order with inclusive bounds. When nothing matches,
// including a fractional x between two bands (e.g. 599.5), the catch-all
// (last) band's value is returned; an empty table yields 0.
func (t FareTable) Lookup(x float64) float64 {
	if len(t) == 0 {
		return 0
	}
	for _, band := range t {
		if x >= band.Low && x <= band.High {
			return band.Value
		}
	}
	return t[len(t)-1].Value
}

// Fee returns the agency fee for a net fare amount.
func Fee(netAmount float64) float64 {
	return FeeTable.Lookup(netAmount)
}

// Discount returns the client discount for an over-commission amount.
func Discount(overCommission float64) float64 {
	return DiscountTable.Lookup(overCommission)
}
