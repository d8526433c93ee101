package usecase

import (
	"sort"

	"github.com/luckytour/fare-quotation-service/internal/domain"
)

// SortQuotations returns a sorted copy of quotations.
//
//   - price: ascending sell price; ties keep their input order
//   - duration: ascending total duration, then price
//   - departure: earliest outbound first, then price; unknown departures last
func SortQuotations(quotations []domain.Quotation, sortBy domain.SortOption) []domain.Quotation {
	result := make([]domain.Quotation, len(quotations))
	copy(result, quotations)
	if len(result) <= 1 {
		return result
	}

	switch sortBy {
	case domain.SortByDuration:
		sort.SliceStable(result, func(i, j int) bool {
			di, dj := result[i].TotalDurationMinutes(), result[j].TotalDurationMinutes()
			if di != dj {
				return di < dj
			}
			return result[i].SellPriceAmount < result[j].SellPriceAmount
		})
	case domain.SortByDeparture:
		sort.SliceStable(result, func(i, j int) bool {
			ti, tj := result[i].Departure(), result[j].Departure()
			switch {
			case ti.IsZero() != tj.IsZero():
				return tj.IsZero()
			case !ti.Equal(tj):
				return ti.Before(tj)
			}
			return result[i].SellPriceAmount < result[j].SellPriceAmount
		})
	default:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].SellPriceAmount < result[j].SellPriceAmount
		})
	}

	return result
}
