package glas

import (
	"strconv"
	"strings"

	"github.com/luckytour/fare-quotation-service/internal/domain"
)

const (
	chargeTypeFree    = "free"
	primaryPassenger  = "ADT"
	defaultWeightUnit = "kg"
)

// normalizeBaggage decides each category independently. Checked entries are
// restricted to the adult fare before deciding.
func normalizeBaggage(raw *BaggageRecord) domain.BaggageAllowance {
	if raw == nil {
		raw = &BaggageRecord{}
	}

	return domain.BaggageAllowance{
		CabinBag:   decideBaggage(raw.CabinEntries(), domain.BaggageLabelNotInformed, domain.BaggageLabelWithSurcharge),
		CarryOn:    decideBaggage(raw.CarryOn, domain.BaggageLabelNotIncluded, domain.BaggageLabelWithSurcharge),
		CheckedBag: decideBaggage(primaryEntries(raw.Checked), domain.BaggageLabelNotIncluded, domain.BaggageLabelNotIncluded),
	}
}

// decideBaggage picks the first free entry with pieces or weight.
// emptyLabel applies when there are no entries, chargedLabel when none is free.
func decideBaggage(entries []AllowanceRecord, emptyLabel, chargedLabel string) domain.BaggageItem {
	if len(entries) == 0 {
		return domain.BaggageItem{Label: emptyLabel}
	}

	for _, e := range entries {
		if !strings.EqualFold(strings.TrimSpace(e.ChargeType), chargeTypeFree) {
			continue
		}
		if e.Pieces > 0 || e.Weight != 0 {
			return domain.BaggageItem{Included: true, Label: allowanceLabel(e)}
		}
	}

	return domain.BaggageItem{Label: chargedLabel}
}

func primaryEntries(entries []AllowanceRecord) []AllowanceRecord {
	filtered := make([]AllowanceRecord, 0, len(entries))
	for _, e := range entries {
		pt := strings.TrimSpace(e.PassengerType)
		if pt == "" || strings.EqualFold(pt, primaryPassenger) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// allowanceLabel renders "2x 23kg", "1x" or "10kg".
func allowanceLabel(e AllowanceRecord) string {
	unit := strings.ToLower(strings.TrimSpace(e.Unit))
	if unit == "" {
		unit = defaultWeightUnit
	}
	weight := ""
	if e.Weight != 0 {
		weight = strconv.FormatFloat(float64(e.Weight), 'f', -1, 64) + unit
	}

	if e.Pieces > 0 {
		label := strconv.Itoa(int(e.Pieces)) + "x"
		if weight != "" {
			label += " " + weight
		}
		return label
	}
	return weight
}
