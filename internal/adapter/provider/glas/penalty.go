package glas

import (
	"strings"

	"github.com/luckytour/fare-quotation-service/internal/domain"
)

// Upstream penalty codes.
const (
	penaltyChange = 0
	penaltyRefund = 1

	applicabilityBefore = 0
	applicabilityDuring = 1
)

var penaltyHints = map[int][]string{
	penaltyChange: {"change", "cambio"},
	penaltyRefund: {"cancel", "refund", "reembolso", "devol"},
}

// selectPenaltyRules returns the first non-empty rule array, looking at each
// source's root penalties, then its fare rules, then its stored fares.
func selectPenaltyRules(sources ...PenaltySource) []PenaltyRecord {
	for _, src := range sources {
		if len(src.Penalties) > 0 {
			return src.Penalties
		}
		if src.FareRules != nil && len(src.FareRules.Penalties) > 0 {
			return src.FareRules.Penalties
		}
		for _, sf := range src.StoredFares {
			if len(sf.Penalties) > 0 {
				return sf.Penalties
			}
		}
	}
	return nil
}

// normalizePenalties maps rules to the four canonical slots.
// It returns nil when no rules were published at all.
func normalizePenalties(rules []PenaltyRecord) *domain.PenaltySet {
	if len(rules) == 0 {
		return nil
	}

	return &domain.PenaltySet{
		ChangeBeforeTravel: findPenalty(rules, penaltyChange, applicabilityBefore),
		ChangeDuringTravel: findPenalty(rules, penaltyChange, applicabilityDuring),
		RefundBeforeTravel: findPenalty(rules, penaltyRefund, applicabilityBefore),
		RefundDuringTravel: findPenalty(rules, penaltyRefund, applicabilityDuring),
	}
}

// findPenalty looks for an exact (type, applicability) match. Before-travel
// slots fall back to a rule of the same type, then to a rule whose text hints
// at the type; rules explicitly applicable during travel never fill them.
func findPenalty(rules []PenaltyRecord, typ, applicability int) *domain.PenaltyRule {
	for _, r := range rules {
		if r.Type.Is(typ) && r.Applicability.Is(applicability) {
			return toPenaltyRule(r)
		}
	}

	if applicability != applicabilityBefore {
		return nil
	}

	for _, r := range rules {
		if r.Type.Is(typ) && !r.Applicability.Is(applicabilityDuring) {
			return toPenaltyRule(r)
		}
	}

	for _, r := range rules {
		if !r.Applicability.Is(applicabilityDuring) && hints(r.PenaltyType, penaltyHints[typ]) {
			return toPenaltyRule(r)
		}
	}

	return nil
}

func hints(text string, words []string) bool {
	text = strings.ToLower(text)
	if text == "" {
		return false
	}
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

func toPenaltyRule(r PenaltyRecord) *domain.PenaltyRule {
	return &domain.PenaltyRule{
		Amount:    float64(r.Amount),
		Currency:  strings.TrimSpace(r.Currency),
		Permitted: r.Enabled,
	}
}
