package service

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/billsplit/pkg/api"
)

// validateCalculateRequest rejects requests the engine would silently
// misinterpret. With strict set, every eater, payer and exclusion must also
// be a member.
func validateCalculateRequest(req *api.CalculateSettlementRequest, strict bool) error {
	if len(req.Members) == 0 {
		return invalidf("at least one member is required")
	}

	members := make(map[string]bool, len(req.Members))
	for _, m := range req.Members {
		if strings.TrimSpace(m) == "" {
			return invalidf("member names cannot be blank")
		}
		if members[m] {
			return invalidf("duplicate member %q", m)
		}
		members[m] = true
	}

	if req.TotalBill.IsNegative() {
		return invalidf("total_bill cannot be negative")
	}

	for i, item := range req.Items {
		if item == nil {
			return invalidf("item %d is empty", i+1)
		}
		if item.Price.IsNegative() {
			return invalidf("item %d: price cannot be negative", i+1)
		}
		if strict {
			for _, eater := range item.Eaters {
				if !members[eater] {
					return invalidf("item %d: eater %q is not a member", i+1, eater)
				}
			}
		}
	}

	for _, p := range req.Payers {
		if p == nil {
			return invalidf("payer entry is empty")
		}
		if p.Amount.IsNegative() {
			return invalidf("payer %q: amount cannot be negative", p.Name)
		}
		if strict && !members[p.Name] {
			return invalidf("payer %q is not a member", p.Name)
		}
	}

	if strict {
		for _, name := range req.ExcludeCommon {
			if !members[name] {
				return invalidf("excluded %q is not a member", name)
			}
		}
	}

	return nil
}

// requireField returns an invalid input error when value is blank.
func requireField(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return invalidf("%s is required", name)
	}
	return nil
}

func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
