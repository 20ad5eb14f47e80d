// Package calculator implements the settlement engine: it turns the members of
// a bill, their itemized charges, exclusions and up-front payments into an
// ordered list of transfers that reconciles every balance.
//
// Every function in this package is pure. Nothing here knows about users,
// storage or transport, so a single engine can serve any number of concurrent
// callers.
package calculator

import "github.com/shopspring/decimal"

// Item represents a single itemized charge on the bill.
type Item struct {
	Description string
	Price       decimal.Decimal
	// Eaters are the members who consumed the item. The price is split
	// equally among them. An item with no eaters is attributed to nobody.
	Eaters []string
}

// Attribution is the output of AttributeExpenses.
type Attribution struct {
	// Owed maps every member (and any eater that is not a member) to the
	// amount they are responsible for.
	Owed map[string]decimal.Decimal

	// TotalSpecific is the sum of all item prices, eaters or not.
	TotalSpecific decimal.Decimal

	// CommonAmount is TotalBill - TotalSpecific. It may be negative.
	CommonAmount decimal.Decimal

	// Participants are the members sharing the common amount, in member order.
	Participants []string
}

// AttributeExpenses computes how much each member owes.
//
// Algorithm:
//   - each item with eaters adds price/len(eaters) to every eater
//   - common = totalBill - Σ item prices (items without eaters included)
//   - a positive common amount is split evenly among members not in
//     excludeCommon; zero or negative common amounts are dropped
func AttributeExpenses(members []string, items []Item, totalBill decimal.Decimal, excludeCommon []string) Attribution {
	owed := make(map[string]decimal.Decimal, len(members))
	for _, m := range members {
		owed[m] = decimal.Zero
	}

	totalSpecific := decimal.Zero
	for _, item := range items {
		totalSpecific = totalSpecific.Add(item.Price)
		if len(item.Eaters) == 0 {
			continue
		}

		share := item.Price.Div(decimal.NewFromInt(int64(len(item.Eaters))))
		for _, eater := range item.Eaters {
			owed[eater] = owed[eater].Add(share)
		}
	}

	excluded := make(map[string]bool, len(excludeCommon))
	for _, m := range excludeCommon {
		excluded[m] = true
	}
	participants := make([]string, 0, len(members))
	for _, m := range members {
		if !excluded[m] {
			participants = append(participants, m)
		}
	}

	common := totalBill.Sub(totalSpecific)
	if common.IsPositive() && len(participants) > 0 {
		share := common.Div(decimal.NewFromInt(int64(len(participants))))
		for _, p := range participants {
			owed[p] = owed[p].Add(share)
		}
	}

	return Attribution{
		Owed:          owed,
		TotalSpecific: totalSpecific,
		CommonAmount:  common,
		Participants:  participants,
	}
}
