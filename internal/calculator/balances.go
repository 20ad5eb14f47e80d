package calculator

import "github.com/shopspring/decimal"

// Payer is cash a member contributed toward the bill.
type Payer struct {
	Name   string
	Amount decimal.Decimal
}

// MemberBalance represents the balance information for one member.
type MemberBalance struct {
	MemberName string
	Paid       decimal.Decimal
	Owed       decimal.Decimal
	NetBalance decimal.Decimal // Positive = owed money, Negative = owes money
}

// ComputeBalances nets each member's payment against what they owe.
// The result follows the order of members. Duplicate payer entries overwrite
// each other (last one wins); payer names that are not members are ignored.
func ComputeBalances(members []string, owed map[string]decimal.Decimal, payers []Payer) []MemberBalance {
	paid := make(map[string]decimal.Decimal, len(members))
	for _, m := range members {
		paid[m] = decimal.Zero
	}
	for _, p := range payers {
		paid[p.Name] = p.Amount
	}

	balances := make([]MemberBalance, 0, len(members))
	for _, m := range members {
		o := owed[m]
		balances = append(balances, MemberBalance{
			MemberName: m,
			Paid:       paid[m],
			Owed:       o,
			NetBalance: paid[m].Sub(o),
		})
	}
	return balances
}
