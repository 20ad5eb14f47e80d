package calculator

import "github.com/shopspring/decimal"

// Input is everything the engine needs to settle one bill.
type Input struct {
	Members       []string
	TotalBill     decimal.Decimal
	Items         []Item
	ExcludeCommon []string
	Payers        []Payer
}

// Result carries the intermediate figures along with the transfers so callers
// can show how the settlement was reached.
type Result struct {
	Attribution
	Balances  []MemberBalance
	Transfers []Transfer
}

// Compute runs expense attribution, balance computation and greedy
// settlement in that order.
func Compute(in Input) Result {
	attribution := AttributeExpenses(in.Members, in.Items, in.TotalBill, in.ExcludeCommon)
	balances := ComputeBalances(in.Members, attribution.Owed, in.Payers)

	return Result{
		Attribution: attribution,
		Balances:    balances,
		Transfers:   Settle(balances),
	}
}
