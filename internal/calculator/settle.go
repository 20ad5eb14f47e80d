package calculator

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Tolerance is the reconciliation band: a balance with |balance| <= Tolerance
// is considered settled.
var Tolerance = decimal.New(1, -2)

// Transfer is a directed payment instruction from a debtor to a creditor.
type Transfer struct {
	From   string // Person who owes
	To     string // Person who is owed
	Amount decimal.Decimal
}

// String renders the transfer as a display line, e.g. "Bob pays Alice : 1,234.50".
func (t Transfer) String() string {
	return fmt.Sprintf("%s pays %s : %s", t.From, t.To, FormatAmount(t.Amount))
}

// FormatAmount renders an amount with two decimals and thousands separators.
// Grouping works on the integer digits so large amounts stay exact.
func FormatAmount(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	abs := rounded.Abs()

	fixed := abs.StringFixed(2)
	frac := fixed[strings.IndexByte(fixed, '.')+1:]

	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}
	return sign + humanize.BigComma(abs.BigInt()) + "." + frac
}

// FormatTransfers renders each transfer with Transfer.String.
func FormatTransfers(transfers []Transfer) []string {
	lines := make([]string, len(transfers))
	for i, t := range transfers {
		lines[i] = t.String()
	}
	return lines
}

// party is a debtor or creditor with the amount still to be settled.
type party struct {
	name      string
	remaining decimal.Decimal
}

// Settle matches debtors to creditors and returns the transfers that
// reconcile their balances.
//
// Creditors are balances above Tolerance, debtors below -Tolerance; both keep
// the order of balances. Each debtor is walked across the creditors in order
// and pays min(debt, credit) to every creditor that still has something
// outstanding. This is a greedy pass, not a minimum-transaction solver: the
// input order decides who pays whom.
func Settle(balances []MemberBalance) []Transfer {
	var creditors, debtors []*party
	for _, b := range balances {
		switch {
		case b.NetBalance.GreaterThan(Tolerance):
			creditors = append(creditors, &party{name: b.MemberName, remaining: b.NetBalance})
		case b.NetBalance.LessThan(Tolerance.Neg()):
			debtors = append(debtors, &party{name: b.MemberName, remaining: b.NetBalance.Abs()})
		}
	}

	var transfers []Transfer
	for _, d := range debtors {
		for _, c := range creditors {
			if !d.remaining.IsPositive() || !c.remaining.IsPositive() {
				continue
			}

			amount := decimal.Min(d.remaining, c.remaining)
			transfers = append(transfers, Transfer{
				From:   d.name,
				To:     c.name,
				Amount: amount,
			})

			d.remaining = d.remaining.Sub(amount)
			c.remaining = c.remaining.Sub(amount)
		}
	}

	return transfers
}

// Apply returns the balances after every transfer has been paid: the sender's
// balance rises by the amount and the receiver's falls by it.
func Apply(balances []MemberBalance, transfers []Transfer) map[string]decimal.Decimal {
	adjusted := make(map[string]decimal.Decimal, len(balances))
	for _, b := range balances {
		adjusted[b.MemberName] = b.NetBalance
	}
	for _, t := range transfers {
		adjusted[t.From] = adjusted[t.From].Add(t.Amount)
		adjusted[t.To] = adjusted[t.To].Sub(t.Amount)
	}
	return adjusted
}
