package calculator

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func balance(name, amount string) MemberBalance {
	return MemberBalance{MemberName: name, NetBalance: d(amount)}
}

func TestSettle_ToleranceBoundary(t *testing.T) {
	tests := []struct {
		name     string
		balances []MemberBalance
		settled  string
		want     int
	}{
		{
			name:     "positive boundary",
			balances: []MemberBalance{balance("A", "0.01"), balance("B", "5"), balance("C", "-5")},
			settled:  "A",
			want:     1,
		},
		{
			name:     "negative boundary",
			balances: []MemberBalance{balance("A", "-0.01"), balance("B", "5"), balance("C", "-5")},
			settled:  "A",
			want:     1,
		},
		{
			name:     "only boundary balances",
			balances: []MemberBalance{balance("A", "0.01"), balance("B", "-0.01")},
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transfers := Settle(tt.balances)

			require.Len(t, transfers, tt.want)
			for _, tr := range transfers {
				assert.NotEqual(t, tt.settled, tr.From)
				assert.NotEqual(t, tt.settled, tr.To)
			}
		})
	}
}

func TestSettle_JustOutsideTolerance(t *testing.T) {
	transfers := Settle([]MemberBalance{balance("A", "0.011"), balance("B", "-0.011")})

	require.Len(t, transfers, 1)
	assert.Equal(t, "B", transfers[0].From)
	assert.Equal(t, "A", transfers[0].To)
	assert.True(t, transfers[0].Amount.Equal(d("0.011")))
}

func TestSettle_InputOrderIsTheTieBreak(t *testing.T) {
	balances := []MemberBalance{
		balance("D1", "-10"),
		balance("C1", "4"),
		balance("D2", "-5"),
		balance("C2", "11"),
	}

	transfers := Settle(balances)

	want := []Transfer{
		{From: "D1", To: "C1", Amount: d("4")},
		{From: "D1", To: "C2", Amount: d("6")},
		{From: "D2", To: "C2", Amount: d("5")},
	}
	require.Len(t, transfers, len(want))
	for i := range want {
		assert.Equal(t, want[i].From, transfers[i].From, "transfer %d", i)
		assert.Equal(t, want[i].To, transfers[i].To, "transfer %d", i)
		assert.True(t, want[i].Amount.Equal(transfers[i].Amount), "transfer %d amount %s", i, transfers[i].Amount)
	}
}

func TestSettle_Empty(t *testing.T) {
	assert.Empty(t, Settle(nil))
	assert.Empty(t, Settle([]MemberBalance{balance("A", "0")}))
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"50", "50.00"},
		{"1234.5", "1,234.50"},
		{"1234567.891", "1,234,567.89"},
		{"33.333333333", "33.33"},
		{"0.005", "0.01"},
		{"0", "0.00"},
		{"-1234.5", "-1,234.50"},
		{"90071992547409.99", "90,071,992,547,409.99"},
		{"123456789012345678901.456", "123,456,789,012,345,678,901.46"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(d(tt.in)))
		})
	}
}

// Sixths leave a creditor with a 1e-16 remainder after two debtors; the next
// debtor still pays it, and the line renders as zero.
func TestSettle_DivisionRemainderTransfer(t *testing.T) {
	res := Compute(Input{
		Members:   []string{"m0", "m1", "m2", "m3", "m4", "m5"},
		TotalBill: d("2"),
		Payers: []Payer{
			{Name: "m1", Amount: d("1")},
			{Name: "m3", Amount: d("1")},
			{Name: "m5", Amount: d("1")},
		},
	})

	require.GreaterOrEqual(t, len(res.Transfers), 4)

	want := []Transfer{
		{From: "m0", To: "m1", Amount: d("0.3333333333333333")},
		{From: "m2", To: "m1", Amount: d("0.3333333333333333")},
		{From: "m4", To: "m1", Amount: d("0.0000000000000001")},
		{From: "m4", To: "m3", Amount: d("0.3333333333333332")},
	}
	for i, w := range want {
		got := res.Transfers[i]
		assert.Equal(t, w.From, got.From, "transfer %d", i)
		assert.Equal(t, w.To, got.To, "transfer %d", i)
		assert.True(t, w.Amount.Equal(got.Amount), "transfer %d: got %s, want %s", i, got.Amount, w.Amount)
	}

	assert.Equal(t, "m4 pays m1 : 0.00", res.Transfers[2].String())
}

// randomInput builds a bill whose payers cover exactly the total. Prices are
// whole numbers and group sizes stay under seven, so every non-zero balance is
// a multiple of 1/60 and sits well outside the tolerance band.
func randomInput(r *rand.Rand) Input {
	n := 2 + r.Intn(5)
	members := make([]string, n)
	for i := range members {
		members[i] = fmt.Sprintf("m%d", i)
	}

	var items []Item
	specific := int64(0)
	for i := 0; i < r.Intn(5); i++ {
		price := int64(1 + r.Intn(100))
		perm := r.Perm(n)[:1+r.Intn(n)]
		eaters := make([]string, len(perm))
		for j, idx := range perm {
			eaters[j] = members[idx]
		}
		items = append(items, Item{Price: decimal.NewFromInt(price), Eaters: eaters})
		specific += price
	}

	var exclude []string
	for _, m := range members[1:] {
		if r.Intn(4) == 0 {
			exclude = append(exclude, m)
		}
	}

	total := specific + int64(r.Intn(200))

	var payers []Payer
	remaining := total
	for i, m := range members {
		if remaining == 0 {
			break
		}
		amount := remaining
		if i < n-1 {
			amount = int64(r.Intn(int(remaining) + 1))
		}
		payers = append(payers, Payer{Name: m, Amount: decimal.NewFromInt(amount)})
		remaining -= amount
	}

	return Input{
		Members:       members,
		TotalBill:     decimal.NewFromInt(total),
		Items:         items,
		ExcludeCommon: exclude,
		Payers:        payers,
	}
}

func TestCompute_Invariants(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		in := randomInput(r)
		result := Compute(in)

		sumPaid, sumOwed, sumBalance := decimal.Zero, decimal.Zero, decimal.Zero
		for _, b := range result.Balances {
			sumPaid = sumPaid.Add(b.Paid)
			sumOwed = sumOwed.Add(b.Owed)
			sumBalance = sumBalance.Add(b.NetBalance)
		}
		require.True(t, sumPaid.Sub(sumOwed).Equal(sumBalance), "case %d: conservation", i)

		for _, tr := range result.Transfers {
			require.True(t, tr.Amount.IsPositive(), "case %d: non-positive transfer %v", i, tr)
			require.NotEqual(t, tr.From, tr.To, "case %d: self transfer", i)
		}

		for name, adjusted := range Apply(result.Balances, result.Transfers) {
			require.True(t, adjusted.Abs().LessThanOrEqual(Tolerance),
				"case %d: %s left with %s after settlement", i, name, adjusted)
		}
	}
}
