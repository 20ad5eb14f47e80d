package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name          string
		input         Input
		wantOwed      map[string]string
		wantBalances  map[string]string
		wantTransfers []string
		wantCommon    string
	}{
		{
			name: "even split of the common amount",
			input: Input{
				Members:   []string{"A", "B"},
				TotalBill: d("100"),
				Payers:    []Payer{{Name: "A", Amount: d("100")}},
			},
			wantOwed:      map[string]string{"A": "50", "B": "50"},
			wantBalances:  map[string]string{"A": "50", "B": "-50"},
			wantTransfers: []string{"B pays A : 50.00"},
			wantCommon:    "100",
		},
		{
			name: "itemized charge covers the whole bill",
			input: Input{
				Members:   []string{"A", "B", "C"},
				TotalBill: d("30"),
				Items:     []Item{{Price: d("30"), Eaters: []string{"A"}}},
				Payers:    []Payer{{Name: "B", Amount: d("30")}},
			},
			wantOwed:      map[string]string{"A": "30", "B": "0", "C": "0"},
			wantBalances:  map[string]string{"A": "-30", "B": "30", "C": "0"},
			wantTransfers: []string{"A pays B : 30.00"},
			wantCommon:    "0",
		},
		{
			name: "item without eaters is attributed to nobody",
			input: Input{
				Members:   []string{"A", "B"},
				TotalBill: d("100"),
				Items:     []Item{{Price: d("20")}},
				Payers:    []Payer{{Name: "A", Amount: d("100")}},
			},
			wantOwed:      map[string]string{"A": "40", "B": "40"},
			wantBalances:  map[string]string{"A": "60", "B": "-40"},
			wantTransfers: []string{"B pays A : 40.00"},
			wantCommon:    "80",
		},
		{
			name: "itemized total above the bill drops the negative common amount",
			input: Input{
				Members:   []string{"A", "B"},
				TotalBill: d("50"),
				Items: []Item{
					{Price: d("40"), Eaters: []string{"A"}},
					{Price: d("30"), Eaters: []string{"A", "B"}},
				},
				Payers: []Payer{{Name: "B", Amount: d("70")}},
			},
			wantOwed:      map[string]string{"A": "55", "B": "15"},
			wantBalances:  map[string]string{"A": "-55", "B": "55"},
			wantTransfers: []string{"A pays B : 55.00"},
			wantCommon:    "-20",
		},
		{
			name: "one creditor drained by two debtors in input order",
			input: Input{
				Members:   []string{"A", "B", "C"},
				TotalBill: d("90"),
				Payers:    []Payer{{Name: "A", Amount: d("90")}},
			},
			wantOwed:      map[string]string{"A": "30", "B": "30", "C": "30"},
			wantBalances:  map[string]string{"A": "60", "B": "-30", "C": "-30"},
			wantTransfers: []string{"B pays A : 30.00", "C pays A : 30.00"},
			wantCommon:    "90",
		},
		{
			name: "excluded member only pays for their items",
			input: Input{
				Members:       []string{"A", "B", "C"},
				TotalBill:     d("70"),
				Items:         []Item{{Description: "Beer", Price: d("10"), Eaters: []string{"C"}}},
				ExcludeCommon: []string{"C"},
				Payers:        []Payer{{Name: "C", Amount: d("70")}},
			},
			wantOwed:      map[string]string{"A": "30", "B": "30", "C": "10"},
			wantBalances:  map[string]string{"A": "-30", "B": "-30", "C": "60"},
			wantTransfers: []string{"A pays C : 30.00", "B pays C : 30.00"},
			wantCommon:    "60",
		},
		{
			name: "duplicate payer entries overwrite",
			input: Input{
				Members:   []string{"A", "B"},
				TotalBill: d("100"),
				Payers: []Payer{
					{Name: "A", Amount: d("30")},
					{Name: "A", Amount: d("100")},
				},
			},
			wantOwed:      map[string]string{"A": "50", "B": "50"},
			wantBalances:  map[string]string{"A": "50", "B": "-50"},
			wantTransfers: []string{"B pays A : 50.00"},
			wantCommon:    "100",
		},
		{
			name: "everyone excluded leaves the common amount unassigned",
			input: Input{
				Members:       []string{"A", "B"},
				TotalBill:     d("100"),
				ExcludeCommon: []string{"A", "B"},
			},
			wantOwed:     map[string]string{"A": "0", "B": "0"},
			wantBalances: map[string]string{"A": "0", "B": "0"},
			wantCommon:   "100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Compute(tt.input)

			for name, want := range tt.wantOwed {
				if got := result.Owed[name]; !got.Equal(d(want)) {
					t.Errorf("owed[%s] = %s, want %s", name, got, want)
				}
			}

			if len(result.Balances) != len(tt.input.Members) {
				t.Fatalf("got %d balances, want %d", len(result.Balances), len(tt.input.Members))
			}
			for i, b := range result.Balances {
				if b.MemberName != tt.input.Members[i] {
					t.Errorf("balance %d is for %s, want %s", i, b.MemberName, tt.input.Members[i])
				}
				if want := tt.wantBalances[b.MemberName]; !b.NetBalance.Equal(d(want)) {
					t.Errorf("balance[%s] = %s, want %s", b.MemberName, b.NetBalance, want)
				}
			}

			if !result.CommonAmount.Equal(d(tt.wantCommon)) {
				t.Errorf("common amount = %s, want %s", result.CommonAmount, tt.wantCommon)
			}

			got := FormatTransfers(result.Transfers)
			if len(got) != len(tt.wantTransfers) {
				t.Fatalf("transfers = %v, want %v", got, tt.wantTransfers)
			}
			for i := range got {
				if got[i] != tt.wantTransfers[i] {
					t.Errorf("transfer %d = %q, want %q", i, got[i], tt.wantTransfers[i])
				}
			}
		})
	}
}

func TestAttributeExpenses_TotalSpecificCountsEaterlessItems(t *testing.T) {
	a := AttributeExpenses(
		[]string{"A", "B"},
		[]Item{{Price: d("20")}, {Price: d("10"), Eaters: []string{"B"}}},
		d("100"),
		nil,
	)

	if !a.TotalSpecific.Equal(d("30")) {
		t.Errorf("total specific = %s, want 30", a.TotalSpecific)
	}
	if !a.CommonAmount.Equal(d("70")) {
		t.Errorf("common amount = %s, want 70", a.CommonAmount)
	}
	// 20 from the eater-less item is attributed to nobody.
	sum := a.Owed["A"].Add(a.Owed["B"])
	if !sum.Equal(d("80")) {
		t.Errorf("sum owed = %s, want 80", sum)
	}
}

func TestAttributeExpenses_UnknownEater(t *testing.T) {
	in := Input{
		Members:   []string{"A", "B"},
		TotalBill: d("10"),
		Items:     []Item{{Price: d("10"), Eaters: []string{"Ghost"}}},
		Payers:    []Payer{{Name: "A", Amount: d("10")}},
	}

	result := Compute(in)

	if got := result.Owed["Ghost"]; !got.Equal(d("10")) {
		t.Errorf("owed[Ghost] = %s, want 10", got)
	}
	for _, b := range result.Balances {
		if b.MemberName == "Ghost" {
			t.Fatal("unknown eater must not appear in balances")
		}
	}
	// A paid 10 and owes nothing; the Ghost's charge is never collected.
	if len(result.Transfers) != 0 {
		t.Errorf("expected no transfers, got %v", FormatTransfers(result.Transfers))
	}
}

func TestAttributeExpenses_Idempotent(t *testing.T) {
	members := []string{"A", "B", "C"}
	items := []Item{
		{Price: d("10"), Eaters: []string{"A", "B", "C"}},
		{Price: d("7.5"), Eaters: []string{"B"}},
	}

	first := AttributeExpenses(members, items, d("40"), []string{"C"})
	second := AttributeExpenses(members, items, d("40"), []string{"C"})

	for _, m := range members {
		if !first.Owed[m].Equal(second.Owed[m]) {
			t.Errorf("owed[%s] changed between runs: %s vs %s", m, first.Owed[m], second.Owed[m])
		}
	}
}
