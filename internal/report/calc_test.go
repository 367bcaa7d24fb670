package report

import (
	"testing"

	"opsreport/internal/records"
)

func baseSelected() *Selected {
	return &Selected{
		Date: day(2025, 8, 25),
		Product: records.Record{
			"new_users":         "100",
			"deposit_amount":    "5000",
			"withdrawal_amount": "1000",
		},
		Cost: records.Record{"total_cost": "2000"},
	}
}

/*
TestCalculate_SampleDay checks the documented sample: a product row
with 100 new users, 5000 deposited, 1000 withdrawn and a 2000 cost row
yields cost=2000, cost_per_registration=20, net_deposit=4000 and
profit_rate=80%.
*/
func TestCalculate_SampleDay(t *testing.T) {
	rec := Calculate("P001", baseSelected())

	checks := map[string]float64{
		ColCost:                2000,
		ColCostPerRegistration: 20,
		ColNetDeposit:          4000,
		ColProfitRatePct:       80,
	}
	for col, want := range checks {
		if got := rec.NumOrZero(col); got != want {
			t.Fatalf("%s = %v; want %v", col, got, want)
		}
	}
	if got := rec.Str(ColProductID); got != "P001" {
		t.Fatalf("product_id = %q; want P001", got)
	}
}

func TestCalculate_ZeroDenominators(t *testing.T) {
	sel := &Selected{
		Date: day(2025, 8, 25),
		Product: records.Record{
			"new_users":           "0",
			"first_deposit_count": "0",
			"deposit_amount":      "0",
			"withdrawal_amount":   "0",
		},
		Cost: records.Record{"total_cost": "2000"},
	}
	rec := Calculate("P001", sel)

	for _, col := range []string{ColCostPerRegistration, ColCostPerFirstDeposit, ColProfitRatePct} {
		if got := rec.NumOrZero(col); got != 0 {
			t.Fatalf("%s = %v; want 0 on zero denominator", col, got)
		}
	}
}

func TestCalculate_MissingOptionalRowsDefaultToZero(t *testing.T) {
	sel := &Selected{
		Date:    day(2025, 8, 25),
		Product: records.Record{"new_users": "100"},
		// Cost and Retention rows absent for the day.
	}
	rec := Calculate("P001", sel)

	if got := rec.NumOrZero(ColCost); got != 0 {
		t.Fatalf("cost = %v; want 0 without a cost row", got)
	}
	rec = ZeroFill(rec)
	for _, col := range retentionColumns {
		if got := rec.NumOrZero(col); got != 0 {
			t.Fatalf("%s = %v; want 0 without a retention row", col, got)
		}
	}
}

func TestCalculate_Passthrough(t *testing.T) {
	sel := baseSelected()
	sel.Product["arppu"] = "12.5"
	sel.Product["returning_payer_count"] = "33"
	rec := Calculate("P001", sel)

	if got := rec.NumOrZero("arppu"); got != 12.5 {
		t.Fatalf("arppu = %v; want 12.5", got)
	}
	if got := rec.NumOrZero("returning_payer_count"); got != 33 {
		t.Fatalf("returning_payer_count = %v; want 33", got)
	}
}

func TestCalculate_RetentionCopied(t *testing.T) {
	sel := baseSelected()
	sel.Retention = records.Record{
		"redeposit_d1_pct":  "40",
		"redeposit_d30_pct": "5.5",
	}
	rec := Calculate("P001", sel)
	if got := rec.NumOrZero("redeposit_d1_pct"); got != 40 {
		t.Fatalf("redeposit_d1_pct = %v; want 40", got)
	}
	if got := rec.NumOrZero("redeposit_d30_pct"); got != 5.5 {
		t.Fatalf("redeposit_d30_pct = %v; want 5.5", got)
	}
}

func TestCalculate_PlaceholdersAlwaysZero(t *testing.T) {
	rec := Calculate("P001", baseSelected())
	for _, col := range placeholderColumns {
		v, ok := rec.Num(col)
		if !ok || v != 0 {
			t.Fatalf("%s = %v (present=%v); want fixed 0", col, v, ok)
		}
	}
}

func TestFissionRate_NoMatchingChannels(t *testing.T) {
	sel := baseSelected()
	sel.Primary = []records.Record{
		{"channel": "organic", "first_deposit_count": "10", "deposit_count": "20"},
		{"channel": "seo", "first_deposit_count": "5", "deposit_count": "9"},
	}
	rec := Calculate("P001", sel)
	if got := rec.NumOrZero(ColFissionRatePct); got != 0 {
		t.Fatalf("fission_rate_pct = %v; want 0 without cohort rows", got)
	}
}

func TestFissionRate_ZeroDepositSum(t *testing.T) {
	sel := baseSelected()
	sel.Primary = []records.Record{
		{"channel": "agent_north", "first_deposit_count": "10", "deposit_count": "0"},
	}
	rec := Calculate("P001", sel)
	if got := rec.NumOrZero(ColFissionRatePct); got != 0 {
		t.Fatalf("fission_rate_pct = %v; want 0 on zero deposit sum", got)
	}
}

func TestFissionRate_SubstringMatchAcrossMarkers(t *testing.T) {
	sel := baseSelected()
	sel.Primary = []records.Record{
		{"channel": "fission_invite", "first_deposit_count": "10", "deposit_count": "40"},
		{"channel": "lucky_wheel_v2", "first_deposit_count": "5", "deposit_count": "10"},
		{"channel": "organic", "first_deposit_count": "100", "deposit_count": "100"},
		// Case-sensitive: "Agent" does not match the "agent" marker.
		{"channel": "Agent", "first_deposit_count": "1", "deposit_count": "1"},
	}
	rec := Calculate("P001", sel)
	// (10+5) / (40+10) * 100 = 30
	if got := rec.NumOrZero(ColFissionRatePct); got != 30 {
		t.Fatalf("fission_rate_pct = %v; want 30", got)
	}
}
