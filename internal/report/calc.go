package report

import (
	"strings"

	"opsreport/internal/records"
)

// fissionChannelMarkers are the fixed channel-name substrings that put
// a primary row into the fission cohort. Matching is case-sensitive
// substring containment with no token boundaries, per the upstream
// channel-naming convention.
var fissionChannelMarkers = []string{"fission", "agent", "wheel"}

// Calculate derives every metric of the output record from one day's
// selected rows. It is a pure function: same inputs, same record. All
// divisions treat a zero denominator as 0, and absent optional columns
// default to 0; nothing in here fails.
func Calculate(productID string, sel *Selected) records.Record {
	rec := records.Record{
		ColDate:      sel.Date,
		ColProductID: productID,
	}

	for _, col := range passthroughColumns {
		if v, ok := sel.Product.Num(col); ok {
			rec[col] = v
		}
	}

	cost := sel.Cost.NumOrZero(ColTotalCost)
	rec[ColCost] = cost
	rec[ColCostPerRegistration] = safeDiv(cost, rec.NumOrZero("new_users"))
	rec[ColCostPerFirstDeposit] = safeDiv(cost, rec.NumOrZero("first_deposit_count"))

	deposit := rec.NumOrZero("deposit_amount")
	net := deposit - rec.NumOrZero("withdrawal_amount")
	rec[ColNetDeposit] = net
	rec[ColProfitRatePct] = safeDiv(net, deposit) * 100

	rec[ColFissionRatePct] = fissionRate(sel.Primary)

	for _, col := range retentionColumns {
		if v, ok := sel.Retention.Num(col); ok {
			rec[col] = v
		}
	}

	for _, col := range placeholderColumns {
		rec[col] = float64(0)
	}
	return rec
}

// safeDiv divides n by d, treating a zero denominator as 0 so that
// empty days never produce infinities in the output.
func safeDiv(n, d float64) float64 {
	if d == 0 {
		return 0
	}
	return n / d
}

// fissionRate computes the first-deposit conversion percentage over the
// primary rows whose channel contains one of the fission markers. An
// empty cohort, or a cohort whose deposit-count sum is zero, yields 0.
func fissionRate(primary []records.Record) float64 {
	var firstDeposits, deposits float64
	for _, r := range primary {
		if !inFissionCohort(r.Str(ColChannel)) {
			continue
		}
		firstDeposits += r.NumOrZero(ColFirstDepositCount)
		deposits += r.NumOrZero(ColDepositCount)
	}
	return safeDiv(firstDeposits, deposits) * 100
}

func inFissionCohort(channel string) bool {
	for _, m := range fissionChannelMarkers {
		if strings.Contains(channel, m) {
			return true
		}
	}
	return false
}
