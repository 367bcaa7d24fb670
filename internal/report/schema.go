package report

import (
	"strconv"
	"time"

	"opsreport/internal/records"
)

// Canonical column names shared by the sources and the output schema.
// Source files carry localized headers; the parser's header map
// translates them to these names before the pipeline runs.
const (
	ColDate      = "date"
	ColProductID = "product_id"

	// Primary (channel/registration) columns used by the fission rate.
	ColChannel           = "channel"
	ColFirstDepositCount = "first_deposit_count"
	ColDepositCount      = "deposit_count"

	// Retention category column and its "all channels" aggregate value.
	ColSourceChannel = "source_channel"

	// Cost aggregate-sum column.
	ColTotalCost = "total_cost"
)

// Derived and output-only column names.
const (
	ColCost                = "cost"
	ColCostPerRegistration = "cost_per_registration"
	ColCostPerFirstDeposit = "cost_per_first_deposit"
	ColNetDeposit          = "net_deposit"
	ColProfitRatePct       = "profit_rate_pct"
	ColFissionRatePct      = "fission_rate_pct"
)

// passthroughColumns are copied verbatim from the matched ProductMetrics
// row; a column absent from the source defaults to 0.
var passthroughColumns = []string{
	"new_users",
	"depositors",
	"deposit_amount",
	"withdrawal_amount",
	"first_deposit_count",
	"first_deposit_amount",
	"first_deposit_rate_pct",
	"first_deposit_profit_rate_pct",
	"first_deposit_arppu",
	"new_payer_count",
	"new_deposit_amount",
	"new_payer_rate_pct",
	"returning_payer_count",
	"returning_deposit_amount",
	"returning_payer_rate_pct",
	"returning_arppu",
	"returning_profit_rate_pct",
	"arppu",
}

// retentionColumns are copied from the filtered Retention row.
var retentionColumns = []string{
	"redeposit_d1_pct",
	"redeposit_d3_pct",
	"redeposit_d7_pct",
	"redeposit_d15_pct",
	"redeposit_d30_pct",
}

// placeholderColumns are reserved for future extension and always 0.
var placeholderColumns = []string{
	"ltv_d7",
	"ltv_d15",
	"ltv_d30",
	"historical_cost",
	"historical_net_deposit",
}

// OutputColumns is the fixed 36-column output order. The order is part
// of the external contract and must not change.
var OutputColumns = []string{
	"date", "product_id", "cost", "cost_per_registration", "cost_per_first_deposit",
	"new_users", "depositors", "deposit_amount", "withdrawal_amount", "net_deposit",
	"profit_rate_pct", "first_deposit_count", "first_deposit_amount", "first_deposit_rate_pct",
	"first_deposit_profit_rate_pct", "first_deposit_arppu", "new_payer_count", "new_deposit_amount",
	"new_payer_rate_pct", "returning_payer_count", "returning_deposit_amount", "returning_payer_rate_pct",
	"returning_arppu", "returning_profit_rate_pct", "arppu", "redeposit_d1_pct", "redeposit_d3_pct",
	"redeposit_d7_pct", "redeposit_d15_pct", "redeposit_d30_pct", "ltv_d7", "ltv_d15", "ltv_d30",
	"fission_rate_pct", "historical_cost", "historical_net_deposit",
}

// Header returns a copy of the output column names.
func Header() []string {
	out := make([]string, len(OutputColumns))
	copy(out, OutputColumns)
	return out
}

// ZeroFill is the final blanket pass over a computed record: every
// output column ends up present, with non-numeric or missing metric
// values coerced to 0. The date and product_id columns keep their
// typed values. The input record is not mutated.
func ZeroFill(rec records.Record) records.Record {
	out := make(records.Record, len(OutputColumns))
	for _, col := range OutputColumns {
		switch col {
		case ColDate:
			if t, ok := rec.Time(ColDate); ok {
				out[col] = t
			} else {
				out[col] = time.Time{}
			}
		case ColProductID:
			out[col] = rec.Str(ColProductID)
		default:
			f, _ := rec.Num(col)
			out[col] = f
		}
	}
	return out
}

// Assemble orders a (zero-filled) record into the fixed output column
// sequence. Absent fields become 0.
func Assemble(rec records.Record) []any {
	out := make([]any, len(OutputColumns))
	for i, col := range OutputColumns {
		if v, ok := rec[col]; ok && v != nil {
			out[i] = v
		} else {
			out[i] = float64(0)
		}
	}
	return out
}

// FormatRow serializes an assembled row for the delimited sink: the
// date as YYYY-MM-DD, strings as-is, numbers with two decimals.
func FormatRow(vals []any) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		switch t := v.(type) {
		case time.Time:
			out[i] = t.Format("2006-01-02")
		case string:
			out[i] = t
		case float64:
			out[i] = strconv.FormatFloat(t, 'f', 2, 64)
		default:
			f, _ := records.Float(v)
			out[i] = strconv.FormatFloat(f, 'f', 2, 64)
		}
	}
	return out
}
