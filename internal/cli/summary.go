package cli

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"opsreport/internal/report"
)

// headline metrics shown in the console summary; the full record is in
// the CSV.
var summaryColumns = []string{
	"cost",
	"new_users",
	"deposit_amount",
	"withdrawal_amount",
	"net_deposit",
	"profit_rate_pct",
	"fission_rate_pct",
}

// printSummary renders a small table of headline metrics after a
// successful run.
func printSummary(w io.Writer, productID string, res *report.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(fmt.Sprintf("Daily report %s %s", productID, res.Date.Format("2006-01-02")))
	t.AppendHeader(table.Row{"metric", "value"})
	for _, col := range summaryColumns {
		t.AppendRow(table.Row{col, fmt.Sprintf("%.2f", res.Record.NumOrZero(col))})
	}
	t.AppendFooter(table.Row{"file", res.Path})
	t.Render()
}
