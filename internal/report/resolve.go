package report

import (
	"time"

	"opsreport/internal/table"
)

// targetDateLayout is the configuration-surface date format.
const targetDateLayout = "2006-01-02"

// ResolveTargetDate determines the single day the report covers. An
// explicit date wins; when it is empty the latest date present in the
// (post-normalization) product metrics table is used. An unparseable
// explicit date is a ConfigurationError; a product table without any
// valid date is a MissingDataError, because there is nothing to anchor
// a report on.
func ResolveTargetDate(explicit string, product *table.Table, dateCol string) (time.Time, error) {
	if explicit != "" {
		d, err := time.Parse(targetDateLayout, explicit)
		if err != nil {
			return time.Time{}, &ConfigurationError{Field: "target_date", Value: explicit, Err: err}
		}
		return midnight(d), nil
	}
	max, ok := product.MaxDate(dateCol)
	if !ok {
		return time.Time{}, &MissingDataError{Reason: "product metrics has no valid dates after normalization"}
	}
	return max, nil
}
