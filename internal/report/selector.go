package report

import (
	"fmt"
	"time"

	"opsreport/internal/records"
	"opsreport/internal/table"
)

// Tables holds the four normalized sources, in the shape the selector
// consumes. Optional tables may be nil when their source role was not
// configured; lookups then default to zero downstream.
type Tables struct {
	Primary   *table.Table
	Product   *table.Table
	Retention *table.Table
	Cost      *table.Table
}

// Selected is the per-day slice of the sources that the calculator
// consumes. Product is always non-nil; Retention and Cost are nil when
// the source has no row for the day, and Primary may be empty.
type Selected struct {
	Date      time.Time
	Product   records.Record
	Primary   []records.Record
	Retention records.Record
	Cost      records.Record
}

// SelectRows filters every source down to the target day. The product
// metrics subset must be non-empty (MissingDataError otherwise); one
// row per day is the source contract, so the first matching row is
// taken. The retention table is additionally filtered on its category
// column to the aggregate-across-channels value before extraction.
// Cost, retention, and primary data may legitimately be absent for a
// day; those lookups default to zero later rather than failing.
func SelectRows(in Tables, day time.Time, aggregateCategory string) (*Selected, error) {
	product, ok := in.Product.FilterDate(ColDate, day).First()
	if !ok {
		return nil, &MissingDataError{
			Reason: fmt.Sprintf("product metrics has no row for %s", day.Format(targetDateLayout)),
		}
	}

	sel := &Selected{Date: day, Product: product}
	sel.Primary = in.Primary.FilterDate(ColDate, day).Rows()

	if in.Retention != nil {
		ret := in.Retention.FilterDate(ColDate, day).Filter(func(r records.Record) bool {
			return r.Str(ColSourceChannel) == aggregateCategory
		})
		if row, ok := ret.First(); ok {
			sel.Retention = row
		}
	}
	if in.Cost != nil {
		if row, ok := in.Cost.FilterDate(ColDate, day).First(); ok {
			sel.Cost = row
		}
	}
	return sel, nil
}
