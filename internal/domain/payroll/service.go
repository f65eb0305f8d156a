package payroll

import "context"

// SheetService assembles the monthly payroll report. Pure aggregation and
// delegation: group attendance by employee, sum present days and hours,
// fetch ledger totals, compute one Row per employee.
type SheetService interface {
	// BuildMonthlySheet builds the report for (year, month), optionally
	// narrowed to a single employee. A row whose computation fails on a
	// data-quality problem is flagged via Row.Err; the sheet still renders.
	BuildMonthlySheet(ctx context.Context, year int, month int, employeeID string) (Sheet, error)
}
