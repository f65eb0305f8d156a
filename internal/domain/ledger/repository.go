package ledger

import "context"

// Aggregate supplies per-employee per-period ledger totals. Read-only here;
// the advance/payment ledger itself is maintained by the surrounding system.
type Aggregate interface {
	// GetTotals returns advance and payment sums for the given month.
	// An employee with no ledger entries yields zero totals, not an error.
	GetTotals(ctx context.Context, employeeID string, year int, month int) (Totals, error)
}
