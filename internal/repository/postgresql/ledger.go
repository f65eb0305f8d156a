package postgresql

import (
	"context"

	"github.com/tallyhr/attendance-backend-go/internal/domain/ledger"
	"github.com/tallyhr/attendance-backend-go/internal/pkg/database"
)

type ledgerRepository struct {
	db *database.DB
}

// NewLedgerRepository creates a ledger aggregate backed by PostgreSQL.
func NewLedgerRepository(db *database.DB) ledger.Aggregate {
	return &ledgerRepository{db: db}
}

// GetTotals implements ledger.Aggregate. An employee with no entries in the
// period sums to zero on both sides, which COALESCE guarantees.
func (l *ledgerRepository) GetTotals(ctx context.Context, employeeID string, year int, month int) (ledger.Totals, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT COALESCE(SUM(amount) FILTER (WHERE entry_type = 'advance'), 0),
			   COALESCE(SUM(amount) FILTER (WHERE entry_type = 'salary_payment'), 0)
		FROM ledger_entries
		WHERE employee_id = $1
		  AND entry_date >= $2
		  AND entry_date < $3
	`

	from, to := monthBounds(year, month)

	var totals ledger.Totals
	err := q.QueryRow(ctx, query, employeeID, from, to).Scan(
		&totals.TotalAdvances, &totals.TotalSalaryPaid,
	)
	if err != nil {
		return ledger.Totals{}, classifyStoreError("get ledger totals", err)
	}

	return totals, nil
}
