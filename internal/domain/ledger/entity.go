package ledger

import "github.com/shopspring/decimal"

// Totals is what the payroll computation needs from the advance/payment
// ledger for one employee over one period: how much was taken as advances
// and how much salary was already disbursed.
type Totals struct {
	TotalAdvances   decimal.Decimal
	TotalSalaryPaid decimal.Decimal
}
