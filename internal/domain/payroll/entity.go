package payroll

import (
	"github.com/shopspring/decimal"
)

// MonthlyAttendance is one employee's attendance aggregated over a month,
// the only attendance input the payroll formula needs.
type MonthlyAttendance struct {
	TotalPresentDays int
	TotalHoursWorked float64
}

// Row is the computed payroll line for one employee for one month. It is
// derived on every read from attendance and ledger inputs and has no
// identity or lifecycle of its own.
//
// Invariants: NetSalary = GrossSalary − TotalAdvances and
// PendingAmount = NetSalary − TotalSalaryPaid, exactly, after rounding.
type Row struct {
	EmployeeID   string
	EmployeeName string
	EmployeeCode string

	TotalPresentDays int
	TotalHoursWorked float64
	TotalAdvances    decimal.Decimal
	TotalSalaryPaid  decimal.Decimal

	ExpectedHours       float64
	EffectiveHourlyRate decimal.Decimal
	OvertimeHours       float64
	UndertimeHours      float64

	GrossSalary   decimal.Decimal
	NetSalary     decimal.Decimal
	PendingAmount decimal.Decimal

	// Err flags a row whose computation failed on a data-quality problem.
	// The rest of the sheet still renders.
	Err string
}

// Sheet is the display-ready monthly report: one row per employee plus
// period metadata.
type Sheet struct {
	Year  int
	Month int

	Rows []Row

	TotalDaysInMonth  int
	IsMonthComplete   bool
	CurrentDayOfMonth int
}
