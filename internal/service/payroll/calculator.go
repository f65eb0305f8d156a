package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/tallyhr/attendance-backend-go/internal/domain/employee"
	"github.com/tallyhr/attendance-backend-go/internal/domain/ledger"
	"github.com/tallyhr/attendance-backend-go/internal/domain/payroll"
)

var overtimeMultiplier = decimal.NewFromFloat(1.5)

// Compute turns one employee's compensation parameters, aggregated monthly
// attendance and ledger totals into a payroll row. Pure: no I/O, no mutable
// state, safe to call concurrently; the result depends only on the arguments.
//
// Currency figures are kept at full decimal precision throughout and rounded
// to whole units only at the end. NetSalary and PendingAmount are derived
// from the rounded GrossSalary so that
//
//	NetSalary = GrossSalary − TotalAdvances
//	PendingAmount = NetSalary − TotalSalaryPaid
//
// hold exactly on the emitted row.
func Compute(emp employee.Employee, att payroll.MonthlyAttendance, totals ledger.Totals) (payroll.Row, error) {
	hours := decimal.NewFromFloat(att.TotalHoursWorked)

	var (
		rate          decimal.Decimal
		gross         decimal.Decimal
		expectedHours float64
		overtime      float64
		undertime     float64
	)

	switch emp.CompensationModel {
	case employee.Hourly:
		rate = emp.HourlyRate
		gross = hours.Mul(rate)

	case employee.Fixed:
		denominator := decimal.NewFromInt(int64(emp.WorkingDaysPerMonth)).
			Mul(decimal.NewFromFloat(emp.StandardHoursPerDay))
		if denominator.IsZero() {
			return payroll.Row{}, payroll.ErrInvalidRateDenominator
		}
		rate = emp.BasicMonthlySalary.Div(denominator)

		expectedHours = float64(att.TotalPresentDays) * emp.StandardHoursPerDay
		if diff := att.TotalHoursWorked - expectedHours; diff > 0 {
			overtime = diff
		} else {
			undertime = -diff
		}

		base := hours.Mul(rate)
		overtimePay := decimal.NewFromFloat(overtime).Mul(rate).Mul(overtimeMultiplier)
		undertimeCut := decimal.NewFromFloat(undertime).Mul(rate)
		gross = base.Add(overtimePay).Sub(undertimeCut)

	default:
		return payroll.Row{}, payroll.ErrUnknownCompensationModel
	}

	grossSalary := gross.Round(0)
	netSalary := grossSalary.Sub(totals.TotalAdvances).Round(0)
	pendingAmount := netSalary.Sub(totals.TotalSalaryPaid).Round(0)

	return payroll.Row{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		EmployeeCode: emp.Code,

		TotalPresentDays: att.TotalPresentDays,
		TotalHoursWorked: att.TotalHoursWorked,
		TotalAdvances:    totals.TotalAdvances,
		TotalSalaryPaid:  totals.TotalSalaryPaid,

		ExpectedHours:       expectedHours,
		EffectiveHourlyRate: rate.Round(2),
		OvertimeHours:       overtime,
		UndertimeHours:      undertime,

		GrossSalary:   grossSalary,
		NetSalary:     netSalary,
		PendingAmount: pendingAmount,
	}, nil
}
