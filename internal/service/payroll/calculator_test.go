package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallyhr/attendance-backend-go/internal/domain/employee"
	"github.com/tallyhr/attendance-backend-go/internal/domain/ledger"
	"github.com/tallyhr/attendance-backend-go/internal/domain/payroll"
)

func fixedEmployee() employee.Employee {
	return employee.Employee{
		ID:                  "emp-1",
		Name:                "Fixed Employee",
		Code:                "E-001",
		CompensationModel:   employee.Fixed,
		WorkingDaysPerMonth: 26,
		StandardHoursPerDay: 9,
		BasicMonthlySalary:  decimal.NewFromInt(26000),
	}
}

func assertDecimalEqual(t *testing.T, want int64, got decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, got.Equal(decimal.NewFromInt(want)), "%s = %s, want %d", field, got.String(), want)
}

func TestCompute_Fixed_ExactHours(t *testing.T) {
	// 20 present days x 9h = 180 expected hours, worked exactly 180.
	row, err := Compute(fixedEmployee(),
		payroll.MonthlyAttendance{TotalPresentDays: 20, TotalHoursWorked: 180},
		ledger.Totals{TotalAdvances: decimal.NewFromInt(2000), TotalSalaryPaid: decimal.NewFromInt(15000)},
	)
	require.NoError(t, err)

	assert.Equal(t, 180.0, row.ExpectedHours)
	assert.Equal(t, 0.0, row.OvertimeHours)
	assert.Equal(t, 0.0, row.UndertimeHours)
	assert.True(t, row.EffectiveHourlyRate.Equal(decimal.RequireFromString("111.11")),
		"effective rate = %s", row.EffectiveHourlyRate)

	assertDecimalEqual(t, 20000, row.GrossSalary, "gross")
	assertDecimalEqual(t, 18000, row.NetSalary, "net")
	assertDecimalEqual(t, 3000, row.PendingAmount, "pending")
}

func TestCompute_Fixed_Overtime(t *testing.T) {
	// 200 worked vs 180 expected: 20h overtime at 1.5x.
	row, err := Compute(fixedEmployee(),
		payroll.MonthlyAttendance{TotalPresentDays: 20, TotalHoursWorked: 200},
		ledger.Totals{},
	)
	require.NoError(t, err)

	assert.Equal(t, 20.0, row.OvertimeHours)
	assert.Equal(t, 0.0, row.UndertimeHours)
	// 200h x 111.1_ + 20h x 111.1_ x 1.5 = 25555.5_ -> 25556
	assertDecimalEqual(t, 25556, row.GrossSalary, "gross")
}

func TestCompute_Fixed_Undertime(t *testing.T) {
	// 160 worked vs 180 expected: 20h undertime deducted at 1x.
	row, err := Compute(fixedEmployee(),
		payroll.MonthlyAttendance{TotalPresentDays: 20, TotalHoursWorked: 160},
		ledger.Totals{},
	)
	require.NoError(t, err)

	assert.Equal(t, 0.0, row.OvertimeHours)
	assert.Equal(t, 20.0, row.UndertimeHours)
	// 160h x 111.1_ - 20h x 111.1_ = 140h x 111.1_ = 15555.5_ -> 15556
	assertDecimalEqual(t, 15556, row.GrossSalary, "gross")
}

func TestCompute_Hourly(t *testing.T) {
	emp := employee.Employee{
		ID:                "emp-2",
		CompensationModel: employee.Hourly,
		HourlyRate:        decimal.NewFromInt(150),
	}
	row, err := Compute(emp,
		payroll.MonthlyAttendance{TotalPresentDays: 18, TotalHoursWorked: 160},
		ledger.Totals{TotalAdvances: decimal.NewFromInt(1000), TotalSalaryPaid: decimal.NewFromInt(20000)},
	)
	require.NoError(t, err)

	// Hourly employees have no expected hours and no overtime premium.
	assert.Equal(t, 0.0, row.ExpectedHours)
	assert.Equal(t, 0.0, row.OvertimeHours)
	assert.Equal(t, 0.0, row.UndertimeHours)

	assertDecimalEqual(t, 24000, row.GrossSalary, "gross")
	assertDecimalEqual(t, 23000, row.NetSalary, "net")
	assertDecimalEqual(t, 3000, row.PendingAmount, "pending")
}

func TestCompute_ZeroRateDenominator(t *testing.T) {
	emp := fixedEmployee()
	emp.WorkingDaysPerMonth = 0

	_, err := Compute(emp, payroll.MonthlyAttendance{TotalPresentDays: 5, TotalHoursWorked: 45}, ledger.Totals{})
	assert.ErrorIs(t, err, payroll.ErrInvalidRateDenominator)

	emp = fixedEmployee()
	emp.StandardHoursPerDay = 0
	_, err = Compute(emp, payroll.MonthlyAttendance{}, ledger.Totals{})
	assert.ErrorIs(t, err, payroll.ErrInvalidRateDenominator)
}

func TestCompute_UnknownModel(t *testing.T) {
	emp := fixedEmployee()
	emp.CompensationModel = "commission"

	_, err := Compute(emp, payroll.MonthlyAttendance{}, ledger.Totals{})
	assert.ErrorIs(t, err, payroll.ErrUnknownCompensationModel)
}

func TestCompute_PendingInvariantsHoldAfterRounding(t *testing.T) {
	// Fractional advances and payments must not introduce drift between the
	// three currency fields.
	cases := []struct {
		name     string
		hours    float64
		days     int
		advances string
		paid     string
	}{
		{"fractional ledger", 173.5, 19, "1234.56", "7890.12"},
		{"zero ledger", 180, 20, "0", "0"},
		{"overpaid", 90, 10, "500.50", "20000"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			row, err := Compute(fixedEmployee(),
				payroll.MonthlyAttendance{TotalPresentDays: c.days, TotalHoursWorked: c.hours},
				ledger.Totals{
					TotalAdvances:   decimal.RequireFromString(c.advances),
					TotalSalaryPaid: decimal.RequireFromString(c.paid),
				},
			)
			require.NoError(t, err)

			assert.True(t, row.NetSalary.Equal(row.GrossSalary.Sub(row.TotalAdvances).Round(0)),
				"net = %s, gross-advances = %s", row.NetSalary, row.GrossSalary.Sub(row.TotalAdvances))
			assert.True(t, row.PendingAmount.Equal(row.NetSalary.Sub(row.TotalSalaryPaid).Round(0)),
				"pending = %s, net-paid = %s", row.PendingAmount, row.NetSalary.Sub(row.TotalSalaryPaid))
		})
	}
}

func TestCompute_IsDeterministic(t *testing.T) {
	att := payroll.MonthlyAttendance{TotalPresentDays: 21, TotalHoursWorked: 190.25}
	totals := ledger.Totals{TotalAdvances: decimal.NewFromInt(750)}

	first, err := Compute(fixedEmployee(), att, totals)
	require.NoError(t, err)
	second, err := Compute(fixedEmployee(), att, totals)
	require.NoError(t, err)

	assert.True(t, first.GrossSalary.Equal(second.GrossSalary))
	assert.True(t, first.NetSalary.Equal(second.NetSalary))
	assert.True(t, first.PendingAmount.Equal(second.PendingAmount))
}
