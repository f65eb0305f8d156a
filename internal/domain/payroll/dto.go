package payroll

import (
	"github.com/shopspring/decimal"
)

type RowResponse struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	EmployeeCode string `json:"employee_code"`

	TotalPresentDays int             `json:"total_present_days"`
	TotalHoursWorked float64         `json:"total_hours_worked"`
	TotalAdvances    decimal.Decimal `json:"total_advances"`
	TotalSalaryPaid  decimal.Decimal `json:"total_salary_paid"`

	ExpectedHours       float64         `json:"expected_hours"`
	EffectiveHourlyRate decimal.Decimal `json:"effective_hourly_rate"`
	OvertimeHours       float64         `json:"overtime_hours"`
	UndertimeHours      float64         `json:"undertime_hours"`

	GrossSalary   decimal.Decimal `json:"gross_salary"`
	NetSalary     decimal.Decimal `json:"net_salary"`
	PendingAmount decimal.Decimal `json:"pending_amount"`

	Error string `json:"error,omitempty"`
}

type SheetResponse struct {
	Year              int           `json:"year"`
	Month             int           `json:"month"`
	Rows              []RowResponse `json:"rows"`
	TotalDaysInMonth  int           `json:"total_days_in_month"`
	IsMonthComplete   bool          `json:"is_month_complete"`
	CurrentDayOfMonth int           `json:"current_day_of_month"`
}

func NewRowResponse(r Row) RowResponse {
	return RowResponse{
		EmployeeID:          r.EmployeeID,
		EmployeeName:        r.EmployeeName,
		EmployeeCode:        r.EmployeeCode,
		TotalPresentDays:    r.TotalPresentDays,
		TotalHoursWorked:    r.TotalHoursWorked,
		TotalAdvances:       r.TotalAdvances,
		TotalSalaryPaid:     r.TotalSalaryPaid,
		ExpectedHours:       r.ExpectedHours,
		EffectiveHourlyRate: r.EffectiveHourlyRate,
		OvertimeHours:       r.OvertimeHours,
		UndertimeHours:      r.UndertimeHours,
		GrossSalary:         r.GrossSalary,
		NetSalary:           r.NetSalary,
		PendingAmount:       r.PendingAmount,
		Error:               r.Err,
	}
}

func NewSheetResponse(s Sheet) SheetResponse {
	rows := make([]RowResponse, 0, len(s.Rows))
	for _, row := range s.Rows {
		rows = append(rows, NewRowResponse(row))
	}
	return SheetResponse{
		Year:              s.Year,
		Month:             s.Month,
		Rows:              rows,
		TotalDaysInMonth:  s.TotalDaysInMonth,
		IsMonthComplete:   s.IsMonthComplete,
		CurrentDayOfMonth: s.CurrentDayOfMonth,
	}
}
