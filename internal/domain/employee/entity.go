package employee

import (
	"github.com/shopspring/decimal"
)

// CompensationModel selects which pay parameters on an Employee are meaningful.
type CompensationModel string

const (
	// Fixed employees earn a flat monthly salary, reconciled against hours
	// via overtime and undertime.
	Fixed CompensationModel = "fixed"
	// Hourly employees earn strictly per hour worked, no overtime premium.
	Hourly CompensationModel = "hourly"
)

const (
	DefaultWorkingDaysPerMonth = 26
	DefaultStandardHoursPerDay = 9.0
)

type Employee struct {
	ID   string
	Name string
	// Code is the human-facing employee id shown on reports.
	Code string

	CompensationModel   CompensationModel
	WorkingDaysPerMonth int
	StandardHoursPerDay float64

	// Exactly one of the two is meaningful, selected by CompensationModel.
	BasicMonthlySalary decimal.Decimal
	HourlyRate         decimal.Decimal

	IsActive bool
}
