package payroll

import "errors"

var (
	// ErrInvalidRateDenominator means a Fixed employee is configured with
	// workingDaysPerMonth × standardHoursPerDay == 0, so no hourly rate can
	// be derived. This is a data-quality failure on the employee record,
	// fatal for that employee's row only — never a transient error.
	ErrInvalidRateDenominator = errors.New("working days and standard hours produce a zero rate denominator")

	// ErrUnknownCompensationModel guards against employee records whose
	// model is neither fixed nor hourly.
	ErrUnknownCompensationModel = errors.New("unknown compensation model")
)
