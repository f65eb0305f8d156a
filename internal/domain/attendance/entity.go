package attendance

import (
	"time"
)

// DateLayout is the canonical wire and key format for attendance dates.
const DateLayout = "2006-01-02"

// Record is one persisted attendance row. At most one record exists per
// (EmployeeID, Date); deleting it returns the key to the virtual Unmarked
// state — there is no "absent-from-data" row distinct from "no row exists".
type Record struct {
	ID          string
	EmployeeID  string
	Date        time.Time
	IsPresent   bool
	HoursWorked float64
	Notes       string
	MarkedBy    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Key identifies the unit of serialization for mutations: one employee on
// one calendar day.
type Key struct {
	EmployeeID string
	Date       string
}

// NewKey normalizes a date to a calendar day and builds its mutation key.
func NewKey(employeeID string, date time.Time) Key {
	return Key{EmployeeID: employeeID, Date: date.Format(DateLayout)}
}

func (r Record) Key() Key {
	return NewKey(r.EmployeeID, r.Date)
}

// TruncateToDay drops the time-of-day portion, keeping the calendar date in UTC.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
