package attendance

import (
	"time"

	"github.com/tallyhr/attendance-backend-go/internal/pkg/validator"
)

// BulkAction is the single action a bulk run applies to every target key.
type BulkAction string

const (
	ActionPresent BulkAction = "present"
	ActionAbsent  BulkAction = "absent"
)

type MarkRequest struct {
	EmployeeID  string  `json:"employee_id"`
	Date        string  `json:"date"`
	IsPresent   bool    `json:"is_present"`
	HoursWorked float64 `json:"hours_worked"`
	Notes       string  `json:"notes"`
	MarkedBy    string  `json:"-"`
}

func (r *MarkRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if r.HoursWorked < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "hours_worked",
			Message: "hours_worked must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// EditRequest carries partial updates for an existing record. Nil fields are
// left untouched.
type EditRequest struct {
	ID          string   `json:"-"`
	IsPresent   *bool    `json:"is_present"`
	HoursWorked *float64 `json:"hours_worked"`
	Notes       *string  `json:"notes"`
	MarkedBy    string   `json:"-"`
}

func (r *EditRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "record id is required",
		})
	}

	if r.HoursWorked != nil && *r.HoursWorked < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "hours_worked",
			Message: "hours_worked must not be negative",
		})
	}

	if r.IsPresent == nil && r.HoursWorked == nil && r.Notes == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "fields",
			Message: "at least one field must be provided",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ToggleRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	IsPresent  bool   `json:"is_present"`
	MarkedBy   string `json:"-"`
}

func (r *ToggleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// BulkActionRequest applies one action to many unmarked keys on one day.
// With EmployeeIDs set, targets are the selection intersected with the
// currently unmarked keys; without, every unmarked key on the date.
type BulkActionRequest struct {
	Date        string     `json:"date"`
	Action      BulkAction `json:"action"`
	EmployeeIDs []string   `json:"employee_ids"`
	MarkedBy    string     `json:"-"`
}

func (r *BulkActionRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if r.Action != ActionPresent && r.Action != ActionAbsent {
		errs = append(errs, validator.ValidationError{
			Field:   "action",
			Message: "action must be either 'present' or 'absent'",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// TargetFailure is one key a batch could not mark, with the reason retained
// for the operator report.
type TargetFailure struct {
	Key    Key    `json:"key"`
	Reason string `json:"reason"`
}

// BatchResult is the immutable outcome of one bulk run. Succeeded and Failed
// together cover every dispatched target; partial failure is reported, never
// raised.
type BatchResult struct {
	Succeeded []Record        `json:"succeeded"`
	Failed    []TargetFailure `json:"failed"`
}

// DayEntry is one employee's standing for a given day: the record when the
// key is marked, nil when unmarked.
type DayEntry struct {
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	EmployeeCode string  `json:"employee_code"`
	Record       *Record `json:"record,omitempty"`
}

type RecordResponse struct {
	ID          string  `json:"id"`
	EmployeeID  string  `json:"employee_id"`
	Date        string  `json:"date"`
	IsPresent   bool    `json:"is_present"`
	HoursWorked float64 `json:"hours_worked"`
	Notes       string  `json:"notes,omitempty"`
	MarkedBy    string  `json:"marked_by,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func NewRecordResponse(r Record) RecordResponse {
	return RecordResponse{
		ID:          r.ID,
		EmployeeID:  r.EmployeeID,
		Date:        r.Date.Format(DateLayout),
		IsPresent:   r.IsPresent,
		HoursWorked: r.HoursWorked,
		Notes:       r.Notes,
		MarkedBy:    r.MarkedBy,
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   r.UpdatedAt.Format(time.RFC3339),
	}
}
