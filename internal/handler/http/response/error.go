package response

import (
	"errors"
	"net/http"

	"github.com/tallyhr/attendance-backend-go/internal/domain/attendance"
	"github.com/tallyhr/attendance-backend-go/internal/domain/employee"
	"github.com/tallyhr/attendance-backend-go/internal/domain/payroll"
	"github.com/tallyhr/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrDuplicateRecord):
		Conflict(w, "DUPLICATE_RECORD", "Attendance already recorded for this employee and date")
	case errors.Is(err, attendance.ErrMutationInFlight):
		Conflict(w, "MUTATION_IN_FLIGHT", "Another change for this employee and date is still in progress")
	case errors.Is(err, attendance.ErrStoreUnavailable):
		ServiceUnavailable(w, "Attendance store is temporarily unavailable")
	case errors.Is(err, attendance.ErrBatchAborted):
		BadRequest(w, err.Error(), nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrInvalidRateDenominator):
		BadRequest(w, "Employee has no working days or standard hours configured", nil)
	case errors.Is(err, payroll.ErrUnknownCompensationModel):
		BadRequest(w, "Employee has an unknown compensation model", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
