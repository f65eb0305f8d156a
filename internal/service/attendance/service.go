package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tallyhr/attendance-backend-go/internal/domain/attendance"
	"github.com/tallyhr/attendance-backend-go/internal/domain/employee"
	"github.com/tallyhr/attendance-backend-go/internal/pkg/events"
)

// AttendanceServiceImpl owns the record lifecycle. Mutations on one
// (employee, date) key are serialized through the in-flight set; everything
// else is a straight delegation to the store.
type AttendanceServiceImpl struct {
	store     attendance.Repository
	directory employee.Directory
	inflight  *inflightSet
	hub       *events.Hub
	bulkLimit int
}

func NewAttendanceService(
	store attendance.Repository,
	directory employee.Directory,
	hub *events.Hub,
	bulkLimit int,
) attendance.Service {
	if bulkLimit <= 0 {
		bulkLimit = defaultBulkLimit
	}
	return &AttendanceServiceImpl{
		store:     store,
		directory: directory,
		inflight:  newInflightSet(),
		hub:       hub,
		bulkLimit: bulkLimit,
	}
}

// Mark implements attendance.Service. An existing record for the key turns
// the call into an update, which is what makes repeated marks idempotent.
func (s *AttendanceServiceImpl) Mark(ctx context.Context, req attendance.MarkRequest) (attendance.Record, error) {
	if err := req.Validate(); err != nil {
		return attendance.Record{}, err
	}

	date, err := time.Parse(attendance.DateLayout, req.Date)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to parse date: %w", err)
	}
	date = attendance.TruncateToDay(date)

	key := attendance.NewKey(req.EmployeeID, date)
	if !s.inflight.tryAcquire(key) {
		return attendance.Record{}, attendance.ErrMutationInFlight
	}
	defer s.inflight.release(key)

	existing, err := s.store.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	switch {
	case err == nil:
		existing.IsPresent = req.IsPresent
		existing.HoursWorked = req.HoursWorked
		existing.Notes = req.Notes
		existing.MarkedBy = req.MarkedBy

		updated, err := s.store.Update(ctx, existing)
		if err != nil {
			return attendance.Record{}, fmt.Errorf("failed to update attendance record: %w", err)
		}
		return updated, nil

	case errors.Is(err, attendance.ErrRecordNotFound):
		created, err := s.store.Create(ctx, attendance.Record{
			EmployeeID:  req.EmployeeID,
			Date:        date,
			IsPresent:   req.IsPresent,
			HoursWorked: req.HoursWorked,
			Notes:       req.Notes,
			MarkedBy:    req.MarkedBy,
		})
		if err != nil {
			// A collision despite the update fallback is surfaced, not
			// swallowed; the key guard should make it impossible.
			if errors.Is(err, attendance.ErrDuplicateRecord) {
				return attendance.Record{}, err
			}
			return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
		}
		return created, nil

	default:
		return attendance.Record{}, fmt.Errorf("failed to look up attendance record: %w", err)
	}
}

// Edit implements attendance.Service.
func (s *AttendanceServiceImpl) Edit(ctx context.Context, req attendance.EditRequest) (attendance.Record, error) {
	if err := req.Validate(); err != nil {
		return attendance.Record{}, err
	}

	record, err := s.store.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, attendance.ErrRecordNotFound) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	key := record.Key()
	if !s.inflight.tryAcquire(key) {
		return attendance.Record{}, attendance.ErrMutationInFlight
	}
	defer s.inflight.release(key)

	// Re-read under the key guard so the edit applies to the latest payload.
	record, err = s.store.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, attendance.ErrRecordNotFound) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	if req.IsPresent != nil {
		record.IsPresent = *req.IsPresent
	}
	if req.HoursWorked != nil {
		record.HoursWorked = *req.HoursWorked
	}
	if req.Notes != nil {
		record.Notes = *req.Notes
	}
	if req.MarkedBy != "" {
		record.MarkedBy = req.MarkedBy
	}

	updated, err := s.store.Update(ctx, record)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to update attendance record: %w", err)
	}
	return updated, nil
}

// Delete implements attendance.Service. Deleting an absent record reports
// success: the key is already in the state the caller asked for.
func (s *AttendanceServiceImpl) Delete(ctx context.Context, id string) error {
	record, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, attendance.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to get attendance record: %w", err)
	}

	key := record.Key()
	if !s.inflight.tryAcquire(key) {
		return attendance.ErrMutationInFlight
	}
	defer s.inflight.release(key)

	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, attendance.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to delete attendance record: %w", err)
	}
	return nil
}

// QuickToggle implements attendance.Service.
func (s *AttendanceServiceImpl) QuickToggle(ctx context.Context, req attendance.ToggleRequest) (attendance.Record, error) {
	if err := req.Validate(); err != nil {
		return attendance.Record{}, err
	}

	emp, err := s.directory.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.Record{}, employee.ErrEmployeeNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get employee: %w", err)
	}

	var hours float64
	if req.IsPresent {
		hours = emp.StandardHoursPerDay
	}

	return s.Mark(ctx, attendance.MarkRequest{
		EmployeeID:  req.EmployeeID,
		Date:        req.Date,
		IsPresent:   req.IsPresent,
		HoursWorked: hours,
		MarkedBy:    req.MarkedBy,
	})
}

// ListDay implements attendance.Service.
func (s *AttendanceServiceImpl) ListDay(ctx context.Context, date time.Time) ([]attendance.DayEntry, error) {
	date = attendance.TruncateToDay(date)

	employees, err := s.directory.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	records, err := s.store.GetByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance for date: %w", err)
	}

	byEmployee := make(map[string]attendance.Record, len(records))
	for _, r := range records {
		byEmployee[r.EmployeeID] = r
	}

	entries := make([]attendance.DayEntry, 0, len(employees))
	for _, emp := range employees {
		entry := attendance.DayEntry{
			EmployeeID:   emp.ID,
			EmployeeName: emp.Name,
			EmployeeCode: emp.Code,
		}
		if r, ok := byEmployee[emp.ID]; ok {
			record := r
			entry.Record = &record
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
