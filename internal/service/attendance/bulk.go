package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tallyhr/attendance-backend-go/internal/domain/attendance"
	"github.com/tallyhr/attendance-backend-go/internal/domain/employee"
	"github.com/tallyhr/attendance-backend-go/internal/pkg/events"
)

// defaultBulkLimit caps concurrent store writes per batch so a large roster
// does not overwhelm the store.
const defaultBulkLimit = 16

// bulkTarget is one resolved unmarked key plus the employee parameters the
// mark needs.
type bulkTarget struct {
	emp employee.Employee
}

// RunBulkAction implements attendance.Service.
//
// Targets are the currently unmarked keys for the date (optionally
// intersected with an explicit selection); keys that are already marked are
// never touched, which also makes re-running a partially failed batch target
// exactly its previous failures. Each target resolves independently; the
// batch completes when every dispatched mark has resolved, whatever the
// individual outcomes.
func (s *AttendanceServiceImpl) RunBulkAction(ctx context.Context, req attendance.BulkActionRequest) (attendance.BatchResult, error) {
	if err := req.Validate(); err != nil {
		return attendance.BatchResult{}, err
	}

	date, err := time.Parse(attendance.DateLayout, req.Date)
	if err != nil {
		return attendance.BatchResult{}, fmt.Errorf("%w: bad date: %v", attendance.ErrBatchAborted, err)
	}
	date = attendance.TruncateToDay(date)

	targets, err := s.resolveTargets(ctx, date, req.EmployeeIDs)
	if err != nil {
		return attendance.BatchResult{}, fmt.Errorf("%w: %v", attendance.ErrBatchAborted, err)
	}

	batchID := uuid.NewString()
	isPresent := req.Action == attendance.ActionPresent

	type outcome struct {
		record attendance.Record
		err    error
	}
	outcomes := make([]outcome, len(targets))

	var g errgroup.Group
	g.SetLimit(s.bulkLimit)

	for i, target := range targets {
		g.Go(func() error {
			var hours float64
			if isPresent {
				hours = target.emp.StandardHoursPerDay
			}

			record, markErr := s.Mark(ctx, attendance.MarkRequest{
				EmployeeID:  target.emp.ID,
				Date:        req.Date,
				IsPresent:   isPresent,
				HoursWorked: hours,
				MarkedBy:    req.MarkedBy,
			})
			outcomes[i] = outcome{record: record, err: markErr}

			s.publishProgress(batchID, target.emp.ID, req.Date, markErr)
			return nil
		})
	}

	// Outcomes are collected per target; g.Wait only joins the goroutines.
	_ = g.Wait()

	result := attendance.BatchResult{
		Succeeded: make([]attendance.Record, 0, len(targets)),
		Failed:    make([]attendance.TargetFailure, 0),
	}
	for i, o := range outcomes {
		if o.err != nil {
			result.Failed = append(result.Failed, attendance.TargetFailure{
				Key:    attendance.NewKey(targets[i].emp.ID, date),
				Reason: o.err.Error(),
			})
			continue
		}
		result.Succeeded = append(result.Succeeded, o.record)
	}
	return result, nil
}

// resolveTargets computes the unmarked keys the batch will mark. Marked keys
// are excluded up front; bulk actions only populate gaps.
func (s *AttendanceServiceImpl) resolveTargets(ctx context.Context, date time.Time, selection []string) ([]bulkTarget, error) {
	employees, err := s.directory.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %v", err)
	}

	records, err := s.store.GetByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance for date: %v", err)
	}

	marked := make(map[string]struct{}, len(records))
	for _, r := range records {
		marked[r.EmployeeID] = struct{}{}
	}

	var selected map[string]struct{}
	if len(selection) > 0 {
		selected = make(map[string]struct{}, len(selection))
		for _, id := range selection {
			selected[id] = struct{}{}
		}
	}

	targets := make([]bulkTarget, 0, len(employees))
	for _, emp := range employees {
		if _, ok := marked[emp.ID]; ok {
			continue
		}
		if selected != nil {
			if _, ok := selected[emp.ID]; !ok {
				continue
			}
		}
		targets = append(targets, bulkTarget{emp: emp})
	}
	return targets, nil
}

func (s *AttendanceServiceImpl) publishProgress(batchID, employeeID, date string, markErr error) {
	if s.hub == nil {
		return
	}
	event := events.Event{
		BatchID:    batchID,
		EmployeeID: employeeID,
		Date:       date,
		Outcome:    "succeeded",
	}
	if markErr != nil {
		event.Outcome = "failed"
		event.Reason = markErr.Error()
	}
	s.hub.Publish(event)
}
