package sheet

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tallyhr/attendance-backend-go/internal/domain/attendance"
	"github.com/tallyhr/attendance-backend-go/internal/domain/employee"
	"github.com/tallyhr/attendance-backend-go/internal/domain/ledger"
	"github.com/tallyhr/attendance-backend-go/internal/domain/payroll"
	payrollcalc "github.com/tallyhr/attendance-backend-go/internal/service/payroll"
	"github.com/tallyhr/attendance-backend-go/internal/pkg/validator"
)

// ledgerFetchLimit bounds concurrent ledger lookups while building a sheet.
const ledgerFetchLimit = 8

// SheetServiceImpl builds the monthly payroll report: aggregate attendance
// per employee, fetch ledger totals, compute one row per employee.
type SheetServiceImpl struct {
	store     attendance.Repository
	directory employee.Directory
	ledger    ledger.Aggregate

	now func() time.Time
}

func NewSheetService(
	store attendance.Repository,
	directory employee.Directory,
	ledgerAggregate ledger.Aggregate,
) payroll.SheetService {
	return &SheetServiceImpl{
		store:     store,
		directory: directory,
		ledger:    ledgerAggregate,
		now:       time.Now,
	}
}

// BuildMonthlySheet implements payroll.SheetService. A row that fails on a
// data-quality problem (zero rate denominator, unknown model) is flagged and
// the rest of the sheet still renders; transient I/O failures abort the
// build so the caller can retry a complete report.
func (s *SheetServiceImpl) BuildMonthlySheet(ctx context.Context, year int, month int, employeeID string) (payroll.Sheet, error) {
	if !validator.IsValidYear(year) || !validator.IsValidMonth(month) {
		return payroll.Sheet{}, validator.ValidationErrors{{
			Field:   "period",
			Message: fmt.Sprintf("invalid reporting period %d-%02d", year, month),
		}}
	}

	employees, err := s.resolveEmployees(ctx, employeeID)
	if err != nil {
		return payroll.Sheet{}, err
	}

	aggregates, err := s.aggregateAttendance(ctx, year, month, employeeID)
	if err != nil {
		return payroll.Sheet{}, fmt.Errorf("failed to aggregate attendance: %w", err)
	}

	rows := make([]payroll.Row, len(employees))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(ledgerFetchLimit)

	for i, emp := range employees {
		g.Go(func() error {
			totals, err := s.ledger.GetTotals(gCtx, emp.ID, year, month)
			if err != nil {
				return fmt.Errorf("failed to get ledger totals for %s: %w", emp.ID, err)
			}

			row, err := payrollcalc.Compute(emp, aggregates[emp.ID], totals)
			if err != nil {
				// Data-quality failure: flag this row, keep the sheet.
				rows[i] = payroll.Row{
					EmployeeID:       emp.ID,
					EmployeeName:     emp.Name,
					EmployeeCode:     emp.Code,
					TotalPresentDays: aggregates[emp.ID].TotalPresentDays,
					TotalHoursWorked: aggregates[emp.ID].TotalHoursWorked,
					TotalAdvances:    totals.TotalAdvances,
					TotalSalaryPaid:  totals.TotalSalaryPaid,
					Err:              err.Error(),
				}
				return nil
			}
			rows[i] = row
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return payroll.Sheet{}, err
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].EmployeeCode < rows[j].EmployeeCode
	})

	sheet := payroll.Sheet{
		Year:  year,
		Month: month,
		Rows:  rows,
	}
	s.fillPeriodMetadata(&sheet)
	return sheet, nil
}

func (s *SheetServiceImpl) resolveEmployees(ctx context.Context, employeeID string) ([]employee.Employee, error) {
	if employeeID != "" {
		emp, err := s.directory.GetByID(ctx, employeeID)
		if err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return nil, employee.ErrEmployeeNotFound
			}
			return nil, fmt.Errorf("failed to get employee: %w", err)
		}
		return []employee.Employee{emp}, nil
	}

	employees, err := s.directory.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

// aggregateAttendance groups the month's records by employee and sums
// present days and hours worked. No business rules beyond the summation.
func (s *SheetServiceImpl) aggregateAttendance(ctx context.Context, year, month int, employeeID string) (map[string]payroll.MonthlyAttendance, error) {
	var (
		records []attendance.Record
		err     error
	)
	if employeeID != "" {
		records, err = s.store.GetByEmployeeAndMonth(ctx, employeeID, year, month)
	} else {
		records, err = s.store.GetByMonth(ctx, year, month)
	}
	if err != nil {
		return nil, err
	}

	aggregates := make(map[string]payroll.MonthlyAttendance)
	for _, r := range records {
		agg := aggregates[r.EmployeeID]
		if r.IsPresent {
			agg.TotalPresentDays++
		}
		agg.TotalHoursWorked += r.HoursWorked
		aggregates[r.EmployeeID] = agg
	}
	return aggregates, nil
}

func (s *SheetServiceImpl) fillPeriodMetadata(sheet *payroll.Sheet) {
	sheet.TotalDaysInMonth = time.Date(sheet.Year, time.Month(sheet.Month)+1, 0, 0, 0, 0, 0, time.UTC).Day()

	now := s.now()
	currentYear, currentMonth := now.Year(), int(now.Month())

	switch {
	case sheet.Year < currentYear || (sheet.Year == currentYear && sheet.Month < currentMonth):
		sheet.IsMonthComplete = true
		sheet.CurrentDayOfMonth = sheet.TotalDaysInMonth
	case sheet.Year == currentYear && sheet.Month == currentMonth:
		sheet.IsMonthComplete = false
		sheet.CurrentDayOfMonth = now.Day()
	default:
		// Future period: nothing has elapsed yet.
		sheet.IsMonthComplete = false
		sheet.CurrentDayOfMonth = 0
	}
}
