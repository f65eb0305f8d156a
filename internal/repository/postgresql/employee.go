package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/tallyhr/attendance-backend-go/internal/domain/employee"
	"github.com/tallyhr/attendance-backend-go/internal/pkg/database"
)

const employeeColumns = `id, name, code, compensation_model, working_days_per_month,
		   standard_hours_per_day, basic_monthly_salary, hourly_rate, is_active`

type employeeRepository struct {
	db *database.DB
}

// NewEmployeeRepository creates an employee directory backed by PostgreSQL.
func NewEmployeeRepository(db *database.DB) employee.Directory {
	return &employeeRepository{db: db}
}

// GetByID implements employee.Directory.
func (e *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE id = $1
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&emp.ID, &emp.Name, &emp.Code, &emp.CompensationModel,
		&emp.WorkingDaysPerMonth, &emp.StandardHoursPerDay,
		&emp.BasicMonthlySalary, &emp.HourlyRate, &emp.IsActive,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, classifyStoreError("get employee by id", err)
	}

	return emp, nil
}

// ListActive implements employee.Directory.
func (e *employeeRepository) ListActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE is_active = TRUE
		ORDER BY code
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, classifyStoreError("list active employees", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		err := rows.Scan(
			&emp.ID, &emp.Name, &emp.Code, &emp.CompensationModel,
			&emp.WorkingDaysPerMonth, &emp.StandardHoursPerDay,
			&emp.BasicMonthlySalary, &emp.HourlyRate, &emp.IsActive,
		)
		if err != nil {
			return nil, classifyStoreError("scan employee", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyStoreError("iterate employees", err)
	}

	return employees, nil
}
