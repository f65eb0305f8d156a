package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tallyhr/attendance-backend-go/internal/domain/attendance"
	"github.com/tallyhr/attendance-backend-go/internal/pkg/database"
)

const attendanceColumns = `id, employee_id, date, is_present, hours_worked, notes, marked_by, created_at, updated_at`

type attendanceRepository struct {
	db *database.DB
}

// NewAttendanceRepository creates an attendance store backed by PostgreSQL.
// The attendance_records table carries a unique constraint on
// (employee_id, date), which is what turns a concurrent double-insert into
// ErrDuplicateRecord instead of a second row.
func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

// Create implements attendance.Repository.
func (a *attendanceRepository) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_records (
			employee_id, date, is_present, hours_worked, notes, marked_by
		) VALUES (
			$1, $2, $3, $4, $5, $6
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.EmployeeID,
		attendance.TruncateToDay(record.Date),
		record.IsPresent,
		record.HoursWorked,
		record.Notes,
		record.MarkedBy,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		return attendance.Record{}, classifyStoreError("create attendance record", err)
	}

	return record, nil
}

// Update implements attendance.Repository.
func (a *attendanceRepository) Update(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records
		SET is_present = $2,
			hours_worked = $3,
			notes = $4,
			marked_by = $5,
			updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.ID,
		record.IsPresent,
		record.HoursWorked,
		record.Notes,
		record.MarkedBy,
	).Scan(&record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, classifyStoreError("update attendance record", err)
	}

	return record, nil
}

// Delete implements attendance.Repository.
func (a *attendanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, a.db)

	query := `DELETE FROM attendance_records WHERE id = $1`

	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return classifyStoreError("delete attendance record", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}

	return nil
}

// GetByID implements attendance.Repository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE id = $1
	`

	record, err := scanAttendanceRow(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, classifyStoreError("get attendance record by id", err)
	}

	return record, nil
}

// GetByEmployeeAndDate implements attendance.Repository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_id = $1
		  AND date = $2
		LIMIT 1
	`

	record, err := scanAttendanceRow(q.QueryRow(ctx, query, employeeID, attendance.TruncateToDay(date)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, classifyStoreError("get attendance record by employee and date", err)
	}

	return record, nil
}

// GetByDate implements attendance.Repository.
func (a *attendanceRepository) GetByDate(ctx context.Context, date time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE date = $1
		ORDER BY employee_id
	`

	rows, err := q.Query(ctx, query, attendance.TruncateToDay(date))
	if err != nil {
		return nil, classifyStoreError("get attendance records by date", err)
	}
	defer rows.Close()

	return collectAttendanceRows(rows)
}

// GetByEmployeeAndMonth implements attendance.Repository.
func (a *attendanceRepository) GetByEmployeeAndMonth(ctx context.Context, employeeID string, year int, month int) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_id = $1
		  AND date >= $2
		  AND date < $3
		ORDER BY date
	`

	from, to := monthBounds(year, month)
	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, classifyStoreError("get attendance records by employee and month", err)
	}
	defer rows.Close()

	return collectAttendanceRows(rows)
}

// GetByMonth implements attendance.Repository.
func (a *attendanceRepository) GetByMonth(ctx context.Context, year int, month int) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE date >= $1
		  AND date < $2
		ORDER BY employee_id, date
	`

	from, to := monthBounds(year, month)
	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, classifyStoreError("get attendance records by month", err)
	}
	defer rows.Close()

	return collectAttendanceRows(rows)
}

func scanAttendanceRow(row pgx.Row) (attendance.Record, error) {
	var record attendance.Record
	err := row.Scan(
		&record.ID, &record.EmployeeID, &record.Date, &record.IsPresent,
		&record.HoursWorked, &record.Notes, &record.MarkedBy,
		&record.CreatedAt, &record.UpdatedAt,
	)
	return record, err
}

func collectAttendanceRows(rows pgx.Rows) ([]attendance.Record, error) {
	var records []attendance.Record
	for rows.Next() {
		record, err := scanAttendanceRow(rows)
		if err != nil {
			return nil, classifyStoreError("scan attendance record", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyStoreError("iterate attendance records", err)
	}
	return records, nil
}

// monthBounds returns the half-open [first day, first day of next month)
// interval for a calendar month, in UTC.
func monthBounds(year int, month int) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}
