package attendance

import (
	"context"
	"time"
)

// Repository is the persisted attendance store, keyed by (employeeID, date).
// Implementations must report not-found (ErrRecordNotFound) and key collision
// (ErrDuplicateRecord) distinctly from transient I/O failure
// (ErrStoreUnavailable); the lifecycle manager's semantics depend on it.
type Repository interface {
	// Create inserts a new record and returns it with identity and timestamps.
	Create(ctx context.Context, record Record) (Record, error)

	// Update replaces the mutable fields of an existing record.
	Update(ctx context.Context, record Record) (Record, error)

	// Delete removes a record by id, returning ErrRecordNotFound if absent.
	Delete(ctx context.Context, id string) error

	// GetByID returns one record by identity.
	GetByID(ctx context.Context, id string) (Record, error)

	// GetByEmployeeAndDate returns the record for a key, or ErrRecordNotFound.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (Record, error)

	// GetByDate returns all records for one calendar day.
	GetByDate(ctx context.Context, date time.Time) ([]Record, error)

	// GetByEmployeeAndMonth returns one employee's records within a month.
	GetByEmployeeAndMonth(ctx context.Context, employeeID string, year int, month int) ([]Record, error)

	// GetByMonth returns all records within a month, across employees.
	GetByMonth(ctx context.Context, year int, month int) ([]Record, error)
}
