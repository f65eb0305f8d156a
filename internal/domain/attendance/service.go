package attendance

import (
	"context"
	"time"
)

// Service owns the lifecycle of attendance records and the bulk coordinator
// on top of it. All mutations on one (employee, date) key are serialized; a
// key with a mutation in flight rejects further mutations with
// ErrMutationInFlight rather than dispatching them concurrently against the
// store.
type Service interface {
	// Mark creates the record for a key, or updates it when one already
	// exists. Calling it twice with the same payload yields the same end
	// state and the same record, not a duplicate.
	Mark(ctx context.Context, req MarkRequest) (Record, error)

	// Edit mutates an existing record; ErrRecordNotFound when absent.
	Edit(ctx context.Context, req EditRequest) (Record, error)

	// Delete removes a record by id. Deleting an already-absent record is a
	// no-op success, not an error.
	Delete(ctx context.Context, id string) error

	// QuickToggle is sugar over Mark: hours default to the employee's
	// standard hours when present, zero when absent.
	QuickToggle(ctx context.Context, req ToggleRequest) (Record, error)

	// RunBulkAction marks every targeted unmarked key concurrently and
	// collects per-target outcomes. It returns an error only for universal
	// failures; per-target failures live inside the BatchResult.
	RunBulkAction(ctx context.Context, req BulkActionRequest) (BatchResult, error)

	// ListDay returns every active employee's standing for one day.
	ListDay(ctx context.Context, date time.Time) ([]DayEntry, error)
}
