package attendance

import "errors"

// Attendance domain errors. The store must report these distinctly so the
// lifecycle manager can tell a missing row from a key collision from a
// transient outage.
var (
	// ErrRecordNotFound means no record exists for the id or key.
	ErrRecordNotFound = errors.New("attendance record not found")

	// ErrDuplicateRecord is a key collision the store could not resolve.
	// The mark operation's update fallback makes this rare, but it is
	// surfaced rather than swallowed when it happens.
	ErrDuplicateRecord = errors.New("attendance record already exists for this employee and date")

	// ErrMutationInFlight means another mutation on the same (employee, date)
	// key has not resolved yet. Returned immediately, never queued.
	ErrMutationInFlight = errors.New("another mutation is in flight for this employee and date")

	// ErrStoreUnavailable is a transient I/O failure. Single-record callers
	// may retry; inside a batch it becomes a per-target failure entry.
	ErrStoreUnavailable = errors.New("attendance store unavailable")

	// ErrBatchAborted means the batch could not even resolve its target set.
	// Per-target failures never abort a batch; only universal ones do.
	ErrBatchAborted = errors.New("bulk action aborted before dispatch")
)
