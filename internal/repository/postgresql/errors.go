package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tallyhr/attendance-backend-go/internal/domain/attendance"
)

// classifyStoreError maps driver failures onto the domain taxonomy: not-found
// is handled at call sites via pgx.ErrNoRows, a unique violation is a key
// collision, and connection-class failures are transient. Everything else is
// wrapped with the failing operation for context.
func classifyStoreError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23505 unique_violation
		if pgErr.Code == "23505" {
			return attendance.ErrDuplicateRecord
		}
		// Class 08 connection exceptions, plus admin/crash shutdown.
		if strings.HasPrefix(pgErr.Code, "08") || pgErr.Code == "57P01" || pgErr.Code == "57P02" {
			return fmt.Errorf("%w: %v", attendance.ErrStoreUnavailable, err)
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return fmt.Errorf("%w: %v", attendance.ErrStoreUnavailable, err)
	}

	return fmt.Errorf("failed to %s: %w", op, err)
}
