package employee

import "context"

// Directory supplies employee records with compensation parameters.
// It is read-only to this core; employee administration lives elsewhere.
type Directory interface {
	// GetByID returns one employee or ErrEmployeeNotFound.
	GetByID(ctx context.Context, id string) (Employee, error)

	// ListActive returns all active employees ordered by code.
	ListActive(ctx context.Context) ([]Employee, error)
}
