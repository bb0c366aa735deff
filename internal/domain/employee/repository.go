package employee

import "context"

// EmployeeRepository is the read side of employee records the attendance engine consumes.
type EmployeeRepository interface {
	// GetByID returns ErrEmployeeNotFound when no active or inactive employee matches
	GetByID(ctx context.Context, id string) (Employee, error)

	// ListByScope returns active employees matching every non-nil scope field
	ListByScope(ctx context.Context, scope Scope) ([]Employee, error)
}
