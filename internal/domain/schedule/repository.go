package schedule

import "context"

type WorkShiftRepository interface {
	// GetByID returns ErrWorkShiftNotFound when absent
	GetByID(ctx context.Context, id string) (WorkShift, error)

	List(ctx context.Context) ([]WorkShift, error)
}
