package attendance

import (
	"context"
	"time"
)

// Query is the resolved, typed form of a listing request. Every non-nil
// pointer narrows the result; From and To bound the date inclusively.
type Query struct {
	EmployeeID       *string
	ManagerID        *string
	DepartmentID     *string
	OfficeLocationID *string
	ShiftID          *string
	Status           *Status
	Search           *string
	From             time.Time
	To               time.Time

	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// Offset is the row offset of Page
func (q Query) Offset() int {
	if q.Page < 1 {
		return 0
	}
	return (q.Page - 1) * q.Limit
}

// RangeQuery selects every record of the given employees inside [From, To].
type RangeQuery struct {
	EmployeeIDs []string
	From        time.Time
	To          time.Time
}

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Create inserts a new record. A second record for the same
	// employee and date fails with ErrDuplicateAttendance.
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByID returns ErrAttendanceNotFound when absent
	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByEmployeeAndDate returns nil, nil when the employee has no record that day
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// CompletePunchOut writes punch-out and derived fields only while the
	// stored record has no punch-out; otherwise ErrAlreadyPunchedOut.
	CompletePunchOut(ctx context.Context, attendance Attendance) error

	// Update overwrites every mutable field of an existing record
	Update(ctx context.Context, attendance Attendance) error

	// List retrieves records with filters and pagination
	List(ctx context.Context, query Query) ([]Attendance, int64, error)

	// ListForRange returns all matching records unpaginated, ordered by employee then date
	ListForRange(ctx context.Context, query RangeQuery) ([]Attendance, error)
}
