package employee

import (
	"time"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/user"
)

// Employee is the slice of the employee record the attendance engine reads.
type Employee struct {
	ID               string
	EmployeeCode     string
	Name             string
	Role             user.Role
	ManagerID        *string
	DepartmentID     *string
	OfficeLocationID *string
	WorkShiftID      *string
	DateOfJoining    time.Time
	IsActive         bool
}

// HasOffice reports whether a geofence target is assigned
func (e Employee) HasOffice() bool {
	return e.OfficeLocationID != nil && *e.OfficeLocationID != ""
}

// ReportsTo reports whether managerID is this employee's direct manager
func (e Employee) ReportsTo(managerID string) bool {
	return e.ManagerID != nil && *e.ManagerID == managerID
}

// Scope narrows ListByScope. Zero value means every active employee.
type Scope struct {
	EmployeeID   *string
	ManagerID    *string
	DepartmentID *string
}
