package user

type Role string

const (
	RoleHRManager  Role = "HR_Manager"  // Full attendance administration
	RoleTeamLeader Role = "Team_Leader" // Views and corrects direct reports
	RoleEmployee   Role = "Employee"    // Self-service only
)

// IsValid reports whether r is a known role
func (r Role) IsValid() bool {
	switch r {
	case RoleHRManager, RoleTeamLeader, RoleEmployee:
		return true
	}
	return false
}

// Actor is the authenticated caller as read from access-token claims.
type Actor struct {
	EmployeeID string
	Role       Role
}

func (a Actor) IsHR() bool {
	return a.Role == RoleHRManager
}

func (a Actor) IsTeamLeader() bool {
	return a.Role == RoleTeamLeader
}

// CanSupervise reports whether the actor holds a supervisory role at all.
func (a Actor) CanSupervise() bool {
	return a.IsHR() || a.IsTeamLeader()
}
