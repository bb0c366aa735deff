package user

type Permission string

const (
	// Self service
	PermissionAttendancePunch   Permission = "attendance.punch"
	PermissionAttendanceViewOwn Permission = "attendance.view_own"

	// Supervision
	PermissionAttendanceViewTeam Permission = "attendance.view_team"
	PermissionAttendanceViewAll  Permission = "attendance.view_all"
	PermissionAttendanceCorrect  Permission = "attendance.correct"

	// HR-assisted punches
	PermissionAttendancePunchOnBehalf Permission = "attendance.punch_on_behalf"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleHRManager: {
		PermissionAttendancePunch,
		PermissionAttendanceViewOwn,
		PermissionAttendanceViewTeam,
		PermissionAttendanceViewAll,
		PermissionAttendanceCorrect,
		PermissionAttendancePunchOnBehalf,
	},
	RoleTeamLeader: {
		PermissionAttendancePunch,
		PermissionAttendanceViewOwn,
		PermissionAttendanceViewTeam,
		PermissionAttendanceCorrect,
	},
	RoleEmployee: {
		PermissionAttendancePunch,
		PermissionAttendanceViewOwn,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
