package user

import "errors"

var (
	ErrInvalidToken             = errors.New("invalid or missing access token")
	ErrEmployeeClaimMissing     = errors.New("access token carries no employee")
	ErrInsufficientPermissions  = errors.New("insufficient permissions")
	ErrHRAccessRequired         = errors.New("HR manager access required")
	ErrSupervisorAccessRequired = errors.New("team leader or HR manager access required")
)
