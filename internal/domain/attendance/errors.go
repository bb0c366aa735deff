package attendance

import (
	"errors"
	"fmt"
	"strconv"
)

// Attendance domain errors
var (
	// Punch validation
	ErrCoordinatesRequired   = errors.New("latitude and longitude are required")
	ErrNoOfficeAssigned      = errors.New("no office location assigned to employee")
	ErrPunchOutBeforePunchIn = errors.New("punch out must be after punch in")

	// Policy
	ErrOutsideGeofence = errors.New("service available only inside the office")
	ErrNonWorkingDay   = errors.New("cannot punch in on a non-working day")

	// Conflicts
	ErrAlreadyPunchedIn    = errors.New("you have already punched in for today")
	ErrAlreadyPunchedOut   = errors.New("you have already punched out for today")
	ErrDuplicateAttendance = errors.New("attendance already exists for employee and date")

	// Lookups
	ErrNotPunchedIn       = errors.New("no punch in found for today")
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrForbidden          = errors.New("not allowed to access this attendance record")
)

// GeofenceError reports a punch outside the allowed radius. It unwraps to ErrOutsideGeofence.
type GeofenceError struct {
	Distance float64
	Radius   float64
	User     Coordinates
	Office   Coordinates
}

func (e *GeofenceError) Error() string {
	return ErrOutsideGeofence.Error()
}

func (e *GeofenceError) Unwrap() error {
	return ErrOutsideGeofence
}

// DebugDetails exposes the raw geometry; callers gate it on configuration.
func (e *GeofenceError) DebugDetails() map[string]string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return map[string]string{
		"distance_meters":  strconv.FormatFloat(e.Distance, 'f', 2, 64),
		"radius_meters":    f(e.Radius),
		"user_latitude":    f(e.User.Latitude),
		"user_longitude":   f(e.User.Longitude),
		"office_latitude":  f(e.Office.Latitude),
		"office_longitude": f(e.Office.Longitude),
	}
}

// DayPolicyError rejects an HR-assisted punch on a Holiday or Week Off. It unwraps to ErrNonWorkingDay.
type DayPolicyError struct {
	Day DayStatus
}

func (e *DayPolicyError) Error() string {
	return fmt.Sprintf("cannot punch in on %s", e.Day)
}

func (e *DayPolicyError) Unwrap() error {
	return ErrNonWorkingDay
}
