package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/office"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/user"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/validator"
)

type errorOptions struct {
	geoDebug bool
}

type ErrorOption func(*errorOptions)

// WithGeoDebug attaches distance and coordinates to geofence rejections
func WithGeoDebug(enabled bool) ErrorOption {
	return func(o *errorOptions) {
		o.geoDebug = enabled
	}
}

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error, opts ...ErrorOption) {
	var o errorOptions
	for _, opt := range opts {
		opt(&o)
	}

	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var geoErr *attendance.GeofenceError
	if errors.As(err, &geoErr) {
		var details map[string]string
		if o.geoDebug {
			details = geoErr.DebugDetails()
		}
		PolicyViolation(w, geoErr.Error(), details)
		return
	}

	var dayErr *attendance.DayPolicyError
	if errors.As(err, &dayErr) {
		PolicyViolation(w, dayErr.Error(), nil)
		return
	}

	switch {
	// Auth
	case errors.Is(err, user.ErrInvalidToken),
		errors.Is(err, user.ErrEmployeeClaimMissing):
		Unauthorized(w, err.Error())
	case errors.Is(err, user.ErrInsufficientPermissions),
		errors.Is(err, user.ErrHRAccessRequired),
		errors.Is(err, user.ErrSupervisorAccessRequired),
		errors.Is(err, attendance.ErrForbidden),
		errors.Is(err, employee.ErrNotDirectReport):
		Forbidden(w, err.Error())

	// Lookups
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, office.ErrOfficeLocationNotFound):
		NotFound(w, "Office location not found")
	case errors.Is(err, schedule.ErrWorkShiftNotFound):
		NotFound(w, "Work shift not found")

	// Conflicts
	case errors.Is(err, attendance.ErrAlreadyPunchedIn),
		errors.Is(err, attendance.ErrAlreadyPunchedOut),
		errors.Is(err, attendance.ErrDuplicateAttendance):
		Conflict(w, err.Error())

	// Policy
	case errors.Is(err, attendance.ErrOutsideGeofence),
		errors.Is(err, attendance.ErrNonWorkingDay):
		PolicyViolation(w, err.Error(), nil)

	// Bad input the validator cannot see
	case errors.Is(err, attendance.ErrCoordinatesRequired),
		errors.Is(err, attendance.ErrNoOfficeAssigned),
		errors.Is(err, attendance.ErrPunchOutBeforePunchIn),
		errors.Is(err, attendance.ErrNotPunchedIn):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
