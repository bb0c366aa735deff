package schedule

import "errors"

var (
	ErrWorkShiftNotFound = errors.New("work shift not found")
	ErrInvalidClock      = errors.New("shift time must be HH:MM")
)
