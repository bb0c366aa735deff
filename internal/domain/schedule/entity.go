package schedule

import (
	"fmt"
	"time"
)

type ShiftStatus string

const (
	ShiftStatusActive   ShiftStatus = "Active"
	ShiftStatusInactive ShiftStatus = "Inactive"
)

// WorkShift is the expected daily window an employee is rostered on.
// StartTime and EndTime are "HH:MM" wall-clock strings.
type WorkShift struct {
	ID        string
	Name      string
	StartTime string
	EndTime   string
	Status    ShiftStatus
}

// Bounds anchors the shift on the calendar day of day, in day's location.
// An end at or before the start is read as finishing the next morning.
func (s WorkShift) Bounds(day time.Time) (start, end time.Time, err error) {
	startH, startM, err := ParseClock(s.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start time: %w", err)
	}
	endH, endM, err := ParseClock(s.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("end time: %w", err)
	}

	y, m, d := day.Date()
	loc := day.Location()
	start = time.Date(y, m, d, startH, startM, 0, 0, loc)
	end = time.Date(y, m, d, endH, endM, 0, 0, loc)
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	return start, end, nil
}

// Span is the scheduled length of the shift.
func (s WorkShift) Span() (time.Duration, error) {
	start, end, err := s.Bounds(time.Date(2000, 1, 3, 0, 0, 0, 0, time.UTC))
	if err != nil {
		return 0, err
	}
	return end.Sub(start), nil
}

// ParseClock splits an "HH:MM" string into hour and minute.
func ParseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return t.Hour(), t.Minute(), nil
}
