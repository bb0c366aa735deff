package attendance

import (
	"math"
	"time"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/schedule"
)

const (
	// Used when the employee has no shift or the shift times do not parse
	DefaultShiftStart = "09:00"
	DefaultShiftEnd   = "18:00"

	// StandardWorkHours is the overtime baseline for every shift
	StandardWorkHours = 8.0

	LateThresholdMinutes           = 30.0
	EarlyDepartureThresholdMinutes = 30.0
	HalfDayBelowHours              = 4.0
)

var defaultShift = schedule.WorkShift{Name: "Default", StartTime: DefaultShiftStart, EndTime: DefaultShiftEnd}

// shiftWindow resolves the start and end instants compared against on the day of punchIn.
func shiftWindow(shift *schedule.WorkShift, day time.Time) (start, end time.Time) {
	if shift != nil {
		if s, e, err := shift.Bounds(day); err == nil {
			return s, e
		}
	}
	s, e, _ := defaultShift.Bounds(day)
	return s, e
}

// DeriveStatus recomputes hours, overtime, lateness, early departure and
// status from the record's punches. First matching rule wins:
// no punch-in, late, early departure, under half a day, present.
func DeriveStatus(a *attendance.Attendance, shift *schedule.WorkShift) {
	a.TotalWorkHours = 0
	a.OvertimeHours = 0
	a.LateMinutes = 0
	a.EarlyDepartureMinutes = 0

	if a.PunchIn == nil || a.PunchIn.Timestamp.IsZero() {
		a.Status = attendance.StatusAbsent
		return
	}

	loc := a.PunchIn.Timestamp.Location()
	if !a.Date.IsZero() {
		loc = a.Date.Location()
	}
	punchIn := a.PunchIn.Timestamp.In(loc)
	start, end := shiftWindow(shift, startOfDay(punchIn))

	hours := 0.0
	earlyMinutes := 0.0
	if a.HasPunchedOut() {
		punchOut := a.PunchOut.Timestamp.In(loc)
		hours = math.Max(0, punchOut.Sub(punchIn).Hours())
		earlyMinutes = math.Max(0, end.Sub(punchOut).Minutes())
	}
	lateMinutes := math.Max(0, punchIn.Sub(start).Minutes())

	a.TotalWorkHours = roundHours(hours)
	a.OvertimeHours = roundHours(math.Max(0, hours-StandardWorkHours))
	a.LateMinutes = int(math.Floor(lateMinutes))
	a.EarlyDepartureMinutes = int(math.Floor(earlyMinutes))

	switch {
	case lateMinutes > LateThresholdMinutes:
		a.Status = attendance.StatusLate
	case earlyMinutes > EarlyDepartureThresholdMinutes:
		a.Status = attendance.StatusEarlyDeparture
	case hours < HalfDayBelowHours:
		a.Status = attendance.StatusHalfDay
	default:
		a.Status = attendance.StatusPresent
	}
}

// deriveHours refreshes only the hour fields, leaving status and minutes as set.
func deriveHours(a *attendance.Attendance, shift *schedule.WorkShift) {
	status, late, early := a.Status, a.LateMinutes, a.EarlyDepartureMinutes
	DeriveStatus(a, shift)
	a.Status, a.LateMinutes, a.EarlyDepartureMinutes = status, late, early
}
