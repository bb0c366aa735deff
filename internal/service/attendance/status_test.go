package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/schedule"
)

var generalShift = &schedule.WorkShift{ID: shiftID, Name: "General", StartTime: "09:00", EndTime: "18:00"}

func record(date string, in, out string) *attendance.Attendance {
	a := &attendance.Attendance{Date: day(date)}
	if in != "" {
		a.PunchIn = &attendance.Punch{Timestamp: at(date, in)}
	}
	if out != "" {
		a.PunchOut = &attendance.Punch{Timestamp: at(date, out)}
	}
	return a
}

func TestDeriveStatus_PresentOnTime(t *testing.T) {
	a := record("2025-10-15", "09:05", "18:00")

	DeriveStatus(a, generalShift)

	assert.Equal(t, attendance.StatusPresent, a.Status)
	assert.Equal(t, 8.92, a.TotalWorkHours)
	assert.Equal(t, 0.92, a.OvertimeHours)
	assert.Equal(t, 5, a.LateMinutes)
	assert.Equal(t, 0, a.EarlyDepartureMinutes)
}

func TestDeriveStatus_LateRegardlessOfPunchOut(t *testing.T) {
	for _, out := range []string{"", "12:00", "18:00", "21:00"} {
		a := record("2025-10-15", "09:45", out)

		DeriveStatus(a, generalShift)

		assert.Equal(t, attendance.StatusLate, a.Status, "punch out %q", out)
		assert.Equal(t, 45, a.LateMinutes)
	}
}

func TestDeriveStatus_HalfDayInsideShortShift(t *testing.T) {
	afternoon := &schedule.WorkShift{Name: "Afternoon", StartTime: "14:30", EndTime: "18:00"}
	a := record("2025-10-15", "14:30", "18:00")

	DeriveStatus(a, afternoon)

	assert.Equal(t, attendance.StatusHalfDay, a.Status)
	assert.Equal(t, 3.5, a.TotalWorkHours)
	assert.Equal(t, 0.0, a.OvertimeHours)
}

func TestDeriveStatus_EarlyDepartureBeatsHalfDay(t *testing.T) {
	a := record("2025-10-15", "09:00", "12:30")

	DeriveStatus(a, nil)

	assert.Equal(t, attendance.StatusEarlyDeparture, a.Status)
	assert.Equal(t, 3.5, a.TotalWorkHours)
	assert.Equal(t, 330, a.EarlyDepartureMinutes)
}

func TestDeriveStatus_ThresholdsAreExclusive(t *testing.T) {
	late := record("2025-10-15", "09:30", "18:00")
	DeriveStatus(late, nil)
	assert.Equal(t, attendance.StatusPresent, late.Status)

	early := record("2025-10-15", "09:00", "17:30")
	DeriveStatus(early, nil)
	assert.Equal(t, attendance.StatusPresent, early.Status)
	assert.Equal(t, 30, early.EarlyDepartureMinutes)
}

func TestDeriveStatus_NoPunchIn(t *testing.T) {
	a := &attendance.Attendance{Date: day("2025-10-15"), TotalWorkHours: 3, Status: attendance.StatusPresent}

	DeriveStatus(a, generalShift)

	assert.Equal(t, attendance.StatusAbsent, a.Status)
	assert.Zero(t, a.TotalWorkHours)
	assert.Zero(t, a.OvertimeHours)
}

func TestDeriveStatus_OpenRecord(t *testing.T) {
	a := record("2025-10-15", "09:00", "")

	DeriveStatus(a, generalShift)

	assert.Equal(t, attendance.StatusHalfDay, a.Status)
	assert.Zero(t, a.TotalWorkHours)
	assert.Zero(t, a.EarlyDepartureMinutes)
}

func TestDeriveStatus_OvertimeWithoutShiftUsesEightHours(t *testing.T) {
	in := at("2025-10-15", "08:00")
	for _, minutes := range []int{0, 90, 240, 479, 480, 481, 600, 750} {
		a := &attendance.Attendance{
			Date:     day("2025-10-15"),
			PunchIn:  &attendance.Punch{Timestamp: in},
			PunchOut: &attendance.Punch{Timestamp: in.Add(time.Duration(minutes) * time.Minute)},
		}

		DeriveStatus(a, nil)

		delta := float64(minutes) / 60
		assert.InDelta(t, max(0, delta-StandardWorkHours), a.OvertimeHours, 0.005, "minutes %d", minutes)
		assert.GreaterOrEqual(t, a.OvertimeHours, 0.0)
	}
}

func TestDeriveStatus_OvertimeWithShiftUsesEightHours(t *testing.T) {
	tests := []struct {
		out      string
		total    float64
		overtime float64
	}{
		{"17:00", 8.0, 0.0},
		{"18:00", 9.0, 1.0},
		{"18:30", 9.5, 1.5},
		{"20:30", 11.5, 3.5},
	}

	for _, tt := range tests {
		t.Run(tt.out, func(t *testing.T) {
			withShift := record("2025-10-15", "09:00", tt.out)
			DeriveStatus(withShift, generalShift)

			withoutShift := record("2025-10-15", "09:00", tt.out)
			DeriveStatus(withoutShift, nil)

			assert.Equal(t, tt.total, withShift.TotalWorkHours)
			assert.Equal(t, tt.overtime, withShift.OvertimeHours)
			assert.Equal(t, withoutShift.OvertimeHours, withShift.OvertimeHours)
		})
	}
}

func TestDeriveStatus_OvernightShift(t *testing.T) {
	night := &schedule.WorkShift{Name: "Night", StartTime: "22:00", EndTime: "06:00"}
	a := &attendance.Attendance{
		Date:     day("2025-10-15"),
		PunchIn:  &attendance.Punch{Timestamp: at("2025-10-15", "22:10")},
		PunchOut: &attendance.Punch{Timestamp: at("2025-10-16", "06:00")},
	}

	DeriveStatus(a, night)

	assert.Equal(t, attendance.StatusPresent, a.Status)
	assert.Equal(t, 7.83, a.TotalWorkHours)
	assert.Equal(t, 10, a.LateMinutes)
	assert.Zero(t, a.EarlyDepartureMinutes)
}

func TestDeriveStatus_InvalidShiftFallsBackToDefault(t *testing.T) {
	broken := &schedule.WorkShift{Name: "Broken", StartTime: "9am", EndTime: "6pm"}
	a := record("2025-10-15", "09:45", "18:00")

	DeriveStatus(a, broken)

	assert.Equal(t, attendance.StatusLate, a.Status)
	assert.Equal(t, 0.25, a.OvertimeHours)
}

func TestDeriveStatus_Deterministic(t *testing.T) {
	first := record("2025-10-15", "09:20", "17:10")
	DeriveStatus(first, generalShift)

	second := *first
	DeriveStatus(&second, generalShift)

	assert.Equal(t, *first, second)
}

func TestDeriveHours_KeepsStatus(t *testing.T) {
	a := record("2025-10-15", "09:00", "19:00")
	a.Status = attendance.StatusOnLeave
	a.LateMinutes = 7

	deriveHours(a, generalShift)

	assert.Equal(t, attendance.StatusOnLeave, a.Status)
	assert.Equal(t, 7, a.LateMinutes)
	assert.Equal(t, 10.0, a.TotalWorkHours)
	assert.Equal(t, 1.0, a.OvertimeHours)
}
