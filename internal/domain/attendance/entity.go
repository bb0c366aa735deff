package attendance

import "time"

type Status string

const (
	StatusPresent        Status = "Present"
	StatusAbsent         Status = "Absent"
	StatusHalfDay        Status = "Half Day"
	StatusLate           Status = "Late"
	StatusEarlyDeparture Status = "Early Departure"
	StatusHoliday        Status = "Holiday"
	StatusWeekOff        Status = "Week Off"
	StatusOnLeave        Status = "On Leave"
)

var StatusValues = []string{
	string(StatusPresent),
	string(StatusAbsent),
	string(StatusHalfDay),
	string(StatusLate),
	string(StatusEarlyDeparture),
	string(StatusHoliday),
	string(StatusWeekOff),
	string(StatusOnLeave),
}

// DayStatus classifies a calendar day for one employee
type DayStatus string

const (
	DayWorking DayStatus = "Working Day"
	DayHoliday DayStatus = "Holiday"
	DayWeekOff DayStatus = "Week Off"
)

type Coordinates struct {
	Latitude  float64
	Longitude float64
}

type Punch struct {
	Timestamp   time.Time
	Coordinates Coordinates
}

// Attendance is the single record an employee has for one calendar date.
type Attendance struct {
	ID                     string
	EmployeeID             string
	Date                   time.Time
	PunchIn                *Punch
	PunchOut               *Punch
	TotalWorkHours         float64
	OvertimeHours          float64
	Status                 Status
	LateMinutes            int
	EarlyDepartureMinutes  int
	EarlyDepartureReason   *string
	ShiftID                *string
	OfficeLocationID       *string
	IsWithinOfficeLocation bool
	Notes                  *string
	CreatedAt              time.Time
	UpdatedAt              time.Time

	// Joined from employees on list queries
	EmployeeName *string
	EmployeeCode *string
}

func (a Attendance) HasPunchedOut() bool {
	return a.PunchOut != nil && !a.PunchOut.Timestamp.IsZero()
}

// IsAttended reports whether the status counts as the employee having worked the day
func (s Status) IsAttended() bool {
	switch s {
	case StatusPresent, StatusLate, StatusHalfDay, StatusEarlyDeparture:
		return true
	}
	return false
}
