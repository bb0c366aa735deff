package attendance

import (
	"testing"

	"github.com/cmlabs-hris/attendance-engine/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestPunchInRequest_Validate(t *testing.T) {
	t.Run("missing coordinates", func(t *testing.T) {
		req := PunchInRequest{Latitude: ptr(12.9)}
		assert.ErrorIs(t, req.Validate(), ErrCoordinatesRequired)
	})

	t.Run("out of range", func(t *testing.T) {
		req := PunchInRequest{Latitude: ptr(91.0), Longitude: ptr(181.0)}
		var verrs validator.ValidationErrors
		require.ErrorAs(t, req.Validate(), &verrs)
		m := verrs.ToMap()
		assert.Contains(t, m, "latitude")
		assert.Contains(t, m, "longitude")
	})

	t.Run("valid", func(t *testing.T) {
		req := PunchInRequest{Latitude: ptr(0.0), Longitude: ptr(0.0)}
		assert.NoError(t, req.Validate())
	})
}

func TestAttendanceFilter_Validate_Defaults(t *testing.T) {
	f := AttendanceFilter{}
	require.NoError(t, f.Validate())
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 30, f.Limit)
	assert.Equal(t, "date", f.SortBy)
	assert.Equal(t, "desc", f.SortOrder)
}

func TestAttendanceFilter_Validate_Errors(t *testing.T) {
	f := AttendanceFilter{
		EmployeeID: ptr("not-a-uuid"),
		Status:     ptr("present"),
		StartDate:  ptr("2024-03-10"),
		EndDate:    ptr("2024-03-01"),
		Paging:     Paging{Page: -1, Limit: 101, SortBy: "salary", SortOrder: "up"},
	}
	var verrs validator.ValidationErrors
	require.ErrorAs(t, f.Validate(), &verrs)
	m := verrs.ToMap()
	for _, field := range []string{"employee_id", "status", "end_date", "page", "limit", "sort_by", "sort_order"} {
		assert.Contains(t, m, field)
	}
}

func TestMyAttendanceFilter_Validate_RejectsEmployeeSort(t *testing.T) {
	f := MyAttendanceFilter{Paging: Paging{SortBy: "employee_name"}}
	assert.Error(t, f.Validate())
}

func TestCorrectionRequest_Validate(t *testing.T) {
	empty := CorrectionRequest{PunchIn: &PunchPatch{}}
	var verrs validator.ValidationErrors
	require.ErrorAs(t, empty.Validate(), &verrs)
	assert.Contains(t, verrs.ToMap(), "body")

	bad := CorrectionRequest{
		Status:         ptr("Excused"),
		TotalWorkHours: ptr(-1.0),
		PunchOut:       &PunchPatch{Timestamp: ptr("18:00")},
	}
	require.ErrorAs(t, bad.Validate(), &verrs)
	m := verrs.ToMap()
	assert.Contains(t, m, "status")
	assert.Contains(t, m, "total_work_hours")
	assert.Contains(t, m, "punch_out.timestamp")

	ok := CorrectionRequest{Status: ptr("Half Day"), Notes: ptr("left for clinic")}
	assert.NoError(t, ok.Validate())
}

func TestSummaryRequest_Validate_Defaults(t *testing.T) {
	r := SummaryRequest{}
	require.NoError(t, r.Validate())
	assert.Equal(t, string(ScopeSelf), r.Scope)
	assert.Equal(t, string(PeriodMonth), r.Period)

	r = SummaryRequest{EmployeeID: ptr("0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b"), StartDate: ptr("2024-01-01")}
	require.NoError(t, r.Validate())
	assert.Equal(t, string(ScopeEmployee), r.Scope)
	assert.Equal(t, string(PeriodCustom), r.Period)
}

func TestSummaryRequest_Validate_Errors(t *testing.T) {
	r := SummaryRequest{Scope: "company", Period: "decade", Granularity: "hourly"}
	var verrs validator.ValidationErrors
	require.ErrorAs(t, r.Validate(), &verrs)
	m := verrs.ToMap()
	assert.Contains(t, m, "scope")
	assert.Contains(t, m, "period")
	assert.Contains(t, m, "granularity")
}

func TestSummaryRequest_Validate_RangeCap(t *testing.T) {
	leapYear := SummaryRequest{StartDate: ptr("2024-01-01"), EndDate: ptr("2024-12-31")}
	assert.NoError(t, leapYear.Validate())

	tooLong := SummaryRequest{StartDate: ptr("2024-01-01"), EndDate: ptr("2025-01-01")}
	var verrs validator.ValidationErrors
	require.ErrorAs(t, tooLong.Validate(), &verrs)
	assert.Contains(t, verrs.ToMap(), "start_date")

	ancient := AttendanceFilter{StartDate: ptr("0001-01-01"), EndDate: ptr("2025-10-15")}
	require.ErrorAs(t, ancient.Validate(), &verrs)
	assert.Equal(t, "date range must not exceed 366 days", verrs.ToMap()["start_date"])
}

func TestCalendarRequest_Validate(t *testing.T) {
	assert.NoError(t, (&CalendarRequest{}).Validate())
	assert.Error(t, (&CalendarRequest{Month: 13}).Validate())
}

func TestGeofenceError_UnwrapsAndDetails(t *testing.T) {
	err := &GeofenceError{Distance: 612.5, Radius: 500, User: Coordinates{1, 2}, Office: Coordinates{3, 4}}
	assert.ErrorIs(t, err, ErrOutsideGeofence)
	d := err.DebugDetails()
	assert.Equal(t, "612.50", d["distance_meters"])
	assert.Equal(t, "500", d["radius_meters"])
	assert.Equal(t, "3", d["office_latitude"])
}

func TestDayPolicyError_Message(t *testing.T) {
	err := &DayPolicyError{Day: DayWeekOff}
	assert.ErrorIs(t, err, ErrNonWorkingDay)
	assert.Equal(t, "cannot punch in on Week Off", err.Error())
}
