package attendance

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-engine/internal/pkg/utils"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/validator"
)

// ========================================
// PUNCH DTOs
// ========================================

type PunchInRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (r *PunchInRequest) Validate() error {
	return validateCoordinates(r.Latitude, r.Longitude)
}

type PunchOutRequest struct {
	Latitude             *float64 `json:"latitude"`
	Longitude            *float64 `json:"longitude"`
	EarlyDepartureReason *string  `json:"early_departure_reason,omitempty"`
}

func (r *PunchOutRequest) Validate() error {
	if err := validateCoordinates(r.Latitude, r.Longitude); err != nil {
		return err
	}
	if r.EarlyDepartureReason != nil && len(*r.EarlyDepartureReason) > 500 {
		return validator.ValidationErrors{{
			Field:   "early_departure_reason",
			Message: "early_departure_reason must not exceed 500 characters",
		}}
	}
	return nil
}

// validateCoordinates reports a missing pair as ErrCoordinatesRequired and a
// malformed pair as field-level validation errors.
func validateCoordinates(lat, lng *float64) error {
	if lat == nil || lng == nil {
		return ErrCoordinatesRequired
	}

	var errs validator.ValidationErrors
	if !utils.IsValidCoordinate(*lat, 0) {
		errs.Add("latitude", "latitude must be between -90 and 90")
	}
	if !utils.IsValidCoordinate(0, *lng) {
		errs.Add("longitude", "longitude must be between -180 and 180")
	}
	return errs.Err()
}

// HRPunchRequest is an HR-assisted punch. PunchTime defaults to now and
// its calendar day selects the record.
type HRPunchRequest struct {
	PunchTime *string `json:"punch_time,omitempty"` // RFC3339
}

func (r *HRPunchRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.PunchTime != nil && *r.PunchTime != "" {
		if _, ok := validator.IsValidDateTime(*r.PunchTime); !ok {
			errs.Add("punch_time", "punch_time must be an RFC3339 timestamp")
		}
	}
	return errs.Err()
}

// ========================================
// CORRECTION DTOs
// ========================================

type PunchPatch struct {
	Timestamp *string  `json:"timestamp,omitempty"` // RFC3339
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

func (p *PunchPatch) isEmpty() bool {
	return p == nil || (p.Timestamp == nil && p.Latitude == nil && p.Longitude == nil)
}

// CorrectionRequest overwrites derived fields directly; the status deriver is not run.
type CorrectionRequest struct {
	Status                *string     `json:"status,omitempty"`
	EarlyDepartureMinutes *int        `json:"early_departure_minutes,omitempty"`
	EarlyDepartureReason  *string     `json:"early_departure_reason,omitempty"`
	TotalWorkHours        *float64    `json:"total_work_hours,omitempty"`
	OvertimeHours         *float64    `json:"overtime_hours,omitempty"`
	PunchIn               *PunchPatch `json:"punch_in,omitempty"`
	PunchOut              *PunchPatch `json:"punch_out,omitempty"`
	Notes                 *string     `json:"notes,omitempty"`
}

func (r *CorrectionRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Status == nil && r.EarlyDepartureMinutes == nil && r.EarlyDepartureReason == nil &&
		r.TotalWorkHours == nil && r.OvertimeHours == nil && r.PunchIn.isEmpty() &&
		r.PunchOut.isEmpty() && r.Notes == nil {
		errs.Add("body", "at least one field must be provided")
		return errs
	}

	if r.Status != nil && !validator.IsInSlice(*r.Status, StatusValues) {
		errs.Add("status", "status must be one of: "+strings.Join(StatusValues, ", "))
	}
	if r.EarlyDepartureMinutes != nil && *r.EarlyDepartureMinutes < 0 {
		errs.Add("early_departure_minutes", "early_departure_minutes must not be negative")
	}
	if r.TotalWorkHours != nil && (*r.TotalWorkHours < 0 || *r.TotalWorkHours > 24) {
		errs.Add("total_work_hours", "total_work_hours must be between 0 and 24")
	}
	if r.OvertimeHours != nil && (*r.OvertimeHours < 0 || *r.OvertimeHours > 24) {
		errs.Add("overtime_hours", "overtime_hours must be between 0 and 24")
	}
	validatePatch(&errs, "punch_in", r.PunchIn)
	validatePatch(&errs, "punch_out", r.PunchOut)

	return errs.Err()
}

func validatePatch(errs *validator.ValidationErrors, field string, p *PunchPatch) {
	if p == nil {
		return
	}
	if p.Timestamp != nil {
		if _, ok := validator.IsValidDateTime(*p.Timestamp); !ok {
			errs.Add(field+".timestamp", field+".timestamp must be an RFC3339 timestamp")
		}
	}
	if p.Latitude != nil && !utils.IsValidCoordinate(*p.Latitude, 0) {
		errs.Add(field+".latitude", "latitude must be between -90 and 90")
	}
	if p.Longitude != nil && !utils.IsValidCoordinate(0, *p.Longitude) {
		errs.Add(field+".longitude", "longitude must be between -180 and 180")
	}
}

// ========================================
// RESPONSE DTOs
// ========================================

type PunchResponse struct {
	Timestamp string  `json:"timestamp"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type AttendanceResponse struct {
	ID                     string         `json:"id"`
	EmployeeID             string         `json:"employee_id"`
	EmployeeName           *string        `json:"employee_name,omitempty"`
	EmployeeCode           *string        `json:"employee_code,omitempty"`
	Date                   string         `json:"date"`
	PunchIn                *PunchResponse `json:"punch_in,omitempty"`
	PunchOut               *PunchResponse `json:"punch_out,omitempty"`
	TotalWorkHours         float64        `json:"total_work_hours"`
	OvertimeHours          float64        `json:"overtime_hours"`
	Status                 string         `json:"status"`
	LateMinutes            int            `json:"late_minutes"`
	EarlyDepartureMinutes  int            `json:"early_departure_minutes"`
	EarlyDepartureReason   *string        `json:"early_departure_reason,omitempty"`
	ShiftID                *string        `json:"shift_id,omitempty"`
	OfficeLocationID       *string        `json:"office_location_id,omitempty"`
	IsWithinOfficeLocation bool           `json:"is_within_office_location"`
	Notes                  *string        `json:"notes,omitempty"`
	CreatedAt              string         `json:"created_at"`
	UpdatedAt              string         `json:"updated_at"`
}

type WorkSummary struct {
	TotalHours    float64 `json:"total_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
	Status        string  `json:"status"`
}

type PunchResult struct {
	Attendance     AttendanceResponse `json:"attendance"`
	LocationStatus string             `json:"location_status"`
	WorkSummary    *WorkSummary       `json:"work_summary,omitempty"`
}

type TodayResponse struct {
	Date       string              `json:"date"`
	DayStatus  string              `json:"day_status"`
	Attendance *AttendanceResponse `json:"attendance,omitempty"`
}

// ========================================
// LISTING DTOs
// ========================================

const (
	DefaultPage      = 1
	DefaultLimit     = 30
	MaxLimit         = 100
	DefaultSortBy    = "date"
	DefaultSortOrder = "desc"

	// DefaultListingDays is the trailing window used when a listing names no dates
	DefaultListingDays = 30
	// MaxRangeDays caps an explicit start/end range
	MaxRangeDays = 366
)

var (
	SortFields   = []string{"date", "punch_in", "punch_out", "total_work_hours", "status", "employee_name"}
	MySortFields = []string{"date", "punch_in", "punch_out", "total_work_hours", "status"}
)

type Paging struct {
	Page      int    `json:"page"`
	Limit     int    `json:"limit"`
	SortBy    string `json:"sort_by"`
	SortOrder string `json:"sort_order"`
}

// validate applies defaults then checks ranges
func (p *Paging) validate(errs *validator.ValidationErrors, sortFields []string) {
	if p.Page < 0 {
		errs.Add("page", "page must be a positive number")
	}
	if p.Page == 0 {
		p.Page = DefaultPage
	}

	if p.Limit < 0 {
		errs.Add("limit", "limit must be a positive number")
	}
	if p.Limit == 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		errs.Add("limit", "limit must not exceed 100")
	}

	if p.SortBy == "" {
		p.SortBy = DefaultSortBy
	} else if !validator.IsInSlice(p.SortBy, sortFields) {
		errs.Add("sort_by", "sort_by must be one of: "+strings.Join(sortFields, ", "))
	}

	if p.SortOrder == "" {
		p.SortOrder = DefaultSortOrder
	} else {
		p.SortOrder = strings.ToLower(p.SortOrder)
		if p.SortOrder != "asc" && p.SortOrder != "desc" {
			errs.Add("sort_order", "sort_order must be one of: asc, desc")
		}
	}
}

type AttendanceFilter struct {
	EmployeeID       *string `json:"employee_id,omitempty"`
	DepartmentID     *string `json:"department_id,omitempty"`
	OfficeLocationID *string `json:"office_location_id,omitempty"`
	ShiftID          *string `json:"shift_id,omitempty"`
	Status           *string `json:"status,omitempty"`
	Search           *string `json:"search,omitempty"`     // employee name or code
	StartDate        *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate          *string `json:"end_date,omitempty"`   // YYYY-MM-DD

	Paging
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	f.Paging.validate(&errs, SortFields)

	for field, id := range map[string]*string{
		"employee_id":        f.EmployeeID,
		"department_id":      f.DepartmentID,
		"office_location_id": f.OfficeLocationID,
		"shift_id":           f.ShiftID,
	} {
		if id != nil && *id != "" && !validator.IsValidUUID(*id) {
			errs.Add(field, field+" must be a valid UUID")
		}
	}

	validateStatus(&errs, f.Status)
	validateDateRange(&errs, f.StartDate, f.EndDate)

	return errs.Err()
}

type MyAttendanceFilter struct {
	Status    *string `json:"status,omitempty"`
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD

	Paging
}

func (f *MyAttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	f.Paging.validate(&errs, MySortFields)
	validateStatus(&errs, f.Status)
	validateDateRange(&errs, f.StartDate, f.EndDate)

	return errs.Err()
}

func validateStatus(errs *validator.ValidationErrors, status *string) {
	if status != nil && *status != "" && !validator.IsInSlice(*status, StatusValues) {
		errs.Add("status", "status must be one of: "+strings.Join(StatusValues, ", "))
	}
}

func validateDateRange(errs *validator.ValidationErrors, start, end *string) {
	var startOK, endOK bool
	var startDate, endDate time.Time
	if start != nil && *start != "" {
		if startDate, startOK = validator.IsValidDate(*start); !startOK {
			errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
		}
	}
	if end != nil && *end != "" {
		if endDate, endOK = validator.IsValidDate(*end); !endOK {
			errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
		}
	}
	if !startOK || !endOK {
		return
	}
	if startDate.After(endDate) {
		errs.Add("end_date", "end_date must not be before start_date")
		return
	}
	if RangeTooLong(startDate, endDate) {
		errs.Add("start_date", fmt.Sprintf("date range must not exceed %d days", MaxRangeDays))
	}
}

// RangeTooLong reports whether the inclusive day span [from, to] exceeds MaxRangeDays.
func RangeTooLong(from, to time.Time) bool {
	return to.After(from.AddDate(0, 0, MaxRangeDays-1))
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Showing     string               `json:"showing"`
	StartDate   string               `json:"start_date"`
	EndDate     string               `json:"end_date"`
	Attendances []AttendanceResponse `json:"attendances"`
	Stats       *StatusCounts        `json:"stats,omitempty"`
}

type FilterOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type FilterOptionsResponse struct {
	Statuses        []string       `json:"statuses"`
	OfficeLocations []FilterOption `json:"office_locations"`
	WorkShifts      []FilterOption `json:"work_shifts"`
	SortFields      []string       `json:"sort_fields"`
}

// ========================================
// SUMMARY DTOs
// ========================================

type Scope string

const (
	ScopeSelf     Scope = "self"
	ScopeEmployee Scope = "employee"
	ScopeTeam     Scope = "team"
	ScopeAll      Scope = "all"
)

type Period string

const (
	PeriodToday     Period = "today"
	PeriodYesterday Period = "yesterday"
	PeriodWeek      Period = "week"
	PeriodMonth     Period = "month"
	PeriodQuarter   Period = "quarter"
	PeriodYear      Period = "year"
	PeriodCustom    Period = "custom"
)

type Granularity string

const (
	GranularityDaily   Granularity = "daily"
	GranularityWeekly  Granularity = "weekly"
	GranularityMonthly Granularity = "monthly"
)

type SummaryRequest struct {
	Scope       string  `json:"scope"`
	EmployeeID  *string `json:"employee_id,omitempty"`
	ManagerID   *string `json:"manager_id,omitempty"`
	Period      string  `json:"period"`
	StartDate   *string `json:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
	Granularity string  `json:"granularity"`
}

func (r *SummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Scope == "" {
		r.Scope = string(ScopeSelf)
		if r.EmployeeID != nil && *r.EmployeeID != "" {
			r.Scope = string(ScopeEmployee)
		}
	}
	scopes := []string{string(ScopeSelf), string(ScopeEmployee), string(ScopeTeam), string(ScopeAll)}
	if !validator.IsInSlice(r.Scope, scopes) {
		errs.Add("scope", "scope must be one of: "+strings.Join(scopes, ", "))
	}
	if r.Scope == string(ScopeEmployee) && (r.EmployeeID == nil || !validator.IsValidUUID(*r.EmployeeID)) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}
	if r.ManagerID != nil && *r.ManagerID != "" && !validator.IsValidUUID(*r.ManagerID) {
		errs.Add("manager_id", "manager_id must be a valid UUID")
	}

	hasRange := (r.StartDate != nil && *r.StartDate != "") || (r.EndDate != nil && *r.EndDate != "")
	if r.Period == "" {
		r.Period = string(PeriodMonth)
		if hasRange {
			r.Period = string(PeriodCustom)
		}
	}
	periods := []string{
		string(PeriodToday), string(PeriodYesterday), string(PeriodWeek),
		string(PeriodMonth), string(PeriodQuarter), string(PeriodYear), string(PeriodCustom),
	}
	if !validator.IsInSlice(r.Period, periods) {
		errs.Add("period", "period must be one of: "+strings.Join(periods, ", "))
	}
	validateDateRange(&errs, r.StartDate, r.EndDate)

	if r.Granularity != "" {
		granularities := []string{string(GranularityDaily), string(GranularityWeekly), string(GranularityMonthly)}
		if !validator.IsInSlice(r.Granularity, granularities) {
			errs.Add("granularity", "granularity must be one of: "+strings.Join(granularities, ", "))
		}
	}

	return errs.Err()
}

type StatusCounts struct {
	Present        int `json:"present"`
	Late           int `json:"late"`
	HalfDay        int `json:"half_day"`
	EarlyDeparture int `json:"early_departure"`
	Absent         int `json:"absent"`
	OnLeave        int `json:"on_leave"`
	Holiday        int `json:"holiday"`
	WeekOff        int `json:"week_off"`
	Recorded       int `json:"recorded"`
}

type HoursSummary struct {
	TotalWorkHours     float64 `json:"total_work_hours"`
	TotalOvertimeHours float64 `json:"total_overtime_hours"`
	AverageHoursPerDay float64 `json:"average_hours_per_day"`
}

type Performance struct {
	AttendanceRate   float64 `json:"attendance_rate"`
	PunctualityRate  float64 `json:"punctuality_rate"`
	ConsistencyScore float64 `json:"consistency_score"`
	Improvement      float64 `json:"improvement"`
}

type OvertimeAnalysis struct {
	TotalHours   float64 `json:"total_hours"`
	AverageHours float64 `json:"average_hours"`
	MaxHours     float64 `json:"max_hours"`
	Days         int     `json:"days"`
}

type TrendBucket struct {
	Label          string       `json:"label"`
	StartDate      string       `json:"start_date"`
	EndDate        string       `json:"end_date"`
	WorkingDays    int          `json:"working_days"`
	Counts         StatusCounts `json:"counts"`
	TotalWorkHours float64      `json:"total_work_hours"`
	OvertimeHours  float64      `json:"overtime_hours"`
	AttendanceRate float64      `json:"attendance_rate"`
}

type SummaryResponse struct {
	Scope       string           `json:"scope"`
	EmployeeID  *string          `json:"employee_id,omitempty"`
	Employees   int              `json:"employees"`
	Period      string           `json:"period"`
	Granularity string           `json:"granularity"`
	StartDate   string           `json:"start_date"`
	EndDate     string           `json:"end_date"`
	WorkingDays int              `json:"working_days"`
	Holidays    int              `json:"holidays"`
	Stats       StatusCounts     `json:"stats"`
	Hours       HoursSummary     `json:"hours"`
	Performance Performance      `json:"performance"`
	Overtime    OvertimeAnalysis `json:"overtime"`
	Trend       []TrendBucket    `json:"trend"`
}

// ========================================
// CALENDAR DTOs
// ========================================

type CalendarRequest struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Year       int     `json:"year"`
	Month      int     `json:"month"`
}

func (r *CalendarRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.EmployeeID != nil && *r.EmployeeID != "" && !validator.IsValidUUID(*r.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}
	if r.Year != 0 && (r.Year < 2000 || r.Year > 2100) {
		errs.Add("year", "year must be between 2000 and 2100")
	}
	if r.Month != 0 && (r.Month < 1 || r.Month > 12) {
		errs.Add("month", "month must be between 1 and 12")
	}
	return errs.Err()
}

// Calendar day entry labels beyond the attendance statuses
const (
	CalendarNotRecorded   = "Not Recorded"
	CalendarFuture        = "Future"
	CalendarBeforeJoining = "Before Joining"
)

type CalendarDay struct {
	Date           string   `json:"date"`
	DayStatus      string   `json:"day_status"`
	Status         string   `json:"status"`
	TotalWorkHours *float64 `json:"total_work_hours,omitempty"`
	IsToday        bool     `json:"is_today"`
	IsJoinDate     bool     `json:"is_join_date"`
}

type CalendarSummary struct {
	WorkingDays    int          `json:"working_days"`
	RecordedDays   int          `json:"recorded_days"`
	Counts         StatusCounts `json:"counts"`
	AttendanceRate float64      `json:"attendance_rate"`
}

type CalendarResponse struct {
	EmployeeID  string          `json:"employee_id"`
	Year        int             `json:"year"`
	Month       int             `json:"month"`
	WindowStart string          `json:"window_start,omitempty"`
	WindowEnd   string          `json:"window_end,omitempty"`
	JoinDate    string          `json:"join_date"`
	Days        []CalendarDay   `json:"days"`
	Summary     CalendarSummary `json:"summary"`
}
