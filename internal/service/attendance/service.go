package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/office"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/user"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/validator"
)

const (
	locationWithin  = "Within office premises"
	locationOutside = "Outside office premises"

	todayAttendanceRecorded = "Attendance Recorded"
	todayNotPunchedIn       = "Working Day - Not Punched In"
)

// Config carries the engine's runtime settings.
type Config struct {
	Location       *time.Location
	GeofenceRadius float64
	Now            func() time.Time
	Logger         *slog.Logger
}

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository

	employees employee.EmployeeRepository
	offices   office.OfficeLocationRepository
	shifts    schedule.WorkShiftRepository

	geo    *GeoValidator
	days   *DayClassifier
	loc    *time.Location
	now    func() time.Time
	logger *slog.Logger
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	officeRepo office.OfficeLocationRepository,
	eventRepo office.EventRepository,
	shiftRepo schedule.WorkShiftRepository,
	cfg Config,
) attendance.AttendanceService {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	logger := cfg.Logger.With(slog.String("component", "attendance"))

	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		employees:            employeeRepo,
		offices:              officeRepo,
		shifts:               shiftRepo,
		geo:                  NewGeoValidator(officeRepo, cfg.GeofenceRadius, logger),
		days:                 NewDayClassifier(eventRepo),
		loc:                  cfg.Location,
		now:                  cfg.Now,
		logger:               logger,
	}
}

// today returns the current instant and its calendar date in the engine's location.
func (s *AttendanceServiceImpl) today() (now, date time.Time) {
	now = s.now().In(s.loc)
	return now, startOfDay(now)
}

// PunchIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) PunchIn(ctx context.Context, actor user.Actor, req attendance.PunchInRequest) (attendance.PunchResult, error) {
	if err := req.Validate(); err != nil {
		return attendance.PunchResult{}, err
	}

	emp, err := s.getEmployee(ctx, actor.EmployeeID)
	if err != nil {
		return attendance.PunchResult{}, err
	}
	if !emp.HasOffice() {
		return attendance.PunchResult{}, attendance.ErrNoOfficeAssigned
	}

	now, date := s.today()
	if err := s.ensureNoRecord(ctx, emp.ID, date); err != nil {
		return attendance.PunchResult{}, err
	}

	geo, err := s.geo.Validate(ctx, *req.Latitude, *req.Longitude, *emp.OfficeLocationID)
	if err != nil {
		return attendance.PunchResult{}, err
	}
	if !geo.Within {
		s.logger.InfoContext(ctx, "punch in rejected outside geofence",
			slog.String("employee_id", emp.ID),
			slog.String("reason", geo.Reason),
		)
		return attendance.PunchResult{}, geo.Err()
	}

	record := attendance.Attendance{
		EmployeeID: emp.ID,
		Date:       date,
		PunchIn: &attendance.Punch{
			Timestamp:   now,
			Coordinates: geo.User,
		},
		ShiftID:                emp.WorkShiftID,
		OfficeLocationID:       emp.OfficeLocationID,
		IsWithinOfficeLocation: true,
	}

	return s.createPunchIn(ctx, record)
}

// PunchOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) PunchOut(ctx context.Context, actor user.Actor, req attendance.PunchOutRequest) (attendance.PunchResult, error) {
	if err := req.Validate(); err != nil {
		return attendance.PunchResult{}, err
	}

	now, date := s.today()
	record, err := s.openRecord(ctx, actor.EmployeeID, date)
	if err != nil {
		return attendance.PunchResult{}, err
	}

	geo, err := s.geo.Validate(ctx, *req.Latitude, *req.Longitude, *record.OfficeLocationID)
	if err != nil {
		return attendance.PunchResult{}, err
	}
	if !geo.Within {
		s.logger.InfoContext(ctx, "punch out rejected outside geofence",
			slog.String("employee_id", actor.EmployeeID),
			slog.String("reason", geo.Reason),
		)
		return attendance.PunchResult{}, geo.Err()
	}

	record.PunchOut = &attendance.Punch{Timestamp: now, Coordinates: geo.User}
	if req.EarlyDepartureReason != nil && *req.EarlyDepartureReason != "" {
		record.EarlyDepartureReason = req.EarlyDepartureReason
	}
	record.IsWithinOfficeLocation = true

	return s.completePunchOut(ctx, record)
}

// PunchInByHR implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) PunchInByHR(ctx context.Context, actor user.Actor, employeeID string, req attendance.HRPunchRequest) (attendance.PunchResult, error) {
	if !actor.IsHR() {
		return attendance.PunchResult{}, user.ErrHRAccessRequired
	}
	if err := req.Validate(); err != nil {
		return attendance.PunchResult{}, err
	}

	emp, err := s.getEmployee(ctx, employeeID)
	if err != nil {
		return attendance.PunchResult{}, err
	}
	if !emp.HasOffice() {
		return attendance.PunchResult{}, attendance.ErrNoOfficeAssigned
	}

	punchAt := s.punchTime(req.PunchTime)
	date := startOfDay(punchAt)

	day, err := s.days.Classify(ctx, emp, date)
	if err != nil {
		return attendance.PunchResult{}, err
	}
	if day != attendance.DayWorking {
		s.logger.InfoContext(ctx, "hr punch in rejected on non-working day",
			slog.String("employee_id", emp.ID),
			slog.String("day_status", string(day)),
		)
		return attendance.PunchResult{}, &attendance.DayPolicyError{Day: day}
	}

	if err := s.ensureNoRecord(ctx, emp.ID, date); err != nil {
		return attendance.PunchResult{}, err
	}

	geo, err := s.officeSelfCheck(ctx, *emp.OfficeLocationID)
	if err != nil {
		return attendance.PunchResult{}, err
	}

	record := attendance.Attendance{
		EmployeeID:             emp.ID,
		Date:                   date,
		PunchIn:                &attendance.Punch{Timestamp: punchAt, Coordinates: geo.Office},
		ShiftID:                emp.WorkShiftID,
		OfficeLocationID:       emp.OfficeLocationID,
		IsWithinOfficeLocation: true,
	}

	result, err := s.createPunchIn(ctx, record)
	if err == nil {
		s.logger.InfoContext(ctx, "hr punch in recorded",
			slog.String("employee_id", emp.ID),
			slog.String("by", actor.EmployeeID),
		)
	}
	return result, err
}

// PunchOutByHR implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) PunchOutByHR(ctx context.Context, actor user.Actor, employeeID string, req attendance.HRPunchRequest) (attendance.PunchResult, error) {
	if !actor.IsHR() {
		return attendance.PunchResult{}, user.ErrHRAccessRequired
	}
	if err := req.Validate(); err != nil {
		return attendance.PunchResult{}, err
	}

	punchAt := s.punchTime(req.PunchTime)
	record, err := s.openRecord(ctx, employeeID, startOfDay(punchAt))
	if err != nil {
		return attendance.PunchResult{}, err
	}

	geo, err := s.officeSelfCheck(ctx, *record.OfficeLocationID)
	if err != nil {
		return attendance.PunchResult{}, err
	}

	record.PunchOut = &attendance.Punch{Timestamp: punchAt, Coordinates: geo.Office}
	record.IsWithinOfficeLocation = true

	result, err := s.completePunchOut(ctx, record)
	if err == nil {
		s.logger.InfoContext(ctx, "hr punch out recorded",
			slog.String("employee_id", employeeID),
			slog.String("by", actor.EmployeeID),
		)
	}
	return result, err
}

// punchTime parses an optional RFC3339 override, defaulting to now.
func (s *AttendanceServiceImpl) punchTime(raw *string) time.Time {
	if raw != nil && *raw != "" {
		if t, ok := validator.IsValidDateTime(*raw); ok {
			return t.In(s.loc)
		}
	}
	now, _ := s.today()
	return now
}

// officeSelfCheck runs the geofence with the office's own coordinates, so it
// only fails when the office is missing or has no usable coordinates.
func (s *AttendanceServiceImpl) officeSelfCheck(ctx context.Context, officeID string) (GeoResult, error) {
	loc, err := s.geo.LoadOffice(ctx, officeID)
	if err != nil {
		return GeoResult{}, err
	}
	if loc == nil {
		res := GeoResult{Radius: s.geo.radius, Reason: "office not found"}
		return res, res.Err()
	}
	lat, lng, _ := loc.Coordinates()
	geo := s.geo.Check(ctx, *loc, lat, lng)
	if !geo.Within {
		return geo, geo.Err()
	}
	return geo, nil
}

func (s *AttendanceServiceImpl) ensureNoRecord(ctx context.Context, employeeID string, date time.Time) error {
	existing, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return fmt.Errorf("failed to check existing attendance: %w", err)
	}
	if existing != nil {
		return attendance.ErrAlreadyPunchedIn
	}
	return nil
}

// openRecord returns the employee's record for date that still awaits a punch-out.
func (s *AttendanceServiceImpl) openRecord(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	record, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	if record == nil || record.PunchIn == nil {
		return attendance.Attendance{}, attendance.ErrNotPunchedIn
	}
	if record.HasPunchedOut() {
		return attendance.Attendance{}, attendance.ErrAlreadyPunchedOut
	}
	if record.OfficeLocationID == nil || *record.OfficeLocationID == "" {
		return attendance.Attendance{}, attendance.ErrNoOfficeAssigned
	}
	return *record, nil
}

func (s *AttendanceServiceImpl) createPunchIn(ctx context.Context, record attendance.Attendance) (attendance.PunchResult, error) {
	shift, err := s.resolveShift(ctx, record.ShiftID)
	if err != nil {
		return attendance.PunchResult{}, err
	}
	DeriveStatus(&record, shift)

	created, err := s.AttendanceRepository.Create(ctx, record)
	if err != nil {
		if errors.Is(err, attendance.ErrDuplicateAttendance) {
			// Lost a race with a concurrent punch-in for the same day
			return attendance.PunchResult{}, attendance.ErrAlreadyPunchedIn
		}
		s.logger.ErrorContext(ctx, "failed to create attendance", slog.String("employee_id", record.EmployeeID), slog.Any("error", err))
		return attendance.PunchResult{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return attendance.PunchResult{
		Attendance:     s.mapAttendanceToResponse(created),
		LocationStatus: locationStatus(created.IsWithinOfficeLocation),
	}, nil
}

func (s *AttendanceServiceImpl) completePunchOut(ctx context.Context, record attendance.Attendance) (attendance.PunchResult, error) {
	if !record.PunchOut.Timestamp.After(record.PunchIn.Timestamp) {
		return attendance.PunchResult{}, attendance.ErrPunchOutBeforePunchIn
	}

	shift, err := s.resolveShift(ctx, record.ShiftID)
	if err != nil {
		return attendance.PunchResult{}, err
	}
	DeriveStatus(&record, shift)

	if err := s.AttendanceRepository.CompletePunchOut(ctx, record); err != nil {
		if errors.Is(err, attendance.ErrAlreadyPunchedOut) {
			return attendance.PunchResult{}, err
		}
		s.logger.ErrorContext(ctx, "failed to record punch out", slog.String("attendance_id", record.ID), slog.Any("error", err))
		return attendance.PunchResult{}, fmt.Errorf("failed to record punch out: %w", err)
	}

	return attendance.PunchResult{
		Attendance:     s.mapAttendanceToResponse(record),
		LocationStatus: locationStatus(record.IsWithinOfficeLocation),
		WorkSummary: &attendance.WorkSummary{
			TotalHours:    record.TotalWorkHours,
			OvertimeHours: record.OvertimeHours,
			Status:        string(record.Status),
		},
	}, nil
}

// resolveShift returns nil when no shift is assigned or the assignment is dangling.
func (s *AttendanceServiceImpl) resolveShift(ctx context.Context, shiftID *string) (*schedule.WorkShift, error) {
	if shiftID == nil || *shiftID == "" {
		return nil, nil
	}
	shift, err := s.shifts.GetByID(ctx, *shiftID)
	if err != nil {
		if errors.Is(err, schedule.ErrWorkShiftNotFound) {
			s.logger.WarnContext(ctx, "assigned work shift not found, using default window", slog.String("shift_id", *shiftID))
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get work shift: %w", err)
	}
	return &shift, nil
}

func (s *AttendanceServiceImpl) getEmployee(ctx context.Context, id string) (employee.Employee, error) {
	if id == "" {
		return employee.Employee{}, user.ErrEmployeeClaimMissing
	}
	emp, err := s.employees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, err
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return emp, nil
}

// authorizeEmployee loads employeeID if the actor may see their attendance:
// themselves, anyone for HR, direct reports for a team leader.
func (s *AttendanceServiceImpl) authorizeEmployee(ctx context.Context, actor user.Actor, employeeID string) (employee.Employee, error) {
	emp, err := s.getEmployee(ctx, employeeID)
	if err != nil {
		return employee.Employee{}, err
	}
	switch {
	case emp.ID == actor.EmployeeID, actor.IsHR():
		return emp, nil
	case actor.IsTeamLeader():
		if emp.ReportsTo(actor.EmployeeID) {
			return emp, nil
		}
		return employee.Employee{}, employee.ErrNotDirectReport
	}
	return employee.Employee{}, attendance.ErrForbidden
}

// Correct implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Correct(ctx context.Context, actor user.Actor, id string, req attendance.CorrectionRequest) (attendance.AttendanceResponse, error) {
	if !actor.CanSupervise() {
		return attendance.AttendanceResponse{}, user.ErrSupervisorAccessRequired
	}
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := s.getRecord(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if actor.IsTeamLeader() {
		if _, err := s.authorizeEmployee(ctx, actor, record.EmployeeID); err != nil {
			return attendance.AttendanceResponse{}, err
		}
		if record.EmployeeID == actor.EmployeeID {
			return attendance.AttendanceResponse{}, employee.ErrNotDirectReport
		}
	}

	punchChanged, err := s.mergePunches(&record, req)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if punchChanged && req.TotalWorkHours == nil && req.OvertimeHours == nil {
		shift, err := s.resolveShift(ctx, record.ShiftID)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		deriveHours(&record, shift)
	}

	if req.Status != nil {
		record.Status = attendance.Status(*req.Status)
	}
	if req.EarlyDepartureMinutes != nil {
		record.EarlyDepartureMinutes = *req.EarlyDepartureMinutes
	}
	if req.EarlyDepartureReason != nil {
		record.EarlyDepartureReason = req.EarlyDepartureReason
	}
	if req.TotalWorkHours != nil {
		record.TotalWorkHours = roundHours(*req.TotalWorkHours)
	}
	if req.OvertimeHours != nil {
		record.OvertimeHours = roundHours(*req.OvertimeHours)
	}
	if req.Notes != nil {
		record.Notes = req.Notes
	}

	if err := s.AttendanceRepository.Update(ctx, record); err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	s.logger.InfoContext(ctx, "attendance corrected",
		slog.String("attendance_id", record.ID),
		slog.String("employee_id", record.EmployeeID),
		slog.String("by", actor.EmployeeID),
		slog.String("status", string(record.Status)),
	)

	return s.mapAttendanceToResponse(record), nil
}

// mergePunches applies punch patches in place and reports whether a timestamp moved.
func (s *AttendanceServiceImpl) mergePunches(record *attendance.Attendance, req attendance.CorrectionRequest) (bool, error) {
	changed := false
	merge := func(field string, current *attendance.Punch, patch *attendance.PunchPatch) (*attendance.Punch, error) {
		if patch == nil {
			return current, nil
		}
		var next attendance.Punch
		if current != nil {
			next = *current
		} else if patch.Timestamp == nil {
			return nil, validator.ValidationErrors{{
				Field:   field + ".timestamp",
				Message: field + ".timestamp is required when the record has none",
			}}
		}
		if patch.Timestamp != nil {
			t, _ := validator.IsValidDateTime(*patch.Timestamp)
			next.Timestamp = t.In(s.loc)
			changed = true
		}
		if patch.Latitude != nil {
			next.Coordinates.Latitude = *patch.Latitude
		}
		if patch.Longitude != nil {
			next.Coordinates.Longitude = *patch.Longitude
		}
		return &next, nil
	}

	punchIn, err := merge("punch_in", record.PunchIn, req.PunchIn)
	if err != nil {
		return false, err
	}
	punchOut, err := merge("punch_out", record.PunchOut, req.PunchOut)
	if err != nil {
		return false, err
	}
	if punchOut != nil && punchIn == nil {
		return false, attendance.ErrNotPunchedIn
	}
	if punchIn != nil && punchOut != nil && !punchOut.Timestamp.After(punchIn.Timestamp) {
		return false, attendance.ErrPunchOutBeforePunchIn
	}

	record.PunchIn, record.PunchOut = punchIn, punchOut
	return changed, nil
}

func (s *AttendanceServiceImpl) getRecord(ctx context.Context, id string) (attendance.Attendance, error) {
	if !validator.IsValidUUID(id) {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	record, err := s.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.Attendance{}, err
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return record, nil
}

// GetByID implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetByID(ctx context.Context, actor user.Actor, id string) (attendance.AttendanceResponse, error) {
	record, err := s.getRecord(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if record.EmployeeID != actor.EmployeeID && !actor.IsHR() {
		if _, err := s.authorizeEmployee(ctx, actor, record.EmployeeID); err != nil {
			return attendance.AttendanceResponse{}, err
		}
	}
	return s.mapAttendanceToResponse(record), nil
}

// GetToday implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetToday(ctx context.Context, actor user.Actor, employeeID string) (attendance.TodayResponse, error) {
	if employeeID == "" {
		employeeID = actor.EmployeeID
	}
	emp, err := s.authorizeEmployee(ctx, actor, employeeID)
	if err != nil {
		return attendance.TodayResponse{}, err
	}

	_, date := s.today()
	resp := attendance.TodayResponse{Date: dayKey(date)}

	record, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, emp.ID, date)
	if err != nil {
		return attendance.TodayResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if record != nil {
		mapped := s.mapAttendanceToResponse(*record)
		resp.Attendance = &mapped
		resp.DayStatus = todayAttendanceRecorded
		return resp, nil
	}

	day, err := s.days.Classify(ctx, emp, date)
	if err != nil {
		return attendance.TodayResponse{}, err
	}
	resp.DayStatus = string(day)
	if day == attendance.DayWorking {
		resp.DayStatus = todayNotPunchedIn
	}
	return resp, nil
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context, actor user.Actor, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if !actor.CanSupervise() {
		return attendance.ListAttendanceResponse{}, user.ErrSupervisorAccessRequired
	}
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	span, err := s.listingRange(filter.StartDate, filter.EndDate)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	query := attendance.Query{
		EmployeeID:       nonEmpty(filter.EmployeeID),
		DepartmentID:     nonEmpty(filter.DepartmentID),
		OfficeLocationID: nonEmpty(filter.OfficeLocationID),
		ShiftID:          nonEmpty(filter.ShiftID),
		Status:           statusPtr(filter.Status),
		Search:           nonEmpty(filter.Search),
		From:             span.From,
		To:               span.To,
		Page:             filter.Page,
		Limit:            filter.Limit,
		SortBy:           filter.SortBy,
		SortOrder:        filter.SortOrder,
	}
	if actor.IsTeamLeader() {
		query.ManagerID = &actor.EmployeeID
	}

	return s.list(ctx, query, span)
}

// ListMine implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListMine(ctx context.Context, actor user.Actor, filter attendance.MyAttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if actor.EmployeeID == "" {
		return attendance.ListAttendanceResponse{}, user.ErrEmployeeClaimMissing
	}
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	span, err := s.listingRange(filter.StartDate, filter.EndDate)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	resp, err := s.list(ctx, attendance.Query{
		EmployeeID: &actor.EmployeeID,
		Status:     statusPtr(filter.Status),
		From:       span.From,
		To:         span.To,
		Page:       filter.Page,
		Limit:      filter.Limit,
		SortBy:     filter.SortBy,
		SortOrder:  filter.SortOrder,
	}, span)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, err := s.AttendanceRepository.ListForRange(ctx, attendance.RangeQuery{
		EmployeeIDs: []string{actor.EmployeeID},
		From:        span.From,
		To:          span.To,
	})
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to load attendance stats: %w", err)
	}
	var stats attendance.StatusCounts
	for _, r := range records {
		countStatus(&stats, r.Status)
	}
	resp.Stats = &stats

	return resp, nil
}

// listingRange applies the trailing-window default used by record listings.
func (s *AttendanceServiceImpl) listingRange(start, end *string) (DateRange, error) {
	_, today := s.today()
	if !hasValue(start) && !hasValue(end) {
		return DateRange{From: today.AddDate(0, 0, -(attendance.DefaultListingDays - 1)), To: today}, nil
	}
	return ResolvePeriod(attendance.PeriodCustom, start, end, today)
}

func (s *AttendanceServiceImpl) list(ctx context.Context, query attendance.Query, span DateRange) (attendance.ListAttendanceResponse, error) {
	records, total, err := s.AttendanceRepository.List(ctx, query)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, s.mapAttendanceToResponse(r))
	}

	totalPages := int(math.Ceil(float64(total) / float64(query.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", query.Offset()+1, min(query.Page*query.Limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        query.Page,
		Limit:       query.Limit,
		TotalPages:  totalPages,
		Showing:     showing,
		StartDate:   dayKey(span.From),
		EndDate:     dayKey(span.To),
		Attendances: responses,
	}, nil
}

// FilterOptions implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) FilterOptions(ctx context.Context) (attendance.FilterOptionsResponse, error) {
	offices, err := s.offices.List(ctx)
	if err != nil {
		return attendance.FilterOptionsResponse{}, fmt.Errorf("failed to list office locations: %w", err)
	}
	shifts, err := s.shifts.List(ctx)
	if err != nil {
		return attendance.FilterOptionsResponse{}, fmt.Errorf("failed to list work shifts: %w", err)
	}

	resp := attendance.FilterOptionsResponse{
		Statuses:        attendance.StatusValues,
		OfficeLocations: make([]attendance.FilterOption, 0, len(offices)),
		WorkShifts:      make([]attendance.FilterOption, 0, len(shifts)),
		SortFields:      attendance.SortFields,
	}
	for _, o := range offices {
		resp.OfficeLocations = append(resp.OfficeLocations, attendance.FilterOption{ID: o.ID, Name: o.OfficeName})
	}
	for _, sh := range shifts {
		resp.WorkShifts = append(resp.WorkShifts, attendance.FilterOption{
			ID:   sh.ID,
			Name: fmt.Sprintf("%s (%s-%s)", sh.Name, sh.StartTime, sh.EndTime),
		})
	}
	return resp, nil
}

func (s *AttendanceServiceImpl) mapAttendanceToResponse(a attendance.Attendance) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:                     a.ID,
		EmployeeID:             a.EmployeeID,
		EmployeeName:           a.EmployeeName,
		EmployeeCode:           a.EmployeeCode,
		Date:                   dayKey(dateIn(a.Date, s.loc)),
		TotalWorkHours:         a.TotalWorkHours,
		OvertimeHours:          a.OvertimeHours,
		Status:                 string(a.Status),
		LateMinutes:            a.LateMinutes,
		EarlyDepartureMinutes:  a.EarlyDepartureMinutes,
		EarlyDepartureReason:   a.EarlyDepartureReason,
		ShiftID:                a.ShiftID,
		OfficeLocationID:       a.OfficeLocationID,
		IsWithinOfficeLocation: a.IsWithinOfficeLocation,
		Notes:                  a.Notes,
		CreatedAt:              formatTimestamp(a.CreatedAt, s.loc),
		UpdatedAt:              formatTimestamp(a.UpdatedAt, s.loc),
	}
	resp.PunchIn = s.mapPunch(a.PunchIn)
	resp.PunchOut = s.mapPunch(a.PunchOut)
	return resp
}

func (s *AttendanceServiceImpl) mapPunch(p *attendance.Punch) *attendance.PunchResponse {
	if p == nil || p.Timestamp.IsZero() {
		return nil
	}
	return &attendance.PunchResponse{
		Timestamp: p.Timestamp.In(s.loc).Format(time.RFC3339),
		Latitude:  p.Coordinates.Latitude,
		Longitude: p.Coordinates.Longitude,
	}
}

func formatTimestamp(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	return t.In(loc).Format(time.RFC3339)
}

func locationStatus(within bool) string {
	if within {
		return locationWithin
	}
	return locationOutside
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func statusPtr(s *string) *attendance.Status {
	if s == nil || *s == "" {
		return nil
	}
	st := attendance.Status(*s)
	return &st
}
