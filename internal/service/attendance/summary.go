package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/user"
)

// tally accumulates counts and hours for one summary bucket or the whole range.
// credited holds only the records that fall on a counted working day, so the
// rate numerator covers the same days as workingDays.
type tally struct {
	counts      attendance.StatusCounts
	credited    attendance.StatusCounts
	workingDays int
	hours       float64
	overtime    float64
}

func (t *tally) addRecord(a attendance.Attendance, onWorkingDay bool) {
	countStatus(&t.counts, a.Status)
	if onWorkingDay {
		countStatus(&t.credited, a.Status)
	}
	t.hours += a.TotalWorkHours
	t.overtime += a.OvertimeHours
}

// rate is the canonical attendance rate: Present days plus half of the Half
// Day days over working days, capped at 100.
func (t tally) rate() float64 {
	return attendanceRate(t.credited, t.workingDays)
}

func attendanceRate(c attendance.StatusCounts, workingDays int) float64 {
	full := decimal.NewFromInt(int64(c.Present))
	half := decimal.NewFromInt(int64(c.HalfDay)).Mul(decimal.NewFromFloat(0.5))
	return math.Min(100, percent(full.Add(half), decimal.NewFromInt(int64(workingDays))))
}

func attended(c attendance.StatusCounts) int {
	return c.Present + c.Late + c.EarlyDeparture + c.HalfDay
}

// countStatus adds one stored record to c. Recorded counts every stored record.
func countStatus(c *attendance.StatusCounts, st attendance.Status) {
	c.Recorded++
	switch st {
	case attendance.StatusPresent:
		c.Present++
	case attendance.StatusLate:
		c.Late++
	case attendance.StatusHalfDay:
		c.HalfDay++
	case attendance.StatusEarlyDeparture:
		c.EarlyDeparture++
	case attendance.StatusAbsent:
		c.Absent++
	case attendance.StatusOnLeave:
		c.OnLeave++
	case attendance.StatusHoliday:
		c.Holiday++
	case attendance.StatusWeekOff:
		c.WeekOff++
	}
}

// consistencyScore is 100 minus the population standard deviation of rates, floored at 0.
func consistencyScore(rates []float64) float64 {
	if len(rates) == 0 {
		return 0
	}
	mean := 0.0
	for _, r := range rates {
		mean += r
	}
	mean /= float64(len(rates))

	variance := 0.0
	for _, r := range rates {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(rates))

	return roundRate(math.Max(0, 100-math.Sqrt(variance)))
}

// Summary implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Summary(ctx context.Context, actor user.Actor, req attendance.SummaryRequest) (attendance.SummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.SummaryResponse{}, err
	}

	employees, err := s.summaryEmployees(ctx, actor, req)
	if err != nil {
		return attendance.SummaryResponse{}, err
	}

	_, today := s.today()
	period := attendance.Period(req.Period)
	span, err := ResolvePeriod(period, req.StartDate, req.EndDate, today)
	if err != nil {
		return attendance.SummaryResponse{}, err
	}
	granularity := attendance.Granularity(req.Granularity)
	if granularity == "" {
		granularity = DefaultGranularity(period, span)
	}

	buckets := splitBuckets(span, granularity)
	bucketOf := make(map[string]int, span.Days())
	for i, b := range buckets {
		for d := b.span.From; !d.After(b.span.To); d = d.AddDate(0, 0, 1) {
			bucketOf[dayKey(d)] = i
		}
	}

	resp := attendance.SummaryResponse{
		Scope:       req.Scope,
		Employees:   len(employees),
		Period:      req.Period,
		Granularity: string(granularity),
		StartDate:   dayKey(span.From),
		EndDate:     dayKey(span.To),
		Trend:       make([]attendance.TrendBucket, 0, len(buckets)),
	}
	if req.Scope == string(attendance.ScopeSelf) || req.Scope == string(attendance.ScopeEmployee) {
		resp.EmployeeID = &employees[0].ID
	}

	ids := make([]string, 0, len(employees))
	for _, emp := range employees {
		ids = append(ids, emp.ID)
	}
	var records []attendance.Attendance
	if len(ids) > 0 {
		records, err = s.AttendanceRepository.ListForRange(ctx, attendance.RangeQuery{EmployeeIDs: ids, From: span.From, To: span.To})
		if err != nil {
			return attendance.SummaryResponse{}, fmt.Errorf("failed to load attendance for summary: %w", err)
		}
	}
	recorded := make(map[string]bool, len(records))
	for _, r := range records {
		recorded[r.EmployeeID+"|"+dayKey(dateIn(r.Date, s.loc))] = true
	}

	var total tally
	perBucket := make([]tally, len(buckets))
	holidaysByOffice := map[string]map[string]bool{}
	workingDays := make(map[string]bool, len(records))

	for _, emp := range employees {
		officeKey := ""
		if emp.OfficeLocationID != nil {
			officeKey = *emp.OfficeLocationID
		}
		holidays, ok := holidaysByOffice[officeKey]
		if !ok {
			holidays, err = s.days.holidaySet(ctx, emp.OfficeLocationID, span.From, span.To)
			if err != nil {
				return attendance.SummaryResponse{}, err
			}
			holidaysByOffice[officeKey] = holidays
		}

		window := span.Clip(s.joinDate(emp, span.From), today)
		for d := window.From; !d.After(window.To); d = d.AddDate(0, 0, 1) {
			b := bucketOf[dayKey(d)]
			switch classifyFromSet(d, holidays) {
			case attendance.DayHoliday:
				resp.Holidays++
			case attendance.DayWorking:
				total.workingDays++
				perBucket[b].workingDays++
				workingDays[emp.ID+"|"+dayKey(d)] = true
				// Unrecorded past working days are absences; today may still be punched.
				if d.Before(today) && !recorded[emp.ID+"|"+dayKey(d)] {
					total.counts.Absent++
					perBucket[b].counts.Absent++
				}
			}
		}
	}

	for _, r := range records {
		key := dayKey(dateIn(r.Date, s.loc))
		b, ok := bucketOf[key]
		if !ok {
			continue
		}
		onWorkingDay := workingDays[r.EmployeeID+"|"+key]
		total.addRecord(r, onWorkingDay)
		perBucket[b].addRecord(r, onWorkingDay)

		if r.OvertimeHours > 0 {
			resp.Overtime.Days++
			resp.Overtime.MaxHours = math.Max(resp.Overtime.MaxHours, r.OvertimeHours)
		}
	}

	var rates []float64
	for i, b := range buckets {
		t := perBucket[i]
		resp.Trend = append(resp.Trend, attendance.TrendBucket{
			Label:          b.label,
			StartDate:      dayKey(b.span.From),
			EndDate:        dayKey(b.span.To),
			WorkingDays:    t.workingDays,
			Counts:         t.counts,
			TotalWorkHours: roundHours(t.hours),
			OvertimeHours:  roundHours(t.overtime),
			AttendanceRate: t.rate(),
		})
		if t.workingDays > 0 {
			rates = append(rates, t.rate())
		}
	}

	resp.WorkingDays = total.workingDays
	resp.Stats = total.counts
	resp.Hours = attendance.HoursSummary{
		TotalWorkHours:     roundHours(total.hours),
		TotalOvertimeHours: roundHours(total.overtime),
	}
	days := attended(total.counts)
	if days > 0 {
		resp.Hours.AverageHoursPerDay = roundHours(total.hours / float64(days))
	}

	resp.Performance = attendance.Performance{
		AttendanceRate:   total.rate(),
		ConsistencyScore: consistencyScore(rates),
	}
	if days > 0 {
		resp.Performance.PunctualityRate = percent(
			decimal.NewFromInt(int64(days-total.counts.Late)),
			decimal.NewFromInt(int64(days)),
		)
	}
	if len(rates) > 1 {
		resp.Performance.Improvement = roundRate(rates[len(rates)-1] - rates[0])
	}

	resp.Overtime.TotalHours = roundHours(total.overtime)
	resp.Overtime.MaxHours = roundHours(resp.Overtime.MaxHours)
	if resp.Overtime.Days > 0 {
		resp.Overtime.AverageHours = roundHours(total.overtime / float64(resp.Overtime.Days))
	}

	s.logger.DebugContext(ctx, "attendance summary computed",
		slog.String("scope", req.Scope),
		slog.String("period", req.Period),
		slog.Int("employees", len(employees)),
		slog.Int("records", len(records)),
	)
	return resp, nil
}

// summaryEmployees resolves the request scope to the employees it covers.
func (s *AttendanceServiceImpl) summaryEmployees(ctx context.Context, actor user.Actor, req attendance.SummaryRequest) ([]employee.Employee, error) {
	switch attendance.Scope(req.Scope) {
	case attendance.ScopeEmployee:
		emp, err := s.authorizeEmployee(ctx, actor, *req.EmployeeID)
		if err != nil {
			return nil, err
		}
		return []employee.Employee{emp}, nil

	case attendance.ScopeTeam:
		if !actor.CanSupervise() {
			return nil, user.ErrSupervisorAccessRequired
		}
		managerID := actor.EmployeeID
		if actor.IsHR() && hasValue(req.ManagerID) {
			managerID = *req.ManagerID
		}
		return s.listEmployees(ctx, employee.Scope{ManagerID: &managerID})

	case attendance.ScopeAll:
		if !actor.IsHR() {
			return nil, user.ErrHRAccessRequired
		}
		return s.listEmployees(ctx, employee.Scope{})
	}

	emp, err := s.getEmployee(ctx, actor.EmployeeID)
	if err != nil {
		return nil, err
	}
	return []employee.Employee{emp}, nil
}

func (s *AttendanceServiceImpl) listEmployees(ctx context.Context, scope employee.Scope) ([]employee.Employee, error) {
	employees, err := s.employees.ListByScope(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

// joinDate is the employee's first countable day, or fallback when unknown.
func (s *AttendanceServiceImpl) joinDate(emp employee.Employee, fallback time.Time) time.Time {
	if emp.DateOfJoining.IsZero() {
		return fallback
	}
	return dateIn(emp.DateOfJoining, s.loc)
}

// Calendar implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Calendar(ctx context.Context, actor user.Actor, req attendance.CalendarRequest) (attendance.CalendarResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CalendarResponse{}, err
	}

	employeeID := actor.EmployeeID
	if hasValue(req.EmployeeID) {
		employeeID = *req.EmployeeID
	}
	emp, err := s.authorizeEmployee(ctx, actor, employeeID)
	if err != nil {
		return attendance.CalendarResponse{}, err
	}

	_, today := s.today()
	if req.Year == 0 {
		req.Year = today.Year()
	}
	if req.Month == 0 {
		req.Month = int(today.Month())
	}

	month := DateRange{From: time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, s.loc)}
	month.To = month.From.AddDate(0, 1, -1)
	join := s.joinDate(emp, month.From)
	window := month.Clip(join, today)

	holidays, err := s.days.holidaySet(ctx, emp.OfficeLocationID, month.From, month.To)
	if err != nil {
		return attendance.CalendarResponse{}, err
	}
	records, err := s.AttendanceRepository.ListForRange(ctx, attendance.RangeQuery{
		EmployeeIDs: []string{emp.ID},
		From:        month.From,
		To:          month.To,
	})
	if err != nil {
		return attendance.CalendarResponse{}, fmt.Errorf("failed to load attendance for calendar: %w", err)
	}
	byDay := make(map[string]attendance.Attendance, len(records))
	for _, r := range records {
		byDay[dayKey(dateIn(r.Date, s.loc))] = r
	}

	resp := attendance.CalendarResponse{
		EmployeeID: emp.ID,
		Year:       req.Year,
		Month:      req.Month,
		Days:       make([]attendance.CalendarDay, 0, month.Days()),
	}
	if !emp.DateOfJoining.IsZero() {
		resp.JoinDate = dayKey(join)
	}
	if !window.Empty() {
		resp.WindowStart = dayKey(window.From)
		resp.WindowEnd = dayKey(window.To)
	}

	var summary tally
	for d := month.From; !d.After(month.To); d = d.AddDate(0, 0, 1) {
		key := dayKey(d)
		dayStatus := classifyFromSet(d, holidays)
		entry := attendance.CalendarDay{
			Date:       key,
			DayStatus:  string(dayStatus),
			IsToday:    d.Equal(today),
			IsJoinDate: !emp.DateOfJoining.IsZero() && d.Equal(join),
		}

		counted := !window.Empty() && !d.Before(window.From) && !d.After(window.To) && dayStatus == attendance.DayWorking

		record, hasRecord := byDay[key]
		switch {
		case d.Before(join):
			entry.Status = attendance.CalendarBeforeJoining
		case d.After(today):
			entry.Status = attendance.CalendarFuture
		case hasRecord:
			entry.Status = string(record.Status)
			hours := record.TotalWorkHours
			entry.TotalWorkHours = &hours
			summary.addRecord(record, counted)
		default:
			entry.Status = attendance.CalendarNotRecorded
		}

		if counted {
			summary.workingDays++
		}
		resp.Days = append(resp.Days, entry)
	}

	resp.Summary = attendance.CalendarSummary{
		WorkingDays:    summary.workingDays,
		RecordedDays:   summary.counts.Recorded,
		Counts:         summary.counts,
		AttendanceRate: summary.rate(),
	}
	return resp, nil
}
