package attendance

import (
	"context"
	"io"
	"log/slog"
	"math"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/office"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/user"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/utils"
)

var testLoc = mustLocation("Asia/Kolkata")

func mustLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone("IST", 5*3600+1800)
	}
	return loc
}

func at(date string, clock string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, testLoc)
	if err != nil {
		panic(err)
	}
	return t
}

func day(date string) time.Time {
	return at(date, "00:00")
}

func ptr[T any](v T) *T {
	return &v
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// ===== ATTENDANCE =====

type fakeAttendanceRepo struct {
	mu      sync.Mutex
	records map[string]attendance.Attendance
	creates int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: map[string]attendance.Attendance{}}
}

func (r *fakeAttendanceRepo) put(a attendance.Attendance) attendance.Attendance {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	r.records[a.ID] = a
	return a
}

func (r *fakeAttendanceRepo) Create(_ context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.records {
		if existing.EmployeeID == a.EmployeeID && dayKey(existing.Date) == dayKey(a.Date) {
			return attendance.Attendance{}, attendance.ErrDuplicateAttendance
		}
	}
	r.creates++
	a.ID = uuid.NewString()
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	r.records[a.ID] = a
	return a, nil
}

func (r *fakeAttendanceRepo) GetByID(_ context.Context, id string) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.records[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return a, nil
}

func (r *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.records {
		if a.EmployeeID == employeeID && dayKey(a.Date) == dayKey(date) {
			found := a
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeAttendanceRepo) CompletePunchOut(_ context.Context, a attendance.Attendance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.records[a.ID]
	if !ok || stored.HasPunchedOut() {
		return attendance.ErrAlreadyPunchedOut
	}
	r.records[a.ID] = a
	return nil
}

func (r *fakeAttendanceRepo) Update(_ context.Context, a attendance.Attendance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[a.ID]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	r.records[a.ID] = a
	return nil
}

func (r *fakeAttendanceRepo) List(_ context.Context, q attendance.Query) ([]attendance.Attendance, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []attendance.Attendance
	for _, a := range r.records {
		if q.EmployeeID != nil && a.EmployeeID != *q.EmployeeID {
			continue
		}
		if q.Status != nil && a.Status != *q.Status {
			continue
		}
		if a.Date.Before(q.From) || a.Date.After(q.To) {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })

	total := int64(len(out))
	start := min(q.Offset(), len(out))
	end := min(start+q.Limit, len(out))
	return out[start:end], total, nil
}

func (r *fakeAttendanceRepo) ListForRange(_ context.Context, q attendance.RangeQuery) ([]attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := map[string]bool{}
	for _, id := range q.EmployeeIDs {
		ids[id] = true
	}
	var out []attendance.Attendance
	for _, a := range r.records {
		if ids[a.EmployeeID] && !a.Date.Before(q.From) && !a.Date.After(q.To) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].EmployeeID != out[j].EmployeeID {
			return out[i].EmployeeID < out[j].EmployeeID
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

func (r *fakeAttendanceRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// ===== EMPLOYEES =====

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *fakeEmployeeRepo) ListByScope(_ context.Context, scope employee.Scope) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range r.employees {
		if !e.IsActive {
			continue
		}
		if scope.ManagerID != nil && !e.ReportsTo(*scope.ManagerID) {
			continue
		}
		if scope.EmployeeID != nil && e.ID != *scope.EmployeeID {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ===== OFFICES, EVENTS, SHIFTS =====

type fakeOfficeRepo struct {
	offices map[string]office.OfficeLocation
}

func (r *fakeOfficeRepo) GetByID(_ context.Context, id string) (office.OfficeLocation, error) {
	o, ok := r.offices[id]
	if !ok {
		return office.OfficeLocation{}, office.ErrOfficeLocationNotFound
	}
	return o, nil
}

func (r *fakeOfficeRepo) List(_ context.Context) ([]office.OfficeLocation, error) {
	var out []office.OfficeLocation
	for _, o := range r.offices {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeEventRepo struct {
	events []office.Event
}

func (r *fakeEventRepo) FindHoliday(_ context.Context, officeID string, date time.Time) (*office.Event, error) {
	for _, ev := range r.events {
		if ev.OfficeLocationID == officeID && ev.EventType == office.EventTypeHoliday && ev.Covers(date) {
			found := ev
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeEventRepo) ListHolidays(_ context.Context, officeID string, from, to time.Time) ([]office.Event, error) {
	var out []office.Event
	for _, ev := range r.events {
		if ev.OfficeLocationID != officeID || ev.EventType != office.EventTypeHoliday {
			continue
		}
		if ev.EndDate.Before(from) || ev.StartDate.After(to) {
			continue
		}
		out = append(out, ev)
	}
	return out, nil
}

type fakeShiftRepo struct {
	shifts map[string]schedule.WorkShift
}

func (r *fakeShiftRepo) GetByID(_ context.Context, id string) (schedule.WorkShift, error) {
	s, ok := r.shifts[id]
	if !ok {
		return schedule.WorkShift{}, schedule.ErrWorkShiftNotFound
	}
	return s, nil
}

func (r *fakeShiftRepo) List(_ context.Context) ([]schedule.WorkShift, error) {
	var out []schedule.WorkShift
	for _, s := range r.shifts {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ===== FIXTURE =====

const (
	officeID   = "0b8f3d1e-6c1a-4f0e-9a52-1d2c3b4a5f60"
	shiftID    = "1c9e4a2f-7d2b-4a1f-8b63-2e3d4c5b6a71"
	hrID       = "2da05b3a-8e3c-4b2a-9c74-3f4e5d6c7b82"
	leaderID   = "3eb16c4b-9f4d-4c3b-8d85-4a5f6e7d8c93"
	employeeID = "4fc27d5c-a05e-4d4c-9e96-5b6a7f8e9da4"
	peerID     = "50d38e6d-b16f-4e5d-8fa7-6c7b8a9faeb5"
)

var (
	officeLat = 12.9716
	officeLng = 77.5946
)

type fixture struct {
	svc       *AttendanceServiceImpl
	records   *fakeAttendanceRepo
	employees *fakeEmployeeRepo
	offices   *fakeOfficeRepo
	events    *fakeEventRepo
	shifts    *fakeShiftRepo
	now       time.Time
}

func (f *fixture) setNow(t time.Time) {
	f.now = t
}

func (f *fixture) employee() user.Actor {
	return user.Actor{EmployeeID: employeeID, Role: user.RoleEmployee}
}

func (f *fixture) hr() user.Actor {
	return user.Actor{EmployeeID: hrID, Role: user.RoleHRManager}
}

func (f *fixture) leader() user.Actor {
	return user.Actor{EmployeeID: leaderID, Role: user.RoleTeamLeader}
}

// newFixture builds a service over in-memory stores with one office, one
// 09:00-18:00 shift, an HR manager, a team leader and two reports.
// The clock starts on Wednesday 2025-10-15 at 09:05.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		records: newFakeAttendanceRepo(),
		offices: &fakeOfficeRepo{offices: map[string]office.OfficeLocation{
			officeID: {ID: officeID, OfficeName: "Bangalore HQ", Latitude: ptr(officeLat), Longitude: ptr(officeLng), OfficeType: office.OfficeTypeOffice},
		}},
		events: &fakeEventRepo{},
		shifts: &fakeShiftRepo{shifts: map[string]schedule.WorkShift{
			shiftID: {ID: shiftID, Name: "General", StartTime: "09:00", EndTime: "18:00", Status: schedule.ShiftStatusActive},
		}},
		now: at("2025-10-15", "09:05"),
	}

	joined := day("2024-01-01")
	f.employees = &fakeEmployeeRepo{employees: map[string]employee.Employee{
		hrID:       {ID: hrID, Name: "Hema", Role: user.RoleHRManager, OfficeLocationID: ptr(officeID), WorkShiftID: ptr(shiftID), DateOfJoining: joined, IsActive: true},
		leaderID:   {ID: leaderID, Name: "Lata", Role: user.RoleTeamLeader, OfficeLocationID: ptr(officeID), WorkShiftID: ptr(shiftID), DateOfJoining: joined, IsActive: true},
		employeeID: {ID: employeeID, Name: "Esha", Role: user.RoleEmployee, ManagerID: ptr(leaderID), OfficeLocationID: ptr(officeID), WorkShiftID: ptr(shiftID), DateOfJoining: joined, IsActive: true},
		peerID:     {ID: peerID, Name: "Pranav", Role: user.RoleEmployee, ManagerID: ptr(hrID), OfficeLocationID: ptr(officeID), DateOfJoining: joined, IsActive: true},
	}}

	svc := NewAttendanceService(f.records, f.employees, f.offices, f.events, f.shifts, Config{
		Location:       testLoc,
		GeofenceRadius: DefaultGeofenceRadius,
		Now:            func() time.Time { return f.now },
		Logger:         discardLogger,
	})
	f.svc = svc.(*AttendanceServiceImpl)
	return f
}

// northOf returns a latitude meters due north of the office.
func northOf(meters float64) float64 {
	return officeLat + meters/utils.EarthRadiusMeters*180/math.Pi
}
