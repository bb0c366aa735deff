package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/user"
	"github.com/cmlabs-hris/attendance-engine/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-engine/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/validator"
)

// maxBodyBytes bounds JSON request bodies
const maxBodyBytes = 1 << 20

type AttendanceHandler interface {
	PunchIn(w http.ResponseWriter, r *http.Request)
	PunchOut(w http.ResponseWriter, r *http.Request)
	PunchInForEmployee(w http.ResponseWriter, r *http.Request)
	PunchOutForEmployee(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	TodayForEmployee(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	FilterOptions(w http.ResponseWriter, r *http.Request)
	GetMyAttendance(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	Calendar(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	logger            *slog.Logger
	exposeGeoDebug    bool
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, logger *slog.Logger, exposeGeoDebug bool) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		logger:            logger.With("component", "attendance_handler"),
		exposeGeoDebug:    exposeGeoDebug,
	}
}

func (h *attendanceHandlerImpl) fail(w http.ResponseWriter, err error) {
	response.HandleError(w, err, response.WithGeoDebug(h.exposeGeoDebug))
}

// actor reads the caller set by middleware.AuthRequired
func (h *attendanceHandlerImpl) actor(w http.ResponseWriter, r *http.Request) (user.Actor, bool) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.HandleError(w, user.ErrInvalidToken)
	}
	return actor, ok
}

// decodeJSON reads an optional JSON body into dst. An empty body leaves dst untouched.
func (h *attendanceHandlerImpl) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	h.logger.Debug("failed to decode request body", "path", r.URL.Path, "error", err)
	response.BadRequest(w, "Invalid request format", nil)
	return false
}

// PunchIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) PunchIn(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	var req attendance.PunchInRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	result, err := h.attendanceService.PunchIn(r.Context(), actor, req)
	if err != nil {
		h.fail(w, err)
		return
	}

	response.Created(w, "Punch in successful", result)
}

// PunchOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) PunchOut(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	var req attendance.PunchOutRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	result, err := h.attendanceService.PunchOut(r.Context(), actor, req)
	if err != nil {
		h.fail(w, err)
		return
	}

	response.SuccessWithMessage(w, "Punch out successful", result)
}

// PunchInForEmployee implements AttendanceHandler.
func (h *attendanceHandlerImpl) PunchInForEmployee(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	var req attendance.HRPunchRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	result, err := h.attendanceService.PunchInByHR(r.Context(), actor, chi.URLParam(r, "employeeID"), req)
	if err != nil {
		h.fail(w, err)
		return
	}

	response.Created(w, "Punch in recorded", result)
}

// PunchOutForEmployee implements AttendanceHandler.
func (h *attendanceHandlerImpl) PunchOutForEmployee(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	var req attendance.HRPunchRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	result, err := h.attendanceService.PunchOutByHR(r.Context(), actor, chi.URLParam(r, "employeeID"), req)
	if err != nil {
		h.fail(w, err)
		return
	}

	response.SuccessWithMessage(w, "Punch out recorded", result)
}

// Today implements AttendanceHandler.
func (h *attendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.GetToday(r.Context(), actor, actor.EmployeeID)
	if err != nil {
		h.fail(w, err)
		return
	}

	response.Success(w, result)
}

// TodayForEmployee implements AttendanceHandler.
func (h *attendanceHandlerImpl) TodayForEmployee(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.GetToday(r.Context(), actor, chi.URLParam(r, "employeeID"))
	if err != nil {
		h.fail(w, err)
		return
	}

	response.Success(w, result)
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	var errs validator.ValidationErrors

	filter := attendance.AttendanceFilter{
		EmployeeID:       queryString(q, "employee_id"),
		DepartmentID:     queryString(q, "department_id"),
		OfficeLocationID: queryString(q, "office_location_id"),
		ShiftID:          queryString(q, "shift_id"),
		Status:           queryString(q, "status"),
		Search:           queryString(q, "search"),
		StartDate:        queryString(q, "start_date"),
		EndDate:          queryString(q, "end_date"),
		Paging:           queryPaging(q, &errs),
	}
	if err := errs.Err(); err != nil {
		h.fail(w, err)
		return
	}

	results, err := h.attendanceService.List(r.Context(), actor, filter)
	if err != nil {
		h.fail(w, err)
		return
	}

	response.Success(w, results)
}

// FilterOptions implements AttendanceHandler.
func (h *attendanceHandlerImpl) FilterOptions(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.FilterOptions(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}

	response.Success(w, result)
}

// GetMyAttendance implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	var errs validator.ValidationErrors

	filter := attendance.MyAttendanceFilter{
		Status:    queryString(q, "status"),
		StartDate: queryString(q, "start_date"),
		EndDate:   queryString(q, "end_date"),
		Paging:    queryPaging(q, &errs),
	}
	if err := errs.Err(); err != nil {
		h.fail(w, err)
		return
	}

	results, err := h.attendanceService.ListMine(r.Context(), actor, filter)
	if err != nil {
		h.fail(w, err)
		return
	}

	response.Success(w, results)
}

// Summary implements AttendanceHandler.
func (h *attendanceHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	req := attendance.SummaryRequest{
		Scope:       q.Get("scope"),
		EmployeeID:  queryString(q, "employee_id"),
		ManagerID:   queryString(q, "manager_id"),
		Period:      q.Get("period"),
		StartDate:   queryString(q, "start_date"),
		EndDate:     queryString(q, "end_date"),
		Granularity: q.Get("granularity"),
	}

	result, err := h.attendanceService.Summary(r.Context(), actor, req)
	if err != nil {
		h.fail(w, err)
		return
	}

	response.Success(w, result)
}

// Calendar implements AttendanceHandler.
func (h *attendanceHandlerImpl) Calendar(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	var errs validator.ValidationErrors

	req := attendance.CalendarRequest{
		EmployeeID: queryString(q, "employee_id"),
		Year:       queryInt(q, "year", &errs),
		Month:      queryInt(q, "month", &errs),
	}
	if err := errs.Err(); err != nil {
		h.fail(w, err)
		return
	}

	result, err := h.attendanceService.Calendar(r.Context(), actor, req)
	if err != nil {
		h.fail(w, err)
		return
	}

	response.Success(w, result)
}

// Get implements AttendanceHandler.
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.GetByID(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements AttendanceHandler.
func (h *attendanceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	var req attendance.CorrectionRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	result, err := h.attendanceService.Correct(r.Context(), actor, chi.URLParam(r, "id"), req)
	if err != nil {
		h.fail(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance updated successfully", result)
}

func queryString(q url.Values, key string) *string {
	if v := q.Get(key); v != "" {
		return &v
	}
	return nil
}

func queryInt(q url.Values, key string, errs *validator.ValidationErrors) int {
	raw := q.Get(key)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		errs.Add(key, key+" must be a number")
		return 0
	}
	return n
}

// queryPaging leaves zero values for the filter's own defaults
func queryPaging(q url.Values, errs *validator.ValidationErrors) attendance.Paging {
	return attendance.Paging{
		Page:      queryInt(q, "page", errs),
		Limit:     queryInt(q, "limit", errs),
		SortBy:    q.Get("sort_by"),
		SortOrder: q.Get("sort_order"),
	}
}
