package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/validator"
)

const uniqueViolation = "23505"

const attendanceColumns = `
	a.id, a.employee_id, a.date,
	a.punch_in_at, a.punch_in_latitude, a.punch_in_longitude,
	a.punch_out_at, a.punch_out_latitude, a.punch_out_longitude,
	a.total_work_hours, a.overtime_hours, a.status,
	a.late_minutes, a.early_departure_minutes, a.early_departure_reason,
	a.shift_id, a.office_location_id, a.is_within_office_location, a.notes,
	a.created_at, a.updated_at,
	e.name, e.employee_code`

const attendanceFrom = `
	FROM attendances a
	JOIN employees e ON e.id = a.employee_id`

// attendanceSortColumns whitelists ORDER BY targets
var attendanceSortColumns = map[string]string{
	"date":             "a.date",
	"punch_in":         "a.punch_in_at",
	"punch_out":        "a.punch_out_at",
	"total_work_hours": "a.total_work_hours",
	"status":           "a.status",
	"employee_name":    "e.name",
}

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// scanAttendance reads one row selected with attendanceColumns
func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var (
		att                attendance.Attendance
		status             string
		inAt, outAt        *time.Time
		inLat, inLng       *float64
		outLat, outLng     *float64
		employeeName, code *string
	)
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.Date,
		&inAt, &inLat, &inLng,
		&outAt, &outLat, &outLng,
		&att.TotalWorkHours, &att.OvertimeHours, &status,
		&att.LateMinutes, &att.EarlyDepartureMinutes, &att.EarlyDepartureReason,
		&att.ShiftID, &att.OfficeLocationID, &att.IsWithinOfficeLocation, &att.Notes,
		&att.CreatedAt, &att.UpdatedAt,
		&employeeName, &code,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}

	att.Status = attendance.Status(status)
	att.PunchIn = toPunch(inAt, inLat, inLng)
	att.PunchOut = toPunch(outAt, outLat, outLng)
	att.EmployeeName = employeeName
	att.EmployeeCode = code
	return att, nil
}

func toPunch(at *time.Time, lat, lng *float64) *attendance.Punch {
	if at == nil {
		return nil
	}
	p := &attendance.Punch{Timestamp: *at}
	if lat != nil {
		p.Coordinates.Latitude = *lat
	}
	if lng != nil {
		p.Coordinates.Longitude = *lng
	}
	return p
}

// punchArgs flattens an optional punch into its three nullable columns
func punchArgs(p *attendance.Punch) (*time.Time, *float64, *float64) {
	if p == nil || p.Timestamp.IsZero() {
		return nil, nil, nil
	}
	at := p.Timestamp
	lat, lng := p.Coordinates.Latitude, p.Coordinates.Longitude
	return &at, &lat, &lng
}

// dateArg renders a calendar date so the server never shifts it across zones
func dateArg(t time.Time) string {
	return t.Format(validator.DateLayout)
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (
			employee_id, date,
			punch_in_at, punch_in_latitude, punch_in_longitude,
			punch_out_at, punch_out_latitude, punch_out_longitude,
			total_work_hours, overtime_hours, status,
			late_minutes, early_departure_minutes, early_departure_reason,
			shift_id, office_location_id, is_within_office_location, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18
		) RETURNING id, created_at, updated_at
	`

	inAt, inLat, inLng := punchArgs(newAttendance.PunchIn)
	outAt, outLat, outLng := punchArgs(newAttendance.PunchOut)

	err := q.QueryRow(ctx, query,
		newAttendance.EmployeeID,
		dateArg(newAttendance.Date),
		inAt, inLat, inLng,
		outAt, outLat, outLng,
		newAttendance.TotalWorkHours,
		newAttendance.OvertimeHours,
		string(newAttendance.Status),
		newAttendance.LateMinutes,
		newAttendance.EarlyDepartureMinutes,
		newAttendance.EarlyDepartureReason,
		newAttendance.ShiftID,
		newAttendance.OfficeLocationID,
		newAttendance.IsWithinOfficeLocation,
		newAttendance.Notes,
	).Scan(&newAttendance.ID, &newAttendance.CreatedAt, &newAttendance.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return attendance.Attendance{}, attendance.ErrDuplicateAttendance
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return newAttendance, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + attendanceFrom + ` WHERE a.id = $1`

	att, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by ID: %w", err)
	}

	return att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + attendanceFrom + `
		WHERE a.employee_id = $1
		  AND a.date = $2
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, dateArg(date)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return &att, nil
}

// CompletePunchOut implements attendance.AttendanceRepository.
func (r *attendanceRepository) CompletePunchOut(ctx context.Context, att attendance.Attendance) error {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances SET
			punch_out_at = $2,
			punch_out_latitude = $3,
			punch_out_longitude = $4,
			total_work_hours = $5,
			overtime_hours = $6,
			status = $7,
			late_minutes = $8,
			early_departure_minutes = $9,
			early_departure_reason = $10,
			is_within_office_location = $11,
			updated_at = NOW()
		WHERE id = $1
		  AND punch_out_at IS NULL
	`

	outAt, outLat, outLng := punchArgs(att.PunchOut)
	commandTag, err := q.Exec(ctx, query,
		att.ID,
		outAt, outLat, outLng,
		att.TotalWorkHours,
		att.OvertimeHours,
		string(att.Status),
		att.LateMinutes,
		att.EarlyDepartureMinutes,
		att.EarlyDepartureReason,
		att.IsWithinOfficeLocation,
	)
	if err != nil {
		return fmt.Errorf("failed to complete punch out: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return attendance.ErrAlreadyPunchedOut
	}

	return nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances SET
			punch_in_at = $2,
			punch_in_latitude = $3,
			punch_in_longitude = $4,
			punch_out_at = $5,
			punch_out_latitude = $6,
			punch_out_longitude = $7,
			total_work_hours = $8,
			overtime_hours = $9,
			status = $10,
			late_minutes = $11,
			early_departure_minutes = $12,
			early_departure_reason = $13,
			notes = $14,
			updated_at = NOW()
		WHERE id = $1
	`

	inAt, inLat, inLng := punchArgs(att.PunchIn)
	outAt, outLat, outLng := punchArgs(att.PunchOut)
	commandTag, err := q.Exec(ctx, query,
		att.ID,
		inAt, inLat, inLng,
		outAt, outLat, outLng,
		att.TotalWorkHours,
		att.OvertimeHours,
		string(att.Status),
		att.LateMinutes,
		att.EarlyDepartureMinutes,
		att.EarlyDepartureReason,
		att.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepository) List(ctx context.Context, query attendance.Query) ([]attendance.Attendance, int64, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()
	q := GetQuerier(ctx, r.db)

	// Build WHERE clause
	baseWhere := "a.date >= $1 AND a.date <= $2"
	args := []interface{}{dateArg(query.From), dateArg(query.To)}
	argIdx := 3

	if query.EmployeeID != nil {
		baseWhere += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *query.EmployeeID)
		argIdx++
	}

	// Team leaders see themselves and their direct reports
	if query.ManagerID != nil {
		baseWhere += fmt.Sprintf(" AND (e.manager_id = $%d OR a.employee_id = $%d)", argIdx, argIdx)
		args = append(args, *query.ManagerID)
		argIdx++
	}

	if query.DepartmentID != nil {
		baseWhere += fmt.Sprintf(" AND e.department_id = $%d", argIdx)
		args = append(args, *query.DepartmentID)
		argIdx++
	}

	if query.OfficeLocationID != nil {
		baseWhere += fmt.Sprintf(" AND a.office_location_id = $%d", argIdx)
		args = append(args, *query.OfficeLocationID)
		argIdx++
	}

	if query.ShiftID != nil {
		baseWhere += fmt.Sprintf(" AND a.shift_id = $%d", argIdx)
		args = append(args, *query.ShiftID)
		argIdx++
	}

	if query.Status != nil {
		baseWhere += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, string(*query.Status))
		argIdx++
	}

	// Search by employee name or code
	if query.Search != nil {
		baseWhere += fmt.Sprintf(" AND (e.name ILIKE $%d OR e.employee_code ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+*query.Search+"%")
		argIdx++
	}

	// Count total
	countQuery := "SELECT COUNT(*)" + attendanceFrom + " WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	// Build ORDER BY
	orderByField, ok := attendanceSortColumns[query.SortBy]
	if !ok {
		orderByField = "a.date"
	}
	sortOrder := "DESC"
	if strings.ToLower(query.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	selectQuery := fmt.Sprintf(`SELECT %s %s
		WHERE %s
		ORDER BY %s %s NULLS LAST, a.created_at DESC
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, attendanceFrom, baseWhere, orderByField, sortOrder, argIdx, argIdx+1)

	limit := query.Limit
	if limit <= 0 {
		limit = attendance.DefaultLimit
	}
	args = append(args, limit, query.Offset())

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return attendances, total, nil
}

// ListForRange implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListForRange(ctx context.Context, query attendance.RangeQuery) ([]attendance.Attendance, error) {
	if len(query.EmployeeIDs) == 0 {
		return nil, nil
	}

	ctx, cancel := r.db.WithReportTimeout(ctx)
	defer cancel()
	q := GetQuerier(ctx, r.db)

	selectQuery := `SELECT ` + attendanceColumns + attendanceFrom + `
		WHERE a.employee_id = ANY($1::uuid[])
		  AND a.date >= $2
		  AND a.date <= $3
		ORDER BY a.employee_id, a.date
	`

	rows, err := q.Query(ctx, selectQuery, query.EmployeeIDs, dateArg(query.From), dateArg(query.To))
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance range: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance range: %w", err)
	}

	return attendances, nil
}
