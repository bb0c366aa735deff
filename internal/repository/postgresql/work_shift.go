package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/database"
)

// Times are rendered HH:MM so the domain never sees seconds
const workShiftColumns = `id, name, to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'), status`

type workShiftRepositoryImpl struct {
	db *database.DB
}

func NewWorkShiftRepository(db *database.DB) schedule.WorkShiftRepository {
	return &workShiftRepositoryImpl{db: db}
}

func scanWorkShift(row pgx.Row) (schedule.WorkShift, error) {
	var (
		shift  schedule.WorkShift
		status string
	)
	if err := row.Scan(&shift.ID, &shift.Name, &shift.StartTime, &shift.EndTime, &status); err != nil {
		return schedule.WorkShift{}, err
	}
	shift.Status = schedule.ShiftStatus(status)
	return shift, nil
}

// GetByID implements schedule.WorkShiftRepository.
func (w *workShiftRepositoryImpl) GetByID(ctx context.Context, id string) (schedule.WorkShift, error) {
	ctx, cancel := w.db.WithTimeout(ctx)
	defer cancel()
	q := GetQuerier(ctx, w.db)

	query := `SELECT ` + workShiftColumns + ` FROM work_shifts WHERE id = $1`

	shift, err := scanWorkShift(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.WorkShift{}, schedule.ErrWorkShiftNotFound
		}
		return schedule.WorkShift{}, fmt.Errorf("failed to get work shift by ID: %w", err)
	}

	return shift, nil
}

// List implements schedule.WorkShiftRepository.
func (w *workShiftRepositoryImpl) List(ctx context.Context) ([]schedule.WorkShift, error) {
	ctx, cancel := w.db.WithTimeout(ctx)
	defer cancel()
	q := GetQuerier(ctx, w.db)

	query := `SELECT ` + workShiftColumns + ` FROM work_shifts ORDER BY start_time ASC, name ASC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list work shifts: %w", err)
	}
	defer rows.Close()

	var shifts []schedule.WorkShift
	for rows.Next() {
		shift, err := scanWorkShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work shift: %w", err)
		}
		shifts = append(shifts, shift)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating work shifts: %w", err)
	}

	return shifts, nil
}
