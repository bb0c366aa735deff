package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/office"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/database"
)

const eventColumns = `id, title, event_type, start_date, end_date, office_location_id`

type eventRepositoryImpl struct {
	db *database.DB
}

func NewEventRepository(db *database.DB) office.EventRepository {
	return &eventRepositoryImpl{db: db}
}

func scanEvent(row pgx.Row) (office.Event, error) {
	var (
		ev        office.Event
		eventType string
	)
	if err := row.Scan(&ev.ID, &ev.Title, &eventType, &ev.StartDate, &ev.EndDate, &ev.OfficeLocationID); err != nil {
		return office.Event{}, err
	}
	ev.EventType = office.EventType(eventType)
	return ev, nil
}

// FindHoliday implements office.EventRepository.
func (e *eventRepositoryImpl) FindHoliday(ctx context.Context, officeLocationID string, date time.Time) (*office.Event, error) {
	ctx, cancel := e.db.WithTimeout(ctx)
	defer cancel()
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE office_location_id = $1
		  AND event_type = $2
		  AND start_date <= $3
		  AND end_date >= $3
		ORDER BY start_date ASC
		LIMIT 1
	`

	ev, err := scanEvent(q.QueryRow(ctx, query, officeLocationID, string(office.EventTypeHoliday), dateArg(date)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find holiday: %w", err)
	}

	return &ev, nil
}

// ListHolidays implements office.EventRepository.
func (e *eventRepositoryImpl) ListHolidays(ctx context.Context, officeLocationID string, from, to time.Time) ([]office.Event, error) {
	ctx, cancel := e.db.WithTimeout(ctx)
	defer cancel()
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE office_location_id = $1
		  AND event_type = $2
		  AND start_date <= $4
		  AND end_date >= $3
		ORDER BY start_date ASC
	`

	rows, err := q.Query(ctx, query, officeLocationID, string(office.EventTypeHoliday), dateArg(from), dateArg(to))
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var events []office.Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		events = append(events, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holidays: %w", err)
	}

	return events, nil
}
