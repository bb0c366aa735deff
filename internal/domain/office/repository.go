package office

import (
	"context"
	"time"
)

type OfficeLocationRepository interface {
	// GetByID returns ErrOfficeLocationNotFound when absent
	GetByID(ctx context.Context, id string) (OfficeLocation, error)

	List(ctx context.Context) ([]OfficeLocation, error)
}

type EventRepository interface {
	// FindHoliday returns the Holiday event covering date at the office, or nil
	FindHoliday(ctx context.Context, officeLocationID string, date time.Time) (*Event, error)

	// ListHolidays returns Holiday events overlapping [from, to] at the office
	ListHolidays(ctx context.Context, officeLocationID string, from, to time.Time) ([]Event, error)
}
