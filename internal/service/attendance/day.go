package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/office"
)

// DayClassifier labels a date for an employee as Week Off, Holiday or Working Day.
type DayClassifier struct {
	events office.EventRepository
}

func NewDayClassifier(events office.EventRepository) *DayClassifier {
	return &DayClassifier{events: events}
}

// Classify applies the weekend rule first, then the office's Holiday events.
// An employee without an office has no holidays.
func (c *DayClassifier) Classify(ctx context.Context, emp employee.Employee, date time.Time) (attendance.DayStatus, error) {
	if isWeekend(date) {
		return attendance.DayWeekOff, nil
	}
	if !emp.HasOffice() {
		return attendance.DayWorking, nil
	}

	holiday, err := c.events.FindHoliday(ctx, *emp.OfficeLocationID, date)
	if err != nil {
		return "", fmt.Errorf("failed to look up holiday: %w", err)
	}
	if holiday != nil {
		return attendance.DayHoliday, nil
	}
	return attendance.DayWorking, nil
}

// holidaySet indexes the office's holiday dates inside [from, to] by dayKey.
func (c *DayClassifier) holidaySet(ctx context.Context, officeID *string, from, to time.Time) (map[string]bool, error) {
	set := map[string]bool{}
	if officeID == nil || *officeID == "" {
		return set, nil
	}

	events, err := c.events.ListHolidays(ctx, *officeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	for _, ev := range events {
		for d := maxTime(dateIn(ev.StartDate, from.Location()), from); !d.After(to); d = d.AddDate(0, 0, 1) {
			if !ev.Covers(d) {
				break
			}
			set[dayKey(d)] = true
		}
	}
	return set, nil
}

// classifyFromSet is Classify against a preloaded holiday set.
func classifyFromSet(date time.Time, holidays map[string]bool) attendance.DayStatus {
	if isWeekend(date) {
		return attendance.DayWeekOff
	}
	if holidays[dayKey(date)] {
		return attendance.DayHoliday
	}
	return attendance.DayWorking
}

func isWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
