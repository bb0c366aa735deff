package attendance

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/validator"
)

// DateRange is an inclusive span of calendar days, both ends at midnight.
type DateRange struct {
	From time.Time
	To   time.Time
}

func (r DateRange) Empty() bool {
	return r.To.Before(r.From)
}

// Days counts the calendar days in the range.
func (r DateRange) Days() int {
	if r.Empty() {
		return 0
	}
	n := 0
	for d := r.From; !d.After(r.To); d = d.AddDate(0, 0, 1) {
		n++
	}
	return n
}

// Clip narrows r to [from, to].
func (r DateRange) Clip(from, to time.Time) DateRange {
	return DateRange{From: maxTime(r.From, from), To: minTime(r.To, to)}
}

// ResolvePeriod turns a named period, or an explicit start/end, into a range.
// Named periods run up to today. An explicit range overrides the name; a
// missing end means today and a missing start means the trailing 30 days.
func ResolvePeriod(period attendance.Period, start, end *string, today time.Time) (DateRange, error) {
	loc := today.Location()
	today = startOfDay(today)

	if hasValue(start) || hasValue(end) {
		r := DateRange{To: today}
		if hasValue(end) {
			d, ok := validator.IsValidDateIn(*end, loc)
			if !ok {
				return DateRange{}, fmt.Errorf("invalid end_date %q", *end)
			}
			r.To = d
		}
		r.From = r.To.AddDate(0, 0, -(attendance.DefaultListingDays - 1))
		if hasValue(start) {
			d, ok := validator.IsValidDateIn(*start, loc)
			if !ok {
				return DateRange{}, fmt.Errorf("invalid start_date %q", *start)
			}
			r.From = d
		}
		if attendance.RangeTooLong(r.From, r.To) {
			return DateRange{}, validator.ValidationErrors{{
				Field:   "start_date",
				Message: fmt.Sprintf("date range must not exceed %d days", attendance.MaxRangeDays),
			}}
		}
		return r, nil
	}

	switch period {
	case attendance.PeriodToday:
		return DateRange{From: today, To: today}, nil
	case attendance.PeriodYesterday:
		y := today.AddDate(0, 0, -1)
		return DateRange{From: y, To: y}, nil
	case attendance.PeriodWeek:
		return DateRange{From: weekStart(today), To: today}, nil
	case attendance.PeriodMonth, "":
		return DateRange{From: monthStart(today), To: today}, nil
	case attendance.PeriodQuarter:
		return DateRange{From: quarterStart(today), To: today}, nil
	case attendance.PeriodYear:
		return DateRange{From: time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, loc), To: today}, nil
	case attendance.PeriodCustom:
		return DateRange{From: today.AddDate(0, 0, -(attendance.DefaultListingDays - 1)), To: today}, nil
	}
	return DateRange{}, fmt.Errorf("unknown period %q", period)
}

// DefaultGranularity picks the trend bucket size for a period.
func DefaultGranularity(period attendance.Period, r DateRange) attendance.Granularity {
	switch period {
	case attendance.PeriodToday, attendance.PeriodYesterday, attendance.PeriodWeek:
		return attendance.GranularityDaily
	case attendance.PeriodMonth, attendance.PeriodQuarter:
		return attendance.GranularityWeekly
	case attendance.PeriodYear:
		return attendance.GranularityMonthly
	}
	switch days := r.Days(); {
	case days <= 14:
		return attendance.GranularityDaily
	case days <= 120:
		return attendance.GranularityWeekly
	default:
		return attendance.GranularityMonthly
	}
}

type bucket struct {
	label string
	span  DateRange
}

// splitBuckets cuts r into consecutive daily, ISO-week or calendar-month buckets.
func splitBuckets(r DateRange, g attendance.Granularity) []bucket {
	var out []bucket
	for from := r.From; !from.After(r.To); {
		var to time.Time
		var label string
		switch g {
		case attendance.GranularityWeekly:
			to = weekStart(from).AddDate(0, 0, 6)
			year, week := from.ISOWeek()
			label = fmt.Sprintf("%d-W%02d", year, week)
		case attendance.GranularityMonthly:
			to = monthStart(from).AddDate(0, 1, -1)
			label = from.Format("2006-01")
		default:
			to = from
			label = dayKey(from)
		}
		to = minTime(to, r.To)
		out = append(out, bucket{label: label, span: DateRange{From: from, To: to}})
		from = to.AddDate(0, 0, 1)
	}
	return out
}

func hasValue(s *string) bool {
	return s != nil && *s != ""
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// dateIn keeps t's calendar date but places midnight in loc.
func dateIn(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func weekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7 // Monday = 0
	return startOfDay(t).AddDate(0, 0, -offset)
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func quarterStart(t time.Time) time.Time {
	m := ((int(t.Month())-1)/3)*3 + 1
	return time.Date(t.Year(), time.Month(m), 1, 0, 0, 0, 0, t.Location())
}

func dayKey(t time.Time) string {
	return t.Format(validator.DateLayout)
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
