package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/validator"
)

func TestResolvePeriod_Named(t *testing.T) {
	today := at("2025-10-15", "11:20") // Wednesday

	tests := []struct {
		period   attendance.Period
		from, to string
	}{
		{attendance.PeriodToday, "2025-10-15", "2025-10-15"},
		{attendance.PeriodYesterday, "2025-10-14", "2025-10-14"},
		{attendance.PeriodWeek, "2025-10-13", "2025-10-15"},
		{attendance.PeriodMonth, "2025-10-01", "2025-10-15"},
		{attendance.PeriodQuarter, "2025-10-01", "2025-10-15"},
		{attendance.PeriodYear, "2025-01-01", "2025-10-15"},
		{attendance.PeriodCustom, "2025-09-16", "2025-10-15"},
		{"", "2025-10-01", "2025-10-15"},
	}

	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			r, err := ResolvePeriod(tt.period, nil, nil, today)

			require.NoError(t, err)
			assert.Equal(t, tt.from, dayKey(r.From))
			assert.Equal(t, tt.to, dayKey(r.To))
		})
	}
}

func TestResolvePeriod_ExplicitDatesOverride(t *testing.T) {
	today := at("2025-10-15", "11:20")

	r, err := ResolvePeriod(attendance.PeriodYear, ptr("2025-08-01"), ptr("2025-08-31"), today)
	require.NoError(t, err)
	assert.Equal(t, "2025-08-01", dayKey(r.From))
	assert.Equal(t, "2025-08-31", dayKey(r.To))
	assert.Equal(t, 31, r.Days())

	onlyEnd, err := ResolvePeriod(attendance.PeriodCustom, nil, ptr("2025-08-31"), today)
	require.NoError(t, err)
	assert.Equal(t, "2025-08-02", dayKey(onlyEnd.From))

	onlyStart, err := ResolvePeriod(attendance.PeriodCustom, ptr("2025-10-01"), nil, today)
	require.NoError(t, err)
	assert.Equal(t, "2025-10-15", dayKey(onlyStart.To))

	_, err = ResolvePeriod(attendance.PeriodCustom, ptr("2025-13-01"), nil, today)
	assert.Error(t, err)
}

func TestResolvePeriod_RangeCap(t *testing.T) {
	today := at("2025-10-15", "11:20")

	r, err := ResolvePeriod(attendance.PeriodCustom, ptr("2024-10-15"), nil, today)
	require.NoError(t, err)
	assert.Equal(t, attendance.MaxRangeDays, r.Days())

	_, err = ResolvePeriod(attendance.PeriodCustom, ptr("0001-01-01"), nil, today)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "start_date")
}

func TestResolvePeriod_QuarterStart(t *testing.T) {
	r, err := ResolvePeriod(attendance.PeriodQuarter, nil, nil, at("2025-08-20", "08:00"))

	require.NoError(t, err)
	assert.Equal(t, "2025-07-01", dayKey(r.From))
}

func TestDefaultGranularity(t *testing.T) {
	short := DateRange{From: day("2025-10-01"), To: day("2025-10-14")}
	medium := DateRange{From: day("2025-06-01"), To: day("2025-09-28")}
	long := DateRange{From: day("2025-01-01"), To: day("2025-10-15")}

	assert.Equal(t, attendance.GranularityDaily, DefaultGranularity(attendance.PeriodWeek, long))
	assert.Equal(t, attendance.GranularityWeekly, DefaultGranularity(attendance.PeriodMonth, short))
	assert.Equal(t, attendance.GranularityMonthly, DefaultGranularity(attendance.PeriodYear, short))
	assert.Equal(t, attendance.GranularityDaily, DefaultGranularity(attendance.PeriodCustom, short))
	assert.Equal(t, attendance.GranularityWeekly, DefaultGranularity(attendance.PeriodCustom, medium))
	assert.Equal(t, attendance.GranularityMonthly, DefaultGranularity(attendance.PeriodCustom, long))
}

func TestSplitBuckets(t *testing.T) {
	r := DateRange{From: day("2025-09-24"), To: day("2025-10-15")} // Wednesday to Wednesday

	weekly := splitBuckets(r, attendance.GranularityWeekly)
	require.Len(t, weekly, 4)
	assert.Equal(t, "2025-W39", weekly[0].label)
	assert.Equal(t, "2025-09-24", dayKey(weekly[0].span.From))
	assert.Equal(t, "2025-09-28", dayKey(weekly[0].span.To))
	assert.Equal(t, "2025-09-29", dayKey(weekly[1].span.From))
	assert.Equal(t, "2025-10-15", dayKey(weekly[3].span.To))

	monthly := splitBuckets(r, attendance.GranularityMonthly)
	require.Len(t, monthly, 2)
	assert.Equal(t, "2025-09", monthly[0].label)
	assert.Equal(t, "2025-09-30", dayKey(monthly[0].span.To))
	assert.Equal(t, "2025-10", monthly[1].label)

	daily := splitBuckets(r, attendance.GranularityDaily)
	assert.Len(t, daily, r.Days())

	total := 0
	for _, b := range weekly {
		total += b.span.Days()
	}
	assert.Equal(t, r.Days(), total)
}

func TestDateRange_Clip(t *testing.T) {
	r := DateRange{From: day("2025-10-01"), To: day("2025-10-31")}

	clipped := r.Clip(day("2025-10-10"), day("2025-10-15"))
	assert.Equal(t, 6, clipped.Days())

	empty := r.Clip(day("2025-11-05"), day("2025-10-15"))
	assert.True(t, empty.Empty())
	assert.Zero(t, empty.Days())
}
