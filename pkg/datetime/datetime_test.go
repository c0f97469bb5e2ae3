package datetime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartAndEndOfDay(t *testing.T) {
	in := time.Date(2024, 3, 15, 13, 37, 42, 123456789, time.Local)

	start := StartOfDay(in)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local), start)

	end := EndOfDay(in)
	assert.Equal(t, 23, end.Hour())
	assert.Equal(t, 59, end.Minute())
	assert.Equal(t, 59, end.Second())
	assert.True(t, end.Before(time.Date(2024, 3, 16, 0, 0, 0, 0, time.Local)))
	assert.True(t, SameDay(in, end))
}

func TestStartOfWeek(t *testing.T) {
	testCases := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "mid-week lands on previous Sunday",
			in:   time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local), // Friday
			want: time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local),
		},
		{
			name: "Sunday is its own week start",
			in:   time.Date(2024, 3, 10, 23, 0, 0, 0, time.Local),
			want: time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local),
		},
		{
			name: "week start crosses a month boundary",
			in:   time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local), // Friday
			want: time.Date(2024, 2, 25, 0, 0, 0, 0, time.Local),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := StartOfWeek(tc.in)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, time.Sunday, got.Weekday())
		})
	}
}

func TestMonthBoundaries(t *testing.T) {
	in := time.Date(2024, 2, 10, 8, 30, 0, 0, time.Local)

	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.Local), StartOfMonth(in))

	end := EndOfMonth(in)
	assert.Equal(t, 29, end.Day()) // 2024 is a leap year
	assert.True(t, SameMonth(in, end))
}

func TestAddMonthsRollsOver(t *testing.T) {
	// Jan 31 + 1 month overflows into March, no clamping.
	got := AddMonths(time.Date(2024, 1, 31, 0, 0, 0, 0, time.Local), 1)
	assert.Equal(t, time.March, got.Month())
	assert.Equal(t, 2, got.Day())
}

func TestAddDays(t *testing.T) {
	got := AddDays(time.Date(2024, 2, 28, 0, 0, 0, 0, time.Local), 2)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local), got)
}

func TestSameDayIgnoresTime(t *testing.T) {
	a := time.Date(2024, 3, 15, 0, 0, 1, 0, time.Local)
	b := time.Date(2024, 3, 15, 23, 59, 59, 0, time.Local)
	c := time.Date(2024, 3, 16, 0, 0, 0, 0, time.Local)

	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(b, c))
	assert.True(t, SameMonth(a, c))
	assert.False(t, SameMonth(a, time.Date(2025, 3, 15, 0, 0, 0, 0, time.Local)))
}

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "2024-03", MonthKey(time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local)))
	assert.Equal(t, "2023-12", MonthKey(time.Date(2023, 12, 1, 0, 0, 0, 0, time.Local)))
}

func TestWeekNumber(t *testing.T) {
	assert.Equal(t, 1, WeekNumber(time.Date(2024, 1, 4, 0, 0, 0, 0, time.Local)))
}
