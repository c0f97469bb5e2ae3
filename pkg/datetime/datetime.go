// Package datetime provides the calendar arithmetic used by the grid
// generator, filters and report aggregation. All functions are pure and
// operate in the location of the input time.
package datetime

import "time"

const DaysInWeek = 7

// StartOfDay returns t clamped to 00:00:00.000000000.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns t clamped to the last nanosecond of its day.
func EndOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// StartOfWeek returns the start of day of the Sunday on or before t.
func StartOfWeek(t time.Time) time.Time {
	return StartOfDay(AddDays(t, -int(t.Weekday())))
}

// StartOfMonth returns the start of the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	year, month, _ := t.Date()
	return time.Date(year, month, 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth returns the end of the last day of t's month.
func EndOfMonth(t time.Time) time.Time {
	year, month, _ := t.Date()
	// day 0 of the next month is the last day of this month
	return EndOfDay(time.Date(year, month+1, 0, 0, 0, 0, 0, t.Location()))
}

// AddDays adds n calendar days to t.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// AddMonths adds n calendar months to t. Month-end overflow follows the
// native rollover semantics of time.AddDate: Jan 31 + 1 month is Mar 2/3.
func AddMonths(t time.Time, n int) time.Time {
	return t.AddDate(0, n, 0)
}

// SameDay reports whether a and b fall on the same (year, month, day),
// ignoring the time of day.
func SameDay(a, b time.Time) bool {
	ya, ma, da := a.Date()
	yb, mb, db := b.Date()
	return ya == yb && ma == mb && da == db
}

// SameMonth reports whether a and b fall in the same (year, month).
func SameMonth(a, b time.Time) bool {
	ya, ma, _ := a.Date()
	yb, mb, _ := b.Date()
	return ya == yb && ma == mb
}

// WeekNumber returns the ISO 8601 week number of t.
func WeekNumber(t time.Time) int {
	_, week := t.ISOWeek()
	return week
}

// MonthKey renders t's month as "YYYY-MM", the bucket key used by the
// monthly trend aggregation.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}
