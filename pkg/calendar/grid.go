package calendar

import (
	"time"

	"github.com/chuwg/taskflow/pkg/datetime"
)

// The month view always renders 6 weeks of 7 days (42 cells) so the grid
// height stays constant. Cells outside the target month are marked
// IsCurrentMonth=false but still carry their events.
const WeeksInMonthGrid = 6

type DayInfo struct {
	Date           time.Time `json:"date"`
	Events         []Event   `json:"events"`
	IsToday        bool      `json:"isToday"`
	IsSelected     bool      `json:"isSelected"`
	IsCurrentMonth bool      `json:"isCurrentMonth"`
	DayNumber      int       `json:"dayNumber"`
	DayName        string    `json:"dayName"`
}

type WeekInfo struct {
	WeekNumber int       `json:"weekNumber"`
	Days       []DayInfo `json:"days"`
	Events     []Event   `json:"events"`
}

type MonthInfo struct {
	Year   int        `json:"year"`
	Month  time.Month `json:"month"`
	Weeks  []WeekInfo `json:"weeks"`
	Events []Event    `json:"events"`
}

// EventsForDay returns the events whose interval overlaps the given day,
// inclusive at both midnight boundaries: an event spanning midnight appears
// on every day it touches.
func EventsForDay(events []Event, day time.Time) []Event {
	dayStart := datetime.StartOfDay(day)
	dayEnd := datetime.EndOfDay(day)

	matched := make([]Event, 0)
	for _, e := range events {
		if e.Overlaps(dayStart, dayEnd) {
			matched = append(matched, e)
		}
	}
	return matched
}

// DayGrid annotates a single day cell. currentMonth marks which month the
// surrounding grid renders; selected may be nil.
func DayGrid(day time.Time, events []Event, selected *time.Time, currentMonth time.Time, now time.Time) DayInfo {
	isSelected := false
	if selected != nil {
		isSelected = datetime.SameDay(day, *selected)
	}
	return DayInfo{
		Date:           day,
		Events:         EventsForDay(events, day),
		IsToday:        datetime.SameDay(day, now),
		IsSelected:     isSelected,
		IsCurrentMonth: datetime.SameMonth(day, currentMonth),
		DayNumber:      day.Day(),
		DayName:        day.Weekday().String()[:3],
	}
}

// WeekGrid builds the 7 day cells starting at weekStart.
func WeekGrid(weekStart time.Time, events []Event, selected *time.Time, currentMonth time.Time, now time.Time) WeekInfo {
	days := make([]DayInfo, 0, datetime.DaysInWeek)
	weekEvents := make([]Event, 0)

	for i := 0; i < datetime.DaysInWeek; i++ {
		day := DayGrid(datetime.AddDays(weekStart, i), events, selected, currentMonth, now)
		days = append(days, day)
		weekEvents = append(weekEvents, day.Events...)
	}

	return WeekInfo{
		WeekNumber: datetime.WeekNumber(weekStart),
		Days:       days,
		Events:     weekEvents,
	}
}

// MonthGrid builds the fixed 6x7 grid for the month containing ref. The grid
// starts on the Sunday on or before the first of the month.
func MonthGrid(ref time.Time, events []Event, selected *time.Time, now time.Time) MonthInfo {
	gridStart := datetime.StartOfWeek(datetime.StartOfMonth(ref))

	weeks := make([]WeekInfo, 0, WeeksInMonthGrid)
	monthEvents := make([]Event, 0)
	for i := 0; i < WeeksInMonthGrid; i++ {
		week := WeekGrid(datetime.AddDays(gridStart, i*datetime.DaysInWeek), events, selected, ref, now)
		weeks = append(weeks, week)
		monthEvents = append(monthEvents, week.Events...)
	}

	return MonthInfo{
		Year:   ref.Year(),
		Month:  ref.Month(),
		Weeks:  weeks,
		Events: monthEvents,
	}
}
