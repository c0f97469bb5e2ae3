// Package calendar holds the calendar events, the month/week/day grid
// generation and the event filter. Events are either native (created by the
// user) or shadows derived from a todo, transaction or note by the sync
// adapters.
package calendar

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidEvent = errors.New("invalid event")

type EventType string

const (
	EventTypeTask    EventType = "task"
	EventTypeExpense EventType = "expense"
	EventTypeNote    EventType = "note"
	EventTypeCustom  EventType = "custom"
)

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// Recurrence is stored and filterable but never expanded into occurrences.
type Recurrence struct {
	Frequency      Frequency  `json:"frequency"`
	Interval       int        `json:"interval,omitempty"`
	EndDate        *time.Time `json:"endDate,omitempty"`
	EndOccurrences int        `json:"endOccurrences,omitempty"`
	DaysOfWeek     []int      `json:"daysOfWeek,omitempty"`
}

type Event struct {
	ID          EventID     `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	StartTime   time.Time   `json:"startTime"`
	EndTime     *time.Time  `json:"endTime,omitempty"`
	AllDay      bool        `json:"allDay,omitempty"`
	Type        EventType   `json:"type"`
	Color       string      `json:"color,omitempty"`
	Location    string      `json:"location,omitempty"`
	Recurrence  *Recurrence `json:"recurrence,omitempty"`
	Tags        []string    `json:"tags,omitempty"`
}

// End returns the effective end of the event's interval: EndTime when set,
// otherwise the start.
func (e Event) End() time.Time {
	if e.EndTime != nil {
		return *e.EndTime
	}
	return e.StartTime
}

// Overlaps reports whether the event's interval touches [from, to],
// inclusive at both ends.
func (e Event) Overlaps(from, to time.Time) bool {
	return !e.StartTime.After(to) && !e.End().Before(from)
}

// Validate checks the fields required on every event.
func (e Event) Validate() error {
	if e.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidEvent)
	}
	if e.StartTime.IsZero() {
		return fmt.Errorf("%w: start time is required", ErrInvalidEvent)
	}
	if e.EndTime != nil && e.EndTime.Before(e.StartTime) {
		return fmt.Errorf("%w: end time is before start time", ErrInvalidEvent)
	}
	switch e.Type {
	case EventTypeTask, EventTypeExpense, EventTypeNote, EventTypeCustom:
	default:
		return fmt.Errorf("%w: unknown event type %q", ErrInvalidEvent, e.Type)
	}
	return nil
}
