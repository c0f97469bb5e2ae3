package calendar

import (
	"slices"
	"time"
)

// Filter narrows an event list. Dimensions combine with AND; within a set
// dimension values combine with OR. An empty dimension is no constraint.
type Filter struct {
	Types []EventType
	Tags  []string
	From  *time.Time
	To    *time.Time
}

func (f Filter) Matches(e Event) bool {
	if len(f.Types) > 0 && !slices.Contains(f.Types, e.Type) {
		return false
	}
	if len(f.Tags) > 0 && !hasAnyTag(e.Tags, f.Tags) {
		return false
	}
	if f.From != nil && e.End().Before(*f.From) {
		return false
	}
	if f.To != nil && e.StartTime.After(*f.To) {
		return false
	}
	return true
}

// Apply returns the matching subset in input order.
func (f Filter) Apply(events []Event) []Event {
	matched := make([]Event, 0, len(events))
	for _, e := range events {
		if f.Matches(e) {
			matched = append(matched, e)
		}
	}
	return matched
}

func hasAnyTag(have, want []string) bool {
	for _, tag := range want {
		if slices.Contains(have, tag) {
			return true
		}
	}
	return false
}
