package todo

import (
	"slices"
	"sort"
	"strings"
	"time"
)

// Filter narrows a todo list. Dimensions combine with AND; values within one
// set dimension combine with OR. An empty dimension is no constraint.
type Filter struct {
	Status      []Status
	Priority    []Priority
	Category    []Category
	Tags        []string
	DueFrom     *time.Time
	DueTo       *time.Time
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Query       string
	HasSubtasks *bool
	IsOverdue   *bool
}

func (f Filter) Matches(t Todo, now time.Time) bool {
	if len(f.Status) > 0 && !slices.Contains(f.Status, t.Status) {
		return false
	}
	if len(f.Priority) > 0 && !slices.Contains(f.Priority, t.Priority) {
		return false
	}
	if len(f.Category) > 0 && !slices.Contains(f.Category, t.Category) {
		return false
	}
	if len(f.Tags) > 0 && !hasAnyTag(t.Tags, f.Tags) {
		return false
	}
	if f.DueFrom != nil || f.DueTo != nil {
		if t.DueDate == nil {
			return false
		}
		if f.DueFrom != nil && t.DueDate.Before(*f.DueFrom) {
			return false
		}
		if f.DueTo != nil && t.DueDate.After(*f.DueTo) {
			return false
		}
	}
	if f.CreatedFrom != nil && t.CreatedAt.Before(*f.CreatedFrom) {
		return false
	}
	if f.CreatedTo != nil && t.CreatedAt.After(*f.CreatedTo) {
		return false
	}
	if f.Query != "" && !matchesQuery(t, f.Query) {
		return false
	}
	if f.HasSubtasks != nil && *f.HasSubtasks != (len(t.Subtasks) > 0) {
		return false
	}
	if f.IsOverdue != nil && *f.IsOverdue != t.IsOverdue(now) {
		return false
	}
	return true
}

// Apply returns the matching subset in input order.
func (f Filter) Apply(todos []Todo, now time.Time) []Todo {
	matched := make([]Todo, 0, len(todos))
	for _, t := range todos {
		if f.Matches(t, now) {
			matched = append(matched, t)
		}
	}
	return matched
}

func matchesQuery(t Todo, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(t.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Description), q) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func hasAnyTag(have, want []string) bool {
	for _, tag := range want {
		if slices.Contains(have, tag) {
			return true
		}
	}
	return false
}

type SortField string

const (
	SortByTitle     SortField = "title"
	SortByStatus    SortField = "status"
	SortByPriority  SortField = "priority"
	SortByDueDate   SortField = "dueDate"
	SortByCreatedAt SortField = "createdAt"
	SortByUpdatedAt SortField = "updatedAt"
)

type SortOption struct {
	Field     SortField
	Direction string // "asc" or "desc"
}

// priority sorts urgent first when descending.
var priorityRank = map[Priority]int{
	PriorityLow:    0,
	PriorityMedium: 1,
	PriorityHigh:   2,
	PriorityUrgent: 3,
}

// Sort orders todos in place. The sort is stable so records comparing equal
// keep their original relative order.
func Sort(todos []Todo, opt SortOption) {
	if opt.Field == "" {
		return
	}
	desc := opt.Direction == "desc"
	sort.SliceStable(todos, func(i, j int) bool {
		less := lessByField(todos[i], todos[j], opt.Field)
		if desc {
			return lessByField(todos[j], todos[i], opt.Field)
		}
		return less
	})
}

func lessByField(a, b Todo, field SortField) bool {
	switch field {
	case SortByTitle:
		return a.Title < b.Title
	case SortByStatus:
		return a.Status < b.Status
	case SortByPriority:
		return priorityRank[a.Priority] < priorityRank[b.Priority]
	case SortByDueDate:
		// todos without a due date sort last
		if a.DueDate == nil {
			return false
		}
		if b.DueDate == nil {
			return true
		}
		return a.DueDate.Before(*b.DueDate)
	case SortByCreatedAt:
		return a.CreatedAt.Before(b.CreatedAt)
	case SortByUpdatedAt:
		return a.UpdatedAt.Before(b.UpdatedAt)
	default:
		return false
	}
}
