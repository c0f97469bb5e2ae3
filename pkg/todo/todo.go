package todo

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidTodo = errors.New("invalid todo")

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

type Category string

const (
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryHealth   Category = "health"
	CategoryShopping Category = "shopping"
	CategoryStudy    Category = "study"
	CategoryOther    Category = "other"
)

type Subtask struct {
	Id          string     `json:"id"`
	Title       string     `json:"title"`
	Status      Status     `json:"status"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type Recurrence struct {
	Frequency string     `json:"frequency"`
	Interval  int        `json:"interval"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}

type Todo struct {
	Id            string      `json:"id"`
	Title         string      `json:"title"`
	Description   string      `json:"description,omitempty"`
	Status        Status      `json:"status"`
	Priority      Priority    `json:"priority"`
	Category      Category    `json:"category"`
	DueDate       *time.Time  `json:"dueDate,omitempty"`
	CompletedAt   *time.Time  `json:"completedAt,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
	Tags          []string    `json:"tags,omitempty"`
	Subtasks      []Subtask   `json:"subtasks,omitempty"`
	EstimatedTime int         `json:"estimatedTime,omitempty"` // minutes
	ActualTime    int         `json:"actualTime,omitempty"`    // minutes
	Location      string      `json:"location,omitempty"`
	IsRecurring   bool        `json:"isRecurring,omitempty"`
	Recurrence    *Recurrence `json:"recurrence,omitempty"`
	Notes         string      `json:"notes,omitempty"`
	Color         string      `json:"color,omitempty"`
}

// IsOverdue reports whether the todo's due date has passed while the todo is
// still open.
func (t Todo) IsOverdue(now time.Time) bool {
	if t.DueDate == nil || t.Status == StatusCompleted || t.Status == StatusCancelled {
		return false
	}
	return t.DueDate.Before(now)
}

func (t Todo) Validate() error {
	if t.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidTodo)
	}
	switch t.Status {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTodo, t.Status)
	}
	switch t.Priority {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
	default:
		return fmt.Errorf("%w: unknown priority %q", ErrInvalidTodo, t.Priority)
	}
	switch t.Category {
	case CategoryWork, CategoryPersonal, CategoryHealth, CategoryShopping, CategoryStudy, CategoryOther:
	default:
		return fmt.Errorf("%w: unknown category %q", ErrInvalidTodo, t.Category)
	}
	if t.Status == StatusCompleted && t.CompletedAt == nil {
		return fmt.Errorf("%w: completed todo needs a completion time", ErrInvalidTodo)
	}
	if t.Status != StatusCompleted && t.CompletedAt != nil {
		return fmt.Errorf("%w: completion time on a todo that is not completed", ErrInvalidTodo)
	}
	return nil
}

// NextStatus returns the status reached by toggling: open states advance
// through the cycle, a cancelled todo reopens.
func NextStatus(current Status) Status {
	switch current {
	case StatusPending:
		return StatusInProgress
	case StatusInProgress:
		return StatusCompleted
	case StatusCompleted:
		return StatusPending
	case StatusCancelled:
		return StatusPending
	default:
		return StatusPending
	}
}

// Template is a reusable todo blueprint.
type Template struct {
	Id            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Category      Category  `json:"category"`
	Priority      Priority  `json:"priority"`
	EstimatedTime int       `json:"estimatedTime,omitempty"`
	Tags          []string  `json:"tags,omitempty"`
	Subtasks      []string  `json:"subtasks,omitempty"`
	UsageCount    int       `json:"usageCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (t Template) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("%w: template name is required", ErrInvalidTodo)
	}
	return nil
}

// Stats is a snapshot of the todo list computed on demand.
type Stats struct {
	Total                 int     `json:"total"`
	Pending               int     `json:"pending"`
	InProgress            int     `json:"inProgress"`
	Completed             int     `json:"completed"`
	Cancelled             int     `json:"cancelled"`
	Overdue               int     `json:"overdue"`
	CompletedToday        int     `json:"completedToday"`
	CompletedThisWeek     int     `json:"completedThisWeek"`
	CompletedThisMonth    int     `json:"completedThisMonth"`
	AverageCompletionTime float64 `json:"averageCompletionTime"` // minutes
}
