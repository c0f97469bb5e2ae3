// Package integration keeps shadow calendar events in sync with the todo,
// finance, and note domains. Every shadow event carries a derived id, so at
// most one event exists per source record.
package integration

import (
	"context"
	"fmt"

	"github.com/chuwg/taskflow/internal/event_bus"
	"github.com/chuwg/taskflow/internal/utils"
	"github.com/chuwg/taskflow/pkg/calendar"
	log "github.com/sirupsen/logrus"
)

// CalendarWriter is the slice of the calendar service the syncer needs.
type CalendarWriter interface {
	Upsert(ctx context.Context, event calendar.Event) (*calendar.Event, error)
	Delete(ctx context.Context, id calendar.EventID) error
}

var todoPriorityColors = map[string]string{
	"urgent": "#F44336",
	"high":   "#FF9800",
	"medium": "#2196F3",
	"low":    "#4CAF50",
}

const (
	incomeColor  = "#4caf50"
	expenseColor = "#f44336"
	noteColor    = "#2196f3"
)

type Syncer struct {
	calendar CalendarWriter
	clock    utils.Clock
}

func NewSyncer(cal CalendarWriter, clock utils.Clock) *Syncer {
	return &Syncer{calendar: cal, clock: clock}
}

// SyncTodo upserts the todo's shadow event. Only dated todos appear on the
// calendar; clearing the due date drops any shadow event left behind.
func (s *Syncer) SyncTodo(ctx context.Context, todo event_bus.TodoSaved) error {
	if todo.DueDate == nil {
		return s.remove(ctx, calendar.DerivedID(calendar.DomainTodo, todo.Id))
	}
	return s.upsert(ctx, calendar.Event{
		ID:          calendar.DerivedID(calendar.DomainTodo, todo.Id),
		Title:       todo.Title,
		Description: todo.Description,
		StartTime:   *todo.DueDate,
		Type:        calendar.EventTypeTask,
		Color:       todoColor(todo.Priority),
		Location:    todo.Location,
		Tags:        todo.Tags,
	})
}

func (s *Syncer) RemoveTodo(ctx context.Context, todoId string) error {
	return s.remove(ctx, calendar.DerivedID(calendar.DomainTodo, todoId))
}

// SyncTransaction upserts the transaction's shadow event; the title carries
// the direction and amount.
func (s *Syncer) SyncTransaction(ctx context.Context, transaction event_bus.TransactionSaved) error {
	color := expenseColor
	if transaction.Type == "income" {
		color = incomeColor
	}
	return s.upsert(ctx, calendar.Event{
		ID:          calendar.DerivedID(calendar.DomainTransaction, transaction.Id),
		Title:       transactionTitle(transaction),
		Description: transaction.Description,
		StartTime:   transaction.Date,
		Type:        calendar.EventTypeExpense,
		Color:       color,
		Tags:        transaction.Tags,
	})
}

func (s *Syncer) RemoveTransaction(ctx context.Context, transactionId string) error {
	return s.remove(ctx, calendar.DerivedID(calendar.DomainTransaction, transactionId))
}

// SyncNote upserts the note's shadow event on the note's creation day.
func (s *Syncer) SyncNote(ctx context.Context, note event_bus.NoteSaved) error {
	start := note.CreatedAt
	if start.IsZero() {
		start = s.clock.Now()
	}
	return s.upsert(ctx, calendar.Event{
		ID:          calendar.DerivedID(calendar.DomainNote, note.Id),
		Title:       note.Title,
		Description: note.Content,
		StartTime:   start,
		Type:        calendar.EventTypeNote,
		Color:       noteColor,
		Tags:        note.Tags,
	})
}

func (s *Syncer) RemoveNote(ctx context.Context, noteId string) error {
	return s.remove(ctx, calendar.DerivedID(calendar.DomainNote, noteId))
}

func (s *Syncer) upsert(ctx context.Context, event calendar.Event) error {
	if _, err := s.calendar.Upsert(ctx, event); err != nil {
		// a sync failure never blocks the source mutation
		log.Warnf("failed to sync shadow event %s: %v", event.ID, err)
	}
	return nil
}

func (s *Syncer) remove(ctx context.Context, id calendar.EventID) error {
	if err := s.calendar.Delete(ctx, id); err != nil {
		log.Warnf("failed to remove shadow event %s: %v", id, err)
	}
	return nil
}

func todoColor(priority string) string {
	if color, ok := todoPriorityColors[priority]; ok {
		return color
	}
	return todoPriorityColors["medium"]
}

func transactionTitle(transaction event_bus.TransactionSaved) string {
	label := "Expense"
	if transaction.Type == "income" {
		label = "Income"
	}
	currency := transaction.Currency
	if currency == "" {
		return fmt.Sprintf("%s: %.2f", label, transaction.Amount)
	}
	return fmt.Sprintf("%s: %.2f %s", label, transaction.Amount, currency)
}
