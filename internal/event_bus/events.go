package event_bus

import "time"

// Event types published by the domain services. Create and update share one
// "saved" event because the sync adapters upsert either way.
const (
	TodoSavedEvent          EventType = "todo.saved"
	TodoDeletedEvent        EventType = "todo.deleted"
	TransactionSavedEvent   EventType = "transaction.saved"
	TransactionDeletedEvent EventType = "transaction.deleted"
	NoteSavedEvent          EventType = "note.saved"
	NoteDeletedEvent        EventType = "note.deleted"
)

// TodoSaved carries the todo fields the calendar projection needs.
type TodoSaved struct {
	Id          string
	Title       string
	Description string
	Priority    string
	DueDate     *time.Time
	Tags        []string
	Location    string
}

type TodoDeleted struct {
	Id string
}

// TransactionSaved carries the transaction fields the calendar projection needs.
type TransactionSaved struct {
	Id          string
	Type        string
	Amount      float64
	Currency    string
	Description string
	Date        time.Time
	Tags        []string
}

type TransactionDeleted struct {
	Id string
}

// NoteSaved carries the note fields the calendar projection needs.
type NoteSaved struct {
	Id        string
	Title     string
	Content   string
	Tags      []string
	CreatedAt time.Time
}

type NoteDeleted struct {
	Id string
}
