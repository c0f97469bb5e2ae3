package integration

import (
	"github.com/chuwg/taskflow/internal/event_bus"
)

// Subscribe wires the syncer to the domain events. The returned function
// removes all subscriptions.
func Subscribe(bus *event_bus.EventBus, syncer *Syncer) (unsubscribe func()) {
	subs := []func(){
		event_bus.SubscribeTyped(bus, event_bus.TodoSavedEvent, func(e event_bus.EventT[event_bus.TodoSaved]) error {
			return syncer.SyncTodo(e.Context(), e.Data)
		}),
		event_bus.SubscribeTyped(bus, event_bus.TodoDeletedEvent, func(e event_bus.EventT[event_bus.TodoDeleted]) error {
			return syncer.RemoveTodo(e.Context(), e.Data.Id)
		}),
		event_bus.SubscribeTyped(bus, event_bus.TransactionSavedEvent, func(e event_bus.EventT[event_bus.TransactionSaved]) error {
			return syncer.SyncTransaction(e.Context(), e.Data)
		}),
		event_bus.SubscribeTyped(bus, event_bus.TransactionDeletedEvent, func(e event_bus.EventT[event_bus.TransactionDeleted]) error {
			return syncer.RemoveTransaction(e.Context(), e.Data.Id)
		}),
		event_bus.SubscribeTyped(bus, event_bus.NoteSavedEvent, func(e event_bus.EventT[event_bus.NoteSaved]) error {
			return syncer.SyncNote(e.Context(), e.Data)
		}),
		event_bus.SubscribeTyped(bus, event_bus.NoteDeletedEvent, func(e event_bus.EventT[event_bus.NoteDeleted]) error {
			return syncer.RemoveNote(e.Context(), e.Data.Id)
		}),
	}
	return func() {
		for _, unsub := range subs {
			unsub()
		}
	}
}
