package event_bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_PublishInRegistrationOrder(t *testing.T) {
	bus := NewEventBus()
	var calls []string
	for _, name := range []string{"first", "second", "third"} {
		bus.Subscribe("ordered", func(Event) error {
			calls = append(calls, name)
			return nil
		})
	}

	require.NoError(t, bus.Publish(NewEvent(context.Background(), "ordered", nil)))

	assert.Equal(t, []string{"first", "second", "third"}, calls)
}

func TestEventBus_Unsubscribe(t *testing.T) {
	bus := NewEventBus()
	calls := 0
	unsubscribe := bus.Subscribe("test", func(Event) error {
		calls++
		return nil
	})

	require.NoError(t, bus.Publish(NewEvent(context.Background(), "test", nil)))
	unsubscribe()
	require.NoError(t, bus.Publish(NewEvent(context.Background(), "test", nil)))

	assert.Equal(t, 1, calls)
}

func TestEventBus_HandlerErrorsAreCollected(t *testing.T) {
	bus := NewEventBus()
	bus.Subscribe("test", func(Event) error {
		return errors.New("boom")
	})
	reached := false
	bus.Subscribe("test", func(Event) error {
		reached = true
		return nil
	})

	err := bus.Publish(NewEvent(context.Background(), "test", nil))

	assert.Error(t, err)
	assert.True(t, reached, "a failing handler must not stop the rest")
}

func TestSubscribeTyped_SkipsMismatchedPayload(t *testing.T) {
	bus := NewEventBus()
	var received []TodoSaved
	SubscribeTyped(bus, TodoSavedEvent, func(e EventT[TodoSaved]) error {
		received = append(received, e.Data)
		return nil
	})

	require.NoError(t, bus.Publish(NewEvent(context.Background(), TodoSavedEvent, "not a todo")))
	require.NoError(t, bus.Publish(NewEvent(context.Background(), TodoSavedEvent, TodoSaved{Id: "1", Title: "t"})))

	require.Len(t, received, 1)
	assert.Equal(t, "1", received[0].Id)
}
