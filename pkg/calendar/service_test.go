package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/chuwg/taskflow/internal/storage"
	"github.com/chuwg/taskflow/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T) (*Service, *storage.MemoryStore, context.Context) {
	t.Helper()
	store := storage.NewMemoryStore()
	clock := &utils.MockClock{FixedNow: time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)}
	return NewService(NewBlobRepository(store), clock), store, context.Background()
}

func TestService_AddAssignsIdAndValidates(t *testing.T) {
	service, _, ctx := setupService(t)

	created, err := service.Add(ctx, Event{
		Title:     "Dentist",
		StartTime: time.Date(2024, time.March, 20, 9, 0, 0, 0, time.UTC),
		Type:      EventTypeCustom,
	})

	require.NoError(t, err)
	assert.False(t, created.ID.IsZero())
	assert.False(t, created.ID.IsDerived())

	found, err := service.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dentist", found.Title)
}

func TestService_AddRejectsInvalidEvent(t *testing.T) {
	service, _, ctx := setupService(t)

	tests := []struct {
		name  string
		event Event
	}{
		{"missing title", Event{StartTime: time.Now(), Type: EventTypeCustom}},
		{"missing start time", Event{Title: "x", Type: EventTypeCustom}},
		{"unknown type", Event{Title: "x", StartTime: time.Now(), Type: "party"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Add(ctx, tt.event)
			assert.ErrorIs(t, err, ErrInvalidEvent)
		})
	}
}

func TestService_AddSurvivesPersistFailure(t *testing.T) {
	service, store, ctx := setupService(t)
	store.FailWrites = true

	created, err := service.Add(ctx, Event{
		Title:     "Offline edit",
		StartTime: time.Date(2024, time.March, 20, 9, 0, 0, 0, time.UTC),
		Type:      EventTypeCustom,
	})

	// the mutation applied in memory even though the write failed
	require.ErrorIs(t, err, storage.ErrPersist)
	require.NotNil(t, created)

	found, err := service.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Offline edit", found.Title)
}

func TestService_ModifyUpdatesExistingEvent(t *testing.T) {
	service, _, ctx := setupService(t)
	created, err := service.Add(ctx, Event{
		Title:     "Draft",
		StartTime: time.Date(2024, time.March, 20, 9, 0, 0, 0, time.UTC),
		Type:      EventTypeCustom,
	})
	require.NoError(t, err)

	created.Title = "Final"
	updated, err := service.Modify(ctx, *created)

	require.NoError(t, err)
	assert.True(t, updated)

	found, err := service.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Final", found.Title)
}

func TestService_ModifyUnknownEventReturnsFalse(t *testing.T) {
	service, _, ctx := setupService(t)

	updated, err := service.Modify(ctx, Event{
		ID:        NativeID("missing"),
		Title:     "Ghost",
		StartTime: time.Date(2024, time.March, 20, 9, 0, 0, 0, time.UTC),
		Type:      EventTypeCustom,
	})

	require.NoError(t, err)
	assert.False(t, updated)
}

func TestService_DeleteIsIdempotent(t *testing.T) {
	service, _, ctx := setupService(t)
	created, err := service.Add(ctx, Event{
		Title:     "Temp",
		StartTime: time.Date(2024, time.March, 20, 9, 0, 0, 0, time.UTC),
		Type:      EventTypeCustom,
	})
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, created.ID))
	// second delete of the same id is a no-op
	require.NoError(t, service.Delete(ctx, created.ID))

	found, err := service.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestService_UpsertInsertsThenUpdates(t *testing.T) {
	service, _, ctx := setupService(t)
	id := DerivedID(DomainTodo, "7")

	first, err := service.Upsert(ctx, Event{
		ID:        id,
		Title:     "Buy milk",
		StartTime: time.Date(2024, time.March, 20, 9, 0, 0, 0, time.UTC),
		Type:      EventTypeTask,
	})
	require.NoError(t, err)
	assert.Equal(t, "todo-7", first.ID.String())

	_, err = service.Upsert(ctx, Event{
		ID:        id,
		Title:     "Buy oat milk",
		StartTime: time.Date(2024, time.March, 21, 9, 0, 0, 0, time.UTC),
		Type:      EventTypeTask,
	})
	require.NoError(t, err)

	events, err := service.List(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Buy oat milk", events[0].Title)
}

func TestService_EventsBetween(t *testing.T) {
	service, _, ctx := setupService(t)
	for day := 10; day <= 14; day++ {
		_, err := service.Add(ctx, Event{
			Title:     "daily",
			StartTime: time.Date(2024, time.March, day, 9, 0, 0, 0, time.UTC),
			Type:      EventTypeCustom,
		})
		require.NoError(t, err)
	}

	events, err := service.EventsBetween(ctx,
		time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.March, 13, 23, 59, 59, 0, time.UTC),
	)

	require.NoError(t, err)
	assert.Len(t, events, 3)
}

func TestService_MonthUsesClockForToday(t *testing.T) {
	service, _, ctx := setupService(t)

	month, err := service.Month(ctx, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), nil, Filter{})
	require.NoError(t, err)

	var todays []time.Time
	for _, week := range month.Weeks {
		for _, day := range week.Days {
			if day.IsToday {
				todays = append(todays, day.Date)
			}
		}
	}
	require.Len(t, todays, 1)
	assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), todays[0])
}

func TestService_RepositorySurvivesReload(t *testing.T) {
	store := storage.NewMemoryStore()
	clock := &utils.MockClock{FixedNow: time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)}
	ctx := context.Background()

	first := NewService(NewBlobRepository(store), clock)
	created, err := first.Add(ctx, Event{
		Title:     "Persisted",
		StartTime: time.Date(2024, time.March, 20, 9, 0, 0, 0, time.UTC),
		Type:      EventTypeCustom,
	})
	require.NoError(t, err)

	// a fresh repository over the same store sees the stored event
	second := NewService(NewBlobRepository(store), clock)
	found, err := second.Get(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Persisted", found.Title)
}
