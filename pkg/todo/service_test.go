package todo

import (
	"context"
	"testing"
	"time"

	"github.com/chuwg/taskflow/internal/event_bus"
	"github.com/chuwg/taskflow/internal/storage"
	"github.com/chuwg/taskflow/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

func setupTodoTest(t *testing.T) (*ServiceImpl, *utils.MockClock, context.Context) {
	t.Helper()
	clock := &utils.MockClock{FixedNow: fixedNow}
	repo := NewBlobRepository(storage.NewMemoryStore())
	return NewService(repo, event_bus.NewEventBus(), clock), clock, context.Background()
}

func newTodo(title string) Todo {
	return Todo{
		Title:    title,
		Priority: PriorityMedium,
		Category: CategoryPersonal,
	}
}

func TestService_CreateSetsDefaults(t *testing.T) {
	service, _, ctx := setupTodoTest(t)

	created, err := service.Create(ctx, newTodo("Water plants"))

	require.NoError(t, err)
	assert.NotEmpty(t, created.Id)
	assert.Equal(t, StatusPending, created.Status)
	assert.Equal(t, fixedNow, created.CreatedAt)
	assert.Equal(t, fixedNow, created.UpdatedAt)
	assert.Nil(t, created.CompletedAt)
}

func TestService_CreateRejectsInvalid(t *testing.T) {
	service, _, ctx := setupTodoTest(t)

	tests := []struct {
		name string
		todo Todo
	}{
		{"missing title", Todo{Priority: PriorityLow, Category: CategoryWork}},
		{"unknown priority", Todo{Title: "x", Priority: "extreme", Category: CategoryWork}},
		{"unknown category", Todo{Title: "x", Priority: PriorityLow, Category: "hobby"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(ctx, tt.todo)
			assert.ErrorIs(t, err, ErrInvalidTodo)
		})
	}
}

func TestService_ToggleStatusCycle(t *testing.T) {
	service, clock, ctx := setupTodoTest(t)
	created, err := service.Create(ctx, newTodo("Cycle me"))
	require.NoError(t, err)
	clock.Advance(time.Hour)

	expected := []Status{StatusInProgress, StatusCompleted, StatusPending}
	for _, want := range expected {
		toggled, err := service.ToggleStatus(ctx, created.Id)
		require.NoError(t, err)
		assert.Equal(t, want, toggled.Status)
		if want == StatusCompleted {
			require.NotNil(t, toggled.CompletedAt)
			assert.Equal(t, fixedNow.Add(time.Hour), *toggled.CompletedAt)
		} else {
			assert.Nil(t, toggled.CompletedAt)
		}
	}
}

func TestService_ToggleReopensCancelled(t *testing.T) {
	service, _, ctx := setupTodoTest(t)
	created, err := service.Create(ctx, newTodo("Cancelled"))
	require.NoError(t, err)
	created.Status = StatusCancelled
	_, err = service.Update(ctx, *created)
	require.NoError(t, err)

	toggled, err := service.ToggleStatus(ctx, created.Id)

	require.NoError(t, err)
	assert.Equal(t, StatusPending, toggled.Status)
}

func TestService_UpdateKeepsCompletedAtInvariant(t *testing.T) {
	service, _, ctx := setupTodoTest(t)
	created, err := service.Create(ctx, newTodo("Finish report"))
	require.NoError(t, err)

	created.Status = StatusCompleted
	updated, err := service.Update(ctx, *created)
	require.NoError(t, err)
	require.NotNil(t, updated.CompletedAt)

	updated.Status = StatusPending
	reopened, err := service.Update(ctx, *updated)
	require.NoError(t, err)
	assert.Nil(t, reopened.CompletedAt)
}

func TestService_DuplicateResetsToPending(t *testing.T) {
	service, _, ctx := setupTodoTest(t)
	created, err := service.Create(ctx, newTodo("Original"))
	require.NoError(t, err)
	created.Status = StatusCompleted
	_, err = service.Update(ctx, *created)
	require.NoError(t, err)

	copied, err := service.Duplicate(ctx, created.Id)

	require.NoError(t, err)
	assert.Equal(t, "Original (copy)", copied.Title)
	assert.Equal(t, StatusPending, copied.Status)
	assert.Nil(t, copied.CompletedAt)
	assert.NotEqual(t, created.Id, copied.Id)

	todos, err := service.List(ctx, Filter{}, SortOption{})
	require.NoError(t, err)
	assert.Len(t, todos, 2)
}

func TestService_DuplicateUnknownIdReturnsNil(t *testing.T) {
	service, _, ctx := setupTodoTest(t)

	copied, err := service.Duplicate(ctx, "missing")

	require.NoError(t, err)
	assert.Nil(t, copied)
}

func TestService_CreateFromTemplate(t *testing.T) {
	service, _, ctx := setupTodoTest(t)
	template, err := service.CreateTemplate(ctx, Template{
		Name:          "Weekly review",
		Description:   "Review the week",
		Category:      CategoryWork,
		Priority:      PriorityHigh,
		EstimatedTime: 30,
		Tags:          []string{"routine"},
		Subtasks:      []string{"Inbox zero", "Plan next week"},
	})
	require.NoError(t, err)

	created, err := service.CreateFromTemplate(ctx, template.Id)

	require.NoError(t, err)
	assert.Equal(t, "Weekly review", created.Title)
	assert.Equal(t, PriorityHigh, created.Priority)
	assert.Equal(t, StatusPending, created.Status)
	require.Len(t, created.Subtasks, 2)
	assert.Equal(t, "Inbox zero", created.Subtasks[0].Title)

	templates, err := service.ListTemplates(ctx)
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, 1, templates[0].UsageCount)
}

func TestService_DeleteIsIdempotent(t *testing.T) {
	service, _, ctx := setupTodoTest(t)
	created, err := service.Create(ctx, newTodo("Temp"))
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, created.Id))
	require.NoError(t, service.Delete(ctx, created.Id))
}

func TestService_ListFiltersAndSorts(t *testing.T) {
	service, clock, ctx := setupTodoTest(t)
	for _, spec := range []struct {
		title    string
		priority Priority
	}{
		{"b task", PriorityLow},
		{"a task", PriorityUrgent},
		{"c chore", PriorityMedium},
	} {
		todo := newTodo(spec.title)
		todo.Priority = spec.priority
		todo.Tags = []string{"work"}
		_, err := service.Create(ctx, todo)
		require.NoError(t, err)
		clock.SetNow(clock.Now().Add(time.Minute))
	}

	// filter by free text, sort by title ascending
	todos, err := service.List(ctx, Filter{Query: "task"}, SortOption{Field: SortByTitle, Direction: "asc"})
	require.NoError(t, err)
	require.Len(t, todos, 2)
	assert.Equal(t, "a task", todos[0].Title)
	assert.Equal(t, "b task", todos[1].Title)

	// sort by priority descending puts urgent first
	todos, err = service.List(ctx, Filter{}, SortOption{Field: SortByPriority, Direction: "desc"})
	require.NoError(t, err)
	assert.Equal(t, PriorityUrgent, todos[0].Priority)
}

func TestSort_IsStable(t *testing.T) {
	todos := []Todo{
		{Id: "1", Title: "alpha", Priority: PriorityMedium},
		{Id: "2", Title: "beta", Priority: PriorityMedium},
		{Id: "3", Title: "gamma", Priority: PriorityMedium},
	}

	Sort(todos, SortOption{Field: SortByPriority, Direction: "asc"})

	// equal keys keep their original relative order
	assert.Equal(t, "1", todos[0].Id)
	assert.Equal(t, "2", todos[1].Id)
	assert.Equal(t, "3", todos[2].Id)
}

func TestFilter_OverdueAndDueRange(t *testing.T) {
	service, _, ctx := setupTodoTest(t)
	past := fixedNow.AddDate(0, 0, -2)
	future := fixedNow.AddDate(0, 0, 2)

	overdue := newTodo("Overdue")
	overdue.DueDate = &past
	_, err := service.Create(ctx, overdue)
	require.NoError(t, err)

	upcoming := newTodo("Upcoming")
	upcoming.DueDate = &future
	_, err = service.Create(ctx, upcoming)
	require.NoError(t, err)

	undated := newTodo("Undated")
	_, err = service.Create(ctx, undated)
	require.NoError(t, err)

	isOverdue := true
	todos, err := service.List(ctx, Filter{IsOverdue: &isOverdue}, SortOption{})
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "Overdue", todos[0].Title)

	// a due-date range excludes todos without a due date
	from := fixedNow.AddDate(0, 0, -7)
	to := fixedNow.AddDate(0, 0, 7)
	todos, err = service.List(ctx, Filter{DueFrom: &from, DueTo: &to}, SortOption{})
	require.NoError(t, err)
	assert.Len(t, todos, 2)
}

func TestComputeStats(t *testing.T) {
	completedAt := fixedNow.Add(-1 * time.Hour)
	lastMonth := fixedNow.AddDate(0, -1, 0)
	pastDue := fixedNow.AddDate(0, 0, -1)

	todos := []Todo{
		{Status: StatusPending},
		{Status: StatusPending, DueDate: &pastDue},
		{Status: StatusInProgress},
		{Status: StatusCompleted, CompletedAt: &completedAt, ActualTime: 30},
		{Status: StatusCompleted, CompletedAt: &completedAt, ActualTime: 90},
		{Status: StatusCompleted, CompletedAt: &lastMonth},
		{Status: StatusCancelled, DueDate: &pastDue},
	}

	stats := ComputeStats(todos, fixedNow)

	assert.Equal(t, 7, stats.Total)
	assert.Equal(t, 2, stats.Pending)
	assert.Equal(t, 1, stats.InProgress)
	assert.Equal(t, 3, stats.Completed)
	assert.Equal(t, 1, stats.Cancelled)
	// cancelled todos are never overdue
	assert.Equal(t, 1, stats.Overdue)
	assert.Equal(t, 2, stats.CompletedToday)
	assert.Equal(t, 2, stats.CompletedThisWeek)
	assert.Equal(t, 2, stats.CompletedThisMonth)
	// only completed todos with a recorded actual time count
	assert.InDelta(t, 60.0, stats.AverageCompletionTime, 0.001)
}

func TestService_CreatePersistFailureStillApplies(t *testing.T) {
	store := storage.NewMemoryStore()
	clock := &utils.MockClock{FixedNow: fixedNow}
	service := NewService(NewBlobRepository(store), event_bus.NewEventBus(), clock)
	ctx := context.Background()
	store.FailWrites = true

	created, err := service.Create(ctx, newTodo("Offline"))

	require.ErrorIs(t, err, storage.ErrPersist)
	require.NotNil(t, created)

	found, err := service.Get(ctx, created.Id)
	require.NoError(t, err)
	assert.Equal(t, "Offline", found.Title)
}
