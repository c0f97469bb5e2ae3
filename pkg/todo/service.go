package todo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chuwg/taskflow/internal/event_bus"
	"github.com/chuwg/taskflow/internal/storage"
	"github.com/chuwg/taskflow/internal/utils"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	Create(ctx context.Context, todo Todo) (*Todo, error)
	Update(ctx context.Context, todo Todo) (*Todo, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*Todo, error)
	List(ctx context.Context, filter Filter, sort SortOption) ([]Todo, error)
	ToggleStatus(ctx context.Context, id string) (*Todo, error)
	Duplicate(ctx context.Context, id string) (*Todo, error)
	GetStats(ctx context.Context) (Stats, error)

	CreateTemplate(ctx context.Context, template Template) (*Template, error)
	UpdateTemplate(ctx context.Context, template Template) (*Template, error)
	DeleteTemplate(ctx context.Context, id string) error
	ListTemplates(ctx context.Context) ([]Template, error)
	CreateFromTemplate(ctx context.Context, templateId string) (*Todo, error)
}

type ServiceImpl struct {
	repo  Repository
	bus   *event_bus.EventBus
	clock utils.Clock
}

func NewService(repo Repository, bus *event_bus.EventBus, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, bus: bus, clock: clock}
}

func (s *ServiceImpl) Create(ctx context.Context, todo Todo) (*Todo, error) {
	now := s.clock.Now()
	todo.Id = uuid.NewString()
	todo.CreatedAt = now
	todo.UpdatedAt = now
	if todo.Status == "" {
		todo.Status = StatusPending
	}
	s.normalizeCompletion(&todo)
	for i := range todo.Subtasks {
		if todo.Subtasks[i].Id == "" {
			todo.Subtasks[i].Id = uuid.NewString()
			todo.Subtasks[i].CreatedAt = now
		}
		if todo.Subtasks[i].Status == "" {
			todo.Subtasks[i].Status = StatusPending
		}
	}

	if err := todo.Validate(); err != nil {
		return nil, err
	}
	err := s.repo.Store(ctx, todo)
	if err != nil && !errors.Is(err, storage.ErrPersist) {
		return nil, fmt.Errorf("failed to store todo: %w", err)
	}
	s.publishSaved(ctx, todo)
	return &todo, err
}

func (s *ServiceImpl) Update(ctx context.Context, todo Todo) (*Todo, error) {
	existing, findErr := s.repo.Find(ctx, todo.Id)
	if findErr != nil {
		return nil, fmt.Errorf("failed to find todo %s: %w", todo.Id, findErr)
	}
	if existing == nil {
		return nil, nil
	}

	todo.CreatedAt = existing.CreatedAt
	todo.UpdatedAt = s.clock.Now()
	s.normalizeCompletion(&todo)
	if err := todo.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, todo)
	if err != nil && !errors.Is(err, storage.ErrPersist) {
		return nil, fmt.Errorf("failed to update todo %s: %w", todo.Id, err)
	}
	if !updated {
		return nil, nil
	}
	s.publishSaved(ctx, todo)
	return &todo, err
}

func (s *ServiceImpl) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil && !errors.Is(err, storage.ErrPersist) {
		return fmt.Errorf("failed to delete todo %s: %w", id, err)
	}
	if !deleted {
		log.Debugf("todo %s already absent, delete is a no-op", id)
		return nil
	}
	s.publish(ctx, event_bus.TodoDeletedEvent, event_bus.TodoDeleted{Id: id})
	return err
}

func (s *ServiceImpl) Get(ctx context.Context, id string) (*Todo, error) {
	return s.repo.Find(ctx, id)
}

func (s *ServiceImpl) List(ctx context.Context, filter Filter, sort SortOption) ([]Todo, error) {
	todos, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	matched := filter.Apply(todos, s.clock.Now())
	Sort(matched, sort)
	return matched, nil
}

// ToggleStatus advances the todo through its status cycle and maintains the
// completion timestamp.
func (s *ServiceImpl) ToggleStatus(ctx context.Context, id string) (*Todo, error) {
	existing, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find todo %s: %w", id, err)
	}
	if existing == nil {
		return nil, nil
	}

	todo := *existing
	todo.Status = NextStatus(todo.Status)
	todo.UpdatedAt = s.clock.Now()
	s.normalizeCompletion(&todo)

	updated, persistErr := s.repo.Update(ctx, todo)
	if persistErr != nil && !errors.Is(persistErr, storage.ErrPersist) {
		return nil, fmt.Errorf("failed to update todo %s: %w", id, persistErr)
	}
	if !updated {
		return nil, nil
	}
	s.publishSaved(ctx, todo)
	return &todo, persistErr
}

// Duplicate copies the todo as a fresh pending entry.
func (s *ServiceImpl) Duplicate(ctx context.Context, id string) (*Todo, error) {
	existing, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find todo %s: %w", id, err)
	}
	if existing == nil {
		return nil, nil
	}

	copied := *existing
	copied.Title = copied.Title + " (copy)"
	copied.Status = StatusPending
	copied.CompletedAt = nil
	return s.Create(ctx, copied)
}

func (s *ServiceImpl) GetStats(ctx context.Context) (Stats, error) {
	todos, err := s.repo.List(ctx)
	if err != nil {
		return Stats{}, err
	}
	return ComputeStats(todos, s.clock.Now()), nil
}

func (s *ServiceImpl) CreateTemplate(ctx context.Context, template Template) (*Template, error) {
	now := s.clock.Now()
	template.Id = uuid.NewString()
	template.CreatedAt = now
	template.UpdatedAt = now
	template.UsageCount = 0
	if err := template.Validate(); err != nil {
		return nil, err
	}
	err := s.repo.StoreTemplate(ctx, template)
	if err != nil && !errors.Is(err, storage.ErrPersist) {
		return nil, fmt.Errorf("failed to store template: %w", err)
	}
	return &template, err
}

func (s *ServiceImpl) UpdateTemplate(ctx context.Context, template Template) (*Template, error) {
	existing, findErr := s.repo.FindTemplate(ctx, template.Id)
	if findErr != nil {
		return nil, fmt.Errorf("failed to find template %s: %w", template.Id, findErr)
	}
	if existing == nil {
		return nil, nil
	}
	template.CreatedAt = existing.CreatedAt
	template.UsageCount = existing.UsageCount
	template.UpdatedAt = s.clock.Now()
	if err := template.Validate(); err != nil {
		return nil, err
	}
	updated, err := s.repo.UpdateTemplate(ctx, template)
	if err != nil && !errors.Is(err, storage.ErrPersist) {
		return nil, fmt.Errorf("failed to update template %s: %w", template.Id, err)
	}
	if !updated {
		return nil, nil
	}
	return &template, err
}

func (s *ServiceImpl) DeleteTemplate(ctx context.Context, id string) error {
	deleted, err := s.repo.DeleteTemplate(ctx, id)
	if err != nil && !errors.Is(err, storage.ErrPersist) {
		return fmt.Errorf("failed to delete template %s: %w", id, err)
	}
	if !deleted {
		log.Debugf("template %s already absent, delete is a no-op", id)
		return nil
	}
	return err
}

func (s *ServiceImpl) ListTemplates(ctx context.Context) ([]Template, error) {
	return s.repo.ListTemplates(ctx)
}

// CreateFromTemplate instantiates a pending todo from the template and bumps
// the template's usage count.
func (s *ServiceImpl) CreateFromTemplate(ctx context.Context, templateId string) (*Todo, error) {
	template, err := s.repo.FindTemplate(ctx, templateId)
	if err != nil {
		return nil, fmt.Errorf("failed to find template %s: %w", templateId, err)
	}
	if template == nil {
		return nil, nil
	}

	now := s.clock.Now()
	subtasks := make([]Subtask, 0, len(template.Subtasks))
	for _, title := range template.Subtasks {
		subtasks = append(subtasks, Subtask{
			Id:        uuid.NewString(),
			Title:     title,
			Status:    StatusPending,
			CreatedAt: now,
		})
	}

	created, err := s.Create(ctx, Todo{
		Title:         template.Name,
		Description:   template.Description,
		Status:        StatusPending,
		Priority:      template.Priority,
		Category:      template.Category,
		EstimatedTime: template.EstimatedTime,
		Tags:          append([]string(nil), template.Tags...),
		Subtasks:      subtasks,
	})
	if err != nil && !errors.Is(err, storage.ErrPersist) {
		return nil, err
	}

	template.UsageCount++
	template.UpdatedAt = now
	if _, countErr := s.repo.UpdateTemplate(ctx, *template); countErr != nil {
		log.Warnf("failed to bump usage count of template %s: %v", templateId, countErr)
	}
	return created, err
}

// normalizeCompletion keeps the completedAt invariant: set exactly when the
// status is completed.
func (s *ServiceImpl) normalizeCompletion(todo *Todo) {
	if todo.Status == StatusCompleted {
		if todo.CompletedAt == nil {
			now := s.clock.Now()
			todo.CompletedAt = &now
		}
	} else {
		todo.CompletedAt = nil
	}
}

func (s *ServiceImpl) publishSaved(ctx context.Context, todo Todo) {
	s.publish(ctx, event_bus.TodoSavedEvent, event_bus.TodoSaved{
		Id:          todo.Id,
		Title:       todo.Title,
		Description: todo.Description,
		Priority:    string(todo.Priority),
		DueDate:     todo.DueDate,
		Tags:        todo.Tags,
		Location:    todo.Location,
	})
}

func (s *ServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, data any) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(event_bus.NewEvent(ctx, eventType, data)); err != nil {
		log.Warnf("failed to publish %s: %v", eventType, err)
	}
}

// ComputeStats aggregates the slice as of now.
func ComputeStats(todos []Todo, now time.Time) Stats {
	stats := Stats{Total: len(todos)}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := today.AddDate(0, 0, -int(today.Weekday()))
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	timedCompleted := 0
	totalMinutes := 0
	for _, t := range todos {
		switch t.Status {
		case StatusPending:
			stats.Pending++
		case StatusInProgress:
			stats.InProgress++
		case StatusCompleted:
			stats.Completed++
		case StatusCancelled:
			stats.Cancelled++
		}
		if t.IsOverdue(now) {
			stats.Overdue++
		}
		if t.Status == StatusCompleted && t.CompletedAt != nil {
			if !t.CompletedAt.Before(today) {
				stats.CompletedToday++
			}
			if !t.CompletedAt.Before(weekStart) {
				stats.CompletedThisWeek++
			}
			if !t.CompletedAt.Before(monthStart) {
				stats.CompletedThisMonth++
			}
			if t.ActualTime > 0 {
				timedCompleted++
				totalMinutes += t.ActualTime
			}
		}
	}
	if timedCompleted > 0 {
		stats.AverageCompletionTime = float64(totalMinutes) / float64(timedCompleted)
	}
	return stats
}
