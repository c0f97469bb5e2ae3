package note

import (
	"context"
	"errors"
	"fmt"

	"github.com/chuwg/taskflow/internal/event_bus"
	"github.com/chuwg/taskflow/internal/storage"
	"github.com/chuwg/taskflow/internal/utils"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	Create(ctx context.Context, note Note) (*Note, error)
	Update(ctx context.Context, note Note) (*Note, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*Note, error)
	List(ctx context.Context) ([]Note, error)
}

type ServiceImpl struct {
	repo  Repository
	bus   *event_bus.EventBus
	clock utils.Clock
}

func NewService(repo Repository, bus *event_bus.EventBus, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, bus: bus, clock: clock}
}

func (s *ServiceImpl) Create(ctx context.Context, note Note) (*Note, error) {
	now := s.clock.Now()
	note.Id = uuid.NewString()
	note.CreatedAt = now
	note.UpdatedAt = now
	if err := note.Validate(); err != nil {
		return nil, err
	}
	err := s.repo.Store(ctx, note)
	if err != nil && !errors.Is(err, storage.ErrPersist) {
		return nil, fmt.Errorf("failed to store note: %w", err)
	}
	s.publishSaved(ctx, note)
	return &note, err
}

func (s *ServiceImpl) Update(ctx context.Context, note Note) (*Note, error) {
	existing, findErr := s.repo.Find(ctx, note.Id)
	if findErr != nil {
		return nil, fmt.Errorf("failed to find note %s: %w", note.Id, findErr)
	}
	if existing == nil {
		return nil, nil
	}
	note.CreatedAt = existing.CreatedAt
	note.UpdatedAt = s.clock.Now()
	if err := note.Validate(); err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, note)
	if err != nil && !errors.Is(err, storage.ErrPersist) {
		return nil, fmt.Errorf("failed to update note %s: %w", note.Id, err)
	}
	if !updated {
		return nil, nil
	}
	s.publishSaved(ctx, note)
	return &note, err
}

func (s *ServiceImpl) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil && !errors.Is(err, storage.ErrPersist) {
		return fmt.Errorf("failed to delete note %s: %w", id, err)
	}
	if !deleted {
		log.Debugf("note %s already absent, delete is a no-op", id)
		return nil
	}
	s.publish(ctx, event_bus.NoteDeletedEvent, event_bus.NoteDeleted{Id: id})
	return err
}

func (s *ServiceImpl) Get(ctx context.Context, id string) (*Note, error) {
	return s.repo.Find(ctx, id)
}

func (s *ServiceImpl) List(ctx context.Context) ([]Note, error) {
	return s.repo.List(ctx)
}

func (s *ServiceImpl) publishSaved(ctx context.Context, note Note) {
	s.publish(ctx, event_bus.NoteSavedEvent, event_bus.NoteSaved{
		Id:        note.Id,
		Title:     note.Title,
		Content:   note.Content,
		Tags:      note.Tags,
		CreatedAt: note.CreatedAt,
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
