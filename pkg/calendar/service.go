package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chuwg/taskflow/internal/storage"
	"github.com/chuwg/taskflow/internal/utils"
	"github.com/chuwg/taskflow/pkg/datetime"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type Service struct {
	repo  Repository
	clock utils.Clock
}

func NewService(repo Repository, clock utils.Clock) *Service {
	return &Service{repo: repo, clock: clock}
}

// Add stores a new event. A native uuid is assigned when the caller did not
// set an id; the sync adapters pass derived ids.
func (s *Service) Add(ctx context.Context, event Event) (*Event, error) {
	if err := event.Validate(); err != nil {
		return nil, err
	}
	if event.ID.IsZero() {
		event.ID = NativeID(uuid.NewString())
	}
	if err := s.repo.Store(ctx, event); err != nil {
		if errors.Is(err, storage.ErrPersist) {
			// Applied in memory; the caller decides whether to surface this.
			log.Warnf("event %s not persisted: %v", event.ID, err)
			return &event, err
		}
		return nil, fmt.Errorf("failed to store event: %w", err)
	}
	return &event, nil
}

// Modify replaces the stored event with the same id. Returns false when the
// event does not exist.
func (s *Service) Modify(ctx context.Context, event Event) (bool, error) {
	if err := event.Validate(); err != nil {
		return false, err
	}
	updated, err := s.repo.Update(ctx, event)
	if err != nil {
		if updated && errors.Is(err, storage.ErrPersist) {
			log.Warnf("event %s not persisted: %v", event.ID, err)
			return true, err
		}
		return false, fmt.Errorf("failed to update event: %w", err)
	}
	return updated, nil
}

// Upsert replaces the event's fields in place when one with the same id
// exists and inserts it otherwise. The sync adapters use it so a source
// record never produces more than one shadow event.
func (s *Service) Upsert(ctx context.Context, event Event) (*Event, error) {
	if err := event.Validate(); err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, event)
	if err != nil && !errors.Is(err, storage.ErrPersist) {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	if updated {
		if err != nil {
			log.Warnf("event %s not persisted: %v", event.ID, err)
		}
		return &event, err
	}
	if err := s.repo.Store(ctx, event); err != nil {
		if errors.Is(err, storage.ErrPersist) {
			log.Warnf("event %s not persisted: %v", event.ID, err)
			return &event, err
		}
		return nil, fmt.Errorf("failed to store event: %w", err)
	}
	return &event, nil
}

// Delete removes the event with the given id. Deleting an absent event is a
// no-op, not an error.
func (s *Service) Delete(ctx context.Context, id EventID) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		if deleted && errors.Is(err, storage.ErrPersist) {
			log.Warnf("event %s removed in memory but not persisted: %v", id, err)
			return err
		}
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if !deleted {
		log.Debugf("event %s not found on delete, ignoring", id)
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id EventID) (*Event, error) {
	return s.repo.Find(ctx, id)
}

// List returns the events matching filter, in stored order.
func (s *Service) List(ctx context.Context, filter Filter) ([]Event, error) {
	events, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return filter.Apply(events), nil
}

// EventsBetween returns the events whose interval overlaps [from, to].
func (s *Service) EventsBetween(ctx context.Context, from, to time.Time) ([]Event, error) {
	return s.List(ctx, Filter{From: &from, To: &to})
}

// Month computes the 6x7 grid for the month containing ref, with filter
// applied before bucketing.
func (s *Service) Month(ctx context.Context, ref time.Time, selected *time.Time, filter Filter) (MonthInfo, error) {
	events, err := s.List(ctx, filter)
	if err != nil {
		return MonthInfo{}, err
	}
	return MonthGrid(ref, events, selected, s.clock.Now()), nil
}

// Week computes the 7-day row containing ref.
func (s *Service) Week(ctx context.Context, ref time.Time, selected *time.Time, filter Filter) (WeekInfo, error) {
	events, err := s.List(ctx, filter)
	if err != nil {
		return WeekInfo{}, err
	}
	return WeekGrid(datetime.StartOfWeek(ref), events, selected, ref, s.clock.Now()), nil
}

// Day computes the single-day cell for ref.
func (s *Service) Day(ctx context.Context, ref time.Time, filter Filter) (DayInfo, error) {
	events, err := s.List(ctx, filter)
	if err != nil {
		return DayInfo{}, err
	}
	return DayGrid(ref, events, nil, ref, s.clock.Now()), nil
}
