package calendar

import (
	"context"
	"sync"

	"github.com/chuwg/taskflow/internal/storage"
)

type Repository interface {
	List(ctx context.Context) ([]Event, error)
	// Find returns nil when no event carries the id.
	Find(ctx context.Context, id EventID) (*Event, error)
	Store(ctx context.Context, event Event) error
	Update(ctx context.Context, event Event) (bool, error)
	Delete(ctx context.Context, id EventID) (bool, error)
}

// BlobRepository keeps the authoritative event list in memory and writes it
// through to the blob store after every mutation. A failed write is returned
// wrapped with storage.ErrPersist; the in-memory change stays applied.
type BlobRepository struct {
	store storage.BlobStore

	mu     sync.RWMutex
	events []Event
	loaded bool
}

func NewBlobRepository(store storage.BlobStore) *BlobRepository {
	return &BlobRepository{store: store}
}

func (r *BlobRepository) ensureLoaded(ctx context.Context) error {
	if r.loaded {
		return nil
	}
	events, err := storage.LoadCollection[Event](ctx, r.store, storage.KeyEvents)
	if err != nil {
		return err
	}
	r.events = events
	r.loaded = true
	return nil
}

func (r *BlobRepository) persist(ctx context.Context) error {
	return storage.SaveCollection(ctx, r.store, storage.KeyEvents, r.events)
}

func (r *BlobRepository) List(ctx context.Context) ([]Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out, nil
}

func (r *BlobRepository) Find(ctx context.Context, id EventID) (*Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	for _, e := range r.events {
		if e.ID == id {
			found := e
			return &found, nil
		}
	}
	return nil, nil
}

func (r *BlobRepository) Store(ctx context.Context, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensureLoaded(ctx); err != nil {
		return err
	}
	r.events = append(r.events, event)
	return r.persist(ctx)
}

func (r *BlobRepository) Update(ctx context.Context, event Event) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensureLoaded(ctx); err != nil {
		return false, err
	}
	for i, e := range r.events {
		if e.ID == event.ID {
			r.events[i] = event
			return true, r.persist(ctx)
		}
	}
	return false, nil
}

func (r *BlobRepository) Delete(ctx context.Context, id EventID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensureLoaded(ctx); err != nil {
		return false, err
	}
	for i, e := range r.events {
		if e.ID == id {
			r.events = append(r.events[:i], r.events[i+1:]...)
			return true, r.persist(ctx)
		}
	}
	return false, nil
}
