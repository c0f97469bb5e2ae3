package storage

import (
	"context"
	"sync"
)

// Collection keeps the authoritative copy of one stored record list in memory
// and writes it through to the blob store after every mutation. The list is
// loaded lazily on first access. A failed write is returned wrapped with
// ErrPersist; the in-memory change stays applied.
type Collection[T any] struct {
	store BlobStore
	key   string
	id    func(T) string

	mu     sync.Mutex
	items  []T
	loaded bool
}

// NewCollection creates a collection stored under key. id extracts a record's
// identifier for Find/Update/Delete.
func NewCollection[T any](store BlobStore, key string, id func(T) string) *Collection[T] {
	return &Collection[T]{store: store, key: key, id: id}
}

func (c *Collection[T]) ensureLoaded(ctx context.Context) error {
	if c.loaded {
		return nil
	}
	items, err := LoadCollection[T](ctx, c.store, c.key)
	if err != nil {
		return err
	}
	c.items = items
	c.loaded = true
	return nil
}

func (c *Collection[T]) persist(ctx context.Context) error {
	return SaveCollection(ctx, c.store, c.key, c.items)
}

// List returns a copy of all records in insertion order.
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out, nil
}

// Find returns nil when no record carries the id.
func (c *Collection[T]) Find(ctx context.Context, id string) (*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	for _, item := range c.items {
		if c.id(item) == id {
			found := item
			return &found, nil
		}
	}
	return nil, nil
}

// Store appends a record.
func (c *Collection[T]) Store(ctx context.Context, item T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ensureLoaded(ctx); err != nil {
		return err
	}
	c.items = append(c.items, item)
	return c.persist(ctx)
}

// Update replaces the record with the same id. It returns false when the id
// is unknown.
func (c *Collection[T]) Update(ctx context.Context, item T) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ensureLoaded(ctx); err != nil {
		return false, err
	}
	id := c.id(item)
	for i, existing := range c.items {
		if c.id(existing) == id {
			c.items[i] = item
			return true, c.persist(ctx)
		}
	}
	return false, nil
}

// Delete removes the record with the id. It returns false when the id is
// unknown; that case is not an error.
func (c *Collection[T]) Delete(ctx context.Context, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ensureLoaded(ctx); err != nil {
		return false, err
	}
	for i, existing := range c.items {
		if c.id(existing) == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true, c.persist(ctx)
		}
	}
	return false, nil
}
