package note

import (
	"context"

	"github.com/chuwg/taskflow/internal/storage"
)

type Repository interface {
	List(ctx context.Context) ([]Note, error)
	Find(ctx context.Context, id string) (*Note, error)
	Store(ctx context.Context, note Note) error
	Update(ctx context.Context, note Note) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type BlobRepository struct {
	notes *storage.Collection[Note]
}

func NewBlobRepository(store storage.BlobStore) *BlobRepository {
	return &BlobRepository{
		notes: storage.NewCollection(store, storage.KeyNotes, func(n Note) string { return n.Id }),
	}
}

func (r *BlobRepository) List(ctx context.Context) ([]Note, error) {
	return r.notes.List(ctx)
}

func (r *BlobRepository) Find(ctx context.Context, id string) (*Note, error) {
	return r.notes.Find(ctx, id)
}

func (r *BlobRepository) Store(ctx context.Context, note Note) error {
	return r.notes.Store(ctx, note)
}

func (r *BlobRepository) Update(ctx context.Context, note Note) (bool, error) {
	return r.notes.Update(ctx, note)
}

func (r *BlobRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.notes.Delete(ctx, id)
}
