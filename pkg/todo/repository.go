package todo

import (
	"context"

	"github.com/chuwg/taskflow/internal/storage"
)

type Repository interface {
	List(ctx context.Context) ([]Todo, error)
	Find(ctx context.Context, id string) (*Todo, error)
	Store(ctx context.Context, todo Todo) error
	Update(ctx context.Context, todo Todo) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)

	ListTemplates(ctx context.Context) ([]Template, error)
	FindTemplate(ctx context.Context, id string) (*Template, error)
	StoreTemplate(ctx context.Context, template Template) error
	UpdateTemplate(ctx context.Context, template Template) (bool, error)
	DeleteTemplate(ctx context.Context, id string) (bool, error)
}

type BlobRepository struct {
	todos     *storage.Collection[Todo]
	templates *storage.Collection[Template]
}

func NewBlobRepository(store storage.BlobStore) *BlobRepository {
	return &BlobRepository{
		todos:     storage.NewCollection(store, storage.KeyTodos, func(t Todo) string { return t.Id }),
		templates: storage.NewCollection(store, storage.KeyTodoTemplates, func(t Template) string { return t.Id }),
	}
}

func (r *BlobRepository) List(ctx context.Context) ([]Todo, error) {
	return r.todos.List(ctx)
}

func (r *BlobRepository) Find(ctx context.Context, id string) (*Todo, error) {
	return r.todos.Find(ctx, id)
}

func (r *BlobRepository) Store(ctx context.Context, todo Todo) error {
	return r.todos.Store(ctx, todo)
}

func (r *BlobRepository) Update(ctx context.Context, todo Todo) (bool, error) {
	return r.todos.Update(ctx, todo)
}

func (r *BlobRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.todos.Delete(ctx, id)
}

func (r *BlobRepository) ListTemplates(ctx context.Context) ([]Template, error) {
	return r.templates.List(ctx)
}

func (r *BlobRepository) FindTemplate(ctx context.Context, id string) (*Template, error) {
	return r.templates.Find(ctx, id)
}

func (r *BlobRepository) StoreTemplate(ctx context.Context, template Template) error {
	return r.templates.Store(ctx, template)
}

func (r *BlobRepository) UpdateTemplate(ctx context.Context, template Template) (bool, error) {
	return r.templates.Update(ctx, template)
}

func (r *BlobRepository) DeleteTemplate(ctx context.Context, id string) (bool, error) {
	return r.templates.Delete(ctx, id)
}
