// Package storage provides the key-value blob store the domain repositories
// persist into. Every domain collection is one key holding a JSON array.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Collection keys, one per domain collection.
const (
	KeyEvents        = "events"
	KeyTodos         = "todos"
	KeyTodoTemplates = "todo_templates"
	KeyTransactions  = "transactions"
	KeyAccounts      = "accounts"
	KeyCategories    = "categories"
	KeyBudgets       = "budgets"
	KeyGoals         = "goals"
	KeyNotes         = "notes"
	KeyGoogleToken   = "google_token"
)

// ErrPersist marks a blob write that failed after the in-memory state was
// already updated. The in-memory copy stays authoritative; callers decide
// whether to surface the error or only log it.
var ErrPersist = errors.New("persistence write failed")

// BlobStore is the persistence boundary. Get reports found=false for a
// missing key instead of an error.
type BlobStore interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// LoadCollection reads the JSON array stored under key. A missing key yields
// an empty slice.
func LoadCollection[T any](ctx context.Context, store BlobStore, key string) ([]T, error) {
	raw, found, err := store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read collection %q: %w", key, err)
	}
	if !found {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to decode collection %q: %w", key, err)
	}
	return items, nil
}

// SaveCollection writes items as a JSON array under key. Write failures are
// wrapped with ErrPersist.
func SaveCollection[T any](ctx context.Context, store BlobStore, key string, items []T) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode collection %q: %w", key, err)
	}
	if err := store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("%w: collection %q: %v", ErrPersist, key, err)
	}
	return nil
}
