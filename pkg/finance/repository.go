package finance

import (
	"context"

	"github.com/chuwg/taskflow/internal/storage"
)

type Repository interface {
	ListTransactions(ctx context.Context) ([]Transaction, error)
	FindTransaction(ctx context.Context, id string) (*Transaction, error)
	StoreTransaction(ctx context.Context, t Transaction) error
	UpdateTransaction(ctx context.Context, t Transaction) (bool, error)
	DeleteTransaction(ctx context.Context, id string) (bool, error)

	ListAccounts(ctx context.Context) ([]Account, error)
	FindAccount(ctx context.Context, id string) (*Account, error)
	StoreAccount(ctx context.Context, a Account) error
	UpdateAccount(ctx context.Context, a Account) (bool, error)
	DeleteAccount(ctx context.Context, id string) (bool, error)

	ListCategories(ctx context.Context) ([]Category, error)
	FindCategory(ctx context.Context, id string) (*Category, error)
	StoreCategory(ctx context.Context, c Category) error
	UpdateCategory(ctx context.Context, c Category) (bool, error)
	DeleteCategory(ctx context.Context, id string) (bool, error)

	ListBudgets(ctx context.Context) ([]Budget, error)
	FindBudget(ctx context.Context, id string) (*Budget, error)
	StoreBudget(ctx context.Context, b Budget) error
	UpdateBudget(ctx context.Context, b Budget) (bool, error)
	DeleteBudget(ctx context.Context, id string) (bool, error)

	ListGoals(ctx context.Context) ([]Goal, error)
	FindGoal(ctx context.Context, id string) (*Goal, error)
	StoreGoal(ctx context.Context, g Goal) error
	UpdateGoal(ctx context.Context, g Goal) (bool, error)
	DeleteGoal(ctx context.Context, id string) (bool, error)
}

// BlobRepository stores each finance collection under its own blob key.
type BlobRepository struct {
	transactions *storage.Collection[Transaction]
	accounts     *storage.Collection[Account]
	categories   *storage.Collection[Category]
	budgets      *storage.Collection[Budget]
	goals        *storage.Collection[Goal]
}

func NewBlobRepository(store storage.BlobStore) *BlobRepository {
	return &BlobRepository{
		transactions: storage.NewCollection(store, storage.KeyTransactions, func(t Transaction) string { return t.Id }),
		accounts:     storage.NewCollection(store, storage.KeyAccounts, func(a Account) string { return a.Id }),
		categories:   storage.NewCollection(store, storage.KeyCategories, func(c Category) string { return c.Id }),
		budgets:      storage.NewCollection(store, storage.KeyBudgets, func(b Budget) string { return b.Id }),
		goals:        storage.NewCollection(store, storage.KeyGoals, func(g Goal) string { return g.Id }),
	}
}

func (r *BlobRepository) ListTransactions(ctx context.Context) ([]Transaction, error) {
	return r.transactions.List(ctx)
}

func (r *BlobRepository) FindTransaction(ctx context.Context, id string) (*Transaction, error) {
	return r.transactions.Find(ctx, id)
}

func (r *BlobRepository) StoreTransaction(ctx context.Context, t Transaction) error {
	return r.transactions.Store(ctx, t)
}

func (r *BlobRepository) UpdateTransaction(ctx context.Context, t Transaction) (bool, error) {
	return r.transactions.Update(ctx, t)
}

func (r *BlobRepository) DeleteTransaction(ctx context.Context, id string) (bool, error) {
	return r.transactions.Delete(ctx, id)
}

func (r *BlobRepository) ListAccounts(ctx context.Context) ([]Account, error) {
	return r.accounts.List(ctx)
}

func (r *BlobRepository) FindAccount(ctx context.Context, id string) (*Account, error) {
	return r.accounts.Find(ctx, id)
}

func (r *BlobRepository) StoreAccount(ctx context.Context, a Account) error {
	return r.accounts.Store(ctx, a)
}

func (r *BlobRepository) UpdateAccount(ctx context.Context, a Account) (bool, error) {
	return r.accounts.Update(ctx, a)
}

func (r *BlobRepository) DeleteAccount(ctx context.Context, id string) (bool, error) {
	return r.accounts.Delete(ctx, id)
}

func (r *BlobRepository) ListCategories(ctx context.Context) ([]Category, error) {
	return r.categories.List(ctx)
}

func (r *BlobRepository) FindCategory(ctx context.Context, id string) (*Category, error) {
	return r.categories.Find(ctx, id)
}

func (r *BlobRepository) StoreCategory(ctx context.Context, c Category) error {
	return r.categories.Store(ctx, c)
}

func (r *BlobRepository) UpdateCategory(ctx context.Context, c Category) (bool, error) {
	return r.categories.Update(ctx, c)
}

func (r *BlobRepository) DeleteCategory(ctx context.Context, id string) (bool, error) {
	return r.categories.Delete(ctx, id)
}

func (r *BlobRepository) ListBudgets(ctx context.Context) ([]Budget, error) {
	return r.budgets.List(ctx)
}

func (r *BlobRepository) FindBudget(ctx context.Context, id string) (*Budget, error) {
	return r.budgets.Find(ctx, id)
}

func (r *BlobRepository) StoreBudget(ctx context.Context, b Budget) error {
	return r.budgets.Store(ctx, b)
}

func (r *BlobRepository) UpdateBudget(ctx context.Context, b Budget) (bool, error) {
	return r.budgets.Update(ctx, b)
}

func (r *BlobRepository) DeleteBudget(ctx context.Context, id string) (bool, error) {
	return r.budgets.Delete(ctx, id)
}

func (r *BlobRepository) ListGoals(ctx context.Context) ([]Goal, error) {
	return r.goals.List(ctx)
}

func (r *BlobRepository) FindGoal(ctx context.Context, id string) (*Goal, error) {
	return r.goals.Find(ctx, id)
}

func (r *BlobRepository) StoreGoal(ctx context.Context, g Goal) error {
	return r.goals.Store(ctx, g)
}

func (r *BlobRepository) UpdateGoal(ctx context.Context, g Goal) (bool, error) {
	return r.goals.Update(ctx, g)
}

func (r *BlobRepository) DeleteGoal(ctx context.Context, id string) (bool, error) {
	return r.goals.Delete(ctx, id)
}
