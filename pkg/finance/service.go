package finance

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
	CreateTransaction(ctx context.Context, t Transaction) (*Transaction, error)
	UpdateTransaction(ctx context.Context, t Transaction) (*Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
	GetTransaction(ctx context.Context, id string) (*Transaction, error)
	ListTransactions(ctx context.Context, filter Filter, sort SortOption) ([]Transaction, error)

	CreateAccount(ctx context.Context, a Account) (*Account, error)
	UpdateAccount(ctx context.Context, a Account) (*Account, error)
	DeleteAccount(ctx context.Context, id string) error
	ListAccounts(ctx context.Context) ([]Account, error)

	CreateCategory(ctx context.Context, c Category) (*Category, error)
	UpdateCategory(ctx context.Context, c Category) (*Category, error)
	DeleteCategory(ctx context.Context, id string) error
	ListCategories(ctx context.Context) ([]Category, error)

	CreateBudget(ctx context.Context, b Budget) (*Budget, error)
	UpdateBudget(ctx context.Context, b Budget) (*Budget, error)
	DeleteBudget(ctx context.Context, id string) error
	ListBudgets(ctx context.Context) ([]Budget, error)

	CreateGoal(ctx context.Context, g Goal) (*Goal, error)
	UpdateGoal(ctx context.Context, g Goal) (*Goal, error)
	DeleteGoal(ctx context.Context, id string) error
	ListGoals(ctx context.Context) ([]Goal, error)

	GenerateReport(ctx context.Context, from, to time.Time) (Report, error)
	GetStats(ctx context.Context) (Stats, error)
}

type ServiceImpl struct {
	repo  Repository
	bus   *event_bus.EventBus
	clock utils.Clock
}

func NewService(repo Repository, bus *event_bus.EventBus, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, bus: bus, clock: clock}
}

func (s *ServiceImpl) CreateTransaction(ctx context.Context, t Transaction) (*Transaction, error) {
	now := s.clock.Now()
	t.Id = uuid.NewString()
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.Status == "" {
		t.Status = StatusCompleted
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	err := s.repo.StoreTransaction(ctx, t)
	if err != nil && !errors.Is(err, storage.ErrPersist) {
		return nil, fmt.Errorf("failed to store transaction: %w", err)
	}
	s.publishTransactionSaved(ctx, t)
	return &t, err
}

func (s *ServiceImpl) UpdateTransaction(ctx context.Context, t Transaction) (*Transaction, error) {
	existing, findErr := s.repo.FindTransaction(ctx, t.Id)
	if findErr != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", t.Id, findErr)
	}
	if existing == nil {
		return nil, nil
	}
	t.CreatedAt = existing.CreatedAt
	t.UpdatedAt = s.clock.Now()
	if err := t.Validate(); err != nil {
		return nil, err
	}
	updated, err := s.repo.UpdateTransaction(ctx, t)
	if err != nil && !errors.Is(err, storage.ErrPersist) {
		return nil, fmt.Errorf("failed to update transaction %s: %w", t.Id, err)
	}
	if !updated {
		return nil, nil
	}
	s.publishTransactionSaved(ctx, t)
	return &t, err
}

func (s *ServiceImpl) DeleteTransaction(ctx context.Context, id string) error {
	deleted, err := s.repo.DeleteTransaction(ctx, id)
	if err != nil && !errors.Is(err, storage.ErrPersist) {
		return fmt.Errorf("failed to delete transaction %s: %w", id, err)
	}
	if !deleted {
		log.Debugf("transaction %s already absent, delete is a no-op", id)
		return nil
	}
	s.publish(ctx, event_bus.TransactionDeletedEvent, event_bus.TransactionDeleted{Id: id})
	return err
}

func (s *ServiceImpl) GetTransaction(ctx context.Context, id string) (*Transaction, error) {
	return s.repo.FindTransaction(ctx, id)
}

func (s *ServiceImpl) ListTransactions(ctx context.Context, filter Filter, sort SortOption) ([]Transaction, error) {
	transactions, err := s.repo.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}
	matched := filter.Apply(transactions)
	Sort(matched, sort)
	return matched, nil
}

func (s *ServiceImpl) CreateAccount(ctx context.Context, a Account) (*Account, error) {
	now := s.clock.Now()
	a.Id = uuid.NewString()
	a.CreatedAt = now
	a.UpdatedAt = now
	if err := a.Validate(); err != nil {
		return nil, err
	}
	err := s.repo.StoreAccount(ctx, a)
	if err != nil && !errors.Is(err, storage.ErrPersist) {
		return nil, fmt.Errorf("failed to store account: %w", err)
	}
	return &a, err
}

func (s *ServiceImpl) UpdateAccount(ctx context.Context, a Account) (*Account, error) {
	existing, findErr := s.repo.FindAccount(ctx, a.Id)
	if findErr != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", a.Id, findErr)
	}
	if existing == nil {
		return nil, nil
	}
	a.CreatedAt = existing.CreatedAt
	a.UpdatedAt = s.clock.Now()
	if err := a.Validate(); err != nil {
		return nil, err
	}
	updated, err := s.repo.UpdateAccount(ctx, a)
	if err != nil && !errors.Is(err, storage.ErrPersist) {
		return nil, fmt.Errorf("failed to update account %s: %w", a.Id, err)
	}
	if !updated {
		return nil, nil
	}
	return &a, err
}

func (s *ServiceImpl) DeleteAccount(ctx context.Context, id string) error {
	deleted, err := s.repo.DeleteAccount(ctx, id)
	if err != nil && !errors.Is(err, storage.ErrPersist) {
		return fmt.Errorf("failed to delete account %s: %w", id, err)
	}
	if !deleted {
		return nil
	}
	return err
}

func (s *ServiceImpl) ListAccounts(ctx context.Context) ([]Account, error) {
	return s.repo.ListAccounts(ctx)
}

func (s *ServiceImpl) CreateCategory(ctx context.Context, c Category) (*Category, error) {
	now := s.clock.Now()
	c.Id = uuid.NewString()
	c.CreatedAt = now
	c.UpdatedAt = now
	if err := c.Validate(); err != nil {
		return nil, err
	}
	err := s.repo.StoreCategory(ctx, c)
	if err != nil && !errors.Is(err, storage.ErrPersist) {
		return nil, fmt.Errorf("failed to store category: %w", err)
	}
	return &c, err
}

func (s *ServiceImpl) UpdateCategory(ctx context.Context, c Category) (*Category, error) {
	existing, findErr := s.repo.FindCategory(ctx, c.Id)
	if findErr != nil {
		return nil, fmt.Errorf("failed to find category %s: %w", c.Id, findErr)
	}
	if existing == nil {
		return nil, nil
	}
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = s.clock.Now()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	updated, err := s.repo.UpdateCategory(ctx, c)
	if err != nil && !errors.Is(err, storage.ErrPersist) {
		return nil, fmt.Errorf("failed to update category %s: %w", c.Id, err)
	}
	if !updated {
		return nil, nil
	}
	return &c, err
}

func (s *ServiceImpl) DeleteCategory(ctx context.Context, id string) error {
	deleted, err := s.repo.DeleteCategory(ctx, id)
	if err != nil && !errors.Is(err, storage.ErrPersist) {
		return fmt.Errorf("failed to delete category %s: %w", id, err)
	}
	if !deleted {
		return nil
	}
	return err
}

func (s *ServiceImpl) ListCategories(ctx context.Context) ([]Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *ServiceImpl) CreateBudget(ctx context.Context, b Budget) (*Budget, error) {
	now := s.clock.Now()
	b.Id = uuid.NewString()
	b.CreatedAt = now
	b.UpdatedAt = now
	if err := b.Validate(); err != nil {
		return nil, err
	}
	err := s.repo.StoreBudget(ctx, b)
	if err != nil && !errors.Is(err, storage.ErrPersist) {
		return nil, fmt.Errorf("failed to store budget: %w", err)
	}
	return &b, err
}

func (s *ServiceImpl) UpdateBudget(ctx context.Context, b Budget) (*Budget, error) {
	existing, findErr := s.repo.FindBudget(ctx, b.Id)
	if findErr != nil {
		return nil, fmt.Errorf("failed to find budget %s: %w", b.Id, findErr)
	}
	if existing == nil {
		return nil, nil
	}
	b.CreatedAt = existing.CreatedAt
	b.UpdatedAt = s.clock.Now()
	if err := b.Validate(); err != nil {
		return nil, err
	}
	updated, err := s.repo.UpdateBudget(ctx, b)
	if err != nil && !errors.Is(err, storage.ErrPersist) {
		return nil, fmt.Errorf("failed to update budget %s: %w", b.Id, err)
	}
	if !updated {
		return nil, nil
	}
	return &b, err
}

func (s *ServiceImpl) DeleteBudget(ctx context.Context, id string) error {
	deleted, err := s.repo.DeleteBudget(ctx, id)
	if err != nil && !errors.Is(err, storage.ErrPersist) {
		return fmt.Errorf("failed to delete budget %s: %w", id, err)
	}
	if !deleted {
		return nil
	}
	return err
}

func (s *ServiceImpl) ListBudgets(ctx context.Context) ([]Budget, error) {
	return s.repo.ListBudgets(ctx)
}

func (s *ServiceImpl) CreateGoal(ctx context.Context, g Goal) (*Goal, error) {
	now := s.clock.Now()
	g.Id = uuid.NewString()
	g.CreatedAt = now
	g.UpdatedAt = now
	if err := g.Validate(); err != nil {
		return nil, err
	}
	err := s.repo.StoreGoal(ctx, g)
	if err != nil && !errors.Is(err, storage.ErrPersist) {
		return nil, fmt.Errorf("failed to store goal: %w", err)
	}
	return &g, err
}

func (s *ServiceImpl) UpdateGoal(ctx context.Context, g Goal) (*Goal, error) {
	existing, findErr := s.repo.FindGoal(ctx, g.Id)
	if findErr != nil {
		return nil, fmt.Errorf("failed to find goal %s: %w", g.Id, findErr)
	}
	if existing == nil {
		return nil, nil
	}
	g.CreatedAt = existing.CreatedAt
	g.UpdatedAt = s.clock.Now()
	if g.IsCompleted && g.CompletedAt == nil {
		now := s.clock.Now()
		g.CompletedAt = &now
	}
	if !g.IsCompleted {
		g.CompletedAt = nil
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	updated, err := s.repo.UpdateGoal(ctx, g)
	if err != nil && !errors.Is(err, storage.ErrPersist) {
		return nil, fmt.Errorf("failed to update goal %s: %w", g.Id, err)
	}
	if !updated {
		return nil, nil
	}
	return &g, err
}

func (s *ServiceImpl) DeleteGoal(ctx context.Context, id string) error {
	deleted, err := s.repo.DeleteGoal(ctx, id)
	if err != nil && !errors.Is(err, storage.ErrPersist) {
		return fmt.Errorf("failed to delete goal %s: %w", id, err)
	}
	if !deleted {
		return nil
	}
	return err
}

func (s *ServiceImpl) ListGoals(ctx context.Context) ([]Goal, error) {
	return s.repo.ListGoals(ctx)
}

func (s *ServiceImpl) GenerateReport(ctx context.Context, from, to time.Time) (Report, error) {
	transactions, err := s.repo.ListTransactions(ctx)
	if err != nil {
		return Report{}, err
	}
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return Report{}, err
	}
	budgets, err := s.repo.ListBudgets(ctx)
	if err != nil {
		return Report{}, err
	}
	return BuildReport(from, to, transactions, categories, budgets), nil
}

func (s *ServiceImpl) GetStats(ctx context.Context) (Stats, error) {
	transactions, err := s.repo.ListTransactions(ctx)
	if err != nil {
		return Stats{}, err
	}
	accounts, err := s.repo.ListAccounts(ctx)
	if err != nil {
		return Stats{}, err
	}
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return Stats{}, err
	}
	budgets, err := s.repo.ListBudgets(ctx)
	if err != nil {
		return Stats{}, err
	}
	goals, err := s.repo.ListGoals(ctx)
	if err != nil {
		return Stats{}, err
	}
	return BuildStats(s.clock.Now(), transactions, accounts, categories, budgets, goals), nil
}

func (s *ServiceImpl) publishTransactionSaved(ctx context.Context, t Transaction) {
	s.publish(ctx, event_bus.TransactionSavedEvent, event_bus.TransactionSaved{
		Id:          t.Id,
		Type:        string(t.Type),
		Amount:      t.Amount,
		Currency:    t.Currency,
		Description: t.Description,
		Date:        t.Date,
		Tags:        t.Tags,
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
