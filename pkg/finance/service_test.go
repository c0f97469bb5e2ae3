package finance

import (
	"context"
	"testing"
	"time"

	"github.com/chuwg/taskflow/internal/event_bus"
	"github.com/chuwg/taskflow/internal/storage"
	"github.com/chuwg/taskflow/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupFinanceTest(t *testing.T) (*ServiceImpl, *storage.MemoryStore, context.Context) {
	t.Helper()
	store := storage.NewMemoryStore()
	clock := &utils.MockClock{FixedNow: time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)}
	return NewService(NewBlobRepository(store), event_bus.NewEventBus(), clock), store, context.Background()
}

func TestService_CreateTransactionDefaultsToCompleted(t *testing.T) {
	service, _, ctx := setupFinanceTest(t)

	created, err := service.CreateTransaction(ctx, Transaction{
		Type:        TypeExpense,
		Amount:      42.5,
		Currency:    "USD",
		Description: "Lunch",
		Date:        time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.NotEmpty(t, created.Id)
	assert.Equal(t, StatusCompleted, created.Status)
}

func TestService_CreateTransactionRejectsNonPositiveAmount(t *testing.T) {
	service, _, ctx := setupFinanceTest(t)

	tests := []float64{0, -10}
	for _, amount := range tests {
		_, err := service.CreateTransaction(ctx, Transaction{
			Type:   TypeExpense,
			Amount: amount,
			Date:   time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
		})
		assert.ErrorIs(t, err, ErrInvalidRecord)
	}
}

func TestService_UpdateTransactionUnknownIdReturnsNil(t *testing.T) {
	service, _, ctx := setupFinanceTest(t)

	updated, err := service.UpdateTransaction(ctx, Transaction{
		Id:     "missing",
		Type:   TypeExpense,
		Amount: 10,
		Date:   time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
		Status: StatusCompleted,
	})

	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestService_DeleteTransactionIsIdempotent(t *testing.T) {
	service, _, ctx := setupFinanceTest(t)
	created, err := service.CreateTransaction(ctx, Transaction{
		Type:   TypeIncome,
		Amount: 100,
		Date:   time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.NoError(t, service.DeleteTransaction(ctx, created.Id))
	require.NoError(t, service.DeleteTransaction(ctx, created.Id))
}

func TestService_CreateTransactionPersistFailureStillApplies(t *testing.T) {
	service, store, ctx := setupFinanceTest(t)
	store.FailWrites = true

	created, err := service.CreateTransaction(ctx, Transaction{
		Type:   TypeExpense,
		Amount: 10,
		Date:   time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
	})

	require.ErrorIs(t, err, storage.ErrPersist)
	require.NotNil(t, created)

	found, err := service.GetTransaction(ctx, created.Id)
	require.NoError(t, err)
	require.NotNil(t, found)
}

func TestService_GenerateReportReadsAllCollections(t *testing.T) {
	service, _, ctx := setupFinanceTest(t)
	category, err := service.CreateCategory(ctx, Category{Name: "Food", Type: TypeExpense})
	require.NoError(t, err)
	_, err = service.CreateBudget(ctx, Budget{
		Name:       "March food",
		CategoryId: category.Id,
		Amount:     500,
		Period:     BudgetMonthly,
		StartDate:  time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
		IsActive:   true,
	})
	require.NoError(t, err)
	_, err = service.CreateTransaction(ctx, Transaction{
		Type:        TypeExpense,
		Amount:      450,
		Category:    category.Id,
		Description: "Groceries",
		Date:        time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	report, err := service.GenerateReport(ctx,
		time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.March, 31, 23, 59, 59, 0, time.UTC),
	)

	require.NoError(t, err)
	assert.Equal(t, 450.0, report.TotalExpense)
	require.Len(t, report.CategoryBreakdown, 1)
	assert.Equal(t, "Food", report.CategoryBreakdown[0].CategoryName)
	require.Len(t, report.BudgetStatus, 1)
	assert.Equal(t, BudgetAtLimit, report.BudgetStatus[0].Status)
}
