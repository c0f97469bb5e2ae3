package finance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTransactions() []Transaction {
	day := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	return []Transaction{
		{Id: "1", Type: TypeExpense, Amount: 2000, Date: day, Status: StatusCompleted,
			Description: "Groceries", PaymentMethod: PaymentCard, Tags: []string{"weekly"}},
		{Id: "2", Type: TypeExpense, Amount: 500, Date: day, Status: StatusCompleted,
			Description: "Coffee", PaymentMethod: PaymentCash},
		{Id: "3", Type: TypeIncome, Amount: 3000, Date: day, Status: StatusCompleted,
			Description: "Salary"},
		{Id: "4", Type: TypeExpense, Amount: 8000, Date: day, Status: StatusPending,
			Description: "Rent", Merchant: "Landlord Inc"},
	}
}

func TestFilter_ExpenseWithAmountRange(t *testing.T) {
	min, max := 1000.0, 5000.0
	filter := Filter{
		Types:     []TransactionType{TypeExpense},
		AmountMin: &min,
		AmountMax: &max,
	}

	matched := filter.Apply(sampleTransactions())

	require.Len(t, matched, 1)
	assert.Equal(t, "1", matched[0].Id)
}

func TestFilter_EmptyFilterReturnsInputUnchanged(t *testing.T) {
	input := sampleTransactions()

	matched := Filter{}.Apply(input)

	assert.Equal(t, input, matched)
}

func TestFilter_SetValuesCombineWithOR(t *testing.T) {
	filter := Filter{PaymentMethods: []PaymentMethod{PaymentCard, PaymentCash}}

	matched := filter.Apply(sampleTransactions())

	require.Len(t, matched, 2)
	assert.Equal(t, "1", matched[0].Id)
	assert.Equal(t, "2", matched[1].Id)
}

func TestFilter_QuerySearchesDescriptionAndMerchant(t *testing.T) {
	matched := Filter{Query: "landlord"}.Apply(sampleTransactions())

	require.Len(t, matched, 1)
	assert.Equal(t, "4", matched[0].Id)
}

func TestFilter_DateRange(t *testing.T) {
	from := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.March, 31, 23, 59, 59, 0, time.UTC)
	outOfRange := Transaction{Id: "old", Type: TypeExpense, Amount: 10,
		Date: time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), Status: StatusCompleted}

	matched := Filter{DateFrom: &from, DateTo: &to}.Apply(append(sampleTransactions(), outOfRange))

	assert.Len(t, matched, 4)
}

func TestSort_StableOnEqualKeys(t *testing.T) {
	day := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	transactions := []Transaction{
		{Id: "1", Amount: 100, Date: day},
		{Id: "2", Amount: 100, Date: day},
		{Id: "3", Amount: 100, Date: day},
	}

	Sort(transactions, SortOption{Field: SortByAmount, Direction: "desc"})

	assert.Equal(t, "1", transactions[0].Id)
	assert.Equal(t, "2", transactions[1].Id)
	assert.Equal(t, "3", transactions[2].Id)
}

func TestSort_ByAmountDescending(t *testing.T) {
	day := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	transactions := []Transaction{
		{Id: "small", Amount: 10, Date: day},
		{Id: "large", Amount: 300, Date: day},
		{Id: "medium", Amount: 50, Date: day},
	}

	Sort(transactions, SortOption{Field: SortByAmount, Direction: "desc"})

	assert.Equal(t, "large", transactions[0].Id)
	assert.Equal(t, "medium", transactions[1].Id)
	assert.Equal(t, "small", transactions[2].Id)
}
