package finance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expense(id string, amount float64, date time.Time, category string) Transaction {
	return Transaction{
		Id:       id,
		Type:     TypeExpense,
		Amount:   amount,
		Currency: "USD",
		Category: category,
		Date:     date,
		Status:   StatusCompleted,
	}
}

func income(id string, amount float64, date time.Time) Transaction {
	return Transaction{
		Id:       id,
		Type:     TypeIncome,
		Amount:   amount,
		Currency: "USD",
		Date:     date,
		Status:   StatusCompleted,
	}
}

func TestBuildReport_EmptyRangeIsZeroFilled(t *testing.T) {
	from := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.March, 31, 23, 59, 59, 0, time.UTC)

	report := BuildReport(from, to, nil, nil, nil)

	assert.Zero(t, report.TotalIncome)
	assert.Zero(t, report.TotalExpense)
	assert.Zero(t, report.NetIncome)
	assert.Empty(t, report.CategoryBreakdown)
	assert.Empty(t, report.TopExpenses)

	// one bucket per month in range, all zero
	require.Len(t, report.MonthlyTrend, 3)
	assert.Equal(t, "2024-01", report.MonthlyTrend[0].Month)
	assert.Equal(t, "2024-02", report.MonthlyTrend[1].Month)
	assert.Equal(t, "2024-03", report.MonthlyTrend[2].Month)
	for _, bucket := range report.MonthlyTrend {
		assert.Zero(t, bucket.Income)
		assert.Zero(t, bucket.Expense)
		assert.Zero(t, bucket.NetIncome)
	}
}

func TestBuildReport_TotalsAndTrend(t *testing.T) {
	from := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.February, 29, 23, 59, 59, 0, time.UTC)
	transactions := []Transaction{
		income("i1", 3000, time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)),
		expense("e1", 500, time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC), "food"),
		expense("e2", 200, time.Date(2024, time.February, 2, 0, 0, 0, 0, time.UTC), "transport"),
		// pending transactions are excluded
		{Id: "p1", Type: TypeExpense, Amount: 999, Date: from, Status: StatusPending},
		// out of range
		expense("e3", 100, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), "food"),
	}

	report := BuildReport(from, to, transactions, nil, nil)

	assert.Equal(t, 3000.0, report.TotalIncome)
	assert.Equal(t, 700.0, report.TotalExpense)
	assert.Equal(t, 2300.0, report.NetIncome)

	require.Len(t, report.MonthlyTrend, 2)
	assert.Equal(t, 3000.0, report.MonthlyTrend[0].Income)
	assert.Equal(t, 500.0, report.MonthlyTrend[0].Expense)
	assert.Equal(t, 2500.0, report.MonthlyTrend[0].NetIncome)
	assert.Equal(t, 200.0, report.MonthlyTrend[1].Expense)
}

func TestBuildReport_CategoryBreakdown(t *testing.T) {
	from := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.January, 31, 23, 59, 59, 0, time.UTC)
	day := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	transactions := []Transaction{
		expense("e1", 300, day, "cat-food"),
		expense("e2", 100, day, "cat-food"),
		expense("e3", 600, day, "cat-rent"),
	}
	categories := []Category{
		{Id: "cat-food", Name: "Food", Type: TypeExpense},
		{Id: "cat-rent", Name: "Rent", Type: TypeExpense},
	}

	report := BuildReport(from, to, transactions, categories, nil)

	require.Len(t, report.CategoryBreakdown, 2)
	food := report.CategoryBreakdown[0]
	assert.Equal(t, "Food", food.CategoryName)
	assert.Equal(t, 400.0, food.Amount)
	assert.Equal(t, 2, food.TransactionCount)
	assert.InDelta(t, 40.0, food.Percentage, 0.001)
	rent := report.CategoryBreakdown[1]
	assert.Equal(t, 600.0, rent.Amount)
	assert.InDelta(t, 60.0, rent.Percentage, 0.001)
}

func TestBuildReport_TopExpensesTiesKeepOriginalOrder(t *testing.T) {
	from := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.January, 31, 23, 59, 59, 0, time.UTC)
	day := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)

	transactions := make([]Transaction, 0, 12)
	transactions = append(transactions, expense("big", 1000, day, "c"))
	for i := 0; i < 11; i++ {
		transactions = append(transactions, expense(
			string(rune('a'+i)), 50, day, "c"))
	}

	report := BuildReport(from, to, transactions, nil, nil)

	require.Len(t, report.TopExpenses, 10)
	assert.Equal(t, "big", report.TopExpenses[0].Id)
	// the tied 50s keep insertion order
	assert.Equal(t, "a", report.TopExpenses[1].Id)
	assert.Equal(t, "b", report.TopExpenses[2].Id)
	assert.Equal(t, "i", report.TopExpenses[9].Id)
}

func TestBudgetStatusThresholds(t *testing.T) {
	budget := Budget{Id: "b1", Name: "Groceries", Amount: 1000}

	tests := []struct {
		name       string
		spent      float64
		percentage float64
		status     BudgetStatusValue
	}{
		{"over at 100%", 1000, 100, BudgetOver},
		{"at limit at 90%", 900, 90, BudgetAtLimit},
		{"under at 50%", 500, 50, BudgetUnder},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := NewBudgetStatus(budget, tt.spent)
			assert.InDelta(t, tt.percentage, status.Percentage, 0.001)
			assert.Equal(t, tt.status, status.Status)
			assert.Equal(t, budget.Amount-tt.spent, status.Remaining)
		})
	}
}

func TestBudgetStatus_ZeroCeiling(t *testing.T) {
	status := NewBudgetStatus(Budget{Id: "b", Name: "Empty"}, 50)

	assert.Zero(t, status.Percentage)
	assert.Equal(t, BudgetUnder, status.Status)
}

func TestBuildReport_BudgetOverlapSelection(t *testing.T) {
	from := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.February, 29, 23, 59, 59, 0, time.UTC)
	budgets := []Budget{
		{Id: "in", Name: "Feb", CategoryId: "c", Amount: 100,
			StartDate: time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)},
		{Id: "overlap", Name: "Jan-Feb", CategoryId: "c", Amount: 100,
			StartDate: time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)},
		{Id: "out", Name: "Mar", CategoryId: "c", Amount: 100,
			StartDate: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)},
	}

	report := BuildReport(from, to, nil, nil, budgets)

	require.Len(t, report.BudgetStatus, 2)
	assert.Equal(t, "in", report.BudgetStatus[0].BudgetId)
	assert.Equal(t, "overlap", report.BudgetStatus[1].BudgetId)
}

func TestBuildStats(t *testing.T) {
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	transactions := []Transaction{
		income("i1", 1000, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)),
		income("i2", 500, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)),
		expense("e1", 200, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), "cat"),
	}
	transactions[0].AccountId = "acc"
	transactions[2].AccountId = "acc"
	accounts := []Account{{Id: "acc", Name: "Main", Balance: 100}}
	categories := []Category{{Id: "cat", Name: "Food"}}
	goals := []Goal{{Id: "g", Name: "Trip", TargetAmount: 2000, CurrentAmount: 500}}

	stats := BuildStats(now, transactions, accounts, categories, nil, goals)

	assert.Equal(t, 1500.0, stats.TotalIncome)
	assert.Equal(t, 200.0, stats.TotalExpense)
	assert.Equal(t, 1300.0, stats.NetIncome)
	assert.Equal(t, 1000.0, stats.MonthlyIncome)
	assert.Equal(t, 200.0, stats.MonthlyExpense)
	assert.Equal(t, 900.0, stats.AccountBalances["acc"])
	assert.Equal(t, 200.0, stats.CategoryTotals["cat"])
	assert.InDelta(t, 25.0, stats.GoalProgress["g"], 0.001)
}

func TestRenderReport_CSV(t *testing.T) {
	from := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.January, 31, 23, 59, 59, 0, time.UTC)
	transactions := []Transaction{
		income("i1", 1000, time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)),
		expense("e1", 250, time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC), "cat"),
	}
	report := BuildReport(from, to, transactions, []Category{{Id: "cat", Name: "Food"}}, nil)

	rendered, err := NewCsvReportRenderer().RenderReport(report)

	require.NoError(t, err)
	assert.Contains(t, rendered, "Total income,1000.00")
	assert.Contains(t, rendered, "Total expense,250.00")
	assert.Contains(t, rendered, "Food,250.00,100.00,1")
	assert.Contains(t, rendered, "2024-01,1000.00,250.00,750.00")
}
