package finance

import (
	"sort"
	"time"

	"github.com/chuwg/taskflow/pkg/datetime"
)

type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type CategoryBreakdown struct {
	CategoryId       string  `json:"categoryId"`
	CategoryName     string  `json:"categoryName"`
	Amount           float64 `json:"amount"`
	Percentage       float64 `json:"percentage"`
	TransactionCount int     `json:"transactionCount"`
}

type MonthlyTrend struct {
	Month     string  `json:"month"` // "2006-01"
	Income    float64 `json:"income"`
	Expense   float64 `json:"expense"`
	NetIncome float64 `json:"netIncome"`
}

type BudgetStatusValue string

const (
	BudgetUnder   BudgetStatusValue = "under"
	BudgetAtLimit BudgetStatusValue = "at_limit"
	BudgetOver    BudgetStatusValue = "over"
)

type BudgetStatus struct {
	BudgetId   string            `json:"budgetId"`
	BudgetName string            `json:"budgetName"`
	Spent      float64           `json:"spent"`
	Budgeted   float64           `json:"budgeted"`
	Remaining  float64           `json:"remaining"`
	Percentage float64           `json:"percentage"`
	Status     BudgetStatusValue `json:"status"`
}

type Report struct {
	Period            Period              `json:"period"`
	TotalIncome       float64             `json:"totalIncome"`
	TotalExpense      float64             `json:"totalExpense"`
	NetIncome         float64             `json:"netIncome"`
	CategoryBreakdown []CategoryBreakdown `json:"categoryBreakdown"`
	MonthlyTrend      []MonthlyTrend      `json:"monthlyTrend"`
	TopExpenses       []Transaction       `json:"topExpenses"`
	BudgetStatus      []BudgetStatus      `json:"budgetStatus"`
}

const topExpenseCount = 10

// BuildReport aggregates completed transactions dated within [from, to]
// inclusive, against the category and budget records.
func BuildReport(from, to time.Time, transactions []Transaction, categories []Category, budgets []Budget) Report {
	inRange := make([]Transaction, 0, len(transactions))
	for _, t := range transactions {
		if t.Status != StatusCompleted {
			continue
		}
		if t.Date.Before(from) || t.Date.After(to) {
			continue
		}
		inRange = append(inRange, t)
	}

	report := Report{
		Period:            Period{Start: from, End: to},
		CategoryBreakdown: []CategoryBreakdown{},
		MonthlyTrend:      []MonthlyTrend{},
		TopExpenses:       []Transaction{},
		BudgetStatus:      []BudgetStatus{},
	}
	for _, t := range inRange {
		switch t.Type {
		case TypeIncome:
			report.TotalIncome += t.Amount
		case TypeExpense:
			report.TotalExpense += t.Amount
		}
	}
	report.NetIncome = report.TotalIncome - report.TotalExpense

	report.CategoryBreakdown = categoryBreakdown(inRange, categories, report.TotalExpense)
	report.MonthlyTrend = monthlyTrend(from, to, inRange)
	report.TopExpenses = topExpenses(inRange)
	report.BudgetStatus = budgetStatuses(from, to, inRange, budgets)
	return report
}

func categoryBreakdown(transactions []Transaction, categories []Category, totalExpense float64) []CategoryBreakdown {
	type group struct {
		amount float64
		count  int
	}
	groups := make(map[string]*group)
	order := make([]string, 0)
	for _, t := range transactions {
		if t.Type != TypeExpense {
			continue
		}
		g, ok := groups[t.Category]
		if !ok {
			g = &group{}
			groups[t.Category] = g
			order = append(order, t.Category)
		}
		g.amount += t.Amount
		g.count++
	}

	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.Id] = c.Name
	}

	breakdown := make([]CategoryBreakdown, 0, len(order))
	for _, categoryId := range order {
		g := groups[categoryId]
		name, ok := names[categoryId]
		if !ok {
			// no category record; the raw value still identifies the group
			name = categoryId
		}
		percentage := 0.0
		if totalExpense > 0 {
			percentage = g.amount / totalExpense * 100
		}
		breakdown = append(breakdown, CategoryBreakdown{
			CategoryId:       categoryId,
			CategoryName:     name,
			Amount:           g.amount,
			Percentage:       percentage,
			TransactionCount: g.count,
		})
	}
	return breakdown
}

// monthlyTrend produces one bucket per calendar month from from to to
// inclusive, zero-filled for months without transactions.
func monthlyTrend(from, to time.Time, transactions []Transaction) []MonthlyTrend {
	byMonth := make(map[string]int)
	trend := make([]MonthlyTrend, 0)

	for cursor := datetime.StartOfMonth(from); !cursor.After(to); cursor = datetime.AddMonths(cursor, 1) {
		key := datetime.MonthKey(cursor)
		byMonth[key] = len(trend)
		trend = append(trend, MonthlyTrend{Month: key})
	}

	for _, t := range transactions {
		i, ok := byMonth[datetime.MonthKey(t.Date)]
		if !ok {
			continue
		}
		switch t.Type {
		case TypeIncome:
			trend[i].Income += t.Amount
		case TypeExpense:
			trend[i].Expense += t.Amount
		}
	}
	for i := range trend {
		trend[i].NetIncome = trend[i].Income - trend[i].Expense
	}
	return trend
}

// topExpenses returns the up-to-10 highest expenses descending; ties keep
// their original order.
func topExpenses(transactions []Transaction) []Transaction {
	expenses := make([]Transaction, 0)
	for _, t := range transactions {
		if t.Type == TypeExpense {
			expenses = append(expenses, t)
		}
	}
	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].Amount > expenses[j].Amount
	})
	if len(expenses) > topExpenseCount {
		expenses = expenses[:topExpenseCount]
	}
	return expenses
}

func budgetStatuses(from, to time.Time, transactions []Transaction, budgets []Budget) []BudgetStatus {
	statuses := make([]BudgetStatus, 0)
	for _, budget := range budgets {
		if budget.StartDate.After(to) || budget.EndDate.Before(from) {
			continue
		}
		spent := 0.0
		for _, t := range transactions {
			if t.Type == TypeExpense && t.Category == budget.CategoryId {
				spent += t.Amount
			}
		}
		statuses = append(statuses, NewBudgetStatus(budget, spent))
	}
	return statuses
}

// NewBudgetStatus derives the spend position against the budget's ceiling.
func NewBudgetStatus(budget Budget, spent float64) BudgetStatus {
	percentage := 0.0
	if budget.Amount > 0 {
		percentage = spent / budget.Amount * 100
	}
	status := BudgetUnder
	if percentage >= 100 {
		status = BudgetOver
	} else if percentage >= 90 {
		status = BudgetAtLimit
	}
	return BudgetStatus{
		BudgetId:   budget.Id,
		BudgetName: budget.Name,
		Spent:      spent,
		Budgeted:   budget.Amount,
		Remaining:  budget.Amount - spent,
		Percentage: percentage,
		Status:     status,
	}
}

// Stats is the overall financial snapshot, computed on demand.
type Stats struct {
	TotalIncome      float64            `json:"totalIncome"`
	TotalExpense     float64            `json:"totalExpense"`
	NetIncome        float64            `json:"netIncome"`
	MonthlyIncome    float64            `json:"monthlyIncome"`
	MonthlyExpense   float64            `json:"monthlyExpense"`
	MonthlyNetIncome float64            `json:"monthlyNetIncome"`
	AccountBalances  map[string]float64 `json:"accountBalances"`
	CategoryTotals   map[string]float64 `json:"categoryTotals"`
	BudgetStatus     []BudgetStatus     `json:"budgetStatus"`
	GoalProgress     map[string]float64 `json:"goalProgress"`
}

// BuildStats aggregates all completed transactions as of now. Account
// balances start from the account's stored balance and apply income and
// expense movements; transfers do not change totals.
func BuildStats(now time.Time, transactions []Transaction, accounts []Account, categories []Category, budgets []Budget, goals []Goal) Stats {
	stats := Stats{
		AccountBalances: make(map[string]float64, len(accounts)),
		CategoryTotals:  make(map[string]float64, len(categories)),
		BudgetStatus:    []BudgetStatus{},
		GoalProgress:    make(map[string]float64, len(goals)),
	}

	monthStart := datetime.StartOfMonth(now)
	nextMonth := datetime.AddMonths(monthStart, 1)
	for _, t := range transactions {
		if t.Status != StatusCompleted {
			continue
		}
		inMonth := !t.Date.Before(monthStart) && t.Date.Before(nextMonth)
		switch t.Type {
		case TypeIncome:
			stats.TotalIncome += t.Amount
			if inMonth {
				stats.MonthlyIncome += t.Amount
			}
		case TypeExpense:
			stats.TotalExpense += t.Amount
			if inMonth {
				stats.MonthlyExpense += t.Amount
			}
		}
	}
	stats.NetIncome = stats.TotalIncome - stats.TotalExpense
	stats.MonthlyNetIncome = stats.MonthlyIncome - stats.MonthlyExpense

	for _, account := range accounts {
		balance := account.Balance
		for _, t := range transactions {
			if t.AccountId != account.Id || t.Status != StatusCompleted {
				continue
			}
			switch t.Type {
			case TypeIncome:
				balance += t.Amount
			case TypeExpense:
				balance -= t.Amount
			}
		}
		stats.AccountBalances[account.Id] = balance
	}

	for _, category := range categories {
		total := 0.0
		for _, t := range transactions {
			if t.Category == category.Id && t.Type == TypeExpense && t.Status == StatusCompleted {
				total += t.Amount
			}
		}
		stats.CategoryTotals[category.Id] = total
	}

	for _, budget := range budgets {
		spent := 0.0
		for _, t := range transactions {
			if t.Category != budget.CategoryId || t.Type != TypeExpense || t.Status != StatusCompleted {
				continue
			}
			if t.Date.Before(budget.StartDate) || t.Date.After(budget.EndDate) {
				continue
			}
			spent += t.Amount
		}
		stats.BudgetStatus = append(stats.BudgetStatus, NewBudgetStatus(budget, spent))
	}

	for _, goal := range goals {
		if goal.TargetAmount > 0 {
			stats.GoalProgress[goal.Id] = goal.CurrentAmount / goal.TargetAmount * 100
		}
	}
	return stats
}
