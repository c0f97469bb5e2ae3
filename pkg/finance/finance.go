package finance

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidRecord = errors.New("invalid record")

type TransactionType string

const (
	TypeIncome   TransactionType = "income"
	TypeExpense  TransactionType = "expense"
	TypeTransfer TransactionType = "transfer"
)

type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusCancelled TransactionStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentCash          PaymentMethod = "cash"
	PaymentCard          PaymentMethod = "card"
	PaymentBankTransfer  PaymentMethod = "bank_transfer"
	PaymentMobilePayment PaymentMethod = "mobile_payment"
	PaymentCrypto        PaymentMethod = "cryptocurrency"
	PaymentOther         PaymentMethod = "other"
)

type Recurrence struct {
	Frequency string     `json:"frequency"`
	Interval  int        `json:"interval"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}

// Transaction amounts are always non-negative; the direction is derived from
// the type at aggregation time, never stored as a sign.
type Transaction struct {
	Id            string            `json:"id"`
	Type          TransactionType   `json:"type"`
	Amount        float64           `json:"amount"`
	Currency      string            `json:"currency"`
	Category      string            `json:"category"`
	Subcategory   string            `json:"subcategory,omitempty"`
	Description   string            `json:"description"`
	Date          time.Time         `json:"date"`
	Status        TransactionStatus `json:"status"`
	PaymentMethod PaymentMethod     `json:"paymentMethod"`
	AccountId     string            `json:"accountId,omitempty"`
	ToAccountId   string            `json:"toAccountId,omitempty"`
	Tags          []string          `json:"tags,omitempty"`
	Location      string            `json:"location,omitempty"`
	Merchant      string            `json:"merchant,omitempty"`
	Notes         string            `json:"notes,omitempty"`
	IsRecurring   bool              `json:"isRecurring,omitempty"`
	Recurrence    *Recurrence       `json:"recurrence,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

func (t Transaction) Validate() error {
	switch t.Type {
	case TypeIncome, TypeExpense, TypeTransfer:
	default:
		return fmt.Errorf("%w: unknown transaction type %q", ErrInvalidRecord, t.Type)
	}
	if t.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidRecord)
	}
	if t.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidRecord)
	}
	switch t.Status {
	case StatusPending, StatusCompleted, StatusCancelled:
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalidRecord, t.Status)
	}
	return nil
}

type AccountType string

const (
	AccountChecking   AccountType = "checking"
	AccountSavings    AccountType = "savings"
	AccountCredit     AccountType = "credit"
	AccountInvestment AccountType = "investment"
	AccountCash       AccountType = "cash"
	AccountOther      AccountType = "other"
)

type Account struct {
	Id        string      `json:"id"`
	Name      string      `json:"name"`
	Type      AccountType `json:"type"`
	Balance   float64     `json:"balance"`
	Currency  string      `json:"currency"`
	BankName  string      `json:"bankName,omitempty"`
	Color     string      `json:"color,omitempty"`
	IsActive  bool        `json:"isActive"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

func (a Account) Validate() error {
	if a.Name == "" {
		return fmt.Errorf("%w: account name is required", ErrInvalidRecord)
	}
	return nil
}

type Category struct {
	Id        string          `json:"id"`
	Name      string          `json:"name"`
	Type      TransactionType `json:"type"`
	ParentId  string          `json:"parentId,omitempty"`
	Color     string          `json:"color,omitempty"`
	Icon      string          `json:"icon,omitempty"`
	IsDefault bool            `json:"isDefault"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func (c Category) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: category name is required", ErrInvalidRecord)
	}
	return nil
}

type BudgetPeriod string

const (
	BudgetWeekly  BudgetPeriod = "weekly"
	BudgetMonthly BudgetPeriod = "monthly"
	BudgetYearly  BudgetPeriod = "yearly"
)

// Budget stores only the ceiling; spent and remaining are always derived from
// the transactions at report time.
type Budget struct {
	Id             string       `json:"id"`
	Name           string       `json:"name"`
	CategoryId     string       `json:"categoryId"`
	Amount         float64      `json:"amount"`
	Period         BudgetPeriod `json:"period"`
	StartDate      time.Time    `json:"startDate"`
	EndDate        time.Time    `json:"endDate"`
	IsActive       bool         `json:"isActive"`
	AlertThreshold int          `json:"alertThreshold,omitempty"` // percent, 0-100
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

func (b Budget) Validate() error {
	if b.Name == "" {
		return fmt.Errorf("%w: budget name is required", ErrInvalidRecord)
	}
	if b.Amount < 0 {
		return fmt.Errorf("%w: budget amount cannot be negative", ErrInvalidRecord)
	}
	if b.EndDate.Before(b.StartDate) {
		return fmt.Errorf("%w: budget ends before it starts", ErrInvalidRecord)
	}
	return nil
}

type GoalCategory string

const (
	GoalSavings     GoalCategory = "savings"
	GoalDebtPayment GoalCategory = "debt_payment"
	GoalInvestment  GoalCategory = "investment"
	GoalPurchase    GoalCategory = "purchase"
	GoalOther       GoalCategory = "other"
)

type Goal struct {
	Id            string       `json:"id"`
	Name          string       `json:"name"`
	Description   string       `json:"description,omitempty"`
	TargetAmount  float64      `json:"targetAmount"`
	CurrentAmount float64      `json:"currentAmount"`
	TargetDate    time.Time    `json:"targetDate"`
	Category      GoalCategory `json:"category"`
	Priority      string       `json:"priority,omitempty"`
	IsCompleted   bool         `json:"isCompleted"`
	CompletedAt   *time.Time   `json:"completedAt,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

func (g Goal) Validate() error {
	if g.Name == "" {
		return fmt.Errorf("%w: goal name is required", ErrInvalidRecord)
	}
	if g.TargetAmount < 0 {
		return fmt.Errorf("%w: goal target cannot be negative", ErrInvalidRecord)
	}
	return nil
}
