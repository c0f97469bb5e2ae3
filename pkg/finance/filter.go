package finance

import (
	"slices"
	"sort"
	"strings"
	"time"
)

// Filter narrows a transaction list. Dimensions combine with AND; values
// within one set dimension combine with OR. An empty dimension is no
// constraint.
type Filter struct {
	Types          []TransactionType
	Status         []TransactionStatus
	Categories     []string
	PaymentMethods []PaymentMethod
	Accounts       []string
	Tags           []string
	AmountMin      *float64
	AmountMax      *float64
	DateFrom       *time.Time
	DateTo         *time.Time
	Query          string
}

func (f Filter) Matches(t Transaction) bool {
	if len(f.Types) > 0 && !slices.Contains(f.Types, t.Type) {
		return false
	}
	if len(f.Status) > 0 && !slices.Contains(f.Status, t.Status) {
		return false
	}
	if len(f.Categories) > 0 && !slices.Contains(f.Categories, t.Category) {
		return false
	}
	if len(f.PaymentMethods) > 0 && !slices.Contains(f.PaymentMethods, t.PaymentMethod) {
		return false
	}
	if len(f.Accounts) > 0 && !slices.Contains(f.Accounts, t.AccountId) {
		return false
	}
	if len(f.Tags) > 0 && !hasAnyTag(t.Tags, f.Tags) {
		return false
	}
	if f.AmountMin != nil && t.Amount < *f.AmountMin {
		return false
	}
	if f.AmountMax != nil && t.Amount > *f.AmountMax {
		return false
	}
	if f.DateFrom != nil && t.Date.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && t.Date.After(*f.DateTo) {
		return false
	}
	if f.Query != "" && !matchesQuery(t, f.Query) {
		return false
	}
	return true
}

// Apply returns the matching subset in input order.
func (f Filter) Apply(transactions []Transaction) []Transaction {
	matched := make([]Transaction, 0, len(transactions))
	for _, t := range transactions {
		if f.Matches(t) {
			matched = append(matched, t)
		}
	}
	return matched
}

func matchesQuery(t Transaction, query string) bool {
	q := strings.ToLower(query)
	for _, field := range []string{t.Description, t.Merchant, t.Location} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func hasAnyTag(have, want []string) bool {
	for _, tag := range want {
		if slices.Contains(have, tag) {
			return true
		}
	}
	return false
}

type SortField string

const (
	SortByDate        SortField = "date"
	SortByAmount      SortField = "amount"
	SortByDescription SortField = "description"
	SortByCategory    SortField = "category"
	SortByCreatedAt   SortField = "createdAt"
)

type SortOption struct {
	Field     SortField
	Direction string // "asc" or "desc"
}

// Sort orders transactions in place with a stable sort, so records comparing
// equal keep their original relative order.
func Sort(transactions []Transaction, opt SortOption) {
	if opt.Field == "" {
		return
	}
	desc := opt.Direction == "desc"
	sort.SliceStable(transactions, func(i, j int) bool {
		if desc {
			return lessByField(transactions[j], transactions[i], opt.Field)
		}
		return lessByField(transactions[i], transactions[j], opt.Field)
	})
}

func lessByField(a, b Transaction, field SortField) bool {
	switch field {
	case SortByDate:
		return a.Date.Before(b.Date)
	case SortByAmount:
		return a.Amount < b.Amount
	case SortByDescription:
		return a.Description < b.Description
	case SortByCategory:
		return a.Category < b.Category
	case SortByCreatedAt:
		return a.CreatedAt.Before(b.CreatedAt)
	default:
		return false
	}
}
