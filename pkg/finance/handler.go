package finance

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/chuwg/taskflow/internal/storage"
	"github.com/chuwg/taskflow/pkg/datetime"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service  Service
	renderer *CsvReportRendererImpl
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service, renderer: NewCsvReportRenderer()}
}

func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new transaction")
	w.Header().Set("Content-Type", "application/json")

	var transaction Transaction
	if err := json.NewDecoder(r.Body).Decode(&transaction); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.CreateTransaction(r.Context(), transaction)
	if respondError(w, err, created != nil) {
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	transactionId := mux.Vars(r)["transactionId"]

	var transaction Transaction
	if err := json.NewDecoder(r.Body).Decode(&transaction); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	transaction.Id = transactionId

	updated, err := h.service.UpdateTransaction(r.Context(), transaction)
	if respondError(w, err, updated != nil) {
		return
	}
	if updated == nil {
		http.Error(w, "Transaction not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	transactionId := mux.Vars(r)["transactionId"]
	if err := h.service.DeleteTransaction(r.Context(), transactionId); respondError(w, err, true) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	transactionId := mux.Vars(r)["transactionId"]

	transaction, err := h.service.GetTransaction(r.Context(), transactionId)
	if respondError(w, err, false) {
		return
	}
	if transaction == nil {
		http.Error(w, "Transaction not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, transaction)
}

func (h *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	filter, sortOpt, err := transactionQueryParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	transactions, err := h.service.ListTransactions(r.Context(), filter, sortOpt)
	if respondError(w, err, false) {
		return
	}
	writeJSON(w, http.StatusOK, transactions)
}

func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var account Account
	if err := json.NewDecoder(r.Body).Decode(&account); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.CreateAccount(r.Context(), account)
	if respondError(w, err, created != nil) {
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	accountId := mux.Vars(r)["accountId"]

	var account Account
	if err := json.NewDecoder(r.Body).Decode(&account); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	account.Id = accountId

	updated, err := h.service.UpdateAccount(r.Context(), account)
	if respondError(w, err, updated != nil) {
		return
	}
	if updated == nil {
		http.Error(w, "Account not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	accountId := mux.Vars(r)["accountId"]
	if err := h.service.DeleteAccount(r.Context(), accountId); respondError(w, err, true) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetAccounts(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	accounts, err := h.service.ListAccounts(r.Context())
	if respondError(w, err, false) {
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var category Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.CreateCategory(r.Context(), category)
	if respondError(w, err, created != nil) {
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	categoryId := mux.Vars(r)["categoryId"]

	var category Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	category.Id = categoryId

	updated, err := h.service.UpdateCategory(r.Context(), category)
	if respondError(w, err, updated != nil) {
		return
	}
	if updated == nil {
		http.Error(w, "Category not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryId := mux.Vars(r)["categoryId"]
	if err := h.service.DeleteCategory(r.Context(), categoryId); respondError(w, err, true) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	categories, err := h.service.ListCategories(r.Context())
	if respondError(w, err, false) {
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *Handler) CreateBudget(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var budget Budget
	if err := json.NewDecoder(r.Body).Decode(&budget); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.CreateBudget(r.Context(), budget)
	if respondError(w, err, created != nil) {
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateBudget(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	budgetId := mux.Vars(r)["budgetId"]

	var budget Budget
	if err := json.NewDecoder(r.Body).Decode(&budget); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	budget.Id = budgetId

	updated, err := h.service.UpdateBudget(r.Context(), budget)
	if respondError(w, err, updated != nil) {
		return
	}
	if updated == nil {
		http.Error(w, "Budget not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	budgetId := mux.Vars(r)["budgetId"]
	if err := h.service.DeleteBudget(r.Context(), budgetId); respondError(w, err, true) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetBudgets(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	budgets, err := h.service.ListBudgets(r.Context())
	if respondError(w, err, false) {
		return
	}
	writeJSON(w, http.StatusOK, budgets)
}

func (h *Handler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var goal Goal
	if err := json.NewDecoder(r.Body).Decode(&goal); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.CreateGoal(r.Context(), goal)
	if respondError(w, err, created != nil) {
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	goalId := mux.Vars(r)["goalId"]

	var goal Goal
	if err := json.NewDecoder(r.Body).Decode(&goal); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	goal.Id = goalId

	updated, err := h.service.UpdateGoal(r.Context(), goal)
	if respondError(w, err, updated != nil) {
		return
	}
	if updated == nil {
		http.Error(w, "Goal not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	goalId := mux.Vars(r)["goalId"]
	if err := h.service.DeleteGoal(r.Context(), goalId); respondError(w, err, true) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetGoals(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	goals, err := h.service.ListGoals(r.Context())
	if respondError(w, err, false) {
		return
	}
	writeJSON(w, http.StatusOK, goals)
}

// GetReport aggregates the given range. With "Accept: text/csv" the report is
// rendered as CSV, otherwise as JSON.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	from, _, err := parseDateValue(r.URL.Query().Get("from"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	to, toDateOnly, err := parseDateValue(r.URL.Query().Get("to"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	// a date-only "to" means the whole day; an explicit timestamp is exact
	if toDateOnly {
		to = datetime.EndOfDay(to)
	}

	report, err := h.service.GenerateReport(r.Context(), from, to)
	if respondError(w, err, false) {
		return
	}

	if strings.Contains(r.Header.Get("Accept"), "text/csv") {
		csvReport, err := h.renderer.RenderReport(report)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(csvReport)); err != nil {
			log.Errorf("failed to write csv response: %v", err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, http.StatusOK, report)
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	stats, err := h.service.GetStats(r.Context())
	if respondError(w, err, false) {
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func transactionQueryParams(r *http.Request) (Filter, SortOption, error) {
	q := r.URL.Query()
	filter := Filter{
		Categories: q["category"],
		Accounts:   q["account"],
		Tags:       q["tag"],
		Query:      q.Get("query"),
	}
	for _, t := range q["type"] {
		filter.Types = append(filter.Types, TransactionType(t))
	}
	for _, s := range q["status"] {
		filter.Status = append(filter.Status, TransactionStatus(s))
	}
	for _, m := range q["paymentMethod"] {
		filter.PaymentMethods = append(filter.PaymentMethods, PaymentMethod(m))
	}
	if q.Has("amountMin") {
		min, err := strconv.ParseFloat(q.Get("amountMin"), 64)
		if err != nil {
			return Filter{}, SortOption{}, err
		}
		filter.AmountMin = &min
	}
	if q.Has("amountMax") {
		max, err := strconv.ParseFloat(q.Get("amountMax"), 64)
		if err != nil {
			return Filter{}, SortOption{}, err
		}
		filter.AmountMax = &max
	}
	if q.Has("from") {
		from, _, err := parseDateValue(q.Get("from"))
		if err != nil {
			return Filter{}, SortOption{}, err
		}
		filter.DateFrom = &from
	}
	if q.Has("to") {
		to, _, err := parseDateValue(q.Get("to"))
		if err != nil {
			return Filter{}, SortOption{}, err
		}
		filter.DateTo = &to
	}

	sortOpt := SortOption{
		Field:     SortField(q.Get("sortBy")),
		Direction: q.Get("sortDir"),
	}
	return filter, sortOpt, nil
}

// parseDateValue accepts RFC3339 timestamps and date-only values; dateOnly
// reports which form was given.
func parseDateValue(raw string) (t time.Time, dateOnly bool, err error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, false, nil
	}
	t, err = time.ParseInLocation("2006-01-02", raw, time.Local)
	return t, err == nil, err
}

// respondError writes an error response and reports whether the handler
// should stop. A persist failure after an applied mutation is not an error to
// the client: the in-memory state is authoritative and the failure was logged.
func respondError(w http.ResponseWriter, err error, applied bool) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrInvalidRecord) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return true
	}
	if applied && errors.Is(err, storage.ErrPersist) {
		return false
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
	return true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("failed to encode response: %v", err)
	}
}
