package todo

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/chuwg/taskflow/internal/storage"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// Handler exposes the todo service over HTTP. Todo and Template marshal
// directly; their JSON tags are the wire format.
type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new todo")
	w.Header().Set("Content-Type", "application/json")

	var todo Todo
	if err := json.NewDecoder(r.Body).Decode(&todo); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), todo)
	if respondError(w, err, created != nil) {
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	todoId := mux.Vars(r)["todoId"]

	var todo Todo
	if err := json.NewDecoder(r.Body).Decode(&todo); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	todo.Id = todoId

	updated, err := h.service.Update(r.Context(), todo)
	if respondError(w, err, updated != nil) {
		return
	}
	if updated == nil {
		http.Error(w, "Todo not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	todoId := mux.Vars(r)["todoId"]
	if err := h.service.Delete(r.Context(), todoId); respondError(w, err, true) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetTodo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	todoId := mux.Vars(r)["todoId"]

	todo, err := h.service.Get(r.Context(), todoId)
	if respondError(w, err, false) {
		return
	}
	if todo == nil {
		http.Error(w, "Todo not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, todo)
}

func (h *Handler) GetTodos(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	filter, sortOpt, err := todoQueryParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	todos, err := h.service.List(r.Context(), filter, sortOpt)
	if respondError(w, err, false) {
		return
	}
	writeJSON(w, http.StatusOK, todos)
}

func (h *Handler) ToggleTodo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	todoId := mux.Vars(r)["todoId"]

	toggled, err := h.service.ToggleStatus(r.Context(), todoId)
	if respondError(w, err, toggled != nil) {
		return
	}
	if toggled == nil {
		http.Error(w, "Todo not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, toggled)
}

func (h *Handler) DuplicateTodo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	todoId := mux.Vars(r)["todoId"]

	copied, err := h.service.Duplicate(r.Context(), todoId)
	if respondError(w, err, copied != nil) {
		return
	}
	if copied == nil {
		http.Error(w, "Todo not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, copied)
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	stats, err := h.service.GetStats(r.Context())
	if respondError(w, err, false) {
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var template Template
	if err := json.NewDecoder(r.Body).Decode(&template); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.CreateTemplate(r.Context(), template)
	if respondError(w, err, created != nil) {
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	templateId := mux.Vars(r)["templateId"]

	var template Template
	if err := json.NewDecoder(r.Body).Decode(&template); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	template.Id = templateId

	updated, err := h.service.UpdateTemplate(r.Context(), template)
	if respondError(w, err, updated != nil) {
		return
	}
	if updated == nil {
		http.Error(w, "Template not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	templateId := mux.Vars(r)["templateId"]
	if err := h.service.DeleteTemplate(r.Context(), templateId); respondError(w, err, true) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetTemplates(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	templates, err := h.service.ListTemplates(r.Context())
	if respondError(w, err, false) {
		return
	}
	writeJSON(w, http.StatusOK, templates)
}

func (h *Handler) InstantiateTemplate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	templateId := mux.Vars(r)["templateId"]

	created, err := h.service.CreateFromTemplate(r.Context(), templateId)
	if respondError(w, err, created != nil) {
		return
	}
	if created == nil {
		http.Error(w, "Template not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func todoQueryParams(r *http.Request) (Filter, SortOption, error) {
	q := r.URL.Query()
	filter := Filter{
		Tags:  q["tag"],
		Query: q.Get("query"),
	}
	for _, s := range q["status"] {
		filter.Status = append(filter.Status, Status(s))
	}
	for _, p := range q["priority"] {
		filter.Priority = append(filter.Priority, Priority(p))
	}
	for _, c := range q["category"] {
		filter.Category = append(filter.Category, Category(c))
	}
	dateParams := []struct {
		name   string
		target **time.Time
	}{
		{"dueFrom", &filter.DueFrom},
		{"dueTo", &filter.DueTo},
		{"createdFrom", &filter.CreatedFrom},
		{"createdTo", &filter.CreatedTo},
	}
	for _, p := range dateParams {
		if !q.Has(p.name) {
			continue
		}
		parsed, err := parseDateValue(q.Get(p.name))
		if err != nil {
			return Filter{}, SortOption{}, err
		}
		*p.target = &parsed
	}
	boolParams := []struct {
		name   string
		target **bool
	}{
		{"hasSubtasks", &filter.HasSubtasks},
		{"isOverdue", &filter.IsOverdue},
	}
	for _, p := range boolParams {
		if !q.Has(p.name) {
			continue
		}
		parsed, err := strconv.ParseBool(q.Get(p.name))
		if err != nil {
			return Filter{}, SortOption{}, err
		}
		*p.target = &parsed
	}

	sortOpt := SortOption{
		Field:     SortField(q.Get("sortBy")),
		Direction: q.Get("sortDir"),
	}
	return filter, sortOpt, nil
}

func parseDateValue(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", raw, time.Local)
}

// respondError writes an error response and reports whether the handler
// should stop. A persist failure after an applied mutation is not an error to
// the client: the in-memory state is authoritative and the failure was logged.
func respondError(w http.ResponseWriter, err error, applied bool) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrInvalidTodo) {
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
