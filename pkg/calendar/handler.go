package calendar

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/chuwg/taskflow/internal/storage"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type EventDTO struct {
	ID          string      `json:"id,omitempty"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	StartTime   time.Time   `json:"startTime"`
	EndTime     *time.Time  `json:"endTime,omitempty"`
	AllDay      bool        `json:"allDay,omitempty"`
	Type        string      `json:"type"`
	Color       string      `json:"color,omitempty"`
	Location    string      `json:"location,omitempty"`
	Recurrence  *Recurrence `json:"recurrence,omitempty"`
	Tags        []string    `json:"tags,omitempty"`
}

func EventToDTO(event Event) EventDTO {
	return EventDTO{
		ID:          event.ID.String(),
		Title:       event.Title,
		Description: event.Description,
		StartTime:   event.StartTime,
		EndTime:     event.EndTime,
		AllDay:      event.AllDay,
		Type:        string(event.Type),
		Color:       event.Color,
		Location:    event.Location,
		Recurrence:  event.Recurrence,
		Tags:        event.Tags,
	}
}

func DTOToEvent(dto EventDTO) Event {
	var id EventID
	_ = id.UnmarshalText([]byte(dto.ID))
	return Event{
		ID:          id,
		Title:       dto.Title,
		Description: dto.Description,
		StartTime:   dto.StartTime,
		EndTime:     dto.EndTime,
		AllDay:      dto.AllDay,
		Type:        EventType(dto.Type),
		Color:       dto.Color,
		Location:    dto.Location,
		Recurrence:  dto.Recurrence,
		Tags:        dto.Tags,
	}
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new calendar event")
	w.Header().Set("Content-Type", "application/json")

	var dto EventDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	dto.ID = "" // native id is assigned by the service

	created, err := h.service.Add(r.Context(), DTOToEvent(dto))
	if !writeMutationOutcome(w, created != nil, err) {
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(EventToDTO(*created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	eventId := mux.Vars(r)["eventId"]

	var dto EventDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.ID != "" && dto.ID != eventId {
		http.Error(w, "Event id in body does not match path", http.StatusBadRequest)
		return
	}
	dto.ID = eventId

	updated, err := h.service.Modify(r.Context(), DTOToEvent(dto))
	if !writeMutationOutcome(w, updated, err) {
		return
	}
	if !updated {
		http.Error(w, "Event not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventId := mux.Vars(r)["eventId"]

	var id EventID
	if err := id.UnmarshalText([]byte(eventId)); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil && !errors.Is(err, storage.ErrPersist) {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	filter, err := filterFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	events, err := h.service.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]EventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, EventToDTO(e))
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) GetMonth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ref, err := parseDateParam(r, "date")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var selected *time.Time
	if r.URL.Query().Has("selected") {
		sel, err := parseDateParam(r, "selected")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		selected = &sel
	}
	filter, err := filterFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	month, err := h.service.Month(r.Context(), ref, selected, filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(month); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) GetWeek(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ref, err := parseDateParam(r, "date")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	filter, err := filterFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	week, err := h.service.Week(r.Context(), ref, nil, filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(week); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) GetDay(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ref, err := parseDateParam(r, "date")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	filter, err := filterFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	day, err := h.service.Day(r.Context(), ref, filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(day); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// writeMutationOutcome maps service errors onto HTTP responses. It returns
// true when the handler should continue with its success response. A
// persistence failure after an applied mutation counts as success: the
// in-memory state is authoritative and the failure is already logged.
func writeMutationOutcome(w http.ResponseWriter, applied bool, err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, ErrInvalidEvent) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	if errors.Is(err, storage.ErrPersist) && applied {
		return true
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
	return false
}

func filterFromQuery(r *http.Request) (Filter, error) {
	q := r.URL.Query()
	filter := Filter{}
	for _, t := range q["type"] {
		filter.Types = append(filter.Types, EventType(t))
	}
	filter.Tags = q["tag"]
	if q.Has("from") {
		from, err := parseDateParam(r, "from")
		if err != nil {
			return Filter{}, err
		}
		filter.From = &from
	}
	if q.Has("to") {
		to, err := parseDateParam(r, "to")
		if err != nil {
			return Filter{}, err
		}
		filter.To = &to
	}
	return filter, nil
}

func parseDateParam(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", raw, time.Local)
}
