package note

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/chuwg/taskflow/internal/storage"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var note Note
	if err := json.NewDecoder(r.Body).Decode(&note); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), note)
	if respondError(w, err, created != nil) {
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	noteId := mux.Vars(r)["noteId"]

	var note Note
	if err := json.NewDecoder(r.Body).Decode(&note); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	note.Id = noteId

	updated, err := h.service.Update(r.Context(), note)
	if respondError(w, err, updated != nil) {
		return
	}
	if updated == nil {
		http.Error(w, "Note not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	noteId := mux.Vars(r)["noteId"]
	if err := h.service.Delete(r.Context(), noteId); respondError(w, err, true) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	noteId := mux.Vars(r)["noteId"]

	note, err := h.service.Get(r.Context(), noteId)
	if respondError(w, err, false) {
		return
	}
	if note == nil {
		http.Error(w, "Note not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (h *Handler) GetNotes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	notes, err := h.service.List(r.Context())
	if respondError(w, err, false) {
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

func respondError(w http.ResponseWriter, err error, applied bool) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrInvalidNote) {
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
