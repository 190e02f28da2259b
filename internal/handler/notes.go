package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/swingnotes/api/internal/middleware"
	"github.com/swingnotes/api/internal/models"
)

type noteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type deleteResponse struct {
	Message string       `json:"message"`
	Note    *models.Note `json:"note"`
}

// ListNotes returns all of the caller's notes, newest first
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "No token provided")
		return
	}

	notes, err := h.notes.List(r.Context(), identity.UserID)
	if err != nil {
		h.respondError(w, err)
		return
	}

	if notes == nil {
		notes = []models.Note{}
	}
	respondJSON(w, http.StatusOK, notes)
}

// SearchNotes returns the caller's notes matching the query parameter
func (h *Handler) SearchNotes(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "No token provided")
		return
	}

	notes, err := h.notes.Search(r.Context(), identity.UserID, r.URL.Query().Get("query"))
	if err != nil {
		h.respondError(w, err)
		return
	}

	if notes == nil {
		notes = []models.Note{}
	}
	respondJSON(w, http.StatusOK, notes)
}

// GetNote returns a single note owned by the caller
func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "No token provided")
		return
	}

	id, ok := parseNoteID(w, r)
	if !ok {
		return
	}

	note, err := h.notes.Get(r.Context(), id, identity.UserID)
	if err != nil {
		h.respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, note)
}

// CreateNote stores a new note owned by the caller
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "No token provided")
		return
	}

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	note, err := h.notes.Create(r.Context(), identity.UserID, req.Title, req.Content)
	if err != nil {
		h.respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, note)
}

// UpdateNote replaces title and content of the caller's note
func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "No token provided")
		return
	}

	id, ok := parseNoteID(w, r)
	if !ok {
		return
	}

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	note, err := h.notes.Update(r.Context(), id, identity.UserID, req.Title, req.Content)
	if err != nil {
		h.respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, note)
}

// DeleteNote permanently removes the caller's note and returns its
// last state
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "No token provided")
		return
	}

	id, ok := parseNoteID(w, r)
	if !ok {
		return
	}

	note, err := h.notes.Delete(r.Context(), id, identity.UserID)
	if err != nil {
		h.respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, deleteResponse{Message: "Note deleted", Note: note})
}

func parseNoteID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid note ID")
		return 0, false
	}
	return id, true
}
