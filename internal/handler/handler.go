package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/swingnotes/api/internal/models"
	"github.com/swingnotes/api/internal/service"
)

type Handler struct {
	auth  service.Auth
	notes service.Notes
	log   *logrus.Logger
}

func NewHandler(auth service.Auth, notes service.Notes, log *logrus.Logger) *Handler {
	return &Handler{auth: auth, notes: notes, log: log}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// respondError maps domain errors to HTTP statuses. Anything outside
// the known taxonomy becomes a generic 500 with the detail logged, not
// exposed.
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrEmptyQuery),
		errors.Is(err, models.ErrEmptyTitle),
		errors.Is(err, models.ErrEmptyContent),
		errors.Is(err, models.ErrTitleTooLong),
		errors.Is(err, models.ErrContentTooLong):
		respondMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrInvalidCredentials):
		respondMessage(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, models.ErrNoteNotFound):
		respondMessage(w, http.StatusNotFound, "Note not found")
	default:
		h.log.Errorf("internal error: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}
