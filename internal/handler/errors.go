package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"personalblog/internal/models"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, ErrorResponse{Error: message}, statusCode)
}

func writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// handleError maps a service error onto a response. op names the failed
// operation in the log.
func (h *Handlers) handleError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		h.renderError(w, r, http.StatusNotFound, "Not found.")
	case errors.Is(err, models.ErrUnauthenticated):
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	case errors.Is(err, models.ErrUnauthorized):
		h.renderError(w, r, http.StatusForbidden, "You are not allowed to do that.")
	default:
		log.Printf("%s: %v", op, err)
		h.renderError(w, r, http.StatusInternalServerError, "Something went wrong. Please try again later.")
	}
}
