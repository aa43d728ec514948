package handlers

import (
	"log"
	"net/http"
)

func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	health, err := h.StatsService.Health(r.Context())
	if err != nil {
		log.Printf("Health check failed: %v", err)
		if health == nil {
			writeError(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, health, http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, health, http.StatusOK)
}
