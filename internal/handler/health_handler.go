package handlers

import (
	"net/http"
)

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.HealthCheck(r.Context()); err != nil {
		WriteError(w, "Database unavailable", http.StatusServiceUnavailable)
		return
	}
	WriteSuccess(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// NotFound answers every unknown route with the JSON fallback.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	WriteError(w, "Page not found", http.StatusNotFound)
}
