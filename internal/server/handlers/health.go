package handlers

import (
	"net/http"
)

type healthResponse struct {
	Status   string `json:"status"`
	Families int    `json:"families"`
}

// Health returns the server health status and the number of registered families.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if h.registry.Len() == 0 {
		status = "degraded"
	}
	h.writeJSON(w, http.StatusOK, healthResponse{Status: status, Families: h.registry.Len()})
}
