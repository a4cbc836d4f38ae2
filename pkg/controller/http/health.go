package http

import (
	"net/http"

	"techlens/pkg/domain/model"
	"techlens/pkg/domain/types"
)

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	status := &model.HealthStatus{
		Status:  "healthy",
		Service: "techlens",
		Version: types.Version,
	}

	writeJSON(w, http.StatusOK, status)
}
