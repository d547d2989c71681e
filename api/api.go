// Package api holds the HTTP plumbing shared by every route: caller
// authentication, request timeouts and request metrics.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/models"
)

// HealthCheckHandler reports liveness
func HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(models.HealthCheckResponse{Alive: true})
}
