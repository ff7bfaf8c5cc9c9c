package handler

import (
	"encoding/json"
	"net/http"
)

// Handler answers the serverless root route with a liveness payload.
func Handler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "cart-api",
		"path":    r.URL.Path,
	})
}
