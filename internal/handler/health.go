package handler

import (
	"net/http"
	"time"

	"github.com/jefta/portfolio-api/internal/payload"
)

type healthResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	TS      string `json:"ts"`
}

// Health is a pure liveness probe; it checks no dependencies.
func Health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, healthResponse{
		Success: true,
		Message: "API healthy",
		TS:      time.Now().UTC().Format(time.RFC3339),
	})
}

type apiInfoResponse struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

// APIInfo describes the API surface at its root path.
func APIInfo(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, apiInfoResponse{
		Success: true,
		Message: "Portfolio Backend API",
		Version: "1.0.0",
		Endpoints: map[string]string{
			"auth":     "/api/auth",
			"projects": "/api/projects",
			"contact":  "/api/contact",
			"health":   "/api/health",
		},
	})
}

// NotFound is the JSON 404 fallback.
func NotFound(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusNotFound, payload.Response{
		Success: false,
		Message: "Route " + r.Method + " " + r.URL.Path + " not found",
	})
}
