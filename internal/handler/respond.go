package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/jefta/portfolio-api/internal/payload"
	"github.com/jefta/portfolio-api/internal/usecase"
	"github.com/jefta/portfolio-api/shared/mongodb"
	"github.com/jefta/portfolio-api/shared/storage"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, payload.Response{
		Success: status < 400,
		Message: message,
	})
}

// respondError is the centralized error normalizer: known error shapes map
// to client statuses, everything else becomes a generic 500 that leaks no
// internals in production mode.
func respondError(w http.ResponseWriter, logger *zerolog.Logger, production bool, err error) {
	switch {
	case errors.Is(err, usecase.ErrTitleRequired):
		respondMessage(w, http.StatusBadRequest, "Title is required")
	case errors.Is(err, storage.ErrImageTooLarge):
		respondMessage(w, http.StatusBadRequest, "File too large. Maximum size is 5MB")
	case errors.Is(err, storage.ErrUnsupportedImageType):
		respondMessage(w, http.StatusUnsupportedMediaType, "Invalid file type. Only JPEG, PNG, WebP and GIF are allowed")
	case errors.Is(err, usecase.ErrUserAlreadyExists):
		respondMessage(w, http.StatusConflict, "A user with this email already exists")
	case errors.Is(err, usecase.ErrInvalidCredentials):
		respondMessage(w, http.StatusUnauthorized, "Email or password is incorrect")
	case errors.Is(err, usecase.ErrProjectNotFound):
		respondMessage(w, http.StatusNotFound, "Project not found")
	case errors.Is(err, mongodb.ErrNotConnected):
		logger.Error().Err(err).Msg("document store unreachable")
		respondMessage(w, http.StatusInternalServerError, "Database connection failed")
	default:
		logger.Error().Err(err).Msg("unhandled error")
		message := "Internal server error"
		if !production {
			message = err.Error()
		}
		respondMessage(w, http.StatusInternalServerError, message)
	}
}
