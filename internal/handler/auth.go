package handler

import (
	"encoding/json"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/jefta/portfolio-api/internal/payload"
	"github.com/jefta/portfolio-api/internal/usecase"
	sharedvalidator "github.com/jefta/portfolio-api/shared/validator"
)

// AuthHandler serves the authentication endpoints.
type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	validate    *validator.Validate
	trans       ut.Translator
	logger      *zerolog.Logger
	production  bool
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(
	authUsecase usecase.AuthUsecase,
	validate *validator.Validate,
	trans ut.Translator,
	logger *zerolog.Logger,
	production bool,
) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		validate:    validate,
		trans:       trans,
		logger:      logger,
		production:  production,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req payload.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		respondMessage(w, http.StatusBadRequest, sharedvalidator.FirstError(err, h.trans))
		return
	}

	result, err := h.authUsecase.Register(r.Context(), usecase.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(w, h.logger, h.production, err)
		return
	}

	respondJSON(w, http.StatusCreated, payload.AuthResponse{
		Success: true,
		Message: "User registered successfully",
		Token:   result.Token,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req payload.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		respondMessage(w, http.StatusBadRequest, sharedvalidator.FirstError(err, h.trans))
		return
	}

	result, err := h.authUsecase.Login(r.Context(), usecase.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(w, h.logger, h.production, err)
		return
	}

	respondJSON(w, http.StatusOK, payload.AuthResponse{
		Success: true,
		Message: "Login successful",
		Token:   result.Token,
	})
}

// Me echoes the identity asserted by the verified token. No user record
// is fetched.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	respondJSON(w, http.StatusOK, payload.MeResponse{
		Success: true,
		User: payload.AuthUser{
			ID:    claims.Subject,
			Email: claims.Email,
			Name:  claims.Name,
		},
	})
}
