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

// ContactHandler serves the public contact-form endpoint.
type ContactHandler struct {
	contactUsecase usecase.ContactUsecase
	validate       *validator.Validate
	trans          ut.Translator
	logger         *zerolog.Logger
}

// NewContactHandler creates a new ContactHandler instance.
func NewContactHandler(
	contactUsecase usecase.ContactUsecase,
	validate *validator.Validate,
	trans ut.Translator,
	logger *zerolog.Logger,
) *ContactHandler {
	return &ContactHandler{
		contactUsecase: contactUsecase,
		validate:       validate,
		trans:          trans,
		logger:         logger,
	}
}

func (h *ContactHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req payload.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		respondMessage(w, http.StatusBadRequest, sharedvalidator.FirstError(err, h.trans))
		return
	}

	if err := h.contactUsecase.SendContactMessage(usecase.ContactParams{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}); err != nil {
		h.logger.Error().Err(err).Msg("failed to relay contact message")
		respondMessage(w, http.StatusInternalServerError, "Failed to send message. Please try again later.")
		return
	}

	respondMessage(w, http.StatusOK, "Message sent successfully!")
}
