package create_service

import (
	"errors"
	"net/http"

	"github.com/AnushkaaaaS/Neighborly/internal/api/handlers"
	"github.com/AnushkaaaaS/Neighborly/internal/api/middleware"
	"github.com/AnushkaaaaS/Neighborly/internal/domain"
	"github.com/AnushkaaaaS/Neighborly/internal/service/catalog/models"
)

const (
	msgMissingUserID      = "missing user id"
	msgInvalidRequestBody = "invalid request body"
	msgInvalidService     = "invalid service data"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/services
// Провайдером услуги становится аутентифицированный пользователь
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /services - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.ServiceRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /services - Invalid request body: provider_id=%s, error=%v", providerID, err)
		if errors.Is(err, domain.ErrValidation) {
			handlers.RespondValidationError(w, msgInvalidService, err)
			return
		}
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.ProviderID = providerID

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /services - Invalid service: provider_id=%s, error=%v", providerID, err)
			handlers.RespondValidationError(w, msgInvalidService, err)

		default:
			h.logger.Error("POST /services - Failed to create service: provider_id=%s, error=%v", providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /services - Service created: service_id=%s, provider_id=%s", result.ID, providerID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
