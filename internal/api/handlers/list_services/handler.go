package list_services

import (
	"errors"
	"net/http"

	"github.com/AnushkaaaaS/Neighborly/internal/api/handlers"
	"github.com/AnushkaaaaS/Neighborly/internal/service/catalog"
)

const msgInvalidCategory = "invalid category"

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

// Handle GET /api/v1/services?category=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	category := handlers.QueryString(r, "category")

	result, err := h.service.List(r.Context(), category)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("GET /services - Invalid category: %v", err)
			handlers.RespondValidationError(w, msgInvalidCategory, err)

		default:
			h.logger.Error("GET /services - Failed to list services: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /services - Services listed: count=%d", len(result.Services))
	handlers.RespondJSON(w, http.StatusOK, result)
}
