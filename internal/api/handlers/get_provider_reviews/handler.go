package get_provider_reviews

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/AnushkaaaaS/Neighborly/internal/api/handlers"
	"github.com/AnushkaaaaS/Neighborly/internal/service/reviews"
)

const msgInvalidProviderID = "invalid provider id"

type Handler struct {
	service ReviewService
	logger  Logger
}

func NewHandler(service ReviewService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/reviews
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID := mux.Vars(r)["providerId"]

	result, err := h.service.ListByProvider(r.Context(), providerID)
	if err != nil {
		switch {
		case errors.Is(err, reviews.ErrInvalidInput):
			h.logger.Warn("GET /providers/{id}/reviews - Invalid provider ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidProviderID)

		default:
			h.logger.Error("GET /providers/{id}/reviews - Failed to list reviews: provider_id=%s, error=%v",
				providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /providers/{id}/reviews - Reviews listed: provider_id=%s, count=%d", providerID, len(result.Reviews))
	handlers.RespondJSON(w, http.StatusOK, result)
}
