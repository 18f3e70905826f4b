package get_provider_bookings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/AnushkaaaaS/Neighborly/internal/api/handlers"
	"github.com/AnushkaaaaS/Neighborly/internal/api/middleware"
	"github.com/AnushkaaaaS/Neighborly/internal/service/bookings"
	"github.com/AnushkaaaaS/Neighborly/internal/service/bookings/models"
)

const (
	msgMissingUserID = "missing user id"
	msgInvalidFilter = "invalid status filter"
	msgForbidden     = "access denied"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/bookings?status=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /providers/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.GetProviderBookingsRequest{
		CallerID:   callerID,
		ProviderID: mux.Vars(r)["providerId"],
		Status:     handlers.QueryString(r, "status"),
	}

	result, err := h.service.GetProviderBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /providers/{id}/bookings - Access denied: provider_id=%s, caller_id=%s", req.ProviderID, callerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /providers/{id}/bookings - Invalid input: %v", err)
			handlers.RespondValidationError(w, msgInvalidFilter, err)

		default:
			h.logger.Error("GET /providers/{id}/bookings - Failed to list bookings: provider_id=%s, error=%v", req.ProviderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /providers/{id}/bookings - Bookings retrieved: provider_id=%s, count=%d", req.ProviderID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
