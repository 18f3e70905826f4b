package get_provider_calendar

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
	msgInvalidRange  = "invalid date range"
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

// Handle GET /api/v1/providers/{providerId}/calendar?from=YYYY-MM-DD&to=YYYY-MM-DD
// Подтверждённые и завершённые бронирования по возрастанию времени начала
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /providers/{id}/calendar - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.GetProviderCalendarRequest{
		CallerID:   callerID,
		ProviderID: mux.Vars(r)["providerId"],
		From:       handlers.QueryString(r, "from"),
		To:         handlers.QueryString(r, "to"),
	}

	result, err := h.service.GetProviderCalendar(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /providers/{id}/calendar - Access denied: provider_id=%s, caller_id=%s", req.ProviderID, callerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /providers/{id}/calendar - Invalid input: %v", err)
			handlers.RespondValidationError(w, msgInvalidRange, err)

		default:
			h.logger.Error("GET /providers/{id}/calendar - Failed to get calendar: provider_id=%s, error=%v", req.ProviderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /providers/{id}/calendar - Calendar retrieved: provider_id=%s, count=%d", req.ProviderID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
