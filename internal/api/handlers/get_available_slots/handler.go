package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/AnushkaaaaS/Neighborly/internal/api/handlers"
	"github.com/AnushkaaaaS/Neighborly/internal/domain"
	getAvailableSlots "github.com/AnushkaaaaS/Neighborly/internal/usecase/get_available_slots"
)

const (
	msgInvalidServiceID = "invalid service id"
	msgMissingDate      = "date is required"
	msgInvalidDate      = "invalid date format, expected YYYY-MM-DD"
	msgServiceNotFound  = "service not found"
)

type Handler struct {
	useCase  GetAvailableSlotsUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/services/{serviceId}/available-slots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID, err := handlers.PathUUID(r, "serviceId")
	if err != nil {
		h.logger.Warn("GET /services/{id}/available-slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	dateStr := handlers.QueryString(r, "date")
	if dateStr == nil {
		h.logger.Warn("GET /services/{id}/available-slots - Missing date: service_id=%s", serviceID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := domain.ParseDate(*dateStr, h.location)
	if err != nil {
		h.logger.Warn("GET /services/{id}/available-slots - Invalid date: service_id=%s, date=%q", serviceID, *dateStr)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{ServiceID: serviceID, Date: date})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /services/{id}/available-slots - Service not found: service_id=%s", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("GET /services/{id}/available-slots - Invalid input: service_id=%s, error=%v", serviceID, err)
			handlers.RespondValidationError(w, msgInvalidDate, err)

		default:
			h.logger.Error("GET /services/{id}/available-slots - Failed to get slots: service_id=%s, error=%v",
				serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /services/{id}/available-slots - Slots retrieved: service_id=%s, date=%s, offered=%t, count=%d",
		serviceID, *dateStr, result.Offered, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
