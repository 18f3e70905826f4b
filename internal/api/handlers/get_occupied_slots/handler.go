package get_occupied_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/AnushkaaaaS/Neighborly/internal/api/handlers"
	"github.com/AnushkaaaaS/Neighborly/internal/domain"
	getOccupiedSlots "github.com/AnushkaaaaS/Neighborly/internal/usecase/get_occupied_slots"
)

const (
	msgInvalidServiceID = "invalid service id"
	msgMissingDate      = "date is required"
	msgInvalidDate      = "invalid date format, expected YYYY-MM-DD"
	msgServiceNotFound  = "service not found"
)

type Handler struct {
	useCase  GetOccupiedSlotsUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase GetOccupiedSlotsUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/services/{serviceId}/occupied-slots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID, err := handlers.PathUUID(r, "serviceId")
	if err != nil {
		h.logger.Warn("GET /services/{id}/occupied-slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	dateStr := handlers.QueryString(r, "date")
	if dateStr == nil {
		h.logger.Warn("GET /services/{id}/occupied-slots - Missing date: service_id=%s", serviceID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := domain.ParseDate(*dateStr, h.location)
	if err != nil {
		h.logger.Warn("GET /services/{id}/occupied-slots - Invalid date: service_id=%s, date=%q", serviceID, *dateStr)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getOccupiedSlots.Request{ServiceID: serviceID, Date: date})
	if err != nil {
		switch {
		case errors.Is(err, getOccupiedSlots.ErrServiceNotFound):
			h.logger.Warn("GET /services/{id}/occupied-slots - Service not found: service_id=%s", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("GET /services/{id}/occupied-slots - Invalid input: service_id=%s, error=%v", serviceID, err)
			handlers.RespondValidationError(w, msgInvalidDate, err)

		default:
			h.logger.Error("GET /services/{id}/occupied-slots - Failed to get occupied slots: service_id=%s, error=%v",
				serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /services/{id}/occupied-slots - Occupied slots retrieved: service_id=%s, date=%s, count=%d",
		serviceID, *dateStr, len(result.Occupied))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
