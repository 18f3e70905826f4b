package delete_service

import (
	"errors"
	"net/http"

	"github.com/AnushkaaaaS/Neighborly/internal/api/handlers"
	"github.com/AnushkaaaaS/Neighborly/internal/api/middleware"
	"github.com/AnushkaaaaS/Neighborly/internal/service/catalog"
)

const (
	msgMissingUserID    = "missing user id"
	msgInvalidServiceID = "invalid service id"
	msgServiceNotFound  = "service not found"
	msgForbidden        = "access denied"
	msgHasOpenBookings  = "service has pending or confirmed bookings"
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

// Handle DELETE /api/v1/services/{serviceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /services/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	serviceID, err := handlers.PathUUID(r, "serviceId")
	if err != nil {
		h.logger.Warn("DELETE /services/{id} - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	if err := h.service.Delete(r.Context(), serviceID, callerID); err != nil {
		switch {
		case errors.Is(err, catalog.ErrServiceNotFound):
			h.logger.Warn("DELETE /services/{id} - Service not found: service_id=%s", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, catalog.ErrAccessDenied):
			h.logger.Warn("DELETE /services/{id} - Access denied: service_id=%s, user_id=%s", serviceID, callerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, catalog.ErrServiceHasOpenBookings):
			h.logger.Warn("DELETE /services/{id} - Service has open bookings: service_id=%s", serviceID)
			handlers.RespondConflict(w, msgHasOpenBookings)

		default:
			h.logger.Error("DELETE /services/{id} - Failed to delete service: service_id=%s, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /services/{id} - Service deleted: service_id=%s, user_id=%s", serviceID, callerID)
	handlers.RespondNoContent(w)
}
