package create_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/AnushkaaaaS/Neighborly/internal/api/handlers"
	"github.com/AnushkaaaaS/Neighborly/internal/api/middleware"
	"github.com/AnushkaaaaS/Neighborly/internal/domain"
	createBooking "github.com/AnushkaaaaS/Neighborly/internal/usecase/create_booking"
)

const (
	msgMissingUserID      = "missing user id"
	msgUserMismatch       = "bookings can only be created for yourself"
	msgInvalidRequestBody = "invalid request body"
	msgInvalidBooking     = "invalid booking data"
	msgInvalidScheduledAt = "invalid scheduledAt, expected RFC3339 or YYYY-MM-DDTHH:MM"
	msgServiceNotFound    = "service not found"
	msgServiceInactive    = "service is not accepting bookings"
	msgDateNotOffered     = "service is not offered on the selected date"
	msgInvalidTimeSlot    = "selected time is not a valid slot"
	msgSlotNotAvailable   = "slot already booked"
)

type Handler struct {
	useCase  CreateBookingUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase CreateBookingUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: user_id=%s, error=%v", userID, err)
		if errors.Is(err, domain.ErrValidation) {
			handlers.RespondValidationError(w, msgInvalidBooking, err)
			return
		}
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.UserID != "" && req.UserID != userID {
		h.logger.Warn("POST /bookings - User mismatch: body=%s, caller=%s", req.UserID, userID)
		handlers.RespondForbidden(w, msgUserMismatch)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID, h.location)
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid scheduledAt: user_id=%s, value=%q", userID, req.ScheduledAt)
		handlers.RespondBadRequest(w, msgInvalidScheduledAt)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: user_id=%s, service_id=%s, scheduled_at=%s",
				userID, req.ServiceID, useCaseReq.ScheduledAt.Format(time.RFC3339))
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%s", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrServiceInactive):
			h.logger.Warn("POST /bookings - Service inactive: service_id=%s", req.ServiceID)
			handlers.RespondConflict(w, msgServiceInactive)

		case errors.Is(err, createBooking.ErrDateNotOffered):
			h.logger.Warn("POST /bookings - Date not offered: service_id=%s, scheduled_at=%s",
				req.ServiceID, useCaseReq.ScheduledAt.Format(time.RFC3339))
			handlers.RespondBadRequest(w, msgDateNotOffered)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings - Invalid time slot: service_id=%s, scheduled_at=%s",
				req.ServiceID, useCaseReq.ScheduledAt.Format(time.RFC3339))
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /bookings - Invalid booking: user_id=%s, error=%v", userID, err)
			handlers.RespondValidationError(w, msgInvalidBooking, err)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%s, service_id=%s, error=%v",
				userID, req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%s, user_id=%s, service_id=%s",
		result.Booking.ID, userID, req.ServiceID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result, h.location))
}
