package submit_review

import (
	"errors"
	"net/http"

	"github.com/AnushkaaaaS/Neighborly/internal/api/handlers"
	"github.com/AnushkaaaaS/Neighborly/internal/api/middleware"
	"github.com/AnushkaaaaS/Neighborly/internal/domain"
	"github.com/AnushkaaaaS/Neighborly/internal/service/reviews"
	"github.com/AnushkaaaaS/Neighborly/internal/service/reviews/models"
)

const (
	msgMissingUserID      = "missing user id"
	msgInvalidRequestBody = "invalid request body"
	msgInvalidReview      = "invalid review"
	msgBookingNotFound    = "booking not found"
	msgForbidden          = "only the customer of the booking can review it"
	msgNotCompleted       = "booking must be completed before it can be reviewed"
	msgAlreadyReviewed    = "booking already reviewed"
)

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

// Handle POST /api/v1/reviews
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reviews - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.SubmitReviewRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /reviews - Invalid request body: user_id=%s, error=%v", userID, err)
		if errors.Is(err, domain.ErrValidation) {
			handlers.RespondValidationError(w, msgInvalidReview, err)
			return
		}
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// userId в теле необязателен, но если указан, должен совпадать с аутентифицированным
	if req.UserID != "" && req.UserID != userID {
		h.logger.Warn("POST /reviews - User mismatch: body=%s, caller=%s", req.UserID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}
	req.UserID = userID

	result, err := h.service.Submit(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, reviews.ErrBookingNotFound):
			h.logger.Warn("POST /reviews - Booking not found: booking_id=%s", req.BookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, reviews.ErrAccessDenied):
			h.logger.Warn("POST /reviews - Access denied: booking_id=%s, user_id=%s", req.BookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reviews.ErrBookingNotCompleted):
			h.logger.Warn("POST /reviews - Booking not completed: booking_id=%s", req.BookingID)
			handlers.RespondConflict(w, msgNotCompleted)

		case errors.Is(err, reviews.ErrAlreadyReviewed):
			h.logger.Warn("POST /reviews - Already reviewed: booking_id=%s", req.BookingID)
			handlers.RespondConflict(w, msgAlreadyReviewed)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /reviews - Invalid review: booking_id=%s, error=%v", req.BookingID, err)
			handlers.RespondValidationError(w, msgInvalidReview, err)

		default:
			h.logger.Error("POST /reviews - Failed to submit review: booking_id=%s, error=%v", req.BookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reviews - Review submitted: review_id=%s, booking_id=%s, rating=%d",
		result.ID, req.BookingID, result.Rating)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
