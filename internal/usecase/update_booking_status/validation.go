package update_booking_status

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/AnushkaaaaS/Neighborly/internal/domain"
)

// validateRequest валидирует запрос и возвращает целевой статус
func validateRequest(req *Request) (domain.BookingStatus, error) {
	if req == nil {
		return "", fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if req.BookingID == uuid.Nil {
		return "", fmt.Errorf("%w: bookingId is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ActorID) == "" {
		return "", fmt.Errorf("%w: actor is required", ErrInvalidInput)
	}

	status, err := domain.ParseBookingStatus(req.Status)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// PENDING только начальный статус, вернуть в него нельзя
	if status == domain.StatusPending {
		return "", fmt.Errorf("%w: status %s cannot be set", ErrInvalidInput, status)
	}

	if req.Reason != nil && len(*req.Reason) > domain.MaxReasonLength {
		return "", fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	return status, nil
}

// rejectionReason причина отказа, по умолчанию DefaultRejectionReason
func rejectionReason(target domain.BookingStatus, reason *string) *string {
	if target != domain.StatusRejected {
		return nil
	}
	if reason != nil {
		if trimmed := strings.TrimSpace(*reason); trimmed != "" {
			return &trimmed
		}
	}
	def := domain.DefaultRejectionReason
	return &def
}

// resolveActor определяет роль инициатора по отношению к бронированию
func resolveActor(actorID string, booking *domain.Booking, service *domain.Service) (domain.Actor, bool) {
	switch {
	case service.IsOwnedBy(actorID):
		return domain.ActorProvider, true
	case booking.UserID == actorID:
		return domain.ActorUser, true
	default:
		return "", false
	}
}
