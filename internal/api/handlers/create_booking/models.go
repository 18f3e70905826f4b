package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/AnushkaaaaS/Neighborly/internal/domain"
	"github.com/AnushkaaaaS/Neighborly/internal/service/bookings/models"
	createBooking "github.com/AnushkaaaaS/Neighborly/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	UserID      string    `json:"userId,omitempty"`
	ServiceID   uuid.UUID `json:"serviceId" validate:"required"`
	ScheduledAt string    `json:"scheduledAt" validate:"required"` // RFC3339 или локальное "2025-03-10T09:30"
	Address     string    `json:"address" validate:"required,max=500"`
	Notes       *string   `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Время без смещения трактуется в часовом поясе расписания
func (r *CreateBookingRequest) ToUseCaseRequest(userID string, loc *time.Location) (*createBooking.Request, error) {
	scheduledAt, err := domain.ParseScheduledAt(r.ScheduledAt, loc)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:      userID,
		ServiceID:   r.ServiceID,
		ScheduledAt: scheduledAt,
		Address:     r.Address,
		Notes:       r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response, loc *time.Location) *models.BookingResponse {
	return models.FromDomainBooking(resp.Booking, loc)
}
