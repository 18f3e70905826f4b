package update_booking_status

import (
	"time"

	"github.com/AnushkaaaaS/Neighborly/internal/service/bookings/models"
	updateStatus "github.com/AnushkaaaaS/Neighborly/internal/usecase/update_booking_status"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string  `json:"status" validate:"required"`
	Reason *string `json:"rejectionReason,omitempty" validate:"omitempty,max=500"`
}

// UpdateStatusResponse бронирование после смены статуса
type UpdateStatusResponse struct {
	*models.BookingResponse
	PreviousStatus string   `json:"previousStatus"`
	Warnings       []string `json:"warnings,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateStatus.Response, loc *time.Location) *UpdateStatusResponse {
	return &UpdateStatusResponse{
		BookingResponse: models.FromDomainBooking(resp.Booking, loc),
		PreviousStatus:  string(resp.Previous),
		Warnings:        resp.Warnings,
	}
}
