package get_provider_calendar

import (
	"context"

	"github.com/AnushkaaaaS/Neighborly/internal/service/bookings/models"
)

type BookingService interface {
	GetProviderCalendar(ctx context.Context, req *models.GetProviderCalendarRequest) (*models.CalendarResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
