package get_provider_stats

import (
	"context"

	"github.com/AnushkaaaaS/Neighborly/internal/service/bookings/models"
)

type BookingService interface {
	GetProviderStats(ctx context.Context, callerID, providerID string) (*models.ProviderStatsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
