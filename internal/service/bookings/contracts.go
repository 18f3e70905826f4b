package bookings

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/AnushkaaaaS/Neighborly/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetDetailsByID(ctx context.Context, id uuid.UUID) (*domain.BookingDetails, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.BookingDetails, error)
	GetProviderStats(ctx context.Context, providerID string, now time.Time) (*domain.ProviderStats, error)
}

// ReviewRepository интерфейс репозитория отзывов
type ReviewRepository interface {
	ListRatingsByProvider(ctx context.Context, providerID string) ([]int, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
