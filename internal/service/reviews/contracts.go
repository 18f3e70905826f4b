package reviews

import (
	"context"

	"github.com/google/uuid"

	"github.com/AnushkaaaaS/Neighborly/internal/domain"
)

// ReviewRepository интерфейс репозитория отзывов
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) (*domain.Review, error)
	FillPlaceholder(ctx context.Context, bookingID uuid.UUID, rating int, comment string) (*domain.Review, error)
	GetByBookingID(ctx context.Context, bookingID uuid.UUID) (*domain.Review, error)
	ListByProvider(ctx context.Context, providerID string) ([]*domain.ReviewDetails, error)
	ListRatingsByProvider(ctx context.Context, providerID string) ([]int, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
