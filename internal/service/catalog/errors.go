package catalog

import (
	"errors"
	"fmt"

	"github.com/AnushkaaaaS/Neighborly/internal/domain"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = fmt.Errorf("catalog: service not found: %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда услугу меняет не её провайдер
	ErrAccessDenied = fmt.Errorf("catalog: access denied: %w", domain.ErrForbidden)

	// ErrServiceHasOpenBookings возвращается при удалении услуги с бронированиями PENDING/CONFIRMED
	ErrServiceHasOpenBookings = fmt.Errorf("catalog: service has pending or confirmed bookings: %w", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("catalog: invalid input data: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("catalog: internal error")
)
