package update_booking_status

import (
	"errors"
	"fmt"

	"github.com/AnushkaaaaS/Neighborly/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("update_booking_status: booking not found: %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда инициатор не может менять статус этого бронирования
	ErrAccessDenied = fmt.Errorf("update_booking_status: access denied: %w", domain.ErrForbidden)

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = fmt.Errorf("update_booking_status: %w", domain.ErrInvalidTransition)

	// ErrConcurrentUpdate возвращается, когда статус изменился параллельно
	ErrConcurrentUpdate = fmt.Errorf("update_booking_status: booking was modified concurrently: %w", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("update_booking_status: invalid input data: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking_status: internal error")
)

// WarningCalendarSync предупреждение, когда событие календаря не поставлено в очередь
const WarningCalendarSync = "calendar sync could not be scheduled"
