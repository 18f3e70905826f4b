package reviews

import (
	"errors"
	"fmt"

	"github.com/AnushkaaaaS/Neighborly/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("reviews: booking not found: %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда отзыв оставляет не автор бронирования
	ErrAccessDenied = fmt.Errorf("reviews: access denied: %w", domain.ErrForbidden)

	// ErrBookingNotCompleted возвращается, когда бронирование ещё не завершено
	ErrBookingNotCompleted = fmt.Errorf("reviews: booking is not completed: %w", domain.ErrConflict)

	// ErrAlreadyReviewed возвращается при повторной оценке
	ErrAlreadyReviewed = fmt.Errorf("reviews: booking already reviewed: %w", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("reviews: invalid input data: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("reviews: internal error")
)
