package create_booking

import (
	"errors"
	"fmt"

	"github.com/AnushkaaaaS/Neighborly/internal/domain"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = fmt.Errorf("create_booking: service not found: %w", domain.ErrNotFound)

	// ErrServiceInactive возвращается, когда услуга снята с публикации
	ErrServiceInactive = fmt.Errorf("create_booking: service is not active: %w", domain.ErrConflict)

	// ErrDateNotOffered возвращается, когда дата в прошлом или услуга не работает в этот день недели
	ErrDateNotOffered = fmt.Errorf("create_booking: service is not offered on this date: %w", domain.ErrValidation)

	// ErrInvalidTimeSlot возвращается, когда время не совпадает с началом ни одного слота
	ErrInvalidTimeSlot = fmt.Errorf("create_booking: invalid time slot: %w", domain.ErrValidation)

	// ErrSlotNotAvailable возвращается, когда слот пересекается с активным бронированием
	ErrSlotNotAvailable = fmt.Errorf("create_booking: slot already booked: %w", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("create_booking: invalid input data: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
