package booking

import (
	"errors"
	"fmt"

	"github.com/AnushkaaaaS/Neighborly/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("booking.repository: %w", domain.ErrNotFound)

	// ErrSlotNotAvailable возвращается при нарушении уникальности активного слота (service_id, scheduled_at)
	ErrSlotNotAvailable = fmt.Errorf("booking.repository: slot not available: %w", domain.ErrConflict)

	// ErrStatusChanged возвращается, когда статус изменился между чтением и обновлением
	ErrStatusChanged = fmt.Errorf("booking.repository: status changed concurrently: %w", domain.ErrConflict)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
