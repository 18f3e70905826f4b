package update_booking_status

import (
	"github.com/google/uuid"

	"github.com/AnushkaaaaS/Neighborly/internal/domain"
)

// Request модель запроса на смену статуса
type Request struct {
	BookingID uuid.UUID // ID бронирования
	ActorID   string    // ID инициатора (пользователь или провайдер)
	Status    string    // Целевой статус
	Reason    *string   // Причина отказа (только для REJECTED)
}

// Response модель ответа с обновлённым бронированием
type Response struct {
	Booking  *domain.Booking
	Previous domain.BookingStatus
	Warnings []string // Некритичные проблемы после фиксации транзакции
}
