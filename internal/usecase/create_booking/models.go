package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/AnushkaaaaS/Neighborly/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID      string    // ID пользователя
	ServiceID   uuid.UUID // ID услуги
	ScheduledAt time.Time // Начало слота
	Address     string    // Адрес оказания услуги
	Notes       *string   // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking *domain.Booking
}
