package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/AnushkaaaaS/Neighborly/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ServiceID uuid.UUID // ID услуги
	Date      time.Time // Календарная дата (учитываются только год, месяц и день)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	ServiceID       uuid.UUID          // ID услуги
	Date            time.Time          // Начало дня в часовом поясе расписания
	Offered         bool               // Работает ли услуга в этот день
	DurationMinutes int                // Длительность слота
	Slots           []types.TimeString // Свободные слоты по возрастанию
}
