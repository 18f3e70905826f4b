package get_occupied_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/AnushkaaaaS/Neighborly/pkg/types"
)

// Request модель запроса занятых слотов
type Request struct {
	ServiceID uuid.UUID // ID услуги
	Date      time.Time // Календарная дата (учитываются только год, месяц и день)
}

// Response модель ответа со списком занятых слотов
type Response struct {
	ServiceID uuid.UUID          // ID услуги
	Date      time.Time          // Начало дня в часовом поясе расписания
	Occupied  []types.TimeString // Время начала занятых слотов, по возрастанию, без повторов
}
