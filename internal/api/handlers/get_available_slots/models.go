package get_available_slots

import (
	"github.com/AnushkaaaaS/Neighborly/internal/domain"
	getAvailableSlots "github.com/AnushkaaaaS/Neighborly/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	ServiceID       string   `json:"serviceId"`
	Date            string   `json:"date"`
	Offered         bool     `json:"offered"`
	DurationMinutes int      `json:"durationMinutes"`
	Slots           []string `json:"slots"` // "HH:MM:SS"
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = slot.String()
	}

	return &AvailableSlotsResponse{
		ServiceID:       resp.ServiceID.String(),
		Date:            resp.Date.Format(domain.DateFormat),
		Offered:         resp.Offered,
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}
