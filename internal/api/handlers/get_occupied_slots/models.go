package get_occupied_slots

import (
	"github.com/AnushkaaaaS/Neighborly/internal/domain"
	getOccupiedSlots "github.com/AnushkaaaaS/Neighborly/internal/usecase/get_occupied_slots"
)

// OccupiedSlotsResponse HTTP response model
type OccupiedSlotsResponse struct {
	ServiceID     string   `json:"serviceId"`
	Date          string   `json:"date"`
	OccupiedSlots []string `json:"occupiedSlots"` // "HH:MM:SS"
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getOccupiedSlots.Response) *OccupiedSlotsResponse {
	slots := make([]string, len(resp.Occupied))
	for i, slot := range resp.Occupied {
		slots[i] = slot.String()
	}

	return &OccupiedSlotsResponse{
		ServiceID:     resp.ServiceID.String(),
		Date:          resp.Date.Format(domain.DateFormat),
		OccupiedSlots: slots,
	}
}
