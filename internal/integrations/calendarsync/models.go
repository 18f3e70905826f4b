package calendarsync

import "time"

// Event событие календаря для подтверждённого бронирования
type Event struct {
	BookingID   string    `json:"bookingId"`
	ProviderID  string    `json:"providerId"`
	UserID      string    `json:"userId"`
	Summary     string    `json:"summary"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	TimeZone    string    `json:"timeZone"`
}

// EventResponse ответ календаря
type EventResponse struct {
	EventID string `json:"eventId"`
}
