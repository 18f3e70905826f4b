package models

import (
	"time"

	"github.com/AnushkaaaaS/Neighborly/internal/domain"
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	CallerID string  `json:"-"`
	UserID   string  `json:"userId"`
	Status   *string `json:"status,omitempty"`
}

// GetProviderBookingsRequest запрос на получение бронирований провайдера
type GetProviderBookingsRequest struct {
	CallerID   string  `json:"-"`
	ProviderID string  `json:"providerId"`
	Status     *string `json:"status,omitempty"`
}

// GetProviderCalendarRequest запрос календаря провайдера
type GetProviderCalendarRequest struct {
	CallerID   string  `json:"-"`
	ProviderID string  `json:"providerId"`
	From       *string `json:"from,omitempty"` // "2025-03-01"
	To         *string `json:"to,omitempty"`   // "2025-03-31", включительно
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	ServiceID       string    `json:"serviceId"`
	ScheduledAt     time.Time `json:"scheduledAt"`
	Date            string    `json:"date"`      // "2025-03-10"
	StartTime       string    `json:"startTime"` // "09:30:00"
	DurationMinutes int       `json:"durationMinutes"`
	Address         string    `json:"address"`
	Notes           *string   `json:"notes,omitempty"`
	QuotedPrice     int64     `json:"quotedPrice"`
	Status          string    `json:"status"`
	RejectionReason *string   `json:"rejectionReason,omitempty"`

	// Данные из связанных таблиц, заполняются в списках
	Service *ServiceSummary `json:"service,omitempty"`
	User    *UserSummary    `json:"user,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ServiceSummary краткие данные услуги
type ServiceSummary struct {
	Title      string `json:"title"`
	Category   string `json:"category"`
	ProviderID string `json:"providerId"`
}

// UserSummary краткие данные пользователя
type UserSummary struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// ProviderStatsResponse статистика провайдера
type ProviderStatsResponse struct {
	ProviderID     string  `json:"providerId"`
	UpcomingCount  int     `json:"upcomingCount"`
	CompletedCount int     `json:"completedCount"`
	Earnings       int64   `json:"earnings"`
	Rating         float64 `json:"rating"`
}

// CalendarEvent бронирование в календаре провайдера
type CalendarEvent struct {
	ID              string    `json:"id"`
	ScheduledAt     time.Time `json:"scheduledAt"`
	EndsAt          time.Time `json:"endsAt"`
	DurationMinutes int       `json:"durationMinutes"`
	ServiceID       string    `json:"serviceId"`
	ServiceTitle    string    `json:"serviceTitle"`
	ServiceCategory string    `json:"serviceCategory"`
	UserID          string    `json:"userId"`
	UserName        string    `json:"userName"`
	UserEmail       *string   `json:"userEmail,omitempty"`
	Address         string    `json:"address"`
	Status          string    `json:"status"`
}

// CalendarResponse ответ с календарём провайдера
type CalendarResponse struct {
	Bookings []CalendarEvent `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
// Дата и время начала выводятся в часовом поясе расписания
func FromDomainBooking(b *domain.Booking, loc *time.Location) *BookingResponse {
	if b == nil {
		return nil
	}
	if loc == nil {
		loc = time.UTC
	}

	local := b.ScheduledAt.In(loc)
	return &BookingResponse{
		ID:              b.ID.String(),
		UserID:          b.UserID,
		ServiceID:       b.ServiceID.String(),
		ScheduledAt:     local,
		Date:            local.Format(domain.DateFormat),
		StartTime:       b.StartTime(loc).String(),
		DurationMinutes: b.DurationMinutes,
		Address:         b.Address,
		Notes:           b.Notes,
		QuotedPrice:     b.QuotedPrice,
		Status:          string(b.Status),
		RejectionReason: b.RejectionReason,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// FromDomainBookingDetails конвертирует бронирование с данными услуги и пользователя
func FromDomainBookingDetails(d *domain.BookingDetails, loc *time.Location) *BookingResponse {
	if d == nil {
		return nil
	}

	resp := FromDomainBooking(&d.Booking, loc)
	resp.Service = &ServiceSummary{
		Title:      d.ServiceTitle,
		Category:   string(d.ServiceCategory),
		ProviderID: d.ProviderID,
	}
	if d.UserName != nil || d.UserEmail != nil {
		resp.User = &UserSummary{Name: d.UserName, Email: d.UserEmail}
	}
	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.BookingDetails, loc *time.Location) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBookingDetails(booking, loc); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// FromDomainProviderStats конвертирует статистику провайдера
func FromDomainProviderStats(providerID string, s *domain.ProviderStats) *ProviderStatsResponse {
	return &ProviderStatsResponse{
		ProviderID:     providerID,
		UpcomingCount:  s.UpcomingCount,
		CompletedCount: s.CompletedCount,
		Earnings:       s.Earnings,
		Rating:         s.Rating,
	}
}

// defaultUserName имя пользователя в календаре, если оно не указано
const defaultUserName = "User"

// FromDomainCalendar конвертирует бронирования в события календаря
func FromDomainCalendar(bookings []*domain.BookingDetails, loc *time.Location) *CalendarResponse {
	if loc == nil {
		loc = time.UTC
	}

	resp := &CalendarResponse{
		Bookings: make([]CalendarEvent, 0, len(bookings)),
	}

	for _, d := range bookings {
		if d == nil {
			continue
		}
		name := defaultUserName
		if d.UserName != nil && *d.UserName != "" {
			name = *d.UserName
		}
		resp.Bookings = append(resp.Bookings, CalendarEvent{
			ID:              d.ID.String(),
			ScheduledAt:     d.ScheduledAt.In(loc),
			EndsAt:          d.EndsAt().In(loc),
			DurationMinutes: d.DurationMinutes,
			ServiceID:       d.ServiceID.String(),
			ServiceTitle:    d.ServiceTitle,
			ServiceCategory: string(d.ServiceCategory),
			UserID:          d.UserID,
			UserName:        name,
			UserEmail:       d.UserEmail,
			Address:         d.Address,
			Status:          string(d.Status),
		})
	}

	return resp
}
