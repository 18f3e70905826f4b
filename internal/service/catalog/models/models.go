package models

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/AnushkaaaaS/Neighborly/internal/domain"
	"github.com/AnushkaaaaS/Neighborly/pkg/types"
)

// Request модели

// ServiceRequest данные услуги для создания и редактирования
// При редактировании услуга перезаписывается целиком
type ServiceRequest struct {
	ProviderID        string                  `json:"-"`
	Title             string                  `json:"title" validate:"required,max=200"`
	Description       *string                 `json:"description,omitempty"`
	Category          string                  `json:"category" validate:"required"`
	DurationMinutes   *int                    `json:"durationMinutes,omitempty" validate:"omitempty,min=5,max=480"`
	PricingMode       string                  `json:"pricingMode" validate:"required,oneof=FIXED CUSTOM fixed custom"`
	BasePrice         *int64                  `json:"basePrice,omitempty" validate:"omitempty,min=0"`
	StartingFromPrice *int64                  `json:"startingFromPrice,omitempty" validate:"omitempty,min=0"`
	Location          string                  `json:"location" validate:"required"`
	Latitude          *float64                `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude         *float64                `json:"longitude,omitempty" validate:"omitempty,longitude"`
	ServiceRadiusKm   *float64                `json:"serviceRadius,omitempty" validate:"omitempty,min=0"`
	ExperienceYears   *int                    `json:"experienceYears,omitempty" validate:"omitempty,min=0,max=80"`
	IncludesTools     bool                    `json:"includesTools"`
	Tags              []string                `json:"tags,omitempty" validate:"omitempty,max=20,dive,max=50"`
	AvailableDays     []string                `json:"availableDays"`
	AvailableTime     map[string][]TimeWindow `json:"availableTime,omitempty"`
	IsActive          *bool                   `json:"isActive,omitempty"`
}

// TimeWindow окно доступности "HH:MM" или "HH:MM:SS"
type TimeWindow struct {
	From string `json:"from" validate:"required"`
	To   string `json:"to" validate:"required"`
}

// ToDomain конвертирует запрос в domain модель
// Длительность по умолчанию DefaultDurationMinutes, услуга по умолчанию активна
func (r *ServiceRequest) ToDomain() (*domain.Service, error) {
	category, err := domain.ParseCategory(r.Category)
	if err != nil {
		return nil, err
	}

	mode, err := domain.ParsePricingMode(r.PricingMode)
	if err != nil {
		return nil, err
	}

	days := make([]domain.Weekday, 0, len(r.AvailableDays))
	for _, raw := range r.AvailableDays {
		day, err := domain.ParseWeekday(raw)
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}

	availability := make(domain.Availability, len(r.AvailableTime))
	for rawDay, windows := range r.AvailableTime {
		day, err := domain.ParseWeekday(rawDay)
		if err != nil {
			return nil, err
		}
		for _, w := range windows {
			from, err := types.NewTimeStringFromString(w.From)
			if err != nil {
				return nil, fmt.Errorf("%w: %s from %q", domain.ErrInvalidWindow, day, w.From)
			}
			to, err := types.NewTimeStringFromString(w.To)
			if err != nil {
				return nil, fmt.Errorf("%w: %s to %q", domain.ErrInvalidWindow, day, w.To)
			}
			availability[day] = append(availability[day], domain.TimeWindow{From: from, To: to})
		}
	}

	duration := domain.DefaultDurationMinutes
	if r.DurationMinutes != nil {
		duration = *r.DurationMinutes
	}

	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}

	var description *string
	if r.Description != nil {
		if d := strings.TrimSpace(*r.Description); d != "" {
			description = &d
		}
	}

	return &domain.Service{
		ProviderID:        r.ProviderID,
		Title:             strings.TrimSpace(r.Title),
		Description:       description,
		Category:          category,
		DurationMinutes:   duration,
		PricingMode:       mode,
		BasePrice:         r.BasePrice,
		StartingFromPrice: r.StartingFromPrice,
		Location:          strings.TrimSpace(r.Location),
		Latitude:          r.Latitude,
		Longitude:         r.Longitude,
		ServiceRadiusKm:   r.ServiceRadiusKm,
		ExperienceYears:   r.ExperienceYears,
		IncludesTools:     r.IncludesTools,
		Tags:              domain.NormalizeTags(r.Tags),
		AvailableDays:     days,
		AvailableTime:     availability,
		IsActive:          active,
	}, nil
}

// Response модели

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID                string                  `json:"id"`
	ProviderID        string                  `json:"providerId"`
	Title             string                  `json:"title"`
	Description       *string                 `json:"description,omitempty"`
	Category          string                  `json:"category"`
	DurationMinutes   int                     `json:"durationMinutes"`
	PricingMode       string                  `json:"pricingMode"`
	BasePrice         *int64                  `json:"basePrice,omitempty"`
	StartingFromPrice *int64                  `json:"startingFromPrice,omitempty"`
	Location          string                  `json:"location"`
	Latitude          *float64                `json:"latitude,omitempty"`
	Longitude         *float64                `json:"longitude,omitempty"`
	ServiceRadiusKm   *float64                `json:"serviceRadius,omitempty"`
	ExperienceYears   *int                    `json:"experienceYears,omitempty"`
	IncludesTools     bool                    `json:"includesTools"`
	Tags              []string                `json:"tags"`
	AvailableDays     []string                `json:"availableDays"`
	AvailableTime     map[string][]TimeWindow `json:"availableTime"`
	IsActive          bool                    `json:"isActive"`
	CreatedAt         time.Time               `json:"createdAt"`
	UpdatedAt         time.Time               `json:"updatedAt"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// Методы конвертации

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}

	days := make([]string, 0, len(s.AvailableDays))
	for _, d := range s.AvailableDays {
		days = append(days, string(d))
	}

	tags := make([]string, len(s.Tags))
	copy(tags, s.Tags)

	availability := make(map[string][]TimeWindow, len(s.AvailableTime))
	for day, windows := range s.AvailableTime {
		sorted := make([]domain.TimeWindow, len(windows))
		copy(sorted, windows)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].From.IsBefore(sorted[j].From) })

		out := make([]TimeWindow, 0, len(sorted))
		for _, w := range sorted {
			out = append(out, TimeWindow{From: w.From.String(), To: w.To.String()})
		}
		availability[string(day)] = out
	}

	return &ServiceResponse{
		ID:                s.ID.String(),
		ProviderID:        s.ProviderID,
		Title:             s.Title,
		Description:       s.Description,
		Category:          string(s.Category),
		DurationMinutes:   s.DurationMinutes,
		PricingMode:       string(s.PricingMode),
		BasePrice:         s.BasePrice,
		StartingFromPrice: s.StartingFromPrice,
		Location:          s.Location,
		Latitude:          s.Latitude,
		Longitude:         s.Longitude,
		ServiceRadiusKm:   s.ServiceRadiusKm,
		ExperienceYears:   s.ExperienceYears,
		IncludesTools:     s.IncludesTools,
		Tags:              tags,
		AvailableDays:     days,
		AvailableTime:     availability,
		IsActive:          s.IsActive,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

// FromDomainServiceList конвертирует список domain моделей в DTO
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{
		Services: make([]ServiceResponse, 0, len(services)),
	}
	for _, s := range services {
		if r := FromDomainService(s); r != nil {
			resp.Services = append(resp.Services, *r)
		}
	}
	return resp
}
