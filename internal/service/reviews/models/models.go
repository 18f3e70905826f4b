package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/AnushkaaaaS/Neighborly/internal/domain"
)

// Request модели

// SubmitReviewRequest запрос на оценку завершённого бронирования
type SubmitReviewRequest struct {
	BookingID uuid.UUID `json:"bookingId" validate:"required"`
	UserID    string    `json:"userId,omitempty"`
	Rating    int       `json:"rating" validate:"required,min=1,max=5"`
	Comment   string    `json:"comment" validate:"max=2000"`
}

// Response модели

// ReviewResponse ответ с данными отзыва
type ReviewResponse struct {
	ID           string    `json:"id"`
	BookingID    string    `json:"bookingId"`
	UserID       string    `json:"userId"`
	ProviderID   string    `json:"providerId"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	ReviewerName *string   `json:"reviewerName,omitempty"`
	ServiceTitle string    `json:"serviceTitle,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ReviewListResponse ответ со списком отзывов
type ReviewListResponse struct {
	Reviews []ReviewResponse `json:"reviews"`
}

// RatingResponse средний рейтинг провайдера
type RatingResponse struct {
	ProviderID  string  `json:"providerId"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"reviewCount"`
}

// Методы конвертации

// FromDomainReview конвертирует domain модель в DTO
func FromDomainReview(r *domain.Review) *ReviewResponse {
	if r == nil {
		return nil
	}
	return &ReviewResponse{
		ID:         r.ID.String(),
		BookingID:  r.BookingID.String(),
		UserID:     r.UserID,
		ProviderID: r.ProviderID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

// FromDomainReviewList конвертирует список отзывов с данными автора и услуги
func FromDomainReviewList(reviews []*domain.ReviewDetails) *ReviewListResponse {
	resp := &ReviewListResponse{
		Reviews: make([]ReviewResponse, 0, len(reviews)),
	}
	for _, d := range reviews {
		r := FromDomainReview(&d.Review)
		r.ReviewerName = d.ReviewerName
		r.ServiceTitle = d.ServiceTitle
		resp.Reviews = append(resp.Reviews, *r)
	}
	return resp
}
