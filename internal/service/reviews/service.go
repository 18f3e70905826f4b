package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/AnushkaaaaS/Neighborly/internal/domain"
	bookingRepo "github.com/AnushkaaaaS/Neighborly/internal/infra/storage/booking"
	reviewRepo "github.com/AnushkaaaaS/Neighborly/internal/infra/storage/review"
	"github.com/AnushkaaaaS/Neighborly/internal/service/reviews/models"
)

// Service сервис отзывов
type Service struct {
	reviewRepo  ReviewRepository
	bookingRepo BookingRepository
	serviceRepo ServiceRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса отзывов
func NewService(
	reviewRepo ReviewRepository,
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		reviewRepo:  reviewRepo,
		bookingRepo: bookingRepo,
		serviceRepo: serviceRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Submit оценивает завершённое бронирование
// Заполняет отзыв-заглушку, созданный при завершении, или создаёт отзыв, если заглушки нет.
// Каждое бронирование можно оценить один раз.
func (s *Service) Submit(ctx context.Context, req *models.SubmitReviewRequest) (*models.ReviewResponse, error) {
	// 1. Валидация входных данных
	if err := validateSubmit(req); err != nil {
		s.logger.Warn("Submit: validation failed: %v", err)
		return nil, err
	}

	s.logger.Info("Submit: booking=%s, user=%s, rating=%d", req.BookingID, req.UserID, req.Rating)

	var result *domain.Review

	// 2. Бронирование блокируется до конца транзакции
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByIDForUpdate(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("Submit: booking id=%s not found", req.BookingID)
				return ErrBookingNotFound
			}
			s.logger.Error("Submit: failed to get booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}

		if booking.UserID != req.UserID {
			s.logger.Warn("Submit: user=%s is not the author of booking id=%s", req.UserID, booking.ID)
			return ErrAccessDenied
		}

		if booking.Status != domain.StatusCompleted {
			s.logger.Warn("Submit: booking id=%s is %s", booking.ID, booking.Status)
			return ErrBookingNotCompleted
		}

		// 2.1. Заполняем заглушку
		result, err = s.reviewRepo.FillPlaceholder(txCtx, booking.ID, req.Rating, req.Comment)
		if err == nil {
			return nil
		}
		if !errors.Is(err, reviewRepo.ErrReviewNotFound) {
			s.logger.Error("Submit: failed to fill review of booking id=%s: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to fill review: %w", ErrInternal, err)
		}

		// 2.2. Заглушки нет: либо отзыв уже оценён, либо его нужно создать
		if _, err := s.reviewRepo.GetByBookingID(txCtx, booking.ID); err == nil {
			s.logger.Warn("Submit: booking id=%s already reviewed", booking.ID)
			return ErrAlreadyReviewed
		} else if !errors.Is(err, reviewRepo.ErrReviewNotFound) {
			s.logger.Error("Submit: failed to get review of booking id=%s: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to get review: %w", ErrInternal, err)
		}

		service, err := s.serviceRepo.GetByID(txCtx, booking.ServiceID)
		if err != nil {
			s.logger.Error("Submit: failed to get service id=%s: %v", booking.ServiceID, err)
			return fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
		}

		review := domain.NewPlaceholderReview(booking, service.ProviderID)
		review.Rating = req.Rating
		review.Comment = req.Comment

		result, err = s.reviewRepo.Create(txCtx, review)
		if err != nil {
			if errors.Is(err, reviewRepo.ErrReviewExists) {
				s.logger.Warn("Submit: booking id=%s reviewed concurrently", booking.ID)
				return ErrAlreadyReviewed
			}
			s.logger.Error("Submit: failed to create review of booking id=%s: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to create review: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Submit: booking id=%s rated %d", req.BookingID, result.Rating)
	return models.FromDomainReview(result), nil
}

// ListByProvider возвращает оценённые отзывы о провайдере, новые сначала
func (s *Service) ListByProvider(ctx context.Context, providerID string) (*models.ReviewListResponse, error) {
	if strings.TrimSpace(providerID) == "" {
		return nil, fmt.Errorf("%w: providerId is required", ErrInvalidInput)
	}

	reviews, err := s.reviewRepo.ListByProvider(ctx, providerID)
	if err != nil {
		s.logger.Error("ListByProvider: repository error for provider=%s: %v", providerID, err)
		return nil, fmt.Errorf("%w: ListByProvider - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReviewList(reviews), nil
}

// ProviderRating средняя оценка провайдера без учёта неоценённых отзывов
func (s *Service) ProviderRating(ctx context.Context, providerID string) (*models.RatingResponse, error) {
	if strings.TrimSpace(providerID) == "" {
		return nil, fmt.Errorf("%w: providerId is required", ErrInvalidInput)
	}

	ratings, err := s.reviewRepo.ListRatingsByProvider(ctx, providerID)
	if err != nil {
		s.logger.Error("ProviderRating: repository error for provider=%s: %v", providerID, err)
		return nil, fmt.Errorf("%w: ProviderRating - repository error: %v", ErrInternal, err)
	}

	count := 0
	for _, r := range ratings {
		if r != domain.UnratedRating {
			count++
		}
	}

	return &models.RatingResponse{
		ProviderID:  providerID,
		Rating:      domain.AverageRating(ratings),
		ReviewCount: count,
	}, nil
}

// validateSubmit проверяет запрос и нормализует комментарий
func validateSubmit(req *models.SubmitReviewRequest) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}
	if req.BookingID == uuid.Nil {
		return fmt.Errorf("%w: bookingId is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.UserID) == "" {
		return fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}
	if err := domain.ValidateRating(req.Rating); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	req.Comment = strings.TrimSpace(req.Comment)
	if len(req.Comment) > domain.MaxCommentLength {
		return fmt.Errorf("%w: comment must be at most %d characters", ErrInvalidInput, domain.MaxCommentLength)
	}
	return nil
}
