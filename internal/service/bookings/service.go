package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AnushkaaaaS/Neighborly/internal/domain"
	bookingRepo "github.com/AnushkaaaaS/Neighborly/internal/infra/storage/booking"
	"github.com/AnushkaaaaS/Neighborly/internal/service/bookings/models"
)

// Service сервис для чтения бронирований и статистики провайдера
type Service struct {
	bookingRepo  BookingRepository
	reviewRepo   ReviewRepository
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	reviewRepo ReviewRepository,
	location *time.Location,
	logger Logger,
) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		bookingRepo:  bookingRepo,
		reviewRepo:   reviewRepo,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Видеть бронирование могут только его пользователь и провайдер услуги
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, callerID string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for caller=%s", id, callerID)

	if id == uuid.Nil {
		return nil, fmt.Errorf("%w: bookingId is required", ErrInvalidInput)
	}

	details, err := s.bookingRepo.GetDetailsByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if callerID == "" || (details.UserID != callerID && details.ProviderID != callerID) {
		s.logger.Warn("GetByID: access denied for caller=%s to booking id=%s", callerID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBookingDetails(details, s.location), nil
}

// GetUserBookings получает бронирования пользователя, новые сверху
// Список доступен только самому пользователю
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%s, status=%v", req.UserID, req.Status)

	if err := checkOwner(req.CallerID, req.UserID); err != nil {
		s.logger.Warn("GetUserBookings: caller=%s may not list bookings of user=%s", req.CallerID, req.UserID)
		return nil, err
	}

	status, err := parseStatus(req.Status)
	if err != nil {
		s.logger.Warn("GetUserBookings: %v", err)
		return nil, err
	}

	bookings, err := s.bookingRepo.List(ctx, domain.BookingsFilter{UserID: &req.UserID, Statuses: status})
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: fetched %d bookings for user=%s", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings, s.location), nil
}

// GetProviderBookings получает бронирования всех услуг провайдера, новые сверху
// Список доступен только самому провайдеру
func (s *Service) GetProviderBookings(ctx context.Context, req *models.GetProviderBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetProviderBookings: fetching bookings for provider=%s, status=%v", req.ProviderID, req.Status)

	if err := checkOwner(req.CallerID, req.ProviderID); err != nil {
		s.logger.Warn("GetProviderBookings: caller=%s may not list bookings of provider=%s", req.CallerID, req.ProviderID)
		return nil, err
	}

	status, err := parseStatus(req.Status)
	if err != nil {
		s.logger.Warn("GetProviderBookings: %v", err)
		return nil, err
	}

	bookings, err := s.bookingRepo.List(ctx, domain.BookingsFilter{ProviderID: &req.ProviderID, Statuses: status})
	if err != nil {
		s.logger.Error("GetProviderBookings: repository error for provider=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: GetProviderBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetProviderBookings: fetched %d bookings for provider=%s", len(bookings), req.ProviderID)
	return models.FromDomainBookingList(bookings, s.location), nil
}

// GetProviderCalendar возвращает подтверждённые и завершённые бронирования провайдера для календаря
// Сортировка по времени начала, опционально только в диапазоне дат [from, to] включительно
func (s *Service) GetProviderCalendar(ctx context.Context, req *models.GetProviderCalendarRequest) (*models.CalendarResponse, error) {
	s.logger.Info("GetProviderCalendar: provider=%s, from=%v, to=%v", req.ProviderID, req.From, req.To)

	if err := checkOwner(req.CallerID, req.ProviderID); err != nil {
		s.logger.Warn("GetProviderCalendar: caller=%s may not read calendar of provider=%s", req.CallerID, req.ProviderID)
		return nil, err
	}

	filter := domain.BookingsFilter{
		ProviderID: &req.ProviderID,
		Statuses:   domain.CalendarStatuses,
		Order:      domain.OldestFirst,
	}

	from, to, err := s.parseRange(req.From, req.To)
	if err != nil {
		s.logger.Warn("GetProviderCalendar: %v", err)
		return nil, err
	}
	filter.From, filter.To = from, to

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("GetProviderCalendar: repository error for provider=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: GetProviderCalendar - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetProviderCalendar: fetched %d events for provider=%s", len(bookings), req.ProviderID)
	return models.FromDomainCalendar(bookings, s.location), nil
}

// GetProviderStats считает предстоящие и завершённые бронирования, заработок и рейтинг провайдера
func (s *Service) GetProviderStats(ctx context.Context, callerID, providerID string) (*models.ProviderStatsResponse, error) {
	s.logger.Info("GetProviderStats: provider=%s", providerID)

	if err := checkOwner(callerID, providerID); err != nil {
		s.logger.Warn("GetProviderStats: caller=%s may not read stats of provider=%s", callerID, providerID)
		return nil, err
	}

	stats, err := s.bookingRepo.GetProviderStats(ctx, providerID, s.timeProvider.Now())
	if err != nil {
		s.logger.Error("GetProviderStats: repository error for provider=%s: %v", providerID, err)
		return nil, fmt.Errorf("%w: GetProviderStats - repository error: %v", ErrInternal, err)
	}

	ratings, err := s.reviewRepo.ListRatingsByProvider(ctx, providerID)
	if err != nil {
		s.logger.Error("GetProviderStats: failed to get ratings for provider=%s: %v", providerID, err)
		return nil, fmt.Errorf("%w: GetProviderStats - failed to get ratings: %v", ErrInternal, err)
	}
	stats.Rating = domain.AverageRating(ratings)

	return models.FromDomainProviderStats(providerID, stats), nil
}

// Вспомогательные методы

// checkOwner проверяет, что список запрашивает его владелец
func checkOwner(callerID, ownerID string) error {
	if strings.TrimSpace(ownerID) == "" {
		return fmt.Errorf("%w: owner id is required", ErrInvalidInput)
	}
	if callerID != ownerID {
		return ErrAccessDenied
	}
	return nil
}

// parseStatus разбирает необязательный фильтр статуса
func parseStatus(raw *string) ([]domain.BookingStatus, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	status, err := domain.ParseBookingStatus(*raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return []domain.BookingStatus{status}, nil
}

// parseRange переводит даты YYYY-MM-DD в интервал [начало from, начало дня после to)
func (s *Service) parseRange(rawFrom, rawTo *string) (*time.Time, *time.Time, error) {
	var from, to *time.Time

	if rawFrom != nil {
		d, err := domain.ParseDate(*rawFrom, s.location)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: from: %v", ErrInvalidInput, err)
		}
		from = &d
	}

	if rawTo != nil {
		d, err := domain.ParseDate(*rawTo, s.location)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: to: %v", ErrInvalidInput, err)
		}
		end := d.AddDate(0, 0, 1)
		to = &end
	}

	if from != nil && to != nil && !from.Before(*to) {
		return nil, nil, fmt.Errorf("%w: from must not be after to", ErrInvalidInput)
	}

	return from, to, nil
}
