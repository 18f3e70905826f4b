package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AnushkaaaaS/Neighborly/internal/domain"
	bookingRepo "github.com/AnushkaaaaS/Neighborly/internal/infra/storage/booking"
	serviceRepo "github.com/AnushkaaaaS/Neighborly/internal/infra/storage/service"
	"github.com/AnushkaaaaS/Neighborly/pkg/types"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	serviceRepo  ServiceRepository
	txManager    TransactionManager
	metrics      Metrics
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	txManager TransactionManager,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		serviceRepo:  serviceRepo,
		txManager:    txManager,
		metrics:      metrics,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка пересечений и вставка выполняются в сериализуемой транзакции
// под блокировкой строки услуги, поэтому из параллельных запросов на один слот
// успешен ровно один.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateBooking: user=%s, service=%s, scheduledAt=%s",
		req.UserID, req.ServiceID, req.ScheduledAt.Format(time.RFC3339))

	// 2. Проверяем существование услуги до открытия транзакции
	if _, err := uc.serviceRepo.GetByID(ctx, req.ServiceID); err != nil {
		return nil, uc.mapServiceError(req, err)
	}

	now := uc.timeProvider.Now()

	var result *domain.Booking

	// 3. Сериализуемая транзакция, повторяется менеджером при 40001
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Блокируем строку услуги
		service, err := uc.serviceRepo.GetByIDForUpdate(txCtx, req.ServiceID)
		if err != nil {
			return uc.mapServiceError(req, err)
		}

		if !service.IsActive {
			uc.logger.Warn("CreateBooking: service id=%s is not active", service.ID)
			return ErrServiceInactive
		}

		// 3.2. Дата и время в часовом поясе расписания
		local := req.ScheduledAt.In(uc.location)
		if !service.IsDateOffered(local, now) {
			uc.logger.Warn("CreateBooking: service id=%s is not offered on %s", service.ID, local.Format(domain.DateFormat))
			return ErrDateNotOffered
		}

		startTime := types.NewTimeString(local)
		if local.Nanosecond() != 0 || !service.IsSlotStart(local, startTime) {
			uc.logger.Warn("CreateBooking: %s is not a slot start of service id=%s", startTime, service.ID)
			return fmt.Errorf("%w: %s is not a slot start", ErrInvalidTimeSlot, startTime)
		}

		start := req.ScheduledAt.UTC()
		end := start.Add(time.Duration(service.DurationMinutes) * time.Minute)

		// 3.3. Проверка пересечений с активными бронированиями
		overlapping, err := uc.bookingRepo.FindOverlapping(txCtx, service.ID, start, end)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to find overlapping bookings: %v", err)
			return fmt.Errorf("%w: failed to find overlapping bookings: %w", ErrInternal, err)
		}
		if len(overlapping) > 0 {
			uc.logger.Warn("CreateBooking: slot %s of service id=%s overlaps %d booking(s)",
				startTime, service.ID, len(overlapping))
			return ErrSlotNotAvailable
		}

		// 3.4. Фиксируем цену и длительность на момент создания
		price, err := service.QuotedPrice()
		if err != nil {
			uc.logger.Error("CreateBooking: service id=%s has no price: %v", service.ID, err)
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}

		booking := &domain.Booking{
			UserID:          req.UserID,
			ServiceID:       service.ID,
			ScheduledAt:     start,
			DurationMinutes: service.DurationMinutes,
			Address:         req.Address,
			Notes:           req.Notes,
			QuotedPrice:     price,
			Status:          domain.StatusPending,
		}

		// 3.5. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotNotAvailable) {
				uc.logger.Warn("CreateBooking: slot %s of service id=%s taken concurrently", startTime, service.ID)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrSlotNotAvailable) {
			uc.metrics.IncBookingConflict()
			return nil, ErrSlotNotAvailable
		}
		if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.metrics.IncBookingCreated()
	uc.logger.Info("CreateBooking: successfully created booking id=%s", result.ID)

	return &Response{Booking: result}, nil
}

func (uc *UseCase) mapServiceError(req *Request, err error) error {
	if errors.Is(err, serviceRepo.ErrServiceNotFound) {
		uc.logger.Warn("CreateBooking: service id=%s not found", req.ServiceID)
		return ErrServiceNotFound
	}
	uc.logger.Error("CreateBooking: failed to get service id=%s: %v", req.ServiceID, err)
	return fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
}
