package update_booking_status

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AnushkaaaaS/Neighborly/internal/domain"
	bookingRepo "github.com/AnushkaaaaS/Neighborly/internal/infra/storage/booking"
	"github.com/AnushkaaaaS/Neighborly/internal/integrations/calendarsync"
)

// UseCase use case для смены статуса бронирования
type UseCase struct {
	bookingRepo BookingRepository
	serviceRepo ServiceRepository
	reviewRepo  ReviewRepository
	txManager   TransactionManager
	calendar    CalendarDispatcher
	metrics     Metrics
	location    *time.Location
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
// calendar может быть nil, если синхронизация календаря выключена
func NewUseCase(
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	reviewRepo ReviewRepository,
	txManager TransactionManager,
	calendar CalendarDispatcher,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		bookingRepo: bookingRepo,
		serviceRepo: serviceRepo,
		reviewRepo:  reviewRepo,
		txManager:   txManager,
		calendar:    calendar,
		metrics:     metrics,
		location:    location,
		logger:      logger,
	}
}

// Execute переводит бронирование в новый статус
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	target, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("UpdateBookingStatus: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("UpdateBookingStatus: booking=%s, actor=%s, status=%s", req.BookingID, req.ActorID, target)

	var (
		updated  *domain.Booking
		previous domain.BookingStatus
		service  *domain.Service
	)

	// 2. Транзакция: блокировка, проверки, CAS-обновление, отзыв-заглушка
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByIDForUpdate(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("UpdateBookingStatus: booking id=%s not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBookingStatus: failed to get booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}
		previous = booking.Status

		service, err = uc.serviceRepo.GetByID(txCtx, booking.ServiceID)
		if err != nil {
			uc.logger.Error("UpdateBookingStatus: failed to get service id=%s: %v", booking.ServiceID, err)
			return fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
		}

		// 2.1. Права инициатора
		actor, ok := resolveActor(req.ActorID, booking, service)
		if !ok || !domain.CanActorSet(actor, target) {
			uc.logger.Warn("UpdateBookingStatus: actor=%s may not set %s on booking id=%s", req.ActorID, target, booking.ID)
			return ErrAccessDenied
		}

		// 2.2. Допустимость перехода
		if !booking.Status.CanTransitionTo(target) {
			uc.logger.Warn("UpdateBookingStatus: transition %s -> %s is not allowed for booking id=%s",
				booking.Status, target, booking.ID)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, target)
		}

		// 2.3. Compare-and-set по предыдущему статусу
		updated, err = uc.bookingRepo.UpdateStatus(txCtx, booking.ID, booking.Status, target, rejectionReason(target, req.Reason))
		if err != nil {
			if errors.Is(err, bookingRepo.ErrStatusChanged) {
				uc.logger.Warn("UpdateBookingStatus: booking id=%s changed concurrently", booking.ID)
				return ErrConcurrentUpdate
			}
			uc.logger.Error("UpdateBookingStatus: failed to update booking id=%s: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update status: %w", ErrInternal, err)
		}

		// 2.4. Завершение открывает отзыв в той же транзакции
		if target == domain.StatusCompleted {
			created, err := uc.reviewRepo.CreatePlaceholder(txCtx, domain.NewPlaceholderReview(updated, service.ProviderID))
			if err != nil {
				uc.logger.Error("UpdateBookingStatus: failed to create review placeholder for booking id=%s: %v", booking.ID, err)
				return fmt.Errorf("%w: failed to create review placeholder: %w", ErrInternal, err)
			}
			if !created {
				uc.logger.Info("UpdateBookingStatus: review for booking id=%s already exists", booking.ID)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.IncStatusTransition(string(previous), string(updated.Status))
	uc.logger.Info("UpdateBookingStatus: booking id=%s %s -> %s", updated.ID, previous, updated.Status)

	resp := &Response{Booking: updated, Previous: previous, Warnings: []string{}}

	// 3. После фиксации - синхронизация календаря, не блокирует ответ
	if updated.Status == domain.StatusConfirmed && uc.calendar != nil {
		if err := uc.calendar.Dispatch(uc.calendarEvent(updated, service)); err != nil {
			uc.logger.Warn("UpdateBookingStatus: calendar sync for booking id=%s not scheduled: %v", updated.ID, err)
			resp.Warnings = append(resp.Warnings, WarningCalendarSync)
		}
	}

	return resp, nil
}

func (uc *UseCase) calendarEvent(b *domain.Booking, service *domain.Service) calendarsync.Event {
	event := calendarsync.Event{
		BookingID:  b.ID.String(),
		ProviderID: service.ProviderID,
		UserID:     b.UserID,
		Summary:    service.Title,
		Location:   b.Address,
		Start:      b.ScheduledAt.In(uc.location),
		End:        b.EndsAt().In(uc.location),
		TimeZone:   uc.location.String(),
	}
	if b.Notes != nil {
		event.Description = *b.Notes
	}
	return event
}
