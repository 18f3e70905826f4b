package get_occupied_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AnushkaaaaS/Neighborly/internal/domain"
	serviceRepo "github.com/AnushkaaaaS/Neighborly/internal/infra/storage/service"
)

// UseCase use case для получения занятых слотов услуги на дату
type UseCase struct {
	serviceRepo ServiceRepository
	bookingRepo BookingRepository
	location    *time.Location
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	serviceRepo ServiceRepository,
	bookingRepo BookingRepository,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		serviceRepo: serviceRepo,
		bookingRepo: bookingRepo,
		location:    location,
		logger:      logger,
	}
}

// Execute возвращает время начала всех слотов, занятых не отменёнными бронированиями.
// Запрос только читает данные, повторный вызов без изменений возвращает тот же результат.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetOccupiedSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Границы дня в часовом поясе расписания
	y, m, d := req.Date.Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, uc.location)
	from, to := domain.DayBounds(date)

	uc.logger.Info("GetOccupiedSlots: service=%s, date=%s", req.ServiceID, date.Format(domain.DateFormat))

	// 3. Проверяем существование услуги
	if _, err := uc.serviceRepo.GetByID(ctx, req.ServiceID); err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetOccupiedSlots: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetOccupiedSlots: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Активные бронирования за день
	bookings, err := uc.bookingRepo.GetActiveByServiceAndPeriod(ctx, req.ServiceID, from, to)
	if err != nil {
		uc.logger.Error("GetOccupiedSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	return &Response{
		ServiceID: req.ServiceID,
		Date:      date,
		Occupied:  domain.OccupiedSlots(bookings, uc.location),
	}, nil
}
