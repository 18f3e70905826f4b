package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AnushkaaaaS/Neighborly/internal/domain"
	serviceRepo "github.com/AnushkaaaaS/Neighborly/internal/infra/storage/service"
	"github.com/AnushkaaaaS/Neighborly/pkg/types"
)

// UseCase use case для получения свободных слотов услуги на дату
type UseCase struct {
	serviceRepo  ServiceRepository
	bookingRepo  BookingRepository
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
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
		serviceRepo:  serviceRepo,
		bookingRepo:  bookingRepo,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	y, m, d := req.Date.Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, uc.location)

	uc.logger.Info("GetAvailableSlots: service=%s, date=%s", req.ServiceID, date.Format(domain.DateFormat))

	// 2. Получаем услугу
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	resp := &Response{
		ServiceID:       service.ID,
		Date:            date,
		DurationMinutes: service.DurationMinutes,
		Slots:           []types.TimeString{},
	}

	// 3. Прошедший день, неактивная услуга или выходной - слотов нет
	if !service.IsActive || !service.IsDateOffered(date, uc.timeProvider.Now()) {
		uc.logger.Info("GetAvailableSlots: service id=%s is not offered on %s", service.ID, date.Format(domain.DateFormat))
		return resp, nil
	}
	resp.Offered = true

	// 4. Все слоты дня
	all := service.EnumerateSlots(date)
	if len(all) == 0 {
		return resp, nil
	}

	// 5. Исключаем слоты, пересекающиеся с активными бронированиями.
	// Учитывается сохранённая длительность бронирований, как при создании.
	from, to := domain.DayBounds(date)
	length := time.Duration(service.DurationMinutes) * time.Minute
	bookings, err := uc.bookingRepo.FindOverlapping(ctx, service.ID, from, to.Add(length))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	resp.Slots = domain.FreeSlots(all, date, service.DurationMinutes, bookings)

	uc.logger.Info("GetAvailableSlots: found %d available slots of %d", len(resp.Slots), len(all))

	return resp, nil
}
