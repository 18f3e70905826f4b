package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/AnushkaaaaS/Neighborly/internal/domain"
	serviceRepo "github.com/AnushkaaaaS/Neighborly/internal/infra/storage/service"
	"github.com/AnushkaaaaS/Neighborly/internal/service/catalog/models"
)

// Service сервис каталога услуг
type Service struct {
	serviceRepo ServiceRepository
	bookingRepo BookingRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(
	serviceRepo ServiceRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		serviceRepo: serviceRepo,
		bookingRepo: bookingRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Create создает услугу от имени провайдера req.ProviderID
func (s *Service) Create(ctx context.Context, req *models.ServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Create: creating service %q for provider=%s", req.Title, req.ProviderID)

	// 1. Конвертируем и валидируем
	service, err := s.toValidDomain(req)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	// 2. Сохраняем
	created, err := s.serviceRepo.Create(ctx, service)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created service id=%s", created.ID)
	return models.FromDomainService(created), nil
}

// Update перезаписывает услугу, доступно только её провайдеру
// Уже созданные бронирования сохраняют свои цену и длительность
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *models.ServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Update: updating service id=%s by provider=%s", id, req.ProviderID)

	service, err := s.toValidDomain(req)
	if err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	var updated *domain.Service
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := s.lockOwned(txCtx, "Update", id, req.ProviderID)
		if err != nil {
			return err
		}

		service.ID = current.ID
		service.CreatedAt = current.CreatedAt

		updated, err = s.serviceRepo.Update(txCtx, service)
		if err != nil {
			if errors.Is(err, serviceRepo.ErrServiceNotFound) {
				return ErrServiceNotFound
			}
			s.logger.Error("Update: repository error for service id=%s: %v", id, err)
			return fmt.Errorf("%w: Update - repository error: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Update: updated service id=%s", id)
	return models.FromDomainService(updated), nil
}

// Delete удаляет услугу, доступно только её провайдеру
// Пока есть бронирования PENDING/CONFIRMED, удаление запрещено.
// Строка услуги блокируется, поэтому новое бронирование не появится между проверкой и удалением.
func (s *Service) Delete(ctx context.Context, id uuid.UUID, callerID string) error {
	s.logger.Info("Delete: deleting service id=%s by provider=%s", id, callerID)

	if id == uuid.Nil {
		return fmt.Errorf("%w: serviceId is required", ErrInvalidInput)
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.lockOwned(txCtx, "Delete", id, callerID); err != nil {
			return err
		}

		open, err := s.bookingRepo.CountOpenByService(txCtx, id)
		if err != nil {
			s.logger.Error("Delete: failed to count bookings of service id=%s: %v", id, err)
			return fmt.Errorf("%w: Delete - failed to count bookings: %w", ErrInternal, err)
		}
		if open > 0 {
			s.logger.Warn("Delete: service id=%s has %d open bookings", id, open)
			return ErrServiceHasOpenBookings
		}

		if err := s.serviceRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, serviceRepo.ErrServiceNotFound) {
				return ErrServiceNotFound
			}
			s.logger.Error("Delete: repository error for service id=%s: %v", id, err)
			return fmt.Errorf("%w: Delete - repository error: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Delete: deleted service id=%s", id)
	return nil
}

// GetByID получает услугу по ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.ServiceResponse, error) {
	service, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("GetByID: service id=%s not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetByID: repository error for service id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainService(service), nil
}

// List возвращает активные услуги, опционально одной категории
func (s *Service) List(ctx context.Context, category *string) (*models.ServiceListResponse, error) {
	filter := domain.ServiceFilter{OnlyActive: true}

	if category != nil && strings.TrimSpace(*category) != "" {
		c, err := domain.ParseCategory(*category)
		if err != nil {
			s.logger.Warn("List: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		filter.Category = &c
	}

	services, err := s.serviceRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainServiceList(services), nil
}

// ListByProvider возвращает услуги провайдера
// Неактивные услуги видит только сам провайдер
func (s *Service) ListByProvider(ctx context.Context, providerID, callerID string) (*models.ServiceListResponse, error) {
	if strings.TrimSpace(providerID) == "" {
		return nil, fmt.Errorf("%w: providerId is required", ErrInvalidInput)
	}

	filter := domain.ServiceFilter{
		ProviderID: &providerID,
		OnlyActive: callerID != providerID,
	}

	services, err := s.serviceRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListByProvider: repository error for provider=%s: %v", providerID, err)
		return nil, fmt.Errorf("%w: ListByProvider - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainServiceList(services), nil
}

// Вспомогательные методы

func (s *Service) toValidDomain(req *models.ServiceRequest) (*domain.Service, error) {
	service, err := req.ToDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := service.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return service, nil
}

// lockOwned блокирует строку услуги и проверяет владельца
func (s *Service) lockOwned(ctx context.Context, op string, id uuid.UUID, callerID string) (*domain.Service, error) {
	service, err := s.serviceRepo.GetByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("%s: service id=%s not found", op, id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("%s: repository error for service id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}

	if !service.IsOwnedBy(callerID) {
		s.logger.Warn("%s: caller=%s is not the provider of service id=%s", op, callerID, id)
		return nil, ErrAccessDenied
	}

	return service, nil
}
