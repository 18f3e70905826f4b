package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/AnushkaaaaS/Neighborly/internal/domain"
	"github.com/AnushkaaaaS/Neighborly/pkg/dbmetrics"
	"github.com/AnushkaaaaS/Neighborly/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"provider_id",
	"title",
	"description",
	"category",
	"duration_minutes",
	"pricing_mode",
	"base_price",
	"starting_from_price",
	"location",
	"latitude",
	"longitude",
	"service_radius_km",
	"experience_years",
	"includes_tools",
	"tags",
	"available_days",
	"available_time",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий услуг провайдеров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория услуг
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новую услугу; ID генерируется, если не задан
func (r *Repository) Create(ctx context.Context, s *domain.Service) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("services").
		Columns(
			"id",
			"provider_id",
			"title",
			"description",
			"category",
			"duration_minutes",
			"pricing_mode",
			"base_price",
			"starting_from_price",
			"location",
			"latitude",
			"longitude",
			"service_radius_km",
			"experience_years",
			"includes_tools",
			"tags",
			"available_days",
			"available_time",
			"is_active",
		).
		Values(
			s.ID,
			s.ProviderID,
			s.Title,
			s.Description,
			s.Category,
			s.DurationMinutes,
			s.PricingMode,
			s.BasePrice,
			s.StartingFromPrice,
			s.Location,
			s.Latitude,
			s.Longitude,
			s.ServiceRadiusKm,
			s.ExperienceYears,
			s.IncludesTools,
			pq.Array(nonNilTags(s.Tags)),
			pq.Array(weekdaysToStrings(s.AvailableDays)),
			s.AvailableTime,
			s.IsActive,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return s, nil
}

// GetByID получает услугу по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate получает услугу и блокирует строку до конца транзакции
// Используется при создании бронирования: все попытки забронировать одну услугу выстраиваются в очередь
func (r *Repository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	return r.getByID(ctx, id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) getByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From("services").
		Where(squirrel.Eq{"id": id})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanService(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan service: %w", ErrScanRow, err)
	}

	return s, nil
}

// List возвращает услуги по фильтру, новые сначала
func (r *Repository) List(ctx context.Context, filter domain.ServiceFilter) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From("services").
		OrderBy("created_at DESC")

	if filter.Category != nil {
		builder = builder.Where(squirrel.Eq{"category": *filter.Category})
	}
	if filter.ProviderID != nil {
		builder = builder.Where(squirrel.Eq{"provider_id": *filter.ProviderID})
	}
	if filter.OnlyActive {
		builder = builder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return services, nil
}

// Update перезаписывает редактируемые поля услуги
// Цены уже созданных бронирований не меняются - они хранят свой снимок
func (r *Repository) Update(ctx context.Context, s *domain.Service) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("services").
		Set("title", s.Title).
		Set("description", s.Description).
		Set("category", s.Category).
		Set("duration_minutes", s.DurationMinutes).
		Set("pricing_mode", s.PricingMode).
		Set("base_price", s.BasePrice).
		Set("starting_from_price", s.StartingFromPrice).
		Set("location", s.Location).
		Set("latitude", s.Latitude).
		Set("longitude", s.Longitude).
		Set("service_radius_km", s.ServiceRadiusKm).
		Set("experience_years", s.ExperienceYears).
		Set("includes_tools", s.IncludesTools).
		Set("tags", pq.Array(nonNilTags(s.Tags))).
		Set("available_days", pq.Array(weekdaysToStrings(s.AvailableDays))).
		Set("available_time", s.AvailableTime).
		Set("is_active", s.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": s.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	return s, nil
}

// Delete удаляет услугу; бронирования и отзывы удаляются каскадно
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrServiceNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanService(row rowScanner) (*domain.Service, error) {
	var (
		s    domain.Service
		days pq.StringArray
		tags pq.StringArray
	)

	err := row.Scan(
		&s.ID,
		&s.ProviderID,
		&s.Title,
		&s.Description,
		&s.Category,
		&s.DurationMinutes,
		&s.PricingMode,
		&s.BasePrice,
		&s.StartingFromPrice,
		&s.Location,
		&s.Latitude,
		&s.Longitude,
		&s.ServiceRadiusKm,
		&s.ExperienceYears,
		&s.IncludesTools,
		&tags,
		&days,
		&s.AvailableTime,
		&s.IsActive,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.Tags = []string(tags)
	if s.Tags == nil {
		s.Tags = []string{}
	}

	s.AvailableDays = make([]domain.Weekday, len(days))
	for i, d := range days {
		s.AvailableDays[i] = domain.Weekday(d)
	}

	return &s, nil
}

func weekdaysToStrings(days []domain.Weekday) []string {
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = string(d)
	}
	return out
}

// nonNilTags пустой массив вместо NULL для колонки NOT NULL
func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
