package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/AnushkaaaaS/Neighborly/internal/domain"
	"github.com/AnushkaaaaS/Neighborly/pkg/dbmetrics"
	"github.com/AnushkaaaaS/Neighborly/pkg/pgerrors"
	"github.com/AnushkaaaaS/Neighborly/pkg/psqlbuilder"
)

var columns = []string{
	"r.id",
	"r.booking_id",
	"r.user_id",
	"r.provider_id",
	"r.rating",
	"r.comment",
	"r.created_at",
	"r.updated_at",
}

// Repository репозиторий отзывов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория отзывов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreatePlaceholder создаёт неоценённый отзыв при завершении бронирования
// Если отзыв на бронирование уже есть, ничего не делает и возвращает created=false
func (r *Repository) CreatePlaceholder(ctx context.Context, review *domain.Review) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("reviews").
		Columns("id", "booking_id", "user_id", "provider_id", "rating", "comment").
		Values(review.ID, review.BookingID, review.UserID, review.ProviderID, domain.UnratedRating, "").
		Suffix("ON CONFLICT (booking_id) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: CreatePlaceholder - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: CreatePlaceholder - execute insert: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: CreatePlaceholder - get rows affected: %w", ErrExecQuery, err)
	}

	return rowsAffected == 1, nil
}

// Create сохраняет заполненный отзыв
// Второй отзыв на то же бронирование отклоняется уникальным индексом - ErrReviewExists
func (r *Repository) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("reviews").
		Columns("id", "booking_id", "user_id", "provider_id", "rating", "comment").
		Values(review.ID, review.BookingID, review.UserID, review.ProviderID, review.Rating, review.Comment).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&review.CreatedAt, &review.UpdatedAt)
	if err != nil {
		if pgerrors.IsUniqueViolation(err) {
			return nil, ErrReviewExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return review, nil
}

// FillPlaceholder заполняет неоценённый отзыв бронирования
// Если отзыва нет или он уже оценён - возвращает ErrReviewNotFound
func (r *Repository) FillPlaceholder(ctx context.Context, bookingID uuid.UUID, rating int, comment string) (*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reviews r").
		Set("rating", rating).
		Set("comment", comment).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"r.booking_id": bookingID, "r.rating": domain.UnratedRating}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FillPlaceholder - build update query: %v", ErrBuildQuery, err)
	}

	var review domain.Review
	err = executor.QueryRowContext(ctx, query, args...).Scan(reviewDest(&review)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FillPlaceholder - execute update: %w", ErrExecQuery, err)
	}

	return &review, nil
}

// GetByBookingID получает отзыв бронирования
func (r *Repository) GetByBookingID(ctx context.Context, bookingID uuid.UUID) (*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("reviews r").
		Where(squirrel.Eq{"r.booking_id": bookingID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - build select query: %v", ErrBuildQuery, err)
	}

	var review domain.Review
	err = executor.QueryRowContext(ctx, query, args...).Scan(reviewDest(&review)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - scan review: %w", ErrScanRow, err)
	}

	return &review, nil
}

// ListByProvider возвращает оценённые отзывы об услугах провайдера, новые сначала
func (r *Repository) ListByProvider(ctx context.Context, providerID string) ([]*domain.ReviewDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(append(append([]string{}, columns...), "u.name", "s.title")...).
		From("reviews r").
		Join("bookings b ON b.id = r.booking_id").
		Join("services s ON s.id = b.service_id").
		LeftJoin("users u ON u.id = r.user_id").
		Where(squirrel.Eq{"s.provider_id": providerID}).
		Where(squirrel.NotEq{"r.rating": domain.UnratedRating}).
		OrderBy("r.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByProvider - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByProvider - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	reviews := make([]*domain.ReviewDetails, 0)
	for rows.Next() {
		var d domain.ReviewDetails
		dest := append(reviewDest(&d.Review), &d.ReviewerName, &d.ServiceTitle)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%w: ListByProvider - scan row: %w", ErrScanRow, err)
		}
		reviews = append(reviews, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByProvider - rows error: %w", ErrScanRow, err)
	}

	return reviews, nil
}

// ListRatingsByProvider возвращает оценки всех отзывов об услугах провайдера, включая неоценённые (0)
func (r *Repository) ListRatingsByProvider(ctx context.Context, providerID string) ([]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("r.rating").
		From("reviews r").
		Join("bookings b ON b.id = r.booking_id").
		Join("services s ON s.id = b.service_id").
		Where(squirrel.Eq{"s.provider_id": providerID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListRatingsByProvider - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRatingsByProvider - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	ratings := make([]int, 0)
	for rows.Next() {
		var rating int
		if err := rows.Scan(&rating); err != nil {
			return nil, fmt.Errorf("%w: ListRatingsByProvider - scan rating: %w", ErrScanRow, err)
		}
		ratings = append(ratings, rating)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListRatingsByProvider - rows error: %w", ErrScanRow, err)
	}

	return ratings, nil
}

func reviewDest(r *domain.Review) []interface{} {
	return []interface{}{
		&r.ID,
		&r.BookingID,
		&r.UserID,
		&r.ProviderID,
		&r.Rating,
		&r.Comment,
		&r.CreatedAt,
		&r.UpdatedAt,
	}
}
