package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/AnushkaaaaS/Neighborly/internal/domain"
	"github.com/AnushkaaaaS/Neighborly/pkg/dbmetrics"
	"github.com/AnushkaaaaS/Neighborly/pkg/pgerrors"
	"github.com/AnushkaaaaS/Neighborly/pkg/psqlbuilder"
)

var columns = []string{
	"b.id",
	"b.user_id",
	"b.service_id",
	"b.scheduled_at",
	"b.duration_minutes",
	"b.address",
	"b.notes",
	"b.quoted_price",
	"b.status",
	"b.rejection_reason",
	"b.created_at",
	"b.updated_at",
}

var detailColumns = append(append([]string{}, columns...),
	"s.title",
	"s.category",
	"s.provider_id",
	"u.name",
	"u.email",
)

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её.
// Нарушение частичного уникального индекса bookings_active_slot_uidx означает,
// что слот уже занят параллельным запросом - возвращается ErrSlotNotAvailable.
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"user_id",
			"service_id",
			"scheduled_at",
			"duration_minutes",
			"address",
			"notes",
			"quoted_price",
			"status",
		).
		Values(
			b.ID,
			b.UserID,
			b.ServiceID,
			b.ScheduledAt,
			b.DurationMinutes,
			b.Address,
			b.Notes,
			b.QuotedPrice,
			b.Status,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if pgerrors.IsUniqueViolation(err) {
			return nil, ErrSlotNotAvailable
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return b, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate получает бронирование и блокирует строку до конца транзакции
func (r *Repository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	return r.getByID(ctx, id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) getByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From("bookings b").
		Where(squirrel.Eq{"b.id": id})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var b domain.Booking
	err = executor.QueryRowContext(ctx, query, args...).Scan(bookingDest(&b)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return &b, nil
}

// GetDetailsByID получает бронирование вместе со сводкой услуги и пользователя
func (r *Repository) GetDetailsByID(ctx context.Context, id uuid.UUID) (*domain.BookingDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := detailsSelect().
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetDetailsByID - build select query: %v", ErrBuildQuery, err)
	}

	var d domain.BookingDetails
	err = executor.QueryRowContext(ctx, query, args...).Scan(detailsDest(&d)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDetailsByID - scan booking: %w", ErrScanRow, err)
	}

	return &d, nil
}

// FindOverlapping возвращает неотменённые бронирования услуги, пересекающиеся с [start, end)
// Пересечение: existing.start < end AND existing.start + existing.duration > start
func (r *Repository) FindOverlapping(ctx context.Context, serviceID uuid.UUID, start, end time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("bookings b").
		Where(squirrel.Eq{"b.service_id": serviceID}).
		Where(squirrel.NotEq{"b.status": statusStrings(domain.InactiveStatuses)}).
		Where(squirrel.Lt{"b.scheduled_at": end}).
		Where(squirrel.Expr("b.scheduled_at + b.duration_minutes * INTERVAL '1 minute' > ?", start)).
		OrderBy("b.scheduled_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetActiveByServiceAndPeriod возвращает неотменённые бронирования услуги с началом в [from, to)
func (r *Repository) GetActiveByServiceAndPeriod(ctx context.Context, serviceID uuid.UUID, from, to time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("bookings b").
		Where(squirrel.Eq{"b.service_id": serviceID}).
		Where(squirrel.NotEq{"b.status": statusStrings(domain.InactiveStatuses)}).
		Where(squirrel.GtOrEq{"b.scheduled_at": from}).
		Where(squirrel.Lt{"b.scheduled_at": to}).
		OrderBy("b.scheduled_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByServiceAndPeriod - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByServiceAndPeriod - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// List возвращает бронирования пользователя или провайдера со сводкой
// Опционально фильтрует по статусам и интервалу scheduled_at, порядок задаёт filter.Order
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.BookingDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	order := "b.scheduled_at DESC"
	if filter.Order == domain.OldestFirst {
		order = "b.scheduled_at ASC"
	}
	builder := detailsSelect().OrderBy(order)

	if filter.UserID != nil {
		builder = builder.Where(squirrel.Eq{"b.user_id": *filter.UserID})
	}
	if filter.ProviderID != nil {
		builder = builder.Where(squirrel.Eq{"s.provider_id": *filter.ProviderID})
	}
	if len(filter.Statuses) > 0 {
		builder = builder.Where(squirrel.Eq{"b.status": statusStrings(filter.Statuses)})
	}
	if filter.From != nil {
		builder = builder.Where(squirrel.GtOrEq{"b.scheduled_at": *filter.From})
	}
	if filter.To != nil {
		builder = builder.Where(squirrel.Lt{"b.scheduled_at": *filter.To})
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

	details := make([]*domain.BookingDetails, 0)
	for rows.Next() {
		var d domain.BookingDetails
		if err := rows.Scan(detailsDest(&d)...); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		details = append(details, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return details, nil
}

// UpdateStatus переводит бронирование из статуса from в статус to (compare-and-set)
// Причина отказа сохраняется только для REJECTED, для остальных статусов очищается.
// Если статус уже не from - возвращает ErrStatusChanged.
func (r *Repository) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	from domain.BookingStatus,
	to domain.BookingStatus,
	reason *string,
) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if to != domain.StatusRejected {
		reason = nil
	}

	query, args, err := psqlbuilder.Update("bookings b").
		Set("status", to).
		Set("rejection_reason", reason).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"b.id": id, "b.status": from}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	var b domain.Booking
	err = executor.QueryRowContext(ctx, query, args...).Scan(bookingDest(&b)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStatusChanged
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	return &b, nil
}

// CountOpenByService считает бронирования услуги в статусах PENDING/CONFIRMED
func (r *Repository) CountOpenByService(ctx context.Context, serviceID uuid.UUID) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"service_id": serviceID}).
		Where(squirrel.Eq{"status": statusStrings(domain.OpenStatuses)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountOpenByService - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountOpenByService - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// GetProviderStats считает предстоящие и завершённые бронирования провайдера и заработок
// Заработок - сумма quoted_price завершённых бронирований
func (r *Repository) GetProviderStats(ctx context.Context, providerID string, now time.Time) (*domain.ProviderStats, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select().
		Column("COUNT(*) FILTER (WHERE b.status IN (?, ?) AND b.scheduled_at >= ?)",
			domain.StatusPending, domain.StatusConfirmed, now).
		Column("COUNT(*) FILTER (WHERE b.status = ?)", domain.StatusCompleted).
		Column("COALESCE(SUM(b.quoted_price) FILTER (WHERE b.status = ?), 0)", domain.StatusCompleted).
		From("bookings b").
		Join("services s ON s.id = b.service_id").
		Where(squirrel.Eq{"s.provider_id": providerID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetProviderStats - build select query: %v", ErrBuildQuery, err)
	}

	var stats domain.ProviderStats
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&stats.UpcomingCount,
		&stats.CompletedCount,
		&stats.Earnings,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: GetProviderStats - scan stats: %w", ErrScanRow, err)
	}

	return &stats, nil
}

func detailsSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(detailColumns...).
		From("bookings b").
		Join("services s ON s.id = b.service_id").
		LeftJoin("users u ON u.id = b.user_id")
}

func bookingDest(b *domain.Booking) []interface{} {
	return []interface{}{
		&b.ID,
		&b.UserID,
		&b.ServiceID,
		&b.ScheduledAt,
		&b.DurationMinutes,
		&b.Address,
		&b.Notes,
		&b.QuotedPrice,
		&b.Status,
		&b.RejectionReason,
		&b.CreatedAt,
		&b.UpdatedAt,
	}
}

func detailsDest(d *domain.BookingDetails) []interface{} {
	return append(bookingDest(&d.Booking),
		&d.ServiceTitle,
		&d.ServiceCategory,
		&d.ProviderID,
		&d.UserName,
		&d.UserEmail,
	)
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(bookingDest(&b)...); err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}

func statusStrings(statuses []domain.BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
