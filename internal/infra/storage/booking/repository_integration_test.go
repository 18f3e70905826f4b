package booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnushkaaaaS/Neighborly/internal/domain"
	serviceRepo "github.com/AnushkaaaaS/Neighborly/internal/infra/storage/service"
	"github.com/AnushkaaaaS/Neighborly/internal/testutil/pgtest"
	"github.com/AnushkaaaaS/Neighborly/pkg/ptr"
	"github.com/AnushkaaaaS/Neighborly/pkg/types"
)

func seedService(t *testing.T, ctx context.Context, repo *serviceRepo.Repository) *domain.Service {
	t.Helper()

	s, err := repo.Create(ctx, &domain.Service{
		ProviderID:      "provider-1",
		Title:           "Plumbing",
		Category:        domain.CategoryHomeRepairs,
		DurationMinutes: 60,
		PricingMode:     domain.PricingFixed,
		BasePrice:       ptr.Ptr(int64(800)),
		Location:        "Pune",
		AvailableDays:   []domain.Weekday{domain.Monday},
		AvailableTime: domain.Availability{
			domain.Monday: {{From: types.TimeString("09:00:00"), To: types.TimeString("12:00:00")}},
		},
		IsActive: true,
	})
	require.NoError(t, err)
	return s
}

func newBooking(serviceID uuid.UUID, at time.Time) *domain.Booking {
	return &domain.Booking{
		UserID:          "user-1",
		ServiceID:       serviceID,
		ScheduledAt:     at,
		DurationMinutes: 60,
		Address:         "12 MG Road",
		QuotedPrice:     800,
		Status:          domain.StatusPending,
	}
}

func TestRepository_ActiveSlotIsUnique(t *testing.T) {
	db := pgtest.Open(t)
	ctx := context.Background()
	repo := NewRepository(db)
	service := seedService(t, ctx, serviceRepo.NewRepository(db))

	at := time.Date(2025, 3, 10, 4, 0, 0, 0, time.UTC)

	first, err := repo.Create(ctx, newBooking(service.ID, at))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newBooking(service.ID, at))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// Отменённая бронь освобождает слот
	_, err = repo.UpdateStatus(ctx, first.ID, domain.StatusPending, domain.StatusCancelled, nil)
	require.NoError(t, err)

	_, err = repo.Create(ctx, newBooking(service.ID, at))
	assert.NoError(t, err)
}

func TestRepository_FindOverlappingUsesStoredDuration(t *testing.T) {
	db := pgtest.Open(t)
	ctx := context.Background()
	repo := NewRepository(db)
	service := seedService(t, ctx, serviceRepo.NewRepository(db))

	at := time.Date(2025, 3, 10, 4, 0, 0, 0, time.UTC)
	_, err := repo.Create(ctx, newBooking(service.ID, at))
	require.NoError(t, err)

	overlapping, err := repo.FindOverlapping(ctx, service.ID, at.Add(30*time.Minute), at.Add(90*time.Minute))
	require.NoError(t, err)
	assert.Len(t, overlapping, 1)

	overlapping, err = repo.FindOverlapping(ctx, service.ID, at.Add(time.Hour), at.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, overlapping)
}

func TestRepository_UpdateStatusIsCompareAndSet(t *testing.T) {
	db := pgtest.Open(t)
	ctx := context.Background()
	repo := NewRepository(db)
	service := seedService(t, ctx, serviceRepo.NewRepository(db))

	b, err := repo.Create(ctx, newBooking(service.ID, time.Date(2025, 3, 10, 4, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	rejected, err := repo.UpdateStatus(ctx, b.ID, domain.StatusPending, domain.StatusRejected, ptr.Ptr("busy"))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "busy", *rejected.RejectionReason)

	_, err = repo.UpdateStatus(ctx, b.ID, domain.StatusPending, domain.StatusConfirmed, nil)
	assert.ErrorIs(t, err, ErrStatusChanged)
}

func TestRepository_ListCalendarOrderAndStatuses(t *testing.T) {
	db := pgtest.Open(t)
	ctx := context.Background()
	repo := NewRepository(db)
	service := seedService(t, ctx, serviceRepo.NewRepository(db))

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	late, err := repo.Create(ctx, newBooking(service.ID, day.Add(6*time.Hour)))
	require.NoError(t, err)
	early, err := repo.Create(ctx, newBooking(service.ID, day.Add(4*time.Hour)))
	require.NoError(t, err)
	pending, err := repo.Create(ctx, newBooking(service.ID, day.Add(5*time.Hour)))
	require.NoError(t, err)
	nextDay, err := repo.Create(ctx, newBooking(service.ID, day.Add(28*time.Hour)))
	require.NoError(t, err)

	for _, b := range []*domain.Booking{late, early, nextDay} {
		_, err := repo.UpdateStatus(ctx, b.ID, domain.StatusPending, domain.StatusConfirmed, nil)
		require.NoError(t, err)
	}
	_, err = repo.UpdateStatus(ctx, late.ID, domain.StatusConfirmed, domain.StatusCompleted, nil)
	require.NoError(t, err)

	provider := service.ProviderID
	filter := domain.BookingsFilter{
		ProviderID: &provider,
		Statuses:   domain.CalendarStatuses,
		Order:      domain.OldestFirst,
	}

	all, err := repo.List(ctx, filter)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, early.ID, all[0].ID)
	assert.Equal(t, late.ID, all[1].ID)
	assert.Equal(t, nextDay.ID, all[2].ID)
	assert.Equal(t, "Plumbing", all[0].ServiceTitle)

	to := day.AddDate(0, 0, 1)
	filter.From, filter.To = &day, &to
	sameDay, err := repo.List(ctx, filter)
	require.NoError(t, err)
	require.Len(t, sameDay, 2)
	for _, d := range sameDay {
		assert.NotEqual(t, pending.ID, d.ID)
	}

	newest, err := repo.List(ctx, domain.BookingsFilter{ProviderID: &provider})
	require.NoError(t, err)
	require.Len(t, newest, 4)
	assert.Equal(t, nextDay.ID, newest[0].ID)
}
