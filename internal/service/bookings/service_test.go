package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnushkaaaaS/Neighborly/internal/domain"
	bookingRepo "github.com/AnushkaaaaS/Neighborly/internal/infra/storage/booking"
	"github.com/AnushkaaaaS/Neighborly/internal/service/bookings/models"
	"github.com/AnushkaaaaS/Neighborly/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeRepo struct {
	details    []*domain.BookingDetails
	lastFilter domain.BookingsFilter
	stats      domain.ProviderStats
	ratings    []int
}

func (f *fakeRepo) GetDetailsByID(_ context.Context, id uuid.UUID) (*domain.BookingDetails, error) {
	for _, d := range f.details {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (f *fakeRepo) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.BookingDetails, error) {
	f.lastFilter = filter
	var out []*domain.BookingDetails
	for _, d := range f.details {
		if filter.UserID != nil && d.UserID != *filter.UserID {
			continue
		}
		if filter.ProviderID != nil && d.ProviderID != *filter.ProviderID {
			continue
		}
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, d.Status) {
			continue
		}
		if filter.From != nil && d.ScheduledAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !d.ScheduledAt.Before(*filter.To) {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func containsStatus(statuses []domain.BookingStatus, s domain.BookingStatus) bool {
	for _, st := range statuses {
		if st == s {
			return true
		}
	}
	return false
}

func (f *fakeRepo) GetProviderStats(context.Context, string, time.Time) (*domain.ProviderStats, error) {
	s := f.stats
	return &s, nil
}

func (f *fakeRepo) ListRatingsByProvider(context.Context, string) ([]int, error) {
	return f.ratings, nil
}

var ist = time.FixedZone("IST", 5*3600+1800)

func newDetails(userID, providerID string, status domain.BookingStatus) *domain.BookingDetails {
	return &domain.BookingDetails{
		Booking: domain.Booking{
			ID:              uuid.New(),
			UserID:          userID,
			ServiceID:       uuid.New(),
			ScheduledAt:     time.Date(2025, 3, 10, 4, 0, 0, 0, time.UTC),
			DurationMinutes: 30,
			Address:         "12 MG Road",
			QuotedPrice:     999,
			Status:          status,
		},
		ServiceTitle:    "Tutoring",
		ServiceCategory: domain.CategoryTutoring,
		ProviderID:      providerID,
		UserName:        ptr.Ptr("Asha"),
	}
}

func TestGetByID_Access(t *testing.T) {
	d := newDetails("user-1", "provider-1", domain.StatusPending)
	svc := NewService(&fakeRepo{details: []*domain.BookingDetails{d}}, &fakeRepo{}, ist, nopLogger{})

	for _, caller := range []string{"user-1", "provider-1"} {
		resp, err := svc.GetByID(context.Background(), d.ID, caller)
		require.NoError(t, err)
		assert.Equal(t, "2025-03-10", resp.Date)
		assert.Equal(t, "09:30:00", resp.StartTime)
		assert.Equal(t, "Tutoring", resp.Service.Title)
		assert.Equal(t, "Asha", *resp.User.Name)
	}

	_, err := svc.GetByID(context.Background(), d.ID, "user-2")
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.GetByID(context.Background(), uuid.New(), "user-1")
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetUserBookings(t *testing.T) {
	repo := &fakeRepo{details: []*domain.BookingDetails{
		newDetails("user-1", "provider-1", domain.StatusPending),
		newDetails("user-1", "provider-2", domain.StatusCompleted),
		newDetails("user-2", "provider-1", domain.StatusPending),
	}}
	svc := NewService(repo, repo, ist, nopLogger{})

	all, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{CallerID: "user-1", UserID: "user-1"})
	require.NoError(t, err)
	assert.Len(t, all.Bookings, 2)
	assert.Empty(t, repo.lastFilter.Statuses)
	assert.Equal(t, domain.NewestFirst, repo.lastFilter.Order)

	completed, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		CallerID: "user-1",
		UserID:   "user-1",
		Status:   ptr.Ptr("completed"),
	})
	require.NoError(t, err)
	require.Len(t, completed.Bookings, 1)
	assert.Equal(t, "COMPLETED", completed.Bookings[0].Status)

	_, err = svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{CallerID: "user-2", UserID: "user-1"})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		CallerID: "user-1",
		UserID:   "user-1",
		Status:   ptr.Ptr("ARCHIVED"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetProviderBookings_EmptyListIsNotNil(t *testing.T) {
	svc := NewService(&fakeRepo{}, &fakeRepo{}, ist, nopLogger{})

	resp, err := svc.GetProviderBookings(context.Background(), &models.GetProviderBookingsRequest{
		CallerID:   "provider-1",
		ProviderID: "provider-1",
	})

	require.NoError(t, err)
	assert.NotNil(t, resp.Bookings)
	assert.Empty(t, resp.Bookings)
}

func TestGetProviderStats_RatingExcludesPlaceholders(t *testing.T) {
	repo := &fakeRepo{
		stats:   domain.ProviderStats{UpcomingCount: 2, CompletedCount: 3, Earnings: 2997},
		ratings: []int{0, 4, 5},
	}
	svc := NewService(repo, repo, ist, nopLogger{})

	resp, err := svc.GetProviderStats(context.Background(), "provider-1", "provider-1")

	require.NoError(t, err)
	assert.Equal(t, 2, resp.UpcomingCount)
	assert.Equal(t, 3, resp.CompletedCount)
	assert.Equal(t, int64(2997), resp.Earnings)
	assert.Equal(t, 4.5, resp.Rating)

	_, err = svc.GetProviderStats(context.Background(), "user-1", "provider-1")
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetProviderCalendar(t *testing.T) {
	at := func(d *domain.BookingDetails, day, hour int) *domain.BookingDetails {
		d.ScheduledAt = time.Date(2025, 3, day, hour, 0, 0, 0, ist).UTC()
		return d
	}
	confirmed := at(newDetails("user-1", "provider-1", domain.StatusConfirmed), 12, 10)
	completed := at(newDetails("user-2", "provider-1", domain.StatusCompleted), 10, 9)
	completed.UserName = nil
	pending := at(newDetails("user-1", "provider-1", domain.StatusPending), 11, 9)
	foreign := at(newDetails("user-1", "provider-2", domain.StatusConfirmed), 11, 9)

	repo := &fakeRepo{details: []*domain.BookingDetails{confirmed, completed, pending, foreign}}
	svc := NewService(repo, repo, ist, nopLogger{})

	resp, err := svc.GetProviderCalendar(context.Background(), &models.GetProviderCalendarRequest{
		CallerID:   "provider-1",
		ProviderID: "provider-1",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.OldestFirst, repo.lastFilter.Order)
	assert.ElementsMatch(t, []domain.BookingStatus{domain.StatusConfirmed, domain.StatusCompleted}, repo.lastFilter.Statuses)
	require.Len(t, resp.Bookings, 2)

	byID := map[string]models.CalendarEvent{}
	for _, e := range resp.Bookings {
		byID[e.ID] = e
	}
	event := byID[confirmed.ID.String()]
	assert.Equal(t, "Tutoring", event.ServiceTitle)
	assert.Equal(t, "Asha", event.UserName)
	assert.Equal(t, "12 MG Road", event.Address)
	assert.Equal(t, 30, event.DurationMinutes)
	assert.Equal(t, 10, event.ScheduledAt.Hour())
	assert.True(t, event.EndsAt.Equal(event.ScheduledAt.Add(30*time.Minute)))
	assert.Equal(t, "User", byID[completed.ID.String()].UserName)
}

func TestGetProviderCalendar_Range(t *testing.T) {
	first := newDetails("user-1", "provider-1", domain.StatusConfirmed)
	first.ScheduledAt = time.Date(2025, 3, 10, 23, 30, 0, 0, ist).UTC()
	second := newDetails("user-1", "provider-1", domain.StatusConfirmed)
	second.ScheduledAt = time.Date(2025, 3, 11, 0, 0, 0, 0, ist).UTC()

	repo := &fakeRepo{details: []*domain.BookingDetails{first, second}}
	svc := NewService(repo, repo, ist, nopLogger{})

	resp, err := svc.GetProviderCalendar(context.Background(), &models.GetProviderCalendarRequest{
		CallerID:   "provider-1",
		ProviderID: "provider-1",
		From:       ptr.Ptr("2025-03-10"),
		To:         ptr.Ptr("2025-03-10"),
	})

	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, first.ID.String(), resp.Bookings[0].ID)
	require.NotNil(t, repo.lastFilter.To)
	assert.True(t, repo.lastFilter.To.Equal(time.Date(2025, 3, 11, 0, 0, 0, 0, ist)))
}

func TestGetProviderCalendar_Errors(t *testing.T) {
	svc := NewService(&fakeRepo{}, &fakeRepo{}, ist, nopLogger{})

	tests := []struct {
		name    string
		req     *models.GetProviderCalendarRequest
		wantErr error
	}{
		{name: "other caller", req: &models.GetProviderCalendarRequest{CallerID: "user-1", ProviderID: "provider-1"}, wantErr: ErrAccessDenied},
		{name: "bad from", req: &models.GetProviderCalendarRequest{CallerID: "p", ProviderID: "p", From: ptr.Ptr("03/10/2025")}, wantErr: ErrInvalidInput},
		{
			name:    "from after to",
			req:     &models.GetProviderCalendarRequest{CallerID: "p", ProviderID: "p", From: ptr.Ptr("2025-03-12"), To: ptr.Ptr("2025-03-10")},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.GetProviderCalendar(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
