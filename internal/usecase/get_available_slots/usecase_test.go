package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnushkaaaaS/Neighborly/internal/domain"
	serviceRepo "github.com/AnushkaaaaS/Neighborly/internal/infra/storage/service"
	"github.com/AnushkaaaaS/Neighborly/pkg/ptr"
	"github.com/AnushkaaaaS/Neighborly/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeServices map[uuid.UUID]*domain.Service

func (f fakeServices) GetByID(_ context.Context, id uuid.UUID) (*domain.Service, error) {
	s, ok := f[id]
	if !ok {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return s, nil
}

type fakeBookings struct {
	bookings []*domain.Booking
	calls    int
}

func (f *fakeBookings) FindOverlapping(_ context.Context, _ uuid.UUID, start, end time.Time) ([]*domain.Booking, error) {
	f.calls++
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.IsActive() && b.Overlaps(start, end) {
			out = append(out, b)
		}
	}
	return out, nil
}

var monday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func newService() *domain.Service {
	return &domain.Service{
		ID:              uuid.New(),
		ProviderID:      "provider-1",
		DurationMinutes: 30,
		PricingMode:     domain.PricingFixed,
		BasePrice:       ptr.Ptr(int64(999)),
		AvailableDays:   []domain.Weekday{domain.Monday},
		AvailableTime: domain.Availability{
			domain.Monday: {{From: "09:00:00", To: "10:00:00"}},
		},
		IsActive: true,
	}
}

func newUseCase(svc *domain.Service, bookings *fakeBookings, now time.Time) *UseCase {
	uc := NewUseCase(fakeServices{svc.ID: svc}, bookings, time.UTC, nopLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func TestExecute_SubtractsOccupiedSlots(t *testing.T) {
	svc := newService()
	bookings := &fakeBookings{bookings: []*domain.Booking{
		{ServiceID: svc.ID, ScheduledAt: monday.Add(9*time.Hour + 30*time.Minute), DurationMinutes: 30, Status: domain.StatusPending},
		{ServiceID: svc.ID, ScheduledAt: monday.Add(9 * time.Hour), DurationMinutes: 30, Status: domain.StatusCancelled},
	}}

	resp, err := newUseCase(svc, bookings, monday).Execute(context.Background(), &Request{ServiceID: svc.ID, Date: monday})

	require.NoError(t, err)
	assert.True(t, resp.Offered)
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Equal(t, []types.TimeString{"09:00:00", "10:00:00"}, resp.Slots)
}

func TestExecute_StoredDurationCoversLaterSlots(t *testing.T) {
	svc := newService()
	// бронирование сделано, когда услуга длилась час
	bookings := &fakeBookings{bookings: []*domain.Booking{
		{ServiceID: svc.ID, ScheduledAt: monday.Add(9 * time.Hour), DurationMinutes: 60, Status: domain.StatusConfirmed},
	}}

	resp, err := newUseCase(svc, bookings, monday).Execute(context.Background(), &Request{ServiceID: svc.ID, Date: monday})

	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"10:00:00"}, resp.Slots)
}

func TestExecute_PreviousDayBookingSpillsOver(t *testing.T) {
	svc := newService()
	bookings := &fakeBookings{bookings: []*domain.Booking{
		{ServiceID: svc.ID, ScheduledAt: monday.Add(-time.Hour), DurationMinutes: 630, Status: domain.StatusPending},
	}}

	resp, err := newUseCase(svc, bookings, monday).Execute(context.Background(), &Request{ServiceID: svc.ID, Date: monday})

	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"09:30:00", "10:00:00"}, resp.Slots)
}

func TestExecute_DateNotOffered(t *testing.T) {
	svc := newService()
	tuesday := monday.AddDate(0, 0, 1)

	tests := []struct {
		name string
		date time.Time
		now  time.Time
		edit func(*domain.Service)
	}{
		{name: "weekday not available", date: tuesday, now: monday},
		{name: "date in the past", date: monday, now: tuesday},
		{name: "inactive service", date: monday, now: monday, edit: func(s *domain.Service) { s.IsActive = false }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := *svc
			if tt.edit != nil {
				tt.edit(&s)
			}
			bookings := &fakeBookings{}

			resp, err := newUseCase(&s, bookings, tt.now).Execute(context.Background(), &Request{ServiceID: s.ID, Date: tt.date})

			require.NoError(t, err)
			assert.False(t, resp.Offered)
			assert.Empty(t, resp.Slots)
			assert.Zero(t, bookings.calls)
		})
	}
}

func TestExecute_Errors(t *testing.T) {
	svc := newService()
	uc := newUseCase(svc, &fakeBookings{}, monday)

	_, err := uc.Execute(context.Background(), &Request{Date: monday})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Execute(context.Background(), &Request{ServiceID: uuid.New(), Date: monday})
	assert.ErrorIs(t, err, ErrServiceNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
