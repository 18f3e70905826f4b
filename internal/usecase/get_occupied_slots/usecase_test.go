package get_occupied_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnushkaaaaS/Neighborly/internal/domain"
	serviceRepo "github.com/AnushkaaaaS/Neighborly/internal/infra/storage/service"
	"github.com/AnushkaaaaS/Neighborly/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeServices struct {
	services map[uuid.UUID]*domain.Service
	err      error
}

func (f *fakeServices) GetByID(_ context.Context, id uuid.UUID) (*domain.Service, error) {
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.services[id]
	if !ok {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return s, nil
}

type fakeBookings struct {
	bookings []*domain.Booking
	from, to time.Time
}

func (f *fakeBookings) GetActiveByServiceAndPeriod(_ context.Context, serviceID uuid.UUID, from, to time.Time) ([]*domain.Booking, error) {
	f.from, f.to = from, to
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.ServiceID == serviceID && b.IsActive() && !b.ScheduledAt.Before(from) && b.ScheduledAt.Before(to) {
			out = append(out, b)
		}
	}
	return out, nil
}

func TestExecute_ReturnsSortedStartTimesOfActiveBookings(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	serviceID := uuid.New()
	at := func(day, h, m int) time.Time { return time.Date(2025, 3, day, h, m, 0, 0, ist) }

	bookings := &fakeBookings{bookings: []*domain.Booking{
		{ServiceID: serviceID, ScheduledAt: at(10, 10, 0), Status: domain.StatusConfirmed},
		{ServiceID: serviceID, ScheduledAt: at(10, 9, 30), Status: domain.StatusPending},
		{ServiceID: serviceID, ScheduledAt: at(10, 11, 0), Status: domain.StatusCancelled},
		{ServiceID: serviceID, ScheduledAt: at(11, 9, 0), Status: domain.StatusPending},
		{ServiceID: uuid.New(), ScheduledAt: at(10, 12, 0), Status: domain.StatusPending},
	}}
	services := &fakeServices{services: map[uuid.UUID]*domain.Service{serviceID: {ID: serviceID}}}

	uc := NewUseCase(services, bookings, ist, nopLogger{})
	req := &Request{ServiceID: serviceID, Date: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"09:30:00", "10:00:00"}, resp.Occupied)
	assert.True(t, bookings.from.Equal(at(10, 0, 0)))
	assert.True(t, bookings.to.Equal(at(11, 0, 0)))

	again, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, resp.Occupied, again.Occupied)
}

func TestExecute_EmptyDayReturnsEmptyList(t *testing.T) {
	serviceID := uuid.New()
	services := &fakeServices{services: map[uuid.UUID]*domain.Service{serviceID: {ID: serviceID}}}

	uc := NewUseCase(services, &fakeBookings{}, time.UTC, nopLogger{})
	resp, err := uc.Execute(context.Background(), &Request{ServiceID: serviceID, Date: time.Now()})

	require.NoError(t, err)
	assert.NotNil(t, resp.Occupied)
	assert.Empty(t, resp.Occupied)
}

func TestExecute_Errors(t *testing.T) {
	serviceID := uuid.New()

	tests := []struct {
		name     string
		services *fakeServices
		req      *Request
		wantErr  error
		wantKind error
	}{
		{
			name:     "missing service id",
			services: &fakeServices{},
			req:      &Request{Date: time.Now()},
			wantErr:  ErrInvalidInput,
			wantKind: domain.ErrValidation,
		},
		{
			name:     "missing date",
			services: &fakeServices{},
			req:      &Request{ServiceID: serviceID},
			wantErr:  ErrInvalidInput,
			wantKind: domain.ErrValidation,
		},
		{
			name:     "unknown service",
			services: &fakeServices{},
			req:      &Request{ServiceID: serviceID, Date: time.Now()},
			wantErr:  ErrServiceNotFound,
			wantKind: domain.ErrNotFound,
		},
		{
			name:     "storage failure",
			services: &fakeServices{err: errors.New("connection reset")},
			req:      &Request{ServiceID: serviceID, Date: time.Now()},
			wantErr:  ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewUseCase(tt.services, &fakeBookings{}, time.UTC, nopLogger{})
			_, err := uc.Execute(context.Background(), tt.req)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.wantKind != nil {
				assert.ErrorIs(t, err, tt.wantKind)
			}
		})
	}
}
