package reviews

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnushkaaaaS/Neighborly/internal/domain"
	bookingRepo "github.com/AnushkaaaaS/Neighborly/internal/infra/storage/booking"
	reviewRepo "github.com/AnushkaaaaS/Neighborly/internal/infra/storage/review"
	"github.com/AnushkaaaaS/Neighborly/internal/service/reviews/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeStore struct {
	bookings map[uuid.UUID]*domain.Booking
	services map[uuid.UUID]*domain.Service
	reviews  map[uuid.UUID]*domain.Review
}

func (f *fakeStore) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

func (f *fakeStore) GetByIDForUpdate(_ context.Context, id uuid.UUID) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Service, error) {
	return f.services[id], nil
}

func (f *fakeStore) Create(_ context.Context, r *domain.Review) (*domain.Review, error) {
	if _, ok := f.reviews[r.BookingID]; ok {
		return nil, reviewRepo.ErrReviewExists
	}
	r.ID = uuid.New()
	r.CreatedAt = time.Now()
	f.reviews[r.BookingID] = r
	return r, nil
}

func (f *fakeStore) FillPlaceholder(_ context.Context, bookingID uuid.UUID, rating int, comment string) (*domain.Review, error) {
	r, ok := f.reviews[bookingID]
	if !ok || r.Rating != domain.UnratedRating {
		return nil, reviewRepo.ErrReviewNotFound
	}
	r.Rating, r.Comment = rating, comment
	return r, nil
}

func (f *fakeStore) GetByBookingID(_ context.Context, bookingID uuid.UUID) (*domain.Review, error) {
	r, ok := f.reviews[bookingID]
	if !ok {
		return nil, reviewRepo.ErrReviewNotFound
	}
	return r, nil
}

func (f *fakeStore) ListByProvider(_ context.Context, providerID string) ([]*domain.ReviewDetails, error) {
	var out []*domain.ReviewDetails
	for _, r := range f.reviews {
		if r.ProviderID == providerID && r.Rating != domain.UnratedRating {
			out = append(out, &domain.ReviewDetails{Review: *r, ServiceTitle: "Cleaning"})
		}
	}
	return out, nil
}

func (f *fakeStore) ListRatingsByProvider(_ context.Context, providerID string) ([]int, error) {
	var out []int
	for _, r := range f.reviews {
		if r.ProviderID == providerID {
			out = append(out, r.Rating)
		}
	}
	return out, nil
}

func newFixture(status domain.BookingStatus, withPlaceholder bool) (*Service, *fakeStore, *domain.Booking) {
	svc := &domain.Service{ID: uuid.New(), ProviderID: "provider-1"}
	booking := &domain.Booking{ID: uuid.New(), UserID: "user-1", ServiceID: svc.ID, Status: status}
	st := &fakeStore{
		bookings: map[uuid.UUID]*domain.Booking{booking.ID: booking},
		services: map[uuid.UUID]*domain.Service{svc.ID: svc},
		reviews:  map[uuid.UUID]*domain.Review{},
	}
	if withPlaceholder {
		st.reviews[booking.ID] = domain.NewPlaceholderReview(booking, svc.ProviderID)
	}
	return NewService(st, st, st, st, nopLogger{}), st, booking
}

func TestSubmit_FillsPlaceholder(t *testing.T) {
	svc, st, booking := newFixture(domain.StatusCompleted, true)

	resp, err := svc.Submit(context.Background(), &models.SubmitReviewRequest{
		BookingID: booking.ID,
		UserID:    "user-1",
		Rating:    4,
		Comment:   "  punctual  ",
	})

	require.NoError(t, err)
	assert.Equal(t, 4, resp.Rating)
	assert.Equal(t, "punctual", resp.Comment)
	assert.Len(t, st.reviews, 1)

	_, err = svc.Submit(context.Background(), &models.SubmitReviewRequest{BookingID: booking.ID, UserID: "user-1", Rating: 5})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 4, st.reviews[booking.ID].Rating)
}

func TestSubmit_CreatesWhenNoPlaceholder(t *testing.T) {
	svc, st, booking := newFixture(domain.StatusCompleted, false)

	resp, err := svc.Submit(context.Background(), &models.SubmitReviewRequest{BookingID: booking.ID, UserID: "user-1", Rating: 5})

	require.NoError(t, err)
	assert.Equal(t, 5, resp.Rating)
	assert.Equal(t, "provider-1", resp.ProviderID)
	assert.Len(t, st.reviews, 1)
}

func TestSubmit_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		status  domain.BookingStatus
		req     func(bookingID uuid.UUID) *models.SubmitReviewRequest
		wantErr error
	}{
		{
			name:   "rating too high",
			status: domain.StatusCompleted,
			req: func(id uuid.UUID) *models.SubmitReviewRequest {
				return &models.SubmitReviewRequest{BookingID: id, UserID: "user-1", Rating: 6}
			},
			wantErr: domain.ErrValidation,
		},
		{
			name:   "rating zero",
			status: domain.StatusCompleted,
			req: func(id uuid.UUID) *models.SubmitReviewRequest {
				return &models.SubmitReviewRequest{BookingID: id, UserID: "user-1", Rating: 0}
			},
			wantErr: domain.ErrValidation,
		},
		{
			name:   "unknown booking",
			status: domain.StatusCompleted,
			req: func(uuid.UUID) *models.SubmitReviewRequest {
				return &models.SubmitReviewRequest{BookingID: uuid.New(), UserID: "user-1", Rating: 3}
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name:   "someone else's booking",
			status: domain.StatusCompleted,
			req: func(id uuid.UUID) *models.SubmitReviewRequest {
				return &models.SubmitReviewRequest{BookingID: id, UserID: "user-2", Rating: 3}
			},
			wantErr: domain.ErrForbidden,
		},
		{
			name:   "booking not completed",
			status: domain.StatusConfirmed,
			req: func(id uuid.UUID) *models.SubmitReviewRequest {
				return &models.SubmitReviewRequest{BookingID: id, UserID: "user-1", Rating: 3}
			},
			wantErr: ErrBookingNotCompleted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, st, booking := newFixture(tt.status, false)

			_, err := svc.Submit(context.Background(), tt.req(booking.ID))

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, st.reviews)
		})
	}
}

func TestProviderRating_ExcludesPlaceholders(t *testing.T) {
	svc, st, _ := newFixture(domain.StatusCompleted, false)
	for _, rating := range []int{0, 4, 5} {
		st.reviews[uuid.New()] = &domain.Review{ProviderID: "provider-1", Rating: rating}
	}

	resp, err := svc.ProviderRating(context.Background(), "provider-1")
	require.NoError(t, err)
	assert.Equal(t, 4.5, resp.Rating)
	assert.Equal(t, 2, resp.ReviewCount)

	list, err := svc.ListByProvider(context.Background(), "provider-1")
	require.NoError(t, err)
	assert.Len(t, list.Reviews, 2)

	empty, err := svc.ProviderRating(context.Background(), "provider-2")
	require.NoError(t, err)
	assert.Zero(t, empty.Rating)
}
