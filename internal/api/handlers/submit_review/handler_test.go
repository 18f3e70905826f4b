package submit_review

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnushkaaaaS/Neighborly/internal/api/handlers"
	"github.com/AnushkaaaaS/Neighborly/internal/api/middleware"
	"github.com/AnushkaaaaS/Neighborly/internal/service/reviews"
	"github.com/AnushkaaaaS/Neighborly/internal/service/reviews/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeReviews struct {
	got *models.SubmitReviewRequest
	err error
}

func (f *fakeReviews) Submit(_ context.Context, req *models.SubmitReviewRequest) (*models.ReviewResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.ReviewResponse{
		ID:        uuid.NewString(),
		BookingID: req.BookingID.String(),
		UserID:    req.UserID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}, nil
}

func post(h *Handler, userID, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/reviews", strings.NewReader(body))
	if userID != "" {
		r = r.WithContext(middleware.WithUserID(r.Context(), userID))
	}
	w := httptest.NewRecorder()
	h.Handle(w, r)
	return w
}

func TestHandler_Submits(t *testing.T) {
	svc := &fakeReviews{}
	bookingID := uuid.New()

	w := post(NewHandler(svc, nopLogger{}), "user-1",
		fmt.Sprintf(`{"bookingId":%q,"rating":4,"comment":"on time"}`, bookingID))

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "user-1", svc.got.UserID)
	assert.Equal(t, bookingID, svc.got.BookingID)
	assert.Equal(t, 4, svc.got.Rating)
}

func TestHandler_Errors(t *testing.T) {
	bookingID := uuid.New()
	valid := fmt.Sprintf(`{"bookingId":%q,"rating":5}`, bookingID)

	tests := []struct {
		name     string
		userID   string
		body     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{name: "unauthenticated", body: valid, wantCode: http.StatusUnauthorized, wantMsg: msgMissingUserID},
		{
			name:     "rating out of range",
			userID:   "user-1",
			body:     fmt.Sprintf(`{"bookingId":%q,"rating":6}`, bookingID),
			wantCode: http.StatusBadRequest,
			wantMsg:  msgInvalidReview,
		},
		{
			name:     "someone else's user id",
			userID:   "user-1",
			body:     fmt.Sprintf(`{"bookingId":%q,"userId":"user-2","rating":5}`, bookingID),
			wantCode: http.StatusForbidden,
			wantMsg:  msgForbidden,
		},
		{name: "not completed", userID: "user-1", body: valid, err: reviews.ErrBookingNotCompleted,
			wantCode: http.StatusConflict, wantMsg: msgNotCompleted},
		{name: "second review", userID: "user-1", body: valid, err: reviews.ErrAlreadyReviewed,
			wantCode: http.StatusConflict, wantMsg: msgAlreadyReviewed},
		{name: "not the customer", userID: "user-1", body: valid, err: reviews.ErrAccessDenied,
			wantCode: http.StatusForbidden, wantMsg: msgForbidden},
		{name: "unknown booking", userID: "user-1", body: valid, err: reviews.ErrBookingNotFound,
			wantCode: http.StatusNotFound, wantMsg: msgBookingNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(NewHandler(&fakeReviews{err: tt.err}, nopLogger{}), tt.userID, tt.body)

			assert.Equal(t, tt.wantCode, w.Code)
			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantMsg, resp.Error)
		})
	}
}
