package get_provider_calendar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnushkaaaaS/Neighborly/internal/api/handlers"
	"github.com/AnushkaaaaS/Neighborly/internal/api/middleware"
	"github.com/AnushkaaaaS/Neighborly/internal/service/bookings"
	"github.com/AnushkaaaaS/Neighborly/internal/service/bookings/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	got *models.GetProviderCalendarRequest
	err error
}

func (f *fakeService) GetProviderCalendar(_ context.Context, req *models.GetProviderCalendarRequest) (*models.CalendarResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.CalendarResponse{Bookings: []models.CalendarEvent{
		{ID: "b-1", ServiceTitle: "Plumbing", UserName: "User", Status: "CONFIRMED", DurationMinutes: 60},
	}}, nil
}

func serve(h *Handler, callerID, url string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, url, nil)
	r = mux.SetURLVars(r, map[string]string{"providerId": "provider-1"})
	if callerID != "" {
		r = r.WithContext(middleware.WithUserID(r.Context(), callerID))
	}
	w := httptest.NewRecorder()
	h.Handle(w, r)
	return w
}

func TestHandler_ReturnsCalendar(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, nopLogger{})

	w := serve(h, "provider-1", "/api/v1/providers/provider-1/calendar?from=2025-03-01&to=2025-03-31")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "provider-1", svc.got.CallerID)
	assert.Equal(t, "provider-1", svc.got.ProviderID)
	require.NotNil(t, svc.got.From)
	require.NotNil(t, svc.got.To)
	assert.Equal(t, "2025-03-01", *svc.got.From)
	assert.Equal(t, "2025-03-31", *svc.got.To)

	var resp models.CalendarResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, "Plumbing", resp.Bookings[0].ServiceTitle)
	assert.Equal(t, 60, resp.Bookings[0].DurationMinutes)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name     string
		callerID string
		svcErr   error
		wantCode int
		wantMsg  string
	}{
		{name: "unauthenticated", wantCode: http.StatusUnauthorized, wantMsg: msgMissingUserID},
		{name: "other provider", callerID: "user-1", svcErr: bookings.ErrAccessDenied, wantCode: http.StatusForbidden, wantMsg: msgForbidden},
		{name: "bad range", callerID: "provider-1", svcErr: bookings.ErrInvalidInput, wantCode: http.StatusBadRequest, wantMsg: msgInvalidRange},
		{name: "internal", callerID: "provider-1", svcErr: bookings.ErrInternal, wantCode: http.StatusInternalServerError, wantMsg: "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(NewHandler(&fakeService{err: tt.svcErr}, nopLogger{}), tt.callerID, "/api/v1/providers/provider-1/calendar")

			assert.Equal(t, tt.wantCode, w.Code)
			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantMsg, resp.Error)
		})
	}
}
