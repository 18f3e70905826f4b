package update_booking_status

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnushkaaaaS/Neighborly/internal/api/handlers"
	"github.com/AnushkaaaaS/Neighborly/internal/api/middleware"
	"github.com/AnushkaaaaS/Neighborly/internal/domain"
	updateStatus "github.com/AnushkaaaaS/Neighborly/internal/usecase/update_booking_status"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	got  *updateStatus.Request
	resp *updateStatus.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *updateStatus.Request) (*updateStatus.Response, error) {
	f.got = req
	return f.resp, f.err
}

var bookingID = uuid.MustParse("0c3f7a52-5b8e-4b8a-9d65-3f3a1f0e9e01")

func doRequest(h *Handler, actorID, id, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/"+id+"/status", strings.NewReader(body))
	r = mux.SetURLVars(r, map[string]string{"bookingId": id})
	if actorID != "" {
		r = r.WithContext(middleware.WithUserID(r.Context(), actorID))
	}
	w := httptest.NewRecorder()
	h.Handle(w, r)
	return w
}

func TestHandler_ConfirmWithWarning(t *testing.T) {
	uc := &fakeUseCase{resp: &updateStatus.Response{
		Booking: &domain.Booking{
			ID:              bookingID,
			UserID:          "user-1",
			ServiceID:       uuid.New(),
			ScheduledAt:     time.Date(2025, 3, 10, 4, 0, 0, 0, time.UTC),
			DurationMinutes: 30,
			Status:          domain.StatusConfirmed,
		},
		Previous: domain.StatusPending,
		Warnings: []string{updateStatus.WarningCalendarSync},
	}}
	h := NewHandler(uc, time.UTC, nopLogger{})

	w := doRequest(h, "provider-1", bookingID.String(), `{"status":"confirmed"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "provider-1", uc.got.ActorID)
	assert.Equal(t, "confirmed", uc.got.Status)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "CONFIRMED", resp["status"])
	assert.Equal(t, "PENDING", resp["previousStatus"])
	assert.Equal(t, bookingID.String(), resp["id"])
	assert.Equal(t, []interface{}{updateStatus.WarningCalendarSync}, resp["warnings"])
}

func TestHandler_PassesReason(t *testing.T) {
	uc := &fakeUseCase{resp: &updateStatus.Response{
		Booking:  &domain.Booking{ID: bookingID, Status: domain.StatusRejected},
		Previous: domain.StatusPending,
	}}
	h := NewHandler(uc, time.UTC, nopLogger{})

	w := doRequest(h, "provider-1", bookingID.String(), `{"status":"REJECTED","rejectionReason":"fully booked"}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, uc.got.Reason)
	assert.Equal(t, "fully booked", *uc.got.Reason)
	assert.NotContains(t, w.Body.String(), "warnings")
}

func TestHandler_UnknownBodyField(t *testing.T) {
	uc := &fakeUseCase{}
	h := NewHandler(uc, time.UTC, nopLogger{})

	w := doRequest(h, "provider-1", bookingID.String(), `{"status":"REJECTED","reason":"fully booked"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, uc.got)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name     string
		actorID  string
		id       string
		body     string
		ucErr    error
		wantCode int
		wantMsg  string
	}{
		{name: "unauthenticated", id: bookingID.String(), body: `{"status":"CANCELLED"}`,
			wantCode: http.StatusUnauthorized, wantMsg: msgMissingUserID},
		{name: "bad id", actorID: "user-1", id: "42", body: `{"status":"CANCELLED"}`,
			wantCode: http.StatusBadRequest, wantMsg: msgInvalidBookingID},
		{name: "missing status", actorID: "user-1", id: bookingID.String(), body: `{}`,
			wantCode: http.StatusBadRequest, wantMsg: msgInvalidStatus},
		{name: "not found", actorID: "user-1", id: bookingID.String(), body: `{"status":"CANCELLED"}`,
			ucErr: updateStatus.ErrBookingNotFound, wantCode: http.StatusNotFound, wantMsg: msgNotFound},
		{name: "user confirms", actorID: "user-1", id: bookingID.String(), body: `{"status":"CONFIRMED"}`,
			ucErr: updateStatus.ErrAccessDenied, wantCode: http.StatusForbidden, wantMsg: msgForbidden},
		{name: "terminal booking", actorID: "provider-1", id: bookingID.String(), body: `{"status":"CONFIRMED"}`,
			ucErr:    fmt.Errorf("%w: COMPLETED -> CONFIRMED", updateStatus.ErrInvalidTransition),
			wantCode: http.StatusConflict, wantMsg: msgInvalidTransition},
		{name: "lost race", actorID: "provider-1", id: bookingID.String(), body: `{"status":"COMPLETED"}`,
			ucErr: updateStatus.ErrConcurrentUpdate, wantCode: http.StatusConflict, wantMsg: msgConcurrentUpdate},
		{name: "unknown status", actorID: "provider-1", id: bookingID.String(), body: `{"status":"DONE"}`,
			ucErr:    fmt.Errorf("%w: unknown status", updateStatus.ErrInvalidInput),
			wantCode: http.StatusBadRequest, wantMsg: msgInvalidStatus},
		{name: "internal", actorID: "provider-1", id: bookingID.String(), body: `{"status":"COMPLETED"}`,
			ucErr: updateStatus.ErrInternal, wantCode: http.StatusInternalServerError, wantMsg: "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.ucErr}, time.UTC, nopLogger{})

			w := doRequest(h, tt.actorID, tt.id, tt.body)

			assert.Equal(t, tt.wantCode, w.Code)
			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantMsg, resp.Error)
		})
	}
}
