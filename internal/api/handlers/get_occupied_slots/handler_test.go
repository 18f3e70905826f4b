package get_occupied_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnushkaaaaS/Neighborly/internal/api/handlers"
	getOccupiedSlots "github.com/AnushkaaaaS/Neighborly/internal/usecase/get_occupied_slots"
	"github.com/AnushkaaaaS/Neighborly/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	got      *getOccupiedSlots.Request
	occupied []types.TimeString
	err      error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getOccupiedSlots.Request) (*getOccupiedSlots.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &getOccupiedSlots.Response{
		ServiceID: req.ServiceID,
		Date:      req.Date,
		Occupied:  f.occupied,
	}, nil
}

var ist = time.FixedZone("IST", 5*3600+1800)

func serve(h *Handler, url string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/services/{serviceId}/occupied-slots", h.Handle)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
	return w
}

func TestHandler_ReturnsOccupiedSlots(t *testing.T) {
	serviceID := uuid.New()
	uc := &fakeUseCase{occupied: []types.TimeString{"09:00:00", "10:30:00"}}
	h := NewHandler(uc, ist, nopLogger{})

	w := serve(h, "/services/"+serviceID.String()+"/occupied-slots?date=2025-03-10")

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, serviceID, uc.got.ServiceID)
	assert.Equal(t, "2025-03-10", uc.got.Date.In(ist).Format("2006-01-02"))

	var resp OccupiedSlotsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, serviceID.String(), resp.ServiceID)
	assert.Equal(t, "2025-03-10", resp.Date)
	assert.Equal(t, []string{"09:00:00", "10:30:00"}, resp.OccupiedSlots)
}

func TestHandler_EmptyDayIsEmptyList(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, ist, nopLogger{})

	w := serve(h, "/services/"+uuid.NewString()+"/occupied-slots?date=2025-03-10")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"occupiedSlots":[]`)
}

func TestHandler_Errors(t *testing.T) {
	serviceID := uuid.NewString()
	tests := []struct {
		name     string
		url      string
		ucErr    error
		wantCode int
		wantMsg  string
	}{
		{name: "missing date", url: "/services/" + serviceID + "/occupied-slots",
			wantCode: http.StatusBadRequest, wantMsg: msgMissingDate},
		{name: "malformed date", url: "/services/" + serviceID + "/occupied-slots?date=10-03-2025",
			wantCode: http.StatusBadRequest, wantMsg: msgInvalidDate},
		{name: "impossible date", url: "/services/" + serviceID + "/occupied-slots?date=2025-02-30",
			wantCode: http.StatusBadRequest, wantMsg: msgInvalidDate},
		{name: "bad service id", url: "/services/abc/occupied-slots?date=2025-03-10",
			wantCode: http.StatusBadRequest, wantMsg: msgInvalidServiceID},
		{name: "unknown service", url: "/services/" + serviceID + "/occupied-slots?date=2025-03-10",
			ucErr: getOccupiedSlots.ErrServiceNotFound, wantCode: http.StatusNotFound, wantMsg: msgServiceNotFound},
		{name: "internal", url: "/services/" + serviceID + "/occupied-slots?date=2025-03-10",
			ucErr: getOccupiedSlots.ErrInternal, wantCode: http.StatusInternalServerError, wantMsg: "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{err: tt.ucErr}

			w := serve(NewHandler(uc, ist, nopLogger{}), tt.url)

			assert.Equal(t, tt.wantCode, w.Code)
			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantMsg, resp.Error)
			if tt.ucErr == nil {
				assert.Nil(t, uc.got)
			}
		})
	}
}
