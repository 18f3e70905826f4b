package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		userID = "anonymous"
	}
	_, _ = w.Write([]byte(userID))
}

func signed(t *testing.T, secret string, claims jwt.RegisteredClaims, method jwt.SigningMethod) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestAuth_HeaderMode(t *testing.T) {
	h := NewAuth("", "").Required(http.HandlerFunc(echoUser))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(HeaderUserID, "user-1")
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", w.Body.String())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_JWTMode(t *testing.T) {
	const secret = "s3cret"
	auth := NewAuth(secret, "neighborly")
	h := auth.Required(http.HandlerFunc(echoUser))

	valid := signed(t, secret, jwt.RegisteredClaims{
		Subject:   "user-42",
		Issuer:    "neighborly",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}, jwt.SigningMethodHS256)

	tests := []struct {
		name     string
		header   string
		wantCode int
		wantBody string
	}{
		{name: "valid token", header: "Bearer " + valid, wantCode: http.StatusOK, wantBody: "user-42"},
		{name: "missing header", wantCode: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + valid, wantCode: http.StatusUnauthorized},
		{
			name: "wrong secret",
			header: "Bearer " + signed(t, "other", jwt.RegisteredClaims{Subject: "user-42", Issuer: "neighborly"},
				jwt.SigningMethodHS256),
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "wrong issuer",
			header: "Bearer " + signed(t, secret, jwt.RegisteredClaims{Subject: "user-42", Issuer: "someone"},
				jwt.SigningMethodHS256),
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "expired",
			header: "Bearer " + signed(t, secret, jwt.RegisteredClaims{
				Subject:   "user-42",
				Issuer:    "neighborly",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			}, jwt.SigningMethodHS256),
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "no subject",
			header:   "Bearer " + signed(t, secret, jwt.RegisteredClaims{Issuer: "neighborly"}, jwt.SigningMethodHS256),
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "other hmac algorithm",
			header: "Bearer " + signed(t, secret, jwt.RegisteredClaims{Subject: "user-42", Issuer: "neighborly"},
				jwt.SigningMethodHS512),
			wantCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}

			h.ServeHTTP(w, r)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestAuth_Optional(t *testing.T) {
	h := NewAuth("", "").Optional(http.HandlerFunc(echoUser))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anonymous", w.Body.String())
}

type recordedRequest struct {
	method, route, status string
}

type fakeHTTPMetrics struct {
	mu       sync.Mutex
	requests []recordedRequest
}

func (f *fakeHTTPMetrics) ObserveHTTPRequest(method, route, status string, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, recordedRequest{method, route, status})
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := &fakeHTTPMetrics{}
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/bookings/{bookingId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/bookings/abc", nil))

	require.Len(t, m.requests, 1)
	assert.Equal(t, recordedRequest{"GET", "/bookings/{bookingId}", "404"}, m.requests[0])
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestRecover(t *testing.T) {
	h := Recover(nopLogger{})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
