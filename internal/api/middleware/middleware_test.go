package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/VenueBookingService/internal/domain"
)

func TestAuth(t *testing.T) {
	var got domain.Caller
	handler := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, ok := GetCaller(r.Context())
		require.True(t, ok)
		got = caller
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name       string
		headers    map[string]string
		wantStatus int
	}{
		{name: "admin", headers: map[string]string{HeaderUserID: "7", HeaderRole: "admin"}, wantStatus: http.StatusNoContent},
		{name: "club", headers: map[string]string{HeaderUserID: "8", HeaderRole: "club", HeaderClubID: "3"}, wantStatus: http.StatusNoContent},
		{name: "missing user", headers: map[string]string{HeaderRole: "admin"}, wantStatus: http.StatusUnauthorized},
		{name: "club without club id", headers: map[string]string{HeaderUserID: "8", HeaderRole: "club"}, wantStatus: http.StatusUnauthorized},
		{name: "unknown role", headers: map[string]string{HeaderUserID: "8", HeaderRole: "root"}, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderUserID, "8")
	req.Header.Set(HeaderRole, "club")
	req.Header.Set(HeaderClubID, "3")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	require.NotNil(t, got.ClubID)
	assert.Equal(t, int64(3), *got.ClubID)
	assert.True(t, got.CanActForClub(3))
}

type observation struct {
	method, route, status string
}

type recordingHTTPMetrics struct {
	mu  sync.Mutex
	obs []observation
}

func (m *recordingHTTPMetrics) ObserveHTTPRequest(method, route, status string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.obs = append(m.obs, observation{method, route, status})
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	collector := &recordingHTTPMetrics{}
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(collector))
	r.HandleFunc("/bookings/{bookingId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/bookings/42", nil))

	require.Len(t, collector.obs, 1)
	assert.Equal(t, observation{"GET", "/bookings/{bookingId}", "404"}, collector.obs[0])
}
