package get_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/VenueBookingService/internal/api/middleware"
	"github.com/m04kA/VenueBookingService/internal/domain"
	"github.com/m04kA/VenueBookingService/internal/service/bookings"
	"github.com/m04kA/VenueBookingService/internal/service/bookings/models"
	"github.com/m04kA/VenueBookingService/internal/testfixtures"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) GetByID(ctx context.Context, id int64, caller domain.Caller) (*models.BookingResponse, error) {
	args := m.Called(ctx, id, caller)
	resp, _ := args.Get(0).(*models.BookingResponse)
	return resp, args.Error(1)
}

func serve(svc *mockService, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/bookings/{bookingId}", NewHandler(svc, testfixtures.NopLogger{}).Handle)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = req.WithContext(middleware.WithCaller(req.Context(), domain.Caller{UserID: 1, Role: domain.RoleAdmin}))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		err        error
		wantStatus int
	}{
		{name: "found", target: "/bookings/9", wantStatus: http.StatusOK},
		{name: "bad id", target: "/bookings/nine", wantStatus: http.StatusBadRequest},
		{name: "not found", target: "/bookings/9", err: bookings.ErrBookingNotFound, wantStatus: http.StatusNotFound},
		{name: "other club", target: "/bookings/9", err: bookings.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "internal", target: "/bookings/9", err: bookings.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			if tt.err != nil {
				svc.On("GetByID", mock.Anything, int64(9), mock.Anything).Return(nil, tt.err)
			} else {
				svc.On("GetByID", mock.Anything, int64(9), mock.Anything).Return(&models.BookingResponse{ID: 9}, nil)
			}

			assert.Equal(t, tt.wantStatus, serve(svc, tt.target).Code)
		})
	}
}
