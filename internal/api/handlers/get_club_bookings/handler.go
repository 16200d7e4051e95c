package get_club_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/VenueBookingService/internal/api/handlers"
	"github.com/m04kA/VenueBookingService/internal/api/middleware"
	"github.com/m04kA/VenueBookingService/internal/service/bookings"
)

const (
	msgInvalidClubID = "некорректный ID клуба"
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidParams = "некорректные параметры запроса"
	msgForbidden     = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/clubs/{clubId}/bookings
// Query params: from, to (RFC3339), status, includeRejected (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clubID, err := strconv.ParseInt(mux.Vars(r)["clubId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /clubs/{id}/bookings - Invalid club ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClubID)
		return
	}

	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		h.logger.Warn("GET /clubs/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()
	serviceReq, err := ToServiceRequest(caller, clubID,
		query.Get("from"), query.Get("to"), query.Get("status"), query.Get("includeRejected"))
	if err != nil {
		h.logger.Warn("GET /clubs/{id}/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Права клуба проверяет сервис
	result, err := h.service.GetClubBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /clubs/{id}/bookings - Access denied: club_id=%d, user_id=%d",
				clubID, caller.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /clubs/{id}/bookings - Invalid filter: club_id=%d, error=%v", clubID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /clubs/{id}/bookings - Failed to get bookings: club_id=%d, error=%v",
				clubID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /clubs/{id}/bookings - Bookings retrieved successfully: club_id=%d, count=%d",
		clubID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
