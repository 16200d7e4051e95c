package get_quota_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/VenueBookingService/internal/api/handlers"
	"github.com/m04kA/VenueBookingService/internal/api/middleware"
	getQuotaStatus "github.com/m04kA/VenueBookingService/internal/usecase/get_quota_status"
)

const (
	msgUnauthorized  = "пользователь не определен"
	msgInvalidClubID = "некорректный ID клуба"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput  = "некорректные параметры запроса"
	msgForbidden     = "доступ запрещен"
	msgClubNotFound  = "клуб не найден"
)

type Handler struct {
	useCase GetQuotaStatusUseCase
	logger  Logger
}

func NewHandler(useCase GetQuotaStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/clubs/{clubId}/quota
// Query params: eventType, date (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	clubID, err := strconv.ParseInt(mux.Vars(r)["clubId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /clubs/{id}/quota - Invalid club ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClubID)
		return
	}

	useCaseReq, err := ToUseCaseRequest(caller, clubID, r.URL.Query().Get("eventType"), r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /clubs/{id}/quota - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getQuotaStatus.ErrInvalidInput):
			h.logger.Warn("GET /clubs/{id}/quota - Invalid input: club_id=%d, error=%v", clubID, err)
			handlers.RespondRejected(w, http.StatusBadRequest, msgInvalidInput, getQuotaStatus.Reason(err))

		case errors.Is(err, getQuotaStatus.ErrForbidden):
			h.logger.Warn("GET /clubs/{id}/quota - Access denied: club_id=%d, user_id=%d", clubID, caller.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, getQuotaStatus.ErrClubNotFound):
			h.logger.Warn("GET /clubs/{id}/quota - Club not found: club_id=%d", clubID)
			handlers.RespondNotFound(w, msgClubNotFound)

		default:
			h.logger.Error("GET /clubs/{id}/quota - Failed to get quota: club_id=%d, error=%v", clubID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /clubs/{id}/quota - Quota retrieved: club_id=%d, count=%d, limit=%d",
		clubID, result.Count, result.Limit)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
