package check_conflict

import (
	"errors"
	"net/http"

	"github.com/m04kA/VenueBookingService/internal/api/handlers"
	"github.com/m04kA/VenueBookingService/internal/api/middleware"
	checkConflict "github.com/m04kA/VenueBookingService/internal/usecase/check_conflict"
)

const (
	msgUnauthorized       = "пользователь не определен"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC3339"
	msgInvalidInput       = "некорректные параметры проверки"
	msgForbidden          = "нельзя проверять от имени другого клуба"
	msgClubNotFound       = "клуб не найден"
	msgVenueNotFound      = "площадка не найдена"
)

type Handler struct {
	useCase CheckConflictUseCase
	logger  Logger
}

func NewHandler(useCase CheckConflictUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/conflicts
// Ничего не записывает, занятость площадок возвращается с кодом 200
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CheckConflictRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/conflicts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(caller)
	if err != nil {
		h.logger.Warn("POST /bookings/conflicts - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkConflict.ErrInvalidInput):
			h.logger.Warn("POST /bookings/conflicts - Invalid input: %v", err)
			handlers.RespondRejected(w, http.StatusBadRequest, msgInvalidInput, checkConflict.Reason(err))

		case errors.Is(err, checkConflict.ErrForbidden):
			h.logger.Warn("POST /bookings/conflicts - Forbidden: user_id=%d, club_id=%d", caller.UserID, req.ClubID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, checkConflict.ErrClubNotFound):
			h.logger.Warn("POST /bookings/conflicts - Club not found: club_id=%d", req.ClubID)
			handlers.RespondNotFound(w, msgClubNotFound)

		case errors.Is(err, checkConflict.ErrVenueNotFound):
			h.logger.Warn("POST /bookings/conflicts - Venue not found: venue_ids=%v", req.VenueIDs)
			handlers.RespondNotFound(w, msgVenueNotFound)

		default:
			h.logger.Error("POST /bookings/conflicts - Failed to check conflicts: club_id=%d, error=%v", req.ClubID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/conflicts - Checked: club_id=%d, has_conflict=%t", req.ClubID, result.HasConflict)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
