package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/VenueBookingService/internal/api/handlers"
	"github.com/m04kA/VenueBookingService/internal/api/middleware"
	createBooking "github.com/m04kA/VenueBookingService/internal/usecase/create_booking"
)

const (
	msgUnauthorized         = "пользователь не определен"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidTime          = "некорректный формат времени, ожидается RFC3339"
	msgInvalidInput         = "некорректные данные заявки"
	msgForbidden            = "нельзя подать заявку от имени другого клуба"
	msgPolicyViolation      = "заявка нарушает правила бронирования"
	msgCapacityExceeded     = "участников больше, чем вмещает площадка"
	msgClubNotFound         = "клуб не найден"
	msgVenueNotFound        = "площадка не найдена"
	msgVenueConflict        = "площадка уже занята в это время"
	msgGroupConflict        = "у клуба той же группы уже есть мероприятие в это время"
	msgQuotaExceeded        = "клуб исчерпал лимит мероприятий в семестре"
	msgConcurrentSubmission = "площадка бронируется параллельно, повторите попытку"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(caller)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		reason := createBooking.Reason(err)

		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: club_id=%d, error=%v", req.ClubID, err)
			handlers.RespondRejected(w, http.StatusBadRequest, msgInvalidInput, reason)

		case errors.Is(err, createBooking.ErrForbidden):
			h.logger.Warn("POST /bookings - Forbidden: user_id=%d, club_id=%d", caller.UserID, req.ClubID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, createBooking.ErrAdvanceNotice),
			errors.Is(err, createBooking.ErrOutsideOperatingHours):
			h.logger.Warn("POST /bookings - Policy violation: club_id=%d, reason=%s", req.ClubID, reason)
			handlers.RespondRejected(w, http.StatusBadRequest, msgPolicyViolation, reason)

		case errors.Is(err, createBooking.ErrCapacityExceeded):
			h.logger.Warn("POST /bookings - Capacity exceeded: club_id=%d, reason=%s", req.ClubID, reason)
			handlers.RespondRejected(w, http.StatusUnprocessableEntity, msgCapacityExceeded, reason)

		case errors.Is(err, createBooking.ErrClubNotFound):
			h.logger.Warn("POST /bookings - Club not found: club_id=%d", req.ClubID)
			handlers.RespondNotFound(w, msgClubNotFound)

		case errors.Is(err, createBooking.ErrVenueNotFound):
			h.logger.Warn("POST /bookings - Venue not found: club_id=%d, reason=%s", req.ClubID, reason)
			handlers.RespondRejected(w, http.StatusNotFound, msgVenueNotFound, reason)

		case errors.Is(err, createBooking.ErrVenueConflict):
			h.logger.Warn("POST /bookings - Venue conflict: club_id=%d, reason=%s", req.ClubID, reason)
			handlers.RespondRejected(w, http.StatusConflict, msgVenueConflict, reason)

		case errors.Is(err, createBooking.ErrGroupConflict):
			h.logger.Warn("POST /bookings - Group conflict: club_id=%d, reason=%s", req.ClubID, reason)
			handlers.RespondRejected(w, http.StatusConflict, msgGroupConflict, reason)

		case errors.Is(err, createBooking.ErrQuotaExceeded):
			h.logger.Warn("POST /bookings - Quota exceeded: club_id=%d, reason=%s", req.ClubID, reason)
			handlers.RespondRejected(w, http.StatusConflict, msgQuotaExceeded, reason)

		case errors.Is(err, createBooking.ErrConcurrentSubmission):
			h.logger.Warn("POST /bookings - Concurrent submission: club_id=%d", req.ClubID)
			handlers.RespondRejected(w, http.StatusConflict, msgConcurrentSubmission, reason)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, club_id=%d, error=%v",
				caller.UserID, req.ClubID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: batch_id=%s, rows=%d, club_id=%d",
		result.BatchID, len(result.Created), req.ClubID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
