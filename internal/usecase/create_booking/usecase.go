package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/VenueBookingService/internal/domain"
	bookingRepo "github.com/m04kA/VenueBookingService/internal/infra/storage/booking"
	clubRepo "github.com/m04kA/VenueBookingService/internal/infra/storage/club"
	"github.com/m04kA/VenueBookingService/internal/integrations/approvers"
	"github.com/m04kA/VenueBookingService/internal/service/policy"
	"github.com/m04kA/VenueBookingService/pkg/txmanager"
	"github.com/m04kA/VenueBookingService/pkg/venuelock"
)

// Результаты подачи заявки для метрики booking_submissions_total
const (
	resultCreated  = "created"
	resultInvalid  = "invalid"
	resultPolicy   = "policy"
	resultNotFound = "not_found"
	resultConflict = "conflict"
	resultQuota    = "quota"
	resultError    = "error"
)

// UseCase use case подачи заявки на бронирование
type UseCase struct {
	bookingRepo  BookingRepository
	venueRepo    VenueRepository
	clubRepo     ClubRepository
	detector     ConflictDetector
	quota        QuotaCounter
	rules        policy.Rules
	locker       VenueLocker
	notifier     Notifier
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	newBatchID   func() string
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	venueRepo VenueRepository,
	clubRepo ClubRepository,
	detector ConflictDetector,
	quota QuotaCounter,
	rules policy.Rules,
	locker VenueLocker,
	notifier Notifier,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		venueRepo:    venueRepo,
		clubRepo:     clubRepo,
		detector:     detector,
		quota:        quota,
		rules:        rules,
		locker:       locker,
		notifier:     notifier,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		newBatchID:   uuid.NewString,
		logger:       logger,
	}
}

// Execute выполняет use case подачи заявки.
// Порядок шагов фиксирован: сначала дешевые локальные проверки, затем запросы к хранилищу.
// Первая непройденная проверка прерывает заявку, до записи ничего не сохраняется.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	resp, err := uc.execute(ctx, req)
	uc.metrics.IncBookingSubmission(outcome(err))
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация формы заявки
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateBooking: user=%d, club=%d, venues=%v, type=%s, start=%s, end=%s",
		req.Caller.UserID, req.ClubID, req.VenueIDs, req.EventType,
		req.StartTime.Format(time.RFC3339), req.EndTime.Format(time.RFC3339))

	if !req.Caller.CanActForClub(req.ClubID) {
		uc.logger.Warn("CreateBooking: user=%d (role=%s) cannot act for club=%d", req.Caller.UserID, req.Caller.Role, req.ClubID)
		return nil, ErrForbidden
	}

	// 2. Срок подачи и часы работы
	now := uc.timeProvider.Now()
	if err := uc.rules.CheckAdvanceNotice(req.EventType, req.StartTime, now); err != nil {
		uc.logger.Warn("CreateBooking: advance notice failed: %v", err)
		return nil, policyRejection(ErrAdvanceNotice, err)
	}
	if err := uc.rules.CheckOperatingHours(req.StartTime, req.EndTime); err != nil {
		uc.logger.Warn("CreateBooking: operating hours failed: %v", err)
		return nil, policyRejection(ErrOutsideOperatingHours, err)
	}

	// 3. Клуб и площадки
	club, err := uc.clubRepo.GetByID(ctx, req.ClubID)
	if err != nil {
		if errors.Is(err, clubRepo.ErrClubNotFound) {
			uc.logger.Warn("CreateBooking: club id=%d not found", req.ClubID)
			return nil, reject(ErrClubNotFound, "club %d does not exist", req.ClubID)
		}
		uc.logger.Error("CreateBooking: failed to get club id=%d: %v", req.ClubID, err)
		return nil, fmt.Errorf("%w: failed to get club: %v", ErrInternal, err)
	}

	found, err := uc.venueRepo.GetByIDs(ctx, req.VenueIDs)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get venues %v: %v", req.VenueIDs, err)
		return nil, fmt.Errorf("%w: failed to get venues: %v", ErrInternal, err)
	}
	venues, missing := orderVenues(req.VenueIDs, found)
	if len(missing) > 0 {
		uc.logger.Warn("CreateBooking: venues %v not found", missing)
		return nil, reject(ErrVenueNotFound, "venue(s) %v do not exist", missing)
	}

	// Точка сериализации заявок на одни и те же площадки
	release, err := uc.locker.Acquire(ctx, req.VenueIDs)
	switch {
	case errors.Is(err, venuelock.ErrLocked):
		uc.logger.Warn("CreateBooking: venues %v are locked by another submission", req.VenueIDs)
		return nil, reject(ErrConcurrentSubmission, "another booking for the same venue is being processed, try again")
	case err != nil:
		// Без redis гонку закрывают ограничение в БД и сериализуемая транзакция
		uc.logger.Warn("CreateBooking: venue lock unavailable, continuing without it: %v", err)
		release = nil
	}
	if release != nil {
		defer func() {
			if err := release(context.WithoutCancel(ctx)); err != nil {
				uc.logger.Warn("CreateBooking: failed to release venue locks: %v", err)
			}
		}()
	}

	batchID := uc.newBatchID()
	var created []*domain.Booking

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4. Квота
		if req.EventType.IsQuotaBound() {
			if err := uc.checkQuota(txCtx, req); err != nil {
				return err
			}
		}

		// 5. Пересечения по площадкам
		result, err := uc.detector.Check(txCtx, venues, req.StartTime, req.EndTime)
		if err != nil {
			return uc.translateReadError("failed to check conflicts", err)
		}
		if result.HasConflict {
			uc.logger.Warn("CreateBooking: conflict for club=%d: %s", req.ClubID, result.Message)
			return reject(ErrVenueConflict, "%s", result.Message)
		}

		groupResult, err := uc.detector.CheckGroup(txCtx, club, req.StartTime, req.EndTime)
		if err != nil {
			return uc.translateReadError("failed to check group conflicts", err)
		}
		if groupResult.HasConflict {
			uc.logger.Warn("CreateBooking: group conflict for club=%d: %s", req.ClubID, groupResult.Message)
			return reject(ErrGroupConflict, "%s", groupResult.Message)
		}

		// 6. Вместимость
		if err := uc.rules.CheckCapacity(venues, req.ExpectedAttendees); err != nil {
			uc.logger.Warn("CreateBooking: capacity failed: %v", err)
			return policyRejection(ErrCapacityExceeded, err)
		}

		// 7. Статус для каждой площадки
		statuses := make([]domain.BookingStatus, len(venues))
		for i, venue := range venues {
			status, err := statusForVenue(venue)
			if err != nil {
				uc.logger.Error("CreateBooking: %v", err)
				return err
			}
			statuses[i] = status
		}

		// 8. Одна строка на площадку с общим batch_id
		created = make([]*domain.Booking, 0, len(venues))
		for i, venue := range venues {
			booking, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
				ClubID:            req.ClubID,
				VenueID:           venue.ID,
				EventName:         strings.TrimSpace(req.EventName),
				StartTime:         req.StartTime,
				EndTime:           req.EndTime,
				Status:            statuses[i],
				EventType:         req.EventType,
				ExpectedAttendees: req.ExpectedAttendees,
				BatchID:           &batchID,
				IsPublic:          req.EventType == domain.EventTypeOpenAll,
				CreatedBy:         req.Caller.UserID,
			})
			if err != nil {
				return uc.translateCreateError(err, venue)
			}
			created = append(created, booking)
		}

		return nil
	})

	if err != nil {
		return nil, uc.translateTxError(err)
	}

	uc.logger.Info("CreateBooking: created %d booking(s), batch_id=%s, club=%d", len(created), batchID, req.ClubID)

	resp := &Response{BatchID: batchID, Created: created}

	// 9. Уведомление администраторов, ошибки не влияют на результат
	if resp.HasPending() {
		uc.notifyPending(ctx, batchID, club, venues, created)
	}

	return resp, nil
}

// checkQuota отказывает, если клуб уже набрал лимит мероприятий в семестре начала события
func (uc *UseCase) checkQuota(ctx context.Context, req *Request) error {
	limit, limited := uc.quota.Limit(req.EventType)
	if !limited {
		return nil
	}

	window := domain.SemesterWindowFor(uc.rules.InLocation(req.StartTime))
	count, err := uc.quota.CountEvents(ctx, req.ClubID, req.EventType, window)
	if err != nil {
		return uc.translateReadError("failed to count events", err)
	}

	if count >= limit {
		uc.logger.Warn("CreateBooking: quota reached for club=%d, type=%s, semester=%s: %d/%d",
			req.ClubID, req.EventType, window.Label(), count, limit)
		return reject(ErrQuotaExceeded, "the limit of %d %s events per semester has been reached for %s",
			limit, req.EventType, window.Label())
	}

	return nil
}

// translateReadError отделяет конфликт сериализации при чтении внутри транзакции от прочих сбоев
func (uc *UseCase) translateReadError(op string, err error) error {
	if errors.Is(err, bookingRepo.ErrSerialization) {
		uc.logger.Warn("CreateBooking: serialization failure while reading: %v", err)
		return reject(ErrConcurrentSubmission, "another booking for the same venue is being processed, try again")
	}
	return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
}

func (uc *UseCase) translateCreateError(err error, venue *domain.Venue) error {
	switch {
	case errors.Is(err, bookingRepo.ErrOverlap):
		uc.logger.Warn("CreateBooking: insert rejected by overlap constraint, venue=%d", venue.ID)
		return reject(ErrVenueConflict, "already booked for the requested time: %s", venue.Name)
	case errors.Is(err, bookingRepo.ErrSerialization):
		return reject(ErrConcurrentSubmission, "another booking for the same venue is being processed, try again")
	case errors.Is(err, bookingRepo.ErrReferenceNotFound):
		return reject(ErrVenueNotFound, "venue %d does not exist", venue.ID)
	default:
		uc.logger.Error("CreateBooking: failed to create booking for venue=%d: %v", venue.ID, err)
		return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}
}

func (uc *UseCase) translateTxError(err error) error {
	switch {
	case errors.Is(err, txmanager.ErrSerializationFailure):
		uc.logger.Warn("CreateBooking: serialization failure on commit: %v", err)
		return reject(ErrConcurrentSubmission, "another booking for the same venue is being processed, try again")
	case errors.Is(err, txmanager.ErrTransaction):
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	case errors.Is(err, ErrInternal):
		uc.logger.Error("CreateBooking: %v", err)
		return err
	default:
		return err
	}
}

func (uc *UseCase) notifyPending(ctx context.Context, batchID string, club *domain.Club, venues []*domain.Venue, created []*domain.Booking) {
	names := make(map[int64]string, len(venues))
	for _, v := range venues {
		names[v.ID] = v.Name
	}

	items := make([]approvers.PendingItem, 0, len(created))
	for _, b := range created {
		if b.Status != domain.StatusPending {
			continue
		}
		items = append(items, approvers.PendingItem{
			BookingID: b.ID,
			VenueName: names[b.VenueID],
			EventName: b.EventName,
			StartTime: b.StartTime,
			EndTime:   b.EndTime,
			ClubName:  club.Name,
		})
	}

	if err := uc.notifier.NotifyPending(ctx, batchID, items); err != nil {
		uc.metrics.IncNotificationFailure()
		uc.logger.Error("CreateBooking: failed to notify approvers, batch_id=%s: %v", batchID, err)
	}
}

// policyRejection переносит причину нарушения правила в ошибку usecase
func policyRejection(kind error, err error) error {
	var violation *policy.Violation
	if errors.As(err, &violation) {
		return reject(kind, "%s", violation.Reason)
	}
	return reject(ErrInvalidInput, "%v", err)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return resultCreated
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrForbidden):
		return resultInvalid
	case errors.Is(err, ErrAdvanceNotice), errors.Is(err, ErrOutsideOperatingHours), errors.Is(err, ErrCapacityExceeded):
		return resultPolicy
	case errors.Is(err, ErrClubNotFound), errors.Is(err, ErrVenueNotFound):
		return resultNotFound
	case errors.Is(err, ErrQuotaExceeded):
		return resultQuota
	case errors.Is(err, ErrVenueConflict), errors.Is(err, ErrGroupConflict), errors.Is(err, ErrConcurrentSubmission):
		return resultConflict
	default:
		return resultError
	}
}
