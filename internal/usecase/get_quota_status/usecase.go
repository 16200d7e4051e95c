package get_quota_status

import (
	"context"
	"errors"
	"fmt"
	"time"

	clubRepo "github.com/m04kA/VenueBookingService/internal/infra/storage/club"
)

// UseCase use case для получения использования квоты клуба
type UseCase struct {
	counter      QuotaCounter
	clubRepo     ClubRepository
	zone         PolicyZone
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(counter QuotaCounter, clubRepo ClubRepository, zone PolicyZone, logger Logger) *UseCase {
	return &UseCase{
		counter:      counter,
		clubRepo:     clubRepo,
		zone:         zone,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute возвращает число различных мероприятий клуба в семестре и лимит.
// Для типов без квоты Limit = 0 и Limited = false.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.ClubID <= 0 {
		return nil, reject(ErrInvalidInput, "clubId must be positive")
	}
	if !req.EventType.IsValid() {
		return nil, reject(ErrInvalidInput, "unknown eventType %q", req.EventType)
	}

	if !req.Caller.CanActForClub(req.ClubID) {
		uc.logger.Warn("GetQuotaStatus: user=%d cannot act for club=%d", req.Caller.UserID, req.ClubID)
		return nil, ErrForbidden
	}

	asOf := uc.asOf(req)

	if _, err := uc.clubRepo.GetByID(ctx, req.ClubID); err != nil {
		if errors.Is(err, clubRepo.ErrClubNotFound) {
			return nil, ErrClubNotFound
		}
		uc.logger.Error("GetQuotaStatus: failed to get club id=%d: %v", req.ClubID, err)
		return nil, fmt.Errorf("%w: failed to get club: %v", ErrInternal, err)
	}

	status, err := uc.counter.Status(ctx, req.ClubID, req.EventType, asOf)
	if err != nil {
		uc.logger.Error("GetQuotaStatus: failed to count events for club=%d: %v", req.ClubID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	remaining := 0
	if status.Limited && status.Limit > status.Count {
		remaining = status.Limit - status.Count
	}

	uc.logger.Info("GetQuotaStatus: club=%d, type=%s, semester=%s, count=%d, limit=%d",
		req.ClubID, req.EventType, status.Window.Label(), status.Count, status.Limit)

	return &Response{
		ClubID:      req.ClubID,
		EventType:   req.EventType,
		Semester:    status.Window.Label(),
		WindowStart: status.Window.Start,
		WindowEnd:   status.Window.End,
		Count:       status.Count,
		Limit:       status.Limit,
		Limited:     status.Limited,
		Remaining:   remaining,
	}, nil
}

// asOf момент в поясе политики, по которому выбирается семестр.
// Дата из запроса трактуется как календарный день в этом поясе.
func (uc *UseCase) asOf(req *Request) time.Time {
	if req.AsOf == nil {
		return uc.zone.InLocation(uc.timeProvider.Now())
	}
	loc := uc.zone.InLocation(*req.AsOf).Location()
	year, month, day := req.AsOf.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}
