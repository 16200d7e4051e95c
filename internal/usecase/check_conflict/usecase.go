package check_conflict

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/m04kA/VenueBookingService/internal/domain"
	clubRepo "github.com/m04kA/VenueBookingService/internal/infra/storage/club"
)

// UseCase use case для предварительной проверки пересечений
type UseCase struct {
	venueRepo VenueRepository
	clubRepo  ClubRepository
	detector  ConflictDetector
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(venueRepo VenueRepository, clubRepo ClubRepository, detector ConflictDetector, logger Logger) *UseCase {
	return &UseCase{
		venueRepo: venueRepo,
		clubRepo:  clubRepo,
		detector:  detector,
		logger:    logger,
	}
}

// Execute выполняет ту же проверку пересечений, что и подача заявки, ничего не записывая
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckConflict: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CheckConflict: club=%d, venues=%v, start=%s, end=%s",
		req.ClubID, req.VenueIDs, req.StartTime, req.EndTime)

	if !req.Caller.CanActForClub(req.ClubID) {
		uc.logger.Warn("CheckConflict: user=%d cannot act for club=%d", req.Caller.UserID, req.ClubID)
		return nil, ErrForbidden
	}

	club, err := uc.clubRepo.GetByID(ctx, req.ClubID)
	if err != nil {
		if errors.Is(err, clubRepo.ErrClubNotFound) {
			uc.logger.Warn("CheckConflict: club id=%d not found", req.ClubID)
			return nil, ErrClubNotFound
		}
		uc.logger.Error("CheckConflict: failed to get club id=%d: %v", req.ClubID, err)
		return nil, fmt.Errorf("%w: failed to get club: %v", ErrInternal, err)
	}

	found, err := uc.venueRepo.GetByIDs(ctx, req.VenueIDs)
	if err != nil {
		uc.logger.Error("CheckConflict: failed to get venues %v: %v", req.VenueIDs, err)
		return nil, fmt.Errorf("%w: failed to get venues: %v", ErrInternal, err)
	}
	if len(found) != len(req.VenueIDs) {
		uc.logger.Warn("CheckConflict: some of venues %v not found", req.VenueIDs)
		return nil, ErrVenueNotFound
	}

	// Порядок площадок в сообщении - как в запросе
	byID := make(map[int64]int, len(req.VenueIDs))
	for i, id := range req.VenueIDs {
		byID[id] = i
	}
	venues := make([]*domain.Venue, len(found))
	copy(venues, found)
	sort.SliceStable(venues, func(i, j int) bool { return byID[venues[i].ID] < byID[venues[j].ID] })

	result, err := uc.detector.Check(ctx, venues, req.StartTime, req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to check conflicts: %v", ErrInternal, err)
	}

	if !result.HasConflict {
		groupResult, err := uc.detector.CheckGroup(ctx, club, req.StartTime, req.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to check group conflicts: %v", ErrInternal, err)
		}
		result = groupResult
	}

	resp := &Response{HasConflict: result.HasConflict, Message: result.Message}
	for _, v := range result.Venues {
		resp.VenueIDs = append(resp.VenueIDs, v.ID)
	}

	return resp, nil
}
