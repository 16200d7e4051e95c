package get_venue_schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/VenueBookingService/internal/domain"
	venueRepo "github.com/m04kA/VenueBookingService/internal/infra/storage/venue"
	"github.com/m04kA/VenueBookingService/pkg/ptr"
)

// UseCase use case для получения расписания площадки на день
type UseCase struct {
	bookingRepo BookingRepository
	venueRepo   VenueRepository
	rules       OperatingRules
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, venueRepo VenueRepository, rules OperatingRules, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		venueRepo:   venueRepo,
		rules:       rules,
		logger:      logger,
	}
}

// Execute возвращает занятые интервалы площадки и свободные окна в часах работы
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.VenueID <= 0 {
		return nil, fmt.Errorf("%w: venueId must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Календарная дата берется как есть, сутки считаются в часовом поясе политики
	year, month, dayOfMonth := req.Date.Date()
	loc := uc.rules.InLocation(req.Date).Location()
	dayStart := time.Date(year, month, dayOfMonth, 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	uc.logger.Info("GetVenueSchedule: venue=%d, date=%s", req.VenueID, dayStart.Format(domain.DateFormat))

	venue, err := uc.venueRepo.GetByID(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			uc.logger.Warn("GetVenueSchedule: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("GetVenueSchedule: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	bookings, err := uc.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{
		VenueIDs:        []int64{req.VenueID},
		OverlapFrom:     ptr.Ptr(dayStart),
		OverlapTo:       ptr.Ptr(dayEnd),
		ExcludeRejected: true,
	})
	if err != nil {
		uc.logger.Error("GetVenueSchedule: failed to get bookings for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	openFrom := uc.rules.EarliestStartOn(dayStart)
	openMinutes, err := openFrom.Minutes()
	if err != nil {
		uc.logger.Error("GetVenueSchedule: invalid earliest start %q: %v", openFrom, err)
		return nil, fmt.Errorf("%w: invalid earliest start: %v", ErrInternal, err)
	}
	openAt := dayStart.Add(time.Duration(openMinutes) * time.Minute)

	busy := make([]BusyInterval, 0, len(bookings))
	for _, b := range bookings {
		busy = append(busy, BusyInterval{
			BookingID: b.ID,
			ClubID:    b.ClubID,
			EventName: b.EventName,
			Status:    b.Status,
			Interval:  Interval{Start: b.StartTime, End: b.EndTime},
		})
	}

	return &Response{
		Venue:    venue,
		Date:     dayStart,
		OpenFrom: openFrom,
		Busy:     busy,
		Free:     freeWindows(openAt, dayEnd, busy),
	}, nil
}

// freeWindows вычитает занятые интервалы из окна [from, to).
// busy должны быть отсортированы по началу.
func freeWindows(from, to time.Time, busy []BusyInterval) []Interval {
	free := make([]Interval, 0)
	cursor := from

	for _, b := range busy {
		if !b.End.After(cursor) {
			continue
		}
		if !b.Start.Before(to) {
			break
		}
		if b.Start.After(cursor) {
			free = append(free, Interval{Start: cursor, End: b.Start})
		}
		cursor = b.End
	}

	if cursor.Before(to) {
		free = append(free, Interval{Start: cursor, End: to})
	}

	return free
}
