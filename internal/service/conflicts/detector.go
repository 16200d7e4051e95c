package conflicts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/VenueBookingService/internal/domain"
	"github.com/m04kA/VenueBookingService/pkg/ptr"
)

// Result результат проверки пересечений
type Result struct {
	HasConflict bool
	Message     string
	Venues      []*domain.Venue   // площадки, на которых найдено пересечение
	Bookings    []*domain.Booking // пересекающиеся бронирования
}

// Detector ищет существующие не отклонённые бронирования, пересекающие окно [start, end)
type Detector struct {
	bookingRepo  BookingRepository
	groupEnabled bool
	logger       Logger
}

// NewDetector groupConflictEnabled включает устаревшее правило когорт (по умолчанию выключено)
func NewDetector(bookingRepo BookingRepository, groupConflictEnabled bool, logger Logger) *Detector {
	return &Detector{
		bookingRepo:  bookingRepo,
		groupEnabled: groupConflictEnabled,
		logger:       logger,
	}
}

// GroupRuleEnabled сообщает, включено ли правило когорт
func (d *Detector) GroupRuleEnabled() bool {
	return d.groupEnabled
}

// Check проверяет пересечения по площадкам. Отклонённые бронирования не блокируют.
// Один и тот же предикат используется и для предварительной проверки, и при подаче заявки.
func (d *Detector) Check(ctx context.Context, venues []*domain.Venue, start, end time.Time) (*Result, error) {
	venueIDs := make([]int64, 0, len(venues))
	for _, v := range venues {
		venueIDs = append(venueIDs, v.ID)
	}

	bookings, err := d.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{
		VenueIDs:        venueIDs,
		OverlapFrom:     ptr.Ptr(start),
		OverlapTo:       ptr.Ptr(end),
		ExcludeRejected: true,
	})
	if err != nil {
		d.logger.Error("CheckConflicts: failed to get bookings for venues=%v: %v", venueIDs, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
	}

	conflicting := make([]*domain.Booking, 0)
	busyVenues := make(map[int64]struct{})
	for _, b := range bookings {
		if !b.IsBlocking() || !b.Overlaps(start, end) {
			continue
		}
		conflicting = append(conflicting, b)
		busyVenues[b.VenueID] = struct{}{}
	}

	if len(conflicting) == 0 {
		return &Result{HasConflict: false}, nil
	}

	// Порядок площадок - как в запросе, без повторов
	result := &Result{HasConflict: true, Bookings: conflicting}
	names := make([]string, 0, len(busyVenues))
	for _, v := range venues {
		if _, ok := busyVenues[v.ID]; !ok {
			continue
		}
		delete(busyVenues, v.ID)
		result.Venues = append(result.Venues, v)
		names = append(names, v.Name)
	}
	result.Message = fmt.Sprintf("already booked for the requested time: %s", strings.Join(names, ", "))

	d.logger.Info("CheckConflicts: %d conflicting booking(s) on venues [%s]", len(conflicting), strings.Join(names, ", "))
	return result, nil
}

// CheckGroup устаревшее правило: два клуба одной когорты не могут проводить события одновременно.
// Выполняется только если правило включено в конфигурации.
func (d *Detector) CheckGroup(ctx context.Context, club *domain.Club, start, end time.Time) (*Result, error) {
	if !d.groupEnabled {
		return &Result{HasConflict: false}, nil
	}

	bookings, err := d.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{
		ClubGroup:       ptr.Ptr(club.Group),
		OverlapFrom:     ptr.Ptr(start),
		OverlapTo:       ptr.Ptr(end),
		ExcludeRejected: true,
	})
	if err != nil {
		d.logger.Error("CheckGroupConflicts: failed to get bookings for group=%s: %v", club.Group, err)
		return nil, fmt.Errorf("%w: failed to get group bookings: %w", ErrInternal, err)
	}

	conflicting := make([]*domain.Booking, 0)
	for _, b := range bookings {
		if b.ClubID == club.ID || !b.IsBlocking() || !b.Overlaps(start, end) {
			continue
		}
		conflicting = append(conflicting, b)
	}

	if len(conflicting) == 0 {
		return &Result{HasConflict: false}, nil
	}

	d.logger.Info("CheckGroupConflicts: club=%d group=%s overlaps %d booking(s) of the same group",
		club.ID, club.Group, len(conflicting))

	return &Result{
		HasConflict: true,
		Bookings:    conflicting,
		Message:     fmt.Sprintf("another club of group %s already has an event at the requested time", club.Group),
	}, nil
}
