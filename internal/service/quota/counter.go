package quota

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/VenueBookingService/internal/domain"
	"github.com/m04kA/VenueBookingService/pkg/ptr"
)

// Status текущее использование квоты клуба в семестре
type Status struct {
	ClubID    int64
	EventType domain.EventType
	Window    domain.SemesterWindow
	Count     int
	Limit     int  // 0, если тип мероприятия не ограничен квотой
	Limited   bool // true, если тип ограничен квотой
}

// Reached сообщает, исчерпана ли квота
func (s *Status) Reached() bool {
	return s.Limited && s.Count >= s.Limit
}

// Counter считает различные мероприятия клуба в семестре
type Counter struct {
	bookingRepo BookingRepository
	limits      map[domain.EventType]int
	logger      Logger
}

// NewCounter limits - лимит мероприятий за семестр по типам, ограниченным квотой
func NewCounter(bookingRepo BookingRepository, limits map[domain.EventType]int, logger Logger) *Counter {
	return &Counter{
		bookingRepo: bookingRepo,
		limits:      limits,
		logger:      logger,
	}
}

// Limit возвращает лимит для типа мероприятия и признак, что тип ограничен квотой
func (c *Counter) Limit(eventType domain.EventType) (int, bool) {
	if !eventType.IsQuotaBound() {
		return 0, false
	}
	limit, ok := c.limits[eventType]
	if !ok {
		limit = domain.DefaultCoCurricularSemesterLimit
	}
	return limit, true
}

// CountEvents считает не отклонённые мероприятия клуба данного типа, начинающиеся в окне семестра
func (c *Counter) CountEvents(ctx context.Context, clubID int64, eventType domain.EventType, window domain.SemesterWindow) (int, error) {
	bookings, err := c.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{
		ClubID:          ptr.Ptr(clubID),
		EventType:       ptr.Ptr(eventType),
		OverlapFrom:     ptr.Ptr(window.Start),
		OverlapTo:       ptr.Ptr(window.End.Add(time.Second)),
		ExcludeRejected: true,
	})
	if err != nil {
		c.logger.Error("CountEvents: failed to get bookings for club_id=%d, event_type=%s: %v", clubID, eventType, err)
		return 0, fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
	}

	inWindow := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.Status == domain.StatusRejected || !window.Contains(b.StartTime) {
			continue
		}
		inWindow = append(inWindow, b)
	}

	return CountDistinctEvents(inWindow), nil
}

// Status возвращает использование квоты на семестр, содержащий asOf
func (c *Counter) Status(ctx context.Context, clubID int64, eventType domain.EventType, asOf time.Time) (*Status, error) {
	window := domain.SemesterWindowFor(asOf)

	count, err := c.CountEvents(ctx, clubID, eventType, window)
	if err != nil {
		return nil, err
	}

	limit, limited := c.Limit(eventType)

	return &Status{
		ClubID:    clubID,
		EventType: eventType,
		Window:    window,
		Count:     count,
		Limit:     limit,
		Limited:   limited,
	}, nil
}

// CountDistinctEvents строки с общим batch_id считаются одним мероприятием,
// строки без batch_id - каждая отдельно
func CountDistinctEvents(bookings []*domain.Booking) int {
	batches := make(map[string]struct{})
	count := 0
	for _, b := range bookings {
		if b.BatchID == nil || *b.BatchID == "" {
			count++
			continue
		}
		if _, seen := batches[*b.BatchID]; seen {
			continue
		}
		batches[*b.BatchID] = struct{}{}
		count++
	}
	return count
}
