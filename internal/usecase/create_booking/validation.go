package create_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/VenueBookingService/internal/domain"
)

// validateRequest проверяет форму заявки: обязательные поля, тип мероприятия, площадки и время
func validateRequest(req *Request) error {
	if req == nil {
		return reject(ErrInvalidInput, "request is required")
	}

	if req.Caller.UserID <= 0 {
		return reject(ErrInvalidInput, "caller is required")
	}

	if req.ClubID <= 0 {
		return reject(ErrInvalidInput, "clubId must be positive")
	}

	name := strings.TrimSpace(req.EventName)
	if name == "" {
		return reject(ErrInvalidInput, "eventName is required")
	}
	if len([]rune(name)) > domain.MaxEventNameLength {
		return reject(ErrInvalidInput, "eventName must be at most %d characters", domain.MaxEventNameLength)
	}

	if !req.EventType.IsValid() {
		return reject(ErrInvalidInput, "unknown eventType %q", req.EventType)
	}

	if len(req.VenueIDs) == 0 {
		return reject(ErrInvalidInput, "at least one venue is required")
	}
	if len(req.VenueIDs) > domain.MaxVenuesPerBatch {
		return reject(ErrInvalidInput, "at most %d venues per booking", domain.MaxVenuesPerBatch)
	}

	seen := make(map[int64]struct{}, len(req.VenueIDs))
	for _, id := range req.VenueIDs {
		if id <= 0 {
			return reject(ErrInvalidInput, "venue id must be positive, got %d", id)
		}
		if _, dup := seen[id]; dup {
			return reject(ErrInvalidInput, "venue %d is listed twice", id)
		}
		seen[id] = struct{}{}
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return reject(ErrInvalidInput, "startTime and endTime are required")
	}

	if !req.EndTime.After(req.StartTime) {
		return reject(ErrInvalidInput, "endTime must be after startTime")
	}

	if req.ExpectedAttendees != nil && *req.ExpectedAttendees <= 0 {
		return reject(ErrInvalidInput, "expectedAttendees must be positive")
	}

	return nil
}

// statusForVenue начальный статус строки по категории площадки
func statusForVenue(venue *domain.Venue) (domain.BookingStatus, error) {
	switch venue.Category {
	case domain.VenueCategoryAutoApproval:
		return domain.StatusApproved, nil
	case domain.VenueCategoryNeedsApproval:
		return domain.StatusPending, nil
	default:
		return "", fmt.Errorf("%w: venue id=%d has category %q", ErrVenueMisconfigured, venue.ID, venue.Category)
	}
}

// orderVenues возвращает площадки в порядке запроса и ID отсутствующих
func orderVenues(ids []int64, found []*domain.Venue) ([]*domain.Venue, []int64) {
	byID := make(map[int64]*domain.Venue, len(found))
	for _, v := range found {
		byID[v.ID] = v
	}

	ordered := make([]*domain.Venue, 0, len(ids))
	missing := make([]int64, 0)
	for _, id := range ids {
		v, ok := byID[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		ordered = append(ordered, v)
	}

	return ordered, missing
}
