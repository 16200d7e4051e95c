package check_conflict

import "github.com/m04kA/VenueBookingService/internal/domain"

func validateRequest(req *Request) error {
	if req.ClubID <= 0 {
		return reject(ErrInvalidInput, "clubId must be positive")
	}

	if len(req.VenueIDs) == 0 {
		return reject(ErrInvalidInput, "at least one venue is required")
	}
	if len(req.VenueIDs) > domain.MaxVenuesPerBatch {
		return reject(ErrInvalidInput, "at most %d venues per check", domain.MaxVenuesPerBatch)
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

	return nil
}
