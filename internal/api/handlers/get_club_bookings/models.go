package get_club_bookings

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/VenueBookingService/internal/domain"
	"github.com/m04kA/VenueBookingService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(
	caller domain.Caller,
	clubID int64,
	fromStr string,
	toStr string,
	statusStr string,
	includeRejectedStr string,
) (*models.GetClubBookingsRequest, error) {
	req := &models.GetClubBookingsRequest{
		Caller:          caller,
		ClubID:          clubID,
		IncludeRejected: false, // По умолчанию без отклоненных
	}

	if fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			return nil, fmt.Errorf("invalid from value: %w", err)
		}
		req.From = &from
	}

	if toStr != "" {
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			return nil, fmt.Errorf("invalid to value: %w", err)
		}
		req.To = &to
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if includeRejectedStr != "" {
		includeRejected, err := strconv.ParseBool(includeRejectedStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeRejected value: %w", err)
		}
		req.IncludeRejected = includeRejected
	}

	return req, nil
}
