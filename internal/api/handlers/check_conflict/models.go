package check_conflict

import (
	"fmt"
	"time"

	"github.com/m04kA/VenueBookingService/internal/domain"
	checkConflict "github.com/m04kA/VenueBookingService/internal/usecase/check_conflict"
)

// CheckConflictRequest HTTP request model
type CheckConflictRequest struct {
	ClubID    int64   `json:"clubId"`
	VenueIDs  []int64 `json:"venueIds"`
	StartTime string  `json:"startTime"` // RFC3339
	EndTime   string  `json:"endTime"`   // RFC3339
}

// CheckConflictResponse HTTP response model
type CheckConflictResponse struct {
	HasConflict bool    `json:"hasConflict"`
	Message     string  `json:"message,omitempty"`
	VenueIDs    []int64 `json:"venueIds"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckConflictRequest) ToUseCaseRequest(caller domain.Caller) (*checkConflict.Request, error) {
	start, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("startTime: %w", err)
	}

	end, err := time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return nil, fmt.Errorf("endTime: %w", err)
	}

	return &checkConflict.Request{
		Caller:    caller,
		ClubID:    r.ClubID,
		VenueIDs:  r.VenueIDs,
		StartTime: start,
		EndTime:   end,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkConflict.Response) *CheckConflictResponse {
	venueIDs := resp.VenueIDs
	if venueIDs == nil {
		venueIDs = []int64{}
	}
	return &CheckConflictResponse{
		HasConflict: resp.HasConflict,
		Message:     resp.Message,
		VenueIDs:    venueIDs,
	}
}
