package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/VenueBookingService/internal/domain"
	"github.com/m04kA/VenueBookingService/internal/service/bookings/models"
	createBooking "github.com/m04kA/VenueBookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ClubID            int64   `json:"clubId"`
	VenueIDs          []int64 `json:"venueIds"`
	EventName         string  `json:"eventName"`
	EventType         string  `json:"eventType"`
	StartTime         string  `json:"startTime"` // RFC3339
	EndTime           string  `json:"endTime"`   // RFC3339
	ExpectedAttendees *int    `json:"expectedAttendees,omitempty"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	BatchID  string                   `json:"batchId"`
	Pending  bool                     `json:"pending"` // хотя бы одна площадка ждет решения администратора
	Bookings []models.BookingResponse `json:"bookings"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(caller domain.Caller) (*createBooking.Request, error) {
	start, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("startTime: %w", err)
	}

	end, err := time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return nil, fmt.Errorf("endTime: %w", err)
	}

	return &createBooking.Request{
		Caller:            caller,
		ClubID:            r.ClubID,
		VenueIDs:          r.VenueIDs,
		EventName:         r.EventName,
		EventType:         domain.EventType(r.EventType),
		StartTime:         start,
		EndTime:           end,
		ExpectedAttendees: r.ExpectedAttendees,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		BatchID:  resp.BatchID,
		Pending:  resp.HasPending(),
		Bookings: models.FromDomainBookingList(resp.Created).Bookings,
	}
}
