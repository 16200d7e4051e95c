package get_venue_schedule

import (
	"time"

	"github.com/m04kA/VenueBookingService/internal/domain"
	getVenueSchedule "github.com/m04kA/VenueBookingService/internal/usecase/get_venue_schedule"
)

// VenueScheduleResponse HTTP response model
type VenueScheduleResponse struct {
	Date      string         `json:"date"`
	VenueID   int64          `json:"venueId"`
	VenueName string         `json:"venueName"`
	Capacity  *int           `json:"capacity,omitempty"`
	OpenFrom  string         `json:"openFrom"` // HH:MM
	Busy      []BusyInterval `json:"busy"`
	Free      []Interval     `json:"free"`
}

// BusyInterval занятый интервал
type BusyInterval struct {
	BookingID int64  `json:"bookingId"`
	ClubID    int64  `json:"clubId"`
	EventName string `json:"eventName"`
	Status    string `json:"status"`
	Start     string `json:"start"`
	End       string `json:"end"`
}

// Interval свободное окно
type Interval struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(venueID int64, dateStr string) (*getVenueSchedule.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getVenueSchedule.Request{
		VenueID: venueID,
		Date:    date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getVenueSchedule.Response) *VenueScheduleResponse {
	busy := make([]BusyInterval, len(resp.Busy))
	for i, b := range resp.Busy {
		busy[i] = BusyInterval{
			BookingID: b.BookingID,
			ClubID:    b.ClubID,
			EventName: b.EventName,
			Status:    string(b.Status),
			Start:     b.Start.Format(time.RFC3339),
			End:       b.End.Format(time.RFC3339),
		}
	}

	free := make([]Interval, len(resp.Free))
	for i, f := range resp.Free {
		free[i] = Interval{
			Start: f.Start.Format(time.RFC3339),
			End:   f.End.Format(time.RFC3339),
		}
	}

	return &VenueScheduleResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		VenueID:   resp.Venue.ID,
		VenueName: resp.Venue.Name,
		Capacity:  resp.Venue.Capacity,
		OpenFrom:  resp.OpenFrom.String(),
		Busy:      busy,
		Free:      free,
	}
}
