package get_venue_schedule

import (
	"time"

	"github.com/m04kA/VenueBookingService/internal/domain"
	"github.com/m04kA/VenueBookingService/pkg/types"
)

// Request модель запроса расписания площадки на день
type Request struct {
	VenueID int64
	Date    time.Time // Дата (время суток игнорируется)
}

// Response расписание площадки на день
type Response struct {
	Venue    *domain.Venue
	Date     time.Time
	OpenFrom types.TimeString // Самое раннее начало в этот день
	Busy     []BusyInterval   // Не отклоненные бронирования, пересекающие день
	Free     []Interval       // Свободные окна в часах работы
}

// BusyInterval занятый интервал
type BusyInterval struct {
	BookingID int64
	ClubID    int64
	EventName string
	Status    domain.BookingStatus
	Interval
}

// Interval полуоткрытый интервал [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}
