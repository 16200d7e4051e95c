package get_quota_status

import (
	"time"

	"github.com/m04kA/VenueBookingService/internal/domain"
)

// Request запрос использования квоты
type Request struct {
	Caller    domain.Caller
	ClubID    int64
	EventType domain.EventType
	AsOf      *time.Time // дата внутри семестра, по умолчанию - сейчас
}

// Response использование квоты в семестре
type Response struct {
	ClubID      int64
	EventType   domain.EventType
	Semester    string
	WindowStart time.Time
	WindowEnd   time.Time
	Count       int
	Limit       int
	Limited     bool
	Remaining   int
}
