package check_conflict

import (
	"time"

	"github.com/m04kA/VenueBookingService/internal/domain"
)

// Request предварительная проверка пересечений без записи
type Request struct {
	Caller    domain.Caller
	ClubID    int64
	VenueIDs  []int64
	StartTime time.Time
	EndTime   time.Time
}

// Response результат проверки
type Response struct {
	HasConflict bool
	Message     string
	VenueIDs    []int64 // площадки с пересечением
}
