package create_booking

import (
	"time"

	"github.com/m04kA/VenueBookingService/internal/domain"
)

// Request модель заявки на бронирование одной или нескольких площадок
type Request struct {
	Caller            domain.Caller    // Кто подает заявку
	ClubID            int64            // ID клуба
	VenueIDs          []int64          // Площадки (одно мероприятие на нескольких площадках)
	EventName         string           // Название мероприятия
	EventType         domain.EventType // Тип мероприятия
	StartTime         time.Time        // Начало (включительно)
	EndTime           time.Time        // Конец (не включительно)
	ExpectedAttendees *int             // Ожидаемое число участников (опционально)
}

// Response модель ответа с созданными строками бронирования
type Response struct {
	BatchID string
	Created []*domain.Booking
}

// HasPending сообщает, есть ли строки, ожидающие решения администратора
func (r *Response) HasPending() bool {
	for _, b := range r.Created {
		if b.Status == domain.StatusPending {
			return true
		}
	}
	return false
}
