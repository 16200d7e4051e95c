package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/VenueBookingService/internal/domain"
	"github.com/m04kA/VenueBookingService/internal/integrations/approvers"
	"github.com/m04kA/VenueBookingService/internal/service/conflicts"
	"github.com/m04kA/VenueBookingService/pkg/venuelock"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// VenueRepository интерфейс репозитория площадок
type VenueRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Venue, error)
}

// ClubRepository интерфейс репозитория клубов
type ClubRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Club, error)
}

// ConflictDetector проверка пересечений по площадкам и (опционально) по когортам
type ConflictDetector interface {
	Check(ctx context.Context, venues []*domain.Venue, start, end time.Time) (*conflicts.Result, error)
	CheckGroup(ctx context.Context, club *domain.Club, start, end time.Time) (*conflicts.Result, error)
}

// QuotaCounter подсчет мероприятий клуба в семестре
type QuotaCounter interface {
	Limit(eventType domain.EventType) (int, bool)
	CountEvents(ctx context.Context, clubID int64, eventType domain.EventType, window domain.SemesterWindow) (int, error)
}

// VenueLocker сериализует заявки на одни и те же площадки
type VenueLocker interface {
	Acquire(ctx context.Context, venueIDs []int64) (venuelock.ReleaseFunc, error)
}

// Notifier уведомляет администраторов о заявках, ожидающих решения
type Notifier interface {
	NotifyPending(ctx context.Context, batchID string, items []approvers.PendingItem) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчики результатов подачи заявок
type Metrics interface {
	IncBookingSubmission(result string)
	IncNotificationFailure()
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
