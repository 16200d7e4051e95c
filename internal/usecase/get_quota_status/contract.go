package get_quota_status

import (
	"context"
	"time"

	"github.com/m04kA/VenueBookingService/internal/domain"
	"github.com/m04kA/VenueBookingService/internal/service/quota"
)

// QuotaCounter подсчет квоты клуба
type QuotaCounter interface {
	Status(ctx context.Context, clubID int64, eventType domain.EventType, asOf time.Time) (*quota.Status, error)
}

// ClubRepository интерфейс репозитория клубов
type ClubRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Club, error)
}

// PolicyZone часовой пояс, в котором считаются границы семестра
type PolicyZone interface {
	InLocation(t time.Time) time.Time
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

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
