package check_conflict

import (
	"context"
	"time"

	"github.com/m04kA/VenueBookingService/internal/domain"
	"github.com/m04kA/VenueBookingService/internal/service/conflicts"
)

// VenueRepository интерфейс репозитория площадок
type VenueRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Venue, error)
}

// ClubRepository интерфейс репозитория клубов
type ClubRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Club, error)
}

// ConflictDetector тот же детектор, что и при подаче заявки
type ConflictDetector interface {
	Check(ctx context.Context, venues []*domain.Venue, start, end time.Time) (*conflicts.Result, error)
	CheckGroup(ctx context.Context, club *domain.Club, start, end time.Time) (*conflicts.Result, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
