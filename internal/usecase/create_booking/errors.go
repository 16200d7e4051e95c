package create_booking

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrForbidden возвращается, когда пользователь подает заявку от имени чужого клуба
	ErrForbidden = errors.New("create_booking: caller cannot act for this club")

	// ErrAdvanceNotice возвращается, когда заявка подана позже минимального срока
	ErrAdvanceNotice = errors.New("create_booking: advance notice rule violated")

	// ErrOutsideOperatingHours возвращается, когда время вне часов работы площадок
	ErrOutsideOperatingHours = errors.New("create_booking: outside operating hours")

	// ErrClubNotFound возвращается, когда клуб не найден
	ErrClubNotFound = errors.New("create_booking: club not found")

	// ErrVenueNotFound возвращается, когда хотя бы одна площадка не найдена
	ErrVenueNotFound = errors.New("create_booking: venue not found")

	// ErrQuotaExceeded возвращается, когда клуб исчерпал квоту мероприятий в семестре
	ErrQuotaExceeded = errors.New("create_booking: semester quota exceeded")

	// ErrVenueConflict возвращается, когда площадка уже занята в это время
	ErrVenueConflict = errors.New("create_booking: venue already booked")

	// ErrGroupConflict возвращается, когда у клуба той же когорты уже есть мероприятие в это время
	ErrGroupConflict = errors.New("create_booking: group already has an event")

	// ErrCapacityExceeded возвращается, когда участников больше вместимости площадки
	ErrCapacityExceeded = errors.New("create_booking: capacity exceeded")

	// ErrVenueMisconfigured возвращается при неизвестной категории площадки
	ErrVenueMisconfigured = errors.New("create_booking: venue category is not configured")

	// ErrConcurrentSubmission возвращается, когда параллельная заявка заняла площадку, можно повторить
	ErrConcurrentSubmission = errors.New("create_booking: concurrent submission for the same venue")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// RejectionError отказ с причиной, которую можно показать пользователю
type RejectionError struct {
	kind   error
	Reason string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("%v: %s", e.kind, e.Reason)
}

func (e *RejectionError) Unwrap() error {
	return e.kind
}

func reject(kind error, format string, args ...interface{}) error {
	return &RejectionError{kind: kind, Reason: fmt.Sprintf(format, args...)}
}

// Reason возвращает пользовательскую причину отказа или пустую строку
func Reason(err error) string {
	var rejection *RejectionError
	if errors.As(err, &rejection) {
		return rejection.Reason
	}
	return ""
}
