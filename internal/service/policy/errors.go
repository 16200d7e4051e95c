package policy

import "errors"

var (
	// ErrAdvanceNotice бронирование подано слишком поздно для своего типа события
	ErrAdvanceNotice = errors.New("policy: advance notice rule violated")

	// ErrOperatingHours время бронирования вне часов работы площадок
	ErrOperatingHours = errors.New("policy: operating hours rule violated")

	// ErrCapacity ожидаемое число участников превышает вместимость площадки
	ErrCapacity = errors.New("policy: capacity rule violated")

	// ErrUnknownEventType для типа события не задан порог уведомления
	ErrUnknownEventType = errors.New("policy: unknown event type")
)

// Violation нарушение правила с понятной пользователю причиной
type Violation struct {
	rule    error
	Reason  string
	VenueID int64 // заполняется для правила вместимости
}

func (v *Violation) Error() string {
	return v.Reason
}

// Unwrap позволяет проверять нарушение через errors.Is(err, ErrCapacity) и т.п.
func (v *Violation) Unwrap() error {
	return v.rule
}
