package check_conflict

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_conflict: invalid input data")

	// ErrForbidden возвращается, когда пользователь проверяет от имени чужого клуба
	ErrForbidden = errors.New("check_conflict: caller cannot act for this club")

	// ErrClubNotFound возвращается, когда клуб не найден
	ErrClubNotFound = errors.New("check_conflict: club not found")

	// ErrVenueNotFound возвращается, когда площадка не найдена
	ErrVenueNotFound = errors.New("check_conflict: venue not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_conflict: internal error")
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
