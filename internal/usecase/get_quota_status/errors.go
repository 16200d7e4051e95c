package get_quota_status

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("get_quota_status: invalid input data")
	ErrForbidden    = errors.New("get_quota_status: caller cannot act for this club")
	ErrClubNotFound = errors.New("get_quota_status: club not found")
	ErrInternal     = errors.New("get_quota_status: internal error")
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
