package quota

import "errors"

var (
	// ErrInternal возвращается при ошибках чтения бронирований
	ErrInternal = errors.New("quota: internal error")
)
