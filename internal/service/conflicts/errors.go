package conflicts

import "errors"

var (
	// ErrInternal возвращается при ошибках чтения бронирований
	ErrInternal = errors.New("conflicts: internal error")
)
