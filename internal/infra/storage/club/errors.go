package club

import "errors"

var (
	// ErrClubNotFound возвращается, когда клуб не найден
	ErrClubNotFound = errors.New("club.repository: club not found")

	ErrBuildQuery = errors.New("club.repository: failed to build query")
	ErrScanRow    = errors.New("club.repository: failed to scan row")
)
