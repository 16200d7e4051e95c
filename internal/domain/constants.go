package domain

// Default policy values
const (
	DefaultCoCurricularNoticeDays = 30
	DefaultOpenAllNoticeDays      = 20
	DefaultClosedClubNoticeDays   = 1

	DefaultWeekdayEarliestStart = "16:00"
	DefaultWeekendEarliestStart = "08:00"

	DefaultCoCurricularSemesterLimit = 2
)

// Business validation constants
const (
	MaxEventNameLength = 200
	MaxVenuesPerBatch  = 10
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
