package club

import "github.com/m04kA/VenueBookingService/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
