package get_quota_status

import (
	"context"

	getQuotaStatus "github.com/m04kA/VenueBookingService/internal/usecase/get_quota_status"
)

type GetQuotaStatusUseCase interface {
	Execute(ctx context.Context, req *getQuotaStatus.Request) (*getQuotaStatus.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
