package get_quota

import (
	"context"

	getQuota "github.com/tkhmelev/RCP-FacilityService/internal/usecase/get_quota"
)

type GetQuotaUseCase interface {
	Execute(ctx context.Context, req *getQuota.Request) (*getQuota.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
