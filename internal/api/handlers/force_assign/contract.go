package force_assign

import (
	"context"

	forceAssign "github.com/m04kA/SMC-StaffingService/internal/usecase/force_assign"
)

type ForceAssignUseCase interface {
	Execute(ctx context.Context, req *forceAssign.Request) (*forceAssign.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
