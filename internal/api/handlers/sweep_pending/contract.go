package sweep_pending

import (
	"context"

	sweepPending "github.com/m04kA/SMC-StaffingService/internal/usecase/sweep_pending"
)

type SweepPendingUseCase interface {
	Execute(ctx context.Context) (*sweepPending.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
