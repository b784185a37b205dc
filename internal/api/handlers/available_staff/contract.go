package available_staff

import (
	"context"

	availableStaff "github.com/m04kA/SMC-StaffingService/internal/usecase/available_staff"
)

type AvailableStaffUseCase interface {
	Execute(ctx context.Context, req *availableStaff.Request) (*availableStaff.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
