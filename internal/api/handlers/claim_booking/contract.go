package claim_booking

import (
	"context"

	claimBooking "github.com/m04kA/SMC-StaffingService/internal/usecase/claim_booking"
)

type ClaimBookingUseCase interface {
	Execute(ctx context.Context, req *claimBooking.Request) (*claimBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
