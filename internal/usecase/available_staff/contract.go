package available_staff

import (
	"context"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
	"github.com/m04kA/SMC-StaffingService/internal/integrations/staffdirectory"
)

// StaffDirectory интерфейс клиента Directory
type StaffDirectory interface {
	ListActiveStaff(ctx context.Context) ([]staffdirectory.StaffMember, error)
}

// AssignmentRepository интерфейс репозитория назначений
type AssignmentRepository interface {
	GetLiveByStaffID(ctx context.Context, staffID int64) ([]*domain.AssignmentWithBooking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
