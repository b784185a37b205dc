package assignments

import (
	"context"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
)

// AssignmentRepository интерфейс репозитория назначений
type AssignmentRepository interface {
	GetByStaffWithFilter(ctx context.Context, filter domain.StaffAssignmentsFilter) ([]*domain.AssignmentWithBooking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
