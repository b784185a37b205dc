package sweep_pending

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
	availableStaff "github.com/m04kA/SMC-StaffingService/internal/usecase/available_staff"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetQueued(ctx context.Context) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

// AssignmentRepository интерфейс репозитория назначений
type AssignmentRepository interface {
	Create(ctx context.Context, a *domain.Assignment) (*domain.Assignment, error)
}

// AvailabilityResolver интерфейс резолвера свободных сотрудников
type AvailabilityResolver interface {
	Execute(ctx context.Context, req *availableStaff.Request) (*availableStaff.Response, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
