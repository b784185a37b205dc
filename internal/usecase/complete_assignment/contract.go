package complete_assignment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

// AssignmentRepository интерфейс репозитория назначений
type AssignmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.AssignmentWithBooking, error)
}

// TaskHistoryRepository интерфейс репозитория истории задач
type TaskHistoryRepository interface {
	Create(ctx context.Context, rec *domain.TaskHistoryRecord) (*domain.TaskHistoryRecord, error)
	GetByAssignmentID(ctx context.Context, assignmentID int64) (*domain.TaskHistoryRecord, error)
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
