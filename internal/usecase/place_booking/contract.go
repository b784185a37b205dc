package place_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
	"github.com/m04kA/SMC-StaffingService/internal/integrations/notify"
	availableStaff "github.com/m04kA/SMC-StaffingService/internal/usecase/available_staff"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

// AssignmentRepository интерфейс репозитория назначений
type AssignmentRepository interface {
	Create(ctx context.Context, a *domain.Assignment) (*domain.Assignment, error)
	Delete(ctx context.Context, id int64) error
	GetLiveByDate(ctx context.Context, date time.Time) ([]*domain.AssignmentWithBooking, error)
}

// AvailabilityResolver интерфейс резолвера свободных сотрудников
type AvailabilityResolver interface {
	Execute(ctx context.Context, req *availableStaff.Request) (*availableStaff.Response, error)
}

// NotificationSender интерфейс клиента уведомлений (best-effort)
type NotificationSender interface {
	Send(ctx context.Context, n notify.Notification) error
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
