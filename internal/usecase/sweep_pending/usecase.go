package sweep_pending

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
	availableStaff "github.com/m04kA/SMC-StaffingService/internal/usecase/available_staff"
)

// Response результат обхода очереди
type Response struct {
	Scanned  int // Сколько бронирований было в очереди
	Assigned int // Сколько получили назначение
}

// UseCase use case обхода очереди (Reassignment Sweeper).
//
// Для каждого бронирования в очереди вызывает резолвер (буферная
// семантика) и назначает первого свободного сотрудника. Вытеснение на
// этом пути НЕ выполняется: sweep строго оппортунистический и
// идемпотентный - повторный запуск без новых бронирований ничего
// не назначит.
type UseCase struct {
	bookingRepo    BookingRepository
	assignmentRepo AssignmentRepository
	resolver       AvailabilityResolver
	txManager      TransactionManager
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	assignmentRepo AssignmentRepository,
	resolver AvailabilityResolver,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		assignmentRepo: assignmentRepo,
		resolver:       resolver,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute обходит очередь и возвращает количество новых назначений.
// Весь обход выполняется в одной сериализуемой транзакции, поэтому sweep
// безопасно запускать параллельно с размещением бронирований.
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	now := uc.timeProvider.Now()
	resp := &Response{}

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		queued, err := uc.bookingRepo.GetQueued(txCtx)
		if err != nil {
			uc.logger.Error("SweepPending: failed to get queued bookings: %v", err)
			return fmt.Errorf("%w: failed to get queued bookings: %w", ErrInternal, err)
		}

		resp.Scanned = len(queued)
		resp.Assigned = 0

		for _, b := range queued {
			candidates, err := uc.resolver.Execute(txCtx, &availableStaff.Request{
				Date:      b.ServiceDate,
				StartTime: b.StartTime,
			})
			if err != nil {
				uc.logger.Error("SweepPending: availability check failed for booking id=%d: %v", b.ID, err)
				return fmt.Errorf("%w: availability check failed: %w", ErrInternal, err)
			}

			first, ok := candidates.First()
			if !ok {
				continue
			}

			if _, err := uc.assignmentRepo.Create(txCtx, &domain.Assignment{
				AssignedDate: dateOnly(now),
				BookingID:    b.ID,
				StaffID:      first.ID,
			}); err != nil {
				uc.logger.Error("SweepPending: failed to create assignment for booking id=%d: %v", b.ID, err)
				return fmt.Errorf("%w: failed to create assignment: %w", ErrInternal, err)
			}

			if err := uc.bookingRepo.UpdateStatus(txCtx, b.ID, domain.StatusAssigned); err != nil {
				uc.logger.Error("SweepPending: failed to update booking id=%d status: %v", b.ID, err)
				return fmt.Errorf("%w: failed to update booking status: %w", ErrInternal, err)
			}

			uc.logger.Info("SweepPending: booking id=%d assigned to staff id=%d", b.ID, first.ID)
			resp.Assigned++
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("SweepPending: %d of %d queued bookings assigned", resp.Assigned, resp.Scanned)

	return resp, nil
}

// dateOnly обнуляет время, оставляя только дату
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
