package force_assign

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-StaffingService/internal/infra/storage/booking"
	directoryClient "github.com/m04kA/SMC-StaffingService/internal/integrations/staffdirectory"
)

// Request модель запроса принудительного назначения
type Request struct {
	BookingID int64 // Целевое бронирование
	StaffID   int64 // Сотрудник, которому отдаётся бронирование
}

// CancelledAssignment назначение, снятое каскадом
type CancelledAssignment struct {
	AssignmentID int64 // ID снятого назначения
	BookingID    int64 // Бронирование, вернувшееся в очередь
}

// Response результат принудительного назначения
type Response struct {
	BookingID    int64                 // Целевое бронирование
	StaffID      int64                 // Назначенный сотрудник
	StaffName    string                // Имя сотрудника
	AssignmentID int64                 // ID созданного назначения
	Cancelled    []CancelledAssignment // Снятые конфликтующие назначения
}

// UseCase use case принудительного назначения (Manual Override Reconciler).
//
// Административная операция: общая проверка доступности НЕ выполняется,
// это сознательный override. Вместо неё у выбранного сотрудника снимаются
// все назначения, чьё бронирование начинается в ЗАКРЫТЫХ границах
// [start-2h, start+2h] относительно начала целевого бронирования
// (point-in-interval проверка, обе границы включительно). Снятые
// бронирования возвращаются в очередь; одна операция может вернуть
// в очередь несколько бронирований.
type UseCase struct {
	bookingRepo    BookingRepository
	assignmentRepo AssignmentRepository
	directory      StaffDirectory
	txManager      TransactionManager
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	assignmentRepo AssignmentRepository,
	directory StaffDirectory,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		assignmentRepo: assignmentRepo,
		directory:      directory,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case принудительного назначения
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ForceAssign: booking=%d, staff=%d", req.BookingID, req.StaffID)

	if req.BookingID <= 0 || req.StaffID <= 0 {
		return nil, fmt.Errorf("%w: bookingID and staffID must be positive", ErrInvalidInput)
	}

	// Directory read-only, вне транзакции
	staff, err := uc.directory.GetStaff(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrStaffNotFound) {
			uc.logger.Warn("ForceAssign: staff id=%d not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("ForceAssign: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %w", ErrInternal, err)
	}
	if !staff.Active {
		uc.logger.Warn("ForceAssign: staff id=%d is inactive", req.StaffID)
		return nil, ErrStaffInactive
	}

	now := uc.timeProvider.Now()
	resp := &Response{
		BookingID: req.BookingID,
		StaffID:   staff.ID,
		StaffName: staff.Name,
	}

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		target, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}
		if target.IsCompleted() {
			return ErrBookingCompleted
		}

		targetStart, err := target.StartDateTime()
		if err != nil {
			return fmt.Errorf("%w: failed to compute booking start: %w", ErrInternal, err)
		}
		// Закрытые границы: бронирование, начинающееся ровно в
		// start-2h или start+2h, тоже снимается
		bounds := domain.Window{
			Start: targetStart.Add(-domain.BufferMinutes * time.Minute),
			End:   targetStart.Add(domain.BufferMinutes * time.Minute),
		}

		resp.Cancelled = resp.Cancelled[:0]

		prior, err := uc.assignmentRepo.GetLiveByStaffID(txCtx, req.StaffID)
		if err != nil {
			return fmt.Errorf("%w: failed to get staff assignments: %w", ErrInternal, err)
		}

		for _, a := range prior {
			if a.BookingID == target.ID {
				continue
			}

			otherStart, err := a.Booking.StartDateTime()
			if err != nil {
				return fmt.Errorf("%w: failed to compute assignment start: %w", ErrInternal, err)
			}
			if !bounds.ContainsInclusive(otherStart) {
				continue
			}

			if err := uc.assignmentRepo.Delete(txCtx, a.ID); err != nil {
				return fmt.Errorf("%w: failed to cancel assignment: %w", ErrInternal, err)
			}
			if err := uc.bookingRepo.UpdateStatus(txCtx, a.BookingID, domain.StatusPending); err != nil {
				return fmt.Errorf("%w: failed to requeue booking: %w", ErrInternal, err)
			}

			uc.logger.Info("ForceAssign: cancelled assignment id=%d, booking id=%d requeued", a.ID, a.BookingID)
			resp.Cancelled = append(resp.Cancelled, CancelledAssignment{
				AssignmentID: a.ID,
				BookingID:    a.BookingID,
			})
		}

		// Если у целевого бронирования уже было назначение (на другого
		// сотрудника), снимаем его: на бронирование всегда не больше
		// одного живого назначения, переназначение - delete-then-create
		if err := uc.assignmentRepo.DeleteByBookingID(txCtx, target.ID); err != nil {
			return fmt.Errorf("%w: failed to drop prior assignment: %w", ErrInternal, err)
		}

		created, err := uc.assignmentRepo.Create(txCtx, &domain.Assignment{
			AssignedDate: dateOnly(now),
			BookingID:    target.ID,
			StaffID:      req.StaffID,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to create assignment: %w", ErrInternal, err)
		}
		resp.AssignmentID = created.ID

		if err := uc.bookingRepo.UpdateStatus(txCtx, target.ID, domain.StatusAssigned); err != nil {
			return fmt.Errorf("%w: failed to update booking status: %w", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("ForceAssign: booking id=%d assigned to staff id=%d, %d assignments cancelled",
		req.BookingID, req.StaffID, len(resp.Cancelled))

	return resp, nil
}

// dateOnly обнуляет время, оставляя только дату
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
