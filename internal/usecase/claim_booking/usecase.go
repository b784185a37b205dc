package claim_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-StaffingService/internal/infra/storage/booking"
	directoryClient "github.com/m04kA/SMC-StaffingService/internal/integrations/staffdirectory"
)

// Request модель запроса сотрудника на взятие бронирования из очереди
type Request struct {
	BookingID int64 // Бронирование из очереди
	StaffID   int64 // Сотрудник, который берёт бронирование (из аутентификации)
}

// Response результат взятия бронирования
type Response struct {
	BookingID    int64 // Бронирование
	StaffID      int64 // Сотрудник
	AssignmentID int64 // Созданное назначение
}

// UseCase use case самостоятельного взятия бронирования сотрудником.
//
// В отличие от административного override, этот путь проверяет занятость:
// буферное окно бронирования сравнивается с занятыми окнами живых
// назначений сотрудника (та же семантика, что у резолвера). Конфликт
// означает отказ, а не каскадную отмену.
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

// Execute выполняет use case взятия бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ClaimBooking: booking=%d, staff=%d", req.BookingID, req.StaffID)

	if req.BookingID <= 0 || req.StaffID <= 0 {
		return nil, fmt.Errorf("%w: bookingID and staffID must be positive", ErrInvalidInput)
	}

	staff, err := uc.directory.GetStaff(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrStaffNotFound) {
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("ClaimBooking: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %w", ErrInternal, err)
	}
	if !staff.Active {
		return nil, ErrStaffInactive
	}

	now := uc.timeProvider.Now()
	resp := &Response{BookingID: req.BookingID, StaffID: req.StaffID}

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		b, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}
		if !b.CanBeClaimed() {
			return ErrNotClaimable
		}

		slotStart, err := b.StartDateTime()
		if err != nil {
			return fmt.Errorf("%w: failed to compute booking start: %w", ErrInternal, err)
		}
		buffer := domain.NewBufferWindow(slotStart)

		assignments, err := uc.assignmentRepo.GetLiveByStaffID(txCtx, req.StaffID)
		if err != nil {
			return fmt.Errorf("%w: failed to get staff assignments: %w", ErrInternal, err)
		}
		for _, a := range assignments {
			occupied, err := a.Booking.ServiceWindow()
			if err != nil {
				return fmt.Errorf("%w: failed to compute occupied window: %w", ErrInternal, err)
			}
			if buffer.Overlaps(occupied) {
				return ErrStaffBusy
			}
		}

		created, err := uc.assignmentRepo.Create(txCtx, &domain.Assignment{
			AssignedDate: dateOnly(now),
			BookingID:    b.ID,
			StaffID:      req.StaffID,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to create assignment: %w", ErrInternal, err)
		}
		resp.AssignmentID = created.ID

		if err := uc.bookingRepo.UpdateStatus(txCtx, b.ID, domain.StatusAssigned); err != nil {
			return fmt.Errorf("%w: failed to update booking status: %w", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("ClaimBooking: booking id=%d claimed by staff id=%d", req.BookingID, req.StaffID)

	return resp, nil
}

// dateOnly обнуляет время, оставляя только дату
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
