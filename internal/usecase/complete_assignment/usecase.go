package complete_assignment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
	assignmentRepo "github.com/m04kA/SMC-StaffingService/internal/infra/storage/assignment"
	taskhistoryRepo "github.com/m04kA/SMC-StaffingService/internal/infra/storage/taskhistory"
)

// Outcome результат завершения назначения
type Outcome string

const (
	// OutcomeRecorded запись истории создана, бронирование завершено
	OutcomeRecorded Outcome = "recorded"
	// OutcomeNoOp запись уже существовала, ничего не изменилось
	OutcomeNoOp Outcome = "noop"
)

// Request модель запроса на завершение назначения
type Request struct {
	AssignmentID int64       // Завершаемое назначение
	CallerID     int64       // ID вызывающего (staff или admin)
	CallerRole   domain.Role // Роль вызывающего
}

// Response результат завершения назначения
type Response struct {
	Outcome   Outcome // recorded | noop
	RecordID  int64   // ID записи истории (существующей или созданной)
	BookingID int64   // Завершённое бронирование
}

// UseCase use case завершения назначения (Task Completion Recorder).
//
// Идемпотентная операция: первая запись истории закрывает назначение и
// переводит бронирование в completed; повторный вызов находит
// существующую запись и выходит без изменений (no-op, не ошибка).
// История никогда не удаляется, завершённые бронирования не открываются
// заново.
type UseCase struct {
	bookingRepo     BookingRepository
	assignmentRepo  AssignmentRepository
	taskHistoryRepo TaskHistoryRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	assignmentRepo AssignmentRepository,
	taskHistoryRepo TaskHistoryRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:     bookingRepo,
		assignmentRepo:  assignmentRepo,
		taskHistoryRepo: taskHistoryRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case завершения назначения
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CompleteAssignment: assignment=%d, caller=%d", req.AssignmentID, req.CallerID)

	if req.AssignmentID <= 0 {
		return nil, fmt.Errorf("%w: assignmentID must be positive", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()
	resp := &Response{}

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		a, err := uc.assignmentRepo.GetByID(txCtx, req.AssignmentID)
		if err != nil {
			if errors.Is(err, assignmentRepo.ErrAssignmentNotFound) {
				return ErrAssignmentNotFound
			}
			return fmt.Errorf("%w: failed to get assignment: %w", ErrInternal, err)
		}

		// Завершить назначение может его сотрудник или администратор
		if req.CallerRole != domain.RoleAdmin && a.StaffID != req.CallerID {
			uc.logger.Warn("CompleteAssignment: caller=%d is not the assignee of assignment id=%d",
				req.CallerID, req.AssignmentID)
			return ErrAccessDenied
		}

		existing, err := uc.taskHistoryRepo.GetByAssignmentID(txCtx, req.AssignmentID)
		if err != nil && !errors.Is(err, taskhistoryRepo.ErrRecordNotFound) {
			return fmt.Errorf("%w: failed to check task history: %w", ErrInternal, err)
		}
		if existing != nil {
			resp.Outcome = OutcomeNoOp
			resp.RecordID = existing.ID
			resp.BookingID = a.BookingID
			return nil
		}

		rec, err := uc.taskHistoryRepo.Create(txCtx, &domain.TaskHistoryRecord{
			StartedAt:    now,
			FinishedAt:   now,
			Location:     a.Booking.Address,
			AssignmentID: a.ID,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to create task history record: %w", ErrInternal, err)
		}

		if err := uc.bookingRepo.UpdateStatus(txCtx, a.BookingID, domain.StatusCompleted); err != nil {
			return fmt.Errorf("%w: failed to complete booking: %w", ErrInternal, err)
		}

		resp.Outcome = OutcomeRecorded
		resp.RecordID = rec.ID
		resp.BookingID = a.BookingID
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CompleteAssignment: assignment id=%d outcome=%s, booking id=%d",
		req.AssignmentID, resp.Outcome, resp.BookingID)

	return resp, nil
}
