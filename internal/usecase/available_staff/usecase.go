package available_staff

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
)

// UseCase use case подбора свободных сотрудников на слот (Availability Resolver).
//
// Сотрудник свободен, если его буферное окно [slot-2h, slot+2h) не
// пересекается ни с одним занятым окном [start, start+2h) его живых
// назначений. Буфер резервирует время на дорогу и подготовку между
// соседними работами, поэтому проверка "свободен ли человек" сознательно
// строже проверки пересечения двух бронирований при вытеснении.
type UseCase struct {
	directory      StaffDirectory
	assignmentRepo AssignmentRepository
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	directory StaffDirectory,
	assignmentRepo AssignmentRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		directory:      directory,
		assignmentRepo: assignmentRepo,
		logger:         logger,
	}
}

// Execute возвращает свободных сотрудников в порядке справочника.
// Вызванный внутри транзакции (через контекст tx manager'а) блокирует
// просмотренные назначения, что закрывает гонку check-then-act при
// параллельных размещениях.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("AvailableStaff: validation failed: %v", err)
		return nil, err
	}

	slotStart, err := req.StartTime.At(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid slot time: %v", ErrInvalidInput, err)
	}
	buffer := domain.NewBufferWindow(slotStart)

	staff, err := uc.directory.ListActiveStaff(ctx)
	if err != nil {
		uc.logger.Error("AvailableStaff: failed to list active staff: %v", err)
		return nil, fmt.Errorf("%w: failed to list active staff: %w", ErrInternal, err)
	}

	candidates := make([]Candidate, 0, len(staff))

	for _, member := range staff {
		assignments, err := uc.assignmentRepo.GetLiveByStaffID(ctx, member.ID)
		if err != nil {
			uc.logger.Error("AvailableStaff: failed to get assignments for staff id=%d: %v", member.ID, err)
			return nil, fmt.Errorf("%w: failed to get assignments: %w", ErrInternal, err)
		}

		conflict, err := hasConflict(buffer, assignments)
		if err != nil {
			uc.logger.Error("AvailableStaff: failed to compute windows for staff id=%d: %v", member.ID, err)
			return nil, fmt.Errorf("%w: failed to compute windows: %w", ErrInternal, err)
		}
		if conflict {
			continue
		}

		candidates = append(candidates, Candidate{ID: member.ID, Name: member.Name})
	}

	uc.logger.Info("AvailableStaff: date=%s time=%s, %d of %d staff available",
		req.Date.Format(domain.DateFormat), req.StartTime, len(candidates), len(staff))

	return &Response{Candidates: candidates}, nil
}

// hasConflict проверяет пересечение буферного окна слота с занятыми окнами
// назначений. Завершённые бронирования репозиторий уже отфильтровал.
func hasConflict(buffer domain.Window, assignments []*domain.AssignmentWithBooking) (bool, error) {
	for _, a := range assignments {
		occupied, err := a.Booking.ServiceWindow()
		if err != nil {
			return false, err
		}
		if buffer.Overlaps(occupied) {
			return true, nil
		}
	}
	return false, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}
	return nil
}
