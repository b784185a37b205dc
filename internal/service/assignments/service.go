package assignments

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
	"github.com/m04kA/SMC-StaffingService/internal/service/assignments/models"
)

// Service сервис для работы с назначениями
type Service struct {
	assignmentRepo AssignmentRepository
	logger         Logger
}

// NewService создает новый экземпляр сервиса назначений
func NewService(assignmentRepo AssignmentRepository, logger Logger) *Service {
	return &Service{
		assignmentRepo: assignmentRepo,
		logger:         logger,
	}
}

// GetStaffAssignments получает назначения сотрудника с фильтрацией
// Сотрудник видит только свои назначения, админ - назначения любого сотрудника
func (s *Service) GetStaffAssignments(ctx context.Context, req *models.GetStaffAssignmentsRequest, callerID int64, callerRole domain.Role) (*models.AssignmentListResponse, error) {
	s.logger.Info("GetStaffAssignments: fetching assignments for staff=%d, completed=%v", req.StaffID, req.Completed)

	if callerRole != domain.RoleAdmin && callerID != req.StaffID {
		s.logger.Warn("GetStaffAssignments: access denied for user=%d to staff=%d assignments", callerID, req.StaffID)
		return nil, ErrAccessDenied
	}

	if req.StaffID <= 0 {
		s.logger.Warn("GetStaffAssignments: invalid staff id=%d", req.StaffID)
		return nil, fmt.Errorf("%w: invalid staff id", ErrInvalidInput)
	}

	assignments, err := s.assignmentRepo.GetByStaffWithFilter(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("GetStaffAssignments: repository error for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: GetStaffAssignments - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("GetStaffAssignments: successfully fetched %d assignments for staff=%d", len(assignments), req.StaffID)
	return models.FromDomainAssignmentList(assignments), nil
}
