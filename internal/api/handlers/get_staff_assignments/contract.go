package get_staff_assignments

import (
	"context"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
	"github.com/m04kA/SMC-StaffingService/internal/service/assignments/models"
)

type AssignmentService interface {
	GetStaffAssignments(ctx context.Context, req *models.GetStaffAssignmentsRequest, callerID int64, callerRole domain.Role) (*models.AssignmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
