package assignments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
	"github.com/m04kA/SMC-StaffingService/internal/service/assignments/models"
	"github.com/m04kA/SMC-StaffingService/pkg/ptr"
	"github.com/m04kA/SMC-StaffingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeAssignmentRepo struct {
	assignments []*domain.AssignmentWithBooking
	lastFilter  domain.StaffAssignmentsFilter
}

func (r *fakeAssignmentRepo) GetByStaffWithFilter(ctx context.Context, filter domain.StaffAssignmentsFilter) ([]*domain.AssignmentWithBooking, error) {
	r.lastFilter = filter
	return r.assignments, nil
}

func TestGetStaffAssignments(t *testing.T) {
	repo := &fakeAssignmentRepo{assignments: []*domain.AssignmentWithBooking{
		{
			Assignment: domain.Assignment{ID: 10, StaffID: 5, BookingID: 1, AssignedDate: time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)},
			Booking: domain.Booking{
				ID:          1,
				ServiceDate: time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
				StartTime:   types.TimeString("13:00"),
				Status:      domain.StatusAssigned,
			},
		},
	}}
	svc := NewService(repo, nopLogger{})

	req := &models.GetStaffAssignmentsRequest{StaffID: 5, Completed: ptr.Ptr(false)}

	// Сотрудник видит свои назначения
	resp, err := svc.GetStaffAssignments(context.Background(), req, 5, domain.RoleStaff)
	require.NoError(t, err)
	require.Len(t, resp.Assignments, 1)
	assert.Equal(t, int64(10), resp.Assignments[0].ID)
	assert.Equal(t, "15:00", resp.Assignments[0].Booking.EndTime)
	require.NotNil(t, repo.lastFilter.Completed)
	assert.False(t, *repo.lastFilter.Completed)

	// Админ видит назначения любого сотрудника
	_, err = svc.GetStaffAssignments(context.Background(), req, 999, domain.RoleAdmin)
	require.NoError(t, err)

	// Чужой сотрудник и посторонний клиент - нет
	_, err = svc.GetStaffAssignments(context.Background(), req, 6, domain.RoleStaff)
	assert.ErrorIs(t, err, ErrAccessDenied)
	_, err = svc.GetStaffAssignments(context.Background(), req, 7, domain.RoleClient)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetStaffAssignments_InvalidStaffID(t *testing.T) {
	svc := NewService(&fakeAssignmentRepo{}, nopLogger{})

	_, err := svc.GetStaffAssignments(context.Background(), &models.GetStaffAssignmentsRequest{StaffID: 0}, 0, domain.RoleAdmin)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
