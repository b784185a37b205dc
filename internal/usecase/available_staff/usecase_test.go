package available_staff

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
	"github.com/m04kA/SMC-StaffingService/internal/integrations/staffdirectory"
	"github.com/m04kA/SMC-StaffingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeDirectory struct {
	staff []staffdirectory.StaffMember
}

func (d *fakeDirectory) ListActiveStaff(ctx context.Context) ([]staffdirectory.StaffMember, error) {
	return d.staff, nil
}

type fakeAssignmentRepo struct {
	byStaff map[int64][]*domain.AssignmentWithBooking
}

func (r *fakeAssignmentRepo) GetLiveByStaffID(ctx context.Context, staffID int64) ([]*domain.AssignmentWithBooking, error) {
	return r.byStaff[staffID], nil
}

func testDate() time.Time {
	return time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
}

func assignmentAt(staffID int64, start string) *domain.AssignmentWithBooking {
	return &domain.AssignmentWithBooking{
		Assignment: domain.Assignment{ID: 1, StaffID: staffID, BookingID: 100},
		Booking: domain.Booking{
			ID:          100,
			ServiceDate: testDate(),
			StartTime:   types.TimeString(start),
			Status:      domain.StatusAssigned,
		},
	}
}

func TestExecute_AllStaffFree(t *testing.T) {
	uc := NewUseCase(
		&fakeDirectory{staff: []staffdirectory.StaffMember{
			{ID: 1, Name: "Ana"},
			{ID: 2, Name: "Boris"},
		}},
		&fakeAssignmentRepo{byStaff: map[int64][]*domain.AssignmentWithBooking{}},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		Date:      testDate(),
		StartTime: types.TimeString("10:00"),
	})
	require.NoError(t, err)
	require.Len(t, resp.Candidates, 2)

	// Directory order preserved: candidate order is the priority order.
	assert.Equal(t, int64(1), resp.Candidates[0].ID)
	assert.Equal(t, int64(2), resp.Candidates[1].ID)
}

func TestExecute_BufferedConflictExcludesStaff(t *testing.T) {
	// Booking at 13:00 buffers to [11:00, 15:00). A job occupying
	// [10:00, 12:00) intersects the buffer even though the plain
	// two-hour windows would not collide.
	uc := NewUseCase(
		&fakeDirectory{staff: []staffdirectory.StaffMember{{ID: 1, Name: "Ana"}}},
		&fakeAssignmentRepo{byStaff: map[int64][]*domain.AssignmentWithBooking{
			1: {assignmentAt(1, "10:00")},
		}},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		Date:      testDate(),
		StartTime: types.TimeString("13:00"),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Candidates)
}

func TestExecute_BufferBoundaryIsHalfOpen(t *testing.T) {
	// Buffer for 12:00 is [10:00, 16:00). A job ending exactly at 10:00
	// (occupied [08:00, 10:00)) touches the boundary and does not conflict.
	uc := NewUseCase(
		&fakeDirectory{staff: []staffdirectory.StaffMember{{ID: 1, Name: "Ana"}}},
		&fakeAssignmentRepo{byStaff: map[int64][]*domain.AssignmentWithBooking{
			1: {assignmentAt(1, "08:00")},
		}},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		Date:      testDate(),
		StartTime: types.TimeString("12:00"),
	})
	require.NoError(t, err)
	require.Len(t, resp.Candidates, 1)
	assert.Equal(t, int64(1), resp.Candidates[0].ID)
}

func TestExecute_MixedAvailability(t *testing.T) {
	uc := NewUseCase(
		&fakeDirectory{staff: []staffdirectory.StaffMember{
			{ID: 1, Name: "Ana"},
			{ID: 2, Name: "Boris"},
			{ID: 3, Name: "Vera"},
		}},
		&fakeAssignmentRepo{byStaff: map[int64][]*domain.AssignmentWithBooking{
			1: {assignmentAt(1, "10:00")}, // buffer [08:00,12:00) vs [10:00,12:00) conflicts
			2: {assignmentAt(2, "16:00")}, // [16:00,18:00) clear of [08:00,12:00)
		}},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		Date:      testDate(),
		StartTime: types.TimeString("10:00"),
	})
	require.NoError(t, err)
	require.Len(t, resp.Candidates, 2)
	assert.Equal(t, int64(2), resp.Candidates[0].ID)
	assert.Equal(t, int64(3), resp.Candidates[1].ID)
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(&fakeDirectory{}, &fakeAssignmentRepo{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{StartTime: types.TimeString("10:00")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Date: testDate()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Date: testDate(), StartTime: types.TimeString("25:99")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestResponseFirst(t *testing.T) {
	empty := &Response{}
	_, ok := empty.First()
	assert.False(t, ok)

	resp := &Response{Candidates: []Candidate{{ID: 7, Name: "Ana"}, {ID: 9}}}
	first, ok := resp.First()
	require.True(t, ok)
	assert.Equal(t, int64(7), first.ID)
}
