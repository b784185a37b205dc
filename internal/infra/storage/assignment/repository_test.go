package assignment

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
	"github.com/m04kA/SMC-StaffingService/pkg/ptr"
	"github.com/m04kA/SMC-StaffingService/pkg/types"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db), mock
}

func joinedRows() *sqlmock.Rows {
	return sqlmock.NewRows(joinedColumns)
}

func addJoinedRow(rows *sqlmock.Rows, assignmentID, staffID, bookingID int64, start types.TimeString, status domain.BookingStatus) *sqlmock.Rows {
	serviceDate := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	now := time.Now()
	return rows.AddRow(
		assignmentID, serviceDate, bookingID, staffID, now,
		bookingID, int64(100), serviceDate, start, "ул. Ленина, 1", "office", status, now, now,
	)
}

func TestCreate(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	mock.ExpectQuery("INSERT INTO assignments \\(assigned_date,booking_id,staff_id\\)").
		WithArgs(sqlmock.AnyArg(), int64(1), int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(10), now))

	a, err := repo.Create(context.Background(), &domain.Assignment{
		AssignedDate: now,
		BookingID:    1,
		StaffID:      5,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(10), a.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_UniqueViolation(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("INSERT INTO assignments").
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.Create(context.Background(), &domain.Assignment{
		AssignedDate: time.Now(),
		BookingID:    1,
		StaffID:      5,
	})
	assert.ErrorIs(t, err, ErrBookingAlreadyAssigned)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByBookingID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM assignments a JOIN bookings b ON b.id = a.booking_id WHERE a.booking_id = \\$1").
		WithArgs(int64(42)).
		WillReturnRows(joinedRows())

	_, err := repo.GetByBookingID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrAssignmentNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLiveByStaffID(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := joinedRows()
	addJoinedRow(rows, 10, 5, 1, "10:00", domain.StatusAssigned)
	addJoinedRow(rows, 11, 5, 2, "13:00", domain.StatusAssigned)

	mock.ExpectQuery("SELECT (.+) FROM assignments a JOIN bookings b ON b.id = a.booking_id WHERE a.staff_id = \\$1 AND b.status <> \\$2").
		WithArgs(int64(5), domain.StatusCompleted).
		WillReturnRows(rows)

	assignments, err := repo.GetLiveByStaffID(context.Background(), 5)
	require.NoError(t, err)

	require.Len(t, assignments, 2)
	assert.Equal(t, int64(10), assignments[0].ID)
	assert.Equal(t, int64(1), assignments[0].Booking.ID)
	assert.Equal(t, types.TimeString("10:00"), assignments[0].Booking.StartTime)
	assert.Equal(t, int64(11), assignments[1].ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByStaffWithFilter_CompletedOnly(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := joinedRows()
	addJoinedRow(rows, 12, 5, 3, "09:00", domain.StatusCompleted)

	mock.ExpectQuery("SELECT (.+) WHERE a.staff_id = \\$1 AND b.status = \\$2").
		WithArgs(int64(5), domain.StatusCompleted).
		WillReturnRows(rows)

	assignments, err := repo.GetByStaffWithFilter(context.Background(), domain.StaffAssignmentsFilter{
		StaffID:   5,
		Completed: ptr.Ptr(true),
	})
	require.NoError(t, err)

	require.Len(t, assignments, 1)
	assert.Equal(t, domain.StatusCompleted, assignments[0].Booking.Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByBookingID_MissingIsNoError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("DELETE FROM assignments WHERE booking_id = \\$1").
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteByBookingID(context.Background(), 42)
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
