package booking

import (
	"context"
	"errors"
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

func bookingRows() *sqlmock.Rows {
	return sqlmock.NewRows(bookingColumns)
}

func TestGetByID(t *testing.T) {
	repo, mock := newMockRepo(t)

	serviceDate := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = \\$1").
		WithArgs(int64(1)).
		WillReturnRows(bookingRows().
			AddRow(int64(1), int64(100), serviceDate, "13:00", "ул. Ленина, 1", "office", "pending", now, now))

	b, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, int64(1), b.ID)
	assert.Equal(t, int64(100), b.OwnerID)
	assert.Equal(t, types.TimeString("13:00"), b.StartTime)
	assert.Equal(t, domain.LocationOffice, b.LocationKind)
	assert.Equal(t, domain.StatusPending, b.Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = \\$1").
		WithArgs(int64(42)).
		WillReturnRows(bookingRows())

	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetWithFilter(t *testing.T) {
	repo, mock := newMockRepo(t)

	serviceDate := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE owner_id = \\$1 AND status = \\$2").
		WithArgs(int64(100), domain.StatusPending).
		WillReturnRows(bookingRows().
			AddRow(int64(2), int64(100), serviceDate, "15:00", "ул. Мира, 3", "residence", "pending", now, now).
			AddRow(int64(1), int64(100), serviceDate, "13:00", "ул. Ленина, 1", "office", "pending", now, now))

	bookings, err := repo.GetWithFilter(context.Background(), domain.BookingsFilter{
		OwnerID: ptr.Ptr(int64(100)),
		Status:  ptr.Ptr(domain.StatusPending),
	})
	require.NoError(t, err)

	require.Len(t, bookings, 2)
	assert.Equal(t, int64(2), bookings[0].ID)
	assert.Equal(t, int64(1), bookings[1].ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetQueued_IncludesLegacyWaiting(t *testing.T) {
	repo, mock := newMockRepo(t)

	serviceDate := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE status IN \\(\\$1,\\$2\\) ORDER BY id ASC").
		WithArgs("pending", "waiting").
		WillReturnRows(bookingRows().
			AddRow(int64(1), int64(100), serviceDate, "10:00", "ул. Ленина, 1", "office", "pending", now, now).
			AddRow(int64(3), int64(101), serviceDate, "13:00", "ул. Мира, 3", "residence", "waiting", now, now))

	bookings, err := repo.GetQueued(context.Background())
	require.NoError(t, err)

	require.Len(t, bookings, 2)
	assert.Equal(t, domain.StatusPending, bookings[0].Status)
	assert.Equal(t, domain.StatusWaiting, bookings[1].Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE bookings SET status = \\$1, updated_at = NOW\\(\\) WHERE id = \\$2").
		WithArgs(domain.StatusCompleted, int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), 42, domain.StatusCompleted)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_DriverErrorStaysInChain(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE bookings SET status = \\$1, updated_at = NOW\\(\\) WHERE id = \\$2").
		WithArgs(domain.StatusAssigned, int64(1)).
		WillReturnError(&pq.Error{Code: "40001", Message: "could not serialize access"})

	err := repo.UpdateStatus(context.Background(), 1, domain.StatusAssigned)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExecQuery)

	var pqErr *pq.Error
	require.True(t, errors.As(err, &pqErr))
	assert.Equal(t, pq.ErrorCode("40001"), pqErr.Code)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("DELETE FROM bookings WHERE id = \\$1").
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), 1)
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
