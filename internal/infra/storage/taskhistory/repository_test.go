package taskhistory

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db), mock
}

func TestCreate(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	mock.ExpectQuery("INSERT INTO task_history \\(started_at,finished_at,location,assignment_id\\)").
		WithArgs(now, now, "ул. Ленина, 1", int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), now))

	rec, err := repo.Create(context.Background(), &domain.TaskHistoryRecord{
		StartedAt:    now,
		FinishedAt:   now,
		Location:     "ул. Ленина, 1",
		AssignmentID: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), rec.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateAssignment(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("INSERT INTO task_history").
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.Create(context.Background(), &domain.TaskHistoryRecord{
		StartedAt:    time.Now(),
		FinishedAt:   time.Now(),
		Location:     "ул. Ленина, 1",
		AssignmentID: 10,
	})
	assert.ErrorIs(t, err, ErrRecordAlreadyExists)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByAssignmentID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM task_history WHERE assignment_id = \\$1").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "started_at", "finished_at", "location", "assignment_id", "created_at"}))

	_, err := repo.GetByAssignmentID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
