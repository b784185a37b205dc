package taskhistory

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
	"github.com/m04kA/SMC-StaffingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StaffingService/pkg/psqlbuilder"
)

// Код ошибки PostgreSQL unique_violation
const pqUniqueViolation = "23505"

// Repository репозиторий для работы с историей выполненных задач
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория истории задач
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись истории для назначения.
// Уникальный индекс по assignment_id гарантирует идемпотентность на уровне
// хранилища: вторая запись транслируется в ErrRecordAlreadyExists.
func (r *Repository) Create(ctx context.Context, rec *domain.TaskHistoryRecord) (*domain.TaskHistoryRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("task_history").
		Columns(
			"started_at",
			"finished_at",
			"location",
			"assignment_id",
		).
		Values(
			rec.StartedAt,
			rec.FinishedAt,
			rec.Location,
			rec.AssignmentID,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&rec.ID, &createdAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == pqUniqueViolation {
			return nil, ErrRecordAlreadyExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	rec.CreatedAt = createdAt.Time

	return rec, nil
}

// GetByAssignmentID получает запись истории назначения
func (r *Repository) GetByAssignmentID(ctx context.Context, assignmentID int64) (*domain.TaskHistoryRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"started_at",
		"finished_at",
		"location",
		"assignment_id",
		"created_at",
	).
		From("task_history").
		Where(squirrel.Eq{"assignment_id": assignmentID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAssignmentID - build select query: %v", ErrBuildQuery, err)
	}

	var rec domain.TaskHistoryRecord
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rec.ID,
		&rec.StartedAt,
		&rec.FinishedAt,
		&rec.Location,
		&rec.AssignmentID,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAssignmentID - scan record: %w", ErrScanRow, err)
	}

	rec.CreatedAt = createdAt.Time

	return &rec, nil
}
