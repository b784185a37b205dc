package assignment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
	"github.com/m04kA/SMC-StaffingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StaffingService/pkg/psqlbuilder"
)

// Код ошибки PostgreSQL unique_violation
const pqUniqueViolation = "23505"

var joinedColumns = []string{
	"a.id",
	"a.assigned_date",
	"a.booking_id",
	"a.staff_id",
	"a.created_at",
	"b.id",
	"b.owner_id",
	"b.service_date",
	"b.start_time",
	"b.address",
	"b.location_kind",
	"b.status",
	"b.created_at",
	"b.updated_at",
}

// Repository репозиторий для работы с назначениями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория назначений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое назначение.
// Уникальный индекс по booking_id гарантирует не больше одного живого
// назначения на бронирование; нарушение транслируется в
// ErrBookingAlreadyAssigned.
func (r *Repository) Create(ctx context.Context, a *domain.Assignment) (*domain.Assignment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("assignments").
		Columns(
			"assigned_date",
			"booking_id",
			"staff_id",
		).
		Values(
			a.AssignedDate,
			a.BookingID,
			a.StaffID,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&a.ID, &createdAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrBookingAlreadyAssigned
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	a.CreatedAt = createdAt.Time

	return a, nil
}

// GetByID получает назначение вместе с его бронированием
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.AssignmentWithBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := joinedSelect().Where(squirrel.Eq{"a.id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF a, b")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row, err := scanJoined(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAssignmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan assignment: %w", ErrScanRow, err)
	}

	return row, nil
}

// GetByBookingID получает живое назначение бронирования, если оно есть
func (r *Repository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.AssignmentWithBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := joinedSelect().Where(squirrel.Eq{"a.booking_id": bookingID})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF a, b")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - build select query: %v", ErrBuildQuery, err)
	}

	row, err := scanJoined(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAssignmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - scan assignment: %w", ErrScanRow, err)
	}

	return row, nil
}

// GetLiveByStaffID получает все назначения сотрудника, бронирования которых
// не завершены. Это рабочий набор движка: именно эти строки определяют
// занятые окна сотрудника.
// Внутри транзакции строки блокируются (FOR UPDATE) для защиты
// check-then-act последовательности от параллельных размещений.
func (r *Repository) GetLiveByStaffID(ctx context.Context, staffID int64) ([]*domain.AssignmentWithBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := joinedSelect().
		Where(squirrel.Eq{"a.staff_id": staffID}).
		Where(squirrel.NotEq{"b.status": domain.StatusCompleted}).
		OrderBy("b.service_date ASC, b.start_time ASC, a.id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF a, b")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetLiveByStaffID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetLiveByStaffID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanJoinedRows(rows)
}

// GetLiveByDate получает все назначения на указанную дату бронирования.
// Используется оркестратором вытеснения для перебора кандидатов.
func (r *Repository) GetLiveByDate(ctx context.Context, date time.Time) ([]*domain.AssignmentWithBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := joinedSelect().
		Where(squirrel.Eq{"b.service_date": date}).
		OrderBy("a.id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF a, b")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetLiveByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetLiveByDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanJoinedRows(rows)
}

// GetByStaffWithFilter получает назначения сотрудника с фильтрацией
// по завершённости и периоду. Используется списочными ручками.
func (r *Repository) GetByStaffWithFilter(ctx context.Context, filter domain.StaffAssignmentsFilter) ([]*domain.AssignmentWithBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := joinedSelect().
		Where(squirrel.Eq{"a.staff_id": filter.StaffID}).
		OrderBy("b.service_date ASC, b.start_time ASC, a.id ASC")

	if filter.Completed != nil {
		if *filter.Completed {
			selectBuilder = selectBuilder.Where(squirrel.Eq{"b.status": domain.StatusCompleted})
		} else {
			selectBuilder = selectBuilder.Where(squirrel.NotEq{"b.status": domain.StatusCompleted})
		}
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"b.service_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"b.service_date": *filter.EndDate})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStaffWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStaffWithFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanJoinedRows(rows)
}

// Delete удаляет назначение. Повторное назначение всегда
// delete-then-create, назначения не обновляются.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("assignments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAssignmentNotFound
	}

	return nil
}

// DeleteByBookingID удаляет живое назначение бронирования, если оно есть.
// Отсутствие назначения не считается ошибкой: вызывается при удалении
// и переносе бронирований, у которых назначения может не быть.
func (r *Repository) DeleteByBookingID(ctx context.Context, bookingID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("assignments").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteByBookingID - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteByBookingID - execute delete: %w", ErrExecQuery, err)
	}

	return nil
}

func joinedSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(joinedColumns...).
		From("assignments a").
		Join("bookings b ON b.id = a.booking_id")
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanJoined(row rowScanner) (*domain.AssignmentWithBooking, error) {
	var a domain.AssignmentWithBooking
	var aCreatedAt, bCreatedAt, bUpdatedAt sql.NullTime

	err := row.Scan(
		&a.ID,
		&a.AssignedDate,
		&a.BookingID,
		&a.StaffID,
		&aCreatedAt,
		&a.Booking.ID,
		&a.Booking.OwnerID,
		&a.Booking.ServiceDate,
		&a.Booking.StartTime,
		&a.Booking.Address,
		&a.Booking.LocationKind,
		&a.Booking.Status,
		&bCreatedAt,
		&bUpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.CreatedAt = aCreatedAt.Time
	a.Booking.CreatedAt = bCreatedAt.Time
	a.Booking.UpdatedAt = bUpdatedAt.Time

	return &a, nil
}

func scanJoinedRows(rows *sql.Rows) ([]*domain.AssignmentWithBooking, error) {
	assignments := make([]*domain.AssignmentWithBooking, 0)

	for rows.Next() {
		a, err := scanJoined(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanJoinedRows - scan row: %w", ErrScanRow, err)
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanJoinedRows - rows error: %w", ErrScanRow, err)
	}

	return assignments, nil
}

// isUniqueViolation проверяет, является ли ошибка нарушением unique index
func isUniqueViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return string(pqErr.Code) == pqUniqueViolation
	}
	return false
}
