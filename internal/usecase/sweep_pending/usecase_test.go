package sweep_pending

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
	availableStaff "github.com/m04kA/SMC-StaffingService/internal/usecase/available_staff"
	"github.com/m04kA/SMC-StaffingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeBookingRepo struct {
	queued   []*domain.Booking
	statuses map[int64]domain.BookingStatus
}

func (r *fakeBookingRepo) GetQueued(ctx context.Context) ([]*domain.Booking, error) {
	return r.queued, nil
}

func (r *fakeBookingRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	r.statuses[id] = status
	return nil
}

type fakeAssignmentRepo struct {
	created []domain.Assignment
	nextID  int64
}

func (r *fakeAssignmentRepo) Create(ctx context.Context, a *domain.Assignment) (*domain.Assignment, error) {
	r.nextID++
	a.ID = r.nextID
	r.created = append(r.created, *a)
	return a, nil
}

// perSlotResolver возвращает кандидатов по времени начала слота
type perSlotResolver struct {
	bySlot map[string][]availableStaff.Candidate
}

func (f *perSlotResolver) Execute(ctx context.Context, req *availableStaff.Request) (*availableStaff.Response, error) {
	return &availableStaff.Response{Candidates: f.bySlot[req.StartTime.String()]}, nil
}

func queuedBooking(id int64, start string, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:          id,
		ServiceDate: time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		StartTime:   types.TimeString(start),
		Status:      status,
	}
}

func TestExecute_AssignsWhereStaffFree(t *testing.T) {
	bookings := &fakeBookingRepo{
		queued: []*domain.Booking{
			queuedBooking(1, "10:00", domain.StatusPending),
			queuedBooking(2, "13:00", domain.StatusPending),
			queuedBooking(3, "16:00", domain.StatusWaiting), // legacy status swept too
		},
		statuses: map[int64]domain.BookingStatus{},
	}
	assignments := &fakeAssignmentRepo{}
	resolver := &perSlotResolver{bySlot: map[string][]availableStaff.Candidate{
		"10:00": {{ID: 7, Name: "Ana"}},
		"16:00": {{ID: 9, Name: "Vera"}},
	}}

	uc := NewUseCase(bookings, assignments, resolver, fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Scanned)
	assert.Equal(t, 2, resp.Assigned)

	require.Len(t, assignments.created, 2)
	assert.Equal(t, int64(7), assignments.created[0].StaffID)
	assert.Equal(t, int64(9), assignments.created[1].StaffID)

	assert.Equal(t, domain.StatusAssigned, bookings.statuses[1])
	assert.Equal(t, domain.StatusAssigned, bookings.statuses[3])
	// Booking 2 had no candidates and stays untouched.
	_, touched := bookings.statuses[2]
	assert.False(t, touched)
}

func TestExecute_EmptyQueue(t *testing.T) {
	bookings := &fakeBookingRepo{statuses: map[int64]domain.BookingStatus{}}
	assignments := &fakeAssignmentRepo{}

	uc := NewUseCase(bookings, assignments, &perSlotResolver{}, fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Scanned)
	assert.Equal(t, 0, resp.Assigned)
	assert.Empty(t, assignments.created)
}

func TestExecute_IdempotentWhenNobodyFree(t *testing.T) {
	bookings := &fakeBookingRepo{
		queued:   []*domain.Booking{queuedBooking(1, "10:00", domain.StatusPending)},
		statuses: map[int64]domain.BookingStatus{},
	}
	assignments := &fakeAssignmentRepo{}

	uc := NewUseCase(bookings, assignments, &perSlotResolver{}, fakeTxManager{}, nopLogger{})

	for i := 0; i < 3; i++ {
		resp, err := uc.Execute(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Scanned)
		assert.Equal(t, 0, resp.Assigned)
	}
	assert.Empty(t, assignments.created)
}
