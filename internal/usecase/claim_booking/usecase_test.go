package claim_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-StaffingService/internal/infra/storage/booking"
	directoryClient "github.com/m04kA/SMC-StaffingService/internal/integrations/staffdirectory"
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
	bookings map[int64]*domain.Booking
	statuses map[int64]domain.BookingStatus
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (r *fakeBookingRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	r.statuses[id] = status
	return nil
}

type fakeAssignmentRepo struct {
	live    []*domain.AssignmentWithBooking
	created []*domain.Assignment
}

func (r *fakeAssignmentRepo) Create(ctx context.Context, a *domain.Assignment) (*domain.Assignment, error) {
	a.ID = int64(len(r.created) + 1)
	r.created = append(r.created, a)
	return a, nil
}

func (r *fakeAssignmentRepo) GetLiveByStaffID(ctx context.Context, staffID int64) ([]*domain.AssignmentWithBooking, error) {
	return r.live, nil
}

type fakeDirectory struct {
	staff map[int64]*directoryClient.StaffMember
}

func (d *fakeDirectory) GetStaff(ctx context.Context, staffID int64) (*directoryClient.StaffMember, error) {
	s, ok := d.staff[staffID]
	if !ok {
		return nil, directoryClient.ErrStaffNotFound
	}
	return s, nil
}

var testDate = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

func queuedBooking(id int64, start types.TimeString) *domain.Booking {
	return &domain.Booking{
		ID:           id,
		OwnerID:      100,
		LocationKind: domain.LocationResidence,
		Address:      "ул. Мира, 3",
		ServiceDate:  testDate,
		StartTime:    start,
		Status:       domain.StatusPending,
	}
}

func occupiedAt(start types.TimeString) *domain.AssignmentWithBooking {
	return &domain.AssignmentWithBooking{
		Assignment: domain.Assignment{ID: 50, StaffID: 5, BookingID: 9},
		Booking: domain.Booking{
			ID:          9,
			ServiceDate: testDate,
			StartTime:   start,
			Status:      domain.StatusAssigned,
		},
	}
}

func newFixture(b *domain.Booking, live ...*domain.AssignmentWithBooking) (*fakeBookingRepo, *fakeAssignmentRepo, *UseCase) {
	bookings := &fakeBookingRepo{bookings: map[int64]*domain.Booking{}, statuses: map[int64]domain.BookingStatus{}}
	if b != nil {
		bookings.bookings[b.ID] = b
	}
	assignments := &fakeAssignmentRepo{live: live}
	directory := &fakeDirectory{staff: map[int64]*directoryClient.StaffMember{
		5: {ID: 5, Name: "Мария Смирнова", Active: true},
		6: {ID: 6, Name: "Пётр Иванов", Active: false},
	}}
	uc := NewUseCase(bookings, assignments, directory, fakeTxManager{}, nopLogger{})
	return bookings, assignments, uc
}

func TestExecute_ClaimsQueuedBooking(t *testing.T) {
	bookings, assignments, uc := newFixture(queuedBooking(1, "13:00"))

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 1, StaffID: 5})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.BookingID)
	assert.Equal(t, int64(5), resp.StaffID)
	assert.Equal(t, int64(1), resp.AssignmentID)

	require.Len(t, assignments.created, 1)
	assert.Equal(t, int64(5), assignments.created[0].StaffID)
	assert.Equal(t, domain.StatusAssigned, bookings.statuses[1])
}

func TestExecute_BufferedConflictRejectsClaim(t *testing.T) {
	// Claim at 12:00 buffers to [10:00, 14:00); existing job occupies
	// [10:00, 12:00), so the staff member is busy.
	_, assignments, uc := newFixture(queuedBooking(1, "12:00"), occupiedAt("10:00"))

	_, err := uc.Execute(context.Background(), &Request{BookingID: 1, StaffID: 5})
	assert.ErrorIs(t, err, ErrStaffBusy)
	assert.Empty(t, assignments.created)
}

func TestExecute_AdjacentWindowIsFree(t *testing.T) {
	// Existing job [08:00, 10:00) ends exactly where the 12:00 claim's
	// buffer [10:00, 14:00) begins; half-open windows do not overlap.
	bookings, _, uc := newFixture(queuedBooking(1, "12:00"), occupiedAt("08:00"))

	_, err := uc.Execute(context.Background(), &Request{BookingID: 1, StaffID: 5})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAssigned, bookings.statuses[1])
}

func TestExecute_NotClaimable(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusAssigned, domain.StatusCompleted} {
		b := queuedBooking(1, "13:00")
		b.Status = status
		_, _, uc := newFixture(b)

		_, err := uc.Execute(context.Background(), &Request{BookingID: 1, StaffID: 5})
		assert.ErrorIs(t, err, ErrNotClaimable, "status=%s", status)
	}
}

func TestExecute_StaffChecks(t *testing.T) {
	_, _, uc := newFixture(queuedBooking(1, "13:00"))

	_, err := uc.Execute(context.Background(), &Request{BookingID: 1, StaffID: 6})
	assert.ErrorIs(t, err, ErrStaffInactive)

	_, err = uc.Execute(context.Background(), &Request{BookingID: 1, StaffID: 77})
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestExecute_BookingNotFoundAndValidation(t *testing.T) {
	_, _, uc := newFixture(nil)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 42, StaffID: 5})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = uc.Execute(context.Background(), &Request{BookingID: 0, StaffID: 5})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
