package place_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
	"github.com/m04kA/SMC-StaffingService/internal/integrations/notify"
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
	nextID   int64
	statuses map[int64]domain.BookingStatus
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{nextID: 1, statuses: map[int64]domain.BookingStatus{}}
}

func (r *fakeBookingRepo) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	b.ID = r.nextID
	r.nextID++
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	r.statuses[b.ID] = b.Status
	return b, nil
}

func (r *fakeBookingRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	r.statuses[id] = status
	return nil
}

type fakeAssignmentRepo struct {
	created []domain.Assignment
	deleted []int64
	live    []*domain.AssignmentWithBooking
	nextID  int64
}

func (r *fakeAssignmentRepo) Create(ctx context.Context, a *domain.Assignment) (*domain.Assignment, error) {
	r.nextID++
	a.ID = r.nextID
	r.created = append(r.created, *a)
	return a, nil
}

func (r *fakeAssignmentRepo) Delete(ctx context.Context, id int64) error {
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeAssignmentRepo) GetLiveByDate(ctx context.Context, date time.Time) ([]*domain.AssignmentWithBooking, error) {
	return r.live, nil
}

type fakeResolver struct {
	candidates []availableStaff.Candidate
}

func (f *fakeResolver) Execute(ctx context.Context, req *availableStaff.Request) (*availableStaff.Response, error) {
	return &availableStaff.Response{Candidates: f.candidates}, nil
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notify.Notification
	done chan struct{}
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{done: make(chan struct{}, 1)}
}

func (n *recordingNotifier) Send(ctx context.Context, msg notify.Notification) error {
	n.mu.Lock()
	n.sent = append(n.sent, msg)
	n.mu.Unlock()
	select {
	case n.done <- struct{}{}:
	default:
	}
	return nil
}

func (n *recordingNotifier) waitForSend(t *testing.T) notify.Notification {
	t.Helper()
	select {
	case <-n.done:
	case <-time.After(2 * time.Second):
		t.Fatal("notification was not sent")
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.sent[0]
}

func testDate() time.Time {
	return time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
}

func validRequest(kind domain.LocationKind) *Request {
	return &Request{
		OwnerID:      42,
		Date:         testDate(),
		StartTime:    types.TimeString("13:00"),
		Address:      "ул. Ленина, 1",
		LocationKind: kind,
	}
}

func residenceAssignment(id, staffID, bookingID int64, start string) *domain.AssignmentWithBooking {
	return &domain.AssignmentWithBooking{
		Assignment: domain.Assignment{ID: id, StaffID: staffID, BookingID: bookingID},
		Booking: domain.Booking{
			ID:           bookingID,
			ServiceDate:  testDate(),
			StartTime:    types.TimeString(start),
			LocationKind: domain.LocationResidence,
			Status:       domain.StatusAssigned,
		},
	}
}

func TestExecute_DirectAssignment(t *testing.T) {
	bookings := newFakeBookingRepo()
	assignments := &fakeAssignmentRepo{}
	notifier := newRecordingNotifier()

	uc := NewUseCase(
		bookings,
		assignments,
		&fakeResolver{candidates: []availableStaff.Candidate{{ID: 7, Name: "Ana"}}},
		notifier,
		fakeTxManager{},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), validRequest(domain.LocationResidence))
	require.NoError(t, err)

	assert.Equal(t, OutcomeAssigned, resp.Outcome)
	require.NotNil(t, resp.Staff)
	assert.Equal(t, int64(7), resp.Staff.ID)
	assert.Nil(t, resp.DisplacedBookingID)
	assert.Equal(t, string(domain.StatusAssigned), resp.Status)

	require.Len(t, assignments.created, 1)
	assert.Equal(t, resp.BookingID, assignments.created[0].BookingID)
	assert.Equal(t, domain.StatusAssigned, bookings.statuses[resp.BookingID])

	msg := notifier.waitForSend(t)
	assert.Equal(t, int64(42), msg.RecipientID)
}

func TestExecute_OfficePreemptsResidence(t *testing.T) {
	bookings := newFakeBookingRepo()
	// Residence job at 14:00 occupies [14:00, 16:00); the office booking
	// at 13:00 occupies [13:00, 15:00) and the plain windows collide.
	assignments := &fakeAssignmentRepo{
		live: []*domain.AssignmentWithBooking{residenceAssignment(11, 5, 100, "14:00")},
	}
	notifier := newRecordingNotifier()

	uc := NewUseCase(
		bookings,
		assignments,
		&fakeResolver{}, // nobody free
		notifier,
		fakeTxManager{},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), validRequest(domain.LocationOffice))
	require.NoError(t, err)

	assert.Equal(t, OutcomePreempted, resp.Outcome)
	require.NotNil(t, resp.Staff)
	assert.Equal(t, int64(5), resp.Staff.ID)
	require.NotNil(t, resp.DisplacedBookingID)
	assert.Equal(t, int64(100), *resp.DisplacedBookingID)

	// Victim assignment removed, victim booking requeued.
	assert.Equal(t, []int64{11}, assignments.deleted)
	assert.Equal(t, domain.StatusPending, bookings.statuses[100])

	// New booking assigned to the freed staff member.
	require.Len(t, assignments.created, 1)
	assert.Equal(t, int64(5), assignments.created[0].StaffID)
	assert.Equal(t, domain.StatusAssigned, bookings.statuses[resp.BookingID])
}

func TestExecute_PreemptionSkipsAdjacentWindows(t *testing.T) {
	// Residence job at 10:00 occupies [10:00, 12:00); office at 13:00
	// occupies [13:00, 15:00). No plain overlap, so no preemption even
	// though the buffered availability test would exclude the staff member.
	bookings := newFakeBookingRepo()
	assignments := &fakeAssignmentRepo{
		live: []*domain.AssignmentWithBooking{residenceAssignment(11, 5, 100, "10:00")},
	}

	uc := NewUseCase(bookings, assignments, &fakeResolver{}, newRecordingNotifier(), fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest(domain.LocationOffice))
	require.NoError(t, err)

	assert.Equal(t, OutcomeWaiting, resp.Outcome)
	assert.Empty(t, assignments.deleted)
	assert.Equal(t, domain.StatusPending, bookings.statuses[resp.BookingID])
}

func TestExecute_OfficeNeverPreemptsOffice(t *testing.T) {
	bookings := newFakeBookingRepo()
	office := residenceAssignment(11, 5, 100, "13:00")
	office.Booking.LocationKind = domain.LocationOffice
	assignments := &fakeAssignmentRepo{live: []*domain.AssignmentWithBooking{office}}

	uc := NewUseCase(bookings, assignments, &fakeResolver{}, newRecordingNotifier(), fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest(domain.LocationOffice))
	require.NoError(t, err)
	assert.Equal(t, OutcomeWaiting, resp.Outcome)
	assert.Empty(t, assignments.deleted)
}

func TestExecute_ResidenceNeverPreempts(t *testing.T) {
	bookings := newFakeBookingRepo()
	assignments := &fakeAssignmentRepo{
		live: []*domain.AssignmentWithBooking{residenceAssignment(11, 5, 100, "13:00")},
	}

	uc := NewUseCase(bookings, assignments, &fakeResolver{}, newRecordingNotifier(), fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest(domain.LocationResidence))
	require.NoError(t, err)

	assert.Equal(t, OutcomeWaiting, resp.Outcome)
	assert.Empty(t, assignments.deleted)
	assert.Equal(t, domain.StatusPending, bookings.statuses[resp.BookingID])
}

func TestExecute_PreemptsOnlyFirstMatch(t *testing.T) {
	bookings := newFakeBookingRepo()
	bookings.statuses[100] = domain.StatusAssigned
	bookings.statuses[101] = domain.StatusAssigned
	assignments := &fakeAssignmentRepo{
		live: []*domain.AssignmentWithBooking{
			residenceAssignment(11, 5, 100, "13:00"),
			residenceAssignment(12, 6, 101, "14:00"),
		},
	}

	uc := NewUseCase(bookings, assignments, &fakeResolver{}, newRecordingNotifier(), fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest(domain.LocationOffice))
	require.NoError(t, err)

	assert.Equal(t, OutcomePreempted, resp.Outcome)
	assert.Equal(t, []int64{11}, assignments.deleted)
	// Second conflicting residence keeps its assignment.
	assert.Equal(t, domain.StatusAssigned, bookings.statuses[101])
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(newFakeBookingRepo(), &fakeAssignmentRepo{}, &fakeResolver{}, newRecordingNotifier(), fakeTxManager{}, nopLogger{})

	req := validRequest(domain.LocationOffice)
	req.OwnerID = 0
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest("warehouse")
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidLocationKind)

	req = validRequest(domain.LocationOffice)
	req.Address = ""
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
