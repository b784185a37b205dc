package domain

import (
	"time"

	"github.com/m04kA/SMC-StaffingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	// StatusPending: booking is queued, no staff member assigned yet
	StatusPending BookingStatus = "pending"
	// StatusAssigned: exactly one live assignment references the booking
	StatusAssigned BookingStatus = "assigned"
	// StatusWaiting: legacy queue status, treated the same as pending
	StatusWaiting BookingStatus = "waiting"
	// StatusCompleted: the assignment has been closed with a task history record
	StatusCompleted BookingStatus = "completed"
)

// LocationKind represents the kind of service location
type LocationKind string

const (
	LocationOffice    LocationKind = "office"
	LocationResidence LocationKind = "residence"
)

// IsValid reports whether the location kind is one of the known values
func (k LocationKind) IsValid() bool {
	return k == LocationOffice || k == LocationResidence
}

// Booking represents a client's request for a fixed two-hour on-site service
type Booking struct {
	ID           int64
	OwnerID      int64
	ServiceDate  time.Time
	StartTime    types.TimeString
	Address      string
	LocationKind LocationKind
	Status       BookingStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// StartDateTime returns the full start timestamp of the service window
func (b *Booking) StartDateTime() (time.Time, error) {
	return b.StartTime.At(b.ServiceDate)
}

// ServiceWindow returns the occupied (unbuffered) two-hour window of the booking
func (b *Booking) ServiceWindow() (Window, error) {
	start, err := b.StartDateTime()
	if err != nil {
		return Window{}, err
	}
	return NewServiceWindow(start), nil
}

// IsQueued returns true if the booking is waiting for an assignment
func (b *Booking) IsQueued() bool {
	return b.Status == StatusPending || b.Status == StatusWaiting
}

// IsCompleted returns true if the booking has been completed
func (b *Booking) IsCompleted() bool {
	return b.Status == StatusCompleted
}

// CanBeDeleted returns true if the owning client may delete the booking
func (b *Booking) CanBeDeleted() bool {
	return b.Status != StatusCompleted
}

// CanBeRescheduled returns true if the owning client may edit the booking
func (b *Booking) CanBeRescheduled() bool {
	return b.Status != StatusCompleted
}

// CanBeClaimed returns true if a staff member may claim the booking directly
func (b *Booking) CanBeClaimed() bool {
	return b.IsQueued()
}

// BookingsFilter фильтр для выборки бронирований
type BookingsFilter struct {
	OwnerID   *int64         // Фильтр по владельцу (опционально)
	StartDate *time.Time     // Начало периода (опционально)
	EndDate   *time.Time     // Конец периода (опционально)
	Status    *BookingStatus // Фильтр по статусу (опционально)
}
