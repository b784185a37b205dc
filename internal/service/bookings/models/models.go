package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
	"github.com/m04kA/SMC-StaffingService/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidLocation возвращается при некорректном типе локации
	ErrInvalidLocation = errors.New("invalid location kind")
)

// Request модели

// UpdateBookingRequest запрос на изменение бронирования владельцем
type UpdateBookingRequest struct {
	UserID       int64   `json:"userId"`
	ServiceDate  *string `json:"serviceDate,omitempty"`  // "2026-03-15"
	StartTime    *string `json:"startTime,omitempty"`    // "10:00"
	Address      *string `json:"address,omitempty"`
	LocationKind *string `json:"locationKind,omitempty"` // "office" | "residence"
}

// HasChanges сообщает, есть ли в запросе хотя бы одно изменяемое поле
func (r *UpdateBookingRequest) HasChanges() bool {
	return r.ServiceDate != nil || r.StartTime != nil || r.Address != nil || r.LocationKind != nil
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// ListBookingsRequest запрос на получение бронирований с фильтрацией (админ)
type ListBookingsRequest struct {
	OwnerID   *int64     `json:"ownerId,omitempty"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
	Status    *string    `json:"status,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		OwnerID:   r.OwnerID,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID           int64  `json:"id"`
	OwnerID      int64  `json:"ownerId"`
	ServiceDate  string `json:"serviceDate"` // "2026-03-15"
	StartTime    string `json:"startTime"`   // "10:00"
	EndTime      string `json:"endTime"`     // "12:00", всегда start + 2 часа
	Address      string `json:"address"`
	LocationKind string `json:"locationKind"`
	Status       string `json:"status"`

	// ID назначенного сотрудника, если бронирование назначено
	AssignedStaffID *int64 `json:"assignedStaffId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	endTime, _ := b.StartTime.AddMinutes(domain.ServiceDurationMinutes)

	return &BookingResponse{
		ID:           b.ID,
		OwnerID:      b.OwnerID,
		ServiceDate:  b.ServiceDate.Format(domain.DateFormat),
		StartTime:    b.StartTime.String(),
		EndTime:      endTime.String(),
		Address:      b.Address,
		LocationKind: string(b.LocationKind),
		Status:       string(b.Status),
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	validStatuses := []domain.BookingStatus{
		domain.StatusPending,
		domain.StatusAssigned,
		domain.StatusWaiting,
		domain.StatusCompleted,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}

// ToDomainLocationKind конвертирует строку в domain.LocationKind с валидацией
func ToDomainLocationKind(kind string) (domain.LocationKind, error) {
	k := domain.LocationKind(kind)
	if !k.IsValid() {
		return "", ErrInvalidLocation
	}
	return k, nil
}

// ParseServiceDate разбирает дату бронирования в формате "2006-01-02"
func ParseServiceDate(date string) (time.Time, error) {
	return time.Parse(domain.DateFormat, date)
}

// ParseStartTime разбирает и валидирует время начала в формате "HH:MM"
func ParseStartTime(value string) (types.TimeString, error) {
	t := types.TimeString(value)
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}
