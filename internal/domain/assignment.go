package domain

import "time"

// Assignment is the live binding of exactly one staff member to one booking.
// Assignments are never mutated in place: a re-assignment is always
// delete-then-create. At most one assignment references a given booking.
type Assignment struct {
	ID           int64
	AssignedDate time.Time
	BookingID    int64
	StaffID      int64

	CreatedAt time.Time
}

// AssignmentWithBooking is an assignment joined with its booking, as the
// engine needs both sides to compute occupied windows.
type AssignmentWithBooking struct {
	Assignment
	Booking Booking
}

// StaffAssignmentsFilter фильтр для выборки назначений сотрудника
type StaffAssignmentsFilter struct {
	StaffID   int64      // Обязательный параметр
	Completed *bool      // true - только завершённые, false - только активные, nil - все
	StartDate *time.Time // Начало периода по дате бронирования (опционально)
	EndDate   *time.Time // Конец периода по дате бронирования (опционально)
}
