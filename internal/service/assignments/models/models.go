package models

import (
	"time"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
)

// GetStaffAssignmentsRequest запрос на получение назначений сотрудника
type GetStaffAssignmentsRequest struct {
	StaffID   int64      `json:"staffId"`
	Completed *bool      `json:"completed,omitempty"` // true - завершённые, false - активные, nil - все
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetStaffAssignmentsRequest) ToDomainFilter() domain.StaffAssignmentsFilter {
	return domain.StaffAssignmentsFilter{
		StaffID:   r.StaffID,
		Completed: r.Completed,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
	}
}

// AssignmentResponse ответ с данными назначения и бронирования
type AssignmentResponse struct {
	ID           int64  `json:"id"`
	AssignedDate string `json:"assignedDate"` // "2026-03-15"
	StaffID      int64  `json:"staffId"`

	Booking struct {
		ID           int64  `json:"id"`
		OwnerID      int64  `json:"ownerId"`
		ServiceDate  string `json:"serviceDate"`
		StartTime    string `json:"startTime"`
		EndTime      string `json:"endTime"`
		Address      string `json:"address"`
		LocationKind string `json:"locationKind"`
		Status       string `json:"status"`
	} `json:"booking"`

	CreatedAt time.Time `json:"createdAt"`
}

// AssignmentListResponse ответ со списком назначений
type AssignmentListResponse struct {
	Assignments []AssignmentResponse `json:"assignments"`
}

// FromDomainAssignment конвертирует domain модель в DTO
func FromDomainAssignment(a *domain.AssignmentWithBooking) *AssignmentResponse {
	if a == nil {
		return nil
	}

	resp := &AssignmentResponse{
		ID:           a.ID,
		AssignedDate: a.AssignedDate.Format(domain.DateFormat),
		StaffID:      a.StaffID,
		CreatedAt:    a.CreatedAt,
	}

	resp.Booking.ID = a.Booking.ID
	resp.Booking.OwnerID = a.Booking.OwnerID
	resp.Booking.ServiceDate = a.Booking.ServiceDate.Format(domain.DateFormat)
	resp.Booking.StartTime = a.Booking.StartTime.String()
	endTime, _ := a.Booking.StartTime.AddMinutes(domain.ServiceDurationMinutes)
	resp.Booking.EndTime = endTime.String()
	resp.Booking.Address = a.Booking.Address
	resp.Booking.LocationKind = string(a.Booking.LocationKind)
	resp.Booking.Status = string(a.Booking.Status)

	return resp
}

// FromDomainAssignmentList конвертирует список domain моделей в DTO
func FromDomainAssignmentList(assignments []*domain.AssignmentWithBooking) *AssignmentListResponse {
	resp := &AssignmentListResponse{
		Assignments: make([]AssignmentResponse, 0, len(assignments)),
	}

	for _, asgn := range assignments {
		if asgnResp := FromDomainAssignment(asgn); asgnResp != nil {
			resp.Assignments = append(resp.Assignments, *asgnResp)
		}
	}

	return resp
}
