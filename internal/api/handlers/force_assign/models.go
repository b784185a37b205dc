package force_assign

import (
	forceAssign "github.com/m04kA/SMC-StaffingService/internal/usecase/force_assign"
)

// ForceAssignRequest HTTP request model
type ForceAssignRequest struct {
	StaffID int64 `json:"staffId"`
}

// CancelledAssignmentResponse снятое каскадом назначение в HTTP ответе
type CancelledAssignmentResponse struct {
	AssignmentID int64 `json:"assignmentId"`
	BookingID    int64 `json:"bookingId"`
}

// ForceAssignResponse HTTP response model
type ForceAssignResponse struct {
	BookingID    int64                         `json:"bookingId"`
	StaffID      int64                         `json:"staffId"`
	StaffName    string                        `json:"staffName"`
	AssignmentID int64                         `json:"assignmentId"`
	Cancelled    []CancelledAssignmentResponse `json:"cancelled"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *forceAssign.Response) *ForceAssignResponse {
	out := &ForceAssignResponse{
		BookingID:    resp.BookingID,
		StaffID:      resp.StaffID,
		StaffName:    resp.StaffName,
		AssignmentID: resp.AssignmentID,
		Cancelled:    make([]CancelledAssignmentResponse, 0, len(resp.Cancelled)),
	}

	for _, c := range resp.Cancelled {
		out.Cancelled = append(out.Cancelled, CancelledAssignmentResponse{
			AssignmentID: c.AssignmentID,
			BookingID:    c.BookingID,
		})
	}

	return out
}
