package available_staff

import (
	availableStaff "github.com/m04kA/SMC-StaffingService/internal/usecase/available_staff"
)

// CandidateResponse свободный сотрудник в HTTP ответе
type CandidateResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// AvailableStaffResponse HTTP response model.
// Порядок кандидатов значим: первый - с наивысшим приоритетом
type AvailableStaffResponse struct {
	Date       string              `json:"date"`
	StartTime  string              `json:"startTime"`
	Candidates []CandidateResponse `json:"candidates"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(date, startTime string, resp *availableStaff.Response) *AvailableStaffResponse {
	out := &AvailableStaffResponse{
		Date:       date,
		StartTime:  startTime,
		Candidates: make([]CandidateResponse, 0, len(resp.Candidates)),
	}

	for _, c := range resp.Candidates {
		out.Candidates = append(out.Candidates, CandidateResponse{
			ID:   c.ID,
			Name: c.Name,
		})
	}

	return out
}
