package place_booking

import (
	"time"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
	placeBooking "github.com/m04kA/SMC-StaffingService/internal/usecase/place_booking"
	"github.com/m04kA/SMC-StaffingService/pkg/types"
)

// PlaceBookingRequest HTTP request model
type PlaceBookingRequest struct {
	ServiceDate  string `json:"serviceDate"`  // "2026-03-15"
	StartTime    string `json:"startTime"`    // "10:00"
	Address      string `json:"address"`
	LocationKind string `json:"locationKind"` // "office" | "residence"
}

// AssignedStaffResponse назначенный сотрудник в HTTP ответе
type AssignedStaffResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// PlaceBookingResponse HTTP response model
type PlaceBookingResponse struct {
	ID           int64  `json:"id"`
	OwnerID      int64  `json:"ownerId"`
	ServiceDate  string `json:"serviceDate"`
	StartTime    string `json:"startTime"`
	Address      string `json:"address"`
	LocationKind string `json:"locationKind"`
	Status       string `json:"status"`
	Outcome      string `json:"outcome"` // assigned | preempted | waiting

	Staff              *AssignedStaffResponse `json:"staff,omitempty"`
	DisplacedBookingID *int64                 `json:"displacedBookingId,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *PlaceBookingRequest) ToUseCaseRequest(ownerID int64) (*placeBooking.Request, error) {
	serviceDate, err := time.Parse(domain.DateFormat, r.ServiceDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &placeBooking.Request{
		OwnerID:      ownerID,
		Date:         serviceDate,
		StartTime:    startTime,
		Address:      r.Address,
		LocationKind: domain.LocationKind(r.LocationKind),
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *placeBooking.Response) *PlaceBookingResponse {
	out := &PlaceBookingResponse{
		ID:                 resp.BookingID,
		OwnerID:            resp.OwnerID,
		ServiceDate:        resp.Date.Format(domain.DateFormat),
		StartTime:          resp.StartTime.String(),
		Address:            resp.Address,
		LocationKind:       resp.LocationKind,
		Status:             resp.Status,
		Outcome:            string(resp.Outcome),
		DisplacedBookingID: resp.DisplacedBookingID,
		CreatedAt:          resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          resp.UpdatedAt.Format(time.RFC3339),
	}

	if resp.Staff != nil {
		out.Staff = &AssignedStaffResponse{
			ID:   resp.Staff.ID,
			Name: resp.Staff.Name,
		}
	}

	return out
}
