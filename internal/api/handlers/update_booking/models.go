package update_booking

import (
	"github.com/m04kA/SMC-StaffingService/internal/service/bookings/models"
)

// UpdateBookingRequest HTTP request model
// Все поля опциональны, но хотя бы одно должно присутствовать
type UpdateBookingRequest struct {
	ServiceDate  *string `json:"serviceDate,omitempty"`
	StartTime    *string `json:"startTime,omitempty"`
	Address      *string `json:"address,omitempty"`
	LocationKind *string `json:"locationKind,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateBookingRequest) ToServiceRequest(userID int64) *models.UpdateBookingRequest {
	return &models.UpdateBookingRequest{
		UserID:       userID,
		ServiceDate:  r.ServiceDate,
		StartTime:    r.StartTime,
		Address:      r.Address,
		LocationKind: r.LocationKind,
	}
}
