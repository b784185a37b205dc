package place_booking

import (
	"fmt"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.OwnerID <= 0 {
		return fmt.Errorf("%w: ownerID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.Address == "" {
		return fmt.Errorf("%w: address is required", ErrInvalidInput)
	}

	if !req.LocationKind.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidLocationKind, req.LocationKind)
	}

	return nil
}

// notificationText формирует текст уведомления владельцу по результату
// размещения
func notificationText(b *domain.Booking, outcome Outcome, staff *AssignedStaff) (string, string) {
	date := b.ServiceDate.Format(domain.DateFormat)

	switch outcome {
	case OutcomeAssigned:
		return "Booking assigned",
			fmt.Sprintf("Your booking for %s at %s has been created and assigned to staff member #%d.",
				date, b.StartTime, staff.ID)
	case OutcomePreempted:
		return "Office booking assigned",
			fmt.Sprintf("Your office booking for %s at %s has been assigned to staff member #%d. A conflicting residence booking was returned to the queue.",
				date, b.StartTime, staff.ID)
	default:
		return "Booking pending",
			fmt.Sprintf("Your booking for %s at %s has been created, but no staff member is currently available. It remains pending.",
				date, b.StartTime)
	}
}
