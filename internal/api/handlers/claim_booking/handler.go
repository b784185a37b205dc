package claim_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StaffingService/internal/api/handlers"
	"github.com/m04kA/SMC-StaffingService/internal/api/middleware"
	"github.com/m04kA/SMC-StaffingService/internal/domain"
	claimBooking "github.com/m04kA/SMC-StaffingService/internal/usecase/claim_booking"
	"github.com/m04kA/SMC-StaffingService/pkg/txmanager"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgBookingNotFound    = "бронирование не найдено"
	msgStaffNotFound      = "сотрудник не найден"
	msgStaffInactive      = "сотрудник неактивен"
	msgNotClaimable       = "бронирование не находится в очереди"
	msgStaffBusy          = "у сотрудника есть конфликтующее назначение"
	msgConcurrentConflict = "конфликт одновременного изменения, повторите запрос"
)

// ClaimBookingResponse HTTP response model
type ClaimBookingResponse struct {
	BookingID    int64 `json:"bookingId"`
	StaffID      int64 `json:"staffId"`
	AssignmentID int64 `json:"assignmentId"`
}

type Handler struct {
	useCase ClaimBookingUseCase
	logger  Logger
}

func NewHandler(useCase ClaimBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/claim
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/claim - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/claim - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Брать бронирования из очереди могут только сотрудники
	role, _ := middleware.GetUserRole(r.Context())
	if role != domain.RoleStaff {
		h.logger.Warn("POST /bookings/{id}/claim - Access denied: user_id=%d, role=%s", userID, role)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &claimBooking.Request{
		BookingID: bookingID,
		StaffID:   userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, claimBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/claim - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, claimBooking.ErrStaffNotFound):
			h.logger.Warn("POST /bookings/{id}/claim - Staff not found: staff_id=%d", userID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, claimBooking.ErrStaffInactive):
			h.logger.Warn("POST /bookings/{id}/claim - Staff inactive: staff_id=%d", userID)
			handlers.RespondForbidden(w, msgStaffInactive)

		case errors.Is(err, claimBooking.ErrNotClaimable):
			h.logger.Warn("POST /bookings/{id}/claim - Not claimable: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgNotClaimable)

		case errors.Is(err, claimBooking.ErrStaffBusy):
			h.logger.Warn("POST /bookings/{id}/claim - Staff busy: booking_id=%d, staff_id=%d", bookingID, userID)
			handlers.RespondConflict(w, msgStaffBusy)

		case errors.Is(err, txmanager.ErrSerializationConflict):
			h.logger.Warn("POST /bookings/{id}/claim - Concurrent modification: booking_id=%d, staff_id=%d", bookingID, userID)
			handlers.RespondConflict(w, msgConcurrentConflict)

		default:
			h.logger.Error("POST /bookings/{id}/claim - Failed to claim booking: booking_id=%d, staff_id=%d, error=%v",
				bookingID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/claim - Booking claimed: booking_id=%d, staff_id=%d, assignment_id=%d",
		bookingID, userID, result.AssignmentID)
	handlers.RespondJSON(w, http.StatusOK, ClaimBookingResponse{
		BookingID:    result.BookingID,
		StaffID:      result.StaffID,
		AssignmentID: result.AssignmentID,
	})
}
