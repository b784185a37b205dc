package force_assign

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StaffingService/internal/api/handlers"
	"github.com/m04kA/SMC-StaffingService/internal/api/middleware"
	"github.com/m04kA/SMC-StaffingService/internal/domain"
	forceAssign "github.com/m04kA/SMC-StaffingService/internal/usecase/force_assign"
	"github.com/m04kA/SMC-StaffingService/pkg/txmanager"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgBookingNotFound    = "бронирование не найдено"
	msgStaffNotFound      = "сотрудник не найден"
	msgStaffInactive      = "сотрудник неактивен"
	msgBookingCompleted   = "завершённое бронирование нельзя переназначить"
	msgInvalidInput       = "некорректные данные запроса"
	msgConcurrentConflict = "конфликт одновременного изменения, повторите запрос"
)

type Handler struct {
	useCase ForceAssignUseCase
	logger  Logger
}

func NewHandler(useCase ForceAssignUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/assignee
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/assignee - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/assignee - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Принудительное назначение доступно только админам
	role, _ := middleware.GetUserRole(r.Context())
	if role != domain.RoleAdmin {
		h.logger.Warn("POST /bookings/{id}/assignee - Access denied: user_id=%d, role=%s", userID, role)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var req ForceAssignRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/assignee - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &forceAssign.Request{
		BookingID: bookingID,
		StaffID:   req.StaffID,
	})
	if err != nil {
		switch {
		case errors.Is(err, forceAssign.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/assignee - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, forceAssign.ErrStaffNotFound):
			h.logger.Warn("POST /bookings/{id}/assignee - Staff not found: staff_id=%d", req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, forceAssign.ErrStaffInactive):
			h.logger.Warn("POST /bookings/{id}/assignee - Staff inactive: staff_id=%d", req.StaffID)
			handlers.RespondConflict(w, msgStaffInactive)

		case errors.Is(err, forceAssign.ErrBookingCompleted):
			h.logger.Warn("POST /bookings/{id}/assignee - Booking completed: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgBookingCompleted)

		case errors.Is(err, forceAssign.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/assignee - Invalid input: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, txmanager.ErrSerializationConflict):
			h.logger.Warn("POST /bookings/{id}/assignee - Concurrent modification: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondConflict(w, msgConcurrentConflict)

		default:
			h.logger.Error("POST /bookings/{id}/assignee - Failed to force assign: booking_id=%d, staff_id=%d, error=%v",
				bookingID, req.StaffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/assignee - Force assigned: booking_id=%d, staff_id=%d, cancelled=%d",
		bookingID, req.StaffID, len(result.Cancelled))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
