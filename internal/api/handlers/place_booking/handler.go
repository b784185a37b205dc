package place_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StaffingService/internal/api/handlers"
	"github.com/m04kA/SMC-StaffingService/internal/api/middleware"
	placeBooking "github.com/m04kA/SMC-StaffingService/internal/usecase/place_booking"
	"github.com/m04kA/SMC-StaffingService/pkg/txmanager"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidLocation    = "некорректный тип локации, ожидается office или residence"
	msgInvalidInput       = "некорректные данные бронирования"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgConcurrentConflict = "конфликт одновременного изменения, повторите запрос"
)

type Handler struct {
	useCase PlaceBookingUseCase
	logger  Logger
}

func NewHandler(useCase PlaceBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req PlaceBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, placeBooking.ErrInvalidLocationKind):
			h.logger.Warn("POST /bookings - Invalid location kind: user_id=%d, kind=%s", userID, req.LocationKind)
			handlers.RespondBadRequest(w, msgInvalidLocation)

		case errors.Is(err, placeBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, txmanager.ErrSerializationConflict):
			h.logger.Warn("POST /bookings - Concurrent modification: user_id=%d, error=%v", userID, err)
			handlers.RespondConflict(w, msgConcurrentConflict)

		default:
			h.logger.Error("POST /bookings - Failed to place booking: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking placed: booking_id=%d, user_id=%d, outcome=%s",
		result.BookingID, userID, result.Outcome)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
