package available_staff

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-StaffingService/internal/api/handlers"
	"github.com/m04kA/SMC-StaffingService/internal/domain"
	availableStaff "github.com/m04kA/SMC-StaffingService/internal/usecase/available_staff"
	"github.com/m04kA/SMC-StaffingService/pkg/types"
)

const (
	msgMissingParams = "требуются query параметры date и startTime"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime   = "некорректный формат времени, ожидается HH:MM"
	msgInvalidInput  = "некорректные параметры запроса"
)

type Handler struct {
	useCase AvailableStaffUseCase
	logger  Logger
}

func NewHandler(useCase AvailableStaffUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/staff/available?date=2026-03-15&startTime=10:00
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	dateStr := q.Get("date")
	startTimeStr := q.Get("startTime")

	if dateStr == "" || startTimeStr == "" {
		h.logger.Warn("GET /staff/available - Missing query params")
		handlers.RespondBadRequest(w, msgMissingParams)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /staff/available - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	startTime, err := types.NewTimeStringFromString(startTimeStr)
	if err != nil {
		h.logger.Warn("GET /staff/available - Invalid start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &availableStaff.Request{
		Date:      date,
		StartTime: startTime,
	})
	if err != nil {
		switch {
		case errors.Is(err, availableStaff.ErrInvalidInput):
			h.logger.Warn("GET /staff/available - Invalid input: date=%s, time=%s", dateStr, startTimeStr)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /staff/available - Failed to resolve staff: date=%s, time=%s, error=%v",
				dateStr, startTimeStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /staff/available - Resolved %d candidates: date=%s, time=%s",
		len(result.Candidates), dateStr, startTimeStr)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(dateStr, startTimeStr, result))
}
