package complete_assignment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StaffingService/internal/api/handlers"
	"github.com/m04kA/SMC-StaffingService/internal/api/middleware"
	completeAssignment "github.com/m04kA/SMC-StaffingService/internal/usecase/complete_assignment"
	"github.com/m04kA/SMC-StaffingService/pkg/txmanager"
)

const (
	msgInvalidAssignmentID = "некорректный ID назначения"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgForbidden           = "доступ запрещен"
	msgNotFound            = "назначение не найдено"
	msgConcurrentConflict  = "конфликт одновременного изменения, повторите запрос"
)

// CompleteAssignmentResponse HTTP response model
type CompleteAssignmentResponse struct {
	Outcome   string `json:"outcome"` // recorded | noop
	RecordID  int64  `json:"recordId"`
	BookingID int64  `json:"bookingId"`
}

type Handler struct {
	useCase CompleteAssignmentUseCase
	logger  Logger
}

func NewHandler(useCase CompleteAssignmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/assignments/{assignmentId}/complete
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	assignmentID, err := strconv.ParseInt(vars["assignmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /assignments/{id}/complete - Invalid assignment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAssignmentID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /assignments/{id}/complete - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	role, _ := middleware.GetUserRole(r.Context())

	result, err := h.useCase.Execute(r.Context(), &completeAssignment.Request{
		AssignmentID: assignmentID,
		CallerID:     userID,
		CallerRole:   role,
	})
	if err != nil {
		switch {
		case errors.Is(err, completeAssignment.ErrAssignmentNotFound):
			h.logger.Warn("POST /assignments/{id}/complete - Assignment not found: assignment_id=%d", assignmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, completeAssignment.ErrAccessDenied):
			h.logger.Warn("POST /assignments/{id}/complete - Access denied: assignment_id=%d, user_id=%d",
				assignmentID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, txmanager.ErrSerializationConflict):
			h.logger.Warn("POST /assignments/{id}/complete - Concurrent modification: assignment_id=%d", assignmentID)
			handlers.RespondConflict(w, msgConcurrentConflict)

		default:
			h.logger.Error("POST /assignments/{id}/complete - Failed to complete: assignment_id=%d, error=%v",
				assignmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /assignments/{id}/complete - Completed: assignment_id=%d, outcome=%s, booking_id=%d",
		assignmentID, result.Outcome, result.BookingID)
	handlers.RespondJSON(w, http.StatusOK, CompleteAssignmentResponse{
		Outcome:   string(result.Outcome),
		RecordID:  result.RecordID,
		BookingID: result.BookingID,
	})
}
