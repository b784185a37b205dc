package get_staff_assignments

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StaffingService/internal/api/handlers"
	"github.com/m04kA/SMC-StaffingService/internal/api/middleware"
	"github.com/m04kA/SMC-StaffingService/internal/domain"
	"github.com/m04kA/SMC-StaffingService/internal/service/assignments"
	"github.com/m04kA/SMC-StaffingService/internal/service/assignments/models"
)

const (
	msgInvalidStaffID = "некорректный ID сотрудника"
	msgInvalidFilter  = "некорректные параметры фильтрации"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgForbidden      = "доступ запрещен"
)

type Handler struct {
	service AssignmentService
	logger  Logger
}

func NewHandler(service AssignmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/staff/{staffId}/assignments?completed=false&startDate=&endDate=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	staffID, err := strconv.ParseInt(vars["staffId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /staff/{id}/assignments - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /staff/{id}/assignments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	callerRole, _ := middleware.GetUserRole(r.Context())

	req, err := parseFilter(r, staffID)
	if err != nil {
		h.logger.Warn("GET /staff/{id}/assignments - Invalid filter: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	result, err := h.service.GetStaffAssignments(r.Context(), req, callerID, callerRole)
	if err != nil {
		switch {
		case errors.Is(err, assignments.ErrAccessDenied):
			h.logger.Warn("GET /staff/{id}/assignments - Access denied: staff_id=%d, caller=%d", staffID, callerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, assignments.ErrInvalidInput):
			h.logger.Warn("GET /staff/{id}/assignments - Invalid input: staff_id=%d", staffID)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /staff/{id}/assignments - Failed to get assignments: staff_id=%d, error=%v",
				staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /staff/{id}/assignments - Retrieved %d assignments: staff_id=%d",
		len(result.Assignments), staffID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// parseFilter разбирает query параметры фильтрации
func parseFilter(r *http.Request, staffID int64) (*models.GetStaffAssignmentsRequest, error) {
	req := &models.GetStaffAssignmentsRequest{StaffID: staffID}
	q := r.URL.Query()

	if completedStr := q.Get("completed"); completedStr != "" {
		completed, err := strconv.ParseBool(completedStr)
		if err != nil {
			return nil, err
		}
		req.Completed = &completed
	}

	if startDateStr := q.Get("startDate"); startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if endDateStr := q.Get("endDate"); endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	return req, nil
}
