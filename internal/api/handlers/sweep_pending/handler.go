package sweep_pending

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StaffingService/internal/api/handlers"
	"github.com/m04kA/SMC-StaffingService/internal/api/middleware"
	"github.com/m04kA/SMC-StaffingService/internal/domain"
	"github.com/m04kA/SMC-StaffingService/pkg/txmanager"
)

const (
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgConcurrentConflict = "конфликт одновременного изменения, повторите запрос"
)

// SweepResponse HTTP response model
type SweepResponse struct {
	Scanned  int `json:"scanned"`
	Assigned int `json:"assigned"`
}

type Handler struct {
	useCase SweepPendingUseCase
	logger  Logger
}

func NewHandler(useCase SweepPendingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/assignments/sweep
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /assignments/sweep - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	role, _ := middleware.GetUserRole(r.Context())
	if role != domain.RoleAdmin {
		h.logger.Warn("POST /assignments/sweep - Access denied: user_id=%d, role=%s", userID, role)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	result, err := h.useCase.Execute(r.Context())
	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationConflict) {
			h.logger.Warn("POST /assignments/sweep - Concurrent modification: user_id=%d", userID)
			handlers.RespondConflict(w, msgConcurrentConflict)
			return
		}
		h.logger.Error("POST /assignments/sweep - Sweep failed: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /assignments/sweep - Sweep completed: scanned=%d, assigned=%d, user_id=%d",
		result.Scanned, result.Assigned, userID)
	handlers.RespondJSON(w, http.StatusOK, SweepResponse{
		Scanned:  result.Scanned,
		Assigned: result.Assigned,
	})
}
