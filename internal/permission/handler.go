package permission

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Cordillera123/APIs-Solstic-sub002/internal/transport"
	"github.com/Cordillera123/APIs-Solstic-sub002/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	GetPermissionTree(userID int64) ([]MenuNode, error)
	AssignPermissions(userID int64, changes []ChangeRequest) (*AssignResult, error)
	CopyPermissions(sourceUserID, targetUserID int64, overwrite bool) (*CopyResult, error)
	GetActivePermissions(userID int64) (*ActivePermissions, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) GetPermissionTree(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userIDParam(w, r)
	if !ok {
		return
	}

	tree, err := h.Service.GetPermissionTree(userID)
	if err != nil {
		h.Logger.Error("GetPermissionTree: service error", "error", err, "user_id", userID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, "permission tree", tree)
}

func (h *Handler) AssignPermissions(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userIDParam(w, r)
	if !ok {
		return
	}

	var dto AssignPermissionsDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("AssignPermissions: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.Service.AssignPermissions(userID, dto.Changes)
	if err != nil {
		h.Logger.Error("AssignPermissions: service error", "error", err, "user_id", userID)
		h.HandleServiceError(w, err)
		return
	}

	if len(result.Errors) > 0 {
		h.WriteWarning(w, http.StatusOK, "permissions assigned with errors", result, result.Errors)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "permissions assigned", result)
}

func (h *Handler) CopyPermissions(w http.ResponseWriter, r *http.Request) {
	targetID, ok := h.userIDParam(w, r)
	if !ok {
		return
	}

	var dto CopyPermissionsDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CopyPermissions: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.Service.CopyPermissions(dto.SourceUserID, targetID, dto.Overwrite)
	if err != nil {
		h.Logger.Error("CopyPermissions: service error", "error", err,
			"source_user_id", dto.SourceUserID, "target_user_id", targetID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, "permissions copied", result)
}

func (h *Handler) GetActivePermissions(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userIDParam(w, r)
	if !ok {
		return
	}

	summary, err := h.Service.GetActivePermissions(userID)
	if err != nil {
		h.Logger.Error("GetActivePermissions: service error", "error", err, "user_id", userID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, "active permissions", summary)
}

func (h *Handler) userIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		h.Logger.Error("invalid user ID", "id", idStr)
		h.WriteError(w, http.StatusBadRequest, "invalid user ID")
		return 0, false
	}
	return id, true
}
