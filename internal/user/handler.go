package user

import (
	"log/slog"
	"net/http"

	"github.com/Cordillera123/APIs-Solstic-sub002/internal/auth"
	"github.com/Cordillera123/APIs-Solstic-sub002/internal/transport"
	"github.com/Cordillera123/APIs-Solstic-sub002/pkg/logger"
)

type ServiceAPI interface {
	GetByID(userID int64) (*User, error)
	GetProfile(profileID int64) (*Profile, error)
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

func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	authUser, ok := auth.UserFromContext(r.Context())
	if !ok || authUser == nil {
		h.Logger.Error("GetCurrentUser: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	u, err := h.Service.GetByID(authUser.ID)
	if err != nil {
		h.Logger.Error("GetCurrentUser: service error", "error", err, "user_id", authUser.ID)
		h.WriteError(w, http.StatusNotFound, "user not found")
		return
	}

	h.WriteSuccess(w, http.StatusOK, "current user", u)
}
