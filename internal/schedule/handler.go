package schedule

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Cordillera123/APIs-Solstic-sub002/internal/auth"
	"github.com/Cordillera123/APIs-Solstic-sub002/internal/transport"
	"github.com/Cordillera123/APIs-Solstic-sub002/pkg/logger"
)

type ServiceAPI interface {
	Evaluate(ctx context.Context, userID int64, now time.Time, meta ClientMeta) Decision
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

// CheckSchedule evaluates the gate for the authenticated user and returns the
// decision; denied decisions use 403 so clients can react uniformly.
func (h *Handler) CheckSchedule(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.UserFromContext(r.Context())
	if !ok || u == nil {
		h.Logger.Error("CheckSchedule: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	decision := h.Service.Evaluate(r.Context(), u.ID, time.Now(), ClientMetaFromRequest(r))

	if !decision.Allowed {
		h.WriteJSON(w, http.StatusForbidden, transport.Envelope{
			Status:  "error",
			Message: decision.Message,
			Data:    decision,
		})
		return
	}

	h.WriteSuccess(w, http.StatusOK, decision.Message, decision)
}

// ClientMetaFromRequest extracts the audit metadata from the request.
func ClientMetaFromRequest(r *http.Request) ClientMeta {
	ip := r.Header.Get("X-Forwarded-For")
	if ip != "" {
		// keep only the originating client
		if idx := strings.Index(ip, ","); idx >= 0 {
			ip = ip[:idx]
		}
		ip = strings.TrimSpace(ip)
	} else {
		ip = r.RemoteAddr
	}

	return ClientMeta{
		IP:        ip,
		UserAgent: r.UserAgent(),
		Path:      r.URL.Path,
	}
}
