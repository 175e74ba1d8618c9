package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Cordillera123/APIs-Solstic-sub002/internal"
	"github.com/Cordillera123/APIs-Solstic-sub002/internal/auth"
	"github.com/Cordillera123/APIs-Solstic-sub002/internal/schedule"
	"github.com/Cordillera123/APIs-Solstic-sub002/internal/transport"
)

// defaultExemptPaths always bypass the gate: a user locked out by schedule
// must still be able to log out and see their own schedule state.
var defaultExemptPaths = []string{
	"/api/v1/auth/logout",
	"/api/v1/users/me",
	"/api/v1/schedule/check",
}

var defaultExemptPrefixes = []string{
	"/api/v1/auth/",
	"/health",
	"/swagger",
}

// defaultAdminBypassPrefixes bypass the gate only for super-admin users.
var defaultAdminBypassPrefixes = []string{
	"/api/v1/admin/",
}

type GateEvaluator interface {
	Evaluate(ctx context.Context, userID int64, now time.Time, meta schedule.ClientMeta) schedule.Decision
}

// ScheduleGate enforces working-hours windows on every protected route. A
// panic during evaluation degrades to the configured fail-open/fail-closed
// behavior instead of a 500.
func ScheduleGate(gate GateEvaluator, cfg internal.ScheduleConfig, logger *slog.Logger) func(http.Handler) http.Handler {
	base := transport.NewBaseHandler(logger)

	exemptPaths := append(append([]string{}, defaultExemptPaths...), cfg.ExemptPaths...)
	exemptPrefixes := append(append([]string{}, defaultExemptPrefixes...), cfg.ExemptPrefixes...)
	adminPrefixes := append(append([]string{}, defaultAdminBypassPrefixes...), cfg.AdminBypassPrefixes...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if pathExempt(r.URL.Path, exemptPaths, exemptPrefixes) {
				next.ServeHTTP(w, r)
				return
			}

			u, ok := auth.UserFromContext(r.Context())
			if !ok || u == nil {
				base.WriteError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			if u.ProfileID == cfg.SuperAdminProfileID && hasPrefix(r.URL.Path, adminPrefixes) {
				next.ServeHTTP(w, r)
				return
			}

			allowed := true
			var decision schedule.Decision

			func() {
				defer func() {
					if rec := recover(); rec != nil {
						logger.Error("schedule gate panicked", "panic", rec, "user_id", u.ID, "fail_open", cfg.FailOpen)
						allowed = cfg.FailOpen
						decision = schedule.Decision{
							Allowed: allowed,
							Reason:  schedule.ReasonInternalError,
							Message: "internal error during schedule evaluation",
						}
					}
				}()
				decision = gate.Evaluate(r.Context(), u.ID, time.Now(), schedule.ClientMetaFromRequest(r))
				allowed = decision.Allowed
			}()

			if !allowed {
				logger.Warn("access denied by schedule gate",
					"user_id", u.ID,
					"reason", decision.Reason,
					"path", r.URL.Path)
				base.WriteJSON(w, http.StatusForbidden, transport.Envelope{
					Status:  "error",
					Message: decision.Message,
					Data:    decision,
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func pathExempt(path string, exact []string, prefixes []string) bool {
	for _, p := range exact {
		if path == p {
			return true
		}
	}
	return hasPrefix(path, prefixes)
}

func hasPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
