package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/Cordillera123/APIs-Solstic-sub002/internal"
	"github.com/Cordillera123/APIs-Solstic-sub002/internal/auth"
	"github.com/Cordillera123/APIs-Solstic-sub002/internal/permission"
	"github.com/Cordillera123/APIs-Solstic-sub002/internal/schedule"
	"github.com/Cordillera123/APIs-Solstic-sub002/internal/transport/middleware"
	"github.com/Cordillera123/APIs-Solstic-sub002/internal/transport/swagger"
	"github.com/Cordillera123/APIs-Solstic-sub002/internal/user"
	"github.com/go-chi/chi"
)

func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	authHandler *auth.Handler,
	userHandler *user.Handler,
	permissionHandler *permission.Handler,
	scheduleHandler *schedule.Handler,
	scheduleService *schedule.Service,
	scheduleCfg internal.ScheduleConfig,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		// Health check route
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		if authHandler != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/login", authHandler.Login)
				sr.Post("/refresh", authHandler.RefreshToken)
				sr.Post("/logout", authHandler.Logout)
			})
		}

		if authHandler != nil {
			// Protected routes that require authentication
			r.Group(func(pr chi.Router) {
				pr.Use(authHandler.AuthMiddleware)
				pr.Use(middleware.ScheduleGate(scheduleService, scheduleCfg, logger))

				// Current user
				if userHandler != nil {
					pr.Get("/users/me", userHandler.GetCurrentUser)
				}

				// Schedule verification, exempt from the gate itself so a
				// locked-out user can still learn why.
				if scheduleHandler != nil {
					pr.Get("/schedule/check", scheduleHandler.CheckSchedule)
				}

				// Permission routes
				if permissionHandler != nil {
					pr.Route("/users/{id}/permissions", func(ur chi.Router) {
						ur.Get("/", permissionHandler.GetPermissionTree)
						ur.Post("/", permissionHandler.AssignPermissions)
						ur.Post("/copy", permissionHandler.CopyPermissions)
						ur.Get("/active", permissionHandler.GetActivePermissions)
					})
				}
			})
		}
	})
}
