package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Cordillera123/APIs-Solstic-sub002/internal"
	"github.com/Cordillera123/APIs-Solstic-sub002/internal/audit"
	auditpg "github.com/Cordillera123/APIs-Solstic-sub002/internal/audit/postgres"
	"github.com/Cordillera123/APIs-Solstic-sub002/internal/auth"
	authpg "github.com/Cordillera123/APIs-Solstic-sub002/internal/auth/postgres"
	"github.com/Cordillera123/APIs-Solstic-sub002/internal/core/events"
	"github.com/Cordillera123/APIs-Solstic-sub002/internal/permission"
	permissionpg "github.com/Cordillera123/APIs-Solstic-sub002/internal/permission/postgres"
	"github.com/Cordillera123/APIs-Solstic-sub002/internal/schedule"
	schedulepg "github.com/Cordillera123/APIs-Solstic-sub002/internal/schedule/postgres"
	"github.com/Cordillera123/APIs-Solstic-sub002/internal/transport/rest"
	"github.com/Cordillera123/APIs-Solstic-sub002/internal/user"
	userpg "github.com/Cordillera123/APIs-Solstic-sub002/internal/user/postgres"
	"github.com/Cordillera123/APIs-Solstic-sub002/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpg "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *sqlx.DB
	GormDB   *gorm.DB
	Router   *chi.Mux
	Logger   *slog.Logger
	EventBus *events.EventBus

	AuthHandler       *auth.Handler
	UserHandler       *user.Handler
	PermissionHandler *permission.Handler
	ScheduleHandler   *schedule.Handler
	ScheduleService   *schedule.Service
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(
		deps.Router,
		deps.DB.DB,
		deps.AuthHandler,
		deps.UserHandler,
		deps.PermissionHandler,
		deps.ScheduleHandler,
		deps.ScheduleService,
		deps.Config.Schedule,
		deps.Logger,
	)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	appLogger := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGormDB(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	eventBus := events.NewEventBus(appLogger)

	// Denial audit trail consumes access.denied events off the bus so the
	// gate's hot path never waits on an insert.
	auditRecorder := audit.NewRecorder(auditpg.NewAuditRepository(gormDB), appLogger)
	auditRecorder.Register(eventBus)

	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authpg.NewRepository(gormDB), tokenGen)
	authHandler := auth.NewHandler(authService)

	userService := user.NewService(userpg.NewUserRepository(gormDB))
	userHandler := user.NewHandler(userService)

	permissionService := permission.NewService(permissionpg.NewPermissionRepository(gormDB), appLogger)
	permissionHandler := permission.NewHandler(permissionService)

	scheduleService := schedule.NewService(
		schedulepg.NewScheduleRepository(gormDB),
		eventBus,
		schedule.Options{
			SuperAdminProfileID: config.Schedule.SuperAdminProfileID,
			FailOpen:            config.Schedule.FailOpen,
			Location:            config.Schedule.Location(),
		},
		appLogger,
	)
	scheduleHandler := schedule.NewHandler(scheduleService)

	return &Dependencies{
		Config:   config,
		Logger:   appLogger,
		DB:       db,
		GormDB:   gormDB,
		Router:   chi.NewRouter(),
		EventBus: eventBus,

		AuthHandler:       authHandler,
		UserHandler:       userHandler,
		PermissionHandler: permissionHandler,
		ScheduleHandler:   scheduleHandler,
		ScheduleService:   scheduleService,
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGormDB layers the ORM over the already-pooled pgx connection so both
// see the same pool limits.
func initGormDB(db *sqlx.DB) (*gorm.DB, error) {
	gormDB, err := gorm.Open(gormpg.New(gormpg.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm over pgx pool: %w", err)
	}
	return gormDB, nil
}
