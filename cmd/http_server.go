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

	"github.com/dcontreras/workshop-management/internal"
	"github.com/dcontreras/workshop-management/internal/attention"
	attentionRepo "github.com/dcontreras/workshop-management/internal/attention/postgres"
	"github.com/dcontreras/workshop-management/internal/auth"
	authRepo "github.com/dcontreras/workshop-management/internal/auth/postgres"
	"github.com/dcontreras/workshop-management/internal/client"
	clientRepo "github.com/dcontreras/workshop-management/internal/client/postgres"
	"github.com/dcontreras/workshop-management/internal/core/events"
	"github.com/dcontreras/workshop-management/internal/document"
	"github.com/dcontreras/workshop-management/internal/transport/rest"
	"github.com/dcontreras/workshop-management/internal/user"
	userRepo "github.com/dcontreras/workshop-management/internal/user/postgres"
	"github.com/dcontreras/workshop-management/internal/worker"
	workerRepo "github.com/dcontreras/workshop-management/internal/worker/postgres"
	"github.com/dcontreras/workshop-management/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
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
	Router   *chi.Mux
	Handlers rest.Handlers
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.Handlers, deps.Config.Server.AllowedOrigins, deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
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
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Format, config.Observability.Logging.Level)
	appLogger := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	eventBus := events.NewEventBus(appLogger)
	registerAuditSubscribers(eventBus, appLogger)

	tokenGenerator := auth.NewJWTTokenGenerator(config.Security.JWTSecret, config.Security.TokenDuration)
	authService := auth.NewService(authRepo.NewRepository(gormDB), tokenGenerator, config.Security.BCryptCost)
	authHandler := auth.NewHandler(authService)

	userService := user.NewService(userRepo.NewUserRepository(gormDB), authService, appLogger)
	userHandler := user.NewHandler(userService)

	workerService := worker.NewService(workerRepo.NewWorkerRepository(gormDB), appLogger)
	workerHandler := worker.NewHandler(workerService)

	clientService := client.NewService(clientRepo.NewClientRepository(gormDB), eventBus, appLogger)
	clientHandler := client.NewHandler(clientService)

	generator := document.NewGenerator(config.Storage.CertificateDir, appLogger)
	attentionService := attention.NewService(attentionRepo.NewAttentionRepository(gormDB), generator, eventBus, appLogger)
	attentionHandler := attention.NewHandler(attentionService)

	return &Dependencies{
		Config: config,
		Logger: appLogger,
		DB:     db,
		Router: chi.NewRouter(),
		Handlers: rest.Handlers{
			Auth:      authHandler,
			User:      userHandler,
			Worker:    workerHandler,
			Client:    clientHandler,
			Attention: attentionHandler,
		},
	}, nil
}

// registerAuditSubscribers logs post-commit domain events. Handlers only log,
// so a failing subscriber can never affect the request that published.
func registerAuditSubscribers(bus *events.EventBus, log *slog.Logger) {
	audit := func(ctx context.Context, event events.Event) error {
		log.Info("audit event",
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"occurred_at", event.OccurredAt(),
			"payload", event.Payload())
		return nil
	}

	bus.Subscribe(events.EventTypeAttentionRegistered, audit)
	bus.Subscribe(events.EventTypeClientCreated, audit)
	bus.Subscribe(events.EventTypeClientDeleted, audit)
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
