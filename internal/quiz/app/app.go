package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/roadvice/roadvice/internal/quiz/http"
	"github.com/roadvice/roadvice/internal/quiz/service"
	"github.com/roadvice/roadvice/internal/quiz/store"
	"github.com/roadvice/roadvice/internal/quiz/store/drivers/sqlite"
	"github.com/roadvice/roadvice/pkg/jwtx"
	"github.com/roadvice/roadvice/pkg/slogx"
)

// BuildVersion should be set at build time via ldflags.
const BuildVersion = "v0.1.0"

// Application encapsulates the quiz service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db     store.Store
	signer *jwtx.Signer

	authService         *service.AuthService
	userService         *service.UserService
	tokenService        *service.RefreshTokenService
	roleService         *service.RoleService
	tagService          *service.TagService
	adviceService       *service.AdviceService
	answerService       *service.AnswerService
	quizService         *service.CompletedQuizService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "roadvice",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.signer = jwtx.NewSigner([]byte(cfg.JWTSecret), cfg.Issuer, cfg.AccessTTL)

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("quiz service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully stops the HTTP server, the housekeeping worker and
// the database, in that order.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down quiz service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("quiz service stopped")
	return nil
}

func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

func (app *Application) initServices() {
	app.tokenService = &service.RefreshTokenService{
		Store: app.db,
		TTL:   app.cfg.RefreshTTL,
	}
	app.authService = &service.AuthService{
		Store:         app.db,
		Signer:        app.signer,
		RefreshTokens: app.tokenService,
	}
	app.userService = &service.UserService{Store: app.db}
	app.roleService = &service.RoleService{Store: app.db}
	app.tagService = &service.TagService{Store: app.db}
	app.adviceService = &service.AdviceService{Store: app.db}
	app.answerService = &service.AnswerService{Store: app.db}
	app.quizService = &service.CompletedQuizService{Store: app.db}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.signer,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.AuthService = app.authService
	router.UserService = app.userService
	router.RoleService = app.roleService
	router.TagService = app.tagService
	router.AdviceService = app.adviceService
	router.AnswerService = app.answerService
	router.QuizService = app.quizService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
