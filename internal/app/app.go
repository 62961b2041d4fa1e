package app

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/vturenko/brokerage-admin/internal/controller"
	"github.com/vturenko/brokerage-admin/internal/repository"
	"github.com/vturenko/brokerage-admin/internal/service"
)

type App struct {
	cfg    *Config
	Router *chi.Mux
	db     *repository.Database
	Logger *zap.Logger
	Server *http.Server
	Seeder *service.Seeder
}

func New(cfg *Config) (*App, error) {
	app := &App{
		cfg:    cfg,
		Router: chi.NewRouter(),
		Logger: zap.L(),
	}

	if err := app.initDB(); err != nil {
		return nil, err
	}

	app.initRouter()
	return app, nil
}

func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

func (a *App) initDB() error {
	db, err := repository.NewDatabase(repository.DatabaseConfig{
		DSN:            a.cfg.DatabaseURI,
		MigrationsPath: a.cfg.MigrationsPath,
	})
	if err != nil {
		a.Logger.Error("Database initialization failed",
			zap.String("dsn", a.cfg.MaskDBPassword()),
			zap.Error(err))
		return fmt.Errorf("database initialization failed: %w", err)
	}

	a.db = db
	a.Logger.Info("Database initialized successfully",
		zap.String("migrations_path", a.cfg.MigrationsPath))

	return nil
}

func (a *App) initRouter() {
	a.Router.Use(middleware.RequestID)
	a.Router.Use(middleware.RealIP)
	if a.cfg.Debug {
		a.Router.Use(middleware.Logger)
	}
	a.Router.Use(middleware.Recoverer)
	a.Router.Use(middleware.Compress(5))

	// Repositories
	userRepo := repository.NewUserRepository(a.db)
	txnRepo := repository.NewTransactionRepository(a.db)
	notificationRepo := repository.NewNotificationRepository(a.db)

	// Services
	authService := service.NewAuthService(a.cfg.AdminUsername, a.cfg.AdminPasswordHash, a.cfg.SessionSecret, a.cfg.SessionTTL)
	userService := service.NewUserService(userRepo)
	txnService := service.NewTransactionService(txnRepo)
	notificationService := service.NewNotificationService(notificationRepo)
	a.Seeder = service.NewSeeder(userRepo, a.Logger)

	logger := a.Logger
	// Controllers
	authController := controller.NewAuthController(authService, logger)
	userController := controller.NewUserController(userService, logger)
	accountController := controller.NewAccountController(userService, logger)
	txnController := controller.NewTransactionController(txnService, logger)
	notificationController := controller.NewNotificationController(notificationService, logger)

	// Public routes
	a.Router.Get("/", controller.Home)
	a.Router.Post("/auth/login", authController.Login)
	a.Router.Post("/admin/login", authController.Login)
	a.Router.Get("/admin/login", controller.LoginRequired)
	a.Router.Get("/admin/logout", authController.Logout)

	// Protected routes
	a.Router.Group(func(r chi.Router) {
		r.Use(controller.AdminSessionMiddleware(authService, logger))

		r.Route("/api/users", func(r chi.Router) {
			r.Get("/", userController.List)
			r.Post("/", userController.Create)
			r.Put("/{id}", userController.Update)
			r.Post("/{id}/reset_password", userController.ResetPassword)
			r.Delete("/{id}", userController.Delete)
		})

		r.Get("/accounts/list", userController.List)
		r.Post("/accounts/freeze", accountController.Freeze)
		r.Post("/accounts/unfreeze", accountController.Unfreeze)
		r.Post("/brokers/assign", accountController.AssignBroker)

		r.Route("/api/transactions", func(r chi.Router) {
			r.Get("/", txnController.List)
			r.Post("/", txnController.Create)
			r.Delete("/{id}", txnController.Delete)
		})

		r.Route("/api/notifications", func(r chi.Router) {
			r.Get("/", notificationController.List)
			r.Post("/", notificationController.Send)
		})
	})
}
