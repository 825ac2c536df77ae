// Package internal contains core application functionality
package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"lumetric/internal/config"
	httpapi "lumetric/internal/http"
	"lumetric/internal/logging"
	"lumetric/internal/storage"
)

// Application bundles the configured server components.
type Application struct {
	Config *config.Config
	Logger *slog.Logger
	Store  *storage.Store
	Fiber  *fiber.App
}

// NewApp assembles the application from the process configuration:
// logger, database, store and the fiber server with the collection
// routes mounted.
func NewApp() (*Application, error) {
	cfg := config.GetConfig()
	logger := logging.NewLogger(cfg)

	if err := os.MkdirAll(cfg.DatabasePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(cfg.DatabaseName), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := storage.NewStore(db, logger)

	fiberApp := fiber.New(fiber.Config{
		AppName:               cfg.AppName,
		DisableStartupMessage: cfg.IsProduction(),
	})
	httpapi.MountRoutes(fiberApp, httpapi.NewCollectHandler(store, logger))

	return &Application{
		Config: cfg,
		Logger: logger,
		Store:  store,
		Fiber:  fiberApp,
	}, nil
}

// Migrate runs the schema migrations.
func (a *Application) Migrate() error {
	return a.Store.Migrate()
}

// StartAsync begins serving in a background goroutine.
func (a *Application) StartAsync() {
	go func() {
		addr := ":" + a.Config.GetPort()
		a.Logger.Info("Listening", slog.String("addr", addr))
		if err := a.Fiber.Listen(addr); err != nil {
			a.Logger.Error("Server stopped", slog.Any("error", err))
		}
	}()
}

// Shutdown stops the server and closes the database.
func (a *Application) Shutdown(ctx context.Context) error {
	if err := a.Fiber.ShutdownWithContext(ctx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	sqlDB, err := a.Store.DB().DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
