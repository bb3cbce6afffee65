package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/librarycatalog/backend/internal/app"
	"github.com/librarycatalog/backend/internal/config"
	"github.com/librarycatalog/backend/internal/database"
	"github.com/librarycatalog/backend/internal/logger"
	"go.uber.org/zap"
)

// @title Library Catalog API
// @version 1.0
// @description API for the library catalog: books, ratings, comments, news and user administration

// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting Library Catalog API")

	// Connect to database
	db, err := database.Connect(cfg.Database.Path)
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := database.MigrateUp(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	application, err := app.New(cfg, db, logger.Logger)
	if err != nil {
		logger.Logger.Fatal("Failed to initialize application", zap.Error(err))
	}

	if err := application.EnsureAdmin(context.Background()); err != nil {
		logger.Logger.Fatal("Failed to bootstrap admin account", zap.Error(err))
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      application.Handler(),
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}
