// Package app wires repositories, services and handlers into the HTTP router
package app

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	_ "github.com/librarycatalog/backend/docs"
	"github.com/librarycatalog/backend/internal/auth"
	"github.com/librarycatalog/backend/internal/config"
	"github.com/librarycatalog/backend/internal/handlers"
	"github.com/librarycatalog/backend/internal/middleware"
	"github.com/librarycatalog/backend/internal/repositories"
	"github.com/librarycatalog/backend/internal/services"
	"github.com/librarycatalog/backend/internal/storage"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// routeRegistrar is implemented by every handler
type routeRegistrar interface {
	RegisterRoutes(r chi.Router, g handlers.Guards)
}

// AdminEnsurer creates the bootstrap administrator when it is missing
type AdminEnsurer interface {
	EnsureAdmin(ctx context.Context, username, email, password string) (bool, error)
}

// App is the assembled application
type App struct {
	cfg         *config.Config
	logger      *zap.Logger
	router      chi.Router
	authService AdminEnsurer
}

// New builds the application on an open, migrated database
func New(cfg *config.Config, db *sql.DB, logger *zap.Logger) (*App, error) {
	files, err := storage.NewLocalStorage(cfg.Uploads.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	tokenGenerator := auth.NewTokenGenerator(cfg.JWT.Secret, cfg.JWT.TokenExpiry)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, logger)
	bookRepo := repositories.NewBookRepository(db, logger)
	ratingRepo := repositories.NewRatingRepository(db, logger)
	commentRepo := repositories.NewCommentRepository(db, logger)
	newsRepo := repositories.NewNewsRepository(db, logger)

	// Initialize services
	authService := services.NewAuthService(userRepo, tokenGenerator, logger)
	bookService := services.NewBookService(bookRepo, commentRepo, files, logger)
	ratingService := services.NewRatingService(ratingRepo, bookRepo, logger)
	commentService := services.NewCommentService(commentRepo, bookRepo, logger)
	newsService := services.NewNewsService(newsRepo, files, logger)
	adminService := services.NewAdminService(userRepo, logger)

	// Initialize handlers
	apiHandlers := []routeRegistrar{
		handlers.NewAuthHandler(authService, logger),
		handlers.NewBookHandler(bookService, ratingService, logger),
		handlers.NewCommentHandler(commentService, logger),
		handlers.NewNewsHandler(newsService, logger),
		handlers.NewAdminHandler(adminService, logger),
	}
	healthHandler := handlers.NewHealthHandler(db, logger)
	guards := handlers.NewGuards(tokenGenerator)

	r := chi.NewRouter()

	// Apply middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.LoggerMiddleware(logger))
	r.Use(middleware.RecoveryMiddleware(logger))
	r.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(cfg.RateLimit.RequestsPerMinute, time.Minute))
	r.Use(middleware.RequestSizeLimitMiddleware(cfg.Server.MaxRequestSize))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	healthHandler.RegisterRoutes(r, guards)

	// Uploaded files
	serveFiles(r, "/"+storage.UploadsDir, files.Dir(storage.UploadsDir))
	serveFiles(r, "/"+storage.NewsImagesDir, files.Dir(storage.NewsImagesDir))

	r.Route("/api", func(r chi.Router) {
		for _, h := range apiHandlers {
			h.RegisterRoutes(r, guards)
		}
	})

	return &App{
		cfg:         cfg,
		logger:      logger,
		router:      r,
		authService: authService,
	}, nil
}

// Handler returns the root HTTP handler
func (a *App) Handler() http.Handler {
	return a.router
}

// EnsureAdmin creates the configured administrator account if it does not exist yet.
// Nothing happens when no admin password is configured.
func (a *App) EnsureAdmin(ctx context.Context) error {
	admin := a.cfg.Admin
	if admin.Password == "" {
		a.logger.Info("ADMIN_PASSWORD not set, skipping admin bootstrap")
		return nil
	}

	created, err := a.authService.EnsureAdmin(ctx, admin.Username, admin.Email, admin.Password)
	if err != nil {
		return fmt.Errorf("failed to ensure admin account: %w", err)
	}
	if !created {
		a.logger.Debug("Admin account already exists", zap.String("username", admin.Username))
	}
	return nil
}

// serveFiles serves the files below dir at prefix without directory listings
func serveFiles(r chi.Router, prefix, dir string) {
	fs := http.StripPrefix(prefix+"/", http.FileServer(http.Dir(dir)))

	r.Get(prefix+"/*", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			writeJSONError(w, http.StatusNotFound, "file not found")
			return
		}
		fs.ServeHTTP(w, r)
	})
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
