package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/librarycatalog/backend/internal/models"
	"go.uber.org/zap"
)

// AuthService is the interface that wraps methods for account operations
type AuthService interface {
	// Method Register creates a regular user account.
	//
	// Missing fields, a malformed email or a taken username or email yield a validation or conflict error.
	Register(ctx context.Context, req *models.RegisterRequest) (*models.RegisterResponse, error)
	// Method Login verifies credentials and issues an access token.
	//
	// Unknown users, banned users and wrong passwords yield the same authentication error.
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
}

// AuthHandler handles registration and login
type AuthHandler struct {
	BaseHandler
	authService AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: BaseHandler{Logger: logger},
		authService: authService,
	}
}

// RegisterRoutes registers all auth handler routes
func (h *AuthHandler) RegisterRoutes(r chi.Router, _ Guards) {
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
}

// Register handles POST /register
// @Summary Register a user
// @Description Create a regular user account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration data"
// @Success 201 {object} models.RegisterResponse
// @Failure 400 {object} map[string]string "Invalid input or user already exists"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	resp, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, resp)
}

// Login handles POST /login
// @Summary Log in
// @Description Exchange username and password for a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Invalid username or password"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	resp, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, resp)
}
