package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/librarycatalog/backend/internal/models"
	"go.uber.org/zap"
)

// AdminService is the interface that wraps methods for user administration
type AdminService interface {
	// Method ListUsers returns a page of users filtered by a username or email search
	ListUsers(ctx context.Context, search string, page, limit int) (*models.UserListResponse, error)
	// Method SetBanned bans or unbans a user.
	//
	// Missing users yield a not found error, admins an authorization error.
	SetBanned(ctx context.Context, userID int, banned bool) error
}

// AdminHandler handles admin requests
type AdminHandler struct {
	BaseHandler
	adminService AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService AdminService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		BaseHandler:  BaseHandler{Logger: logger},
		adminService: adminService,
	}
}

// RegisterRoutes registers all admin handler routes
func (h *AdminHandler) RegisterRoutes(r chi.Router, g Guards) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(g.Admin)

		r.Get("/users", h.ListUsers)
		r.Put("/users/{id}/ban", h.SetBanned)
	})
}

// ListUsers handles GET /admin/users
// @Summary List users
// @Description Get a page of users (admin only)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Param search query string false "Username or email substring"
// @Success 200 {object} models.UserListResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	resp, err := h.adminService.ListUsers(r.Context(), r.URL.Query().Get("search"), page, limit)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, resp)
}

// SetBanned handles PUT /admin/users/{id}/ban
// @Summary Ban or unban a user
// @Description Set a user's banned flag (admin only). Admins cannot be banned.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body models.BanUserRequest true "Ban flag"
// @Success 200 {object} map[string]bool "success"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Target is an admin"
// @Failure 404 {object} map[string]string "User not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/users/{id}/ban [put]
func (h *AdminHandler) SetBanned(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id", "invalid user ID")
	if !ok {
		return
	}

	var req models.BanUserRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}
	if req.IsBanned == nil {
		h.RespondError(w, http.StatusBadRequest, "isBanned is required")
		return
	}

	if err := h.adminService.SetBanned(r.Context(), id, *req.IsBanned); err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
