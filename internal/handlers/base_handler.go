package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/librarycatalog/backend/internal/apperrors"
	"github.com/librarycatalog/backend/internal/middleware"
	"github.com/librarycatalog/backend/internal/models"
	"go.uber.org/zap"
)

// Guards are the access middlewares handlers attach to their routes
type Guards struct {
	// Authenticated requires a valid bearer token
	Authenticated func(http.Handler) http.Handler
	// Optional attaches the caller's identity when a valid token is present
	Optional func(http.Handler) http.Handler
	// Admin requires a valid bearer token with the admin role
	Admin func(http.Handler) http.Handler
}

// NewGuards builds the access middlewares around a token validator
func NewGuards(validator middleware.TokenValidator) Guards {
	authenticated := middleware.AuthMiddleware(validator)
	requireAdmin := middleware.RoleMiddleware(models.RoleAdmin)

	return Guards{
		Authenticated: authenticated,
		Optional:      middleware.OptionalAuthMiddleware(validator),
		Admin: func(next http.Handler) http.Handler {
			return authenticated(requireAdmin(next))
		},
	}
}

// BaseHandler provides common handler functionality
type BaseHandler struct {
	Logger *zap.Logger
}

// RespondJSON sends a JSON response
func (h *BaseHandler) RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// RespondError sends an error JSON response
func (h *BaseHandler) RespondError(w http.ResponseWriter, status int, message string) {
	h.RespondJSON(w, status, map[string]string{"error": message})
}

// RespondServiceError maps an application error to its status code and a client-safe message.
// Internal errors are logged with their cause and reported generically.
func (h *BaseHandler) RespondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.Logger.Error("request failed",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	h.RespondError(w, status, apperrors.PublicMessage(err, "internal server error"))
}

// DecodeJSON reads the request body into dst, answering 400 or 413 itself on failure
func (h *BaseHandler) DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if isBodyTooLarge(err) {
			h.RespondError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// identity returns the authenticated caller, answering 401 itself when there is none
func (h *BaseHandler) identity(w http.ResponseWriter, r *http.Request) (models.Identity, bool) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
	}
	return identity, ok
}

// pathID parses a positive integer URL parameter, answering 400 itself when it is not one
func (h *BaseHandler) pathID(w http.ResponseWriter, r *http.Request, name, message string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id <= 0 {
		h.RespondError(w, http.StatusBadRequest, message)
		return 0, false
	}
	return id, true
}

// parsePagination reads page and limit query parameters; missing or malformed values fall back to defaults
func parsePagination(r *http.Request) (int, int) {
	page, limit := models.DefaultPage, models.DefaultLimit

	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		page = p
	}
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		limit = l
	}

	return models.NormalizePage(page, limit)
}

func isBodyTooLarge(err error) bool {
	var maxBytesErr *http.MaxBytesError
	return errors.As(err, &maxBytesErr)
}
