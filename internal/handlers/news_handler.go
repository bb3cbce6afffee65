package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/librarycatalog/backend/internal/models"
	"github.com/librarycatalog/backend/internal/storage"
	"go.uber.org/zap"
)

// NewsService is the interface that wraps methods for news posts
type NewsService interface {
	// Method List returns a page of news posts, newest first
	List(ctx context.Context, page, limit int) (*models.NewsListResponse, error)
	// Method Create stores the optional image and inserts a post by author.
	//
	// The image is removed again when the insert fails.
	Create(ctx context.Context, author models.Identity, req models.NewsRequest, image *storage.Upload) (*models.News, error)
	// Method Delete removes a post, then its image best-effort
	Delete(ctx context.Context, id int) error
}

// NewsHandler handles news requests
type NewsHandler struct {
	BaseHandler
	newsService NewsService
}

// NewNewsHandler creates a new news handler
func NewNewsHandler(newsService NewsService, logger *zap.Logger) *NewsHandler {
	return &NewsHandler{
		BaseHandler: BaseHandler{Logger: logger},
		newsService: newsService,
	}
}

// RegisterRoutes registers all news handler routes
func (h *NewsHandler) RegisterRoutes(r chi.Router, g Guards) {
	r.Route("/news", func(r chi.Router) {
		r.Get("/", h.List)
		r.With(g.Admin).Post("/", h.Create)
		r.With(g.Admin).Delete("/{id}", h.Delete)
	})
}

// List handles GET /news
// @Summary List news
// @Tags news
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} models.NewsListResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /news [get]
func (h *NewsHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	resp, err := h.newsService.List(r.Context(), page, limit)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, resp)
}

// Create handles POST /news
// @Summary Publish news
// @Description Publish a news post with an optional image (admin only)
// @Tags news
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param content formData string true "Content"
// @Param image formData file false "Image (max 5MB)"
// @Success 201 {object} models.CreateNewsResponse
// @Failure 400 {object} map[string]string "Invalid input or file"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 413 {object} map[string]string "Request body too large"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /news [post]
func (h *NewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	release, ok := h.ParseMultipart(w, r)
	if !ok {
		return
	}
	defer release()

	req := models.NewsRequest{
		Title:   formValue(r, "title"),
		Content: formValue(r, "content"),
	}

	uploads, closeFiles, err := h.FormUploads(r, storage.NewsImageSlot)
	if err != nil {
		h.Logger.Error("failed to read uploaded image", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "invalid file upload")
		return
	}
	defer closeFiles()

	var image *storage.Upload
	if len(uploads) > 0 {
		image = &uploads[0]
	}

	post, err := h.newsService.Create(r.Context(), identity, req, image)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, models.CreateNewsResponse{NewPost: post})
}

// Delete handles DELETE /news/{id}
// @Summary Delete news
// @Description Delete a news post and its image (admin only)
// @Tags news
// @Produce json
// @Security BearerAuth
// @Param id path int true "News ID"
// @Success 200 {object} map[string]interface{} "success and message"
// @Failure 400 {object} map[string]string "Invalid news ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "News not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /news/{id} [delete]
func (h *NewsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id", "invalid news ID")
	if !ok {
		return
	}

	if err := h.newsService.Delete(r.Context(), id); err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "news deleted successfully",
	})
}
