package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/librarycatalog/backend/internal/models"
	"go.uber.org/zap"
)

// CommentService is the interface that wraps methods for book comments
type CommentService interface {
	// Method Create adds a comment by author on a book
	Create(ctx context.Context, author models.Identity, bookID int, req *models.CreateCommentRequest) (*models.Comment, error)
	// Method List returns a page of a book's comments, newest first
	List(ctx context.Context, bookID, page, limit int) (*models.CommentListResponse, error)
	// Method Delete removes a comment.
	//
	// Only the comment's author or an admin may delete it.
	Delete(ctx context.Context, caller models.Identity, commentID int) error
}

// CommentHandler handles comment requests
type CommentHandler struct {
	BaseHandler
	commentService CommentService
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(commentService CommentService, logger *zap.Logger) *CommentHandler {
	return &CommentHandler{
		BaseHandler:    BaseHandler{Logger: logger},
		commentService: commentService,
	}
}

// RegisterRoutes registers all comment handler routes
func (h *CommentHandler) RegisterRoutes(r chi.Router, g Guards) {
	r.Get("/books/{id}/comments", h.List)
	r.With(g.Authenticated).Post("/books/{id}/comments", h.Create)
	r.With(g.Authenticated).Delete("/comments/{id}", h.Delete)
}

// Create handles POST /books/{id}/comments
// @Summary Comment a book
// @Description Add a comment with an optional 1 to 5 rating
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Param request body models.CreateCommentRequest true "Comment"
// @Success 201 {object} models.Comment
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Book not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /books/{id}/comments [post]
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	bookID, ok := h.pathID(w, r, "id", "invalid book ID")
	if !ok {
		return
	}

	var req models.CreateCommentRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	comment, err := h.commentService.Create(r.Context(), identity, bookID, &req)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, comment)
}

// List handles GET /books/{id}/comments
// @Summary List comments of a book
// @Tags comments
// @Produce json
// @Param id path int true "Book ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} models.CommentListResponse
// @Failure 400 {object} map[string]string "Invalid book ID"
// @Failure 404 {object} map[string]string "Book not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /books/{id}/comments [get]
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	bookID, ok := h.pathID(w, r, "id", "invalid book ID")
	if !ok {
		return
	}

	page, limit := parsePagination(r)
	resp, err := h.commentService.List(r.Context(), bookID, page, limit)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, resp)
}

// Delete handles DELETE /comments/{id}
// @Summary Delete a comment
// @Description Delete a comment. Allowed for its author and for admins.
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Success 200 {object} map[string]interface{} "success and message"
// @Failure 400 {object} map[string]string "Invalid comment ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not the author"
// @Failure 404 {object} map[string]string "Comment not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /comments/{id} [delete]
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	id, ok := h.pathID(w, r, "id", "invalid comment ID")
	if !ok {
		return
	}

	if err := h.commentService.Delete(r.Context(), identity, id); err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "comment deleted successfully",
	})
}
