package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/librarycatalog/backend/internal/middleware"
	"github.com/librarycatalog/backend/internal/models"
	"github.com/librarycatalog/backend/internal/storage"
	"go.uber.org/zap"
)

// BookService is the interface that wraps methods for catalog operations
type BookService interface {
	// Method List returns a page of books filtered by a title or author search.
	//
	// Unknown sort fields and orders fall back to title ascending.
	List(ctx context.Context, query models.BookListQuery) (*models.BookListResponse, error)
	// Method Get returns a book with its rating aggregate and latest comments.
	//
	// The viewer's own rating is included when viewer is not nil.
	Get(ctx context.Context, id int, viewer *models.Identity) (*models.BookDetails, error)
	// Method Create validates the metadata and uploads, stores the files and inserts the book.
	//
	// Files already written are removed when any later step fails.
	Create(ctx context.Context, req models.BookRequest, uploads []storage.Upload) (*models.Book, error)
	// Method Update replaces the metadata of a book, leaving its files untouched
	Update(ctx context.Context, id int, req models.BookRequest) (*models.Book, error)
	// Method Delete removes a book with its ratings and comments, then its files best-effort
	Delete(ctx context.Context, id int) error
}

// RatingService is the interface that wraps the rating operation
type RatingService interface {
	// Method Rate records the user's rating of a book and returns the recomputed aggregate.
	//
	// The rating must be an integer in [1, 5]; a missing book yields a not found error.
	Rate(ctx context.Context, userID, bookID int, rating *float64) (*models.RateResponse, error)
}

// BookHandler handles book requests
type BookHandler struct {
	BaseHandler
	bookService   BookService
	ratingService RatingService
}

// NewBookHandler creates a new book handler
func NewBookHandler(bookService BookService, ratingService RatingService, logger *zap.Logger) *BookHandler {
	return &BookHandler{
		BaseHandler:   BaseHandler{Logger: logger},
		bookService:   bookService,
		ratingService: ratingService,
	}
}

// RegisterRoutes registers all book handler routes
func (h *BookHandler) RegisterRoutes(r chi.Router, g Guards) {
	r.Get("/books", h.List)
	r.With(g.Admin).Post("/books", h.Create)
	r.With(g.Optional).Get("/books/{id}", h.Get)
	r.With(g.Admin).Put("/books/{id}", h.Update)
	r.With(g.Admin).Delete("/books/{id}", h.Delete)
	r.With(g.Authenticated).Post("/books/{id}/rate", h.Rate)
}

// List handles GET /books
// @Summary List books
// @Description Get a page of books, optionally filtered by title or author
// @Tags books
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Param search query string false "Title or author substring"
// @Param sort query string false "Sort field" Enums(title, author, year, rating, created_at)
// @Param order query string false "Sort order" Enums(ASC, DESC)
// @Success 200 {object} models.BookListResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /books [get]
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)
	query := models.BookListQuery{
		Page:   page,
		Limit:  limit,
		Search: r.URL.Query().Get("search"),
		Sort:   models.BookSortField(r.URL.Query().Get("sort")),
		Order:  models.SortOrder(r.URL.Query().Get("order")),
	}

	resp, err := h.bookService.List(r.Context(), query)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, resp)
}

// Get handles GET /books/{id}
// @Summary Get a book
// @Description Get a book with its rating aggregate and latest comments. The caller's own rating is included when a token is sent.
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Success 200 {object} models.BookDetails
// @Failure 400 {object} map[string]string "Invalid book ID"
// @Failure 404 {object} map[string]string "Book not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /books/{id} [get]
func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id", "invalid book ID")
	if !ok {
		return
	}

	var viewer *models.Identity
	if identity, ok := middleware.GetIdentity(r.Context()); ok {
		viewer = &identity
	}

	book, err := h.bookService.Get(r.Context(), id, viewer)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, book)
}

// Create handles POST /books
// @Summary Create a book
// @Description Create a book with an optional cover image and PDF file (admin only)
// @Tags books
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param author formData string true "Author"
// @Param description formData string false "Description"
// @Param year formData int false "Publication year"
// @Param category formData string false "Category"
// @Param cover formData file false "Cover image (max 20MB)"
// @Param bookFile formData file false "PDF document (max 20MB)"
// @Success 201 {object} models.Book
// @Failure 400 {object} map[string]string "Invalid input or file"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 413 {object} map[string]string "Request body too large"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /books [post]
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	release, ok := h.ParseMultipart(w, r)
	if !ok {
		return
	}
	defer release()

	year, err := formInt(r, "year")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "year must be a number")
		return
	}

	req := models.BookRequest{
		Title:       formValue(r, "title"),
		Author:      formValue(r, "author"),
		Description: formValue(r, "description"),
		Category:    formValue(r, "category"),
		Year:        year,
	}

	uploads, closeFiles, err := h.FormUploads(r, storage.CoverSlot, storage.BookFileSlot)
	if err != nil {
		h.Logger.Error("failed to read uploaded files", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "invalid file upload")
		return
	}
	defer closeFiles()

	book, err := h.bookService.Create(r.Context(), req, uploads)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, book)
}

// Update handles PUT /books/{id}
// @Summary Update a book
// @Description Replace the metadata of a book (admin only). Files are not changed.
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Param request body models.BookRequest true "Book metadata"
// @Success 200 {object} models.Book
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Book not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /books/{id} [put]
func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id", "invalid book ID")
	if !ok {
		return
	}

	var req models.BookRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	book, err := h.bookService.Update(r.Context(), id, req)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, book)
}

// Delete handles DELETE /books/{id}
// @Summary Delete a book
// @Description Delete a book with its ratings, comments and files (admin only)
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Success 200 {object} map[string]interface{} "success and message"
// @Failure 400 {object} map[string]string "Invalid book ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Book not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /books/{id} [delete]
func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id", "invalid book ID")
	if !ok {
		return
	}

	if err := h.bookService.Delete(r.Context(), id); err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "book deleted successfully",
	})
}

// Rate handles POST /books/{id}/rate
// @Summary Rate a book
// @Description Set the caller's 1 to 5 rating of a book and get the new average
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Param request body models.RateRequest true "Rating"
// @Success 200 {object} models.RateResponse
// @Failure 400 {object} map[string]string "Invalid rating"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Book not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /books/{id}/rate [post]
func (h *BookHandler) Rate(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	id, ok := h.pathID(w, r, "id", "invalid book ID")
	if !ok {
		return
	}

	var req models.RateRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	resp, err := h.ratingService.Rate(r.Context(), identity.ID, id, req.Rating)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, resp)
}
