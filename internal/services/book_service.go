package services

import (
	"context"
	"strings"

	"github.com/librarycatalog/backend/internal/apperrors"
	"github.com/librarycatalog/backend/internal/models"
	"github.com/librarycatalog/backend/internal/storage"
	"go.uber.org/zap"
)

// recentCommentsLimit is how many comments the book details carry
const recentCommentsLimit = 3

// BookRepository is the interface that wraps methods for Book table data access
type BookRepository interface {
	// Method List retrieves a page of books and the total number of matches.
	//
	// "query" carries search, sort, order and pagination; unknown sort fields fall back to title.
	List(ctx context.Context, query models.BookListQuery) ([]models.Book, int, error)
	// Method GetByID retrieves a book by ID.
	//
	// If book with such ID does not exist, a not found error is returned together with "nil" value.
	GetByID(ctx context.Context, id int) (*models.Book, error)
	// Method Exists checks if a book with such ID exists.
	Exists(ctx context.Context, id int) (bool, error)
	// Method GetRatingStats returns the average (nil without ratings) and the count of a book's ratings.
	GetRatingStats(ctx context.Context, bookID int) (*float64, int, error)
	// Method GetUserRating returns the rating a user gave a book, nil if none.
	GetUserRating(ctx context.Context, bookID, userID int) (*int, error)
	// Method Create inserts a new book and sets its ID.
	Create(ctx context.Context, book *models.Book) error
	// Method Update replaces the metadata fields of a book.
	//
	// If book with such ID does not exist, a not found error is returned.
	Update(ctx context.Context, id int, req models.BookRequest) error
	// Method Delete removes a book together with its ratings and comments.
	//
	// If book with such ID does not exist, a not found error is returned.
	Delete(ctx context.Context, id int) error
}

// RecentCommentRepository reads the latest comments of a book
type RecentCommentRepository interface {
	Recent(ctx context.Context, bookID, n int) ([]models.Comment, error)
}

// bookService implements BookService
type bookService struct {
	bookRepo    BookRepository
	commentRepo RecentCommentRepository
	files       FileStore
	logger      *zap.Logger
}

// NewBookService creates a new book service
func NewBookService(bookRepo BookRepository, commentRepo RecentCommentRepository, files FileStore, logger *zap.Logger) *bookService {
	return &bookService{
		bookRepo:    bookRepo,
		commentRepo: commentRepo,
		files:       files,
		logger:      logger,
	}
}

// List returns a page of books. Invalid sort fields and orders fall back to title ascending.
func (s *bookService) List(ctx context.Context, query models.BookListQuery) (*models.BookListResponse, error) {
	query.Page, query.Limit = models.NormalizePage(query.Page, query.Limit)
	query.Search = strings.TrimSpace(query.Search)
	query.Sort = normalizeSort(query.Sort)
	query.Order = normalizeOrder(query.Order)

	books, total, err := s.bookRepo.List(ctx, query)
	if err != nil {
		return nil, apperrors.Internal("failed to list books", err)
	}

	return &models.BookListResponse{
		Books:      books,
		Pagination: models.NewPagination(query.Page, query.Limit, total),
	}, nil
}

// Get returns a book with its rating aggregate and latest comments.
// The viewer's own rating is included when viewer is not nil.
func (s *bookService) Get(ctx context.Context, id int, viewer *models.Identity) (*models.BookDetails, error) {
	if id <= 0 {
		return nil, apperrors.Validation("invalid book id")
	}

	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapRepoError(err, "failed to get book")
	}

	details := &models.BookDetails{Book: *book}

	details.AvgRating, details.RatingsCount, err = s.bookRepo.GetRatingStats(ctx, id)
	if err != nil {
		return nil, apperrors.Internal("failed to get rating stats", err)
	}

	if viewer != nil {
		details.UserRating, err = s.bookRepo.GetUserRating(ctx, id, viewer.ID)
		if err != nil {
			return nil, apperrors.Internal("failed to get user rating", err)
		}
	}

	details.RecentComments, err = s.commentRepo.Recent(ctx, id, recentCommentsLimit)
	if err != nil {
		return nil, apperrors.Internal("failed to get recent comments", err)
	}

	return details, nil
}

// Create stores the uploads and inserts the book. When the insert fails the stored files are removed.
func (s *bookService) Create(ctx context.Context, req models.BookRequest, uploads []storage.Upload) (*models.Book, error) {
	req = trimBookRequest(req)
	if err := validateBookRequest(req); err != nil {
		return nil, err
	}

	saved, err := s.files.SaveAll(uploads)
	if err != nil {
		return nil, wrapRepoError(err, "failed to store files")
	}

	book := &models.Book{
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		Category:    req.Category,
		Year:        req.Year,
		CoverURL:    savedPath(saved, storage.CoverSlot.Field),
		BookFileURL: savedPath(saved, storage.BookFileSlot.Field),
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		removeSaved(s.files, s.logger, saved)
		return nil, apperrors.Internal("failed to create book", err)
	}

	s.logger.Info("book created", zap.Int("book_id", book.ID), zap.String("title", book.Title))

	created, err := s.bookRepo.GetByID(ctx, book.ID)
	if err != nil {
		return nil, wrapRepoError(err, "failed to load created book")
	}
	return created, nil
}

// Update replaces the metadata of a book. Files and rating are not touched.
func (s *bookService) Update(ctx context.Context, id int, req models.BookRequest) (*models.Book, error) {
	if id <= 0 {
		return nil, apperrors.Validation("invalid book id")
	}

	req = trimBookRequest(req)
	if err := validateBookRequest(req); err != nil {
		return nil, err
	}

	if err := s.bookRepo.Update(ctx, id, req); err != nil {
		return nil, wrapRepoError(err, "failed to update book")
	}

	updated, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapRepoError(err, "failed to load updated book")
	}
	return updated, nil
}

// Delete removes the book; its cover and book file are removed afterwards on a best-effort basis
func (s *bookService) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return apperrors.Validation("invalid book id")
	}

	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		return wrapRepoError(err, "failed to get book")
	}

	if err := s.bookRepo.Delete(ctx, id); err != nil {
		return wrapRepoError(err, "failed to delete book")
	}

	removeFiles(s.files, s.logger, book.CoverURL, book.BookFileURL)

	s.logger.Info("book deleted", zap.Int("book_id", id))
	return nil
}

func trimBookRequest(req models.BookRequest) models.BookRequest {
	req.Title = strings.TrimSpace(req.Title)
	req.Author = strings.TrimSpace(req.Author)
	req.Description = strings.TrimSpace(req.Description)
	req.Category = strings.TrimSpace(req.Category)
	return req
}

func validateBookRequest(req models.BookRequest) error {
	if req.Title == "" || req.Author == "" {
		return apperrors.Validation("title and author are required")
	}
	if req.Year != nil && (*req.Year < 0 || *req.Year > 9999) {
		return apperrors.Validation("year must be between 0 and 9999")
	}
	return nil
}

func normalizeSort(sort models.BookSortField) models.BookSortField {
	switch sort {
	case models.SortByTitle, models.SortByAuthor, models.SortByYear, models.SortByRating, models.SortByCreatedAt:
		return sort
	default:
		return models.SortByTitle
	}
}

func normalizeOrder(order models.SortOrder) models.SortOrder {
	if models.SortOrder(strings.ToUpper(string(order))) == models.SortDesc {
		return models.SortDesc
	}
	return models.SortAsc
}

// wrapRepoError passes application errors through and wraps anything else as internal
func wrapRepoError(err error, message string) error {
	if apperrors.KindOf(err) != apperrors.KindInternal {
		return err
	}
	return apperrors.Internal(message, err)
}
