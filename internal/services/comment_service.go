package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/librarycatalog/backend/internal/apperrors"
	"github.com/librarycatalog/backend/internal/models"
	"go.uber.org/zap"
)

// CommentRepository is the interface that wraps methods for Comment table data access
type CommentRepository interface {
	// Method Create inserts a new comment and sets its ID.
	Create(ctx context.Context, comment *models.Comment) error
	// Method GetByID retrieves a comment with its author's username.
	//
	// If comment with such ID does not exist, a not found error is returned together with "nil" value.
	GetByID(ctx context.Context, id int) (*models.Comment, error)
	// Method ListByBook retrieves a page of a book's comments, newest first, and the total count.
	ListByBook(ctx context.Context, bookID, page, limit int) ([]models.Comment, int, error)
	// Method Delete removes a comment by ID.
	Delete(ctx context.Context, id int) error
}

// commentService implements CommentService
type commentService struct {
	commentRepo CommentRepository
	books       BookExistenceChecker
	logger      *zap.Logger
}

// NewCommentService creates a new comment service
func NewCommentService(commentRepo CommentRepository, books BookExistenceChecker, logger *zap.Logger) *commentService {
	return &commentService{
		commentRepo: commentRepo,
		books:       books,
		logger:      logger,
	}
}

// Create adds a comment by the caller to a book
func (s *commentService) Create(ctx context.Context, author models.Identity, bookID int, req *models.CreateCommentRequest) (*models.Comment, error) {
	if bookID <= 0 {
		return nil, apperrors.Validation("invalid book id")
	}

	text := strings.TrimSpace(req.Text)
	if utf8.RuneCountInString(text) < models.MinCommentLength {
		return nil, apperrors.Validation("comment must be at least 3 characters long")
	}

	rating, err := parseRating(req.Rating)
	if err != nil {
		return nil, err
	}

	if err := s.requireBook(ctx, bookID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		UserID: author.ID,
		BookID: bookID,
		Text:   text,
		Rating: rating,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, apperrors.Internal("failed to create comment", err)
	}

	created, err := s.commentRepo.GetByID(ctx, comment.ID)
	if err != nil {
		return nil, wrapRepoError(err, "failed to load created comment")
	}
	return created, nil
}

// List returns a page of a book's comments, newest first
func (s *commentService) List(ctx context.Context, bookID, page, limit int) (*models.CommentListResponse, error) {
	if bookID <= 0 {
		return nil, apperrors.Validation("invalid book id")
	}
	if err := s.requireBook(ctx, bookID); err != nil {
		return nil, err
	}

	page, limit = models.NormalizePage(page, limit)
	comments, total, err := s.commentRepo.ListByBook(ctx, bookID, page, limit)
	if err != nil {
		return nil, apperrors.Internal("failed to list comments", err)
	}

	return &models.CommentListResponse{
		Comments:   comments,
		Pagination: models.NewPagination(page, limit, total),
	}, nil
}

// Delete removes a comment. Only its author or an admin may do so.
func (s *commentService) Delete(ctx context.Context, caller models.Identity, commentID int) error {
	if commentID <= 0 {
		return apperrors.Validation("invalid comment id")
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return wrapRepoError(err, "failed to get comment")
	}

	if comment.UserID != caller.ID && !caller.IsAdmin() {
		return apperrors.Authorization("you can only delete your own comments")
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return wrapRepoError(err, "failed to delete comment")
	}

	s.logger.Info("comment deleted", zap.Int("comment_id", commentID), zap.Int("by_user_id", caller.ID))
	return nil
}

func (s *commentService) requireBook(ctx context.Context, bookID int) error {
	exists, err := s.books.Exists(ctx, bookID)
	if err != nil {
		return apperrors.Internal("failed to check book", err)
	}
	if !exists {
		return apperrors.NotFound("book not found")
	}
	return nil
}
