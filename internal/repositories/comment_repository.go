package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/librarycatalog/backend/internal/apperrors"
	"github.com/librarycatalog/backend/internal/models"
	"go.uber.org/zap"
)

const commentColumns = `c.id, c.user_id, c.book_id, c.text, c.rating, c.created_at, COALESCE(u.username, '')`

// commentRepository implements CommentRepository
type commentRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *sql.DB, logger *zap.Logger) *commentRepository {
	return &commentRepository{
		db:     db,
		logger: logger,
	}
}

func scanComment(row rowScanner) (*models.Comment, error) {
	var (
		comment models.Comment
		rating  sql.NullInt64
	)
	if err := row.Scan(
		&comment.ID,
		&comment.UserID,
		&comment.BookID,
		&comment.Text,
		&rating,
		&comment.CreatedAt,
		&comment.Username,
	); err != nil {
		return nil, err
	}
	comment.Rating = nullableInt(rating)
	return &comment, nil
}

// Create inserts a new comment and sets its ID
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (user_id, book_id, text, rating)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, comment.UserID, comment.BookID, comment.Text, comment.Rating)
	if err != nil {
		r.logger.Error("failed to create comment", zap.Error(err))
		return fmt.Errorf("failed to create comment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	comment.ID = int(id)
	return nil
}

// GetByID retrieves a comment with its author's username
func (r *commentRepository) GetByID(ctx context.Context, id int) (*models.Comment, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM comments c
		LEFT JOIN users u ON u.id = c.user_id
		WHERE c.id = ?
	`, commentColumns)

	comment, err := scanComment(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("comment not found")
	}
	if err != nil {
		r.logger.Error("failed to get comment", zap.Error(err), zap.Int("comment_id", id))
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	return comment, nil
}

// ListByBook returns a page of a book's comments, newest first, and the total count
func (r *commentRepository) ListByBook(ctx context.Context, bookID, page, limit int) ([]models.Comment, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM comments WHERE book_id = ?`, bookID).Scan(&total); err != nil {
		r.logger.Error("failed to count comments", zap.Error(err), zap.Int("book_id", bookID))
		return nil, 0, fmt.Errorf("failed to count comments: %w", err)
	}

	comments, err := r.query(ctx, bookID, limit, models.Offset(page, limit))
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

// Recent returns the latest n comments of a book
func (r *commentRepository) Recent(ctx context.Context, bookID, n int) ([]models.Comment, error) {
	return r.query(ctx, bookID, n, 0)
}

func (r *commentRepository) query(ctx context.Context, bookID, limit, offset int) ([]models.Comment, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM comments c
		LEFT JOIN users u ON u.id = c.user_id
		WHERE c.book_id = ?
		ORDER BY c.created_at DESC, c.id DESC
		LIMIT ? OFFSET ?
	`, commentColumns)

	rows, err := r.db.QueryContext(ctx, query, bookID, limit, offset)
	if err != nil {
		r.logger.Error("failed to query comments", zap.Error(err), zap.Int("book_id", bookID))
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, *comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return comments, nil
}

// Delete removes a comment by ID
func (r *commentRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("failed to delete comment", zap.Error(err), zap.Int("comment_id", id))
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NotFound("comment not found")
	}

	return nil
}
