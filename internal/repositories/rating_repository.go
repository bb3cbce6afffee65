package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/librarycatalog/backend/internal/apperrors"
	"github.com/librarycatalog/backend/internal/database"
	"github.com/librarycatalog/backend/internal/models"
	"go.uber.org/zap"
)

// ratingRepository implements RatingRepository
type ratingRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewRatingRepository creates a new rating repository
func NewRatingRepository(db *sql.DB, logger *zap.Logger) *ratingRepository {
	return &ratingRepository{
		db:     db,
		logger: logger,
	}
}

// Rate stores the user's rating of a book and refreshes the book's denormalized average.
// The upsert, the aggregate and the book update run in one transaction, so concurrent
// raters are serialized by the database write lock and every update sees the full rating set.
func (r *ratingRepository) Rate(ctx context.Context, userID, bookID, rating int) (models.RatingSummary, error) {
	var summary models.RatingSummary

	err := database.WithTx(ctx, r.db, func(ctx context.Context, tx database.DBTX) error {
		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM books WHERE id = ?)`, bookID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check book existence: %w", err)
		}
		if !exists {
			return apperrors.NotFound("book not found")
		}

		upsert := `
			INSERT INTO ratings (user_id, book_id, rating)
			VALUES (?, ?, ?)
			ON CONFLICT (user_id, book_id) DO UPDATE SET rating = excluded.rating
		`
		if _, err := tx.ExecContext(ctx, upsert, userID, bookID, rating); err != nil {
			return fmt.Errorf("failed to upsert rating: %w", err)
		}

		aggregate := `SELECT COALESCE(AVG(rating), 0), COUNT(*) FROM ratings WHERE book_id = ?`
		if err := tx.QueryRowContext(ctx, aggregate, bookID).Scan(&summary.AverageRating, &summary.RatingsCount); err != nil {
			return fmt.Errorf("failed to aggregate ratings: %w", err)
		}

		update := `UPDATE books SET rating = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
		if _, err := tx.ExecContext(ctx, update, summary.AverageRating, bookID); err != nil {
			return fmt.Errorf("failed to update book rating: %w", err)
		}

		return nil
	})
	if err != nil {
		if !apperrors.Is(err, apperrors.KindNotFound) {
			r.logger.Error("failed to rate book", zap.Error(err), zap.Int("book_id", bookID), zap.Int("user_id", userID))
		}
		return models.RatingSummary{}, err
	}

	return summary, nil
}
