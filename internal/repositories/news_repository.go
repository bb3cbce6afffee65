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

const newsColumns = `n.id, n.title, n.content, n.image_url, n.user_id, u.username, n.created_at`

// newsRepository implements NewsRepository
type newsRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewNewsRepository creates a new news repository
func NewNewsRepository(db *sql.DB, logger *zap.Logger) *newsRepository {
	return &newsRepository{
		db:     db,
		logger: logger,
	}
}

func scanNews(row rowScanner) (*models.News, error) {
	var (
		news     models.News
		imageURL sql.NullString
		userID   sql.NullInt64
		username sql.NullString
	)
	if err := row.Scan(&news.ID, &news.Title, &news.Content, &imageURL, &userID, &username, &news.CreatedAt); err != nil {
		return nil, err
	}
	news.ImageURL = nullableString(imageURL)
	news.UserID = nullableInt(userID)
	news.Username = nullableString(username)
	return &news, nil
}

// List returns a page of news posts, newest first, and the total count
func (r *newsRepository) List(ctx context.Context, page, limit int) ([]models.News, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM news`).Scan(&total); err != nil {
		r.logger.Error("failed to count news", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to count news: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM news n
		LEFT JOIN users u ON u.id = n.user_id
		ORDER BY n.created_at DESC, n.id DESC
		LIMIT ? OFFSET ?
	`, newsColumns)

	rows, err := r.db.QueryContext(ctx, query, limit, models.Offset(page, limit))
	if err != nil {
		r.logger.Error("failed to query news", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to query news: %w", err)
	}
	defer rows.Close()

	posts := []models.News{}
	for rows.Next() {
		news, err := scanNews(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan news: %w", err)
		}
		posts = append(posts, *news)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return posts, total, nil
}

// GetByID retrieves a news post with its author's username
func (r *newsRepository) GetByID(ctx context.Context, id int) (*models.News, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM news n
		LEFT JOIN users u ON u.id = n.user_id
		WHERE n.id = ?
	`, newsColumns)

	news, err := scanNews(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("news not found")
	}
	if err != nil {
		r.logger.Error("failed to get news", zap.Error(err), zap.Int("news_id", id))
		return nil, fmt.Errorf("failed to get news: %w", err)
	}

	return news, nil
}

// Create inserts a new news post and sets its ID
func (r *newsRepository) Create(ctx context.Context, news *models.News) error {
	query := `
		INSERT INTO news (title, content, image_url, user_id)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, news.Title, news.Content, news.ImageURL, news.UserID)
	if err != nil {
		r.logger.Error("failed to create news", zap.Error(err))
		return fmt.Errorf("failed to create news: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	news.ID = int(id)
	return nil
}

// Delete removes a news post by ID
func (r *newsRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM news WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("failed to delete news", zap.Error(err), zap.Int("news_id", id))
		return fmt.Errorf("failed to delete news: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NotFound("news not found")
	}

	return nil
}
