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

const bookColumns = `
	b.id, b.title, b.author, COALESCE(b.description, ''), COALESCE(b.category, ''),
	b.cover_url, b.book_file_url, b.year, b.rating, b.created_at, b.updated_at
`

// sortColumns whitelists the ORDER BY expressions of the books list
var sortColumns = map[models.BookSortField]string{
	models.SortByTitle:     "b.title",
	models.SortByAuthor:    "b.author",
	models.SortByYear:      "b.year",
	models.SortByRating:    "b.rating",
	models.SortByCreatedAt: "b.created_at",
}

// bookRepository implements BookRepository
type bookRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewBookRepository creates a new book repository
func NewBookRepository(db *sql.DB, logger *zap.Logger) *bookRepository {
	return &bookRepository{
		db:     db,
		logger: logger,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (*models.Book, error) {
	var (
		book        models.Book
		coverURL    sql.NullString
		bookFileURL sql.NullString
		year        sql.NullInt64
	)

	err := row.Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.Description,
		&book.Category,
		&coverURL,
		&bookFileURL,
		&year,
		&book.Rating,
		&book.CreatedAt,
		&book.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	book.CoverURL = nullableString(coverURL)
	book.BookFileURL = nullableString(bookFileURL)
	book.Year = nullableInt(year)
	return &book, nil
}

// List retrieves books with search, sorting and pagination, and the total match count.
// Unknown sort fields fall back to title and unknown orders to ascending.
func (r *bookRepository) List(ctx context.Context, q models.BookListQuery) ([]models.Book, int, error) {
	whereClause := ""
	var args []any
	if q.Search != "" {
		whereClause = "WHERE b.title LIKE ? OR b.author LIKE ?"
		pattern := "%" + q.Search + "%"
		args = append(args, pattern, pattern)
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM books b %s`, whereClause)
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		r.logger.Error("failed to count books", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}

	sortColumn, ok := sortColumns[q.Sort]
	if !ok {
		sortColumn = sortColumns[models.SortByTitle]
	}
	order := models.SortAsc
	if q.Order == models.SortDesc {
		order = models.SortDesc
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM books b
		%s
		ORDER BY %s %s, b.id ASC
		LIMIT ? OFFSET ?
	`, bookColumns, whereClause, sortColumn, order)
	args = append(args, q.Limit, models.Offset(q.Page, q.Limit))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to query books", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	books := []models.Book{}
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, *book)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return books, total, nil
}

// GetByID retrieves a book by ID
func (r *bookRepository) GetByID(ctx context.Context, id int) (*models.Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM books b WHERE b.id = ?`, bookColumns)

	book, err := scanBook(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("book not found")
	}
	if err != nil {
		r.logger.Error("failed to get book", zap.Error(err), zap.Int("book_id", id))
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	return book, nil
}

// Exists checks if a book with the given ID exists
func (r *bookRepository) Exists(ctx context.Context, id int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM books WHERE id = ?)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		r.logger.Error("failed to check book existence", zap.Error(err), zap.Int("book_id", id))
		return false, fmt.Errorf("failed to check book existence: %w", err)
	}

	return exists, nil
}

// GetRatingStats returns the average and count of a book's ratings. The average is nil when nobody rated the book.
func (r *bookRepository) GetRatingStats(ctx context.Context, bookID int) (*float64, int, error) {
	query := `SELECT AVG(rating), COUNT(*) FROM ratings WHERE book_id = ?`

	var (
		avg   sql.NullFloat64
		count int
	)
	if err := r.db.QueryRowContext(ctx, query, bookID).Scan(&avg, &count); err != nil {
		r.logger.Error("failed to get rating stats", zap.Error(err), zap.Int("book_id", bookID))
		return nil, 0, fmt.Errorf("failed to get rating stats: %w", err)
	}

	if !avg.Valid {
		return nil, count, nil
	}
	return &avg.Float64, count, nil
}

// GetUserRating returns the rating a user gave a book, nil if none
func (r *bookRepository) GetUserRating(ctx context.Context, bookID, userID int) (*int, error) {
	query := `SELECT rating FROM ratings WHERE book_id = ? AND user_id = ?`

	var rating int
	err := r.db.QueryRowContext(ctx, query, bookID, userID).Scan(&rating)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("failed to get user rating", zap.Error(err), zap.Int("book_id", bookID), zap.Int("user_id", userID))
		return nil, fmt.Errorf("failed to get user rating: %w", err)
	}

	return &rating, nil
}

// Create inserts a new book and sets its ID
func (r *bookRepository) Create(ctx context.Context, book *models.Book) error {
	query := `
		INSERT INTO books (title, author, description, category, cover_url, book_file_url, year)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		book.Title,
		book.Author,
		book.Description,
		book.Category,
		book.CoverURL,
		book.BookFileURL,
		book.Year,
	)
	if err != nil {
		r.logger.Error("failed to create book", zap.Error(err))
		return fmt.Errorf("failed to create book: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	book.ID = int(id)
	return nil
}

// Update replaces the metadata fields of a book. Files and rating are left untouched.
func (r *bookRepository) Update(ctx context.Context, id int, req models.BookRequest) error {
	query := `
		UPDATE books
		SET title = ?, author = ?, description = ?, category = ?, year = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, req.Title, req.Author, req.Description, req.Category, req.Year, id)
	if err != nil {
		r.logger.Error("failed to update book", zap.Error(err), zap.Int("book_id", id))
		return fmt.Errorf("failed to update book: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NotFound("book not found")
	}

	return nil
}

// Delete removes a book; its ratings and comments cascade
func (r *bookRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM books WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		r.logger.Error("failed to delete book", zap.Error(err), zap.Int("book_id", id))
		return fmt.Errorf("failed to delete book: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NotFound("book not found")
	}

	return nil
}

func nullableString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

func nullableInt(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}
