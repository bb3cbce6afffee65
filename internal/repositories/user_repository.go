package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/librarycatalog/backend/internal/apperrors"
	"github.com/librarycatalog/backend/internal/models"
	"go.uber.org/zap"
)

// userRepository implements UserRepository
type userRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB, logger *zap.Logger) *userRepository {
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, email, password, role)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, user.Username, user.Email, user.PasswordHash, user.Role)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict("username or email already exists")
		}
		r.logger.Error("failed to create user", zap.Error(err))
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		r.logger.Error("failed to get last insert id", zap.Error(err))
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	user.ID = int(id)
	return nil
}

// GetByUsername retrieves a user with its password hash by username
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, username, email, password, role, is_banned, created_at
		FROM users
		WHERE username = ?
	`
	return r.getOne(ctx, query, username)
}

// GetByID retrieves a user with its password hash by ID
func (r *userRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := `
		SELECT id, username, email, password, role, is_banned, created_at
		FROM users
		WHERE id = ?
	`
	return r.getOne(ctx, query, id)
}

func (r *userRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.IsBanned,
		&user.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("user not found")
	}
	if err != nil {
		r.logger.Error("failed to get user", zap.Error(err), zap.Any("key", arg))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// ExistsByEmail checks if a user exists with the given email
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		r.logger.Error("failed to check email existence", zap.Error(err), zap.String("email", email))
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}

	return exists, nil
}

// ExistsByUsername checks if a user exists with the given username
func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, username).Scan(&exists); err != nil {
		r.logger.Error("failed to check username existence", zap.Error(err), zap.String("username", username))
		return false, fmt.Errorf("failed to check username existence: %w", err)
	}

	return exists, nil
}

// List returns a page of users, optionally filtered by a username or email substring, and the total match count
func (r *userRepository) List(ctx context.Context, search string, page, limit int) ([]models.UserListItem, int, error) {
	whereClause := ""
	var args []any
	if search != "" {
		whereClause = "WHERE username LIKE ? OR email LIKE ?"
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern)
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM users %s`, whereClause)
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		r.logger.Error("failed to count users", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, username, email, role, is_banned, created_at
		FROM users
		%s
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, whereClause)
	args = append(args, limit, models.Offset(page, limit))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to query users", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []models.UserListItem{}
	for rows.Next() {
		var user models.UserListItem
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.Role, &user.IsBanned, &user.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return users, total, nil
}

// SetBanned updates the ban flag of a non-admin user.
// Admin rows are never touched; the number of updated rows is returned.
func (r *userRepository) SetBanned(ctx context.Context, id int, banned bool) (int, error) {
	query := `UPDATE users SET is_banned = ? WHERE id = ? AND role != 'admin'`

	result, err := r.db.ExecContext(ctx, query, banned, id)
	if err != nil {
		r.logger.Error("failed to update ban flag", zap.Error(err), zap.Int("user_id", id))
		return 0, fmt.Errorf("failed to update ban flag: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return int(rowsAffected), nil
}

// isUniqueViolation reports whether err comes from a UNIQUE constraint
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
