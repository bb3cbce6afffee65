package services

import (
	"context"
	"strings"

	"github.com/librarycatalog/backend/internal/apperrors"
	"github.com/librarycatalog/backend/internal/models"
	"go.uber.org/zap"
)

// AdminUserRepository is the interface that wraps the user management queries of the admin area
type AdminUserRepository interface {
	// Method List retrieves a page of users filtered by a username or email substring, and the total count.
	List(ctx context.Context, search string, page, limit int) ([]models.UserListItem, int, error)
	// Method GetByID retrieves a user by ID.
	//
	// If user with such ID does not exist, a not found error is returned together with "nil" value.
	GetByID(ctx context.Context, id int) (*models.User, error)
	// Method SetBanned updates the ban flag of a non-admin user and returns the number of updated rows.
	SetBanned(ctx context.Context, id int, banned bool) (int, error)
}

// adminService implements AdminService
type adminService struct {
	userRepo AdminUserRepository
	logger   *zap.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(userRepo AdminUserRepository, logger *zap.Logger) *adminService {
	return &adminService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// ListUsers returns a page of users
func (s *adminService) ListUsers(ctx context.Context, search string, page, limit int) (*models.UserListResponse, error) {
	page, limit = models.NormalizePage(page, limit)

	users, total, err := s.userRepo.List(ctx, strings.TrimSpace(search), page, limit)
	if err != nil {
		return nil, apperrors.Internal("failed to list users", err)
	}

	return &models.UserListResponse{
		Users:      users,
		Pagination: models.NewPagination(page, limit, total),
	}, nil
}

// SetBanned bans or unbans a user. Admin accounts cannot be banned.
func (s *adminService) SetBanned(ctx context.Context, userID int, banned bool) error {
	if userID <= 0 {
		return apperrors.Validation("invalid user id")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return wrapRepoError(err, "failed to get user")
	}
	if user.Role == models.RoleAdmin {
		return apperrors.Authorization("cannot ban an admin")
	}

	updated, err := s.userRepo.SetBanned(ctx, userID, banned)
	if err != nil {
		return apperrors.Internal("failed to update user", err)
	}
	if updated == 0 {
		// promoted to admin between the read and the update
		return apperrors.Authorization("cannot ban an admin")
	}

	s.logger.Info("user ban flag changed", zap.Int("user_id", userID), zap.Bool("is_banned", banned))
	return nil
}
