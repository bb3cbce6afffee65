package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/librarycatalog/backend/internal/apperrors"
	"github.com/librarycatalog/backend/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// invalidCredentials is the single message for every failed login
const invalidCredentials = "invalid username or password"

// UserRepository is the interface that wraps methods for User table data access
type UserRepository interface {
	// Method Create inserts a new user into the database.
	//
	// "user" parameter is used to create a new user; its ID is set on success.
	//
	// A duplicate username or email is reported as a conflict error.
	Create(ctx context.Context, user *models.User) error
	// Method GetByUsername retrieves a user together with its password hash.
	//
	// If user with such username does not exist, a not found error is returned together with "nil" value.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// Method ExistsByEmail checks if a user with such email exists.
	//
	// If some error occurs during check, the error will be returned together with "false" value.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Method ExistsByUsername checks if a user with such username exists.
	//
	// If some error occurs during check, the error will be returned together with "false" value.
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// TokenIssuer signs access tokens
type TokenIssuer interface {
	GenerateToken(identity models.Identity) (string, error)
	Expiry() time.Duration
}

// authService implements AuthService
type authService struct {
	userRepo UserRepository
	tokens   TokenIssuer
	logger   *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo UserRepository, tokens TokenIssuer, logger *zap.Logger) *authService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

// Register creates a regular user account
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.RegisterResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if username == "" || email == "" || req.Password == "" {
		return nil, apperrors.Validation("username, email and password are required")
	}
	if !isValidEmail(email) {
		return nil, apperrors.Validation("invalid email format")
	}

	if err := s.checkAvailable(ctx, username, email); err != nil {
		return nil, err
	}

	user, err := s.createUser(ctx, username, email, req.Password, models.RoleUser)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.Int("user_id", user.ID), zap.String("username", user.Username))

	return &models.RegisterResponse{
		Success: true,
		ID:      user.ID,
		Message: "user registered successfully",
	}, nil
}

// Login verifies the credentials and issues an access token.
// Unknown users, banned users and wrong passwords are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, apperrors.Authentication(invalidCredentials)
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if apperrors.Is(err, apperrors.KindNotFound) {
		return nil, apperrors.Authentication(invalidCredentials)
	}
	if err != nil {
		return nil, apperrors.Internal("failed to load user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.Authentication(invalidCredentials)
	}

	if user.IsBanned {
		s.logger.Info("banned user login rejected", zap.Int("user_id", user.ID))
		return nil, apperrors.Authentication(invalidCredentials)
	}

	identity := models.Identity{ID: user.ID, Role: user.Role, Username: user.Username}
	token, err := s.tokens.GenerateToken(identity)
	if err != nil {
		return nil, apperrors.Internal("failed to generate token", err)
	}

	return &models.LoginResponse{
		Token:     token,
		ID:        user.ID,
		Role:      user.Role,
		Username:  user.Username,
		ExpiresIn: int(s.tokens.Expiry().Seconds()),
	}, nil
}

// EnsureAdmin creates the administrator account unless a user with that username already exists.
// It reports whether an account was created.
func (s *authService) EnsureAdmin(ctx context.Context, username, email, password string) (bool, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" || password == "" {
		return false, apperrors.Validation("admin username, email and password are required")
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return false, apperrors.Internal("failed to check username", err)
	}
	if exists {
		return false, nil
	}

	user, err := s.createUser(ctx, username, email, password, models.RoleAdmin)
	if err != nil {
		return false, err
	}

	s.logger.Info("admin account created", zap.Int("user_id", user.ID), zap.String("username", user.Username))
	return true, nil
}

func (s *authService) checkAvailable(ctx context.Context, username, email string) error {
	exists, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return apperrors.Internal("failed to check username", err)
	}
	if exists {
		return apperrors.Conflict("user already exists")
	}

	exists, err = s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return apperrors.Internal("failed to check email", err)
	}
	if exists {
		return apperrors.Conflict("user already exists")
	}

	return nil
}

func (s *authService) createUser(ctx context.Context, username, email, password string, role models.Role) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal("failed to hash password", fmt.Errorf("bcrypt: %w", err))
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if apperrors.Is(err, apperrors.KindConflict) {
			return nil, apperrors.Conflict("user already exists")
		}
		return nil, apperrors.Internal("failed to create user", err)
	}

	return user, nil
}

// emailRegex validates email format
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func isValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}
