// Package auth issues and verifies the signed bearer credentials of the API
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/librarycatalog/backend/internal/models"
)

// TokenGenerator handles JWT token generation and validation
type TokenGenerator struct {
	secret      string
	tokenExpiry time.Duration
}

// NewTokenGenerator creates a new token generator
func NewTokenGenerator(secret string, tokenExpiry time.Duration) *TokenGenerator {
	return &TokenGenerator{
		secret:      secret,
		tokenExpiry: tokenExpiry,
	}
}

// Expiry returns the lifetime of issued tokens
func (tg *TokenGenerator) Expiry() time.Duration {
	return tg.tokenExpiry
}

// GenerateToken creates a signed token carrying the identity's id, role and username
func (tg *TokenGenerator) GenerateToken(identity models.Identity) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":       identity.ID,
		"role":     string(identity.Role),
		"username": identity.Username,
		"exp":      now.Add(tg.tokenExpiry).Unix(),
		"iat":      now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(tg.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken verifies signature and expiry of a token and returns the identity it carries
func (tg *TokenGenerator) ValidateToken(tokenString string) (models.Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Validate the signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(tg.secret), nil
	}, jwt.WithExpirationRequired())

	if err != nil {
		return models.Identity{}, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return models.Identity{}, fmt.Errorf("token is invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.Identity{}, fmt.Errorf("invalid token claims")
	}

	// JWT claims decode numbers as float64
	id, ok := claims["id"].(float64)
	if !ok {
		return models.Identity{}, fmt.Errorf("id not found in token")
	}

	role, ok := claims["role"].(string)
	if !ok || !models.Role(role).IsValid() {
		return models.Identity{}, fmt.Errorf("role not found in token")
	}

	username, ok := claims["username"].(string)
	if !ok {
		return models.Identity{}, fmt.Errorf("username not found in token")
	}

	return models.Identity{
		ID:       int(id),
		Role:     models.Role(role),
		Username: username,
	}, nil
}
