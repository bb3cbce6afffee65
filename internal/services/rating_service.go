package services

import (
	"context"
	"math"

	"github.com/librarycatalog/backend/internal/apperrors"
	"github.com/librarycatalog/backend/internal/models"
	"go.uber.org/zap"
)

// RatingRepository is the interface that wraps the rating transaction
type RatingRepository interface {
	// Method Rate upserts the user's rating and refreshes the book's average in one transaction.
	//
	// If the book does not exist, a not found error is returned and nothing is written.
	Rate(ctx context.Context, userID, bookID, rating int) (models.RatingSummary, error)
}

// BookExistenceChecker checks whether a book exists
type BookExistenceChecker interface {
	Exists(ctx context.Context, id int) (bool, error)
}

// ratingService implements RatingService
type ratingService struct {
	ratingRepo RatingRepository
	books      BookExistenceChecker
	logger     *zap.Logger
}

// NewRatingService creates a new rating service
func NewRatingService(ratingRepo RatingRepository, books BookExistenceChecker, logger *zap.Logger) *ratingService {
	return &ratingService{
		ratingRepo: ratingRepo,
		books:      books,
		logger:     logger,
	}
}

// Rate records the user's rating of a book and returns the book's new aggregate
func (s *ratingService) Rate(ctx context.Context, userID, bookID int, rating *float64) (*models.RateResponse, error) {
	if bookID <= 0 {
		return nil, apperrors.Validation("invalid book id")
	}

	value, err := parseRating(rating)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, apperrors.Validation("rating is required")
	}

	exists, err := s.books.Exists(ctx, bookID)
	if err != nil {
		return nil, apperrors.Internal("failed to check book", err)
	}
	if !exists {
		return nil, apperrors.NotFound("book not found")
	}

	summary, err := s.ratingRepo.Rate(ctx, userID, bookID, *value)
	if err != nil {
		return nil, wrapRepoError(err, "failed to rate book")
	}

	s.logger.Debug("book rated",
		zap.Int("book_id", bookID),
		zap.Int("user_id", userID),
		zap.Int("rating", *value),
		zap.Float64("average", summary.AverageRating),
	)

	return &models.RateResponse{Success: true, RatingSummary: summary}, nil
}

// parseRating converts an optional JSON number into a rating. Nil stays nil;
// fractional or out-of-range values are rejected.
func parseRating(rating *float64) (*int, error) {
	if rating == nil {
		return nil, nil
	}
	r := *rating
	if math.IsNaN(r) || r != math.Trunc(r) || r < models.MinRating || r > models.MaxRating {
		return nil, apperrors.Validation("rating must be an integer between 1 and 5")
	}
	value := int(r)
	return &value, nil
}
