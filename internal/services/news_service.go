package services

import (
	"context"
	"strings"

	"github.com/librarycatalog/backend/internal/apperrors"
	"github.com/librarycatalog/backend/internal/models"
	"github.com/librarycatalog/backend/internal/storage"
	"go.uber.org/zap"
)

// NewsRepository is the interface that wraps methods for News table data access
type NewsRepository interface {
	// Method List retrieves a page of news posts, newest first, and the total count.
	List(ctx context.Context, page, limit int) ([]models.News, int, error)
	// Method GetByID retrieves a news post with its author's username.
	//
	// If news post with such ID does not exist, a not found error is returned together with "nil" value.
	GetByID(ctx context.Context, id int) (*models.News, error)
	// Method Create inserts a new news post and sets its ID.
	Create(ctx context.Context, news *models.News) error
	// Method Delete removes a news post by ID.
	Delete(ctx context.Context, id int) error
}

// newsService implements NewsService
type newsService struct {
	newsRepo NewsRepository
	files    FileStore
	logger   *zap.Logger
}

// NewNewsService creates a new news service
func NewNewsService(newsRepo NewsRepository, files FileStore, logger *zap.Logger) *newsService {
	return &newsService{
		newsRepo: newsRepo,
		files:    files,
		logger:   logger,
	}
}

// List returns a page of news posts, newest first
func (s *newsService) List(ctx context.Context, page, limit int) (*models.NewsListResponse, error) {
	page, limit = models.NormalizePage(page, limit)

	posts, total, err := s.newsRepo.List(ctx, page, limit)
	if err != nil {
		return nil, apperrors.Internal("failed to list news", err)
	}

	return &models.NewsListResponse{
		News:       posts,
		Pagination: models.NewPagination(page, limit, total),
	}, nil
}

// Create publishes a news post written by author, storing the optional image first
func (s *newsService) Create(ctx context.Context, author models.Identity, req models.NewsRequest, image *storage.Upload) (*models.News, error) {
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" || content == "" {
		return nil, apperrors.Validation("title and content are required")
	}

	var uploads []storage.Upload
	if image != nil {
		uploads = append(uploads, *image)
	}

	saved, err := s.files.SaveAll(uploads)
	if err != nil {
		return nil, wrapRepoError(err, "failed to store image")
	}

	authorID := author.ID
	news := &models.News{
		Title:    title,
		Content:  content,
		ImageURL: savedPath(saved, storage.NewsImageSlot.Field),
		UserID:   &authorID,
	}

	if err := s.newsRepo.Create(ctx, news); err != nil {
		removeSaved(s.files, s.logger, saved)
		return nil, apperrors.Internal("failed to create news", err)
	}

	s.logger.Info("news created", zap.Int("news_id", news.ID), zap.Int("user_id", author.ID))

	created, err := s.newsRepo.GetByID(ctx, news.ID)
	if err != nil {
		return nil, wrapRepoError(err, "failed to load created news")
	}
	return created, nil
}

// Delete removes a news post; its image is removed afterwards on a best-effort basis
func (s *newsService) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return apperrors.Validation("invalid news id")
	}

	news, err := s.newsRepo.GetByID(ctx, id)
	if err != nil {
		return wrapRepoError(err, "failed to get news")
	}

	if err := s.newsRepo.Delete(ctx, id); err != nil {
		return wrapRepoError(err, "failed to delete news")
	}

	removeFiles(s.files, s.logger, news.ImageURL)

	s.logger.Info("news deleted", zap.Int("news_id", id))
	return nil
}
