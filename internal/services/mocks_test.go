package services

import (
	"context"
	"sync"
	"time"

	"github.com/librarycatalog/backend/internal/apperrors"
	"github.com/librarycatalog/backend/internal/models"
	"github.com/librarycatalog/backend/internal/storage"
)

// mockUserRepository is a mock implementation of UserRepository and AdminUserRepository
type mockUserRepository struct {
	user                   *models.User
	err                    error
	createErr              error
	created                *models.User
	existsByEmailResult    bool
	existsByEmailError     error
	existsByUsernameResult bool
	existsByUsernameError  error
	users                  []models.UserListItem
	total                  int
	listSearch             string
	setBannedRows          int
	setBannedErr           error
	setBannedCalls         int
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	user.ID = 1
	m.created = user
	return nil
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.user == nil {
		return nil, apperrors.NotFound("user not found")
	}
	return m.user, nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	return m.GetByUsername(ctx, "")
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.existsByEmailError != nil {
		return false, m.existsByEmailError
	}
	return m.existsByEmailResult, nil
}

func (m *mockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if m.existsByUsernameError != nil {
		return false, m.existsByUsernameError
	}
	return m.existsByUsernameResult, nil
}

func (m *mockUserRepository) List(ctx context.Context, search string, page, limit int) ([]models.UserListItem, int, error) {
	m.listSearch = search
	if m.err != nil {
		return nil, 0, m.err
	}
	return m.users, m.total, nil
}

func (m *mockUserRepository) SetBanned(ctx context.Context, id int, banned bool) (int, error) {
	m.setBannedCalls++
	if m.setBannedErr != nil {
		return 0, m.setBannedErr
	}
	return m.setBannedRows, nil
}

// mockTokenIssuer is a mock implementation of TokenIssuer
type mockTokenIssuer struct {
	token string
	err   error
}

func (m *mockTokenIssuer) GenerateToken(identity models.Identity) (string, error) {
	return m.token, m.err
}

func (m *mockTokenIssuer) Expiry() time.Duration {
	return time.Hour
}

// mockBookRepository is a mock implementation of BookRepository
type mockBookRepository struct {
	book        *models.Book
	books       []models.Book
	total       int
	err         error
	listQuery   models.BookListQuery
	exists      bool
	existsErr   error
	avg         *float64
	count       int
	statsErr    error
	userRating  *int
	createErr   error
	created     *models.Book
	updateErr   error
	deleteErr   error
	deleteCalls int
}

func (m *mockBookRepository) List(ctx context.Context, query models.BookListQuery) ([]models.Book, int, error) {
	m.listQuery = query
	if m.err != nil {
		return nil, 0, m.err
	}
	return m.books, m.total, nil
}

func (m *mockBookRepository) GetByID(ctx context.Context, id int) (*models.Book, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.book == nil {
		return nil, apperrors.NotFound("book not found")
	}
	return m.book, nil
}

func (m *mockBookRepository) Exists(ctx context.Context, id int) (bool, error) {
	return m.exists, m.existsErr
}

func (m *mockBookRepository) GetRatingStats(ctx context.Context, bookID int) (*float64, int, error) {
	return m.avg, m.count, m.statsErr
}

func (m *mockBookRepository) GetUserRating(ctx context.Context, bookID, userID int) (*int, error) {
	return m.userRating, nil
}

func (m *mockBookRepository) Create(ctx context.Context, book *models.Book) error {
	if m.createErr != nil {
		return m.createErr
	}
	book.ID = 10
	m.created = book
	if m.book == nil {
		m.book = book
	}
	return nil
}

func (m *mockBookRepository) Update(ctx context.Context, id int, req models.BookRequest) error {
	return m.updateErr
}

func (m *mockBookRepository) Delete(ctx context.Context, id int) error {
	m.deleteCalls++
	return m.deleteErr
}

// mockCommentRepository is a mock implementation of CommentRepository and RecentCommentRepository
type mockCommentRepository struct {
	comment     *models.Comment
	comments    []models.Comment
	total       int
	err         error
	createErr   error
	created     *models.Comment
	deleteErr   error
	deleteCalls int
}

func (m *mockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if m.createErr != nil {
		return m.createErr
	}
	comment.ID = 5
	m.created = comment
	if m.comment == nil {
		m.comment = comment
	}
	return nil
}

func (m *mockCommentRepository) GetByID(ctx context.Context, id int) (*models.Comment, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.comment == nil {
		return nil, apperrors.NotFound("comment not found")
	}
	return m.comment, nil
}

func (m *mockCommentRepository) ListByBook(ctx context.Context, bookID, page, limit int) ([]models.Comment, int, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	return m.comments, m.total, nil
}

func (m *mockCommentRepository) Recent(ctx context.Context, bookID, n int) ([]models.Comment, error) {
	if m.err != nil {
		return nil, m.err
	}
	if len(m.comments) > n {
		return m.comments[:n], nil
	}
	return m.comments, nil
}

func (m *mockCommentRepository) Delete(ctx context.Context, id int) error {
	m.deleteCalls++
	return m.deleteErr
}

// mockRatingRepository is a mock implementation of RatingRepository
type mockRatingRepository struct {
	summary models.RatingSummary
	err     error
	calls   int
	rating  int
}

func (m *mockRatingRepository) Rate(ctx context.Context, userID, bookID, rating int) (models.RatingSummary, error) {
	m.calls++
	m.rating = rating
	return m.summary, m.err
}

// mockNewsRepository is a mock implementation of NewsRepository
type mockNewsRepository struct {
	news        *models.News
	posts       []models.News
	total       int
	err         error
	createErr   error
	created     *models.News
	deleteErr   error
	deleteCalls int
}

func (m *mockNewsRepository) List(ctx context.Context, page, limit int) ([]models.News, int, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	return m.posts, m.total, nil
}

func (m *mockNewsRepository) GetByID(ctx context.Context, id int) (*models.News, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.news == nil {
		return nil, apperrors.NotFound("news not found")
	}
	return m.news, nil
}

func (m *mockNewsRepository) Create(ctx context.Context, news *models.News) error {
	if m.createErr != nil {
		return m.createErr
	}
	news.ID = 3
	m.created = news
	if m.news == nil {
		m.news = news
	}
	return nil
}

func (m *mockNewsRepository) Delete(ctx context.Context, id int) error {
	m.deleteCalls++
	return m.deleteErr
}

// mockFileStore is a mock implementation of FileStore
type mockFileStore struct {
	mu        sync.Mutex
	saveErr   error
	removeErr error
	saved     []storage.Upload
	removed   []string
}

func (m *mockFileStore) SaveAll(uploads []storage.Upload) (map[string]string, error) {
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	result := make(map[string]string, len(uploads))
	for _, u := range uploads {
		m.saved = append(m.saved, u)
		result[u.Slot.Field] = "/" + u.Slot.Dir + "/" + u.Filename
	}
	return result, nil
}

func (m *mockFileStore) Remove(publicPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removed = append(m.removed, publicPath)
	return m.removeErr
}

func ptr[T any](v T) *T {
	return &v
}
