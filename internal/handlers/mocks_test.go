package handlers

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/librarycatalog/backend/internal/models"
	"github.com/librarycatalog/backend/internal/storage"
)

// tokenStub maps fixed tokens to identities
type tokenStub map[string]models.Identity

func (s tokenStub) ValidateToken(token string) (models.Identity, error) {
	identity, ok := s[token]
	if !ok {
		return models.Identity{}, errors.New("invalid token")
	}
	return identity, nil
}

var (
	readerIdentity = models.Identity{ID: 2, Role: models.RoleUser, Username: "reader"}
	adminIdentity  = models.Identity{ID: 1, Role: models.RoleAdmin, Username: "admin"}

	testTokens = tokenStub{
		"reader-token": readerIdentity,
		"admin-token":  adminIdentity,
	}
)

type mockAuthService struct {
	registerFunc func(ctx context.Context, req *models.RegisterRequest) (*models.RegisterResponse, error)
	loginFunc    func(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
}

func (m *mockAuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.RegisterResponse, error) {
	return m.registerFunc(ctx, req)
}

func (m *mockAuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	return m.loginFunc(ctx, req)
}

// receivedUpload is what the book and news mocks saw of an upload while the request was live
type receivedUpload struct {
	Field       string
	Filename    string
	ContentType string
	Content     string
}

func readUploads(uploads []storage.Upload) []receivedUpload {
	received := make([]receivedUpload, 0, len(uploads))
	for _, u := range uploads {
		data, _ := io.ReadAll(u.File)
		received = append(received, receivedUpload{
			Field:       u.Slot.Field,
			Filename:    u.Filename,
			ContentType: u.ContentType,
			Content:     string(data),
		})
	}
	return received
}

type mockBookService struct {
	mu       sync.Mutex
	query    models.BookListQuery
	viewer   *models.Identity
	request  models.BookRequest
	uploads  []receivedUpload
	deleted  int
	listFunc func() (*models.BookListResponse, error)
	getFunc  func(id int) (*models.BookDetails, error)
	err      error
}

func (m *mockBookService) List(ctx context.Context, query models.BookListQuery) (*models.BookListResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.query = query
	if m.listFunc != nil {
		return m.listFunc()
	}
	return &models.BookListResponse{Books: []models.Book{}}, m.err
}

func (m *mockBookService) Get(ctx context.Context, id int, viewer *models.Identity) (*models.BookDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.viewer = viewer
	if m.getFunc != nil {
		return m.getFunc(id)
	}
	return nil, m.err
}

func (m *mockBookService) Create(ctx context.Context, req models.BookRequest, uploads []storage.Upload) (*models.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.request = req
	m.uploads = readUploads(uploads)
	if m.err != nil {
		return nil, m.err
	}
	return &models.Book{ID: 7, Title: req.Title, Author: req.Author, Year: req.Year}, nil
}

func (m *mockBookService) Update(ctx context.Context, id int, req models.BookRequest) (*models.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.request = req
	if m.err != nil {
		return nil, m.err
	}
	return &models.Book{ID: id, Title: req.Title, Author: req.Author}, nil
}

func (m *mockBookService) Delete(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = id
	return m.err
}

type mockRatingService struct {
	userID int
	bookID int
	rating *float64
	err    error
}

func (m *mockRatingService) Rate(ctx context.Context, userID, bookID int, rating *float64) (*models.RateResponse, error) {
	m.userID, m.bookID, m.rating = userID, bookID, rating
	if m.err != nil {
		return nil, m.err
	}
	return &models.RateResponse{
		Success:       true,
		RatingSummary: models.RatingSummary{AverageRating: 3, RatingsCount: 2},
	}, nil
}

type mockCommentService struct {
	author    models.Identity
	bookID    int
	request   *models.CreateCommentRequest
	page      int
	limit     int
	caller    models.Identity
	commentID int
	err       error
}

func (m *mockCommentService) Create(ctx context.Context, author models.Identity, bookID int, req *models.CreateCommentRequest) (*models.Comment, error) {
	m.author, m.bookID, m.request = author, bookID, req
	if m.err != nil {
		return nil, m.err
	}
	return &models.Comment{ID: 11, UserID: author.ID, BookID: bookID, Text: req.Text, Username: author.Username}, nil
}

func (m *mockCommentService) List(ctx context.Context, bookID, page, limit int) (*models.CommentListResponse, error) {
	m.bookID, m.page, m.limit = bookID, page, limit
	if m.err != nil {
		return nil, m.err
	}
	return &models.CommentListResponse{
		Comments:   []models.Comment{},
		Pagination: models.NewPagination(page, limit, 0),
	}, nil
}

func (m *mockCommentService) Delete(ctx context.Context, caller models.Identity, commentID int) error {
	m.caller, m.commentID = caller, commentID
	return m.err
}

type mockNewsService struct {
	author  models.Identity
	request models.NewsRequest
	image   *receivedUpload
	deleted int
	err     error
}

func (m *mockNewsService) List(ctx context.Context, page, limit int) (*models.NewsListResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &models.NewsListResponse{News: []models.News{}, Pagination: models.NewPagination(page, limit, 0)}, nil
}

func (m *mockNewsService) Create(ctx context.Context, author models.Identity, req models.NewsRequest, image *storage.Upload) (*models.News, error) {
	m.author, m.request = author, req
	if image != nil {
		received := readUploads([]storage.Upload{*image})[0]
		m.image = &received
	}
	if m.err != nil {
		return nil, m.err
	}
	return &models.News{ID: 3, Title: req.Title, Content: req.Content}, nil
}

func (m *mockNewsService) Delete(ctx context.Context, id int) error {
	m.deleted = id
	return m.err
}

type mockAdminService struct {
	search string
	page   int
	limit  int
	userID int
	banned bool
	err    error
}

func (m *mockAdminService) ListUsers(ctx context.Context, search string, page, limit int) (*models.UserListResponse, error) {
	m.search, m.page, m.limit = search, page, limit
	if m.err != nil {
		return nil, m.err
	}
	return &models.UserListResponse{Users: []models.UserListItem{}, Pagination: models.NewPagination(page, limit, 0)}, nil
}

func (m *mockAdminService) SetBanned(ctx context.Context, userID int, banned bool) error {
	m.userID, m.banned = userID, banned
	return m.err
}

type mockPinger struct {
	err error
}

func (m *mockPinger) PingContext(ctx context.Context) error {
	return m.err
}
