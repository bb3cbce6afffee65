package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"github.com/librarycatalog/backend/internal/config"
	"github.com/librarycatalog/backend/internal/database"
	"github.com/librarycatalog/backend/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEnv struct {
	cfg        *config.Config
	handler    http.Handler
	adminToken string
}

// setupTestApp builds the full application on a fresh database in a temporary directory
func setupTestApp(t *testing.T) *testEnv {
	t.Helper()

	cfg := config.LoadTestConfig(t.TempDir())
	db, err := database.Connect(cfg.Database.Path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.MigrateUp(db))

	application, err := New(cfg, db, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, application.EnsureAdmin(context.Background()))

	env := &testEnv{cfg: cfg, handler: application.Handler()}
	env.adminToken = env.login(t, cfg.Admin.Username, cfg.Admin.Password)
	return env
}

func (e *testEnv) do(t *testing.T, method, path, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	req.RemoteAddr = "192.0.2.1:1234"
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)
	return w
}

func (e *testEnv) doJSON(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)
	return e.do(t, method, path, token, bytes.NewReader(data), "application/json")
}

func (e *testEnv) login(t *testing.T, username, password string) string {
	t.Helper()

	w := e.doJSON(t, http.MethodPost, "/api/login", "", map[string]string{"username": username, "password": password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode(t, w)["token"].(string)
}

// registerUser registers a user and returns its id and token
func (e *testEnv) registerUser(t *testing.T, username string) (int, string) {
	t.Helper()

	w := e.doJSON(t, http.MethodPost, "/api/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "password-" + username,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := int(decode(t, w)["id"].(float64))
	return id, e.login(t, username, "password-"+username)
}

type upload struct {
	field       string
	name        string
	contentType string
	content     []byte
}

func (e *testEnv) createBook(t *testing.T, title string, files ...upload) *httptest.ResponseRecorder {
	t.Helper()

	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	require.NoError(t, mw.WriteField("title", title))
	require.NoError(t, mw.WriteField("author", "Frank Herbert"))
	require.NoError(t, mw.WriteField("year", "1965"))
	for _, f := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.field, f.name))
		header.Set("Content-Type", f.contentType)
		part, err := mw.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	return e.do(t, http.MethodPost, "/api/books", e.adminToken, buf, mw.FormDataContentType())
}

func (e *testEnv) uploadedFiles(t *testing.T, dir string) []os.DirEntry {
	t.Helper()

	entries, err := os.ReadDir(filepath.Join(e.cfg.Uploads.Dir, dir))
	require.NoError(t, err)
	return entries
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func TestApp_RatingAggregate(t *testing.T) {
	env := setupTestApp(t)

	w := env.createBook(t, "Dune")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	bookID := int(decode(t, w)["id"].(float64))
	bookPath := fmt.Sprintf("/api/books/%d", bookID)

	_, tokenA := env.registerUser(t, "alice")
	_, tokenB := env.registerUser(t, "bob")

	w = env.doJSON(t, http.MethodPost, bookPath+"/rate", tokenA, map[string]int{"rating": 4})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.doJSON(t, http.MethodPost, bookPath+"/rate", tokenB, map[string]int{"rating": 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, 3.0, body["averageRating"])
	assert.Equal(t, float64(2), body["ratingsCount"])

	w = env.do(t, http.MethodGet, bookPath, "", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	assert.Equal(t, 3.0, body["rating"])
	assert.Equal(t, 3.0, body["avg_rating"])
	assert.Equal(t, float64(2), body["ratings_count"])
	assert.Nil(t, body["user_rating"])

	t.Run("re-rating replaces the previous value", func(t *testing.T) {
		w := env.doJSON(t, http.MethodPost, bookPath+"/rate", tokenA, map[string]int{"rating": 5})
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, 3.5, body["averageRating"])
		assert.Equal(t, float64(2), body["ratingsCount"])

		w = env.do(t, http.MethodGet, bookPath, tokenA, nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(5), decode(t, w)["user_rating"])
	})

	t.Run("out of range rating is rejected", func(t *testing.T) {
		w := env.doJSON(t, http.MethodPost, bookPath+"/rate", tokenA, map[string]float64{"rating": 4.5})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing book", func(t *testing.T) {
		w := env.doJSON(t, http.MethodPost, "/api/books/9999/rate", tokenA, map[string]int{"rating": 3})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("anonymous caller", func(t *testing.T) {
		w := env.doJSON(t, http.MethodPost, bookPath+"/rate", "", map[string]int{"rating": 3})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestApp_CommentOwnership(t *testing.T) {
	env := setupTestApp(t)

	w := env.createBook(t, "Dune")
	require.Equal(t, http.StatusCreated, w.Code)
	bookID := int(decode(t, w)["id"].(float64))
	commentsPath := fmt.Sprintf("/api/books/%d/comments", bookID)

	_, authorToken := env.registerUser(t, "alice")
	_, otherToken := env.registerUser(t, "bob")

	w = env.doJSON(t, http.MethodPost, commentsPath, authorToken, map[string]any{"text": "  A classic.  ", "rating": 5})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	comment := decode(t, w)
	assert.Equal(t, "A classic.", comment["text"])
	assert.Equal(t, "alice", comment["username"])
	commentPath := fmt.Sprintf("/api/comments/%d", int(comment["id"].(float64)))

	w = env.doJSON(t, http.MethodPost, commentsPath, authorToken, map[string]any{"text": "ok"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodDelete, commentPath, otherToken, nil, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodGet, commentsPath, "", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	list := decode(t, w)
	assert.Len(t, list["comments"], 1)
	assert.Equal(t, float64(1), list["pagination"].(map[string]any)["total"])

	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/books/%d", bookID), "", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["recentComments"], 1)

	w = env.do(t, http.MethodDelete, commentPath, authorToken, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodDelete, commentPath, env.adminToken, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.doJSON(t, http.MethodPost, commentsPath, otherToken, map[string]any{"text": "Too long for me"})
	require.Equal(t, http.StatusCreated, w.Code)
	otherComment := fmt.Sprintf("/api/comments/%d", int(decode(t, w)["id"].(float64)))

	w = env.do(t, http.MethodDelete, otherComment, env.adminToken, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestApp_BannedUserCannotLogin(t *testing.T) {
	env := setupTestApp(t)

	userID, _ := env.registerUser(t, "carol")
	banPath := fmt.Sprintf("/api/admin/users/%d/ban", userID)

	w := env.doJSON(t, http.MethodPut, banPath, env.adminToken, map[string]bool{"isBanned": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.doJSON(t, http.MethodPost, "/api/login", "", map[string]string{"username": "carol", "password": "password-carol"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	bannedMessage := decode(t, w)["error"]

	w = env.doJSON(t, http.MethodPost, "/api/login", "", map[string]string{"username": "nobody", "password": "whatever"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, bannedMessage, decode(t, w)["error"])

	w = env.doJSON(t, http.MethodPut, banPath, env.adminToken, map[string]bool{"isBanned": false})
	require.Equal(t, http.StatusOK, w.Code)
	env.login(t, "carol", "password-carol")

	t.Run("admins cannot be banned", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/admin/users?search=admin", env.adminToken, nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		users := decode(t, w)["users"].([]any)
		require.Len(t, users, 1)
		adminID := int(users[0].(map[string]any)["id"].(float64))

		w = env.doJSON(t, http.MethodPut, fmt.Sprintf("/api/admin/users/%d/ban", adminID), env.adminToken, map[string]bool{"isBanned": true})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("missing user", func(t *testing.T) {
		w := env.doJSON(t, http.MethodPut, "/api/admin/users/9999/ban", env.adminToken, map[string]bool{"isBanned": true})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("duplicate registration", func(t *testing.T) {
		w := env.doJSON(t, http.MethodPost, "/api/register", "", map[string]string{
			"username": "carol",
			"email":    "other@example.com",
			"password": "secret",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestApp_Uploads(t *testing.T) {
	env := setupTestApp(t)
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

	t.Run("rejected upload leaves nothing behind", func(t *testing.T) {
		w := env.createBook(t, "Dune",
			upload{field: "cover", name: "cover.png", contentType: "image/png", content: png},
			upload{field: "bookFile", name: "dune.txt", contentType: "text/plain", content: []byte("not a pdf")},
		)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "bookFile must be a PDF document", decode(t, w)["error"])

		assert.Empty(t, env.uploadedFiles(t, storage.UploadsDir))

		w = env.do(t, http.MethodGet, "/api/books", "", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(0), decode(t, w)["pagination"].(map[string]any)["total"])
	})

	t.Run("stored files are served and removed with the book", func(t *testing.T) {
		w := env.createBook(t, "Dune",
			upload{field: "cover", name: "cover.png", contentType: "image/png", content: png},
			upload{field: "bookFile", name: "dune.pdf", contentType: "application/pdf", content: []byte("%PDF-1.4")},
		)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		book := decode(t, w)
		coverURL := book["cover_url"].(string)
		assert.Regexp(t, `^/uploads/\d+-[0-9a-f]+\.png$`, coverURL)
		assert.Regexp(t, `^/uploads/\d+-[0-9a-f]+\.pdf$`, book["book_file_url"])
		assert.Len(t, env.uploadedFiles(t, storage.UploadsDir), 2)

		w = env.do(t, http.MethodGet, coverURL, "", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, png, w.Body.Bytes())

		w = env.do(t, http.MethodGet, "/uploads/", "", nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = env.do(t, http.MethodDelete, fmt.Sprintf("/api/books/%d", int(book["id"].(float64))), env.adminToken, nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, env.uploadedFiles(t, storage.UploadsDir))
	})

	t.Run("news image", func(t *testing.T) {
		buf := &bytes.Buffer{}
		mw := multipart.NewWriter(buf)
		require.NoError(t, mw.WriteField("title", "Reading club"))
		require.NoError(t, mw.WriteField("content", "Every Friday"))
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="image"; filename="club.png"`)
		header.Set("Content-Type", "application/octet-stream")
		part, err := mw.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(png)
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		w := env.do(t, http.MethodPost, "/api/news", env.adminToken, buf, mw.FormDataContentType())
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		post := decode(t, w)["newPost"].(map[string]any)
		assert.Regexp(t, `^/news_images/`, post["image_url"])
		assert.Equal(t, "admin", post["username"])
		assert.Len(t, env.uploadedFiles(t, storage.NewsImagesDir), 1)

		w = env.do(t, http.MethodGet, "/api/news", "", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode(t, w)["news"], 1)

		w = env.do(t, http.MethodDelete, fmt.Sprintf("/api/news/%d", int(post["id"].(float64))), env.adminToken, nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, env.uploadedFiles(t, storage.NewsImagesDir))
	})
}

func TestApp_Routes(t *testing.T) {
	env := setupTestApp(t)

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
		expectedError  string
	}{
		{name: "health", method: http.MethodGet, path: "/health", expectedStatus: http.StatusOK},
		{name: "unknown route", method: http.MethodGet, path: "/api/nothing", expectedStatus: http.StatusNotFound, expectedError: "route not found"},
		{name: "wrong method", method: http.MethodPatch, path: "/api/books", expectedStatus: http.StatusMethodNotAllowed, expectedError: "method not allowed"},
		{name: "admin route without token", method: http.MethodGet, path: "/api/admin/users", expectedStatus: http.StatusUnauthorized, expectedError: "authentication required"},
		{name: "missing book", method: http.MethodGet, path: "/api/books/9999", expectedStatus: http.StatusNotFound, expectedError: "book not found"},
		{name: "swagger document", method: http.MethodGet, path: "/swagger/doc.json", expectedStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, tt.method, tt.path, "", nil, "")

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, decode(t, w)["error"])
			}
		})
	}
}
