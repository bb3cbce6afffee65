package models

// MinCommentLength is the minimum number of characters of a comment text
const MinCommentLength = 3

// Comment represents a comment on a book
type Comment struct {
	ID        int    `json:"id"`
	UserID    int    `json:"user_id"`
	BookID    int    `json:"book_id"`
	Text      string `json:"text"`
	Rating    *int   `json:"rating"`
	CreatedAt string `json:"created_at"`
	Username  string `json:"username"`
}

// CreateCommentRequest represents the request body for commenting a book
type CreateCommentRequest struct {
	Text   string   `json:"text"`
	Rating *float64 `json:"rating"`
}

// CommentListResponse is returned by the book comments endpoint
type CommentListResponse struct {
	Comments   []Comment  `json:"comments"`
	Pagination Pagination `json:"pagination"`
}
