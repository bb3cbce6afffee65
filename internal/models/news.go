package models

// News represents a news post
type News struct {
	ID        int     `json:"id"`
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	ImageURL  *string `json:"image_url"`
	UserID    *int    `json:"user_id"`
	Username  *string `json:"username"`
	CreatedAt string  `json:"created_at"`
}

// NewsRequest holds the text fields of a news post
type NewsRequest struct {
	Title   string
	Content string
}

// NewsListResponse is returned by the news list endpoint
type NewsListResponse struct {
	News       []News     `json:"news"`
	Pagination Pagination `json:"pagination"`
}

// CreateNewsResponse is returned when a news post is created
type CreateNewsResponse struct {
	NewPost *News `json:"newPost"`
}
