package models

// BookSortField is a column the books list may be ordered by
type BookSortField string

// BookSortField constants
const (
	SortByTitle     BookSortField = "title"
	SortByAuthor    BookSortField = "author"
	SortByYear      BookSortField = "year"
	SortByRating    BookSortField = "rating"
	SortByCreatedAt BookSortField = "created_at"
)

// SortOrder is the direction of a books list ordering
type SortOrder string

// SortOrder constants
const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// Book represents a book row
type Book struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	CoverURL    *string `json:"cover_url"`
	BookFileURL *string `json:"book_file_url"`
	Year        *int    `json:"year"`
	Rating      float64 `json:"rating"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// BookDetails is a book together with its rating aggregate and latest comments
type BookDetails struct {
	Book
	AvgRating      *float64  `json:"avg_rating"`
	RatingsCount   int       `json:"ratings_count"`
	UserRating     *int      `json:"user_rating"`
	RecentComments []Comment `json:"recentComments"`
}

// BookListQuery holds the filters of the books list
type BookListQuery struct {
	Page   int
	Limit  int
	Search string
	Sort   BookSortField
	Order  SortOrder
}

// BookListResponse is returned by the books list endpoint
type BookListResponse struct {
	Books      []Book     `json:"books"`
	Pagination Pagination `json:"pagination"`
}

// BookRequest holds the metadata fields of a book create or update
type BookRequest struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Year        *int   `json:"year"`
}
