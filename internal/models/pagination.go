package models

// Pagination defaults and bounds shared by all list endpoints
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Pagination describes a page of a list response
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// NewPagination clamps page and limit and derives the total page count
func NewPagination(page, limit, total int) Pagination {
	page, limit = NormalizePage(page, limit)
	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}

// NormalizePage clamps page to >= 1 and limit to [1, MaxLimit], applying defaults for zero values
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// Offset returns the number of rows to skip for the given page
func Offset(page, limit int) int {
	page, limit = NormalizePage(page, limit)
	return (page - 1) * limit
}
