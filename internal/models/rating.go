package models

// Rating value bounds
const (
	MinRating = 1
	MaxRating = 5
)

// RateRequest represents the request body for rating a book
type RateRequest struct {
	Rating *float64 `json:"rating"`
}

// RatingSummary is the aggregate of all ratings of a book
type RatingSummary struct {
	AverageRating float64 `json:"averageRating"`
	RatingsCount  int     `json:"ratingsCount"`
}

// RateResponse is returned by the rate endpoint
type RateResponse struct {
	Success bool `json:"success"`
	RatingSummary
}
