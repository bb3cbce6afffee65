package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		limit    int
		total    int
		expected Pagination
	}{
		{
			name:     "exact pages",
			page:     1,
			limit:    10,
			total:    20,
			expected: Pagination{Total: 20, Page: 1, Limit: 10, TotalPages: 2},
		},
		{
			name:     "partial last page",
			page:     2,
			limit:    10,
			total:    21,
			expected: Pagination{Total: 21, Page: 2, Limit: 10, TotalPages: 3},
		},
		{
			name:     "page clamped to one",
			page:     -3,
			limit:    5,
			total:    4,
			expected: Pagination{Total: 4, Page: 1, Limit: 5, TotalPages: 1},
		},
		{
			name:     "defaults for zero values",
			page:     0,
			limit:    0,
			total:    0,
			expected: Pagination{Total: 0, Page: 1, Limit: 10, TotalPages: 0},
		},
		{
			name:     "limit clamped to max",
			page:     1,
			limit:    1000,
			total:    250,
			expected: Pagination{Total: 250, Page: 1, Limit: 100, TotalPages: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NewPagination(tt.page, tt.limit, tt.total))
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(1, 10))
	assert.Equal(t, 20, Offset(3, 10))
	assert.Equal(t, 0, Offset(-1, 10))
}
