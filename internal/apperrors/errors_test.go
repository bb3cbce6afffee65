package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "validation", err: Validation("bad"), expected: http.StatusBadRequest},
		{name: "conflict", err: Conflict("dup"), expected: http.StatusBadRequest},
		{name: "authentication", err: Authentication("no token"), expected: http.StatusUnauthorized},
		{name: "authorization", err: Authorization("denied"), expected: http.StatusForbidden},
		{name: "not found", err: NotFound("missing"), expected: http.StatusNotFound},
		{name: "internal", err: Internal("boom", errors.New("disk")), expected: http.StatusInternalServerError},
		{name: "plain error", err: errors.New("plain"), expected: http.StatusInternalServerError},
		{name: "wrapped not found", err: fmt.Errorf("service: %w", NotFound("book not found")), expected: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "book not found", PublicMessage(NotFound("book not found"), "fallback"))
	assert.Equal(t, "fallback", PublicMessage(Internal("failed to query", errors.New("SQL logic error")), "fallback"))
	assert.Equal(t, "fallback", PublicMessage(errors.New("raw"), "fallback"))
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := Internal("failed to save file", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to save file: disk full", err.Error())
	assert.True(t, Is(err, KindInternal))
	assert.False(t, Is(err, KindNotFound))
}
