package storage

import (
	"strings"
)

// Public directories uploaded files are written to and served from
const (
	UploadsDir    = "uploads"
	NewsImagesDir = "news_images"
)

// Slot describes one kind of accepted upload
type Slot struct {
	// Field is the multipart form field the file arrives in
	Field string
	// Dir is the directory under the storage root, also used as the public URL prefix
	Dir string
	// MIMEPrefix is matched against the detected content type
	MIMEPrefix string
	// MaxSize is the largest accepted file in bytes
	MaxSize int64
	// Invalid is the validation message for a content type mismatch
	Invalid string
}

// Upload slots
var (
	CoverSlot = Slot{
		Field:      "cover",
		Dir:        UploadsDir,
		MIMEPrefix: "image/",
		MaxSize:    20 << 20,
		Invalid:    "cover must be an image",
	}
	BookFileSlot = Slot{
		Field:      "bookFile",
		Dir:        UploadsDir,
		MIMEPrefix: "application/pdf",
		MaxSize:    20 << 20,
		Invalid:    "bookFile must be a PDF document",
	}
	NewsImageSlot = Slot{
		Field:      "image",
		Dir:        NewsImagesDir,
		MIMEPrefix: "image/",
		MaxSize:    5 << 20,
		Invalid:    "image must be an image",
	}
)

// Accepts reports whether contentType is allowed in the slot
func (s Slot) Accepts(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(contentType), s.MIMEPrefix)
}
