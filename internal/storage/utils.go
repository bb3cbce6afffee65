package storage

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var extensionPattern = regexp.MustCompile(`^\.[a-z0-9]{1,8}$`)

// extensionsByType covers the types whose mime.ExtensionsByType answer is missing or surprising
var extensionsByType = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"image/svg+xml":   ".svg",
	"application/pdf": ".pdf",
}

// GenerateFileName returns a timestamp-addressed file name "<unix-millis>-<random><ext>"
func GenerateFileName(extension string) string {
	random := strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), random, extension)
}

// FileExtension picks the extension of the stored file: the original name's when it is sane,
// otherwise one inferred from the content type
func FileExtension(originalName, contentType string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	if extensionPattern.MatchString(ext) {
		return ext
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	if ext, ok := extensionsByType[mediaType]; ok {
		return ext
	}
	if exts, err := mime.ExtensionsByType(mediaType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}

// DetectContentType returns the declared content type, sniffing the first 512 bytes
// when the declaration is missing or generic. The reader is rewound afterwards.
func DetectContentType(declared string, file io.ReadSeeker) (string, error) {
	mediaType, _, err := mime.ParseMediaType(declared)
	if err == nil && mediaType != "application/octet-stream" {
		return mediaType, nil
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", fmt.Errorf("failed to read file header: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind file: %w", err)
	}

	sniffed, _, _ := mime.ParseMediaType(http.DetectContentType(head[:n]))
	return sniffed, nil
}

// sizeWriter counts the bytes written through it
type sizeWriter struct {
	size int64
}

func (sw *sizeWriter) Write(p []byte) (int, error) {
	sw.size += int64(len(p))
	return len(p), nil
}
