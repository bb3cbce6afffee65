// Package storage keeps uploaded covers, book files and news images on the local disk
package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/librarycatalog/backend/internal/apperrors"
)

// Upload is one file received in a multipart request
type Upload struct {
	Slot        Slot
	Filename    string
	ContentType string
	Size        int64
	File        io.ReadSeeker
}

// NewUpload builds an Upload from a multipart part, detecting its content type
func NewUpload(slot Slot, file multipart.File, header *multipart.FileHeader) (Upload, error) {
	contentType, err := DetectContentType(header.Header.Get("Content-Type"), file)
	if err != nil {
		return Upload{}, apperrors.Internal("failed to inspect upload", err)
	}

	return Upload{
		Slot:        slot,
		Filename:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		File:        file,
	}, nil
}

// Validate checks the upload against its slot's content type and size limit
func (u Upload) Validate() error {
	if !u.Slot.Accepts(u.ContentType) {
		return apperrors.Validation(u.Slot.Invalid)
	}
	if u.Size > u.Slot.MaxSize {
		return apperrors.Validation(fmt.Sprintf("%s exceeds the %dMB size limit", u.Slot.Field, u.Slot.MaxSize>>20))
	}
	return nil
}

// LocalStorage writes uploads below a root directory, one subdirectory per public prefix
type LocalStorage struct {
	root string
}

// NewLocalStorage creates the storage and its public directories
func NewLocalStorage(root string) (*LocalStorage, error) {
	for _, dir := range []string{UploadsDir, NewsImagesDir} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0755); err != nil {
			return nil, fmt.Errorf("failed to create %s directory: %w", dir, err)
		}
	}
	return &LocalStorage{root: root}, nil
}

// Dir returns the filesystem directory backing a public prefix
func (s *LocalStorage) Dir(publicDir string) string {
	return filepath.Join(s.root, publicDir)
}

// Save writes a single validated upload and returns its public path, e.g. "/uploads/1700000000000-ab12cd34ef56.png"
func (s *LocalStorage) Save(upload Upload) (string, error) {
	if err := upload.Validate(); err != nil {
		return "", err
	}

	name := GenerateFileName(FileExtension(upload.Filename, upload.ContentType))
	fullPath := filepath.Join(s.root, upload.Slot.Dir, name)

	dst, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", apperrors.Internal("failed to store file", err)
	}

	// Stop one byte past the limit so an understated part size is still caught
	counter := &sizeWriter{}
	_, copyErr := io.Copy(dst, io.TeeReader(io.LimitReader(upload.File, upload.Slot.MaxSize+1), counter))
	closeErr := dst.Close()

	switch {
	case copyErr != nil:
		os.Remove(fullPath)
		return "", apperrors.Internal("failed to store file", copyErr)
	case closeErr != nil:
		os.Remove(fullPath)
		return "", apperrors.Internal("failed to store file", closeErr)
	case counter.size > upload.Slot.MaxSize:
		os.Remove(fullPath)
		return "", apperrors.Validation(fmt.Sprintf("%s exceeds the %dMB size limit", upload.Slot.Field, upload.Slot.MaxSize>>20))
	}

	return "/" + upload.Slot.Dir + "/" + name, nil
}

// SaveAll validates every upload before writing any of them. The returned map is keyed by
// slot field. When a write fails the files already written are removed.
func (s *LocalStorage) SaveAll(uploads []Upload) (map[string]string, error) {
	for _, upload := range uploads {
		if err := upload.Validate(); err != nil {
			return nil, err
		}
	}

	saved := make(map[string]string, len(uploads))
	for _, upload := range uploads {
		publicPath, err := s.Save(upload)
		if err != nil {
			for _, written := range saved {
				s.Remove(written)
			}
			return nil, err
		}
		saved[upload.Slot.Field] = publicPath
	}

	return saved, nil
}

// Remove deletes the file behind a public path. A file that is already gone is not an error.
func (s *LocalStorage) Remove(publicPath string) error {
	fullPath, err := s.resolve(publicPath)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", publicPath, err)
	}
	return nil
}

// resolve maps a public path onto the storage root, refusing anything outside the public directories
func (s *LocalStorage) resolve(publicPath string) (string, error) {
	cleaned := path.Clean("/" + publicPath)
	dir, name := path.Split(cleaned)
	dir = strings.Trim(dir, "/")

	if dir != UploadsDir && dir != NewsImagesDir {
		return "", fmt.Errorf("path %q is outside the public directories", publicPath)
	}
	if name == "" || name == "." || name == ".." {
		return "", fmt.Errorf("path %q does not name a file", publicPath)
	}

	return filepath.Join(s.root, dir, name), nil
}
