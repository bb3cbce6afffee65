package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/librarycatalog/backend/internal/storage"
	"go.uber.org/zap"
)

// multipartMemory is the part of a multipart body kept in memory; the rest spills to temp files
const multipartMemory = 10 << 20

// ParseMultipart parses a multipart form body, answering 400 or 413 itself on failure.
// The returned release func removes the form's temporary files.
func (h *BaseHandler) ParseMultipart(w http.ResponseWriter, r *http.Request) (func(), bool) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		if isBodyTooLarge(err) {
			h.RespondError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return nil, false
		}
		h.RespondError(w, http.StatusBadRequest, "invalid multipart form")
		return nil, false
	}

	return func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			h.Logger.Warn("failed to remove multipart temp files", zap.Error(err))
		}
	}, true
}

// FormUploads opens the files sent for the given slots. Absent or empty parts are skipped.
// The returned close func must be called once the uploads are no longer read.
func (h *BaseHandler) FormUploads(r *http.Request, slots ...storage.Slot) ([]storage.Upload, func(), error) {
	var opened []multipart.File
	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	uploads := make([]storage.Upload, 0, len(slots))
	for _, slot := range slots {
		file, header, err := r.FormFile(slot.Field)
		if errors.Is(err, http.ErrMissingFile) {
			continue
		}
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		opened = append(opened, file)

		if header.Size == 0 {
			continue
		}

		upload, err := storage.NewUpload(slot, file, header)
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		uploads = append(uploads, upload)
	}

	return uploads, closeAll, nil
}

// formValue returns a trimmed multipart form field
func formValue(r *http.Request, name string) string {
	return strings.TrimSpace(r.FormValue(name))
}

// formInt parses an optional integer form field; empty means absent
func formInt(r *http.Request, name string) (*int, error) {
	raw := formValue(r, name)
	if raw == "" {
		return nil, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
