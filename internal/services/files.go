package services

import (
	"github.com/librarycatalog/backend/internal/storage"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// FileStore is the interface that wraps uploaded file persistence
type FileStore interface {
	// Method SaveAll validates every upload, then writes them.
	//
	// Returns public paths keyed by form field. If any upload fails nothing is left on disk.
	SaveAll(uploads []storage.Upload) (map[string]string, error)
	// Method Remove deletes the file behind a public path; a missing file is not an error.
	Remove(publicPath string) error
}

// removeFiles deletes the given files concurrently. Failures are logged and otherwise ignored.
func removeFiles(files FileStore, logger *zap.Logger, paths ...*string) {
	var g errgroup.Group
	for _, p := range paths {
		if p == nil || *p == "" {
			continue
		}
		publicPath := *p
		g.Go(func() error {
			if err := files.Remove(publicPath); err != nil {
				logger.Warn("failed to remove file", zap.String("path", publicPath), zap.Error(err))
				return err
			}
			return nil
		})
	}
	_ = g.Wait()
}

// savedPath returns a pointer to the saved path of a field, nil when nothing was uploaded for it
func savedPath(saved map[string]string, field string) *string {
	p, ok := saved[field]
	if !ok {
		return nil
	}
	return &p
}

// removeSaved deletes every file in saved
func removeSaved(files FileStore, logger *zap.Logger, saved map[string]string) {
	paths := make([]*string, 0, len(saved))
	for _, p := range saved {
		paths = append(paths, &p)
	}
	removeFiles(files, logger, paths...)
}
