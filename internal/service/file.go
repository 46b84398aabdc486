package service

import (
	"fmt"
	"log/slog"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/justinjurolan/blogsite/internal/storage"
)

// FileService stores uploaded images through the configured storage
// backend and generates unique filenames for them.
type FileService struct {
	storage storage.Storage
}

func NewFileService(store storage.Storage) *FileService {
	return &FileService{storage: store}
}

// Save streams an uploaded file to storage under a timestamped name and
// returns the stored path.
func (s *FileService) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(header.Filename))

	if err := s.storage.Save(name, file); err != nil {
		return "", fmt.Errorf("saving upload %s: %w", name, err)
	}

	return name, nil
}

// Delete removes a stored file. Failures are logged and swallowed; a
// stale image on disk is not worth failing the surrounding operation.
func (s *FileService) Delete(path string) {
	if path == "" {
		return
	}
	if err := s.storage.Delete(path); err != nil {
		slog.Warn("failed to delete stored file", "path", path, "error", err)
	}
}

// URL returns the public URL for a stored file.
func (s *FileService) URL(path string) string {
	return s.storage.URL(path)
}
