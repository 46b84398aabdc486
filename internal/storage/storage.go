package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	cfg "github.com/justinjurolan/blogsite/internal/config"
)

// Storage defines the interface for image file storage operations
type Storage interface {
	// Save stores a file at the given path
	Save(path string, file io.Reader) error

	// Delete removes a file at the given path
	Delete(path string) error

	// URL returns the public URL for accessing the file
	URL(path string) string
}

// New selects a storage backend from app config.
func New(c *cfg.Config) (Storage, error) {
	if c.StorageDriver == "s3" {
		return NewS3Storage(S3Config{
			Region:    c.S3Region,
			Bucket:    c.S3Bucket,
			AccessKey: c.S3AccessKey,
			SecretKey: c.S3SecretKey,
			Endpoint:  c.S3Endpoint,
		})
	}
	return NewLocalStorage(c.ImagesDir)
}

// LocalStorage keeps files under a public directory on disk. The directory
// is served statically at /images/.
type LocalStorage struct {
	dir string
}

func NewLocalStorage(dir string) (*LocalStorage, error) {
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create images directory: %w", err)
	}
	return &LocalStorage{dir: dir}, nil
}

func (s *LocalStorage) Save(path string, file io.Reader) error {
	dst, err := os.Create(filepath.Join(s.dir, filepath.Base(path)))
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = dst.Close() }()

	_, err = io.Copy(dst, file)
	if err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

func (s *LocalStorage) Delete(path string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(path)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *LocalStorage) URL(path string) string {
	return "/images/" + filepath.Base(path)
}
