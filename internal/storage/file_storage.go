// Package storage provides date-bucketed local file storage for extracted
// attachments. The layout partitions each category by processing date
// (category/yyyy/mm/dd) to bound directory size.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Security errors
var (
	ErrPathTraversal = errors.New("path traversal detected")
	ErrFileNotFound  = errors.New("file not found")
)

// FileStore defines the storage operations attachment extraction needs.
// Relative paths use forward slashes regardless of platform so they can be
// stored and served as URL suffixes.
type FileStore interface {
	// SaveBucketed writes data under category/yyyy/mm/dd/filename and
	// returns the relative path.
	SaveBucketed(category string, day time.Time, filename string, data []byte) (string, error)
	Get(relPath string) (io.ReadCloser, error)
	Delete(relPath string) error
}

// localStore implements FileStore on the local filesystem.
type localStore struct {
	basePath string
}

// NewLocalStore creates a FileStore rooted at basePath, creating it if
// needed.
func NewLocalStore(basePath string) (FileStore, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &localStore{basePath: basePath}, nil
}

// SaveBucketed writes data to the date bucket for day. Callers supply
// collision-free filenames, so no read-modify-write handling is needed.
func (s *localStore) SaveBucketed(category string, day time.Time, filename string, data []byte) (string, error) {
	relPath := strings.Join([]string{
		category,
		day.Format("2006"),
		day.Format("01"),
		day.Format("02"),
		filename,
	}, "/")

	fullPath, err := s.resolvePath(relPath)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create attachment directory: %w", err)
	}

	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		// Do not leave partial files behind.
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return relPath, nil
}

// Get retrieves a stored file by its relative path.
func (s *localStore) Get(relPath string) (io.ReadCloser, error) {
	fullPath, err := s.resolvePath(relPath)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return f, nil
}

// Delete removes a stored file. A missing file is not an error.
func (s *localStore) Delete(relPath string) error {
	fullPath, err := s.resolvePath(relPath)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// resolvePath validates a relative path and resolves it under the base path,
// rejecting absolute paths and traversal attempts.
func (s *localStore) resolvePath(relPath string) (string, error) {
	cleanPath := filepath.Clean(filepath.FromSlash(relPath))

	if filepath.IsAbs(cleanPath) {
		return "", ErrPathTraversal
	}
	if strings.Contains(cleanPath, "..") {
		return "", ErrPathTraversal
	}

	fullPath := filepath.Join(s.basePath, cleanPath)

	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return "", fmt.Errorf("invalid file path: %w", err)
	}
	absBase, err := filepath.Abs(s.basePath)
	if err != nil {
		return "", fmt.Errorf("invalid base path: %w", err)
	}

	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) && absPath != absBase {
		return "", ErrPathTraversal
	}
	return absPath, nil
}
