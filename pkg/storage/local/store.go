package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const archivedPrefix = "archived"

// Store keeps uploaded files on the local filesystem under a base directory.
// Archived files move into an archived/ subdirectory, mirroring how the
// hosted deployment prefixes object keys.
type Store struct {
	baseDir string
}

// NewStore builds a Store rooted at baseDir, creating it when missing.
func NewStore(baseDir string) (*Store, error) {
	if strings.TrimSpace(baseDir) == "" {
		return nil, errors.New("storage base dir is required")
	}
	if err := os.MkdirAll(filepath.Join(baseDir, archivedPrefix), 0o755); err != nil {
		return nil, fmt.Errorf("creating storage dir: %w", err)
	}
	return &Store{baseDir: baseDir}, nil
}

// Save writes content to the named file. The name must be a bare filename.
func (s *Store) Save(ctx context.Context, name string, content io.Reader) error {
	path, err := s.resolve(name)
	if err != nil {
		return err
	}
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("creating file %q: %w", name, err)
	}
	defer file.Close()

	if _, err := io.Copy(file, content); err != nil {
		return fmt.Errorf("writing file %q: %w", name, err)
	}
	return nil
}

// Open returns a reader for the named file.
func (s *Store) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	path, err := s.resolve(name)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

// Archive moves the named file under the archived/ prefix. A missing source
// is not an error; the record may already have been moved.
func (s *Store) Archive(ctx context.Context, name string) error {
	src, err := s.resolve(name)
	if err != nil {
		return err
	}
	dst := filepath.Join(s.baseDir, archivedPrefix, filepath.Base(name))
	if err := os.Rename(src, dst); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("archiving file %q: %w", name, err)
	}
	return nil
}

// Remove deletes the named file. A missing file is not an error.
func (s *Store) Remove(ctx context.Context, name string) error {
	path, err := s.resolve(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing file %q: %w", name, err)
	}
	return nil
}

func (s *Store) resolve(name string) (string, error) {
	cleaned := filepath.Base(strings.TrimSpace(name))
	if cleaned == "" || cleaned == "." || cleaned == string(filepath.Separator) {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	return filepath.Join(s.baseDir, cleaned), nil
}
