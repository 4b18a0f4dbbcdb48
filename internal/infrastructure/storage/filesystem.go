// Package storage implements the object storage port on the local
// filesystem. Keys map to paths under a bucket directory.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/manganova/api/internal/application/ports"
)

// Compile-time check
var _ ports.ObjectStorage = (*FileSystem)(nil)

// ErrInvalidKey rejects keys that would escape the bucket directory.
var ErrInvalidKey = errors.New("invalid object key")

// FileSystem stores objects as files under <root>/<bucket>/<key>.
type FileSystem struct {
	base string
}

// NewFileSystem creates the bucket directory if needed.
func NewFileSystem(root, bucket string) (*FileSystem, error) {
	base := filepath.Join(root, bucket)
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileSystem{base: base}, nil
}

func (s *FileSystem) path(key string) (string, error) {
	if key == "" || strings.Contains(key, "..") || filepath.IsAbs(key) {
		return "", ErrInvalidKey
	}
	return filepath.Join(s.base, filepath.FromSlash(key)), nil
}

// Put writes the object, creating parent directories as needed. The write
// goes through a temp file and rename so readers never see partial data.
// The content type is carried by the key's extension, not stored.
func (s *FileSystem) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.path(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create object directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write object: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to store object: %w", err)
	}

	return nil
}

// Get reads an object. A missing key returns ports.ErrNotFound.
func (s *FileSystem) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := s.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read object: %w", err)
	}

	return data, nil
}

// Delete removes an object. Deleting a missing key is a no-op.
func (s *FileSystem) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.path(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete object: %w", err)
	}

	return nil
}
