package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/welingtontavares15-hue/diversey-solicitacoes-pwa/internal/domain/shared"
)

// FileStorage stores documents on the local filesystem
type FileStorage struct {
	// Perm is the mode of newly created files
	Perm fs.FileMode
}

// NewFileStorage creates a new FileStorage
func NewFileStorage() *FileStorage {
	return &FileStorage{
		Perm: 0o644,
	}
}

// Read returns the file content. A path that is not a readable regular
// file is reported as FILE_NOT_FOUND.
func (s *FileStorage) Read(ctx context.Context, loc Location) ([]byte, error) {
	if loc.IsRemote() {
		return nil, fmt.Errorf("%s is not a local path", loc)
	}

	info, err := os.Stat(loc.Raw)
	if err != nil || !info.Mode().IsRegular() {
		return nil, shared.FileNotFound(loc.Raw)
	}

	data, err := os.ReadFile(loc.Raw)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return nil, shared.FileNotFound(loc.Raw)
		}
		return nil, fmt.Errorf("failed to read %s: %w", loc, err)
	}
	return data, nil
}

// Write creates or truncates the file. Parent directories must exist.
func (s *FileStorage) Write(ctx context.Context, loc Location, data []byte) error {
	if loc.IsRemote() {
		return fmt.Errorf("%s is not a local path", loc)
	}
	if err := os.WriteFile(loc.Raw, data, s.Perm); err != nil {
		return fmt.Errorf("failed to write %s: %w", loc, err)
	}
	return nil
}
