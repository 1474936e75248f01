package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

type fileSource struct {
	root string
}

// NewFileSource serves photos from a local directory, e.g. a synced camera roll.
func NewFileSource(dir string) (PhotoSource, error) {
	if dir == "" {
		return nil, errors.New("photo directory is required")
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open photo directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("photo directory %s is not a directory", dir)
	}
	return &fileSource{root: dir}, nil
}

func (s *fileSource) Open(ctx context.Context, ref string) (*Photo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := filepath.ToSlash(strings.TrimSpace(ref))
	if name == "" || !fs.ValidPath(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRef, ref)
	}

	f, err := os.Open(filepath.Join(s.root, filepath.FromSlash(name)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrPhotoNotFound, name)
		}
		return nil, fmt.Errorf("failed to open photo %s: %w", name, err)
	}

	photo, err := NewPhoto(f, "")
	if err != nil {
		f.Close()
		return nil, err
	}
	return photo, nil
}
