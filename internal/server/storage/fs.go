package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/dochost/internal/common"
	"github.com/dmitrijs2005/dochost/internal/filex"
	"github.com/dmitrijs2005/dochost/internal/server/models"
)

// FSStore keeps each blob as a regular file in a single directory.
type FSStore struct {
	dir string
}

// NewFSStore creates dir if needed and returns a store rooted there.
func NewFSStore(dir string) (*FSStore, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStorage, err)
	}
	return &FSStore{dir: abs}, nil
}

// Dir is the absolute storage directory.
func (s *FSStore) Dir() string {
	return s.dir
}

func (s *FSStore) path(id string) (string, error) {
	id, err := SanitizeID(id)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.dir, id), nil
}

func (s *FSStore) Stat(ctx context.Context, id string) (models.FileInfo, error) {
	p, err := s.path(id)
	if err != nil {
		return models.FileInfo{}, err
	}

	fi, err := os.Stat(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.FileInfo{}, fmt.Errorf("%s: %w", id, common.ErrNotFound)
		}
		return models.FileInfo{}, fmt.Errorf("%w: stat %s: %v", common.ErrStorage, id, err)
	}
	if !fi.Mode().IsRegular() {
		return models.FileInfo{}, fmt.Errorf("%s: %w", id, common.ErrNotFound)
	}

	return models.FileInfo{ID: id, Size: fi.Size(), ModTime: fi.ModTime()}, nil
}

func (s *FSStore) Get(ctx context.Context, id string) ([]byte, error) {
	if _, err := s.Stat(ctx, id); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(s.dir, id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", id, common.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: read %s: %v", common.ErrStorage, id, err)
	}
	return data, nil
}

func (s *FSStore) Put(ctx context.Context, id string, data []byte) error {
	if _, err := s.path(id); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrStorage, err)
	}

	if err := filex.WriteFileAtomic(s.dir, id, data, 0o640); err != nil {
		return fmt.Errorf("%w: write %s: %v", common.ErrStorage, id, err)
	}
	return nil
}
