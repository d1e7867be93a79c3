// Package filex contains filesystem helpers for the document store.
package filex

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// EnsureDir resolves dir against the working directory when it is relative,
// creates it if absent and returns the absolute path. Calling it again on an
// existing directory is a no-op.
func EnsureDir(dir string) (string, error) {
	if !filepath.IsAbs(dir) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		dir = filepath.Join(cwd, dir)
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// TempName is the hidden sibling used while name is being written.
func TempName(name string) string {
	return fmt.Sprintf(".%s.%s.tmp", name, uuid.NewString())
}

// WriteFileAtomic replaces dir/name with data. The bytes go to a temporary
// file in the same directory which is synced and then renamed over the
// target, so readers see either the old or the new content, never a prefix.
func WriteFileAtomic(dir, name string, data []byte, perm os.FileMode) (err error) {
	if _, err := EnsureDir(dir); err != nil {
		return err
	}

	tmpPath := filepath.Join(dir, TempName(name))
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}

	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = f.Write(data); err != nil {
		return fmt.Errorf("write temp: %w", err)
	}
	if err = f.Sync(); err != nil {
		return fmt.Errorf("sync temp: %w", err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	if err = os.Rename(tmpPath, filepath.Join(dir, name)); err != nil {
		return fmt.Errorf("rename: %w", err)
	}

	return nil
}
