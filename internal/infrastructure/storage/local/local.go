// Package local stores uploaded images on the local filesystem. Files are
// served back by the HTTP layer under the same URL prefix.
package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/menuhub/restaurant-api/internal/infrastructure/storage"
)

// Store writes images below Dir and returns paths prefixed with URLPrefix.
type Store struct {
	Dir       string
	URLPrefix string
}

func New(dir, urlPrefix string) *Store {
	return &Store{Dir: dir, URLPrefix: urlPrefix}
}

func (s *Store) Save(_ context.Context, key, filename string, r io.Reader) (string, error) {
	name, _, err := storage.ObjectName(key, filename)
	if err != nil {
		return "", err
	}

	dst := filepath.Join(s.Dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}

	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create image: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(dst)
		return "", fmt.Errorf("write image: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close image: %w", err)
	}

	return path.Join(s.URLPrefix, name), nil
}

// Remove deletes the file behind a path returned by Save. Missing files are
// not an error.
func (s *Store) Remove(_ context.Context, p string) error {
	rel, ok := strings.CutPrefix(p, strings.TrimSuffix(s.URLPrefix, "/")+"/")
	if !ok || rel == "" || strings.Contains(rel, "..") {
		return fmt.Errorf("image path %q outside %s", p, s.URLPrefix)
	}
	if err := os.Remove(filepath.Join(s.Dir, filepath.FromSlash(rel))); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove image: %w", err)
	}
	return nil
}
