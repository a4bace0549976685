package viewsource

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DiskSource serves views from a directory on the local filesystem. View
// names are slash-separated relative paths under the directory.
type DiskSource struct {
	dir     string
	maxSize int64
}

// NewDiskSource creates a DiskSource rooted at dir.
//
// Parameters:
//   - dir: Directory holding the view files
//   - maxSize: Maximum view size in bytes (0 = no limit)
func NewDiskSource(dir string, maxSize int64) (*DiskSource, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	return &DiskSource{dir: abs, maxSize: maxSize}, nil
}

// Fetch reads the named view. Names resolving outside the root directory
// are treated as not found.
func (s *DiskSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	path, ok := s.resolve(name)
	if !ok {
		return nil, ErrNotFound
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if s.maxSize > 0 {
		r = io.LimitReader(f, s.maxSize+1) // +1 to detect overflow
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if s.maxSize > 0 && int64(len(data)) > s.maxSize {
		return nil, ErrTooLarge
	}
	return data, nil
}

// resolve maps a view name to an absolute path, rejecting anything that
// escapes the root directory.
func (s *DiskSource) resolve(name string) (string, bool) {
	if name == "" || strings.Contains(name, "\\") {
		return "", false
	}
	path := filepath.Join(s.dir, filepath.FromSlash(name))
	if path != s.dir && !strings.HasPrefix(path, s.dir+string(filepath.Separator)) {
		return "", false
	}
	return path, true
}
