package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"
)

// FileBackend stores each key as <dir>/<key>.json on an afero filesystem.
// Writes go to a temp file that is renamed into place, so a failed write
// keeps the previous value.
type FileBackend struct {
	fs  afero.Fs
	dir string
	mu  sync.Mutex
}

func NewFileBackend(fs afero.Fs, dir string) (*FileBackend, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &FileBackend{fs: fs, dir: dir}, nil
}

func (f *FileBackend) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, ".") {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(f.dir, key+".json"), nil
}

func (f *FileBackend) Get(key string) ([]byte, bool, error) {
	p, err := f.path(key)
	if err != nil {
		return nil, false, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := afero.ReadFile(f.fs, p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read %s: %w", p, err)
	}
	return data, true, nil
}

func (f *FileBackend) Set(key string, value []byte) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	tmp := p + ".tmp"
	if err := afero.WriteFile(f.fs, tmp, value, 0o644); err != nil {
		_ = f.fs.Remove(tmp)
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := f.fs.Rename(tmp, p); err != nil {
		_ = f.fs.Remove(tmp)
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}

func (f *FileBackend) Close() error {
	return nil
}
