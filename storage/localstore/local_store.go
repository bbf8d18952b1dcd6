package localstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jrsteele09/mobile-musician-api/storage"
	"github.com/pkg/errors"
)

// URLPrefix is the path the server serves the store's directory under.
const URLPrefix = "/static/"

var _ storage.ObjectStore = (*Store)(nil)

// Store writes objects beneath a directory on disk.
type Store struct {
	dir     string
	baseURL string
}

// New creates the directory if needed. baseURL is the externally visible
// server address, e.g. http://localhost:8000.
func New(dir, baseURL string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("[localstore.New] directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "[localstore.New] creating directory")
	}
	return &Store{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// Put writes at most size bytes of body to <dir>/<key>. The file only
// appears once fully written.
func (s *Store) Put(_ context.Context, key, _ string, body io.Reader, size int64) (string, error) {
	key, err := storage.CleanKey(key)
	if err != nil {
		return "", err
	}

	target := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", errors.Wrap(err, "Store.Put mkdir")
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		return "", errors.Wrap(err, "Store.Put create")
	}
	defer os.Remove(tmp.Name())

	reader := body
	if size > 0 {
		reader = io.LimitReader(body, size)
	}
	if _, err := io.Copy(tmp, reader); err != nil {
		_ = tmp.Close()
		return "", errors.Wrap(err, "Store.Put write")
	}
	if err := tmp.Close(); err != nil {
		return "", errors.Wrap(err, "Store.Put close")
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return "", errors.Wrap(err, "Store.Put rename")
	}

	return s.baseURL + URLPrefix + key, nil
}
