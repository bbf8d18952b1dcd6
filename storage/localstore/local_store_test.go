package localstore_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jrsteele09/mobile-musician-api/storage"
	"github.com/jrsteele09/mobile-musician-api/storage/localstore"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	_, err := localstore.New("", "http://localhost:8000")
	require.ErrorContains(t, err, "directory is required")

	dir := filepath.Join(t.TempDir(), "static")
	s, err := localstore.New(dir, "http://localhost:8000/")
	require.NoError(t, err)
	require.Equal(t, dir, s.Dir())
	require.DirExists(t, dir)
}

func TestPut(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := localstore.New(dir, "http://localhost:8000/")
	require.NoError(t, err)

	t.Run("writes the file and returns its URL", func(t *testing.T) {
		url, err := s.Put(ctx, "profiles/u1/pic.png", "image/png", strings.NewReader("png-bytes"), 9)
		require.NoError(t, err)
		require.Equal(t, "http://localhost:8000/static/profiles/u1/pic.png", url)

		body, err := os.ReadFile(filepath.Join(dir, "profiles", "u1", "pic.png"))
		require.NoError(t, err)
		require.Equal(t, "png-bytes", string(body))

		leftovers, err := filepath.Glob(filepath.Join(dir, "profiles", "u1", ".upload-*"))
		require.NoError(t, err)
		require.Empty(t, leftovers)
	})

	t.Run("stops at the declared size", func(t *testing.T) {
		_, err := s.Put(ctx, "profiles/u1/short.png", "image/png", strings.NewReader("0123456789"), 4)
		require.NoError(t, err)

		body, err := os.ReadFile(filepath.Join(dir, "profiles", "u1", "short.png"))
		require.NoError(t, err)
		require.Equal(t, "0123", string(body))
	})

	t.Run("rejects keys outside the directory", func(t *testing.T) {
		_, err := s.Put(ctx, "../escape.png", "image/png", strings.NewReader("x"), 1)
		require.ErrorIs(t, err, storage.ErrInvalidKey)
	})
}
