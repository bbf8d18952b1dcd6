// Package storage defines where uploaded files such as profile pictures are
// kept. Implementations live in the localstore and s3store subpackages.
package storage

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/pkg/errors"
)

var ErrInvalidKey = errors.New("invalid object key")

// ObjectStore saves objects under a slash separated key and reports the
// public URL of the stored object.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (url string, err error)
}

// CleanKey rejects keys that are empty, absolute or escape their root, and
// returns the key in canonical form.
func CleanKey(key string) (string, error) {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return "", ErrInvalidKey
	}
	cleaned := path.Clean(key)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", ErrInvalidKey
	}
	return cleaned, nil
}
