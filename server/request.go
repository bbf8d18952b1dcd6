package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

const maxJSONBodySize = 1 << 20

// decodeJSON reads a JSON body of at most 1 MiB into dst. Unknown members
// are ignored.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return err
		}
		if errors.Is(err, io.EOF) {
			return &bodyError{err: errors.New("body is empty")}
		}
		return &bodyError{err: err}
	}
	return nil
}

func isJSONRequest(r *http.Request) bool {
	contentType := strings.ToLower(r.Header.Get("Content-Type"))
	return strings.HasPrefix(contentType, "application/json")
}

// currentIdentityID is only called behind RequireAuth.
func currentIdentityID(r *http.Request) string {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		return ""
	}
	return identity.UserID
}
