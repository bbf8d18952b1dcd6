package server

import (
	"net/http"
	"os"
	"strings"
)

// noListingFS hides directories so the file server never renders an index.
type noListingFS struct {
	http.FileSystem
}

func (fsys noListingFS) Open(name string) (http.File, error) {
	f, err := fsys.FileSystem.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, os.ErrNotExist
	}
	return f, nil
}

// StaticHandler serves uploaded files from the static directory under /static/.
func (s *Server) StaticHandler() http.Handler {
	fileServer := http.FileServer(noListingFS{http.Dir(s.staticDir)})
	return http.StripPrefix(strings.TrimSuffix(RouteStatic, "/"), fileServer)
}
