package server

import (
	"net/http"

	"github.com/jrsteele09/mobile-musician-api/envelope"
)

func (s *Server) ListInstrumentsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.catalog.ListInstruments(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		envelope.Success(w, http.StatusOK, "instruments retrieved", list)
	}
}

func (s *Server) ListGenresHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.catalog.ListGenres(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		envelope.Success(w, http.StatusOK, "genres retrieved", list)
	}
}
