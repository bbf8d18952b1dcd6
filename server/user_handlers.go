package server

import (
	"net/http"

	"github.com/jrsteele09/mobile-musician-api/catalog"
	"github.com/jrsteele09/mobile-musician-api/envelope"
	"github.com/jrsteele09/mobile-musician-api/profiles"
	"github.com/pkg/errors"
)

// multipartOverhead is allowed on top of the picture size for boundaries
// and part headers.
const multipartOverhead = 64 << 10

// InstrumentsBody is the request body of /users/me/instruments.
type InstrumentsBody struct {
	Instruments []catalog.Selection `json:"instruments"`
}

// GenresBody is the request body of /users/me/genres.
type GenresBody struct {
	Genres []string `json:"genres"`
}

func (s *Server) MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := s.profiles.Me(r.Context(), currentIdentityID(r))
		if err != nil {
			writeError(w, r, err)
			return
		}
		envelope.Success(w, http.StatusOK, "profile retrieved", user)
	}
}

// UpdateMeHandler serves both PUT and PATCH. Members left out of the body
// keep their current value.
func (s *Server) UpdateMeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req profiles.UpdateRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		user, err := s.profiles.Update(r.Context(), currentIdentityID(r), req)
		if err != nil {
			writeError(w, r, err)
			return
		}
		envelope.Success(w, http.StatusOK, "profile updated", user)
	}
}

func (s *Server) UploadPictureHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		maxSize := s.profiles.MaxPictureSize()
		r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)
		if err := r.ParseMultipartForm(maxSize); err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				writeError(w, r, err)
				return
			}
			writeError(w, r, &bodyError{err: err})
			return
		}
		defer func() {
			_ = r.MultipartForm.RemoveAll()
		}()

		file, header, err := r.FormFile("file")
		if err != nil {
			envelope.Error(w, http.StatusUnprocessableEntity, "validation error",
				envelope.FieldError{Field: "file", Message: "cannot be blank", Type: "validation_required"})
			return
		}
		defer file.Close()

		user, err := s.profiles.UploadPicture(r.Context(), currentIdentityID(r),
			header.Filename, header.Header.Get("Content-Type"), file, header.Size)
		if err != nil {
			writeError(w, r, err)
			return
		}
		envelope.Success(w, http.StatusOK, "profile picture updated", user)
	}
}

func (s *Server) MyInstrumentsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.profiles.Instruments(r.Context(), currentIdentityID(r))
		if err != nil {
			writeError(w, r, err)
			return
		}
		envelope.Success(w, http.StatusOK, "instruments retrieved", list)
	}
}

func (s *Server) SetMyInstrumentsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body InstrumentsBody
		if err := decodeJSON(w, r, &body); err != nil {
			writeError(w, r, err)
			return
		}
		list, err := s.profiles.SetInstruments(r.Context(), currentIdentityID(r), body.Instruments)
		if err != nil {
			writeError(w, r, err)
			return
		}
		envelope.Success(w, http.StatusOK, "instruments updated", list)
	}
}

func (s *Server) MyGenresHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.profiles.Genres(r.Context(), currentIdentityID(r))
		if err != nil {
			writeError(w, r, err)
			return
		}
		envelope.Success(w, http.StatusOK, "genres retrieved", list)
	}
}

func (s *Server) SetMyGenresHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body GenresBody
		if err := decodeJSON(w, r, &body); err != nil {
			writeError(w, r, err)
			return
		}
		list, err := s.profiles.SetGenres(r.Context(), currentIdentityID(r), body.Genres)
		if err != nil {
			writeError(w, r, err)
			return
		}
		envelope.Success(w, http.StatusOK, "genres updated", list)
	}
}

// PublicProfileHandler needs no token. Deactivated accounts are not found.
func (s *Server) PublicProfileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := s.profiles.Public(r.Context(), r.PathValue("id"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		envelope.Success(w, http.StatusOK, "profile retrieved", profile)
	}
}
