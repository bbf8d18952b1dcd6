package server

import (
	"net/http"

	"github.com/jrsteele09/mobile-musician-api/auth"
	"github.com/jrsteele09/mobile-musician-api/envelope"
	"github.com/pkg/errors"
)

// RegisteredUser is the payload returned by registration.
type RegisteredUser struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

func (s *Server) RegisterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req auth.RegistrationRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, err)
			return
		}

		user, err := s.auth.Register(r.Context(), req)
		if err != nil {
			writeError(w, r, err)
			return
		}

		envelope.Success(w, http.StatusCreated, "user created successfully", RegisteredUser{
			UserID:   user.ID,
			Username: user.Username,
		})
	}
}

// LoginHandler accepts the OAuth2 password form (email and password fields,
// urlencoded or multipart) or the same pair as a JSON object.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := loginRequest(w, r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		tokens, err := s.auth.Login(r.Context(), req)
		if err != nil {
			writeError(w, r, err)
			return
		}

		w.Header().Set("Cache-Control", "no-store")
		envelope.Success(w, http.StatusOK, "authentication successful", tokens)
	}
}

func loginRequest(w http.ResponseWriter, r *http.Request) (auth.LoginRequest, error) {
	var req auth.LoginRequest
	if isJSONRequest(r) {
		err := decodeJSON(w, r, &req)
		return req, err
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodySize)
	if err := r.ParseMultipartForm(maxJSONBodySize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return req, err
		}
		return req, &bodyError{err: err}
	}
	req.Email = r.PostForm.Get("email")
	req.Password = r.PostForm.Get("password")
	return req, nil
}

// LogoutHandler acknowledges the logout. The token stays valid until it expires.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := IdentityFromContext(r.Context())
		if err := s.auth.Logout(r.Context(), identity); err != nil {
			writeError(w, r, err)
			return
		}
		envelope.Success(w, http.StatusOK, "logout successful", nil)
	}
}
