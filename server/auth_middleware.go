package server

import (
	"context"
	"net/http"

	"github.com/jrsteele09/mobile-musician-api/auth"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyIdentity stores the *auth.Identity of the caller
	ContextKeyIdentity ContextKey = "identity"
)

// IdentityResolver turns an Authorization header into the caller's identity.
type IdentityResolver interface {
	Resolve(ctx context.Context, authorization string) (*auth.Identity, error)
}

// RequireAuth is middleware for API routes that need a Bearer access token.
// Requests without a resolvable identity never reach the handler.
func (s *Server) RequireAuth() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			identity, err := s.resolver.Resolve(r.Context(), r.Header.Get("Authorization"))
			if err != nil {
				writeError(w, r, err)
				return
			}
			ctx := context.WithValue(r.Context(), ContextKeyIdentity, identity)
			next(w, r.WithContext(ctx))
		}
	}
}

// IdentityFromContext returns the identity stored by RequireAuth.
func IdentityFromContext(ctx context.Context) (*auth.Identity, bool) {
	identity, ok := ctx.Value(ContextKeyIdentity).(*auth.Identity)
	return identity, ok && identity != nil
}
