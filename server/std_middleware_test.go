package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jrsteele09/mobile-musician-api/internal/config"
	"github.com/stretchr/testify/require"
)

func newMiddlewareServer(t *testing.T) *Server {
	t.Helper()
	t.Setenv("BACKEND_CORS_ORIGINS", "http://localhost:3000,http://localhost:19006")
	cfg, err := config.New()
	require.NoError(t, err)
	return &Server{config: cfg}
}

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func TestChainMiddleware_Order(t *testing.T) {
	var order []string
	mark := func(name string) func(http.HandlerFunc) http.HandlerFunc {
		return func(next http.HandlerFunc) http.HandlerFunc {
			return func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next(w, r)
			}
		}
	}

	h := ChainMiddleware(func(http.ResponseWriter, *http.Request) { order = append(order, "handler") }, mark("first"), mark("second"))
	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"first", "second", "handler"}, order)
}

func TestCorsMiddleware(t *testing.T) {
	s := newMiddlewareServer(t)
	h := s.CorsMiddleware(okHandler)

	t.Run("no origin", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()
		h(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
		require.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("foreign origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://evil.example")
		rec := httptest.NewRecorder()
		h(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/users/me", nil)
		req.Header.Set("Origin", "http://localhost:19006")
		req.Header.Set("Access-Control-Request-Method", http.MethodPut)
		rec := httptest.NewRecorder()
		h(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "http://localhost:19006", rec.Header().Get("Access-Control-Allow-Origin"))
		require.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPut)
		require.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
		require.Equal(t, "86400", rec.Header().Get("Access-Control-Max-Age"))
	})

	t.Run("wildcard", func(t *testing.T) {
		t.Setenv("BACKEND_CORS_ORIGINS", "*")
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://anywhere.example")
		rec := httptest.NewRecorder()
		h(rec, req)
		require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		require.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
	})
}

func TestRecoverMiddleware(t *testing.T) {
	s := newMiddlewareServer(t)
	h := ChainMiddleware(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}, s.RecoverMiddleware, s.LoggingMiddleware)

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"status":"error","code":500,"message":"internal server error","data":null,"meta":null,"errors":null}`, rec.Body.String())
}

func TestRecoverMiddleware_ResponseAlreadyStarted(t *testing.T) {
	s := newMiddlewareServer(t)
	h := s.RecoverMiddleware(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("partial"))
		panic("late failure")
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Equal(t, "partial", rec.Body.String())
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	s := newMiddlewareServer(t)
	rec := httptest.NewRecorder()
	s.SecurityHeadersMiddleware(okHandler)(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, "SAMEORIGIN", rec.Header().Get("X-Frame-Options"))
	require.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestLoggingMiddleware_RecordsStatus(t *testing.T) {
	s := newMiddlewareServer(t)
	var seen *statusRecorder
	h := s.LoggingMiddleware(func(w http.ResponseWriter, r *http.Request) {
		seen = w.(*statusRecorder)
		w.WriteHeader(http.StatusTeapot)
	})
	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusTeapot, seen.status)
}

func TestColourMethod(t *testing.T) {
	require.Equal(t, colourGet+" GET    "+colourReset, colourMethod(http.MethodGet))
	require.Equal(t, colourOther+" OPTIONS"+colourReset, colourMethod(http.MethodOptions))
}
