package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/roadvice/roadvice/pkg/httpx"
	"github.com/roadvice/roadvice/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newAuthedHandler(t *testing.T, signer *jwtx.Signer, extra ...httpx.Middleware) http.Handler {
	t.Helper()

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(httpx.UserIDFromContext(r.Context())))
	})
	chain := append([]httpx.Middleware{httpx.AuthnMiddleware(signer)}, extra...)
	return httpx.Chain(inner, chain...)
}

func TestAuthnMiddleware(t *testing.T) {
	signer := jwtx.NewSigner([]byte("secret"), "test-issuer", time.Minute)
	handler := newAuthedHandler(t, signer)

	t.Run("valid token injects principal", func(t *testing.T) {
		raw, err := signer.Sign("user-1", "alice", []string{"USER"}, time.Now())
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+raw)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "user-1", rec.Body.String())
	})

	t.Run("missing token rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer nonsense")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireAnyRole(t *testing.T) {
	signer := jwtx.NewSigner([]byte("secret"), "test-issuer", time.Minute)
	handler := newAuthedHandler(t, signer, httpx.RequireAnyRole("ADMIN"))

	t.Run("holder of the role passes", func(t *testing.T) {
		raw, err := signer.Sign("user-1", "alice", []string{"ADMIN", "USER"}, time.Now())
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+raw)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing role forbidden", func(t *testing.T) {
		raw, err := signer.Sign("user-2", "bob", []string{"USER"}, time.Now())
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+raw)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusForbidden, rec.Code)
	})
}
