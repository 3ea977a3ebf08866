package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"libraryapi/internal/auth"
	"libraryapi/internal/httpx"

	"github.com/stretchr/testify/assert"
)

func TestAuthMiddleware(t *testing.T) {
	secret := "test-secret"
	var gotUsername string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUsername = httpx.UsernameFrom(r)
		w.WriteHeader(http.StatusOK)
	})
	protected := httpx.AuthMiddleware(secret)(next)

	t.Run("valid token passes identity through", func(t *testing.T) {
		token, err := auth.GenerateToken(secret, "alice", time.Hour)
		assert.NoError(t, err)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/users/bookshelf", nil)
		r.Header.Set("Authorization", "Bearer "+token)

		protected.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "alice", gotUsername)
	})

	t.Run("missing header is not authenticated", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/users/bookshelf", nil)

		protected.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Not authenticated")
	})

	t.Run("non-bearer scheme is not authenticated", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/users/bookshelf", nil)
		r.Header.Set("Authorization", "Basic dXNlcjpwdw==")

		protected.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token cannot be validated", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/users/bookshelf", nil)
		r.Header.Set("Authorization", "Bearer not.a.token")

		protected.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Could not validate credentials")
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		token, err := auth.GenerateToken(secret, "alice", -time.Minute)
		assert.NoError(t, err)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/users/bookshelf", nil)
		r.Header.Set("Authorization", "Bearer "+token)

		protected.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
