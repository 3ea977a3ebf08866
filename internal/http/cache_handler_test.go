package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"libraryapi/internal/cache"
	"libraryapi/internal/platform/openlibrary"

	"github.com/stretchr/testify/assert"
)

func newTestCache() *cache.SearchCache {
	return cache.NewSearchCache(4, func(ctx context.Context, query, author string, limit int) (*openlibrary.SearchResult, error) {
		return &openlibrary.SearchResult{NumFound: 1}, nil
	})
}

func TestCacheHandler_Info(t *testing.T) {
	c := newTestCache()
	handler := NewCacheHandler(c)

	_, _ = c.Get(context.Background(), "dune", "", 5)
	_, _ = c.Get(context.Background(), "dune", "", 5)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/cache/openlibrary/info", nil)
	handler.Info(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"hits":1`)
	assert.Contains(t, w.Body.String(), `"misses":1`)
	assert.Contains(t, w.Body.String(), `"maxsize":4`)
	assert.Contains(t, w.Body.String(), `"currsize":1`)
}

func TestCacheHandler_Clear(t *testing.T) {
	c := newTestCache()
	handler := NewCacheHandler(c)

	_, _ = c.Get(context.Background(), "dune", "", 5)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/cache/openlibrary/clear", nil)
	handler.Clear(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Cache cleared.")

	info := c.Info()
	assert.Equal(t, uint64(0), info.Hits)
	assert.Equal(t, uint64(0), info.Misses)
	assert.Equal(t, 0, info.CurrSize)
}
