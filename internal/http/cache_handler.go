package http

import (
	"net/http"

	"libraryapi/internal/cache"
	"libraryapi/internal/httpx"
)

// CacheHandler exposes the OpenLibrary search cache's introspection endpoints.
type CacheHandler struct {
	cache *cache.SearchCache
}

func NewCacheHandler(c *cache.SearchCache) *CacheHandler {
	return &CacheHandler{cache: c}
}

// Info handles GET /cache/openlibrary/info.
func (h *CacheHandler) Info(w http.ResponseWriter, r *http.Request) {
	httpx.JSONSuccess(w, h.cache.Info(), nil)
}

// Clear handles POST /cache/openlibrary/clear.
func (h *CacheHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.cache.Clear()
	httpx.JSONSuccess(w, map[string]string{"detail": "Cache cleared."}, nil)
}
