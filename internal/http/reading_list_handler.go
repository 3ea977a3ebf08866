package http

import (
	"net/http"
	"net/url"
	"strings"

	"libraryapi/internal/httpx"
	"libraryapi/internal/usecase"
)

type ReadingListHandler struct {
	lists *usecase.ReadingLists
}

func NewReadingListHandler(lists *usecase.ReadingLists) *ReadingListHandler {
	return &ReadingListHandler{lists: lists}
}

// parseListPath extracts the list name (and a trailing /books segment) from
// paths under /users/readinglists/.
func parseListPath(path string) (name string, isBooks bool, ok bool) {
	const prefix = "/users/readinglists/"
	if !strings.HasPrefix(path, prefix) {
		return "", false, false
	}
	rest := strings.TrimPrefix(path, prefix)
	parts := strings.Split(rest, "/")
	switch len(parts) {
	case 1:
		name = parts[0]
	case 2:
		if parts[1] != "books" {
			return "", false, false
		}
		name = parts[0]
		isBooks = true
	default:
		return "", false, false
	}
	decoded, err := url.PathUnescape(name)
	if err != nil {
		return "", false, false
	}
	return decoded, isBooks, true
}

// Create handles POST /users/readinglists?username=&name=.
func (h *ReadingListHandler) Create(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view, err := h.lists.Create(r.Context(), q.Get("username"), q.Get("name"))
	if err != nil {
		httpx.JSONFromError(w, err)
		return
	}
	httpx.JSONSuccess(w, view, nil)
}

// Get handles GET /users/readinglists/?username=.
func (h *ReadingListHandler) Get(w http.ResponseWriter, r *http.Request) {
	views, err := h.lists.Get(r.Context(), r.URL.Query().Get("username"))
	if err != nil {
		httpx.JSONFromError(w, err)
		return
	}
	httpx.JSONSuccess(w, views, nil)
}

// Delete handles DELETE /users/readinglists/{name}?username= and returns the
// pre-deletion contents.
func (h *ReadingListHandler) Delete(w http.ResponseWriter, r *http.Request) {
	name, isBooks, ok := parseListPath(r.URL.Path)
	if !ok || isBooks {
		http.NotFound(w, r)
		return
	}

	view, err := h.lists.Delete(r.Context(), r.URL.Query().Get("username"), name)
	if err != nil {
		httpx.JSONFromError(w, err)
		return
	}
	httpx.JSONSuccess(w, view, nil)
}

// AddBook handles POST /users/readinglists/{name}/books?username=&book_id=.
func (h *ReadingListHandler) AddBook(w http.ResponseWriter, r *http.Request) {
	name, isBooks, ok := parseListPath(r.URL.Path)
	if !ok || !isBooks {
		http.NotFound(w, r)
		return
	}

	q := r.URL.Query()
	view, err := h.lists.AddBook(r.Context(), q.Get("username"), name, q.Get("book_id"))
	if err != nil {
		httpx.JSONFromError(w, err)
		return
	}
	httpx.JSONSuccess(w, view, nil)
}
