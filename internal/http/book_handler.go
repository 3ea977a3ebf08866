package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"libraryapi/internal/httpx"
	"libraryapi/internal/usecase"
)

type BookHandler struct {
	books *usecase.Books
}

func NewBookHandler(books *usecase.Books) *BookHandler {
	return &BookHandler{books: books}
}

// List handles GET /books?page=N.
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	books, err := h.books.List(r.Context(), page)
	if err != nil {
		httpx.JSONFromError(w, err)
		return
	}
	httpx.JSONSuccess(w, books, map[string]any{
		"page":      page,
		"page_size": 20,
	})
}

type createBookReq struct {
	Title         string `json:"title" validate:"required"`
	Author        string `json:"author" validate:"required"`
	ISBN          string `json:"isbn" validate:"required"`
	Genre         string `json:"genre" validate:"required"`
	Description   string `json:"description" validate:"required"`
	PublishedDate string `json:"published_date"`
}

// Create handles POST /books.
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if details := ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	in := usecase.BookInput{
		Title:       req.Title,
		Author:      req.Author,
		ISBN:        req.ISBN,
		Genre:       req.Genre,
		Description: req.Description,
	}
	if req.PublishedDate != "" {
		published, err := time.Parse("2006-01-02", req.PublishedDate)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Published date must be in YYYY-MM-DD format.", nil)
			return
		}
		in.PublishedDate = &published
	}

	book, err := h.books.Create(r.Context(), in)
	if err != nil {
		httpx.JSONFromError(w, err)
		return
	}
	httpx.JSONSuccessCreated(w, book)
}

// Delete handles DELETE /books/{id} and returns the removed snapshot.
func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	// crude path param extraction with net/http's ServeMux: /books/{id}
	const prefix = "/books/"
	id := strings.TrimPrefix(r.URL.Path, prefix)
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	book, err := h.books.Delete(r.Context(), id)
	if err != nil {
		httpx.JSONFromError(w, err)
		return
	}
	httpx.JSONSuccess(w, book, nil)
}

// Search handles GET /books/search?title=&author=&limit=&external=. Local
// matches always come from the catalog; external=true augments them through
// the cache-backed OpenLibrary lookup.
func (h *BookHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	title := q.Get("title")
	author := q.Get("author")
	external := q.Get("external") == "true"

	limit := 5
	if raw := q.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Limit must be an integer.", nil)
			return
		}
		limit = parsed
	}

	result, err := h.books.Search(r.Context(), title, author, limit, external)
	if err != nil {
		httpx.JSONFromError(w, err)
		return
	}
	httpx.JSONSuccess(w, result, nil)
}
