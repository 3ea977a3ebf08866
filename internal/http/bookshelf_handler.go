package http

import (
	"encoding/json"
	"net/http"

	"libraryapi/internal/entity"
	"libraryapi/internal/httpx"
	"libraryapi/internal/usecase"
)

type BookshelfHandler struct {
	shelf *usecase.Bookshelf
}

func NewBookshelfHandler(shelf *usecase.Bookshelf) *BookshelfHandler {
	return &BookshelfHandler{shelf: shelf}
}

// Add handles POST /users/bookshelf?username=&book_id=&status=. Status
// defaults to to_read when the parameter is absent.
func (h *BookshelfHandler) Add(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	username := q.Get("username")
	bookID := q.Get("book_id")
	status := entity.StatusToRead
	if q.Has("status") {
		status = q.Get("status")
	}

	view, err := h.shelf.Add(r.Context(), username, bookID, status)
	if err != nil {
		httpx.JSONFromError(w, err)
		return
	}
	httpx.JSONSuccess(w, view, nil)
}

// Get handles GET /users/bookshelf?username=.
func (h *BookshelfHandler) Get(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")

	view, err := h.shelf.Get(r.Context(), username)
	if err != nil {
		httpx.JSONFromError(w, err)
		return
	}
	httpx.JSONSuccess(w, view, nil)
}

type updateStatusReq struct {
	NewStatus string `json:"new_status" validate:"required"`
}

// UpdateStatus handles PUT /users/bookshelf?username=&book_id= with the new
// status in the body.
func (h *BookshelfHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	username := q.Get("username")
	bookID := q.Get("book_id")

	var req updateStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if details := ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	view, err := h.shelf.UpdateStatus(r.Context(), username, bookID, req.NewStatus)
	if err != nil {
		httpx.JSONFromError(w, err)
		return
	}
	httpx.JSONSuccess(w, view, nil)
}
