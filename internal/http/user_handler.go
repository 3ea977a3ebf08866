package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"libraryapi/internal/httpx"
	"libraryapi/internal/usecase"
)

type UserHandler struct {
	users *usecase.Users
}

func NewUserHandler(users *usecase.Users) *UserHandler {
	return &UserHandler{users: users}
}

// List handles GET /users?page=N. Pages are 1-indexed with a fixed size of 20.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	users, err := h.users.List(r.Context(), page)
	if err != nil {
		httpx.JSONFromError(w, err)
		return
	}
	httpx.JSONSuccess(w, users, map[string]any{
		"page":      page,
		"page_size": 20,
	})
}

// Search handles GET /users/search?username=&email=.
func (h *UserHandler) Search(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	email := r.URL.Query().Get("email")

	user, err := h.users.Find(r.Context(), username, email)
	if err != nil {
		httpx.JSONFromError(w, err)
		return
	}
	httpx.JSONSuccess(w, user, nil)
}

// Delete handles DELETE /users?username=&email= and returns the removed
// snapshot.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	email := r.URL.Query().Get("email")

	user, err := h.users.Delete(r.Context(), username, email)
	if err != nil {
		httpx.JSONFromError(w, err)
		return
	}
	httpx.JSONSuccess(w, user, nil)
}

type updateUserReq struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
}

// Update handles PUT /users/{id}.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	// crude path param extraction with net/http's ServeMux: /users/{id}
	const prefix = "/users/"
	id := strings.TrimPrefix(r.URL.Path, prefix)
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	var req updateUserReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if details := ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	user, err := h.users.Update(r.Context(), id, req.Username, req.Email)
	if err != nil {
		httpx.JSONFromError(w, err)
		return
	}
	httpx.JSONSuccess(w, user, nil)
}
