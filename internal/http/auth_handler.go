package http

import (
	"encoding/json"
	"net/http"
	"time"

	"libraryapi/internal/auth"
	"libraryapi/internal/httpx"
	"libraryapi/internal/usecase"
)

const accessTokenTTL = 30 * time.Minute

type AuthHandler struct {
	users  *usecase.Users
	secret string
}

func NewAuthHandler(users *usecase.Users, secret string) *AuthHandler {
	return &AuthHandler{users: users, secret: secret}
}

// Login handles POST /token: form-encoded username/password in, bearer token
// out. Bad credentials are a 400, matching the API's historical behavior.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid form body", nil)
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	user, err := h.users.Authenticate(r.Context(), username, password)
	if err != nil {
		httpx.JSONFromError(w, err)
		return
	}

	token, err := auth.GenerateToken(h.secret, user.Username, accessTokenTTL)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, map[string]any{
		"access_token": token,
		"token_type":   "bearer",
	}, nil)
}

type registerReq struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register handles POST /register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if details := ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	user, err := h.users.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		httpx.JSONFromError(w, err)
		return
	}

	httpx.JSONSuccessCreated(w, map[string]any{
		"id":         user.ID,
		"username":   user.Username,
		"email":      user.Email,
		"created_at": user.CreatedAt,
		"updated_at": user.UpdatedAt,
	})
}
