package handler

import (
	"encoding/json"
	"net/http"

	"conduit/internal/httputil"
	"conduit/internal/model"
	"conduit/internal/service"
	"conduit/internal/transport/http/middleware"
)

// AuthHandler serves registration, login and the current-user endpoints.
type AuthHandler struct {
	users  *service.UserService
	tokens *service.TokenService
}

func NewAuthHandler(users *service.UserService, tokens *service.TokenService) *AuthHandler {
	return &AuthHandler{
		users:  users,
		tokens: tokens,
	}
}

// userPayload is the authenticated user envelope body.
type userPayload struct {
	Email    string  `json:"email"`
	Token    string  `json:"token"`
	Username string  `json:"username"`
	Bio      string  `json:"bio"`
	Image    *string `json:"image"`
}

type userResponse struct {
	User userPayload `json:"user"`
}

// writeUser issues a token for the user and writes the standard envelope.
func (h *AuthHandler) writeUser(w http.ResponseWriter, status int, u *model.User) {
	token, err := h.tokens.Generate(u.ID, u.Username)
	if err != nil {
		httputil.WriteDomainError(w, err)
		return
	}

	httputil.WriteJSON(w, status, userResponse{User: userPayload{
		Email:    u.Email,
		Token:    token,
		Username: u.Username,
		Bio:      u.Bio,
		Image:    u.ImageURL,
	}})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		User model.RegisterRequest `json:"user"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	user, err := h.users.Register(r.Context(), &req.User)
	if err != nil {
		httputil.WriteDomainError(w, err)
		return
	}

	h.writeUser(w, http.StatusCreated, user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		User model.LoginRequest `json:"user"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	user, err := h.users.Authenticate(r.Context(), &req.User)
	if err != nil {
		httputil.WriteDomainError(w, err)
		return
	}

	h.writeUser(w, http.StatusOK, user)
}

// CurrentUser returns the authenticated caller with a fresh token.
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		httputil.WriteDomainError(w, err)
		return
	}

	h.writeUser(w, http.StatusOK, user)
}

// UpdateUser applies a partial update to the authenticated caller.
func (h *AuthHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req struct {
		User model.UpdateUserRequest `json:"user"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	user, err := h.users.Update(r.Context(), userID, &req.User)
	if err != nil {
		httputil.WriteDomainError(w, err)
		return
	}

	h.writeUser(w, http.StatusOK, user)
}
