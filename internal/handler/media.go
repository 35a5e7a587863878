package handler

import (
	"net/http"

	"conduit/internal/httputil"
	"conduit/internal/model"
	"conduit/internal/service"
	"conduit/internal/transport/http/middleware"
)

// MediaHandler serves avatar uploads. The uploaded file is pushed to object
// storage and the resulting URL is saved as the caller's image.
type MediaHandler struct {
	media  *service.MediaService
	users  *service.UserService
	tokens *service.TokenService
}

func NewMediaHandler(media *service.MediaService, users *service.UserService, tokens *service.TokenService) *MediaHandler {
	return &MediaHandler{
		media:  media,
		users:  users,
		tokens: tokens,
	}
}

func (h *MediaHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	if err := r.ParseMultipartForm(model.MaxAvatarSizeBytes); err != nil {
		httputil.WriteBadRequest(w, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		httputil.WriteBadRequest(w, "Missing avatar file")
		return
	}
	defer file.Close()

	result, err := h.media.UploadAvatar(r.Context(), file, header)
	if err != nil {
		httputil.WriteDomainError(w, err)
		return
	}

	user, err := h.users.Update(r.Context(), userID, &model.UpdateUserRequest{Image: &result.URL})
	if err != nil {
		httputil.WriteDomainError(w, err)
		return
	}

	token, err := h.tokens.Generate(user.ID, user.Username)
	if err != nil {
		httputil.WriteDomainError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, userResponse{User: userPayload{
		Email:    user.Email,
		Token:    token,
		Username: user.Username,
		Bio:      user.Bio,
		Image:    user.ImageURL,
	}})
}
