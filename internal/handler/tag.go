package handler

import (
	"net/http"

	"conduit/internal/httputil"
	"conduit/internal/service"
)

type TagHandler struct {
	tags *service.TagService
}

func NewTagHandler(tags *service.TagService) *TagHandler {
	return &TagHandler{tags: tags}
}

type tagListResponse struct {
	Tags []string `json:"tags"`
}

func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	names, err := h.tags.List(r.Context())
	if err != nil {
		httputil.WriteDomainError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, tagListResponse{Tags: names})
}
