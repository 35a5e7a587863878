package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"conduit/internal/httputil"
	"conduit/internal/model"
	"conduit/internal/service"
	"conduit/internal/transport/http/middleware"
)

type ArticleHandler struct {
	articles *service.ArticleService
}

func NewArticleHandler(articles *service.ArticleService) *ArticleHandler {
	return &ArticleHandler{articles: articles}
}

type articleResponse struct {
	Article model.ArticleView `json:"article"`
}

// parsePage reads limit/offset query params, rejecting non-numeric or
// negative values.
func parsePage(r *http.Request) (limit, offset int, ok bool) {
	limit, offset = 0, 0

	if s := r.URL.Query().Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return 0, 0, false
		}
		limit = v
	}
	if s := r.URL.Query().Get("offset"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			return 0, 0, false
		}
		offset = v
	}
	return limit, offset, true
}

// List serves GET /articles with optional tag/author/favorited filters.
func (h *ArticleHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset, ok := parsePage(r)
	if !ok {
		httputil.WriteBadRequest(w, "limit and offset must be non-negative integers")
		return
	}

	filter := model.ArticleFilter{
		Tag:         r.URL.Query().Get("tag"),
		Author:      r.URL.Query().Get("author"),
		FavoritedBy: r.URL.Query().Get("favorited"),
	}

	list, err := h.articles.List(r.Context(), filter, limit, offset, middleware.ViewerID(r.Context()))
	if err != nil {
		httputil.WriteDomainError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, list)
}

// Feed serves GET /articles/feed: articles by authors the caller follows.
func (h *ArticleHandler) Feed(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	limit, offset, pageOK := parsePage(r)
	if !pageOK {
		httputil.WriteBadRequest(w, "limit and offset must be non-negative integers")
		return
	}

	filter := model.ArticleFilter{FollowedBy: &viewerID}

	list, err := h.articles.List(r.Context(), filter, limit, offset, &viewerID)
	if err != nil {
		httputil.WriteDomainError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, list)
}

func (h *ArticleHandler) Create(w http.ResponseWriter, r *http.Request) {
	authorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req struct {
		Article model.CreateArticleRequest `json:"article"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	view, err := h.articles.Create(r.Context(), authorID, &req.Article)
	if err != nil {
		httputil.WriteDomainError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, articleResponse{Article: *view})
}

func (h *ArticleHandler) Get(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	view, err := h.articles.GetBySlug(r.Context(), slug, middleware.ViewerID(r.Context()))
	if err != nil {
		httputil.WriteDomainError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, articleResponse{Article: *view})
}

// requireAuthor enforces the author-only rule for article mutation. The
// check lives here at the transport boundary, not in the article service.
func (h *ArticleHandler) requireAuthor(w http.ResponseWriter, r *http.Request, slug string, viewerID int64) bool {
	authorID, err := h.articles.GetAuthorID(r.Context(), slug)
	if err != nil {
		httputil.WriteDomainError(w, err)
		return false
	}
	if authorID != viewerID {
		httputil.WriteDomainError(w, model.ErrNotArticleAuthor)
		return false
	}
	return true
}

func (h *ArticleHandler) Update(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	slug := chi.URLParam(r, "slug")
	if !h.requireAuthor(w, r, slug, viewerID) {
		return
	}

	var req struct {
		Article model.UpdateArticleRequest `json:"article"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	view, err := h.articles.Update(r.Context(), slug, &viewerID, &req.Article)
	if err != nil {
		httputil.WriteDomainError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, articleResponse{Article: *view})
}

func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	slug := chi.URLParam(r, "slug")
	if !h.requireAuthor(w, r, slug, viewerID) {
		return
	}

	if err := h.articles.Delete(r.Context(), slug); err != nil {
		httputil.WriteDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ArticleHandler) Favorite(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	slug := chi.URLParam(r, "slug")

	view, err := h.articles.Favorite(r.Context(), viewerID, slug)
	if err != nil {
		httputil.WriteDomainError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, articleResponse{Article: *view})
}

func (h *ArticleHandler) Unfavorite(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	slug := chi.URLParam(r, "slug")

	view, err := h.articles.Unfavorite(r.Context(), viewerID, slug)
	if err != nil {
		httputil.WriteDomainError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, articleResponse{Article: *view})
}
