package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"conduit/internal/handler"
	"conduit/internal/httputil"
	"conduit/internal/service"
	authmw "conduit/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	AuthHandler    *handler.AuthHandler
	ProfileHandler *handler.ProfileHandler
	ArticleHandler *handler.ArticleHandler
	CommentHandler *handler.CommentHandler
	TagHandler     *handler.TagHandler
	MediaHandler   *handler.MediaHandler
	Tokens         *service.TokenService
}

// NewRouter creates and configures a new Chi router with all route groups
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	// Health check endpoint (useful for deployment/monitoring)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, 200, map[string]string{"status": "ok"})
	})

	requireAuth := authmw.RequireAuth(cfg.Tokens)
	optionalAuth := authmw.OptionalAuth(cfg.Tokens)

	r.Route("/api", func(r chi.Router) {
		// Registration and login are the only routes that never see a token.
		r.Post("/users", cfg.AuthHandler.Register)
		r.Post("/users/login", cfg.AuthHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Get("/user", cfg.AuthHandler.CurrentUser)
			r.Put("/user", cfg.AuthHandler.UpdateUser)
			if cfg.MediaHandler != nil {
				r.Post("/user/avatar", cfg.MediaHandler.UploadAvatar)
			}

			r.Post("/profiles/{username}/follow", cfg.ProfileHandler.Follow)
			r.Delete("/profiles/{username}/follow", cfg.ProfileHandler.Unfollow)

			r.Get("/articles/feed", cfg.ArticleHandler.Feed)
			r.Post("/articles", cfg.ArticleHandler.Create)
			r.Put("/articles/{slug}", cfg.ArticleHandler.Update)
			r.Delete("/articles/{slug}", cfg.ArticleHandler.Delete)
			r.Post("/articles/{slug}/favorite", cfg.ArticleHandler.Favorite)
			r.Delete("/articles/{slug}/favorite", cfg.ArticleHandler.Unfavorite)

			r.Post("/articles/{slug}/comments", cfg.CommentHandler.Create)
			r.Delete("/articles/{slug}/comments/{id}", cfg.CommentHandler.Delete)
		})

		// Public reads honor a token when one is sent so viewer-relative
		// flags come back filled in.
		r.Group(func(r chi.Router) {
			r.Use(optionalAuth)

			r.Get("/profiles/{username}", cfg.ProfileHandler.GetProfile)
			r.Get("/articles", cfg.ArticleHandler.List)
			r.Get("/articles/{slug}", cfg.ArticleHandler.Get)
			r.Get("/articles/{slug}/comments", cfg.CommentHandler.List)
		})

		r.Get("/tags", cfg.TagHandler.List)
	})

	return r
}
