package http

import (
	"context"
	"fmt"
	"log"
	stdhttp "net/http"
	"time"

	"conduit/internal/cache"
	"conduit/internal/config"
	"conduit/internal/database"
	"conduit/internal/handler"
	"conduit/internal/redis"
	"conduit/internal/repository"
	"conduit/internal/service"
)

func Run() error {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Connect to Database
	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// 3. Connect to Redis (optional, tag cache degrades to DB-only)
	var tagCache cache.TagCache
	if cfg.RedisURL != "" {
		redisClient, err := redis.Connect(context.Background(), cfg.RedisURL)
		if err != nil {
			log.Printf("[Server] Redis unavailable, tag cache disabled: %v", err)
		} else {
			defer redisClient.Close()
			tagCache = cache.NewTagCache(redisClient)
		}
	}

	// 4. Repositories
	userRepo := repository.NewUserRepository(db)
	followRepo := repository.NewFollowRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	tagRepo := repository.NewTagRepository(db)
	articleRepo := repository.NewArticleRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// 5. Services
	hasher := service.NewBcryptHasher()
	tokens := service.NewTokenService(cfg.JWTSecret, time.Duration(cfg.TokenMaxAge)*time.Second)
	users := service.NewUserService(userRepo, hasher, cfg.DefaultImageURL)
	follows := service.NewFollowService(followRepo, userRepo)
	profiles := service.NewProfileService(userRepo, followRepo, follows)
	articles := service.NewArticleService(db, articleRepo, tagRepo, userRepo, followRepo, favoriteRepo)
	comments := service.NewCommentService(commentRepo, articleRepo, userRepo, followRepo)
	tags := service.NewTagService(tagRepo, tagCache)

	// Avatar uploads need object storage; without it the route is not mounted.
	var mediaHandler *handler.MediaHandler
	media, err := service.NewMediaService(context.Background(), cfg)
	if err != nil {
		log.Printf("[Server] avatar uploads disabled: %v", err)
	} else {
		mediaHandler = handler.NewMediaHandler(media, users, tokens)
	}

	// 6. Handlers and Router
	router := NewRouter(RouterConfig{
		AuthHandler:    handler.NewAuthHandler(users, tokens),
		ProfileHandler: handler.NewProfileHandler(profiles),
		ArticleHandler: handler.NewArticleHandler(articles),
		CommentHandler: handler.NewCommentHandler(comments),
		TagHandler:     handler.NewTagHandler(tags),
		MediaHandler:   mediaHandler,
		Tokens:         tokens,
	})

	addr := ":" + cfg.ServerPort
	log.Printf("Starting server on %s", addr)
	return stdhttp.ListenAndServe(addr, router)
}
