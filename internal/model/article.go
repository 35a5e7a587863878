package model

import (
	"errors"
	"time"
)

// Article is the stored article row. Aggregated fields (tags, author, counts,
// viewer flags) live on ArticleView.
type Article struct {
	ID          int64      `db:"id"`
	AuthorID    int64      `db:"author_id"`
	Slug        string     `db:"slug"`
	Title       string     `db:"title"`
	Description string     `db:"description"`
	Body        string     `db:"body"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at"`
}

// ArticleView is the full read aggregate returned to callers.
type ArticleView struct {
	Slug           string     `json:"slug"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Body           string     `json:"body"`
	TagList        []string   `json:"tagList"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      *time.Time `json:"updatedAt"`
	Favorited      bool       `json:"favorited"`
	FavoritesCount int        `json:"favoritesCount"`
	Author         Profile    `json:"author"`
}

// CreateArticleRequest is the payload for creating an article.
type CreateArticleRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Body        string   `json:"body"`
	TagList     []string `json:"tagList"`
}

// UpdateArticleRequest is a partial update. A non-nil TagList replaces the
// article's whole tag set.
type UpdateArticleRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Body        *string   `json:"body"`
	TagList     *[]string `json:"tagList"`
}

// ArticleFilter selects articles for listing. Tag, Author and FavoritedBy are
// AND-combined; FollowedBy switches to feed mode (articles by followed
// authors) and is mutually exclusive with the others at the API layer.
type ArticleFilter struct {
	Tag         string
	Author      string
	FavoritedBy string
	FollowedBy  *int64
}

// ArticleList is a page of articles plus the unpaginated match count.
type ArticleList struct {
	Articles      []ArticleView `json:"articles"`
	ArticlesCount int           `json:"articlesCount"`
}

var (
	// ErrArticleNotFound is returned when a slug does not resolve
	ErrArticleNotFound = errors.New("article not found")

	// ErrNotArticleAuthor is returned when a caller tries to mutate someone else's article
	ErrNotArticleAuthor = errors.New("not the author of this article")

	// ErrTitleRequired is returned when creating an article without a title
	ErrTitleRequired = errors.New("article title is required")
)
