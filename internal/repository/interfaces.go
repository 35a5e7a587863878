package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"conduit/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Update(ctx context.Context, user *model.User) error
	ListByIDs(ctx context.Context, ids []int64) ([]model.User, error)
}

type FollowRepository interface {
	// Create inserts the edge and reports whether a row was actually written.
	// A duplicate edge is not an error here; the service decides what it means.
	Create(ctx context.Context, followerID, followeeID int64) (bool, error)
	// Delete returns model.ErrNotFollowing when the edge is absent.
	Delete(ctx context.Context, followerID, followeeID int64) error
	Exists(ctx context.Context, followerID, followeeID int64) (bool, error)
	// CheckFollows is a batch existence check used when assembling lists.
	CheckFollows(ctx context.Context, followerID int64, followeeIDs []int64) (map[int64]bool, error)
}

type FavoriteRepository interface {
	// Create and Delete are idempotent: a duplicate insert or a missing
	// delete is a no-op, never an error.
	Create(ctx context.Context, userID, articleID int64) error
	Delete(ctx context.Context, userID, articleID int64) error
	Exists(ctx context.Context, userID, articleID int64) (bool, error)
	Count(ctx context.Context, articleID int64) (int, error)
	CountMany(ctx context.Context, articleIDs []int64) (map[int64]int, error)
	CheckMany(ctx context.Context, userID int64, articleIDs []int64) (map[int64]bool, error)
}

type TagRepository interface {
	// FindOrCreate resolves every name to a tag row, creating missing ones.
	// Insert-or-ignore-then-select, so two concurrent calls with the same
	// name cannot race into a uniqueness violation.
	FindOrCreate(ctx context.Context, tx *sqlx.Tx, names []string) ([]model.Tag, error)
	List(ctx context.Context) ([]model.Tag, error)
	// ListForArticles batches tag lookups; single-article reads use a
	// one-element batch.
	ListForArticles(ctx context.Context, articleIDs []int64) (map[int64][]string, error)
	// LinkArticle inserts article_tags edges; duplicate tag ids collapse to one edge.
	LinkArticle(ctx context.Context, tx *sqlx.Tx, articleID int64, tagIDs []int64) error
	UnlinkArticle(ctx context.Context, tx *sqlx.Tx, articleID int64) error
}

// ArticleListQuery is the repository-level filter. FavoritedBy and FollowedBy
// carry already-resolved user ids; username resolution happens in the service.
type ArticleListQuery struct {
	Tag         string
	Author      string
	FavoritedBy *int64
	FollowedBy  *int64
}

type ArticleRepository interface {
	Create(ctx context.Context, tx *sqlx.Tx, article *model.Article) error
	GetBySlug(ctx context.Context, slug string) (*model.Article, error)
	Update(ctx context.Context, tx *sqlx.Tx, article *model.Article) error
	// Delete removes the article and its article_tags, favorites and comments.
	Delete(ctx context.Context, tx *sqlx.Tx, articleID int64) error
	CountSlugPrefix(ctx context.Context, prefix string, excludeID int64) (int, error)
	List(ctx context.Context, q ArticleListQuery, limit, offset int) ([]model.Article, error)
	Count(ctx context.Context, q ArticleListQuery) (int, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	GetByID(ctx context.Context, id int64) (*model.Comment, error)
	// ListByArticle returns comments in insertion order, oldest first.
	ListByArticle(ctx context.Context, articleID int64) ([]model.Comment, error)
	Delete(ctx context.Context, id int64) error
}
