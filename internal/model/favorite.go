package model

import "time"

// Favorite is a user->article edge. One favorite per (user, article);
// creating and removing it are idempotent at the service level.
type Favorite struct {
	UserID    int64     `db:"user_id"`
	ArticleID int64     `db:"article_id"`
	CreatedAt time.Time `db:"created_at"`
}
