package model

import (
	"errors"
	"time"
)

// Comment represents a comment on an article.
type Comment struct {
	ID        int64      `db:"id"`
	ArticleID int64      `db:"article_id"`
	AuthorID  int64      `db:"author_id"`
	Body      string     `db:"body"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt *time.Time `db:"updated_at"`
}

// CommentView is a comment enriched with its author's profile.
type CommentView struct {
	ID        int64      `json:"id"`
	Body      string     `json:"body"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
	Author    Profile    `json:"author"`
}

// CreateCommentRequest is the request body for creating a comment.
type CreateCommentRequest struct {
	Body string `json:"body"`
}

var (
	// ErrCommentNotFound is returned when a comment id does not resolve within the article
	ErrCommentNotFound = errors.New("comment not found")

	// ErrNotCommentAuthor is returned when a non-author tries to delete a comment
	ErrNotCommentAuthor = errors.New("not the author of this comment")

	// ErrCommentBodyRequired is returned when a comment has an empty body
	ErrCommentBodyRequired = errors.New("comment body is required")
)
