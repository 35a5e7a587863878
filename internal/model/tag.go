package model

import "time"

// Tag is a unique tag string shared across articles.
type Tag struct {
	ID        int64     `db:"id"`
	Name      string    `db:"tag"`
	CreatedAt time.Time `db:"created_at"`
}
