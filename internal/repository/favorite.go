package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type favoriteRepository struct {
	db *sqlx.DB
}

func NewFavoriteRepository(db *sqlx.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Create inserts the edge. ON CONFLICT DO NOTHING makes concurrent favorites
// of the same article converge on exactly one row without raising a
// duplicate-key error.
func (r *favoriteRepository) Create(ctx context.Context, userID, articleID int64) error {
	query := `
		INSERT INTO favorites (user_id, article_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, article_id) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, userID, articleID); err != nil {
		return fmt.Errorf("failed to create favorite: %w", err)
	}
	return nil
}

// Delete removes the edge. Deleting an absent edge is a no-op.
func (r *favoriteRepository) Delete(ctx context.Context, userID, articleID int64) error {
	query := `DELETE FROM favorites WHERE user_id = $1 AND article_id = $2`
	if _, err := r.db.ExecContext(ctx, query, userID, articleID); err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}
	return nil
}

func (r *favoriteRepository) Exists(ctx context.Context, userID, articleID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM favorites WHERE user_id = $1 AND article_id = $2)`
	var exists bool
	err := r.db.GetContext(ctx, &exists, query, userID, articleID)
	if err != nil {
		return false, fmt.Errorf("failed to check favorite existence: %w", err)
	}
	return exists, nil
}

func (r *favoriteRepository) Count(ctx context.Context, articleID int64) (int, error) {
	query := `SELECT COUNT(*) FROM favorites WHERE article_id = $1`
	var count int
	err := r.db.GetContext(ctx, &count, query, articleID)
	if err != nil {
		return 0, fmt.Errorf("failed to count favorites: %w", err)
	}
	return count, nil
}

// CountMany returns favorite counts for a batch of articles in one query.
// Articles with no favorites map to 0.
func (r *favoriteRepository) CountMany(ctx context.Context, articleIDs []int64) (map[int64]int, error) {
	result := make(map[int64]int, len(articleIDs))
	for _, id := range articleIDs {
		result[id] = 0
	}
	if len(articleIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT article_id, COUNT(*) AS favorites
		FROM favorites
		WHERE article_id = ANY($1)
		GROUP BY article_id
	`

	rows := []struct {
		ArticleID int64 `db:"article_id"`
		Favorites int   `db:"favorites"`
	}{}
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(articleIDs)); err != nil {
		return nil, fmt.Errorf("failed to count favorites in bulk: %w", err)
	}

	for _, row := range rows {
		result[row.ArticleID] = row.Favorites
	}
	return result, nil
}

// CheckMany resolves which of the given articles the user has favorited,
// batched the same way as FollowRepository.CheckFollows.
func (r *favoriteRepository) CheckMany(ctx context.Context, userID int64, articleIDs []int64) (map[int64]bool, error) {
	result := make(map[int64]bool, len(articleIDs))
	for _, id := range articleIDs {
		result[id] = false
	}
	if len(articleIDs) == 0 {
		return result, nil
	}

	query := `SELECT article_id FROM favorites WHERE user_id = $1 AND article_id = ANY($2)`
	var favoritedIDs []int64
	err := r.db.SelectContext(ctx, &favoritedIDs, query, userID, pq.Array(articleIDs))
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to check favorites: %w", err)
	}

	for _, id := range favoritedIDs {
		result[id] = true
	}
	return result, nil
}
