package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"conduit/internal/model"
)

type tagRepository struct {
	db *sqlx.DB
}

func NewTagRepository(db *sqlx.DB) TagRepository {
	return &tagRepository{db: db}
}

// FindOrCreate inserts any missing tags with ON CONFLICT DO NOTHING, then
// selects the whole set back. Two requests creating the same tag at once both
// land here without a uniqueness violation; the select sees whichever insert
// won.
func (r *tagRepository) FindOrCreate(ctx context.Context, tx *sqlx.Tx, names []string) ([]model.Tag, error) {
	if len(names) == 0 {
		return nil, nil
	}

	insertQuery := `
		INSERT INTO tags (tag)
		SELECT unnest($1::text[])
		ON CONFLICT (tag) DO NOTHING
	`
	if _, err := tx.ExecContext(ctx, insertQuery, pq.Array(names)); err != nil {
		return nil, fmt.Errorf("failed to insert tags: %w", err)
	}

	selectQuery := `SELECT id, tag, created_at FROM tags WHERE tag = ANY($1)`
	var tags []model.Tag
	if err := tx.SelectContext(ctx, &tags, selectQuery, pq.Array(names)); err != nil {
		return nil, fmt.Errorf("failed to select tags: %w", err)
	}

	return tags, nil
}

func (r *tagRepository) List(ctx context.Context) ([]model.Tag, error) {
	query := `SELECT id, tag, created_at FROM tags ORDER BY created_at DESC, id DESC`
	var tags []model.Tag
	if err := r.db.SelectContext(ctx, &tags, query); err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// ListForArticles fetches tag lists for a batch of articles in one query.
// Single-article reads go through it with a one-element batch.
func (r *tagRepository) ListForArticles(ctx context.Context, articleIDs []int64) (map[int64][]string, error) {
	result := make(map[int64][]string, len(articleIDs))
	if len(articleIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT at.article_id, t.tag
		FROM article_tags at
		JOIN tags t ON t.id = at.tag_id
		WHERE at.article_id = ANY($1)
		ORDER BY t.tag
	`

	rows := []struct {
		ArticleID int64  `db:"article_id"`
		Tag       string `db:"tag"`
	}{}
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(articleIDs)); err != nil {
		return nil, fmt.Errorf("failed to list tags in bulk: %w", err)
	}

	for _, row := range rows {
		result[row.ArticleID] = append(result[row.ArticleID], row.Tag)
	}
	return result, nil
}

// LinkArticle inserts junction edges. Duplicate tag ids in the input collapse
// to a single edge via ON CONFLICT DO NOTHING.
func (r *tagRepository) LinkArticle(ctx context.Context, tx *sqlx.Tx, articleID int64, tagIDs []int64) error {
	if len(tagIDs) == 0 {
		return nil
	}

	query := `
		INSERT INTO article_tags (article_id, tag_id)
		SELECT $1, unnest($2::bigint[])
		ON CONFLICT (article_id, tag_id) DO NOTHING
	`
	if _, err := tx.ExecContext(ctx, query, articleID, pq.Array(tagIDs)); err != nil {
		return fmt.Errorf("failed to link article tags: %w", err)
	}
	return nil
}

func (r *tagRepository) UnlinkArticle(ctx context.Context, tx *sqlx.Tx, articleID int64) error {
	query := `DELETE FROM article_tags WHERE article_id = $1`
	if _, err := tx.ExecContext(ctx, query, articleID); err != nil {
		return fmt.Errorf("failed to unlink article tags: %w", err)
	}
	return nil
}
