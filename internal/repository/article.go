package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"conduit/internal/model"
)

type articleRepository struct {
	db *sqlx.DB
}

func NewArticleRepository(db *sqlx.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(ctx context.Context, tx *sqlx.Tx, a *model.Article) error {
	query := `
		INSERT INTO articles (author_id, slug, title, description, body, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	row := tx.QueryRowxContext(ctx, query, a.AuthorID, a.Slug, a.Title, a.Description, a.Body)
	if err := row.Scan(&a.ID, &a.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert article: %w", err)
	}

	return nil
}

func (r *articleRepository) GetBySlug(ctx context.Context, slug string) (*model.Article, error) {
	query := `
		SELECT id, author_id, slug, title, description, body, created_at, updated_at
		FROM articles
		WHERE slug = $1
	`

	var a model.Article
	err := r.db.GetContext(ctx, &a, query, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrArticleNotFound
		}
		return nil, fmt.Errorf("failed to get article by slug: %w", err)
	}

	return &a, nil
}

func (r *articleRepository) Update(ctx context.Context, tx *sqlx.Tx, a *model.Article) error {
	query := `
		UPDATE articles
		SET slug = $1, title = $2, description = $3, body = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`

	row := tx.QueryRowxContext(ctx, query, a.Slug, a.Title, a.Description, a.Body, a.ID)
	if err := row.Scan(&a.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.ErrArticleNotFound
		}
		return fmt.Errorf("failed to update article: %w", err)
	}

	return nil
}

// Delete removes the article and its dependent rows inside the caller's
// transaction. The schema cascades too; deleting explicitly keeps the
// behavior visible and independent of DDL.
func (r *articleRepository) Delete(ctx context.Context, tx *sqlx.Tx, articleID int64) error {
	statements := []string{
		`DELETE FROM article_tags WHERE article_id = $1`,
		`DELETE FROM favorites WHERE article_id = $1`,
		`DELETE FROM comments WHERE article_id = $1`,
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt, articleID); err != nil {
			return fmt.Errorf("failed to delete article dependents: %w", err)
		}
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, articleID)
	if err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrArticleNotFound
	}

	return nil
}

// CountSlugPrefix counts articles whose slug starts with the given prefix,
// optionally excluding one article (used when a title change regenerates the
// slug of an existing row).
func (r *articleRepository) CountSlugPrefix(ctx context.Context, prefix string, excludeID int64) (int, error) {
	query := `SELECT COUNT(*) FROM articles WHERE slug LIKE $1 || '%' AND id <> $2`

	var count int
	if err := r.db.GetContext(ctx, &count, query, prefix, excludeID); err != nil {
		return 0, fmt.Errorf("failed to count slugs: %w", err)
	}
	return count, nil
}

// buildListClauses translates the query into WHERE fragments and positional
// args shared by List and Count so the total always reflects the same filter.
func buildListClauses(q ArticleListQuery) (string, []interface{}) {
	var (
		clauses []string
		args    []interface{}
	)

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.Tag != "" {
		clauses = append(clauses, fmt.Sprintf(
			`a.id IN (SELECT at.article_id FROM article_tags at JOIN tags t ON t.id = at.tag_id WHERE t.tag = %s)`,
			arg(q.Tag)))
	}
	if q.Author != "" {
		clauses = append(clauses, fmt.Sprintf(
			`a.author_id IN (SELECT u.id FROM users u WHERE u.username = %s)`,
			arg(q.Author)))
	}
	if q.FavoritedBy != nil {
		clauses = append(clauses, fmt.Sprintf(
			`a.id IN (SELECT f.article_id FROM favorites f WHERE f.user_id = %s)`,
			arg(*q.FavoritedBy)))
	}
	if q.FollowedBy != nil {
		clauses = append(clauses, fmt.Sprintf(
			`a.author_id IN (SELECT fo.followee_id FROM follows fo WHERE fo.follower_id = %s)`,
			arg(*q.FollowedBy)))
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (r *articleRepository) List(ctx context.Context, q ArticleListQuery, limit, offset int) ([]model.Article, error) {
	where, args := buildListClauses(q)

	query := `
		SELECT a.id, a.author_id, a.slug, a.title, a.description, a.body, a.created_at, a.updated_at
		FROM articles a` + where

	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY a.created_at DESC, a.id DESC LIMIT $%d", len(args))
	args = append(args, offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	var articles []model.Article
	if err := r.db.SelectContext(ctx, &articles, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}

	return articles, nil
}

func (r *articleRepository) Count(ctx context.Context, q ArticleListQuery) (int, error) {
	where, args := buildListClauses(q)
	query := `SELECT COUNT(*) FROM articles a` + where

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count articles: %w", err)
	}

	return count, nil
}
