package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"

	"conduit/internal/model"
	"conduit/internal/repository"
)

// ArticleService owns article CRUD, slug generation, tag linking and list
// assembly. Multi-row mutations (create + tag links, update + tag
// replacement, delete + dependents) run inside a single transaction so an
// aborted request never commits half its rows.
type ArticleService struct {
	db           *sqlx.DB
	articleRepo  repository.ArticleRepository
	tagRepo      repository.TagRepository
	userRepo     repository.UserRepository
	followRepo   repository.FollowRepository
	favoriteRepo repository.FavoriteRepository
}

func NewArticleService(
	db *sqlx.DB,
	articleRepo repository.ArticleRepository,
	tagRepo repository.TagRepository,
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	favoriteRepo repository.FavoriteRepository,
) *ArticleService {
	return &ArticleService{
		db:           db,
		articleRepo:  articleRepo,
		tagRepo:      tagRepo,
		userRepo:     userRepo,
		followRepo:   followRepo,
		favoriteRepo: favoriteRepo,
	}
}

// DefaultArticlesLimit is the page size used when the caller supplies none.
const DefaultArticlesLimit = 20

// Create inserts the article and its tag links in one transaction and
// returns the assembled view.
func (s *ArticleService) Create(ctx context.Context, authorID int64, req *model.CreateArticleRequest) (*model.ArticleView, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, model.ErrTitleRequired
	}

	slug, err := s.resolveSlug(ctx, req.Title, 0)
	if err != nil {
		return nil, err
	}

	article := &model.Article{
		AuthorID:    authorID,
		Slug:        slug,
		Title:       req.Title,
		Description: req.Description,
		Body:        req.Body,
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.articleRepo.Create(ctx, tx, article); err != nil {
		return nil, err
	}

	if err := s.linkTags(ctx, tx, article.ID, req.TagList); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return s.assembleOne(ctx, article, &authorID)
}

// GetBySlug returns the full view. Viewer-relative flags default to false
// when no viewer is supplied.
func (s *ArticleService) GetBySlug(ctx context.Context, slug string, viewerID *int64) (*model.ArticleView, error) {
	article, err := s.articleRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.assembleOne(ctx, article, viewerID)
}

// GetAuthorID resolves a slug to its author. The HTTP layer uses it to
// enforce that only the author may update or delete an article; that check
// is deliberately not repeated here.
func (s *ArticleService) GetAuthorID(ctx context.Context, slug string) (int64, error) {
	article, err := s.articleRepo.GetBySlug(ctx, slug)
	if err != nil {
		return 0, err
	}
	return article.AuthorID, nil
}

// Update applies a partial patch. A title change regenerates the slug with
// the same uniqueness policy as Create. A non-nil tag list replaces the
// article's whole tag set, not merges into it.
func (s *ArticleService) Update(ctx context.Context, slug string, viewerID *int64, req *model.UpdateArticleRequest) (*model.ArticleView, error) {
	article, err := s.articleRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if req.Title != nil && *req.Title != article.Title {
		newSlug, err := s.resolveSlug(ctx, *req.Title, article.ID)
		if err != nil {
			return nil, err
		}
		article.Title = *req.Title
		article.Slug = newSlug
	}
	if req.Description != nil {
		article.Description = *req.Description
	}
	if req.Body != nil {
		article.Body = *req.Body
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.articleRepo.Update(ctx, tx, article); err != nil {
		return nil, err
	}

	if req.TagList != nil {
		if err := s.tagRepo.UnlinkArticle(ctx, tx, article.ID); err != nil {
			return nil, err
		}
		if err := s.linkTags(ctx, tx, article.ID, *req.TagList); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return s.assembleOne(ctx, article, viewerID)
}

// Delete removes the article together with its tag links, favorites and
// comments.
func (s *ArticleService) Delete(ctx context.Context, slug string) error {
	article, err := s.articleRepo.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.articleRepo.Delete(ctx, tx, article.ID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// List returns a page of articles matching the filter plus the total match
// count with pagination ignored. A favorited-by username that resolves to no
// user yields an empty page with count 0, not an error.
func (s *ArticleService) List(ctx context.Context, filter model.ArticleFilter, limit, offset int, viewerID *int64) (*model.ArticleList, error) {
	if limit <= 0 {
		limit = DefaultArticlesLimit
	}
	if offset < 0 {
		offset = 0
	}

	q := repository.ArticleListQuery{
		Tag:        filter.Tag,
		Author:     filter.Author,
		FollowedBy: filter.FollowedBy,
	}

	if filter.FavoritedBy != "" {
		user, err := s.userRepo.GetByUsername(ctx, filter.FavoritedBy)
		if err != nil {
			if errors.Is(err, model.ErrUserNotFound) {
				return &model.ArticleList{Articles: []model.ArticleView{}, ArticlesCount: 0}, nil
			}
			return nil, err
		}
		q.FavoritedBy = &user.ID
	}

	total, err := s.articleRepo.Count(ctx, q)
	if err != nil {
		return nil, err
	}

	articles, err := s.articleRepo.List(ctx, q, limit, offset)
	if err != nil {
		return nil, err
	}

	views, err := s.assembleMany(ctx, articles, viewerID)
	if err != nil {
		return nil, err
	}

	return &model.ArticleList{Articles: views, ArticlesCount: total}, nil
}

// Favorite marks the article as favorited by the viewer. Favoriting twice is
// a no-op; the returned view reflects the resulting state either way.
func (s *ArticleService) Favorite(ctx context.Context, viewerID int64, slug string) (*model.ArticleView, error) {
	article, err := s.articleRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if err := s.favoriteRepo.Create(ctx, viewerID, article.ID); err != nil {
		return nil, err
	}

	return s.assembleOne(ctx, article, &viewerID)
}

// Unfavorite removes the viewer's favorite edge; removing an absent edge is
// a no-op.
func (s *ArticleService) Unfavorite(ctx context.Context, viewerID int64, slug string) (*model.ArticleView, error) {
	article, err := s.articleRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if err := s.favoriteRepo.Delete(ctx, viewerID, article.ID); err != nil {
		return nil, err
	}

	return s.assembleOne(ctx, article, &viewerID)
}

// resolveSlug builds the base slug from the title and appends a random short
// code when any existing slug already starts with it. excludeID skips the
// article being retitled so it does not collide with itself.
func (s *ArticleService) resolveSlug(ctx context.Context, title string, excludeID int64) (string, error) {
	base := makeSlug(title)
	if base == "" {
		base = slugSuffix()
	}

	taken, err := s.articleRepo.CountSlugPrefix(ctx, base, excludeID)
	if err != nil {
		return "", err
	}
	if taken > 0 {
		return base + "-" + slugSuffix(), nil
	}
	return base, nil
}

// linkTags resolves tag names to rows and inserts the junction edges inside
// the caller's transaction.
func (s *ArticleService) linkTags(ctx context.Context, tx *sqlx.Tx, articleID int64, names []string) error {
	normalized := normalizeTags(names)
	if len(normalized) == 0 {
		return nil
	}

	tags, err := s.tagRepo.FindOrCreate(ctx, tx, normalized)
	if err != nil {
		return err
	}

	tagIDs := make([]int64, len(tags))
	for i, t := range tags {
		tagIDs[i] = t.ID
	}

	return s.tagRepo.LinkArticle(ctx, tx, articleID, tagIDs)
}

// normalizeTags trims, drops empties, dedupes and sorts tag names so
// duplicate inputs collapse to one edge and output order is deterministic.
func normalizeTags(names []string) []string {
	seen := make(map[string]bool, len(names))
	var out []string
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (s *ArticleService) assembleOne(ctx context.Context, article *model.Article, viewerID *int64) (*model.ArticleView, error) {
	views, err := s.assembleMany(ctx, []model.Article{*article}, viewerID)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// assembleMany enriches article rows into full views with batch queries:
// one for authors, one for tags, one for favorite counts, and when a viewer
// is present one each for favorited and following flags. No per-article
// round-trips.
func (s *ArticleService) assembleMany(ctx context.Context, articles []model.Article, viewerID *int64) ([]model.ArticleView, error) {
	views := make([]model.ArticleView, 0, len(articles))
	if len(articles) == 0 {
		return views, nil
	}

	articleIDs := make([]int64, 0, len(articles))
	authorIDSet := make(map[int64]bool, len(articles))
	authorIDs := make([]int64, 0, len(articles))
	for _, a := range articles {
		articleIDs = append(articleIDs, a.ID)
		if !authorIDSet[a.AuthorID] {
			authorIDSet[a.AuthorID] = true
			authorIDs = append(authorIDs, a.AuthorID)
		}
	}

	authors, err := s.userRepo.ListByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	authorsByID := make(map[int64]model.User, len(authors))
	for _, u := range authors {
		authorsByID[u.ID] = u
	}

	tagsByArticle, err := s.tagRepo.ListForArticles(ctx, articleIDs)
	if err != nil {
		return nil, err
	}

	favoriteCounts, err := s.favoriteRepo.CountMany(ctx, articleIDs)
	if err != nil {
		return nil, err
	}

	favoritedSet := map[int64]bool{}
	followingSet := map[int64]bool{}
	if viewerID != nil {
		favoritedSet, err = s.favoriteRepo.CheckMany(ctx, *viewerID, articleIDs)
		if err != nil {
			return nil, err
		}
		followingSet, err = s.followRepo.CheckFollows(ctx, *viewerID, authorIDs)
		if err != nil {
			return nil, err
		}
	}

	for _, a := range articles {
		author, ok := authorsByID[a.AuthorID]
		if !ok {
			return nil, fmt.Errorf("author %d missing for article %d", a.AuthorID, a.ID)
		}

		tagList := tagsByArticle[a.ID]
		if tagList == nil {
			tagList = []string{}
		}

		views = append(views, model.ArticleView{
			Slug:           a.Slug,
			Title:          a.Title,
			Description:    a.Description,
			Body:           a.Body,
			TagList:        tagList,
			CreatedAt:      a.CreatedAt,
			UpdatedAt:      a.UpdatedAt,
			Favorited:      favoritedSet[a.ID],
			FavoritesCount: favoriteCounts[a.ID],
			Author:         profileOf(&author, followingSet[a.AuthorID]),
		})
	}

	return views, nil
}
