package service

import (
	"context"
	"strings"

	"conduit/internal/model"
	"conduit/internal/repository"
)

// CommentService handles comments scoped to an article. Unlike article
// update/delete, the author-only rule for deletion lives here.
type CommentService struct {
	commentRepo repository.CommentRepository
	articleRepo repository.ArticleRepository
	userRepo    repository.UserRepository
	followRepo  repository.FollowRepository
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	articleRepo repository.ArticleRepository,
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		articleRepo: articleRepo,
		userRepo:    userRepo,
		followRepo:  followRepo,
	}
}

// Create adds a comment to the article behind the slug and returns it
// enriched with the author profile.
func (s *CommentService) Create(ctx context.Context, slug string, authorID int64, req *model.CreateCommentRequest) (*model.CommentView, error) {
	if strings.TrimSpace(req.Body) == "" {
		return nil, model.ErrCommentBodyRequired
	}

	article, err := s.articleRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	comment := &model.Comment{
		ArticleID: article.ID,
		AuthorID:  authorID,
		Body:      req.Body,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	author, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	// The viewer is the comment's author; nobody follows themselves.
	view := commentView(comment, profileOf(author, false))
	return &view, nil
}

// ListForArticle returns the article's comments oldest first, each enriched
// with its author profile. Following flags are resolved in one batch query
// when a viewer is present.
func (s *CommentService) ListForArticle(ctx context.Context, slug string, viewerID *int64) ([]model.CommentView, error) {
	article, err := s.articleRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByArticle(ctx, article.ID)
	if err != nil {
		return nil, err
	}

	views := make([]model.CommentView, 0, len(comments))
	if len(comments) == 0 {
		return views, nil
	}

	authorIDSet := make(map[int64]bool, len(comments))
	authorIDs := make([]int64, 0, len(comments))
	for _, c := range comments {
		if !authorIDSet[c.AuthorID] {
			authorIDSet[c.AuthorID] = true
			authorIDs = append(authorIDs, c.AuthorID)
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

	followingSet := map[int64]bool{}
	if viewerID != nil {
		followingSet, err = s.followRepo.CheckFollows(ctx, *viewerID, authorIDs)
		if err != nil {
			return nil, err
		}
	}

	for _, c := range comments {
		author := authorsByID[c.AuthorID]
		views = append(views, commentView(&c, profileOf(&author, followingSet[c.AuthorID])))
	}

	return views, nil
}

// Delete removes a comment. Only the comment's author may delete it; a
// comment id that does not belong to the slug's article reads as not found.
func (s *CommentService) Delete(ctx context.Context, slug string, commentID, viewerID int64) error {
	article, err := s.articleRepo.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.ArticleID != article.ID {
		return model.ErrCommentNotFound
	}
	if comment.AuthorID != viewerID {
		return model.ErrNotCommentAuthor
	}

	return s.commentRepo.Delete(ctx, commentID)
}

func commentView(c *model.Comment, author model.Profile) model.CommentView {
	return model.CommentView{
		ID:        c.ID,
		Body:      c.Body,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Author:    author,
	}
}
