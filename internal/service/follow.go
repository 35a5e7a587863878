package service

import (
	"context"

	"conduit/internal/model"
	"conduit/internal/repository"
)

// FollowService owns the directed follower->followee edge rules.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow inserts the edge. The self-follow check runs before anything else,
// so follow(a, a) fails the same way whether or not a exists.
func (s *FollowService) Follow(ctx context.Context, followerID, followeeID int64) error {
	if followerID == followeeID {
		return model.ErrCannotFollowSelf
	}

	if _, err := s.userRepo.GetByID(ctx, followeeID); err != nil {
		return err
	}

	inserted, err := s.followRepo.Create(ctx, followerID, followeeID)
	if err != nil {
		return err
	}
	if !inserted {
		return model.ErrAlreadyFollowing
	}

	return nil
}

// Unfollow deletes the edge; the repository reports a missing edge as
// model.ErrNotFollowing.
func (s *FollowService) Unfollow(ctx context.Context, followerID, followeeID int64) error {
	if followerID == followeeID {
		return model.ErrCannotFollowSelf
	}

	return s.followRepo.Delete(ctx, followerID, followeeID)
}

// Exists reports whether follower follows followee.
func (s *FollowService) Exists(ctx context.Context, followerID, followeeID int64) (bool, error) {
	return s.followRepo.Exists(ctx, followerID, followeeID)
}
