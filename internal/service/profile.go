package service

import (
	"context"
	"errors"
	"log"

	"conduit/internal/model"
	"conduit/internal/repository"
)

// ProfileService assembles public profile views and handles follow/unfollow
// by username, delegating the edge rules to FollowService.
type ProfileService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	follows    *FollowService
}

func NewProfileService(userRepo repository.UserRepository, followRepo repository.FollowRepository, follows *FollowService) *ProfileService {
	return &ProfileService{
		userRepo:   userRepo,
		followRepo: followRepo,
		follows:    follows,
	}
}

// GetProfile returns the public view of a user. The following flag is only
// computed when a viewer is known; a failed follow check degrades to false
// rather than failing the whole profile.
func (s *ProfileService) GetProfile(ctx context.Context, username string, viewerID *int64) (*model.Profile, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrProfileNotFound
		}
		return nil, err
	}

	following := false
	if viewerID != nil && *viewerID != user.ID {
		ok, err := s.followRepo.Exists(ctx, *viewerID, user.ID)
		if err != nil {
			log.Printf("[ProfileService] follow check failed for viewer %d on %q: %v", *viewerID, username, err)
		} else {
			following = ok
		}
	}

	profile := profileOf(user, following)
	return &profile, nil
}

// Follow resolves the username and creates the edge, returning the updated
// profile view.
func (s *ProfileService) Follow(ctx context.Context, viewerID int64, username string) (*model.Profile, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrProfileNotFound
		}
		return nil, err
	}

	if err := s.follows.Follow(ctx, viewerID, user.ID); err != nil {
		return nil, err
	}

	profile := profileOf(user, true)
	return &profile, nil
}

// Unfollow resolves the username and removes the edge.
func (s *ProfileService) Unfollow(ctx context.Context, viewerID int64, username string) (*model.Profile, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrProfileNotFound
		}
		return nil, err
	}

	if err := s.follows.Unfollow(ctx, viewerID, user.ID); err != nil {
		return nil, err
	}

	profile := profileOf(user, false)
	return &profile, nil
}

// profileOf builds the public profile shape shared by article, comment and
// profile views.
func profileOf(u *model.User, following bool) model.Profile {
	return model.Profile{
		Username:  u.Username,
		Bio:       u.Bio,
		Image:     u.ImageURL,
		Following: following,
	}
}
