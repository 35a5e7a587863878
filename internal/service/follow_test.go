package service

import (
	"context"
	"errors"
	"testing"

	"conduit/internal/model"
)

type mockFollowRepository struct {
	createFn       func(ctx context.Context, followerID, followeeID int64) (bool, error)
	deleteFn       func(ctx context.Context, followerID, followeeID int64) error
	existsFn       func(ctx context.Context, followerID, followeeID int64) (bool, error)
	checkFollowsFn func(ctx context.Context, followerID int64, followeeIDs []int64) (map[int64]bool, error)
}

func (m *mockFollowRepository) Create(ctx context.Context, followerID, followeeID int64) (bool, error) {
	if m.createFn != nil {
		return m.createFn(ctx, followerID, followeeID)
	}
	return true, nil
}

func (m *mockFollowRepository) Delete(ctx context.Context, followerID, followeeID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, followerID, followeeID)
	}
	return nil
}

func (m *mockFollowRepository) Exists(ctx context.Context, followerID, followeeID int64) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, followerID, followeeID)
	}
	return false, nil
}

func (m *mockFollowRepository) CheckFollows(ctx context.Context, followerID int64, followeeIDs []int64) (map[int64]bool, error) {
	if m.checkFollowsFn != nil {
		return m.checkFollowsFn(ctx, followerID, followeeIDs)
	}
	return map[int64]bool{}, nil
}

func userByIDStub(users map[int64]*model.User) func(ctx context.Context, id int64) (*model.User, error) {
	return func(ctx context.Context, id int64) (*model.User, error) {
		if u, ok := users[id]; ok {
			return u, nil
		}
		return nil, model.ErrUserNotFound
	}
}

func TestFollowService_Follow_Success(t *testing.T) {
	var gotFollower, gotFollowee int64
	followRepo := &mockFollowRepository{
		createFn: func(ctx context.Context, followerID, followeeID int64) (bool, error) {
			gotFollower, gotFollowee = followerID, followeeID
			return true, nil
		},
	}
	userRepo := &mockUserRepository{
		getByIDFn: userByIDStub(map[int64]*model.User{2: {ID: 2, Username: "celeb"}}),
	}
	svc := NewFollowService(followRepo, userRepo)

	if err := svc.Follow(context.Background(), 1, 2); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if gotFollower != 1 || gotFollowee != 2 {
		t.Errorf("edge = (%d, %d), want (1, 2)", gotFollower, gotFollowee)
	}
}

func TestFollowService_Follow_Self(t *testing.T) {
	// The self check runs before the existence lookup, so following yourself
	// fails the same way whether or not the account exists.
	userRepo := &mockUserRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			t.Error("GetByID should not be called for a self-follow")
			return nil, model.ErrUserNotFound
		},
	}
	svc := NewFollowService(&mockFollowRepository{}, userRepo)

	if err := svc.Follow(context.Background(), 7, 7); !errors.Is(err, model.ErrCannotFollowSelf) {
		t.Errorf("error = %v, want %v", err, model.ErrCannotFollowSelf)
	}
}

func TestFollowService_Follow_UnknownTarget(t *testing.T) {
	svc := NewFollowService(&mockFollowRepository{}, &mockUserRepository{})

	if err := svc.Follow(context.Background(), 1, 99); !errors.Is(err, model.ErrUserNotFound) {
		t.Errorf("error = %v, want %v", err, model.ErrUserNotFound)
	}
}

func TestFollowService_Follow_Duplicate(t *testing.T) {
	followRepo := &mockFollowRepository{
		createFn: func(ctx context.Context, followerID, followeeID int64) (bool, error) {
			return false, nil // edge already present
		},
	}
	userRepo := &mockUserRepository{
		getByIDFn: userByIDStub(map[int64]*model.User{2: {ID: 2}}),
	}
	svc := NewFollowService(followRepo, userRepo)

	if err := svc.Follow(context.Background(), 1, 2); !errors.Is(err, model.ErrAlreadyFollowing) {
		t.Errorf("error = %v, want %v", err, model.ErrAlreadyFollowing)
	}
}

func TestFollowService_Unfollow_Missing(t *testing.T) {
	followRepo := &mockFollowRepository{
		deleteFn: func(ctx context.Context, followerID, followeeID int64) error {
			return model.ErrNotFollowing
		},
	}
	svc := NewFollowService(followRepo, &mockUserRepository{})

	if err := svc.Unfollow(context.Background(), 1, 2); !errors.Is(err, model.ErrNotFollowing) {
		t.Errorf("error = %v, want %v", err, model.ErrNotFollowing)
	}
}

func TestFollowService_Unfollow_Self(t *testing.T) {
	svc := NewFollowService(&mockFollowRepository{}, &mockUserRepository{})

	if err := svc.Unfollow(context.Background(), 7, 7); !errors.Is(err, model.ErrCannotFollowSelf) {
		t.Errorf("error = %v, want %v", err, model.ErrCannotFollowSelf)
	}
}
