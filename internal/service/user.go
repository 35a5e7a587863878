package service

import (
	"context"
	"fmt"
	"strings"

	"conduit/internal/model"
	"conduit/internal/repository"
)

// UserService handles registration, authentication and account updates.
type UserService struct {
	repo            repository.UserRepository
	hasher          PasswordHasher
	defaultImageURL string
}

func NewUserService(repo repository.UserRepository, hasher PasswordHasher, defaultImageURL string) *UserService {
	return &UserService{
		repo:            repo,
		hasher:          hasher,
		defaultImageURL: defaultImageURL,
	}
}

// Register creates a new account. Email and username uniqueness are checked
// up front so the caller gets a field-specific error rather than a raw
// constraint violation.
func (s *UserService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	if strings.TrimSpace(req.Username) == "" {
		return nil, model.ErrUsernameRequired
	}
	if strings.TrimSpace(req.Email) == "" {
		return nil, model.ErrEmailRequired
	}
	if strings.TrimSpace(req.Password) == "" {
		return nil, model.ErrPasswordRequired
	}

	emailTaken, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if emailTaken {
		return nil, model.ErrEmailTaken
	}

	usernameTaken, err := s.repo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if usernameTaken {
		return nil, model.ErrUsernameTaken
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if s.defaultImageURL != "" {
		img := s.defaultImageURL
		user.ImageURL = &img
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate verifies an email/password pair. Lookup failures and hash
// mismatches both come back as ErrInvalidCredentials so a caller cannot probe
// which emails are registered.
func (s *UserService) Authenticate(ctx context.Context, req *model.LoginRequest) (*model.User, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, model.ErrInvalidCredentials
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	return user, nil
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByUsername retrieves a user by username.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.repo.GetByUsername(ctx, username)
}

// Update applies a partial update. Username and email uniqueness are
// re-validated only when the field is present and actually changing.
func (s *UserService) Update(ctx context.Context, userID int64, req *model.UpdateUserRequest) (*model.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Username != nil && *req.Username != user.Username {
		taken, err := s.repo.ExistsByUsername(ctx, *req.Username)
		if err != nil {
			return nil, fmt.Errorf("failed to check username: %w", err)
		}
		if taken {
			return nil, model.ErrUsernameTaken
		}
		user.Username = *req.Username
	}

	if req.Email != nil && *req.Email != user.Email {
		taken, err := s.repo.ExistsByEmail(ctx, *req.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if taken {
			return nil, model.ErrEmailTaken
		}
		user.Email = *req.Email
	}

	if req.Password != nil {
		hash, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Image != nil {
		img := *req.Image
		user.ImageURL = &img
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}
