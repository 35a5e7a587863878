package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"conduit/internal/model"
)

// =============================================================================
// MOCK REPOSITORY
// =============================================================================
//
// Tests never hit a real database. The mock implements the UserRepository
// interface with per-test function fields, so each test controls exactly what
// the repository returns.

type mockUserRepository struct {
	createFn           func(ctx context.Context, user *model.User) error
	getByIDFn          func(ctx context.Context, id int64) (*model.User, error)
	getByEmailFn       func(ctx context.Context, email string) (*model.User, error)
	getByUsernameFn    func(ctx context.Context, username string) (*model.User, error)
	existsByEmailFn    func(ctx context.Context, email string) (bool, error)
	existsByUsernameFn func(ctx context.Context, username string) (bool, error)
	updateFn           func(ctx context.Context, user *model.User) error
	listByIDsFn        func(ctx context.Context, ids []int64) ([]model.User, error)

	// Track calls for assertions
	createCalls []*model.User
	updateCalls []*model.User
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	m.createCalls = append(m.createCalls, user)
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.existsByEmailFn != nil {
		return m.existsByEmailFn(ctx, email)
	}
	return false, nil
}

func (m *mockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if m.existsByUsernameFn != nil {
		return m.existsByUsernameFn(ctx, username)
	}
	return false, nil
}

func (m *mockUserRepository) Update(ctx context.Context, user *model.User) error {
	m.updateCalls = append(m.updateCalls, user)
	if m.updateFn != nil {
		return m.updateFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) ListByIDs(ctx context.Context, ids []int64) ([]model.User, error) {
	if m.listByIDsFn != nil {
		return m.listByIDsFn(ctx, ids)
	}
	return nil, nil
}

func strPtr(s string) *string { return &s }

// =============================================================================
// REGISTER TESTS
// =============================================================================

func TestUserService_Register_Success(t *testing.T) {
	mockRepo := &mockUserRepository{
		createFn: func(ctx context.Context, user *model.User) error {
			user.ID = 1
			user.CreatedAt = time.Now()
			return nil
		},
	}
	svc := NewUserService(mockRepo, NewBcryptHasher(), "https://cdn.example.com/default.png")

	req := &model.RegisterRequest{
		Username: "jake",
		Email:    "jake@jake.jake",
		Password: "jakejake",
	}

	user, err := svc.Register(context.Background(), req)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if user.Username != req.Username {
		t.Errorf("username = %q, want %q", user.Username, req.Username)
	}
	if user.Email != req.Email {
		t.Errorf("email = %q, want %q", user.Email, req.Email)
	}

	// New accounts get the default avatar
	if user.ImageURL == nil || *user.ImageURL != "https://cdn.example.com/default.png" {
		t.Errorf("image = %v, want default avatar", user.ImageURL)
	}

	// Verify password was hashed (not stored in plain text!)
	if user.PasswordHash == req.Password {
		t.Error("password should be hashed, not stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		t.Error("password hash should be valid bcrypt hash")
	}

	if len(mockRepo.createCalls) != 1 {
		t.Errorf("Create called %d times, want 1", len(mockRepo.createCalls))
	}
}

func TestUserService_Register_EmailTaken(t *testing.T) {
	mockRepo := &mockUserRepository{
		existsByEmailFn: func(ctx context.Context, email string) (bool, error) {
			return true, nil
		},
	}
	svc := NewUserService(mockRepo, NewBcryptHasher(), "")

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Username: "jake",
		Email:    "jake@jake.jake",
		Password: "jakejake",
	})

	if !errors.Is(err, model.ErrEmailTaken) {
		t.Errorf("error = %v, want %v", err, model.ErrEmailTaken)
	}
	if len(mockRepo.createCalls) != 0 {
		t.Error("Create should not be called when email is taken")
	}
}

func TestUserService_Register_UsernameTaken(t *testing.T) {
	mockRepo := &mockUserRepository{
		existsByUsernameFn: func(ctx context.Context, username string) (bool, error) {
			return true, nil
		},
	}
	svc := NewUserService(mockRepo, NewBcryptHasher(), "")

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Username: "jake",
		Email:    "jake@jake.jake",
		Password: "jakejake",
	})

	if !errors.Is(err, model.ErrUsernameTaken) {
		t.Errorf("error = %v, want %v", err, model.ErrUsernameTaken)
	}
}

func TestUserService_Register_MissingFields(t *testing.T) {
	svc := NewUserService(&mockUserRepository{}, NewBcryptHasher(), "")

	cases := []struct {
		name    string
		req     model.RegisterRequest
		wantErr error
	}{
		{"empty username", model.RegisterRequest{Email: "a@b.c", Password: "pw"}, model.ErrUsernameRequired},
		{"empty email", model.RegisterRequest{Username: "a", Password: "pw"}, model.ErrEmailRequired},
		{"empty password", model.RegisterRequest{Username: "a", Email: "a@b.c"}, model.ErrPasswordRequired},
		{"whitespace username", model.RegisterRequest{Username: "   ", Email: "a@b.c", Password: "pw"}, model.ErrUsernameRequired},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Register(context.Background(), &tc.req); !errors.Is(err, tc.wantErr) {
				t.Errorf("error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

// =============================================================================
// AUTHENTICATE TESTS
// =============================================================================

func TestUserService_Authenticate_Success(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("jakejake"), bcrypt.DefaultCost)
	mockRepo := &mockUserRepository{
		getByEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: 1, Username: "jake", Email: email, PasswordHash: string(hash)}, nil
		},
	}
	svc := NewUserService(mockRepo, NewBcryptHasher(), "")

	user, err := svc.Authenticate(context.Background(), &model.LoginRequest{
		Email:    "jake@jake.jake",
		Password: "jakejake",
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if user.ID != 1 {
		t.Errorf("user ID = %d, want 1", user.ID)
	}
}

func TestUserService_Authenticate_WrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("jakejake"), bcrypt.DefaultCost)
	mockRepo := &mockUserRepository{
		getByEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: 1, Email: email, PasswordHash: string(hash)}, nil
		},
	}
	svc := NewUserService(mockRepo, NewBcryptHasher(), "")

	_, err := svc.Authenticate(context.Background(), &model.LoginRequest{
		Email:    "jake@jake.jake",
		Password: "wrong",
	})

	if !errors.Is(err, model.ErrInvalidCredentials) {
		t.Errorf("error = %v, want %v", err, model.ErrInvalidCredentials)
	}
}

func TestUserService_Authenticate_UnknownEmail(t *testing.T) {
	// An unknown email must look identical to a wrong password, so callers
	// cannot probe which emails are registered.
	svc := NewUserService(&mockUserRepository{}, NewBcryptHasher(), "")

	_, err := svc.Authenticate(context.Background(), &model.LoginRequest{
		Email:    "nobody@jake.jake",
		Password: "whatever",
	})

	if !errors.Is(err, model.ErrInvalidCredentials) {
		t.Errorf("error = %v, want %v", err, model.ErrInvalidCredentials)
	}
}

// =============================================================================
// UPDATE TESTS
// =============================================================================

func TestUserService_Update_PartialBioOnly(t *testing.T) {
	mockRepo := &mockUserRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id, Username: "jake", Email: "jake@jake.jake", Bio: "old"}, nil
		},
	}
	svc := NewUserService(mockRepo, NewBcryptHasher(), "")

	user, err := svc.Update(context.Background(), 1, &model.UpdateUserRequest{Bio: strPtr("I work at statefarm")})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if user.Bio != "I work at statefarm" {
		t.Errorf("bio = %q, want updated bio", user.Bio)
	}
	// Untouched fields survive
	if user.Username != "jake" || user.Email != "jake@jake.jake" {
		t.Error("fields absent from the request should not change")
	}
	if len(mockRepo.updateCalls) != 1 {
		t.Errorf("Update called %d times, want 1", len(mockRepo.updateCalls))
	}
}

func TestUserService_Update_UsernameConflict(t *testing.T) {
	mockRepo := &mockUserRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id, Username: "jake", Email: "jake@jake.jake"}, nil
		},
		existsByUsernameFn: func(ctx context.Context, username string) (bool, error) {
			return true, nil
		},
	}
	svc := NewUserService(mockRepo, NewBcryptHasher(), "")

	_, err := svc.Update(context.Background(), 1, &model.UpdateUserRequest{Username: strPtr("taken")})

	if !errors.Is(err, model.ErrUsernameTaken) {
		t.Errorf("error = %v, want %v", err, model.ErrUsernameTaken)
	}
	if len(mockRepo.updateCalls) != 0 {
		t.Error("Update should not be called on a username conflict")
	}
}

func TestUserService_Update_SameUsernameNoConflictCheck(t *testing.T) {
	// Re-submitting the current username must not trip the uniqueness check
	// against the user's own row.
	mockRepo := &mockUserRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id, Username: "jake", Email: "jake@jake.jake"}, nil
		},
		existsByUsernameFn: func(ctx context.Context, username string) (bool, error) {
			t.Error("ExistsByUsername should not be called for an unchanged username")
			return true, nil
		},
	}
	svc := NewUserService(mockRepo, NewBcryptHasher(), "")

	if _, err := svc.Update(context.Background(), 1, &model.UpdateUserRequest{Username: strPtr("jake")}); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestUserService_Update_RehashesPassword(t *testing.T) {
	mockRepo := &mockUserRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id, Username: "jake", Email: "jake@jake.jake", PasswordHash: "oldhash"}, nil
		},
	}
	svc := NewUserService(mockRepo, NewBcryptHasher(), "")

	user, err := svc.Update(context.Background(), 1, &model.UpdateUserRequest{Password: strPtr("newpassword")})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if user.PasswordHash == "oldhash" || user.PasswordHash == "newpassword" {
		t.Error("password should be re-hashed on update")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("newpassword")); err != nil {
		t.Error("new password hash should be valid bcrypt hash")
	}
}
