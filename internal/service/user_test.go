package service

import (
	"context"
	"errors"
	"testing"

	"microblog/internal/config"
	"microblog/internal/model"
)

// mockUserRepository implements repository.UserRepository. Because services
// depend on the repository interface, the mock swaps in without a database.
type mockUserRepository struct {
	createFn      func(ctx context.Context, user *model.User) error
	getByIDFn     func(ctx context.Context, id int64) (*model.User, error)
	getByAPIKeyFn func(ctx context.Context, apiKey string) (*model.User, error)
	deleteFn      func(ctx context.Context, id int64) error

	createCalls []*model.User
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

func (m *mockUserRepository) GetByAPIKey(ctx context.Context, apiKey string) (*model.User, error) {
	if m.getByAPIKeyFn != nil {
		return m.getByAPIKeyFn(ctx, apiKey)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

var testUserCfg = config.TestUserConfig{APIKey: "test", FirstName: "Test", Surname: "User"}

func TestUserService_Resolve_KnownKey(t *testing.T) {
	userRepo := &mockUserRepository{
		getByAPIKeyFn: func(ctx context.Context, apiKey string) (*model.User, error) {
			if apiKey == "alice-key" {
				return &model.User{ID: 2, FirstName: "Alice", Surname: "A", APIKey: apiKey}, nil
			}
			return nil, model.ErrUserNotFound
		},
	}
	svc := NewUserService(userRepo, &mockFollowRepository{}, testUserCfg)

	user, err := svc.Resolve(context.Background(), "alice-key")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if user.ID != 2 {
		t.Errorf("resolved user id = %d, want 2", user.ID)
	}
}

func TestUserService_Resolve_FallsBackToTestUser(t *testing.T) {
	testUser := &model.User{ID: 1, FirstName: "Test", Surname: "User", APIKey: "test"}
	userRepo := &mockUserRepository{
		getByAPIKeyFn: func(ctx context.Context, apiKey string) (*model.User, error) {
			if apiKey == "test" {
				return testUser, nil
			}
			return nil, model.ErrUserNotFound
		},
	}
	svc := NewUserService(userRepo, &mockFollowRepository{}, testUserCfg)

	// Unknown key resolves to the test user, never an error.
	user, err := svc.Resolve(context.Background(), "no-such-key")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if user.ID != testUser.ID {
		t.Errorf("resolved user id = %d, want test user %d", user.ID, testUser.ID)
	}

	// Absent key behaves the same.
	user, err = svc.Resolve(context.Background(), "")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if user.ID != testUser.ID {
		t.Errorf("resolved user id = %d, want test user %d", user.ID, testUser.ID)
	}
}

func TestUserService_EnsureTestUser_CreatesWhenMissing(t *testing.T) {
	userRepo := &mockUserRepository{
		createFn: func(ctx context.Context, user *model.User) error {
			user.ID = 1
			return nil
		},
	}
	svc := NewUserService(userRepo, &mockFollowRepository{}, testUserCfg)

	user, err := svc.EnsureTestUser(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if user.APIKey != "test" {
		t.Errorf("api key = %q, want %q", user.APIKey, "test")
	}
	if len(userRepo.createCalls) != 1 {
		t.Errorf("Create called %d times, want 1", len(userRepo.createCalls))
	}
}

func TestUserService_EnsureTestUser_Idempotent(t *testing.T) {
	existing := &model.User{ID: 1, APIKey: "test"}
	userRepo := &mockUserRepository{
		getByAPIKeyFn: func(ctx context.Context, apiKey string) (*model.User, error) {
			return existing, nil
		},
	}
	svc := NewUserService(userRepo, &mockFollowRepository{}, testUserCfg)

	user, err := svc.EnsureTestUser(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if user != existing {
		t.Error("expected the existing test user to be returned")
	}
	if len(userRepo.createCalls) != 0 {
		t.Error("Create should not be called when the test user exists")
	}
}

func TestUserService_Register_GeneratesAPIKey(t *testing.T) {
	userRepo := &mockUserRepository{
		createFn: func(ctx context.Context, user *model.User) error {
			user.ID = 5
			return nil
		},
	}
	svc := NewUserService(userRepo, &mockFollowRepository{}, testUserCfg)

	user, err := svc.Register(context.Background(), &model.RegisterRequest{
		FirstName: "Jane",
		Surname:   "Doe",
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if user.APIKey == "" {
		t.Error("expected a generated api key")
	}
	if user.Name() != "Jane Doe" {
		t.Errorf("name = %q, want %q", user.Name(), "Jane Doe")
	}
}

func TestUserService_Register_MissingName(t *testing.T) {
	userRepo := &mockUserRepository{}
	svc := NewUserService(userRepo, &mockFollowRepository{}, testUserCfg)

	_, err := svc.Register(context.Background(), &model.RegisterRequest{FirstName: "  "})
	if !errors.Is(err, model.ErrNameRequired) {
		t.Errorf("error = %v, want %v", err, model.ErrNameRequired)
	}
	if len(userRepo.createCalls) != 0 {
		t.Error("Create should not be called on validation failure")
	}
}

func TestUserService_Profile_AssemblesFollowLists(t *testing.T) {
	userRepo := &mockUserRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id, FirstName: "Jane", Surname: "Doe"}, nil
		},
	}
	followRepo := &mockFollowRepository{
		getFollowersFn: func(ctx context.Context, userID int64) ([]model.UserSummary, error) {
			return []model.UserSummary{{ID: 2, Name: "Bob B"}}, nil
		},
		getFollowingFn: func(ctx context.Context, userID int64) ([]model.UserSummary, error) {
			return nil, nil // no outgoing edges
		},
	}
	svc := NewUserService(userRepo, followRepo, testUserCfg)

	profile, err := svc.Profile(context.Background(), 1)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if profile.Name != "Jane Doe" {
		t.Errorf("name = %q, want %q", profile.Name, "Jane Doe")
	}
	if len(profile.Followers) != 1 || profile.Followers[0].ID != 2 {
		t.Errorf("followers = %+v, want one entry with id 2", profile.Followers)
	}
	// Empty lists marshal as [], never null.
	if profile.Following == nil {
		t.Error("following must be an empty slice, not nil")
	}
}

func TestUserService_Profile_UnknownUser(t *testing.T) {
	svc := NewUserService(&mockUserRepository{}, &mockFollowRepository{}, testUserCfg)

	_, err := svc.Profile(context.Background(), 42)
	if !errors.Is(err, model.ErrUserNotFound) {
		t.Errorf("error = %v, want %v", err, model.ErrUserNotFound)
	}
}
