package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"microblog/internal/config"
	"microblog/internal/model"
	"microblog/internal/repository"
)

// UserService handles identity resolution, signup and profile assembly.
type UserService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	testUser   config.TestUserConfig
}

func NewUserService(userRepo repository.UserRepository, followRepo repository.FollowRepository, testUser config.TestUserConfig) *UserService {
	return &UserService{
		userRepo:   userRepo,
		followRepo: followRepo,
		testUser:   testUser,
	}
}

// Resolve maps an api key to a user. Unknown or absent keys resolve to the
// test user, which EnsureTestUser guarantees to exist; returning the fallback
// is a product requirement, not an error path. The front-end breaks when no
// identity comes back at all.
func (s *UserService) Resolve(ctx context.Context, apiKey string) (*model.User, error) {
	if apiKey != "" {
		user, err := s.userRepo.GetByAPIKey(ctx, apiKey)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, model.ErrUserNotFound) {
			return nil, err
		}
	}

	user, err := s.userRepo.GetByAPIKey(ctx, s.testUser.APIKey)
	if err != nil {
		return nil, fmt.Errorf("resolve fallback user: %w", err)
	}
	return user, nil
}

// EnsureTestUser creates the fallback user if it is missing. Called once at
// startup, before the server accepts traffic.
func (s *UserService) EnsureTestUser(ctx context.Context) (*model.User, error) {
	user, err := s.userRepo.GetByAPIKey(ctx, s.testUser.APIKey)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	user = &model.User{
		FirstName: s.testUser.FirstName,
		Surname:   s.testUser.Surname,
		APIKey:    s.testUser.APIKey,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create test user: %w", err)
	}
	log.Infof("[UserService] Created test user id=%d", user.ID)
	return user, nil
}

// Register creates a user with a generated api key.
func (s *UserService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.Surname) == "" {
		return nil, model.ErrNameRequired
	}

	user := &model.User{
		FirstName:  req.FirstName,
		Surname:    req.Surname,
		MiddleName: req.MiddleName,
		APIKey:     uuid.NewString(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Profile returns the user with their follower and following lists.
func (s *UserService) Profile(ctx context.Context, userID int64) (*model.Profile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.profileOf(ctx, user)
}

// ProfileOf assembles the profile for an already resolved user, skipping the
// second id lookup.
func (s *UserService) ProfileOf(ctx context.Context, user *model.User) (*model.Profile, error) {
	return s.profileOf(ctx, user)
}

func (s *UserService) profileOf(ctx context.Context, user *model.User) (*model.Profile, error) {
	followers, err := s.followRepo.GetFollowers(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	following, err := s.followRepo.GetFollowing(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	if followers == nil {
		followers = []model.UserSummary{}
	}
	if following == nil {
		following = []model.UserSummary{}
	}

	return &model.Profile{
		ID:        user.ID,
		Name:      user.Name(),
		Followers: followers,
		Following: following,
	}, nil
}
