package service

import (
	"context"

	log "github.com/sirupsen/logrus"

	"microblog/internal/model"
	"microblog/internal/repository"
)

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

// Follow creates the edge follower -> followee. Self-follow is rejected
// before any write; a duplicate surfaces from the insert itself so two
// concurrent follows cannot both succeed.
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

	log.Infof("[FollowService] User %d followed user %d", followerID, followeeID)
	return nil
}

// Unfollow removes the edge; a missing edge is a client error, not a no-op.
func (s *FollowService) Unfollow(ctx context.Context, followerID, followeeID int64) error {
	if err := s.followRepo.Delete(ctx, followerID, followeeID); err != nil {
		return err
	}

	log.Infof("[FollowService] User %d unfollowed user %d", followerID, followeeID)
	return nil
}
