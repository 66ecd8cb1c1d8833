package repository

import (
	"context"

	"microblog/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByAPIKey(ctx context.Context, apiKey string) (*model.User, error)
	Delete(ctx context.Context, id int64) error
}

type FollowRepository interface {
	// Create inserts the edge; returns false when it already exists.
	Create(ctx context.Context, followerID, followeeID int64) (bool, error)
	Delete(ctx context.Context, followerID, followeeID int64) error
	GetFollowers(ctx context.Context, userID int64) ([]model.UserSummary, error)
	GetFollowing(ctx context.Context, userID int64) ([]model.UserSummary, error)
}

type TweetRepository interface {
	// Create inserts the tweet and claims the listed attachments in one
	// transaction.
	Create(ctx context.Context, userID int64, content string, mediaIDs []int64) (*model.Tweet, error)
	// List returns enriched tweets ordered by creation time descending.
	// A negative rowOffset (or non-positive limit) disables pagination.
	List(ctx context.Context, limit, rowOffset int) ([]model.TweetView, error)
	// Delete removes the tweet when owned by userID and returns the image
	// paths of its attachments so the caller can clean up storage.
	Delete(ctx context.Context, tweetID, userID int64) ([]string, error)
	Exists(ctx context.Context, tweetID int64) (bool, error)
	// Like inserts the edge; returns false when it already exists.
	Like(ctx context.Context, tweetID, userID int64) (bool, error)
	Unlike(ctx context.Context, tweetID, userID int64) error
}

type AttachmentRepository interface {
	Create(ctx context.Context, imagePath string) (*model.Attachment, error)
	GetByID(ctx context.Context, id int64) (*model.Attachment, error)
}
