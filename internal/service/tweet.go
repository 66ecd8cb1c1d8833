package service

import (
	"context"
	"fmt"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"

	"microblog/internal/model"
	"microblog/internal/repository"
	"microblog/internal/storage"
)

type TweetService struct {
	tweetRepo repository.TweetRepository
	store     storage.Store
	maxLength int
}

func NewTweetService(tweetRepo repository.TweetRepository, store storage.Store, maxLength int) *TweetService {
	if maxLength <= 0 {
		maxLength = model.DefaultMaxTweetLength
	}
	return &TweetService{
		tweetRepo: tweetRepo,
		store:     store,
		maxLength: maxLength,
	}
}

// Create validates the content and inserts the tweet, claiming the uploaded
// attachments listed in the request. Attachment ownership is not re-checked;
// any existing attachment id can be linked (upload-then-create flow).
func (s *TweetService) Create(ctx context.Context, userID int64, req model.CreateTweetRequest) (*model.Tweet, error) {
	if req.TweetData == "" {
		return nil, model.ErrContentRequired
	}
	if utf8.RuneCountInString(req.TweetData) > s.maxLength {
		return nil, model.ErrContentTooLong
	}

	tweet, err := s.tweetRepo.Create(ctx, userID, req.TweetData, req.TweetMediaIDs)
	if err != nil {
		return nil, fmt.Errorf("create tweet: %w", err)
	}

	log.Infof("[TweetService] User %d created tweet %d", userID, tweet.ID)
	return tweet, nil
}

// List returns tweets newest first. offset is a 1-based page number and limit
// the page size; both must be positive to paginate, otherwise the full list
// is returned. Page p covers rows [(p-1)*limit, p*limit).
func (s *TweetService) List(ctx context.Context, offset, limit int) ([]model.TweetView, error) {
	rowOffset := -1
	if offset > 0 && limit > 0 {
		rowOffset = (offset - 1) * limit
	} else {
		limit = 0
	}

	tweets, err := s.tweetRepo.List(ctx, limit, rowOffset)
	if err != nil {
		return nil, fmt.Errorf("list tweets: %w", err)
	}
	return tweets, nil
}

// Delete removes the caller's tweet. Database rows for likes and attachments
// cascade with it; the backing files are removed from storage only after the
// delete commits, so a crash leaves at worst unreferenced files, never rows
// pointing at missing files.
func (s *TweetService) Delete(ctx context.Context, tweetID, userID int64) error {
	paths, err := s.tweetRepo.Delete(ctx, tweetID, userID)
	if err != nil {
		return err
	}

	for _, path := range paths {
		if err := s.store.Delete(ctx, path); err != nil {
			log.Errorf("[TweetService] Failed to delete media file %s: %v", path, err)
		}
	}

	log.Infof("[TweetService] User %d deleted tweet %d", userID, tweetID)
	return nil
}

// Like adds the caller's like. The tweet must exist; a duplicate like is a
// client error surfaced by the uniqueness constraint.
func (s *TweetService) Like(ctx context.Context, tweetID, userID int64) error {
	exists, err := s.tweetRepo.Exists(ctx, tweetID)
	if err != nil {
		return fmt.Errorf("check tweet exists: %w", err)
	}
	if !exists {
		return model.ErrTweetNotFound
	}

	inserted, err := s.tweetRepo.Like(ctx, tweetID, userID)
	if err != nil {
		return err
	}
	if !inserted {
		return model.ErrAlreadyLiked
	}
	return nil
}

// Unlike removes the caller's like; a missing like is a client error.
func (s *TweetService) Unlike(ctx context.Context, tweetID, userID int64) error {
	return s.tweetRepo.Unlike(ctx, tweetID, userID)
}
