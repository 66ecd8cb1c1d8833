package model

import (
	"errors"
	"time"
)

// Tweet is a short text message owned by exactly one author.
type Tweet struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// TweetView is the enriched tweet shape returned by GET /tweets.
type TweetView struct {
	ID          int64       `json:"id"`
	Content     string      `json:"content"`
	Attachments []string    `json:"attachments"`
	Author      UserSummary `json:"author"`
	Likes       []LikeView  `json:"likes"`
}

// LikeView identifies one user who liked a tweet.
type LikeView struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
}

// CreateTweetRequest is the request body for POST /tweets. Media ids refer to
// attachments uploaded beforehand via POST /medias.
type CreateTweetRequest struct {
	TweetData     string  `json:"tweet_data"`
	TweetMediaIDs []int64 `json:"tweet_media_ids"`
}

// CreateTweetResponse returns the id of the created tweet.
type CreateTweetResponse struct {
	Result  bool  `json:"result"`
	TweetID int64 `json:"tweet_id"`
}

// TweetListResponse is the (optionally paginated) tweet list.
type TweetListResponse struct {
	Result bool        `json:"result"`
	Tweets []TweetView `json:"tweets"`
}

// DefaultMaxTweetLength bounds tweet content when no limit is configured.
// Length is counted in runes, not bytes.
const DefaultMaxTweetLength = 5000

var (
	ErrTweetNotFound   = errors.New("tweet not found")
	ErrNotTweetOwner   = errors.New("not the owner of this tweet")
	ErrContentRequired = errors.New("tweet content is required")
	ErrContentTooLong  = errors.New("tweet content too long")
)
