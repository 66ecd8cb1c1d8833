package model

import "errors"

// Like is an edge (tweet_id, user_id), unique per pair. A user may like a
// given tweet at most once; the database constraint is the final arbiter
// under concurrent requests.
type Like struct {
	ID      int64 `db:"id" json:"id"`
	TweetID int64 `db:"tweet_id" json:"tweet_id"`
	UserID  int64 `db:"user_id" json:"user_id"`
}

var (
	ErrAlreadyLiked = errors.New("tweet already liked")
	ErrNotLiked     = errors.New("tweet is not liked")
)
