package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"microblog/internal/model"
)

type tweetRepository struct {
	db *sqlx.DB
}

func NewTweetRepository(db *sqlx.DB) TweetRepository {
	return &tweetRepository{db: db}
}

// Create inserts the tweet and claims the listed attachments in one
// transaction. Attachment ids that do not exist are silently skipped, which
// mirrors the upload-then-create flow: the client sends back the ids it was
// given at upload time.
func (r *tweetRepository) Create(ctx context.Context, userID int64, content string, mediaIDs []int64) (*model.Tweet, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var tweet model.Tweet
	query := `
		INSERT INTO tweets (user_id, content)
		VALUES ($1, $2)
		RETURNING id, user_id, content, created_at
	`
	if err := tx.GetContext(ctx, &tweet, query, userID, content); err != nil {
		return nil, fmt.Errorf("insert tweet: %w", err)
	}

	if len(mediaIDs) > 0 {
		_, err = tx.ExecContext(ctx, `
			UPDATE attachments SET tweet_id = $1 WHERE id = ANY($2)
		`, tweet.ID, pq.Array(mediaIDs))
		if err != nil {
			return nil, fmt.Errorf("claim attachments: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return &tweet, nil
}

// List returns enriched tweets newest first. Attachments and likes are
// fetched with two batch queries over the page's ids rather than per-tweet
// lookups.
func (r *tweetRepository) List(ctx context.Context, limit, rowOffset int) ([]model.TweetView, error) {
	query := `
		SELECT t.id, t.content, u.id AS author_id, u.first_name || ' ' || u.surname AS author_name
		FROM tweets t
		JOIN users u ON u.id = t.user_id
		ORDER BY t.created_at DESC, t.id DESC
	`
	args := []interface{}{}
	if limit > 0 && rowOffset >= 0 {
		query += ` LIMIT $1 OFFSET $2`
		args = append(args, limit, rowOffset)
	}

	type tweetRow struct {
		ID         int64  `db:"id"`
		Content    string `db:"content"`
		AuthorID   int64  `db:"author_id"`
		AuthorName string `db:"author_name"`
	}

	var rows []tweetRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list tweets: %w", err)
	}
	if len(rows) == 0 {
		return []model.TweetView{}, nil
	}

	ids := make([]int64, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}

	attachments, err := r.attachmentLinks(ctx, ids)
	if err != nil {
		return nil, err
	}
	likes, err := r.likers(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]model.TweetView, len(rows))
	for i, row := range rows {
		view := model.TweetView{
			ID:          row.ID,
			Content:     row.Content,
			Author:      model.UserSummary{ID: row.AuthorID, Name: row.AuthorName},
			Attachments: attachments[row.ID],
			Likes:       likes[row.ID],
		}
		if view.Attachments == nil {
			view.Attachments = []string{}
		}
		if view.Likes == nil {
			view.Likes = []model.LikeView{}
		}
		views[i] = view
	}
	return views, nil
}

func (r *tweetRepository) attachmentLinks(ctx context.Context, tweetIDs []int64) (map[int64][]string, error) {
	query := `
		SELECT tweet_id, image_path
		FROM attachments
		WHERE tweet_id = ANY($1)
		ORDER BY id
	`

	type attachmentRow struct {
		TweetID   int64  `db:"tweet_id"`
		ImagePath string `db:"image_path"`
	}

	var rows []attachmentRow
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(tweetIDs)); err != nil {
		return nil, fmt.Errorf("failed to get attachments: %w", err)
	}

	result := make(map[int64][]string)
	for _, row := range rows {
		result[row.TweetID] = append(result[row.TweetID], row.ImagePath)
	}
	return result, nil
}

func (r *tweetRepository) likers(ctx context.Context, tweetIDs []int64) (map[int64][]model.LikeView, error) {
	query := `
		SELECT l.tweet_id, l.user_id, u.first_name || ' ' || u.surname AS name
		FROM likes l
		JOIN users u ON u.id = l.user_id
		WHERE l.tweet_id = ANY($1)
		ORDER BY l.id
	`

	type likeRow struct {
		TweetID int64  `db:"tweet_id"`
		UserID  int64  `db:"user_id"`
		Name    string `db:"name"`
	}

	var rows []likeRow
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(tweetIDs)); err != nil {
		return nil, fmt.Errorf("failed to get likes: %w", err)
	}

	result := make(map[int64][]model.LikeView)
	for _, row := range rows {
		result[row.TweetID] = append(result[row.TweetID], model.LikeView{UserID: row.UserID, Name: row.Name})
	}
	return result, nil
}

// Delete removes the tweet only when owned by userID. The attachment paths
// are collected first so the caller can remove the backing files after the
// transaction commits; rows cascade with the tweet.
func (r *tweetRepository) Delete(ctx context.Context, tweetID, userID int64) ([]string, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var paths []string
	err = tx.SelectContext(ctx, &paths, `
		SELECT image_path FROM attachments WHERE tweet_id = $1 ORDER BY id
	`, tweetID)
	if err != nil {
		return nil, fmt.Errorf("get attachment paths: %w", err)
	}

	result, err := tx.ExecContext(ctx, `
		DELETE FROM tweets WHERE id = $1 AND user_id = $2
	`, tweetID, userID)
	if err != nil {
		return nil, fmt.Errorf("delete tweet: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		var exists bool
		r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM tweets WHERE id = $1)`, tweetID)
		if exists {
			return nil, model.ErrNotTweetOwner
		}
		return nil, model.ErrTweetNotFound
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return paths, nil
}

func (r *tweetRepository) Exists(ctx context.Context, tweetID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM tweets WHERE id = $1)`, tweetID)
	if err != nil && err != sql.ErrNoRows {
		return false, fmt.Errorf("failed to check tweet existence: %w", err)
	}
	return exists, nil
}

// Like relies on the unique (tweet_id, user_id) constraint; see
// followRepository.Create for the race rationale.
func (r *tweetRepository) Like(ctx context.Context, tweetID, userID int64) (bool, error) {
	query := `
		INSERT INTO likes (tweet_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (tweet_id, user_id) DO NOTHING
	`
	result, err := r.db.ExecContext(ctx, query, tweetID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to create like: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

func (r *tweetRepository) Unlike(ctx context.Context, tweetID, userID int64) error {
	query := `DELETE FROM likes WHERE tweet_id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, tweetID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete like: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrNotLiked
	}
	return nil
}
