package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"microblog/internal/model"
)

type attachmentRepository struct {
	db *sqlx.DB
}

func NewAttachmentRepository(db *sqlx.DB) AttachmentRepository {
	return &attachmentRepository{db: db}
}

// Create inserts an unclaimed attachment row. It is linked to a tweet later,
// when the tweet is created with this id in tweet_media_ids.
func (r *attachmentRepository) Create(ctx context.Context, imagePath string) (*model.Attachment, error) {
	query := `
		INSERT INTO attachments (image_path)
		VALUES ($1)
		RETURNING id, tweet_id, image_path
	`

	var a model.Attachment
	if err := r.db.GetContext(ctx, &a, query, imagePath); err != nil {
		return nil, fmt.Errorf("failed to insert attachment: %w", err)
	}
	return &a, nil
}

func (r *attachmentRepository) GetByID(ctx context.Context, id int64) (*model.Attachment, error) {
	query := `SELECT id, tweet_id, image_path FROM attachments WHERE id = $1`

	var a model.Attachment
	err := r.db.GetContext(ctx, &a, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrAttachmentNotFound
		}
		return nil, fmt.Errorf("failed to get attachment: %w", err)
	}
	return &a, nil
}
