package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Uniqueness and cascade rules live in the schema, not in application code:
// concurrent writers race to the constraint and the loser surfaces a client
// error. Deleting a user removes their tweets, likes and follow edges in both
// directions; deleting a tweet removes its likes and attachments.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id          BIGSERIAL PRIMARY KEY,
	first_name  VARCHAR(255) NOT NULL,
	surname     VARCHAR(255) NOT NULL,
	middle_name VARCHAR(255),
	api_key     VARCHAR(255) NOT NULL UNIQUE,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS follows (
	id          BIGSERIAL PRIMARY KEY,
	follower_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	followee_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (follower_id, followee_id),
	CHECK (follower_id <> followee_id)
);

CREATE TABLE IF NOT EXISTS tweets (
	id         BIGSERIAL PRIMARY KEY,
	user_id    BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	content    TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_tweets_created_at ON tweets (created_at DESC, id DESC);

CREATE TABLE IF NOT EXISTS likes (
	id       BIGSERIAL PRIMARY KEY,
	tweet_id BIGINT NOT NULL REFERENCES tweets(id) ON DELETE CASCADE,
	user_id  BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	UNIQUE (tweet_id, user_id)
);

CREATE TABLE IF NOT EXISTS attachments (
	id         BIGSERIAL PRIMARY KEY,
	tweet_id   BIGINT REFERENCES tweets(id) ON DELETE CASCADE,
	image_path VARCHAR(255) NOT NULL
);
`

// Migrate applies the schema. Statements are idempotent so it is safe to run
// on every startup.
func Migrate(db *sqlx.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
