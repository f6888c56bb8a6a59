package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upScheduling, downScheduling)
}

func upScheduling(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	CREATE TABLE scheduled_posts (
		id              VARCHAR PRIMARY KEY,
		page_id         VARCHAR NOT NULL,
		text            TEXT NOT NULL DEFAULT '',
		image_ref       TEXT NOT NULL DEFAULT '',
		scheduled_at    TIMESTAMP WITH TIME ZONE NOT NULL,
		is_reminder     BOOLEAN NOT NULL DEFAULT FALSE,
		target_id       VARCHAR NOT NULL,
		target_name     VARCHAR NOT NULL DEFAULT '',
		target_platform VARCHAR NOT NULL,
		remote_id       VARCHAR NOT NULL DEFAULT '',
		created_at      TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	);
	CREATE INDEX scheduled_posts_page_time_idx ON scheduled_posts (page_id, scheduled_at);

	CREATE TABLE bulk_posts (
		id            VARCHAR PRIMARY KEY,
		page_id       VARCHAR NOT NULL,
		position      INTEGER NOT NULL,
		image_ref     TEXT NOT NULL DEFAULT '',
		text          TEXT NOT NULL DEFAULT '',
		schedule_date TIMESTAMP WITH TIME ZONE,
		target_ids    TEXT[] NOT NULL DEFAULT '{}',
		error         TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX bulk_posts_page_idx ON bulk_posts (page_id, position);
	`)
	return err
}

func downScheduling(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	DROP TABLE bulk_posts;
	DROP TABLE scheduled_posts;
	`)
	return err
}
