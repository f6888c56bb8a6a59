package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upInitInbox, downInitInbox)
}

func upInitInbox(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	CREATE TABLE inbox_items (
		id                  VARCHAR PRIMARY KEY,
		page_id             VARCHAR NOT NULL,
		platform            VARCHAR NOT NULL,
		type                VARCHAR NOT NULL,
		text                TEXT NOT NULL DEFAULT '',
		author_id           VARCHAR NOT NULL,
		author_name         VARCHAR NOT NULL DEFAULT '',
		post_id             VARCHAR,
		parent_id           VARCHAR NOT NULL DEFAULT '',
		conversation_id     VARCHAR NOT NULL DEFAULT '',
		can_reply_privately BOOLEAN NOT NULL DEFAULT FALSE,
		is_replied          BOOLEAN NOT NULL DEFAULT FALSE,
		created_at          TIMESTAMP WITH TIME ZONE NOT NULL
	);
	CREATE INDEX inbox_items_unreplied_idx ON inbox_items (page_id, created_at) WHERE NOT is_replied;

	CREATE TABLE replied_users (
		page_id   VARCHAR NOT NULL,
		post_key  VARCHAR NOT NULL,
		author_id VARCHAR NOT NULL,
		PRIMARY KEY (page_id, post_key, author_id)
	);

	CREATE TABLE autoresponder_settings (
		page_id    VARCHAR PRIMARY KEY,
		settings   JSONB NOT NULL,
		updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	);
	`)
	return err
}

func downInitInbox(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	DROP TABLE autoresponder_settings;
	DROP TABLE replied_users;
	DROP TABLE inbox_items;
	`)
	return err
}
