package inbox

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/zex-pages/internal/domain"
	"github.com/orgball2608/zex-pages/internal/repositories"
	"github.com/orgball2608/zex-pages/pkg/logger"
)

const table = "inbox_items"

var columns = []string{
	"id", "platform", "type", "text", "author_id", "author_name", "post_id",
	"parent_id", "conversation_id", "can_reply_privately", "is_replied", "created_at",
}

type Pgx struct {
	pg     *pgxpool.Pool
	logger logger.Logger
}

func NewPgx(pg *pgxpool.Pool, logger logger.Logger) *Pgx {
	return &Pgx{
		pg:     pg,
		logger: logger.WithComponent("InboxRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

func upsertQuery(pageID string, items []domain.InboxItem) (string, []any, error) {
	b := repositories.SqBuilder.
		Insert(table).
		Columns(append([]string{"page_id"}, columns...)...)

	for _, it := range items {
		var postID *string
		if it.Post != nil && it.Post.ID != "" {
			id := it.Post.ID
			postID = &id
		}
		b = b.Values(pageID, it.ID, it.Platform, it.Type, it.Text, it.AuthorID, it.AuthorName, postID,
			it.ParentID, it.ConversationID, it.CanReplyPrivately, it.IsReplied, it.Timestamp)
	}

	return b.Suffix("ON CONFLICT (id) DO NOTHING").ToSql()
}

func (p *Pgx) Upsert(ctx context.Context, pageID string, items []domain.InboxItem) (int64, error) {
	if len(items) == 0 {
		return 0, nil
	}

	query, args, err := upsertQuery(pageID, items)
	if err != nil {
		return 0, repositories.ErrBadQuery
	}

	tag, err := p.pg.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert inbox items: %w", err)
	}
	return tag.RowsAffected(), nil
}

func listUnrepliedQuery(pageID string, after Cursor, limit uint64) (string, []any, error) {
	b := repositories.SqBuilder.
		Select(columns...).
		From(table).
		Where(sq.Eq{"page_id": pageID, "is_replied": false})

	if after.ID != "" {
		b = b.Where(sq.Expr("(created_at, id) > (?, ?)", after.CreatedAt, after.ID))
	}

	return b.OrderBy("created_at ASC", "id ASC").Limit(limit).ToSql()
}

func (p *Pgx) ListUnreplied(ctx context.Context, pageID string, after Cursor, limit uint64) ([]domain.InboxItem, error) {
	query, args, err := listUnrepliedQuery(pageID, after, limit)
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := p.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.InboxItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (p *Pgx) Get(ctx context.Context, pageID, id string) (*domain.InboxItem, error) {
	query, args, err := repositories.SqBuilder.
		Select(columns...).
		From(table).
		Where(sq.Eq{"page_id": pageID, "id": id}).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	item, err := scanItem(p.pg.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func markRepliedQuery(pageID string, ids []string) (string, []any, error) {
	return repositories.SqBuilder.
		Update(table).
		Set("is_replied", true).
		Where(sq.Eq{"page_id": pageID, "id": ids}).
		ToSql()
}

func (p *Pgx) MarkReplied(ctx context.Context, pageID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := markRepliedQuery(pageID, ids)
	if err != nil {
		return repositories.ErrBadQuery
	}

	tag, err := p.pg.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func repliedInsertQuery(pageID string, replied domain.RepliedUsersPerPost) (string, []any, error) {
	b := repositories.SqBuilder.
		Insert("replied_users").
		Columns("page_id", "post_key", "author_id")
	for postKey, authors := range replied {
		for _, author := range authors {
			b = b.Values(pageID, postKey, author)
		}
	}
	return b.Suffix("ON CONFLICT DO NOTHING").ToSql()
}

func (p *Pgx) CommitPass(ctx context.Context, pageID string, handledIDs []string, replied domain.RepliedUsersPerPost) error {
	return pgx.BeginFunc(ctx, p.pg, func(tx pgx.Tx) error {
		if len(handledIDs) > 0 {
			query, args, err := markRepliedQuery(pageID, handledIDs)
			if err != nil {
				return repositories.ErrBadQuery
			}
			if _, err := tx.Exec(ctx, query, args...); err != nil {
				return fmt.Errorf("failed to mark items replied: %w", err)
			}
		}

		if countAuthors(replied) > 0 {
			query, args, err := repliedInsertQuery(pageID, replied)
			if err != nil {
				return repositories.ErrBadQuery
			}
			if _, err := tx.Exec(ctx, query, args...); err != nil {
				return fmt.Errorf("failed to store replied users: %w", err)
			}
		}

		p.logger.Debug("Pass committed", "pageID", pageID, "handled", len(handledIDs))
		return nil
	})
}

func (p *Pgx) LatestTimestamp(ctx context.Context, pageID string) (time.Time, error) {
	query, args, err := repositories.SqBuilder.
		Select("COALESCE(MAX(created_at), 'epoch'::timestamptz)").
		From(table).
		Where(sq.Eq{"page_id": pageID}).
		ToSql()
	if err != nil {
		return time.Time{}, repositories.ErrBadQuery
	}

	var latest time.Time
	if err := p.pg.QueryRow(ctx, query, args...).Scan(&latest); err != nil {
		return time.Time{}, err
	}
	if latest.Unix() == 0 {
		return time.Time{}, nil
	}
	return latest, nil
}

func scanItem(row pgx.Row) (*domain.InboxItem, error) {
	var (
		item   domain.InboxItem
		postID *string
	)
	err := row.Scan(&item.ID, &item.Platform, &item.Type, &item.Text, &item.AuthorID, &item.AuthorName, &postID,
		&item.ParentID, &item.ConversationID, &item.CanReplyPrivately, &item.IsReplied, &item.Timestamp)
	if err != nil {
		return nil, err
	}
	if postID != nil {
		item.Post = &domain.PostRef{ID: *postID}
	}
	return &item, nil
}

func countAuthors(replied domain.RepliedUsersPerPost) int {
	n := 0
	for _, authors := range replied {
		n += len(authors)
	}
	return n
}
