package scheduledpost

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/zex-pages/internal/domain"
	"github.com/orgball2608/zex-pages/internal/repositories"
	"github.com/orgball2608/zex-pages/pkg/logger"

	sq "github.com/Masterminds/squirrel"
)

const table = "scheduled_posts"

type Pgx struct {
	pg     *pgxpool.Pool
	logger logger.Logger
}

func NewPgx(pg *pgxpool.Pool, logger logger.Logger) *Pgx {
	return &Pgx{
		pg:     pg,
		logger: logger.WithComponent("ScheduledPostRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

func createQuery(pageID string, posts []domain.ScheduledPost) (string, []any, error) {
	b := repositories.SqBuilder.
		Insert(table).
		Columns("id", "page_id", "text", "image_ref", "scheduled_at", "is_reminder",
			"target_id", "target_name", "target_platform", "remote_id")
	for _, post := range posts {
		b = b.Values(post.ID, pageID, post.Text, post.ImageRef, post.ScheduledAt, post.IsReminder,
			post.TargetID, post.TargetInfo.Name, post.TargetInfo.Platform, post.RemoteID)
	}
	return b.ToSql()
}

// Create adds the posts in one statement
func (p *Pgx) Create(ctx context.Context, pageID string, posts []domain.ScheduledPost) error {
	if len(posts) == 0 {
		return nil
	}

	query, args, err := createQuery(pageID, posts)
	if err != nil {
		return repositories.ErrBadQuery
	}

	_, err = p.pg.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == repositories.UniqueViolation {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (p *Pgx) List(ctx context.Context, pageID string, from time.Time) ([]domain.ScheduledPost, error) {
	query, args, err := repositories.SqBuilder.
		Select("id", "text", "image_ref", "scheduled_at", "is_reminder",
			"target_id", "target_name", "target_platform", "remote_id").
		From(table).
		Where(sq.Eq{"page_id": pageID}).
		Where(sq.GtOrEq{"scheduled_at": from}).
		OrderBy("scheduled_at ASC").
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := p.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []domain.ScheduledPost
	for rows.Next() {
		var post domain.ScheduledPost
		if err := rows.Scan(&post.ID, &post.Text, &post.ImageRef, &post.ScheduledAt, &post.IsReminder,
			&post.TargetID, &post.TargetInfo.Name, &post.TargetInfo.Platform, &post.RemoteID); err != nil {
			return nil, err
		}
		post.TargetInfo.ID = post.TargetID
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

func (p *Pgx) CleanupOldRecords(ctx context.Context, pageID string, olderThan time.Duration) (int64, error) {
	query, args, err := repositories.SqBuilder.
		Delete(table).
		Where(sq.Eq{"page_id": pageID}).
		Where(sq.Lt{"scheduled_at": time.Now().Add(-olderThan)}).
		ToSql()
	if err != nil {
		return 0, repositories.ErrBadQuery
	}

	result, err := p.pg.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	deleted := result.RowsAffected()
	if deleted > 0 {
		p.logger.Info("Cleaned up old scheduled posts", "pageID", pageID, "deleted", deleted)
	}
	return deleted, nil
}
