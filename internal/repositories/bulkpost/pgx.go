package bulkpost

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/zex-pages/internal/domain"
	"github.com/orgball2608/zex-pages/internal/repositories"
	"github.com/orgball2608/zex-pages/pkg/logger"
)

const table = "bulk_posts"

type Pgx struct {
	pg     *pgxpool.Pool
	logger logger.Logger
}

func NewPgx(pg *pgxpool.Pool, logger logger.Logger) *Pgx {
	return &Pgx{
		pg:     pg,
		logger: logger.WithComponent("BulkPostRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

func (p *Pgx) List(ctx context.Context, pageID string) ([]domain.BulkPostItem, error) {
	query, args, err := repositories.SqBuilder.
		Select("id", "image_ref", "text", "schedule_date", "target_ids", "error").
		From(table).
		Where(sq.Eq{"page_id": pageID}).
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := p.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.BulkPostItem{}
	for rows.Next() {
		var item domain.BulkPostItem
		if err := rows.Scan(&item.ID, &item.ImageRef, &item.Text, &item.ScheduleDate, &item.TargetIDs, &item.Error); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func insertQuery(pageID string, items []domain.BulkPostItem) (string, []any, error) {
	b := repositories.SqBuilder.
		Insert(table).
		Columns("id", "page_id", "position", "image_ref", "text", "schedule_date", "target_ids", "error")
	for i, item := range items {
		targets := item.TargetIDs
		if targets == nil {
			targets = []string{}
		}
		b = b.Values(item.ID, pageID, i, item.ImageRef, item.Text, item.ScheduleDate, targets, item.Error)
	}
	return b.ToSql()
}

func (p *Pgx) Replace(ctx context.Context, pageID string, items []domain.BulkPostItem) error {
	return pgx.BeginFunc(ctx, p.pg, func(tx pgx.Tx) error {
		query, args, err := repositories.SqBuilder.
			Delete(table).
			Where(sq.Eq{"page_id": pageID}).
			ToSql()
		if err != nil {
			return repositories.ErrBadQuery
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to clear bulk batch: %w", err)
		}

		if len(items) == 0 {
			return nil
		}

		query, args, err = insertQuery(pageID, items)
		if err != nil {
			return repositories.ErrBadQuery
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to store bulk batch: %w", err)
		}
		return nil
	})
}
