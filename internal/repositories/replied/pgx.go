package replied

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/zex-pages/internal/domain"
	"github.com/orgball2608/zex-pages/internal/repositories"
	"github.com/orgball2608/zex-pages/pkg/logger"
)

type Pgx struct {
	pg     *pgxpool.Pool
	logger logger.Logger
}

func NewPgx(pg *pgxpool.Pool, logger logger.Logger) *Pgx {
	return &Pgx{
		pg:     pg,
		logger: logger.WithComponent("RepliedRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

func (p *Pgx) Load(ctx context.Context, pageID string) (domain.RepliedUsersPerPost, error) {
	query, args, err := repositories.SqBuilder.
		Select("post_key", "author_id").
		From("replied_users").
		Where(sq.Eq{"page_id": pageID}).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := p.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := domain.RepliedUsersPerPost{}
	for rows.Next() {
		var postKey, authorID string
		if err := rows.Scan(&postKey, &authorID); err != nil {
			return nil, err
		}
		out.Add(postKey, authorID)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}
