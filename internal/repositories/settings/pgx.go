package settings

import (
	"context"
	"encoding/json"
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

const table = "autoresponder_settings"

type Pgx struct {
	pg     *pgxpool.Pool
	logger logger.Logger
}

func NewPgx(pg *pgxpool.Pool, logger logger.Logger) *Pgx {
	return &Pgx{
		pg:     pg,
		logger: logger.WithComponent("SettingsRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

func (p *Pgx) Get(ctx context.Context, pageID string) (domain.AutoResponderSettings, error) {
	query, args, err := repositories.SqBuilder.
		Select("settings").
		From(table).
		Where(sq.Eq{"page_id": pageID}).
		ToSql()
	if err != nil {
		return domain.AutoResponderSettings{}, repositories.ErrBadQuery
	}

	var raw []byte
	if err := p.pg.QueryRow(ctx, query, args...).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Migrate(nil)
		}
		return domain.AutoResponderSettings{}, err
	}

	s, err := Migrate(raw)
	if err != nil {
		p.logger.Error("Stored settings are unreadable", "pageID", pageID, "error", err)
		return domain.AutoResponderSettings{}, err
	}
	return s, nil
}

func saveQuery(pageID string, raw []byte, now time.Time) (string, []any, error) {
	return repositories.SqBuilder.
		Insert(table).
		Columns("page_id", "settings", "updated_at").
		Values(pageID, raw, now).
		Suffix("ON CONFLICT (page_id) DO UPDATE SET settings = EXCLUDED.settings, updated_at = EXCLUDED.updated_at").
		ToSql()
}

func (p *Pgx) Save(ctx context.Context, pageID string, s domain.AutoResponderSettings) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}

	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}

	query, args, err := saveQuery(pageID, raw, time.Now())
	if err != nil {
		return repositories.ErrBadQuery
	}

	if _, err := p.pg.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	p.logger.Info("Settings saved", "pageID", pageID, "rules", len(s.Rules))
	return nil
}
