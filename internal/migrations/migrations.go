package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/orgball2608/zex-pages/pkg/logger"
	"github.com/pressly/goose/v3"
)

// NewProvider returns a goose provider over the Go migrations of this package.
func NewProvider(db *sql.DB) (*goose.Provider, error) {
	return goose.NewProvider(goose.DialectPostgres, db, nil)
}

// Up applies all pending migrations.
func Up(ctx context.Context, db *sql.DB, log logger.Logger) error {
	provider, err := NewProvider(db)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	for _, r := range results {
		log.Info("Migration applied", "version", r.Source.Version, "duration", r.Duration.String())
	}
	return nil
}
