package app

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/lib/pq"
	"github.com/orgball2608/zex-pages/internal/api"
	"github.com/orgball2608/zex-pages/internal/brain"
	"github.com/orgball2608/zex-pages/internal/brain/brainimpl"
	"github.com/orgball2608/zex-pages/internal/bulk"
	"github.com/orgball2608/zex-pages/internal/bulk/bulkimpl"
	"github.com/orgball2608/zex-pages/internal/command"
	"github.com/orgball2608/zex-pages/internal/command/commandimpl"
	"github.com/orgball2608/zex-pages/internal/graph"
	"github.com/orgball2608/zex-pages/internal/graph/graphimpl"
	"github.com/orgball2608/zex-pages/internal/migrations"
	repositories "github.com/orgball2608/zex-pages/internal/repositories/fx"
	"github.com/orgball2608/zex-pages/internal/responder"
	"github.com/orgball2608/zex-pages/internal/responder/responderimpl"
	"github.com/orgball2608/zex-pages/internal/telegram"
	"github.com/orgball2608/zex-pages/internal/telegram/telegramimpl"
	"github.com/orgball2608/zex-pages/pkg/config"
	"github.com/orgball2608/zex-pages/pkg/logger"
	"github.com/orgball2608/zex-pages/pkg/pgx"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
		pgx.New,
	),
	fx.Provide(
		fx.Annotate(
			telegramimpl.New,
			fx.As(new(telegram.Client)),
		),
		fx.Annotate(
			graphimpl.New,
			fx.As(new(graph.Client)),
		),
		fx.Annotate(
			brainimpl.New,
			fx.As(new(brain.Client)),
		),
		fx.Annotate(
			responderimpl.New,
			fx.As(new(responder.Client)),
		),
		fx.Annotate(
			bulkimpl.New,
			fx.As(new(bulk.Client)),
		),
		fx.Annotate(
			commandimpl.New,
			fx.As(new(command.Client)),
		),
	),
	repositories.Module,
	fx.Invoke(migrate),
	api.Module,
	fx.Invoke(run),
)

func migrate(lc fx.Lifecycle, cfg *config.Config, log logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			db, err := sql.Open("postgres", cfg.GetDSN())
			if err != nil {
				return fmt.Errorf("failed to open migration connection: %w", err)
			}
			defer db.Close()

			return migrations.Up(ctx, db, log.WithComponent("Migrations"))
		},
	})
}

const commandRestartDelay = 5 * time.Second

func run(lc fx.Lifecycle, log logger.Logger, tgClient telegram.Client, r responder.Client, b bulk.Client, cmdClient command.Client) {
	var (
		cancel   context.CancelFunc
		commands sync.WaitGroup
	)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := r.Start(ctx); err != nil {
				return fmt.Errorf("failed to start responder: %w", err)
			}
			if err := b.Start(ctx); err != nil {
				return fmt.Errorf("failed to start bulk scheduler: %w", err)
			}

			var cmdCtx context.Context
			cmdCtx, cancel = context.WithCancel(context.Background())
			commands.Add(1)
			go func() {
				defer commands.Done()
				for {
					err := cmdClient.HandleCommand(cmdCtx)
					if cmdCtx.Err() != nil {
						return
					}
					log.Error("Command handler stopped", "error", err)

					select {
					case <-cmdCtx.Done():
						return
					case <-time.After(commandRestartDelay):
					}
				}
			}()

			tgClient.Notify(telegram.KindSuccess, "Page assistant started")
			return nil
		},
		OnStop: func(context.Context) error {
			if cancel != nil {
				cancel()
			}
			commands.Wait()

			if err := b.Stop(); err != nil {
				log.Error("Failed to stop bulk scheduler", "error", err)
			}
			return r.Stop()
		},
	})
}
