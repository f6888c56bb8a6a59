package commandimpl

import (
	"github.com/orgball2608/zex-pages/internal/bulk"
	"github.com/orgball2608/zex-pages/internal/command"
	"github.com/orgball2608/zex-pages/internal/responder"
	"github.com/orgball2608/zex-pages/internal/telegram"
	"github.com/orgball2608/zex-pages/pkg/config"
	"github.com/orgball2608/zex-pages/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Telegram  telegram.Client
	Responder responder.Client
	Bulk      bulk.Client
	Logger    logger.Logger
	Config    *config.Config
}

type CommandImpl struct {
	Telegram  telegram.Client
	Responder responder.Client
	Bulk      bulk.Client
	Logger    logger.Logger
	Config    *config.Config
}

func New(opts Opts) *CommandImpl {
	return &CommandImpl{
		Telegram:  opts.Telegram,
		Responder: opts.Responder,
		Bulk:      opts.Bulk,
		Logger:    opts.Logger.WithComponent("Command"),
		Config:    opts.Config,
	}
}

var _ command.Client = (*CommandImpl)(nil)
