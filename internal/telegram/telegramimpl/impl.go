package telegramimpl

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/orgball2608/zex-pages/internal/telegram"
	"github.com/orgball2608/zex-pages/pkg/config"
	"github.com/orgball2608/zex-pages/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

type TelegramImpl struct {
	TgBot  *tgbotapi.BotAPI
	ChatID int64
	Logger logger.Logger
}

func New(opts Opts) (*TelegramImpl, error) {
	log := opts.Logger.WithComponent("Telegram")

	if opts.Config.Telegram.BotToken == "" {
		log.Warn("Telegram bot token missing, notifications will only be logged")
		return &TelegramImpl{Logger: log}, nil
	}

	tgBot, err := tgbotapi.NewBotAPI(opts.Config.Telegram.BotToken)
	if err != nil {
		log.Error("Error creating bot", "Error", err)
		return nil, err
	}

	return &TelegramImpl{
		TgBot:  tgBot,
		ChatID: opts.Config.Telegram.ChatID,
		Logger: log,
	}, nil
}

var _ telegram.Client = (*TelegramImpl)(nil)
