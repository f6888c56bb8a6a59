package telegramimpl

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/orgball2608/zex-pages/internal/telegram"
	"github.com/orgball2608/zex-pages/pkg/formatter"
)

const maxNotificationLength = 3500

// Notify sends a formatted notification to the operator chat
func (tg *TelegramImpl) Notify(kind telegram.NotifyKind, message string) {
	tg.Logger.Info("Notification", "kind", kind, "message", message)

	if tg.TgBot == nil || tg.ChatID == 0 {
		return
	}

	text := fmt.Sprintf("%s %s", kindIcon(kind), formatter.EscapeMarkdownV2(formatter.Truncate(message, maxNotificationLength)))
	msg := tgbotapi.NewMessage(tg.ChatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2

	if _, err := tg.TgBot.Send(msg); err != nil {
		tg.Logger.Error("Error sending notification",
			"chatID", tg.ChatID,
			"kind", kind,
			"error", err)
	}
}

// SendMessage sends a message to a specific chat ID
func (tg *TelegramImpl) SendMessage(chatID int64, text string) (int, error) {
	if tg.TgBot == nil {
		return 0, fmt.Errorf("telegram bot is not configured")
	}

	msg := tgbotapi.NewMessage(chatID, text)
	sentMsg, err := tg.TgBot.Send(msg)
	if err != nil {
		tg.Logger.Error("Error sending message",
			"chatID", chatID,
			"error", err)
		return 0, fmt.Errorf("failed to send message: %w", err)
	}

	tg.Logger.Info("Message sent",
		"chatID", chatID,
		"messageID", sentMsg.MessageID)
	return sentMsg.MessageID, nil
}

func kindIcon(kind telegram.NotifyKind) string {
	switch kind {
	case telegram.KindSuccess:
		return "✅"
	case telegram.KindPartial:
		return "⚠️"
	case telegram.KindError:
		return "❌"
	default:
		return "ℹ️"
	}
}

// GetUpdatesChan wraps the bot's GetUpdatesChan method. It returns nil when no bot is configured.
func (tg *TelegramImpl) GetUpdatesChan(u tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	if tg.TgBot == nil {
		return nil
	}
	return tg.TgBot.GetUpdatesChan(u)
}

// StopReceivingUpdates wraps the bot's StopReceivingUpdates method
func (tg *TelegramImpl) StopReceivingUpdates() {
	if tg.TgBot != nil {
		tg.TgBot.StopReceivingUpdates()
	}
}
