package telegram

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

type NotifyKind string

const (
	KindSuccess NotifyKind = "success"
	KindError   NotifyKind = "error"
	KindPartial NotifyKind = "partial"
)

//go:generate go run go.uber.org/mock/mockgen -source=telegram.go -destination=mocks/mock.go
type Client interface {
	// Notify reports an outcome to the operator chat. Failures are logged, never returned.
	Notify(kind NotifyKind, message string)

	SendMessage(chatID int64, text string) (int, error)
	GetUpdatesChan(u tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}
