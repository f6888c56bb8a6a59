package commandimpl

import (
	"context"
	"errors"
	"runtime/debug"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const helpMessage = `Page assistant commands:

/run - Run an auto-reply pass now.
/sync - Fetch new comments and messages.
/done <item_id> - Mark an inbox item as handled.
/reply <item_id> <text> - Reply to an inbox item by hand.
/batch - Show the pending bulk batch.
/commit - Publish the pending bulk batch.

Type /help at any time to see this guide.`

func (c *CommandImpl) HandleCommand(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := c.Telegram.GetUpdatesChan(u)
	if updates == nil {
		c.Logger.Warn("Telegram bot not configured, chat commands are disabled")
		<-ctx.Done()
		return ctx.Err()
	}
	c.Logger.Info("Command handler started, listening for updates.")

	for {
		select {
		case <-ctx.Done():
			c.Logger.Info("Command handler shutting down.")
			c.Telegram.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				c.Logger.Warn("Telegram updates channel closed unexpectedly. Restarting handler...")
				return errors.New("telegram updates channel closed")
			}

			go func(u tgbotapi.Update) {
				defer func() {
					if r := recover(); r != nil {
						c.Logger.Error("Panic recovered while processing an update", "panic", r, "stack", string(debug.Stack()))
					}
				}()

				if u.Message == nil || !u.Message.IsCommand() {
					return
				}

				if err := c.processCommand(ctx, u); err != nil {
					c.Logger.Error("Error processing command",
						"command", u.Message.Command(),
						"error", err)
				}
			}(update)
		}
	}
}

func (c *CommandImpl) processCommand(ctx context.Context, update tgbotapi.Update) error {
	chatID := update.Message.Chat.ID

	// Only the operator chat may drive the assistant.
	if chatID != c.Config.Telegram.ChatID {
		c.Logger.Warn("Ignoring command from unknown chat", "chatID", chatID, "command", update.Message.Command())
		return nil
	}

	c.Logger.Info("Command received", "command", update.Message.Command())

	args := update.Message.CommandArguments()
	switch update.Message.Command() {
	case "start", "help":
		_, err := c.Telegram.SendMessage(chatID, helpMessage)
		return err
	case "run":
		return c.handleRun(ctx, chatID)
	case "sync":
		return c.handleSync(ctx, chatID)
	case "done":
		return c.handleDone(ctx, chatID, args)
	case "reply":
		return c.handleReply(ctx, chatID, args)
	case "batch":
		return c.handleBatch(ctx, chatID)
	case "commit":
		return c.handleCommit(ctx, chatID)
	default:
		_, err := c.Telegram.SendMessage(chatID, "Unknown command. Type /help to see the list of available commands.")
		return err
	}
}
