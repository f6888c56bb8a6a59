package commandimpl

import (
	"context"
	"fmt"
	"strings"

	pkgerrors "github.com/orgball2608/zex-pages/pkg/errors"
)

func (c *CommandImpl) handleRun(ctx context.Context, chatID int64) error {
	res, err := c.Responder.RunPass(ctx)
	if err != nil {
		c.Logger.Error("Manual pass failed", "error", err)
		_, sendErr := c.Telegram.SendMessage(chatID, "Auto-reply pass failed: "+pkgerrors.GetMessage(err))
		return sendErr
	}

	if res.Skipped {
		_, err = c.Telegram.SendMessage(chatID, "A pass is already running.")
		return err
	}

	_, err = c.Telegram.SendMessage(chatID, fmt.Sprintf("Pass finished: %d item(s) handled.", len(res.Handled)))
	return err
}

func (c *CommandImpl) handleSync(ctx context.Context, chatID int64) error {
	added, err := c.Responder.SyncInbox(ctx)
	if err != nil {
		c.Logger.Error("Manual sync failed", "error", err)
		_, sendErr := c.Telegram.SendMessage(chatID, "Inbox sync failed: "+pkgerrors.GetMessage(err))
		return sendErr
	}

	_, err = c.Telegram.SendMessage(chatID, fmt.Sprintf("Inbox synced: %d new item(s).", added))
	return err
}

func (c *CommandImpl) handleDone(ctx context.Context, chatID int64, args string) error {
	itemID := strings.TrimSpace(args)
	if itemID == "" {
		_, err := c.Telegram.SendMessage(chatID, "Please provide an item ID: /done <item_id>")
		return err
	}

	if err := c.Responder.MarkDone(ctx, itemID); err != nil {
		if pkgerrors.IsNotFound(err) {
			_, sendErr := c.Telegram.SendMessage(chatID, fmt.Sprintf("Item %s was not found.", itemID))
			return sendErr
		}
		c.Logger.Error("Failed to mark item done", "itemID", itemID, "error", err)
		_, sendErr := c.Telegram.SendMessage(chatID, "Failed to mark item done. Please try again later.")
		return sendErr
	}

	_, err := c.Telegram.SendMessage(chatID, fmt.Sprintf("Item %s marked as handled.", itemID))
	return err
}

func (c *CommandImpl) handleReply(ctx context.Context, chatID int64, args string) error {
	itemID, message, _ := strings.Cut(strings.TrimSpace(args), " ")
	message = strings.TrimSpace(message)
	if itemID == "" || message == "" {
		_, err := c.Telegram.SendMessage(chatID, "Usage: /reply <item_id> <text>")
		return err
	}

	if err := c.Responder.ManualReply(ctx, itemID, message); err != nil {
		c.Logger.Error("Manual reply failed", "itemID", itemID, "error", err)
		_, sendErr := c.Telegram.SendMessage(chatID, "Reply failed: "+pkgerrors.GetMessage(err))
		return sendErr
	}

	_, err := c.Telegram.SendMessage(chatID, fmt.Sprintf("Reply sent to %s.", itemID))
	return err
}
