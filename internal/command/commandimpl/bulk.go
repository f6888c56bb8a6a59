package commandimpl

import (
	"context"
	"fmt"
	"strings"

	"github.com/orgball2608/zex-pages/pkg/formatter"
)

const batchPreviewLength = 40

func (c *CommandImpl) handleBatch(ctx context.Context, chatID int64) error {
	items, err := c.Bulk.Batch(ctx)
	if err != nil {
		c.Logger.Error("Failed to load bulk batch", "error", err)
		_, sendErr := c.Telegram.SendMessage(chatID, "Failed to load the bulk batch.")
		return sendErr
	}

	if len(items) == 0 {
		_, err = c.Telegram.SendMessage(chatID, "The bulk batch is empty.")
		return err
	}

	loc, _ := c.Config.Location()

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Pending posts (%s):\n", formatter.FormatNumber(len(items))))
	for i, item := range items {
		when := "no date"
		if item.ScheduleDate != nil {
			when = item.ScheduleDate.In(loc).Format("Mon 02 Jan 15:04")
		}
		builder.WriteString(fmt.Sprintf("%d. [%s] %s", i+1, when, formatter.Truncate(item.Text, batchPreviewLength)))
		if item.Error != "" {
			builder.WriteString(" (" + item.Error + ")")
		}
		builder.WriteString("\n")
	}

	_, err = c.Telegram.SendMessage(chatID, builder.String())
	return err
}

func (c *CommandImpl) handleCommit(ctx context.Context, chatID int64) error {
	res, err := c.Bulk.CommitBatch(ctx)
	if err != nil {
		c.Logger.Error("Bulk commit failed", "error", err)
		_, sendErr := c.Telegram.SendMessage(chatID, "Bulk commit failed. Please try again later.")
		return sendErr
	}

	_, err = c.Telegram.SendMessage(chatID, fmt.Sprintf("Committed %d post(s), %d failed, %d left in the batch.",
		res.Committed, res.Failed, len(res.Remaining)))
	return err
}
