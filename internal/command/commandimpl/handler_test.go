package commandimpl

import (
	"context"
	"errors"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/orgball2608/zex-pages/internal/bulk"
	mock_bulk "github.com/orgball2608/zex-pages/internal/bulk/mocks"
	"github.com/orgball2608/zex-pages/internal/domain"
	"github.com/orgball2608/zex-pages/internal/responder"
	mock_responder "github.com/orgball2608/zex-pages/internal/responder/mocks"
	mock_telegram "github.com/orgball2608/zex-pages/internal/telegram/mocks"
	"github.com/orgball2608/zex-pages/pkg/config"
	pkgerrors "github.com/orgball2608/zex-pages/pkg/errors"
	"github.com/orgball2608/zex-pages/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const operatorChat int64 = 42

type testDeps struct {
	telegram  *mock_telegram.MockClient
	responder *mock_responder.MockClient
	bulk      *mock_bulk.MockClient
}

func newTestCommand(t *testing.T) (*CommandImpl, testDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Telegram.ChatID = operatorChat
	cfg.App.Timezone = "UTC"

	deps := testDeps{
		telegram:  mock_telegram.NewMockClient(ctrl),
		responder: mock_responder.NewMockClient(ctrl),
		bulk:      mock_bulk.NewMockClient(ctrl),
	}

	return New(Opts{
		Telegram:  deps.telegram,
		Responder: deps.responder,
		Bulk:      deps.bulk,
		Logger:    logger.Nop(),
		Config:    cfg,
	}), deps
}

func commandUpdate(chatID int64, name, args string) tgbotapi.Update {
	text := "/" + name
	if args != "" {
		text += " " + args
	}
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			Text:     text,
			Chat:     &tgbotapi.Chat{ID: chatID},
			Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(name) + 1}},
		},
	}
}

func TestProcessCommandIgnoresOtherChats(t *testing.T) {
	c, _ := newTestCommand(t)

	err := c.processCommand(context.Background(), commandUpdate(7, "run", ""))
	assert.NoError(t, err)
}

func TestHelpAndUnknown(t *testing.T) {
	c, deps := newTestCommand(t)

	deps.telegram.EXPECT().SendMessage(operatorChat, helpMessage).Return(1, nil)
	require.NoError(t, c.processCommand(context.Background(), commandUpdate(operatorChat, "help", "")))

	deps.telegram.EXPECT().SendMessage(operatorChat, gomock.Any()).Return(2, nil)
	require.NoError(t, c.processCommand(context.Background(), commandUpdate(operatorChat, "subscribe", "bob")))
}

func TestRunCommand(t *testing.T) {
	t.Run("reports handled count", func(t *testing.T) {
		c, deps := newTestCommand(t)
		deps.responder.EXPECT().RunPass(gomock.Any()).
			Return(responder.BatchResult{Handled: map[string]struct{}{"a": {}, "b": {}}}, nil)
		deps.telegram.EXPECT().SendMessage(operatorChat, "Pass finished: 2 item(s) handled.").Return(1, nil)

		require.NoError(t, c.processCommand(context.Background(), commandUpdate(operatorChat, "run", "")))
	})

	t.Run("pass already running", func(t *testing.T) {
		c, deps := newTestCommand(t)
		deps.responder.EXPECT().RunPass(gomock.Any()).Return(responder.BatchResult{Skipped: true}, nil)
		deps.telegram.EXPECT().SendMessage(operatorChat, "A pass is already running.").Return(1, nil)

		require.NoError(t, c.processCommand(context.Background(), commandUpdate(operatorChat, "run", "")))
	})
}

func TestSyncCommand(t *testing.T) {
	c, deps := newTestCommand(t)
	deps.responder.EXPECT().SyncInbox(gomock.Any()).Return(int64(4), nil)
	deps.telegram.EXPECT().SendMessage(operatorChat, "Inbox synced: 4 new item(s).").Return(1, nil)

	require.NoError(t, c.processCommand(context.Background(), commandUpdate(operatorChat, "sync", "")))
}

func TestDoneCommand(t *testing.T) {
	t.Run("missing id", func(t *testing.T) {
		c, deps := newTestCommand(t)
		deps.telegram.EXPECT().SendMessage(operatorChat, "Please provide an item ID: /done <item_id>").Return(1, nil)

		require.NoError(t, c.processCommand(context.Background(), commandUpdate(operatorChat, "done", "")))
	})

	t.Run("marks item", func(t *testing.T) {
		c, deps := newTestCommand(t)
		deps.responder.EXPECT().MarkDone(gomock.Any(), "c1").Return(nil)
		deps.telegram.EXPECT().SendMessage(operatorChat, "Item c1 marked as handled.").Return(1, nil)

		require.NoError(t, c.processCommand(context.Background(), commandUpdate(operatorChat, "done", "c1")))
	})

	t.Run("unknown item", func(t *testing.T) {
		c, deps := newTestCommand(t)
		deps.responder.EXPECT().MarkDone(gomock.Any(), "zz").Return(pkgerrors.ErrNotFound)
		deps.telegram.EXPECT().SendMessage(operatorChat, "Item zz was not found.").Return(1, nil)

		require.NoError(t, c.processCommand(context.Background(), commandUpdate(operatorChat, "done", "zz")))
	})
}

func TestReplyCommand(t *testing.T) {
	t.Run("splits id and text", func(t *testing.T) {
		c, deps := newTestCommand(t)
		deps.responder.EXPECT().ManualReply(gomock.Any(), "m1", "thanks, see you tomorrow").Return(nil)
		deps.telegram.EXPECT().SendMessage(operatorChat, "Reply sent to m1.").Return(1, nil)

		require.NoError(t, c.processCommand(context.Background(),
			commandUpdate(operatorChat, "reply", "m1 thanks, see you tomorrow")))
	})

	t.Run("text required", func(t *testing.T) {
		c, deps := newTestCommand(t)
		deps.telegram.EXPECT().SendMessage(operatorChat, "Usage: /reply <item_id> <text>").Return(1, nil)

		require.NoError(t, c.processCommand(context.Background(), commandUpdate(operatorChat, "reply", "m1")))
	})

	t.Run("send failure is reported", func(t *testing.T) {
		c, deps := newTestCommand(t)
		deps.responder.EXPECT().ManualReply(gomock.Any(), "m1", "hi").
			Return(pkgerrors.WrapWithCode(pkgerrors.ErrUpstream, pkgerrors.CodeSend, "failed to send reply"))
		deps.telegram.EXPECT().SendMessage(operatorChat, "Reply failed: failed to send reply").Return(1, nil)

		require.NoError(t, c.processCommand(context.Background(), commandUpdate(operatorChat, "reply", "m1 hi")))
	})
}

func TestBatchCommand(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		c, deps := newTestCommand(t)
		deps.bulk.EXPECT().Batch(gomock.Any()).Return(nil, nil)
		deps.telegram.EXPECT().SendMessage(operatorChat, "The bulk batch is empty.").Return(1, nil)

		require.NoError(t, c.processCommand(context.Background(), commandUpdate(operatorChat, "batch", "")))
	})

	t.Run("lists items", func(t *testing.T) {
		c, deps := newTestCommand(t)
		at := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
		deps.bulk.EXPECT().Batch(gomock.Any()).Return([]domain.BulkPostItem{
			{ID: "p1", Text: "Monday offer", ScheduleDate: &at},
			{ID: "p2", Text: "No image yet", Error: "missing image"},
		}, nil)
		deps.telegram.EXPECT().SendMessage(operatorChat,
			"Pending posts (2):\n1. [Mon 15 Jan 09:30] Monday offer\n2. [no date] No image yet (missing image)\n").
			Return(1, nil)

		require.NoError(t, c.processCommand(context.Background(), commandUpdate(operatorChat, "batch", "")))
	})
}

func TestCommitCommand(t *testing.T) {
	c, deps := newTestCommand(t)
	deps.bulk.EXPECT().CommitBatch(gomock.Any()).Return(bulk.CommitResult{
		Committed: 3,
		Failed:    1,
		Remaining: []domain.BulkPostItem{{ID: "p4"}},
	}, nil)
	deps.telegram.EXPECT().SendMessage(operatorChat, "Committed 3 post(s), 1 failed, 1 left in the batch.").Return(1, nil)

	require.NoError(t, c.processCommand(context.Background(), commandUpdate(operatorChat, "commit", "")))
}

func TestHandleCommandStopsOnClosedStream(t *testing.T) {
	c, deps := newTestCommand(t)

	ch := make(chan tgbotapi.Update)
	close(ch)
	deps.telegram.EXPECT().GetUpdatesChan(gomock.Any()).Return(tgbotapi.UpdatesChannel(ch))

	err := c.HandleCommand(context.Background())
	assert.EqualError(t, err, "telegram updates channel closed")
}

func TestHandleCommandStopsOnCancel(t *testing.T) {
	c, deps := newTestCommand(t)

	ch := make(chan tgbotapi.Update)
	deps.telegram.EXPECT().GetUpdatesChan(gomock.Any()).Return(tgbotapi.UpdatesChannel(ch))
	deps.telegram.EXPECT().StopReceivingUpdates()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.HandleCommand(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestHandleCommandWithoutBot(t *testing.T) {
	c, deps := newTestCommand(t)
	deps.telegram.EXPECT().GetUpdatesChan(gomock.Any()).Return(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.HandleCommand(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
