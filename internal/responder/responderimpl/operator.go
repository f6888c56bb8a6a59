package responderimpl

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/orgball2608/zex-pages/internal/domain"
	"github.com/orgball2608/zex-pages/internal/graph"
	"github.com/orgball2608/zex-pages/internal/repositories/inbox"
	"github.com/orgball2608/zex-pages/internal/telegram"
	pkgerrors "github.com/orgball2608/zex-pages/pkg/errors"
)

func (r *ResponderImpl) MarkDone(ctx context.Context, itemID string) error {
	pageID := r.Config.Graph.PageID

	if err := r.InboxRepo.MarkReplied(ctx, pageID, []string{itemID}); err != nil {
		if errors.Is(err, inbox.ErrNotFound) {
			return pkgerrors.Wrap(pkgerrors.ErrNotFound, fmt.Sprintf("inbox item %s", itemID))
		}
		return pkgerrors.WrapWithCode(err, pkgerrors.CodeStorage, "failed to mark item done")
	}

	r.Logger.Info("Item marked done", "itemID", itemID)
	return nil
}

func (r *ResponderImpl) ManualReply(ctx context.Context, itemID, message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return pkgerrors.WrapWithCode(pkgerrors.ErrInvalidInput, pkgerrors.CodeValidation, "reply message is empty")
	}

	pageID := r.Config.Graph.PageID

	item, err := r.InboxRepo.Get(ctx, pageID, itemID)
	if err != nil {
		if errors.Is(err, inbox.ErrNotFound) {
			return pkgerrors.Wrap(pkgerrors.ErrNotFound, fmt.Sprintf("inbox item %s", itemID))
		}
		return pkgerrors.WrapWithCode(err, pkgerrors.CodeStorage, "failed to load item")
	}

	var res graph.Result
	switch item.Type {
	case domain.ItemTypeComment:
		res = r.Graph.SendPublicReply(ctx, *item, message)
	case domain.ItemTypeMessage:
		res = r.Graph.SendDirectMessage(ctx, item.AuthorID, message, item.ConversationID)
	default:
		return pkgerrors.WrapWithCode(pkgerrors.ErrInvalidInput, pkgerrors.CodeValidation, fmt.Sprintf("unknown item type %q", item.Type))
	}

	if !res.OK {
		r.notifyFailure(fmt.Sprintf("Manual reply to %s failed", displayName(*item)), res.Err)
		cause := res.Err
		if cause == nil {
			cause = pkgerrors.ErrUpstream
		}
		return pkgerrors.WrapWithCode(cause, pkgerrors.CodeSend, "manual reply failed")
	}
	r.Telegram.Notify(telegram.KindSuccess, fmt.Sprintf("Manual reply sent to %s on %s", displayName(*item), item.Platform))

	if err := r.InboxRepo.MarkReplied(ctx, pageID, []string{itemID}); err != nil {
		return pkgerrors.WrapWithCode(err, pkgerrors.CodeStorage, "reply sent but item could not be marked replied")
	}
	return nil
}
