package responderimpl

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/orgball2608/zex-pages/internal/domain"
	"github.com/orgball2608/zex-pages/internal/telegram"
)

func firstUsable(actions []domain.Action, t domain.ActionType) *domain.Action {
	for i := range actions {
		if actions[i].Type == t && actions[i].Usable() {
			return &actions[i]
		}
	}
	return nil
}

func (r *ResponderImpl) pickVariation(variations []string) string {
	usable := make([]string, 0, len(variations))
	for _, v := range variations {
		if strings.TrimSpace(v) != "" {
			usable = append(usable, v)
		}
	}
	if len(usable) == 0 {
		return ""
	}
	return usable[r.rand.Intn(len(usable))]
}

// executeCommentActions sends the public reply and then, when allowed, the private one.
// It reports whether at least one send succeeded.
func (r *ResponderImpl) executeCommentActions(ctx context.Context, rule domain.AutoResponderRule, item domain.InboxItem) bool {
	succeeded := false

	public := firstUsable(rule.Actions, domain.ActionPublicReply)
	private := firstUsable(rule.Actions, domain.ActionPrivateReply)

	if public != nil {
		msg := domain.RenderTemplate(r.pickVariation(public.MessageVariations), item.AuthorName)
		res := r.Graph.SendPublicReply(ctx, item, msg)
		if res.OK {
			succeeded = true
			r.notifySuccess(fmt.Sprintf("Public reply sent to %s on %s (rule %q)", displayName(item), item.Platform, rule.Name))
		} else {
			r.notifyFailure(fmt.Sprintf("Public reply to %s failed (rule %q)", displayName(item), rule.Name), res.Err)
		}
	}

	if private == nil || !r.privateReplyAllowed(item) {
		return succeeded
	}

	if succeeded {
		if err := r.wait(ctx, r.privateReplyDelay); err != nil {
			r.Logger.Warn("Private reply abandoned", "itemID", item.ID, "error", err)
			return succeeded
		}
	}

	ok, err := r.Graph.CheckCanReplyPrivately(ctx, item)
	if err != nil {
		r.notifyFailure(fmt.Sprintf("Private reply check for %s failed (rule %q)", displayName(item), rule.Name), err)
		return succeeded
	}
	if !ok {
		r.Logger.Info("Private reply not allowed, skipping", "itemID", item.ID)
		return succeeded
	}

	msg := domain.RenderTemplate(r.pickVariation(private.MessageVariations), item.AuthorName)
	res := r.Graph.SendPrivateReply(ctx, item, msg)
	if res.OK {
		succeeded = true
		r.notifySuccess(fmt.Sprintf("Private reply sent to %s on %s (rule %q)", displayName(item), item.Platform, rule.Name))
	} else {
		r.notifyFailure(fmt.Sprintf("Private reply to %s failed (rule %q)", displayName(item), rule.Name), res.Err)
	}

	return succeeded
}

func (r *ResponderImpl) executeMessageActions(ctx context.Context, rule domain.AutoResponderRule, item domain.InboxItem) bool {
	dm := firstUsable(rule.Actions, domain.ActionDirectMessage)
	if dm == nil {
		return false
	}

	msg := domain.RenderTemplate(r.pickVariation(dm.MessageVariations), item.AuthorName)
	return r.sendDirect(ctx, item, msg, fmt.Sprintf("rule %q", rule.Name))
}

func (r *ResponderImpl) sendDirect(ctx context.Context, item domain.InboxItem, msg, origin string) bool {
	res := r.Graph.SendDirectMessage(ctx, item.AuthorID, msg, item.ConversationID)
	if !res.OK {
		r.notifyFailure(fmt.Sprintf("Message to %s failed (%s)", displayName(item), origin), res.Err)
		return false
	}
	r.notifySuccess(fmt.Sprintf("Message sent to %s on %s (%s)", displayName(item), item.Platform, origin))
	return true
}

// privateReplyAllowed covers the local conditions; the API pre-flight comes later.
func (r *ResponderImpl) privateReplyAllowed(item domain.InboxItem) bool {
	if !item.CanReplyPrivately || item.ParentID != "" {
		return false
	}
	return r.clock.Since(item.Timestamp) <= domain.PrivateReplyWindow
}

func (r *ResponderImpl) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-r.clock.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *ResponderImpl) notifySuccess(message string) {
	r.Logger.Info(message)
	r.Telegram.Notify(telegram.KindSuccess, message)
}

func (r *ResponderImpl) notifyFailure(message string, err error) {
	r.Logger.Error(message, "error", err)
	if err != nil {
		message = fmt.Sprintf("%s: %v", message, err)
	}
	r.Telegram.Notify(telegram.KindError, message)
}

func displayName(item domain.InboxItem) string {
	if item.AuthorName != "" {
		return item.AuthorName
	}
	return item.AuthorID
}
