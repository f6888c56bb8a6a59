package responderimpl

import (
	"context"
	"fmt"
	"strings"

	"github.com/orgball2608/zex-pages/internal/domain"
	"github.com/orgball2608/zex-pages/internal/responder"
	"github.com/orgball2608/zex-pages/internal/telegram"
)

func (r *ResponderImpl) ProcessBatch(ctx context.Context, session *domain.PageSession, items []domain.InboxItem) (result responder.BatchResult) {
	if !r.running.CompareAndSwap(false, true) {
		r.Logger.Debug("Pass already in flight, skipping")
		return responder.BatchResult{Skipped: true}
	}
	defer r.running.Store(false)

	result = responder.BatchResult{Handled: map[string]struct{}{}}

	defer func() {
		if rec := recover(); rec != nil {
			r.Logger.Error("Auto-responder pass crashed", "panic", rec)
			r.Telegram.Notify(telegram.KindError, fmt.Sprintf("Auto-responder pass crashed: %v", rec))
		}
	}()

	var base domain.RepliedUsersPerPost
	if session != nil {
		base = session.Replied
	}
	result.Replied = base.Clone()

	for _, item := range items {
		if ctx.Err() != nil {
			r.Logger.Warn("Pass cancelled", "error", ctx.Err())
			break
		}
		if item.IsReplied || session.IsSelf(item.AuthorID) {
			continue
		}
		if r.processItem(ctx, session, item, result.Replied) {
			result.Handled[item.ID] = struct{}{}
		}
	}

	r.Logger.Info("Pass finished", "items", len(items), "handled", len(result.Handled))
	return result
}

// processItem evaluates one item, recording authors into replied. A panic is contained to the item.
func (r *ResponderImpl) processItem(ctx context.Context, session *domain.PageSession, item domain.InboxItem, replied domain.RepliedUsersPerPost) (handled bool) {
	defer func() {
		if rec := recover(); rec != nil {
			handled = false
			r.Logger.Error("Auto-responder failed on item", "itemID", item.ID, "panic", rec)
			r.Telegram.Notify(telegram.KindError, fmt.Sprintf("Auto-responder failed on item %s: %v", item.ID, rec))
		}
	}()

	lowerText := strings.ToLower(item.Text)
	postKey := item.PostKey()

	for _, rule := range session.Settings.Rules {
		if !rule.Enabled || rule.Trigger.Source != item.Type {
			continue
		}
		if item.Type == domain.ItemTypeComment && rule.ReplyOncePerUser && replied.Has(postKey, item.AuthorID) {
			continue
		}
		if hasNegative(rule.Trigger, lowerText) {
			continue
		}
		if !matchesKeywords(rule.Trigger, lowerText) {
			continue
		}

		var ok bool
		switch item.Type {
		case domain.ItemTypeComment:
			ok = r.executeCommentActions(ctx, rule, item)
		case domain.ItemTypeMessage:
			ok = r.executeMessageActions(ctx, rule, item)
		}
		if !ok {
			continue
		}

		if item.Type == domain.ItemTypeComment && rule.ReplyOncePerUser {
			replied.Add(postKey, item.AuthorID)
		}
		return true
	}

	if item.Type == domain.ItemTypeMessage && session.Settings.Fallback.Mode != domain.FallbackOff {
		return r.applyFallback(ctx, session, item)
	}

	return false
}
