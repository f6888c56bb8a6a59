package responderimpl

import (
	"context"
	"strings"

	"github.com/orgball2608/zex-pages/internal/domain"
)

// applyFallback answers an unmatched direct message. It reports whether a reply went out.
func (r *ResponderImpl) applyFallback(ctx context.Context, session *domain.PageSession, item domain.InboxItem) bool {
	fallback := session.Settings.Fallback

	switch fallback.Mode {
	case domain.FallbackStatic:
		msg := domain.RenderTemplate(fallback.StaticMessage, item.AuthorName)
		if strings.TrimSpace(msg) == "" {
			r.Logger.Warn("Static fallback has no message", "itemID", item.ID)
			return false
		}
		return r.sendDirect(ctx, item, msg, "static fallback")

	case domain.FallbackAI:
		reply, err := r.Brain.GenerateReply(ctx, item.Text, session.ProfileContext)
		if err != nil {
			r.Logger.Warn("AI fallback generation failed", "itemID", item.ID, "error", err)
			return false
		}
		reply = strings.TrimSpace(reply)
		if reply == "" {
			r.Logger.Warn("AI fallback returned an empty reply", "itemID", item.ID)
			return false
		}
		return r.sendDirect(ctx, item, reply, "AI fallback")
	}

	return false
}
