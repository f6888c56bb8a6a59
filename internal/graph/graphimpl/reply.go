package graphimpl

import (
	"context"
	"net/url"

	"github.com/orgball2608/zex-pages/internal/domain"
	"github.com/orgball2608/zex-pages/internal/graph"
)

type idResponse struct {
	ID string `json:"id"`
}

type messageResponse struct {
	RecipientID string `json:"recipient_id"`
	MessageID   string `json:"message_id"`
}

// SendPublicReply posts a reply under the comment.
func (g *GraphImpl) SendPublicReply(ctx context.Context, item domain.InboxItem, message string) graph.Result {
	path := item.ID + "/comments"
	if item.Platform == domain.PlatformInstagram {
		path = item.ID + "/replies"
	}

	var resp idResponse
	if err := g.post(ctx, path, url.Values{"message": {message}}, &resp); err != nil {
		g.logger.Error("Public reply failed", "commentID", item.ID, "error", err)
		return graph.Failure(err)
	}

	g.logger.Info("Public reply sent", "commentID", item.ID, "replyID", resp.ID)
	return graph.Success(resp.ID)
}

// SendPrivateReply messages the author of a comment through the sending account's inbox.
func (g *GraphImpl) SendPrivateReply(ctx context.Context, item domain.InboxItem, message string) graph.Result {
	params := url.Values{
		"recipient": {jsonParam(map[string]string{"comment_id": item.ID})},
		"message":   {jsonParam(map[string]string{"text": message})},
	}

	var resp messageResponse
	if err := g.post(ctx, g.senderFor(item.Platform)+"/messages", params, &resp); err != nil {
		g.logger.Error("Private reply failed", "commentID", item.ID, "error", err)
		return graph.Failure(err)
	}

	g.logger.Info("Private reply sent", "commentID", item.ID, "messageID", resp.MessageID)
	return graph.Success(resp.MessageID)
}

func (g *GraphImpl) CheckCanReplyPrivately(ctx context.Context, item domain.InboxItem) (bool, error) {
	var resp struct {
		CanReplyPrivately bool `json:"can_reply_privately"`
	}
	if err := g.get(ctx, item.ID, url.Values{"fields": {"can_reply_privately"}}, &resp); err != nil {
		return false, err
	}
	return resp.CanReplyPrivately, nil
}

func (g *GraphImpl) SendDirectMessage(ctx context.Context, recipientID, message, conversationID string) graph.Result {
	params := url.Values{
		"recipient":      {jsonParam(map[string]string{"id": recipientID})},
		"messaging_type": {"RESPONSE"},
		"message":        {jsonParam(map[string]string{"text": message})},
	}

	var resp messageResponse
	if err := g.post(ctx, g.pageID+"/messages", params, &resp); err != nil {
		g.logger.Error("Direct message failed", "recipientID", recipientID, "conversationID", conversationID, "error", err)
		return graph.Failure(err)
	}

	g.logger.Info("Direct message sent", "recipientID", recipientID, "conversationID", conversationID, "messageID", resp.MessageID)
	return graph.Success(resp.MessageID)
}

func (g *GraphImpl) senderFor(platform domain.Platform) string {
	if platform == domain.PlatformInstagram && g.instagramID != "" {
		return g.instagramID
	}
	return g.pageID
}
