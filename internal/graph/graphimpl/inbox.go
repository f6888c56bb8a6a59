package graphimpl

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/orgball2608/zex-pages/internal/domain"
)

type actor struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

func (a actor) displayName() string {
	if a.Name != "" {
		return a.Name
	}
	return a.Username
}

type commentNode struct {
	ID          string `json:"id"`
	Message     string `json:"message"`
	Text        string `json:"text"`
	From        actor  `json:"from"`
	CreatedTime string `json:"created_time"`
	Timestamp   string `json:"timestamp"`
	Parent      *struct {
		ID string `json:"id"`
	} `json:"parent"`
	ParentID          string `json:"parent_id"`
	CanReplyPrivately bool   `json:"can_reply_privately"`
}

type postNode struct {
	ID       string `json:"id"`
	Comments struct {
		Data []commentNode `json:"data"`
	} `json:"comments"`
}

type messageNode struct {
	ID          string `json:"id"`
	Message     string `json:"message"`
	From        actor  `json:"from"`
	CreatedTime string `json:"created_time"`
}

type conversationNode struct {
	ID       string `json:"id"`
	Messages struct {
		Data []messageNode `json:"data"`
	} `json:"messages"`
}

func parseGraphTime(values ...string) time.Time {
	for _, v := range values {
		if v == "" {
			continue
		}
		if t, err := time.Parse(graphTimeLayout, v); err == nil {
			return t
		}
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func (g *GraphImpl) FetchComments(ctx context.Context, since time.Time) ([]domain.InboxItem, error) {
	var items []domain.InboxItem

	var feed struct {
		Data []postNode `json:"data"`
	}
	params := url.Values{
		"fields": {"id,comments.limit(50){id,message,from,created_time,parent{id},can_reply_privately}"},
		"limit":  {"25"},
	}
	if err := g.get(ctx, g.pageID+"/feed", params, &feed); err != nil {
		return nil, fmt.Errorf("failed to fetch page comments: %w", err)
	}
	items = append(items, g.commentsToItems(feed.Data, domain.PlatformFacebook, since)...)

	if g.instagramID != "" {
		var media struct {
			Data []postNode `json:"data"`
		}
		params := url.Values{
			"fields": {"id,comments.limit(50){id,text,from,timestamp,parent_id}"},
			"limit":  {"25"},
		}
		if err := g.get(ctx, g.instagramID+"/media", params, &media); err != nil {
			return items, fmt.Errorf("failed to fetch instagram comments: %w", err)
		}
		items = append(items, g.commentsToItems(media.Data, domain.PlatformInstagram, since)...)
	}

	return items, nil
}

func (g *GraphImpl) commentsToItems(posts []postNode, platform domain.Platform, since time.Time) []domain.InboxItem {
	var items []domain.InboxItem
	for _, p := range posts {
		for _, c := range p.Comments.Data {
			ts := parseGraphTime(c.CreatedTime, c.Timestamp)
			if ts.Before(since) || g.isSelf(c.From.ID) {
				continue
			}

			text := c.Message
			if text == "" {
				text = c.Text
			}
			parentID := c.ParentID
			if c.Parent != nil {
				parentID = c.Parent.ID
			}

			items = append(items, domain.InboxItem{
				ID:                c.ID,
				Platform:          platform,
				Type:              domain.ItemTypeComment,
				Text:              text,
				AuthorID:          c.From.ID,
				AuthorName:        c.From.displayName(),
				Timestamp:         ts,
				Post:              &domain.PostRef{ID: p.ID},
				ParentID:          parentID,
				CanReplyPrivately: c.CanReplyPrivately || (platform == domain.PlatformInstagram && parentID == ""),
			})
		}
	}
	return items
}

func (g *GraphImpl) FetchMessages(ctx context.Context, since time.Time) ([]domain.InboxItem, error) {
	var items []domain.InboxItem

	platforms := []domain.Platform{domain.PlatformFacebook}
	if g.instagramID != "" {
		platforms = append(platforms, domain.PlatformInstagram)
	}

	for _, platform := range platforms {
		apiPlatform := "messenger"
		if platform == domain.PlatformInstagram {
			apiPlatform = "instagram"
		}

		var conversations struct {
			Data []conversationNode `json:"data"`
		}
		params := url.Values{
			"platform": {apiPlatform},
			"fields":   {"id,messages.limit(10){id,message,from,created_time}"},
			"limit":    {"25"},
		}
		if err := g.get(ctx, g.pageID+"/conversations", params, &conversations); err != nil {
			return items, fmt.Errorf("failed to fetch %s conversations: %w", apiPlatform, err)
		}

		for _, conv := range conversations.Data {
			for _, m := range conv.Messages.Data {
				ts := parseGraphTime(m.CreatedTime)
				if ts.Before(since) || g.isSelf(m.From.ID) || m.Message == "" {
					continue
				}
				items = append(items, domain.InboxItem{
					ID:             m.ID,
					Platform:       platform,
					Type:           domain.ItemTypeMessage,
					Text:           m.Message,
					AuthorID:       m.From.ID,
					AuthorName:     m.From.displayName(),
					Timestamp:      ts,
					ConversationID: conv.ID,
				})
			}
		}
	}

	return items, nil
}

func (g *GraphImpl) isSelf(id string) bool {
	return id != "" && (id == g.pageID || id == g.instagramID)
}
