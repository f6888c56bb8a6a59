package domain

import "time"

type Platform string

const (
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
)

type ItemType string

const (
	ItemTypeComment ItemType = "comment"
	ItemTypeMessage ItemType = "message"
)

// DMPostKey is the replied-users key used for direct messages.
const DMPostKey = "dm"

// PrivateReplyWindow is how old a comment may be and still get a private reply.
const PrivateReplyWindow = 7 * 24 * time.Hour

type PostRef struct {
	ID string `json:"id"`
}

// InboxItem is one inbound comment or direct message.
type InboxItem struct {
	ID                string    `json:"id"`
	Platform          Platform  `json:"platform"`
	Type              ItemType  `json:"type"`
	Text              string    `json:"text"`
	AuthorID          string    `json:"authorId"`
	AuthorName        string    `json:"authorName"`
	Timestamp         time.Time `json:"timestamp"`
	Post              *PostRef  `json:"post,omitempty"`
	ParentID          string    `json:"parentId,omitempty"`
	IsReplied         bool      `json:"isReplied"`
	ConversationID    string    `json:"conversationId,omitempty"`
	CanReplyPrivately bool      `json:"can_reply_privately"`
}

// PostKey returns the key under which replied authors are tracked.
func (i InboxItem) PostKey() string {
	if i.Post != nil && i.Post.ID != "" {
		return i.Post.ID
	}
	return DMPostKey
}

// RepliedUsersPerPost maps a post ID (or DMPostKey) to authors already answered.
type RepliedUsersPerPost map[string][]string

func (r RepliedUsersPerPost) Has(postKey, authorID string) bool {
	for _, id := range r[postKey] {
		if id == authorID {
			return true
		}
	}
	return false
}

// Add records authorID under postKey. It reports whether the entry is new.
func (r RepliedUsersPerPost) Add(postKey, authorID string) bool {
	if r.Has(postKey, authorID) {
		return false
	}
	r[postKey] = append(r[postKey], authorID)
	return true
}

func (r RepliedUsersPerPost) Clone() RepliedUsersPerPost {
	out := make(RepliedUsersPerPost, len(r))
	for k, v := range r {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// Diff returns the entries of r that are missing from base.
func (r RepliedUsersPerPost) Diff(base RepliedUsersPerPost) RepliedUsersPerPost {
	out := RepliedUsersPerPost{}
	for postKey, authors := range r {
		for _, author := range authors {
			if !base.Has(postKey, author) {
				out.Add(postKey, author)
			}
		}
	}
	return out
}
