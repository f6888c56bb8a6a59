package graph

import (
	"context"
	"time"

	"github.com/orgball2608/zex-pages/internal/domain"
)

// Result is the outcome of a single write call against the Graph API.
type Result struct {
	OK  bool
	ID  string
	Err error
}

func Success(id string) Result {
	return Result{OK: true, ID: id}
}

func Failure(err error) Result {
	return Result{Err: err}
}

// PublishRequest describes one post for one destination.
type PublishRequest struct {
	Target      domain.Target
	Text        string
	ImageRef    string
	ScheduledAt time.Time
}

//go:generate go run go.uber.org/mock/mockgen -source=graph.go -destination=mocks/mock.go
type Client interface {
	// SendPublicReply answers a comment in its thread.
	SendPublicReply(ctx context.Context, item domain.InboxItem, message string) Result

	// SendPrivateReply answers a comment with a private message to its author.
	SendPrivateReply(ctx context.Context, item domain.InboxItem, message string) Result

	// CheckCanReplyPrivately asks the API whether a private reply is still allowed.
	CheckCanReplyPrivately(ctx context.Context, item domain.InboxItem) (bool, error)

	// SendDirectMessage sends a message inside an existing conversation.
	SendDirectMessage(ctx context.Context, recipientID, message, conversationID string) Result

	// SchedulePost hands a post to the platform's own scheduler.
	SchedulePost(ctx context.Context, req PublishRequest) Result

	// FetchComments returns comments on recent page posts created after since.
	FetchComments(ctx context.Context, since time.Time) ([]domain.InboxItem, error)

	// FetchMessages returns direct messages created after since.
	FetchMessages(ctx context.Context, since time.Time) ([]domain.InboxItem, error)
}
