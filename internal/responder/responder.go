package responder

import (
	"context"
	"sort"

	"github.com/orgball2608/zex-pages/internal/domain"
)

// BatchResult is what a pass produced. Replied is a fresh map; the input map is never touched.
type BatchResult struct {
	Handled map[string]struct{}
	Replied domain.RepliedUsersPerPost
	Skipped bool
}

// HandledIDs returns the handled item IDs in a stable order.
func (r BatchResult) HandledIDs() []string {
	ids := make([]string, 0, len(r.Handled))
	for id := range r.Handled {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

//go:generate go run go.uber.org/mock/mockgen -source=responder.go -destination=mocks/mock.go
type Client interface {
	// ProcessBatch runs the rules and the fallback over items. Overlapping calls are dropped.
	ProcessBatch(ctx context.Context, session *domain.PageSession, items []domain.InboxItem) BatchResult

	// RunPass loads the page state, processes unreplied items and commits the outcome.
	RunPass(ctx context.Context) (BatchResult, error)

	// Notify signals that the inbox changed. It never blocks.
	Notify()

	// SyncInbox pulls new comments and messages from the page.
	SyncInbox(ctx context.Context) (int64, error)

	// MarkDone flags an item as replied without sending anything.
	MarkDone(ctx context.Context, itemID string) error

	// ManualReply sends an operator-written answer and flags the item as replied.
	ManualReply(ctx context.Context, itemID, message string) error

	Start(ctx context.Context) error
	Stop() error
}
