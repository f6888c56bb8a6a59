package inbox

import (
	"context"
	"errors"
	"time"

	"github.com/orgball2608/zex-pages/internal/domain"
)

var ErrNotFound = errors.New("inbox item not found")

// Cursor marks the last item of a page of unreplied items. The zero value starts from the oldest item.
type Cursor struct {
	CreatedAt time.Time
	ID        string
}

// After returns the cursor positioned at item.
func After(item domain.InboxItem) Cursor {
	return Cursor{CreatedAt: item.Timestamp, ID: item.ID}
}

//go:generate go run go.uber.org/mock/mockgen -source=inbox.go -destination=mocks/mock.go
type Repository interface {
	// Upsert stores newly synced items and returns how many were not known before.
	// Existing rows keep their replied flag.
	Upsert(ctx context.Context, pageID string, items []domain.InboxItem) (int64, error)

	// ListUnreplied returns up to limit unreplied items after the cursor, ordered by (created_at, id).
	ListUnreplied(ctx context.Context, pageID string, after Cursor, limit uint64) ([]domain.InboxItem, error)

	// Get returns a single item.
	Get(ctx context.Context, pageID, id string) (*domain.InboxItem, error)

	// MarkReplied flips is_replied for the given items.
	MarkReplied(ctx context.Context, pageID string, ids []string) error

	// CommitPass marks handled items and stores the replied-users map in one transaction.
	CommitPass(ctx context.Context, pageID string, handledIDs []string, replied domain.RepliedUsersPerPost) error

	// LatestTimestamp returns the newest stored item time, zero when empty.
	LatestTimestamp(ctx context.Context, pageID string) (time.Time, error)
}
