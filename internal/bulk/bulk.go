package bulk

import (
	"context"
	"errors"

	"github.com/orgball2608/zex-pages/internal/domain"
)

var (
	ErrInvalidTime     = errors.New("weekly schedule time must be HH:MM")
	ErrUnknownStrategy = errors.New("unknown scheduling strategy")
	ErrNoWeeklySlot    = errors.New("no weekly slot found within two weeks")
)

// CommitResult reports what happened to a batch handed to the publish path.
type CommitResult struct {
	Scheduled []domain.ScheduledPost `json:"scheduled"`
	Remaining []domain.BulkPostItem  `json:"remaining"`
	Committed int                    `json:"committed"`
	Failed    int                    `json:"failed"`
}

//go:generate go run go.uber.org/mock/mockgen -source=bulk.go -destination=mocks/mock.go
type Client interface {
	// Batch returns the pending batch.
	Batch(ctx context.Context) ([]domain.BulkPostItem, error)

	// SaveBatch replaces the pending batch, assigning IDs to new items.
	SaveBatch(ctx context.Context, items []domain.BulkPostItem) ([]domain.BulkPostItem, error)

	// RedistributeBatch assigns schedule dates to the items with the given IDs, or to all items when ids is empty.
	RedistributeBatch(ctx context.Context, strategy domain.Strategy, weekly domain.WeeklyScheduleSettings, ids []string) ([]domain.BulkPostItem, error)

	// CommitBatch publishes every valid item and keeps the rest in the batch.
	CommitBatch(ctx context.Context) (CommitResult, error)

	// Commit publishes items to targets. Failures stay in Remaining with Error set.
	Commit(ctx context.Context, session *domain.PageSession, items []domain.BulkPostItem, targets []domain.Target) CommitResult

	// Targets lists the destinations a post can be published to.
	Targets() []domain.Target

	Start(ctx context.Context) error
	Stop() error
}
