package scheduledpost

import (
	"context"
	"errors"
	"time"

	"github.com/orgball2608/zex-pages/internal/domain"
)

var (
	ErrAlreadyExists = errors.New("scheduled post already exists")
	ErrNotFound      = errors.New("scheduled post not found")
)

//go:generate go run go.uber.org/mock/mockgen -source=scheduledpost.go -destination=mocks/mock.go
type Repository interface {
	// Create stores posts accepted by the publish call
	Create(ctx context.Context, pageID string, posts []domain.ScheduledPost) error

	// List returns posts scheduled at or after from, oldest first
	List(ctx context.Context, pageID string, from time.Time) ([]domain.ScheduledPost, error)

	// CleanupOldRecords deletes posts whose schedule time is older than the given duration
	CleanupOldRecords(ctx context.Context, pageID string, olderThan time.Duration) (int64, error)
}
