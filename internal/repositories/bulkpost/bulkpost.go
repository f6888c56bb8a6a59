package bulkpost

import (
	"context"

	"github.com/orgball2608/zex-pages/internal/domain"
)

// Repository keeps the pending bulk batch of a page. Items leave it once committed.
//
//go:generate go run go.uber.org/mock/mockgen -source=bulkpost.go -destination=mocks/mock.go
type Repository interface {
	List(ctx context.Context, pageID string) ([]domain.BulkPostItem, error)

	// Replace overwrites the whole batch, keeping the given order.
	Replace(ctx context.Context, pageID string, items []domain.BulkPostItem) error
}
