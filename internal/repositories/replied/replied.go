package replied

import (
	"context"

	"github.com/orgball2608/zex-pages/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=replied.go -destination=mocks/mock.go
type Repository interface {
	// Load returns the authors already answered on each post of the page.
	Load(ctx context.Context, pageID string) (domain.RepliedUsersPerPost, error)
}
