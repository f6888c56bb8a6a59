package settings

import (
	"context"
	"errors"

	"github.com/orgball2608/zex-pages/internal/domain"
)

var ErrInvalidSettings = errors.New("invalid auto-responder settings")

//go:generate go run go.uber.org/mock/mockgen -source=settings.go -destination=mocks/mock.go
type Repository interface {
	// Get returns the page settings, lifting legacy shapes. Pages without a row get defaults.
	Get(ctx context.Context, pageID string) (domain.AutoResponderSettings, error)

	// Save validates and stores the settings in the current shape.
	Save(ctx context.Context, pageID string, s domain.AutoResponderSettings) error
}
