package bulkimpl

import (
	"sync"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	"github.com/orgball2608/zex-pages/internal/bulk"
	"github.com/orgball2608/zex-pages/internal/domain"
	"github.com/orgball2608/zex-pages/internal/graph"
	"github.com/orgball2608/zex-pages/internal/repositories/bulkpost"
	"github.com/orgball2608/zex-pages/internal/repositories/scheduledpost"
	"github.com/orgball2608/zex-pages/internal/telegram"
	"github.com/orgball2608/zex-pages/pkg/config"
	"github.com/orgball2608/zex-pages/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Graph             graph.Client
	Telegram          telegram.Client
	ScheduledPostRepo scheduledpost.Repository
	BulkPostRepo      bulkpost.Repository
	Logger            logger.Logger
	Config            *config.Config
	Clock             clockwork.Clock `optional:"true"`
}

type BulkImpl struct {
	Graph             graph.Client
	Telegram          telegram.Client
	ScheduledPostRepo scheduledpost.Repository
	BulkPostRepo      bulkpost.Repository
	Logger            logger.Logger
	Config            *config.Config

	clock   clockwork.Clock
	workers int
	newID   func() string

	mu        sync.Mutex
	scheduler gocron.Scheduler
}

func New(opts Opts) *BulkImpl {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	workers := opts.Config.Scheduler.Workers
	if workers <= 0 {
		workers = 1
	}

	return &BulkImpl{
		Graph:             opts.Graph,
		Telegram:          opts.Telegram,
		ScheduledPostRepo: opts.ScheduledPostRepo,
		BulkPostRepo:      opts.BulkPostRepo,
		Logger:            opts.Logger.WithComponent("Bulk"),
		Config:            opts.Config,
		clock:             clock,
		workers:           workers,
		newID:             newID,
	}
}

var _ bulk.Client = (*BulkImpl)(nil)

func (b *BulkImpl) Targets() []domain.Target {
	targets := []domain.Target{{
		ID:       b.Config.Graph.PageID,
		Name:     b.Config.Graph.PageName,
		Platform: domain.PlatformFacebook,
	}}
	if id := b.Config.Graph.InstagramID; id != "" {
		targets = append(targets, domain.Target{
			ID:       id,
			Name:     b.Config.Graph.PageName,
			Platform: domain.PlatformInstagram,
		})
	}
	return targets
}

func (b *BulkImpl) session() *domain.PageSession {
	loc, err := b.Config.Location()
	if err != nil {
		b.Logger.Warn("Failed to load page timezone, using local timezone", "timezone", b.Config.App.Timezone, "error", err)
	}
	return &domain.PageSession{
		PageID:   b.Config.Graph.PageID,
		PageName: b.Config.Graph.PageName,
		Location: loc,
	}
}
