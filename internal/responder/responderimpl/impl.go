package responderimpl

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	"github.com/orgball2608/zex-pages/internal/brain"
	"github.com/orgball2608/zex-pages/internal/graph"
	"github.com/orgball2608/zex-pages/internal/repositories/inbox"
	"github.com/orgball2608/zex-pages/internal/repositories/replied"
	"github.com/orgball2608/zex-pages/internal/repositories/settings"
	"github.com/orgball2608/zex-pages/internal/responder"
	"github.com/orgball2608/zex-pages/internal/telegram"
	"github.com/orgball2608/zex-pages/pkg/config"
	"github.com/orgball2608/zex-pages/pkg/logger"
	"go.uber.org/fx"
)

// RandSource picks message variations.
type RandSource interface {
	Intn(n int) int
}

// unrepliedPageSize is how many unreplied items one query loads.
const unrepliedPageSize = 200

type Opts struct {
	fx.In

	Graph        graph.Client
	Brain        brain.Client
	Telegram     telegram.Client
	InboxRepo    inbox.Repository
	SettingsRepo settings.Repository
	RepliedRepo  replied.Repository
	Logger       logger.Logger
	Config       *config.Config
	Clock        clockwork.Clock `optional:"true"`
	Rand         RandSource      `optional:"true"`
}

type ResponderImpl struct {
	Graph        graph.Client
	Brain        brain.Client
	Telegram     telegram.Client
	InboxRepo    inbox.Repository
	SettingsRepo settings.Repository
	RepliedRepo  replied.Repository
	Logger       logger.Logger
	Config       *config.Config

	clock clockwork.Clock
	rand  RandSource

	privateReplyDelay time.Duration
	debounce          time.Duration

	running atomic.Bool
	events  chan struct{}

	mu        sync.Mutex
	scheduler gocron.Scheduler
	stop      chan struct{}
	done      chan struct{}
}

func New(opts Opts) *ResponderImpl {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	rnd := opts.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewSource(clock.Now().UnixNano()))
	}

	return &ResponderImpl{
		Graph:             opts.Graph,
		Brain:             opts.Brain,
		Telegram:          opts.Telegram,
		InboxRepo:         opts.InboxRepo,
		SettingsRepo:      opts.SettingsRepo,
		RepliedRepo:       opts.RepliedRepo,
		Logger:            opts.Logger.WithComponent("Responder"),
		Config:            opts.Config,
		clock:             clock,
		rand:              rnd,
		privateReplyDelay: opts.Config.Responder.PrivateReplyDelay,
		debounce:          opts.Config.Responder.Debounce,
		events:            make(chan struct{}, 1),
	}
}

var _ responder.Client = (*ResponderImpl)(nil)
