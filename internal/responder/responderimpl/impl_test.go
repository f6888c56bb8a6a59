package responderimpl

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	mock_brain "github.com/orgball2608/zex-pages/internal/brain/mocks"
	"github.com/orgball2608/zex-pages/internal/domain"
	mock_graph "github.com/orgball2608/zex-pages/internal/graph/mocks"
	mock_inbox "github.com/orgball2608/zex-pages/internal/repositories/inbox/mocks"
	mock_replied "github.com/orgball2608/zex-pages/internal/repositories/replied/mocks"
	mock_settings "github.com/orgball2608/zex-pages/internal/repositories/settings/mocks"
	mock_telegram "github.com/orgball2608/zex-pages/internal/telegram/mocks"
	"github.com/orgball2608/zex-pages/pkg/config"
	"github.com/orgball2608/zex-pages/pkg/logger"
	"go.uber.org/mock/gomock"
)

var testNow = time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

type fixedRand int

func (f fixedRand) Intn(n int) int {
	if int(f) >= n {
		return n - 1
	}
	return int(f)
}

type testDeps struct {
	graph    *mock_graph.MockClient
	brain    *mock_brain.MockClient
	telegram *mock_telegram.MockClient
	inbox    *mock_inbox.MockRepository
	settings *mock_settings.MockRepository
	replied  *mock_replied.MockRepository
	clock    *clockwork.FakeClock
	cfg      *config.Config
}

func newTestResponder(t *testing.T, delay time.Duration) (*ResponderImpl, *testDeps) {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.App.Timezone = "UTC"
	cfg.Graph.PageID = "PAGE"
	cfg.Graph.PageName = "Zex"
	cfg.Graph.InstagramID = "IG"
	cfg.Gemini.Profile = "متجر ملابس"
	cfg.Responder.PrivateReplyDelay = delay
	cfg.Responder.Debounce = 3 * time.Second
	cfg.Responder.SyncInterval = time.Minute

	d := &testDeps{
		graph:    mock_graph.NewMockClient(ctrl),
		brain:    mock_brain.NewMockClient(ctrl),
		telegram: mock_telegram.NewMockClient(ctrl),
		inbox:    mock_inbox.NewMockRepository(ctrl),
		settings: mock_settings.NewMockRepository(ctrl),
		replied:  mock_replied.NewMockRepository(ctrl),
		clock:    clockwork.NewFakeClockAt(testNow),
		cfg:      cfg,
	}

	r := New(Opts{
		Graph:        d.graph,
		Brain:        d.brain,
		Telegram:     d.telegram,
		InboxRepo:    d.inbox,
		SettingsRepo: d.settings,
		RepliedRepo:  d.replied,
		Logger:       logger.Nop(),
		Config:       cfg,
		Clock:        d.clock,
		Rand:         fixedRand(0),
	})
	return r, d
}

func priceRule() domain.AutoResponderRule {
	return domain.AutoResponderRule{
		ID:      "price",
		Name:    "price",
		Enabled: true,
		Trigger: domain.Trigger{
			Source:           domain.ItemTypeComment,
			MatchType:        domain.MatchAny,
			Keywords:         []string{"سعر"},
			NegativeKeywords: []string{},
		},
		Actions: []domain.Action{
			{Type: domain.ActionPublicReply, Enabled: true, MessageVariations: []string{"السعر في الموقع"}},
		},
		ReplyOncePerUser: true,
	}
}

func newSession(rules []domain.AutoResponderRule, fallback domain.AutoResponderFallback) *domain.PageSession {
	return &domain.PageSession{
		PageID:         "PAGE",
		PageName:       "Zex",
		ProfileContext: "متجر ملابس",
		SelfAuthorIDs:  []string{"PAGE", "IG"},
		Settings:       domain.AutoResponderSettings{Rules: rules, Fallback: fallback},
		Replied:        domain.RepliedUsersPerPost{},
		Location:       time.UTC,
	}
}

func comment(id, author, text string) domain.InboxItem {
	return domain.InboxItem{
		ID:         id,
		Platform:   domain.PlatformFacebook,
		Type:       domain.ItemTypeComment,
		Text:       text,
		AuthorID:   author,
		AuthorName: "Ali",
		Timestamp:  testNow.Add(-time.Hour),
		Post:       &domain.PostRef{ID: "P1"},
	}
}

func message(id, author, name, text string) domain.InboxItem {
	return domain.InboxItem{
		ID:             id,
		Platform:       domain.PlatformFacebook,
		Type:           domain.ItemTypeMessage,
		Text:           text,
		AuthorID:       author,
		AuthorName:     name,
		Timestamp:      testNow.Add(-time.Minute),
		ConversationID: "T-" + author,
	}
}
