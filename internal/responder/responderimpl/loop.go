package responderimpl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/orgball2608/zex-pages/internal/domain"
	"github.com/orgball2608/zex-pages/internal/repositories/inbox"
	"github.com/orgball2608/zex-pages/internal/responder"
	"github.com/orgball2608/zex-pages/internal/telegram"
	pkgerrors "github.com/orgball2608/zex-pages/pkg/errors"
)

const (
	syncTimeout   = 30 * time.Second
	commitTimeout = 10 * time.Second
)

var ErrAlreadyStarted = errors.New("responder loop already started")

// Notify queues an inbox-changed event. Events arriving while one is queued coalesce.
func (r *ResponderImpl) Notify() {
	select {
	case r.events <- struct{}{}:
	default:
	}
}

// Start launches the debounced pass loop and the periodic inbox sync.
func (r *ResponderImpl) Start(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stop != nil {
		return ErrAlreadyStarted
	}

	loc, err := r.Config.Location()
	if err != nil {
		r.Logger.Warn("Failed to load page timezone, using local timezone", "timezone", r.Config.App.Timezone, "error", err)
	}

	scheduler, err := gocron.NewScheduler(gocron.WithLocation(loc), gocron.WithClock(r.clock))
	if err != nil {
		return fmt.Errorf("failed to create sync scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	_, err = scheduler.NewJob(
		gocron.DurationJob(r.Config.Responder.SyncInterval),
		gocron.NewTask(func() {
			if ctx.Err() != nil {
				return
			}

			syncCtx, cancelSync := context.WithTimeout(ctx, syncTimeout)
			defer cancelSync()

			if _, err := r.SyncInbox(syncCtx); err != nil {
				r.Logger.Error("Inbox sync failed", "error", err)
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		cancel()
		return fmt.Errorf("failed to schedule inbox sync: %w", err)
	}

	r.scheduler = scheduler
	r.stop = make(chan struct{})
	r.done = make(chan struct{})

	go func() {
		<-r.stop
		cancel()
	}()
	go r.run(ctx)

	scheduler.Start()
	r.Logger.Info("Auto-responder started",
		"debounce", r.debounce.String(),
		"sync_interval", r.Config.Responder.SyncInterval.String())

	// Pick up whatever was left unreplied before the restart.
	r.Notify()
	return nil
}

// Stop shuts the scheduler down and waits for the loop to exit.
func (r *ResponderImpl) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stop == nil {
		return nil
	}

	close(r.stop)
	<-r.done

	err := r.scheduler.Shutdown()
	r.stop, r.done, r.scheduler = nil, nil, nil
	if err != nil {
		return fmt.Errorf("failed to shut down sync scheduler: %w", err)
	}

	r.Logger.Info("Auto-responder stopped")
	return nil
}

func (r *ResponderImpl) run(ctx context.Context) {
	defer close(r.done)

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.events:
		}

		if !r.settle(ctx) {
			return
		}

		if _, err := r.RunPass(ctx); err != nil {
			r.Logger.Error("Auto-responder pass failed", "error", err)
		}
	}
}

// settle waits until no event arrived for the debounce window. It returns false on shutdown.
func (r *ResponderImpl) settle(ctx context.Context) bool {
	if r.debounce <= 0 {
		return ctx.Err() == nil
	}

	timer := r.clock.NewTimer(r.debounce)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return false
		case <-r.events:
			timer.Reset(r.debounce)
		case <-timer.Chan():
			return true
		}
	}
}

func (r *ResponderImpl) RunPass(ctx context.Context) (responder.BatchResult, error) {
	session, err := r.loadSession(ctx)
	if err != nil {
		return responder.BatchResult{}, err
	}

	items, err := r.loadUnreplied(ctx, session.PageID)
	if err != nil {
		return responder.BatchResult{}, pkgerrors.WrapWithCode(err, pkgerrors.CodeStorage, "failed to list unreplied items")
	}

	result := r.ProcessBatch(ctx, session, items)
	if result.Skipped {
		return result, nil
	}

	added := result.Replied.Diff(session.Replied)
	if len(result.Handled) == 0 && len(added) == 0 {
		return result, nil
	}

	// Sends already happened, so the outcome is stored even if the pass was cancelled.
	commitCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), commitTimeout)
	defer cancel()

	if err := r.InboxRepo.CommitPass(commitCtx, session.PageID, result.HandledIDs(), added); err != nil {
		r.Telegram.Notify(telegram.KindError, fmt.Sprintf("Failed to save auto-responder results: %v", err))
		return result, pkgerrors.WrapWithCode(err, pkgerrors.CodeStorage, "failed to commit pass")
	}

	return result, nil
}

// loadUnreplied pages through every unreplied item, oldest first.
func (r *ResponderImpl) loadUnreplied(ctx context.Context, pageID string) ([]domain.InboxItem, error) {
	var (
		items []domain.InboxItem
		after inbox.Cursor
	)

	for {
		page, err := r.InboxRepo.ListUnreplied(ctx, pageID, after, unrepliedPageSize)
		if err != nil {
			return nil, err
		}

		items = append(items, page...)
		if uint64(len(page)) < unrepliedPageSize {
			return items, nil
		}
		after = inbox.After(page[len(page)-1])
	}
}

// SyncInbox stores comments and messages newer than the latest known item.
func (r *ResponderImpl) SyncInbox(ctx context.Context) (int64, error) {
	pageID := r.Config.Graph.PageID

	since, err := r.InboxRepo.LatestTimestamp(ctx, pageID)
	if err != nil {
		return 0, pkgerrors.WrapWithCode(err, pkgerrors.CodeStorage, "failed to read latest inbox timestamp")
	}

	comments, err := r.Graph.FetchComments(ctx, since)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch comments: %w", err)
	}

	messages, err := r.Graph.FetchMessages(ctx, since)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch messages: %w", err)
	}

	items := append(comments, messages...)
	if len(items) == 0 {
		return 0, nil
	}

	added, err := r.InboxRepo.Upsert(ctx, pageID, items)
	if err != nil {
		return 0, pkgerrors.WrapWithCode(err, pkgerrors.CodeStorage, "failed to store inbox items")
	}

	if added > 0 {
		r.Logger.Info("New inbox items", "count", added)
		r.Notify()
	}
	return added, nil
}

func (r *ResponderImpl) loadSession(ctx context.Context) (*domain.PageSession, error) {
	pageID := r.Config.Graph.PageID

	s, err := r.SettingsRepo.Get(ctx, pageID)
	if err != nil {
		return nil, pkgerrors.WrapWithCode(err, pkgerrors.CodeStorage, "failed to load auto-responder settings")
	}

	repliedUsers, err := r.RepliedRepo.Load(ctx, pageID)
	if err != nil {
		return nil, pkgerrors.WrapWithCode(err, pkgerrors.CodeStorage, "failed to load replied users")
	}

	loc, _ := r.Config.Location()

	self := []string{pageID}
	if id := r.Config.Graph.InstagramID; id != "" {
		self = append(self, id)
	}

	return &domain.PageSession{
		PageID:         pageID,
		PageName:       r.Config.Graph.PageName,
		ProfileContext: r.Config.Gemini.Profile,
		SelfAuthorIDs:  self,
		Settings:       s,
		Replied:        repliedUsers,
		Location:       loc,
	}, nil
}
