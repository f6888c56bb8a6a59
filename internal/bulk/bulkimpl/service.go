package bulkimpl

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/orgball2608/zex-pages/internal/bulk"
	"github.com/orgball2608/zex-pages/internal/domain"
	pkgerrors "github.com/orgball2608/zex-pages/pkg/errors"
)

const scheduledPostRetention = 30 * 24 * time.Hour

func (b *BulkImpl) Batch(ctx context.Context) ([]domain.BulkPostItem, error) {
	items, err := b.BulkPostRepo.List(ctx, b.Config.Graph.PageID)
	if err != nil {
		return nil, pkgerrors.WrapWithCode(err, pkgerrors.CodeStorage, "failed to load bulk batch")
	}
	return items, nil
}

func (b *BulkImpl) SaveBatch(ctx context.Context, items []domain.BulkPostItem) ([]domain.BulkPostItem, error) {
	out := cloneItems(items)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = b.newID()
		}
	}

	if err := b.BulkPostRepo.Replace(ctx, b.Config.Graph.PageID, out); err != nil {
		return nil, pkgerrors.WrapWithCode(err, pkgerrors.CodeStorage, "failed to save bulk batch")
	}
	return out, nil
}

func (b *BulkImpl) RedistributeBatch(ctx context.Context, strategy domain.Strategy, weekly domain.WeeklyScheduleSettings, ids []string) ([]domain.BulkPostItem, error) {
	session := b.session()
	now := b.clock.Now()

	items, err := b.Batch(ctx)
	if err != nil {
		return nil, err
	}

	posts, err := b.ScheduledPostRepo.List(ctx, session.PageID, now)
	if err != nil {
		return nil, pkgerrors.WrapWithCode(err, pkgerrors.CodeStorage, "failed to load scheduled posts")
	}

	selected, others, positions := splitBatch(items, ids)

	redistributed, err := Redistribute(selected, strategy, weekly, CommittedTimestamps(posts, others), now, session.Loc())
	if err != nil {
		return nil, pkgerrors.WrapWithCode(err, pkgerrors.CodeValidation, "failed to redistribute batch")
	}

	out := cloneItems(items)
	for i, pos := range positions {
		out[pos] = redistributed[i]
	}

	if err := b.BulkPostRepo.Replace(ctx, session.PageID, out); err != nil {
		return nil, pkgerrors.WrapWithCode(err, pkgerrors.CodeStorage, "failed to save bulk batch")
	}

	b.Logger.Info("Batch redistributed", "strategy", strategy, "items", len(selected))
	return out, nil
}

func (b *BulkImpl) CommitBatch(ctx context.Context) (bulk.CommitResult, error) {
	items, err := b.Batch(ctx)
	if err != nil {
		return bulk.CommitResult{}, err
	}

	session := b.session()
	result := b.Commit(ctx, session, items, b.Targets())

	// The batch is stored even when ctx is done, since published items must leave it.
	saveCtx := context.WithoutCancel(ctx)
	if err := b.BulkPostRepo.Replace(saveCtx, session.PageID, result.Remaining); err != nil {
		return result, pkgerrors.WrapWithCode(err, pkgerrors.CodeStorage, "failed to save remaining batch")
	}
	return result, nil
}

// splitBatch separates the items to redistribute from the rest. An empty ids selects everything.
func splitBatch(items []domain.BulkPostItem, ids []string) (selected, others []domain.BulkPostItem, positions []int) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	for i, it := range items {
		if len(ids) == 0 || want[it.ID] {
			selected = append(selected, it)
			positions = append(positions, i)
			continue
		}
		others = append(others, it)
	}
	return selected, others, positions
}

// Start schedules the daily cleanup of old scheduled posts.
func (b *BulkImpl) Start(_ context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.scheduler != nil {
		return nil
	}

	session := b.session()

	scheduler, err := gocron.NewScheduler(gocron.WithLocation(session.Loc()), gocron.WithClock(b.clock))
	if err != nil {
		return fmt.Errorf("failed to create cleanup scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(gocron.NewAtTime(3, 0, 0)),
		),
		gocron.NewTask(func() {
			b.Logger.Info("Starting scheduled posts cleanup job")

			cleanupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()

			deleted, err := b.ScheduledPostRepo.CleanupOldRecords(cleanupCtx, session.PageID, scheduledPostRetention)
			if err != nil {
				b.Logger.Error("Failed to clean up old scheduled posts", "error", err)
				return
			}

			b.Logger.Info("Scheduled posts cleanup completed", "rows_deleted", deleted)
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule cleanup: %w", err)
	}

	scheduler.Start()
	b.scheduler = scheduler
	return nil
}

func (b *BulkImpl) Stop() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.scheduler == nil {
		return nil
	}

	err := b.scheduler.Shutdown()
	b.scheduler = nil
	if err != nil {
		return fmt.Errorf("failed to shut down cleanup scheduler: %w", err)
	}
	return nil
}
