package bulkimpl

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/orgball2608/zex-pages/internal/bulk"
	"github.com/orgball2608/zex-pages/internal/domain"
	"github.com/orgball2608/zex-pages/internal/graph"
	"github.com/orgball2608/zex-pages/internal/telegram"
	"github.com/panjf2000/ants/v2"
)

const storeTimeout = 10 * time.Second

func newID() string {
	return uuid.NewString()
}

type itemOutcome struct {
	posts  []domain.ScheduledPost
	failed []string
	errs   []string
}

// Commit publishes each valid item to its targets on a worker pool.
// Targets that succeeded are removed from an item, so a retry never publishes twice.
func (b *BulkImpl) Commit(ctx context.Context, session *domain.PageSession, items []domain.BulkPostItem, targets []domain.Target) bulk.CommitResult {
	validated := Validate(items)
	byID := make(map[string]domain.Target, len(targets))
	for _, t := range targets {
		byID[t.ID] = t
	}

	outcomes := make([]*itemOutcome, len(validated))

	pool, err := ants.NewPool(b.workers, ants.WithPreAlloc(true))
	if err != nil {
		b.Logger.Error("Failed to create publish pool", "error", err)
		return b.finish(ctx, session, validated, outcomes, fmt.Sprintf("publish pool unavailable: %v", err))
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i, item := range validated {
		if item.Error != "" {
			continue
		}

		wg.Add(1)
		idx, itemToPublish := i, item

		err := pool.Submit(func() {
			defer wg.Done()
			outcomes[idx] = b.publishItem(ctx, itemToPublish, byID)
		})
		if err != nil {
			wg.Done()
			b.Logger.Error("Failed to submit publish job", "itemID", item.ID, "error", err)
			outcomes[idx] = &itemOutcome{failed: item.TargetIDs, errs: []string{err.Error()}}
		}
	}

	wg.Wait()

	return b.finish(ctx, session, validated, outcomes, "")
}

func (b *BulkImpl) publishItem(ctx context.Context, item domain.BulkPostItem, targets map[string]domain.Target) *itemOutcome {
	out := &itemOutcome{}

	for _, targetID := range item.TargetIDs {
		if ctx.Err() != nil {
			out.failed = append(out.failed, targetID)
			out.errs = append(out.errs, ctx.Err().Error())
			continue
		}

		target, ok := targets[targetID]
		if !ok {
			out.failed = append(out.failed, targetID)
			out.errs = append(out.errs, fmt.Sprintf("unknown account %s", targetID))
			continue
		}

		post := domain.ScheduledPost{
			ID:          b.newID(),
			Text:        item.Text,
			ImageRef:    item.ImageRef,
			ScheduledAt: *item.ScheduleDate,
			TargetID:    target.ID,
			TargetInfo:  target,
		}

		// Linked Instagram accounts cannot be auto-scheduled; the operator posts them by hand.
		if target.Platform == domain.PlatformInstagram {
			post.IsReminder = true
			out.posts = append(out.posts, post)
			continue
		}

		res := b.Graph.SchedulePost(ctx, graph.PublishRequest{
			Target:      target,
			Text:        item.Text,
			ImageRef:    item.ImageRef,
			ScheduledAt: *item.ScheduleDate,
		})
		if !res.OK {
			b.Logger.Error("Failed to schedule post", "itemID", item.ID, "target", target.ID, "error", res.Err)
			out.failed = append(out.failed, targetID)
			out.errs = append(out.errs, fmt.Sprintf("%s: %v", target.Name, res.Err))
			continue
		}

		post.RemoteID = res.ID
		out.posts = append(out.posts, post)
	}

	return out
}

func (b *BulkImpl) finish(ctx context.Context, session *domain.PageSession, validated []domain.BulkPostItem, outcomes []*itemOutcome, poolErr string) bulk.CommitResult {
	result := bulk.CommitResult{
		Scheduled: []domain.ScheduledPost{},
		Remaining: []domain.BulkPostItem{},
	}

	var accepted []domain.ScheduledPost
	for _, outcome := range outcomes {
		if outcome != nil {
			accepted = append(accepted, outcome.posts...)
		}
	}
	storeErr := b.storeScheduled(ctx, session, accepted)

	for i, item := range validated {
		outcome := outcomes[i]

		switch {
		case item.Error != "":
			result.Failed++
			result.Remaining = append(result.Remaining, item)
		case outcome == nil:
			item.Error = poolErr
			result.Failed++
			result.Remaining = append(result.Remaining, item)
		case storeErr != nil && len(outcome.posts) > 0:
			// The item keeps its date so later redistribution still treats the slot as taken.
			errs := append([]string{fmt.Sprintf("scheduled on %s but not recorded: %v", targetNames(outcome.posts), storeErr)}, outcome.errs...)
			result.Failed++
			item.TargetIDs = outcome.failed
			item.Error = strings.Join(errs, "; ")
			result.Remaining = append(result.Remaining, item)
		case len(outcome.failed) == 0:
			result.Committed++
			result.Scheduled = append(result.Scheduled, outcome.posts...)
		default:
			result.Failed++
			result.Scheduled = append(result.Scheduled, outcome.posts...)
			item.TargetIDs = outcome.failed
			item.Error = strings.Join(outcome.errs, "; ")
			result.Remaining = append(result.Remaining, item)
		}
	}

	b.notifySummary(result)
	return result
}

// storeScheduled records accepted posts. They are already live, so the caller's cancellation does not apply.
func (b *BulkImpl) storeScheduled(ctx context.Context, session *domain.PageSession, posts []domain.ScheduledPost) error {
	if len(posts) == 0 {
		return nil
	}

	storeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), storeTimeout)
	defer cancel()

	if err := b.ScheduledPostRepo.Create(storeCtx, session.PageID, posts); err != nil {
		b.Logger.Error("Failed to store scheduled posts", "count", len(posts), "error", err)
		b.Telegram.Notify(telegram.KindError, fmt.Sprintf("Posts were scheduled but could not be saved: %v", err))
		return err
	}
	return nil
}

func targetNames(posts []domain.ScheduledPost) string {
	names := make([]string, 0, len(posts))
	for _, p := range posts {
		names = append(names, p.TargetInfo.Name)
	}
	return strings.Join(names, ", ")
}

func (b *BulkImpl) notifySummary(result bulk.CommitResult) {
	reminders := 0
	for _, p := range result.Scheduled {
		if p.IsReminder {
			reminders++
		}
	}

	switch {
	case result.Committed == 0 && result.Failed == 0:
		return
	case result.Failed == 0:
		b.Telegram.Notify(telegram.KindSuccess, fmt.Sprintf("Scheduled %d posts (%d reminders)", result.Committed, reminders))
	case result.Committed == 0 && len(result.Scheduled) == 0:
		b.Telegram.Notify(telegram.KindError, fmt.Sprintf("No posts were scheduled, %d need attention", result.Failed))
	default:
		b.Telegram.Notify(telegram.KindPartial, fmt.Sprintf("Scheduled %d posts, %d need attention", result.Committed, result.Failed))
	}
}
