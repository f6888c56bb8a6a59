package bulkimpl

import (
	"strings"
	"time"

	"github.com/orgball2608/zex-pages/internal/bulk"
	"github.com/orgball2608/zex-pages/internal/domain"
)

const (
	evenHorizon    = 28 * 24 * time.Hour
	evenSlotHour   = 10
	safetyMargin   = 10 * time.Minute
	maxDayAdvances = 14
)

// CommittedTimestamps collects the times new assignments must not precede.
// others are batch items outside the set being redistributed.
func CommittedTimestamps(posts []domain.ScheduledPost, others []domain.BulkPostItem) []time.Time {
	out := make([]time.Time, 0, len(posts)+len(others))
	for _, p := range posts {
		if !p.ScheduledAt.IsZero() {
			out = append(out, p.ScheduledAt)
		}
	}
	for _, it := range others {
		if it.ScheduleDate != nil {
			out = append(out, *it.ScheduleDate)
		}
	}
	return out
}

// Redistribute returns a copy of items with schedule dates assigned by strategy.
// Neither items nor committed are modified, and equal inputs give equal outputs.
func Redistribute(
	items []domain.BulkPostItem,
	strategy domain.Strategy,
	weekly domain.WeeklyScheduleSettings,
	committed []time.Time,
	now time.Time,
	loc *time.Location,
) ([]domain.BulkPostItem, error) {
	out := cloneItems(items)
	if loc == nil {
		loc = time.Local
	}

	floor := floorTime(committed, now)

	switch strategy {
	case domain.StrategyEven:
		distributeEven(out, floor, loc)
		return out, nil
	case domain.StrategyWeekly:
		if err := distributeWeekly(out, weekly, floor, now, loc); err != nil {
			return nil, err
		}
		return out, nil
	default:
		return nil, bulk.ErrUnknownStrategy
	}
}

func floorTime(committed []time.Time, now time.Time) time.Time {
	floor := now
	for _, t := range committed {
		if t.After(floor) {
			floor = t
		}
	}
	return floor
}

// distributeEven puts the first item on the day after floor at 10:00 and spreads the rest over 28 days.
func distributeEven(items []domain.BulkPostItem, floor time.Time, loc *time.Location) {
	if len(items) == 0 {
		return
	}

	day := floor.Add(24 * time.Hour).In(loc)
	first := time.Date(day.Year(), day.Month(), day.Day(), evenSlotHour, 0, 0, 0, loc)
	interval := evenHorizon / time.Duration(len(items))

	for i := range items {
		at := first.Add(time.Duration(i) * interval)
		items[i].ScheduleDate = &at
	}
}

func distributeWeekly(items []domain.BulkPostItem, weekly domain.WeeklyScheduleSettings, floor, now time.Time, loc *time.Location) error {
	days := selectedDays(weekly.Days)
	if len(days) == 0 {
		return nil
	}

	hour, minute, err := parseClock(weekly.Time)
	if err != nil {
		return err
	}

	minTime := now.Add(safetyMargin)
	prev := floor
	for i := range items {
		next, ok := nextWeeklySlot(prev, minTime, days, hour, minute, loc)
		if !ok {
			items[i].ScheduleDate = nil
			items[i].Error = bulk.ErrNoWeeklySlot.Error()
			continue
		}
		items[i].ScheduleDate = &next
		prev = next
	}
	return nil
}

// nextWeeklySlot walks day by day from prev's date looking for a selected weekday
// strictly after prev and not earlier than minTime.
func nextWeeklySlot(prev, minTime time.Time, days map[time.Weekday]bool, hour, minute int, loc *time.Location) (time.Time, bool) {
	start := prev.In(loc)
	for advance := 0; advance <= maxDayAdvances; advance++ {
		candidate := time.Date(start.Year(), start.Month(), start.Day()+advance, hour, minute, 0, 0, loc)
		if !days[candidate.Weekday()] {
			continue
		}
		if candidate.After(prev) && !candidate.Before(minTime) {
			return candidate, true
		}
	}
	return time.Time{}, false
}

func selectedDays(days []int) map[time.Weekday]bool {
	out := make(map[time.Weekday]bool, len(days))
	for _, d := range days {
		if d >= 0 && d <= 6 {
			out[time.Weekday(d)] = true
		}
	}
	return out
}

func parseClock(s string) (int, int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, 0, bulk.ErrInvalidTime
	}
	return t.Hour(), t.Minute(), nil
}

func cloneItems(items []domain.BulkPostItem) []domain.BulkPostItem {
	out := make([]domain.BulkPostItem, len(items))
	for i, it := range items {
		out[i] = it
		out[i].TargetIDs = append([]string(nil), it.TargetIDs...)
		if it.ScheduleDate != nil {
			at := *it.ScheduleDate
			out[i].ScheduleDate = &at
		}
	}
	return out
}
