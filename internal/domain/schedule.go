package domain

import "time"

type Strategy string

const (
	StrategyEven   Strategy = "even"
	StrategyWeekly Strategy = "weekly"
)

// BulkPostItem is a pending post in the bulk scheduler batch.
type BulkPostItem struct {
	ID           string     `json:"id"`
	ImageRef     string     `json:"imageRef"`
	Text         string     `json:"text"`
	ScheduleDate *time.Time `json:"scheduleDate,omitempty"`
	TargetIDs    []string   `json:"targetIds"`
	Error        string     `json:"error,omitempty"`
}

// ScheduledPost is a post accepted by the publish call.
type ScheduledPost struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	ImageRef    string    `json:"imageRef,omitempty"`
	ScheduledAt time.Time `json:"scheduledAt"`
	IsReminder  bool      `json:"isReminder"`
	TargetID    string    `json:"targetId"`
	TargetInfo  Target    `json:"targetInfo"`
	RemoteID    string    `json:"remoteId,omitempty"`
}

// Target is a publish destination: the page itself or a linked account.
type Target struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Platform Platform `json:"platform"`
}

type WeeklyScheduleSettings struct {
	Days []int  `json:"days"`
	Time string `json:"time"`
}
