package domain

import "time"

// PageSession carries everything a pass needs about one managed page.
type PageSession struct {
	PageID         string
	PageName       string
	ProfileContext string
	SelfAuthorIDs  []string
	Settings       AutoResponderSettings
	Replied        RepliedUsersPerPost
	Location       *time.Location
}

func (s *PageSession) IsSelf(authorID string) bool {
	for _, id := range s.SelfAuthorIDs {
		if id == authorID {
			return true
		}
	}
	return false
}

func (s *PageSession) Loc() *time.Location {
	if s == nil || s.Location == nil {
		return time.Local
	}
	return s.Location
}
