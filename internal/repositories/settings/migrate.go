package settings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/orgball2608/zex-pages/internal/domain"
)

type storedTrigger struct {
	Source           domain.ItemType  `json:"source"`
	MatchType        domain.MatchType `json:"matchType"`
	Keywords         []string         `json:"keywords"`
	NegativeKeywords []string         `json:"negativeKeywords"`
}

type storedAction struct {
	Type              domain.ActionType `json:"type"`
	Enabled           *bool             `json:"enabled"`
	MessageVariations []string          `json:"messageVariations"`
}

type storedRule struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	Enabled          *bool          `json:"enabled"`
	Trigger          storedTrigger  `json:"trigger"`
	Actions          []storedAction `json:"actions"`
	ReplyOncePerUser *bool          `json:"replyOncePerUser"`
}

// legacyGroup is the flat per-source shape used before rules existed.
type legacyGroup struct {
	Enabled          *bool            `json:"enabled"`
	MatchType        domain.MatchType `json:"matchType"`
	Keywords         []string         `json:"keywords"`
	NegativeKeywords []string         `json:"negativeKeywords"`
	Replies          []string         `json:"replies"`
	PrivateReplies   []string         `json:"privateReplies"`
	ReplyOncePerUser *bool            `json:"replyOncePerUser"`
}

type storedFallback struct {
	Mode          domain.FallbackMode `json:"mode"`
	StaticMessage string              `json:"staticMessage"`
}

// Migrate decodes a stored settings blob of any known shape into the current one.
// The result depends only on the input.
func Migrate(raw []byte) (domain.AutoResponderSettings, error) {
	out := domain.AutoResponderSettings{Rules: []domain.AutoResponderRule{}, Fallback: domain.DefaultFallback()}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return out, nil
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return out, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}

	if fb, ok := top["fallback"]; ok {
		fallback, err := liftFallback(fb)
		if err != nil {
			return out, err
		}
		out.Fallback = fallback
	}

	if rules, ok := top["rules"]; ok {
		var stored []storedRule
		if err := decodeNullable(rules, &stored); err != nil {
			return out, fmt.Errorf("%w: rules: %v", ErrInvalidSettings, err)
		}
		for i, r := range stored {
			out.Rules = append(out.Rules, liftRule(r, "", i))
		}
		return out, nil
	}

	for _, source := range []domain.ItemType{domain.ItemTypeComment, domain.ItemTypeMessage} {
		group, ok := top[string(source)+"s"]
		if !ok {
			continue
		}
		rules, err := liftGroup(group, source)
		if err != nil {
			return out, err
		}
		out.Rules = append(out.Rules, rules...)
	}

	return out, nil
}

func liftGroup(raw json.RawMessage, source domain.ItemType) ([]domain.AutoResponderRule, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	if raw[0] == '[' {
		var stored []storedRule
		if err := json.Unmarshal(raw, &stored); err != nil {
			return nil, fmt.Errorf("%w: %ss: %v", ErrInvalidSettings, source, err)
		}
		rules := make([]domain.AutoResponderRule, 0, len(stored))
		for i, r := range stored {
			rules = append(rules, liftRule(r, source, i))
		}
		return rules, nil
	}

	var g legacyGroup
	if err := json.Unmarshal(raw, &g); err != nil {
		return nil, fmt.Errorf("%w: %ss: %v", ErrInvalidSettings, source, err)
	}

	rule := domain.AutoResponderRule{
		ID:      fmt.Sprintf("%s-0", source),
		Name:    fmt.Sprintf("%s-0", source),
		Enabled: boolOr(g.Enabled, true),
		Trigger: domain.Trigger{
			Source:           source,
			MatchType:        matchTypeOr(g.MatchType),
			Keywords:         nonNil(g.Keywords),
			NegativeKeywords: nonNil(g.NegativeKeywords),
		},
		ReplyOncePerUser: boolOr(g.ReplyOncePerUser, true),
	}

	if source == domain.ItemTypeComment {
		if len(g.Replies) > 0 {
			rule.Actions = append(rule.Actions, domain.Action{Type: domain.ActionPublicReply, Enabled: true, MessageVariations: g.Replies})
		}
		if len(g.PrivateReplies) > 0 {
			rule.Actions = append(rule.Actions, domain.Action{Type: domain.ActionPrivateReply, Enabled: true, MessageVariations: g.PrivateReplies})
		}
	} else if len(g.Replies) > 0 {
		rule.Actions = append(rule.Actions, domain.Action{Type: domain.ActionDirectMessage, Enabled: true, MessageVariations: g.Replies})
	}
	if rule.Actions == nil {
		rule.Actions = []domain.Action{}
	}

	return []domain.AutoResponderRule{rule}, nil
}

func liftRule(r storedRule, groupSource domain.ItemType, index int) domain.AutoResponderRule {
	source := r.Trigger.Source
	if source == "" {
		source = groupSource
	}
	if source == "" {
		source = inferSource(r.Actions)
	}

	id := strings.TrimSpace(r.ID)
	if id == "" {
		id = fmt.Sprintf("%s-%d", source, index)
	}
	name := r.Name
	if name == "" {
		name = id
	}

	actions := make([]domain.Action, 0, len(r.Actions))
	for _, a := range r.Actions {
		actions = append(actions, domain.Action{
			Type:              a.Type,
			Enabled:           boolOr(a.Enabled, true),
			MessageVariations: nonNil(a.MessageVariations),
		})
	}

	return domain.AutoResponderRule{
		ID:      id,
		Name:    name,
		Enabled: boolOr(r.Enabled, true),
		Trigger: domain.Trigger{
			Source:           source,
			MatchType:        matchTypeOr(r.Trigger.MatchType),
			Keywords:         nonNil(r.Trigger.Keywords),
			NegativeKeywords: nonNil(r.Trigger.NegativeKeywords),
		},
		Actions:          actions,
		ReplyOncePerUser: boolOr(r.ReplyOncePerUser, true),
	}
}

func liftFallback(raw json.RawMessage) (domain.AutoResponderFallback, error) {
	var fb *storedFallback
	if err := json.Unmarshal(raw, &fb); err != nil {
		return domain.DefaultFallback(), fmt.Errorf("%w: fallback: %v", ErrInvalidSettings, err)
	}
	out := domain.DefaultFallback()
	if fb == nil {
		return out, nil
	}
	if fb.Mode != "" {
		out.Mode = fb.Mode
	}
	if fb.StaticMessage != "" {
		out.StaticMessage = fb.StaticMessage
	}
	return out, nil
}

func inferSource(actions []storedAction) domain.ItemType {
	for _, a := range actions {
		if a.Type == domain.ActionDirectMessage {
			return domain.ItemTypeMessage
		}
	}
	return domain.ItemTypeComment
}

func decodeNullable(raw json.RawMessage, v any) error {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil
	}
	return json.Unmarshal(raw, v)
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func matchTypeOr(m domain.MatchType) domain.MatchType {
	if m == "" {
		return domain.MatchAny
	}
	return m
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
