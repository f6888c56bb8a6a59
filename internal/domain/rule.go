package domain

import (
	"fmt"
	"strings"
)

type MatchType string

const (
	MatchAny   MatchType = "any"
	MatchAll   MatchType = "all"
	MatchExact MatchType = "exact"
)

type ActionType string

const (
	ActionPublicReply   ActionType = "public_reply"
	ActionPrivateReply  ActionType = "private_reply"
	ActionDirectMessage ActionType = "direct_message"
)

type FallbackMode string

const (
	FallbackAI     FallbackMode = "ai"
	FallbackStatic FallbackMode = "static"
	FallbackOff    FallbackMode = "off"
)

// UserNamePlaceholder is the only placeholder supported in reply templates.
const UserNamePlaceholder = "{user_name}"

const DefaultStaticMessage = "شكرًا لتواصلك معنا {user_name}، سنرد عليك في أقرب وقت."

type Trigger struct {
	Source           ItemType  `json:"source"`
	MatchType        MatchType `json:"matchType"`
	Keywords         []string  `json:"keywords"`
	NegativeKeywords []string  `json:"negativeKeywords"`
}

type Action struct {
	Type              ActionType `json:"type"`
	Enabled           bool       `json:"enabled"`
	MessageVariations []string   `json:"messageVariations"`
}

type AutoResponderRule struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Enabled          bool     `json:"enabled"`
	Trigger          Trigger  `json:"trigger"`
	Actions          []Action `json:"actions"`
	ReplyOncePerUser bool     `json:"replyOncePerUser"`
}

type AutoResponderFallback struct {
	Mode          FallbackMode `json:"mode"`
	StaticMessage string       `json:"staticMessage"`
}

type AutoResponderSettings struct {
	Rules    []AutoResponderRule   `json:"rules"`
	Fallback AutoResponderFallback `json:"fallback"`
}

func DefaultFallback() AutoResponderFallback {
	return AutoResponderFallback{Mode: FallbackOff, StaticMessage: DefaultStaticMessage}
}

// CompatibleWith reports whether the action can be used by a rule on source.
func (t ActionType) CompatibleWith(source ItemType) bool {
	switch source {
	case ItemTypeComment:
		return t == ActionPublicReply || t == ActionPrivateReply
	case ItemTypeMessage:
		return t == ActionDirectMessage
	}
	return false
}

// Usable reports whether the action can actually produce a message.
func (a Action) Usable() bool {
	if !a.Enabled {
		return false
	}
	for _, v := range a.MessageVariations {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

func (r AutoResponderRule) Validate() error {
	switch r.Trigger.Source {
	case ItemTypeComment, ItemTypeMessage:
	default:
		return fmt.Errorf("rule %q: unknown trigger source %q", r.Name, r.Trigger.Source)
	}
	switch r.Trigger.MatchType {
	case MatchAny, MatchAll, MatchExact:
	default:
		return fmt.Errorf("rule %q: unknown match type %q", r.Name, r.Trigger.MatchType)
	}
	for _, a := range r.Actions {
		if !a.Type.CompatibleWith(r.Trigger.Source) {
			return fmt.Errorf("rule %q: action %s cannot be used with %s trigger", r.Name, a.Type, r.Trigger.Source)
		}
		if a.Enabled && len(a.MessageVariations) == 0 {
			return fmt.Errorf("rule %q: action %s has no message variations", r.Name, a.Type)
		}
	}
	return nil
}

func (s AutoResponderSettings) Validate() error {
	for _, r := range s.Rules {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	switch s.Fallback.Mode {
	case FallbackAI, FallbackOff:
	case FallbackStatic:
		if strings.TrimSpace(s.Fallback.StaticMessage) == "" {
			return fmt.Errorf("static fallback requires a message")
		}
	default:
		return fmt.Errorf("unknown fallback mode %q", s.Fallback.Mode)
	}
	return nil
}

// RenderTemplate substitutes the author name into a reply template.
func RenderTemplate(tmpl, userName string) string {
	return strings.ReplaceAll(tmpl, UserNamePlaceholder, userName)
}
