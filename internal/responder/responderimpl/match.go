package responderimpl

import (
	"strings"

	"github.com/orgball2608/zex-pages/internal/domain"
)

// normalizeKeywords trims and lowercases keywords, dropping empty ones.
func normalizeKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}

func hasNegative(trigger domain.Trigger, lowerText string) bool {
	for _, k := range normalizeKeywords(trigger.NegativeKeywords) {
		if strings.Contains(lowerText, k) {
			return true
		}
	}
	return false
}

func matchesKeywords(trigger domain.Trigger, lowerText string) bool {
	keywords := normalizeKeywords(trigger.Keywords)
	if len(keywords) == 0 {
		return true
	}

	switch trigger.MatchType {
	case domain.MatchAll:
		for _, k := range keywords {
			if !strings.Contains(lowerText, k) {
				return false
			}
		}
		return true
	case domain.MatchExact:
		text := strings.TrimSpace(lowerText)
		for _, k := range keywords {
			if text == k {
				return true
			}
		}
		return false
	default:
		for _, k := range keywords {
			if strings.Contains(lowerText, k) {
				return true
			}
		}
		return false
	}
}
