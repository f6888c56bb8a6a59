package brainimpl

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/orgball2608/zex-pages/internal/brain"
	"github.com/orgball2608/zex-pages/internal/ratelimit"
	"github.com/orgball2608/zex-pages/pkg/config"
	"github.com/orgball2608/zex-pages/pkg/logger"
	"go.uber.org/fx"
	"google.golang.org/genai"
)

var (
	ErrNotConfigured = errors.New("gemini api key is not configured")
	ErrEmptyReply    = errors.New("model returned an empty reply")
)

const replyPrompt = `You are the customer support assistant of a business page on Facebook and Instagram.

Page profile:
%s

A customer sent this direct message:
"""
%s
"""

Write one short, friendly reply (at most 3 sentences) in the same language and dialect the customer used.
Only use facts from the page profile. If the answer is not in the profile, say a team member will follow up.
Output the reply text only, without quotes or markdown.`

type modelConfig struct {
	Name string
	RPM  int
}

type generateFunc func(ctx context.Context, model, prompt string) (string, error)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

type BrainImpl struct {
	models   []modelConfig
	limiters map[string]ratelimit.Limiter
	generate generateFunc
	logger   logger.Logger
}

func New(opts Opts) (*BrainImpl, error) {
	log := opts.Logger.WithComponent("Brain")
	b := newBrain(log, nil)

	if opts.Config.Gemini.APIKey == "" {
		log.Warn("Gemini API key missing, AI fallback replies are disabled")
		return b, nil
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  opts.Config.Gemini.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	b.generate = func(ctx context.Context, model, prompt string) (string, error) {
		result, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
		if err != nil {
			return "", err
		}
		if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil ||
			len(result.Candidates[0].Content.Parts) == 0 {
			return "", ErrEmptyReply
		}
		return result.Candidates[0].Content.Parts[0].Text, nil
	}
	return b, nil
}

func newBrain(log logger.Logger, generate generateFunc) *BrainImpl {
	models := []modelConfig{
		{Name: "gemini-2.5-flash", RPM: 10},
		{Name: "gemini-2.5-flash-lite", RPM: 15},
	}
	limiters := make(map[string]ratelimit.Limiter, len(models))
	for _, m := range models {
		limiters[m.Name] = ratelimit.NewInMemoryLimiter(m.RPM, time.Minute, m.RPM)
	}
	return &BrainImpl{
		models:   models,
		limiters: limiters,
		generate: generate,
		logger:   log,
	}
}

var _ brain.Client = (*BrainImpl)(nil)

func (b *BrainImpl) GenerateReply(ctx context.Context, userText, profileContext string) (string, error) {
	if b.generate == nil {
		return "", ErrNotConfigured
	}
	if strings.TrimSpace(profileContext) == "" {
		profileContext = "(no profile provided)"
	}

	prompt := fmt.Sprintf(replyPrompt, profileContext, userText)
	return b.tryGenerateWithFallback(ctx, prompt)
}

// tryGenerateWithFallback walks the model list, skipping models that are
// throttled locally or report quota / availability problems.
func (b *BrainImpl) tryGenerateWithFallback(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for _, m := range b.models {
		if !b.limiters[m.Name].Allow(m.Name) {
			lastErr = fmt.Errorf("model %s: local rate limit reached", m.Name)
			continue
		}

		text, err := b.generate(ctx, m.Name, prompt)
		if err != nil {
			if isQuotaError(err) {
				b.logger.Warn("Model unavailable, trying next", "model", m.Name, "error", err)
				lastErr = err
				continue
			}
			return "", fmt.Errorf("model %s: %w", m.Name, err)
		}

		text = cleanReply(text)
		if text == "" {
			lastErr = ErrEmptyReply
			continue
		}
		return text, nil
	}

	if lastErr == nil {
		lastErr = ErrEmptyReply
	}
	return "", fmt.Errorf("all models failed: %w", lastErr)
}

func isQuotaError(err error) bool {
	s := strings.ToLower(err.Error())
	for _, marker := range []string{"429", "rate limit", "exhausted", "404", "not found", "503", "unavailable"} {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}

func cleanReply(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)
	return strings.Trim(s, "\"")
}
