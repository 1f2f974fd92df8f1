// Package llm turns code into a review by prompting a language model.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sevigo/wizpro/internal/core"
	"github.com/sevigo/wizpro/internal/util"
)

// ErrEmptyCode is returned when there is nothing to review.
var ErrEmptyCode = errors.New("code is required")

// ErrEmptyResponse is returned when the model answered with blank text.
var ErrEmptyResponse = errors.New("model returned an empty review")

type reviewPromptData struct {
	Code         string
	Language     core.Language
	LanguageName string
	Fence        core.Language
	LineCount    int
}

// ReviewService reviews code with a completion model. It implements core.Reviewer.
type ReviewService struct {
	promptMgr *PromptManager
	model     core.Completer
	provider  ModelProvider
	timeout   time.Duration
	logger    *slog.Logger
}

var _ core.Reviewer = (*ReviewService)(nil)

// NewReviewService creates the service. A zero timeout leaves the deadline to
// the caller's context.
func NewReviewService(promptMgr *PromptManager, model core.Completer, provider ModelProvider, timeout time.Duration, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		promptMgr: promptMgr,
		model:     model,
		provider:  provider,
		timeout:   timeout,
		logger:    logger,
	}
}

// Review asks the model for a markdown review of code.
func (s *ReviewService) Review(ctx context.Context, code string, lang core.Language) (string, error) {
	if strings.TrimSpace(code) == "" {
		return "", ErrEmptyCode
	}
	if lang == "" {
		lang = core.DefaultLanguage
	}

	data := reviewPromptData{
		Code:         code,
		Language:     lang,
		LanguageName: languageName(lang),
		Fence:        lang,
		LineCount:    strings.Count(code, "\n") + 1,
	}
	prompt, err := s.promptMgr.Render(CodeReviewPrompt, s.provider, data)
	if err != nil {
		return "", fmt.Errorf("could not render prompt '%s': %w", CodeReviewPrompt, err)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	s.logger.Info("calling LLM for code review", "language", lang, "lines", data.LineCount, "prompt_chars", len(prompt))

	response, err := s.model.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("LLM generation failed for prompt '%s': %w", CodeReviewPrompt, err)
	}

	review := strings.TrimSpace(util.StripMarkdownFence(response))
	if review == "" {
		return "", ErrEmptyResponse
	}

	s.logger.Info("LLM review generated", "chars", len(review), "duration", time.Since(start).Round(time.Millisecond))
	return review + "\n", nil
}

func languageName(lang core.Language) string {
	if info, ok := core.LookupLanguage(lang); ok {
		return info.Name
	}
	return string(lang)
}
