package llm

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sevigo/wizpro/internal/config"
	"github.com/sevigo/wizpro/internal/core"
	"github.com/sevigo/wizpro/mocks"
)

func newTestService(t *testing.T, model core.Completer, timeout time.Duration) *ReviewService {
	t.Helper()
	pm, err := NewPromptManager()
	require.NoError(t, err)
	return NewReviewService(pm, model, DefaultProvider, timeout, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestPromptManager_CodeReview(t *testing.T) {
	pm, err := NewPromptManager()
	require.NoError(t, err)

	prompt, err := pm.Render(CodeReviewPrompt, "some-unknown-model", reviewPromptData{
		Code:         "print('hi')",
		Language:     core.LanguagePython,
		LanguageName: "Python",
		Fence:        core.LanguagePython,
		LineCount:    1,
	})
	require.NoError(t, err)

	assert.Contains(t, prompt, "snippet of Python code")
	assert.Contains(t, prompt, "```python\nprint('hi')\n```")
	assert.Contains(t, prompt, "Code (1 lines)")
	assert.Contains(t, prompt, "## Issues Identified")
}

func TestPromptManager_Errors(t *testing.T) {
	pm, err := NewPromptManager()
	require.NoError(t, err)

	_, err = pm.Get("missing", DefaultProvider)
	assert.Error(t, err)

	_, err = pm.Render(CodeReviewPrompt, DefaultProvider, struct{}{})
	assert.ErrorContains(t, err, "failed to render template")
}

func TestSplitPromptName(t *testing.T) {
	key, provider, err := splitPromptName("code_review_default.prompt")
	require.NoError(t, err)
	assert.Equal(t, CodeReviewPrompt, key)
	assert.Equal(t, DefaultProvider, provider)

	for _, bad := range []string{"review.prompt", "_default.prompt", "review_.prompt"} {
		_, _, err := splitPromptName(bad)
		assert.Error(t, err, bad)
	}
}

func TestReviewService_Review(t *testing.T) {
	ctrl := gomock.NewController(t)
	model := mocks.NewMockCompleter(ctrl)

	model.EXPECT().
		Complete(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, prompt string) (string, error) {
			assert.Contains(t, prompt, "```go\nfunc main() {}\n```")
			return "```markdown\n# Code Review\n\n**Score:** 90/100\n```", nil
		})

	svc := newTestService(t, model, time.Minute)
	out, err := svc.Review(context.Background(), "func main() {}", core.LanguageGo)
	require.NoError(t, err)
	assert.Equal(t, "# Code Review\n\n**Score:** 90/100\n", out)
}

func TestReviewService_DefaultsLanguage(t *testing.T) {
	ctrl := gomock.NewController(t)
	model := mocks.NewMockCompleter(ctrl)

	model.EXPECT().
		Complete(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, prompt string) (string, error) {
			assert.Contains(t, prompt, "snippet of JavaScript code")
			return "# Code Review", nil
		})

	_, err := newTestService(t, model, 0).Review(context.Background(), "let a = 1", "")
	require.NoError(t, err)
}

func TestReviewService_EmptyCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	model := mocks.NewMockCompleter(ctrl)

	_, err := newTestService(t, model, 0).Review(context.Background(), "  \n\t", core.LanguageGo)
	assert.ErrorIs(t, err, ErrEmptyCode)
}

func TestReviewService_ModelFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	model := mocks.NewMockCompleter(ctrl)
	model.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("", errors.New("quota exceeded"))

	_, err := newTestService(t, model, 0).Review(context.Background(), "x", core.LanguageGo)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestReviewService_EmptyResponse(t *testing.T) {
	ctrl := gomock.NewController(t)
	model := mocks.NewMockCompleter(ctrl)
	model.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("```markdown\n\n```", nil)

	_, err := newTestService(t, model, 0).Review(context.Background(), "x", core.LanguageGo)
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestReviewService_AppliesTimeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	model := mocks.NewMockCompleter(ctrl)
	model.EXPECT().
		Complete(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string) (string, error) {
			deadline, ok := ctx.Deadline()
			assert.True(t, ok)
			assert.WithinDuration(t, time.Now().Add(time.Second), deadline, time.Second)
			return "# ok", nil
		})

	_, err := newTestService(t, model, time.Second).Review(context.Background(), "x", core.LanguageGo)
	require.NoError(t, err)
}

func TestNewModel_Errors(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := NewModel(context.Background(), config.AIConfig{LLMProvider: config.ProviderGemini}, logger)
	assert.ErrorContains(t, err, "GEMINI_API_KEY")

	_, err = NewModel(context.Background(), config.AIConfig{LLMProvider: "openai"}, logger)
	assert.ErrorContains(t, err, "unsupported LLM provider")
}

func TestProviderFor(t *testing.T) {
	assert.Equal(t, DefaultProvider, ProviderFor(config.AIConfig{}))
	assert.Equal(t, ModelProvider("gemma3"), ProviderFor(config.AIConfig{GeneratorModel: "gemma3"}))
}
