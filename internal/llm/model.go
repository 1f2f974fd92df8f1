package llm

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/sevigo/goframe/llms"
	"github.com/sevigo/goframe/llms/gemini"
	"github.com/sevigo/goframe/llms/ollama"

	"github.com/sevigo/wizpro/internal/config"
	"github.com/sevigo/wizpro/internal/core"
)

// NewModel connects to the generator model of the configured provider.
func NewModel(ctx context.Context, cfg config.AIConfig, logger *slog.Logger) (llms.Model, error) {
	switch cfg.LLMProvider {
	case config.ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is not set in environment for gemini provider")
		}
		logger.Info("using Gemini LLM provider", "model", cfg.GeneratorModel)
		return gemini.New(ctx,
			gemini.WithModel(cfg.GeneratorModel),
			gemini.WithAPIKey(cfg.GeminiAPIKey),
		)
	case config.ProviderOllama:
		logger.Info("using Ollama LLM provider", "model", cfg.GeneratorModel, "host", cfg.OllamaHost)
		return ollama.New(
			ollama.WithServerURL(cfg.OllamaHost),
			ollama.WithHTTPClient(newOllamaHTTPClient(cfg.ModelTimeout)),
			ollama.WithModel(cfg.GeneratorModel),
			ollama.WithLogger(logger),
		)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLMProvider)
	}
}

// ProviderFor picks the prompt variant for a model name. Only the default
// variant ships today; a file named code_review_<model>.prompt overrides it.
func ProviderFor(cfg config.AIConfig) ModelProvider {
	if cfg.GeneratorModel == "" {
		return DefaultProvider
	}
	return ModelProvider(cfg.GeneratorModel)
}

// Completer adapts an llms.Model to core.Completer.
type Completer struct {
	model llms.Model
}

var _ core.Completer = (*Completer)(nil)

// NewCompleter wraps model.
func NewCompleter(model llms.Model) *Completer {
	return &Completer{model: model}
}

// Complete sends prompt to the model and returns its answer.
func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	return c.model.Call(ctx, prompt)
}

// newOllamaHTTPClient creates an HTTP client with generous timeouts; local
// models can take a while to answer.
func newOllamaHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        100,
			MaxConnsPerHost:     10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
		Timeout: timeout,
	}
}
