// Package app assembles the review server: configuration, the reviewer chosen
// by LLM_PROVIDER and the HTTP server.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sevigo/wizpro/internal/config"
	"github.com/sevigo/wizpro/internal/core"
	"github.com/sevigo/wizpro/internal/jobs"
	"github.com/sevigo/wizpro/internal/llm"
	"github.com/sevigo/wizpro/internal/mockreview"
	"github.com/sevigo/wizpro/internal/server"
)

// App holds the main application components.
type App struct {
	cfg    *config.Config
	server *server.Server
	logger *slog.Logger
}

// NewApp creates the application around an already built server.
func NewApp(cfg *config.Config, srv *server.Server, logger *slog.Logger) *App {
	return &App{cfg: cfg, server: srv, logger: logger}
}

// NewReviewer builds the reviewer for the configured provider and runs it on a
// bounded worker pool. The cleanup stops the pool once queued reviews finish.
func NewReviewer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*jobs.Pool, func(), error) {
	reviewer, err := newProviderReviewer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	pool := jobs.NewPool(reviewer, cfg.Server.MaxConcurrentReviews, cfg.Server.ReviewQueueSize, logger)
	return pool, pool.Stop, nil
}

// newProviderReviewer returns the reviewer for LLM_PROVIDER. The mock
// provider serves heuristic reviews without any model.
func newProviderReviewer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (core.Reviewer, error) {
	if cfg.AI.LLMProvider == config.ProviderMock {
		logger.Info("using heuristic mock reviewer")
		return mockreview.New()
	}

	logger.Info("connecting to generator LLM", "provider", cfg.AI.LLMProvider, "model", cfg.AI.GeneratorModel)
	model, err := llm.NewModel(ctx, cfg.AI, logger)
	if err != nil {
		logger.Error("failed to connect to generator LLM", "error", err)
		return nil, fmt.Errorf("failed to create generator LLM: %w", err)
	}

	promptMgr, err := llm.NewPromptManager()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize prompt manager: %w", err)
	}

	return llm.NewReviewService(promptMgr, llm.NewCompleter(model), llm.ProviderFor(cfg.AI), cfg.AI.ModelTimeout, logger), nil
}

// Start runs the HTTP server until Stop is called.
func (a *App) Start() error {
	a.logger.Info("starting wizpro review server",
		"port", a.cfg.Server.Port,
		"route_prefix", a.cfg.Server.RoutePrefix,
		"provider", a.cfg.AI.LLMProvider)

	if err := a.server.Start(); err != nil {
		a.logger.Error("failed to start HTTP server", "error", err)
		return err
	}
	return nil
}

// Stop shuts down the application cleanly.
func (a *App) Stop() error {
	if err := a.server.Stop(); err != nil {
		a.logger.Error("error during HTTP server shutdown", "error", err)
		return fmt.Errorf("failed to stop server: %w", err)
	}
	a.logger.Info("wizpro review server stopped")
	return nil
}
